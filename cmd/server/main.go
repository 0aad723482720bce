package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MaxiAdad31/gastos/internal/config"
	"github.com/MaxiAdad31/gastos/internal/handlers"
	"github.com/MaxiAdad31/gastos/internal/storage"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// .env is optional; real environments set variables directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("load .env", "error", err)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		logger.Error("open database", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer db.Close()

	if err := seedAdminUser(db, cfg); err != nil {
		logger.Error("seed admin user", "error", err)
		os.Exit(1)
	}

	h := handlers.NewHandlers(db, cfg.TemplateDir, cfg.SecureCookie, cfg.SessionDuration)
	mux := setupRouter(h, cfg.StaticDir)

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handlers.LogMiddleware(mux),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Sweep expired sessions in the background.
	go func() {
		ticker := time.NewTicker(cfg.SessionSweep)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := db.CleanExpiredSessions(); err != nil {
					logger.Warn("clean expired sessions", "error", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown", "error", err)
		}
		cancel()
	}()

	logger.Info("starting server", "port", cfg.Port, "db", cfg.DBPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("server stopped")
}

// seedAdminUser creates the configured admin account when the user table is
// empty, so a fresh deployment has a way in.
func seedAdminUser(db *storage.DB, cfg *config.Config) error {
	if cfg.AdminUser == "" {
		return nil
	}
	count, err := db.UserCount()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	user, err := db.RegisterUser(cfg.AdminUser, cfg.AdminPassword)
	if err != nil {
		return err
	}
	slog.Info("seeded initial user", "username", user.Username, "id", user.ID)
	return nil
}
