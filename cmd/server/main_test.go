package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaxiAdad31/gastos/internal/handlers"
	"github.com/MaxiAdad31/gastos/internal/storage"
)

func newTestMux(t *testing.T) (*http.ServeMux, *storage.DB) {
	t.Helper()

	db, err := storage.NewDB(":memory:")
	require.NoError(t, err, "failed to create database")
	t.Cleanup(func() { db.Close() })

	// Templates live two levels up from cmd/server.
	h := handlers.NewHandlers(db, "../../web/templates", false, 30*24*time.Hour)
	return setupRouter(h, "../../web/static"), db
}

func TestSetupRouter_AuthGate(t *testing.T) {
	mux, _ := newTestMux(t)

	// Every ledger route redirects to /login without a session.
	paths := []string{
		"/",
		"/gastos",
		"/gastos/agregar",
		"/categorias",
		"/ingresos",
		"/gastos_tarjeta",
		"/tarjetas",
	}
	for _, path := range paths {
		req := httptest.NewRequest("GET", path, http.NoBody)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code, "GET %s should redirect", path)
		assert.Equal(t, "/login", w.Result().Header.Get("Location"), "GET %s should point at login", path)
	}
}

func TestSetupRouter_OpenRoutes(t *testing.T) {
	mux, _ := newTestMux(t)

	for _, path := range []string{"/login", "/registro"} {
		req := httptest.NewRequest("GET", path, http.NoBody)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "GET %s should render without a session", path)
	}
}

func TestSetupRouter_LoginFlow(t *testing.T) {
	mux, db := newTestMux(t)

	_, err := db.RegisterUser("maxi", "secret123")
	require.NoError(t, err)

	form := url.Values{"username": {"maxi"}, "password": {"secret123"}}
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Result().Header.Get("Location"))

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == handlers.SessionCookieName {
			session = c
		}
	}
	require.NotNil(t, session, "login should set a session cookie")
	assert.NotEmpty(t, session.Value)

	// The session cookie opens the gate.
	req = httptest.NewRequest("GET", "/gastos", http.NoBody)
	req.AddCookie(session)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetupRouter_BadCredentials(t *testing.T) {
	mux, db := newTestMux(t)

	_, err := db.RegisterUser("maxi", "secret123")
	require.NoError(t, err)

	for _, form := range []url.Values{
		{"username": {"maxi"}, "password": {"wrong"}},
		{"username": {"nadie"}, "password": {"secret123"}},
	} {
		req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		// Same generic notice either way, no session cookie.
		assert.Equal(t, http.StatusOK, w.Code)
		for _, c := range w.Result().Cookies() {
			assert.NotEqual(t, handlers.SessionCookieName, c.Name)
		}
	}
}
