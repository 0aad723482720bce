package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/MaxiAdad31/gastos/internal/importer"
	"github.com/MaxiAdad31/gastos/internal/storage"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("importar", flag.ContinueOnError)
	fs.SetOutput(stderr)

	file := fs.String("file", "", "Path to CSV file to import")
	kind := fs.String("kind", "", "Record kind: gastos, ingresos or gastos_tarjeta")
	dbPath := fs.String("db", "gastos.db", "Path to database file")
	userID := fs.Int64("usuario", 0, "Owner user id (required for ingresos)")
	cardID := fs.Int64("tarjeta", 0, "Card id (required for gastos_tarjeta)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *file == "" || *kind == "" {
		fmt.Fprintln(stdout, "Usage: importar -file <csv> -kind <gastos|ingresos|gastos_tarjeta> [-db <db_path>] [-usuario <id>] [-tarjeta <id>]")
		fs.PrintDefaults()
		return fmt.Errorf("missing required flags: file, kind")
	}

	if path := os.Getenv("DB_PATH"); path != "" && *dbPath == "gastos.db" {
		*dbPath = path
	}

	db, err := storage.NewDB(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	n, err := importer.New(db).ImportFile(*file, importer.Kind(*kind), importer.Options{
		UserID: *userID,
		CardID: *cardID,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Imported %d records from %s\n", n, *file)
	return nil
}
