// Package main implements the entry point for the lexicon study server,
// which schedules vocabulary reviews and serves the study API.
//
// Usage:
//
//	server                      serve HTTP
//	server -migrate status      run a migration command and exit
//	server -import words.xlsx   register word IDs from a file and exit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/lexicon-srs/internal/config"
	"github.com/phrazzld/lexicon-srs/internal/importer"
	"github.com/phrazzld/lexicon-srs/internal/platform/logger"
	"github.com/phrazzld/lexicon-srs/internal/platform/migrations"
	"github.com/phrazzld/lexicon-srs/internal/redact"
)

// cliFlags holds the parsed command line.
type cliFlags struct {
	migrate      string
	importPath   string
	importColumn string
	importSheet  string
	importStart  int
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], config.Options{}); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		slog.Error("lexicon server failed", slog.String("error", redact.Error(err)))
		os.Exit(1)
	}
}

func parseFlags(args []string) (*cliFlags, error) {
	f := &cliFlags{}
	def := importer.DefaultConfig()

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&f.migrate, "migrate", "", fmt.Sprintf("run a migration command and exit (%v)", migrations.Commands))
	fs.StringVar(&f.importPath, "import", "", "register word IDs from an .xlsx or .csv file and exit")
	fs.StringVar(&f.importColumn, "import-column", def.Column, "column holding word IDs")
	fs.StringVar(&f.importSheet, "import-sheet", "", "workbook sheet to read (default: first sheet)")
	fs.IntVar(&f.importStart, "import-start-row", def.StartRow, "first row to read, 1-based")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if f.migrate != "" && f.importPath != "" {
		return nil, fmt.Errorf("-migrate and -import cannot be combined")
	}
	return f, nil
}

// run loads configuration, opens the database and then performs the
// requested command, serving HTTP until ctx is cancelled by default.
func run(ctx context.Context, args []string, opts config.Options) error {
	flags, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadWithOptions(opts)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("database_url", redact.DatabaseURL(cfg.Database.URL)))

	db, err := openDatabase(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database connection", slog.String("error", redact.Error(err)))
		}
	}()

	if flags.migrate != "" {
		return migrations.Run(db.sql, cfg.Database.Driver, flags.migrate, log)
	}

	if err := migrations.Up(db.sql, cfg.Database.Driver, log); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if flags.importPath != "" {
		return app.importWords(ctx, flags)
	}

	return app.Run(ctx)
}
