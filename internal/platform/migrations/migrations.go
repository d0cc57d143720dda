// Package migrations embeds the SQL schema for every supported database and
// applies it with goose.
package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"path"
	"sync"
	"time"

	"github.com/pressly/goose/v3"
)

//go:embed sql
var embedded embed.FS

// Supported dialects, named after the database/sql driver that serves them.
const (
	DialectPostgres = "pgx"
	DialectSQLite   = "sqlite3"
)

// TableName is the goose version table.
const TableName = "schema_migrations"

// Commands accepted by Run.
var Commands = []string{"up", "down", "reset", "status", "version"}

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements the goose.Logger Printf method by forwarding messages to slog.Info
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements the goose.Logger Fatalf method by forwarding error messages to slog.Error.
// It does not exit; the error is returned to the caller by Run.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}

// gooseDialect maps a driver name to the goose dialect and the embedded
// directory holding its migrations.
func gooseDialect(driver string) (dialect string, dir string, err error) {
	switch driver {
	case DialectPostgres, "postgres":
		return "postgres", path.Join("sql", "postgres"), nil
	case DialectSQLite:
		return "sqlite3", path.Join("sql", "sqlite3"), nil
	default:
		return "", "", fmt.Errorf("unsupported migration dialect %q", driver)
	}
}

// Up applies all pending migrations.
func Up(db *sql.DB, driver string, logger *slog.Logger) error {
	return Run(db, driver, "up", logger)
}

// Run executes a goose command against db. driver is the database/sql driver
// name the connection was opened with.
func Run(db *sql.DB, driver, command string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	log := logger.With(
		slog.String("component", "migrations"),
		slog.String("command", command),
		slog.String("driver", driver),
	)

	dialect, dir, err := gooseDialect(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetLogger(&slogGooseLogger{logger: log})
	goose.SetBaseFS(embedded)
	goose.SetTableName(TableName)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect %s: %w", dialect, err)
	}

	start := time.Now()
	switch command {
	case "up":
		err = goose.Up(db, dir)
	case "down":
		err = goose.Down(db, dir)
	case "reset":
		err = goose.Reset(db, dir)
	case "status":
		err = goose.Status(db, dir)
	case "version":
		err = goose.Version(db, dir)
	default:
		return fmt.Errorf(
			"unknown migration command: %s (expected one of %v)",
			command,
			Commands,
		)
	}

	if err != nil {
		log.Error("Migration command failed",
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		return fmt.Errorf("migration command '%s' failed: %w", command, err)
	}

	log.Info("Migration command executed successfully",
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}

// CurrentVersion reports the latest applied migration version.
func CurrentVersion(db *sql.DB, driver string) (int64, error) {
	dialect, _, err := gooseDialect(driver)
	if err != nil {
		return 0, err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetTableName(TableName)
	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("failed to set goose dialect %s: %w", dialect, err)
	}
	return goose.GetDBVersion(db)
}
