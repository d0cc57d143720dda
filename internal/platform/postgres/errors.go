package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/phrazzld/lexicon-srs/internal/store"
)

// SQLSTATE codes the word and event tables can raise.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	checkViolationCode      = "23514"
	notNullViolationCode    = "23502"
)

// integrityViolations names the constraint classes reported as
// store.ErrInvalidEntity. A study event for an unregistered word is a
// foreign key violation; an interval index below zero trips a check.
var integrityViolations = map[string]string{
	foreignKeyViolationCode: "foreign key violation",
	checkViolationCode:      "check constraint violation",
	notNullViolationCode:    "not null violation",
}

// MapError maps a database error to a store error. notFound replaces the
// generic store.ErrNotFound for sql.ErrNoRows and duplicate replaces
// store.ErrDuplicate for unique violations; either may be nil.
func MapError(err error, notFound, duplicate error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return orDefault(notFound, store.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	if pgErr.Code == uniqueViolationCode {
		return fmt.Errorf("%w: %v", orDefault(duplicate, store.ErrDuplicate), err)
	}
	if kind, ok := integrityViolations[pgErr.Code]; ok {
		return fmt.Errorf("%w: %s (%s): %v", store.ErrInvalidEntity, kind, violatedName(pgErr), err)
	}
	return err
}

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// CheckRowsAffected returns notFound, or store.ErrNotFound when notFound is
// nil, if an UPDATE touched no rows.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return errors.New("nil result provided to CheckRowsAffected")
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return orDefault(notFound, store.ErrNotFound)
	}
	return nil
}

// violatedName is the constraint PostgreSQL reported, or the column for
// not null violations, which carry no constraint name.
func violatedName(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return pgErr.ConstraintName
	}
	return pgErr.ColumnName
}

func orDefault(err, def error) error {
	if err == nil {
		return def
	}
	return err
}
