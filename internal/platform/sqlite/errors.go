package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/phrazzld/lexicon-srs/internal/store"
)

// MapError maps a SQLite error to a store error. notFound replaces the
// generic store.ErrNotFound for sql.ErrNoRows and duplicate replaces
// store.ErrDuplicate for unique and primary key violations; either may be nil.
func MapError(err error, notFound, duplicate error) error {
	if err == nil {
		return nil
	}

	if notFound == nil {
		notFound = store.ErrNotFound
	}
	if duplicate == nil {
		duplicate = store.ErrDuplicate
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", duplicate, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: foreign key violation: %v", store.ErrInvalidEntity, err)
		case sqlite3.ErrConstraintCheck:
			return fmt.Errorf("%w: check constraint violation: %v", store.ErrInvalidEntity, err)
		case sqlite3.ErrConstraintNotNull:
			return fmt.Errorf("%w: not null violation: %v", store.ErrInvalidEntity, err)
		default:
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}
	}

	return err
}

// checkRowsAffected returns notFound when an UPDATE touched no rows.
func checkRowsAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
