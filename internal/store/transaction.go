package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lexicon-srs/internal/platform/logger"
)

// Tx is the part of a driver transaction the runner needs. *sql.Tx and
// *sqlx.Tx both satisfy it.
type Tx interface {
	Commit() error
	Rollback() error
}

// BeginFunc opens a transaction of a driver-specific type.
type BeginFunc[T Tx] func(ctx context.Context) (T, error)

// BindFunc builds the word and event stores on top of an open transaction.
type BindFunc[T Tx] func(tx T) Stores

// RunInTransaction opens a transaction with begin, hands fn the stores bound
// to it and commits when fn returns nil. An error or panic from fn rolls the
// transaction back; panics are re-raised after the rollback.
func RunInTransaction[T Tx](
	ctx context.Context,
	fallback *slog.Logger,
	begin BeginFunc[T],
	bind BindFunc[T],
	fn StoresFn,
) error {
	log := logger.FromContextOrDefault(ctx, fallback)

	tx, err := begin(ctx)
	if err != nil {
		log.Error("failed to begin transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: failed to begin transaction: %w", ErrTransactionFailed, err)
	}

	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction after panic",
				slog.String("error", rbErr.Error()),
				slog.Any("panic", p))
		} else {
			log.Error("rolled back transaction after panic", slog.Any("panic", p))
		}
		// ALLOW-PANIC: Propagating caught panic from transaction
		panic(p)
	}()

	if fnErr := fn(ctx, bind(tx)); fnErr != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("original_error", fnErr.Error()))
			return errors.Join(fnErr, fmt.Errorf("failed to roll back transaction: %w", rbErr))
		}
		log.Debug("rolled back transaction", slog.String("error", fnErr.Error()))
		return fnErr
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit transaction", slog.String("error", err.Error()))
		return fmt.Errorf("%w: failed to commit transaction: %w", ErrTransactionFailed, err)
	}
	return nil
}
