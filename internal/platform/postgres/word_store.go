package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/phrazzld/lexicon-srs/internal/platform/logger"
	"github.com/phrazzld/lexicon-srs/internal/store"
)

const wordColumns = `id, interval_index, due_at, created_at, updated_at`

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the WordStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

// Create implements store.WordStore.Create
func (s *PostgresWordStore) Create(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		log.Warn("invalid word data",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO words (`+wordColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		word.ID, word.IntervalIndex, word.DueAt, word.CreatedAt, word.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("word already exists", slog.String("word_id", word.ID))
		} else {
			log.Error("failed to create word",
				slog.String("error", err.Error()),
				slog.String("word_id", word.ID))
		}
		return MapError(err, store.ErrWordNotFound, store.ErrWordExists)
	}

	log.Debug("word created successfully", slog.String("word_id", word.ID))
	return nil
}

// Get implements store.WordStore.Get
func (s *PostgresWordStore) Get(ctx context.Context, id string) (*domain.Word, error) {
	return s.get(ctx, `SELECT `+wordColumns+` FROM words WHERE id = $1`, id)
}

// GetForUpdate implements store.WordStore.GetForUpdate. The row lock is held
// until the surrounding transaction commits or rolls back.
func (s *PostgresWordStore) GetForUpdate(ctx context.Context, id string) (*domain.Word, error) {
	return s.get(ctx, `SELECT `+wordColumns+` FROM words WHERE id = $1 FOR UPDATE`, id)
}

func (s *PostgresWordStore) get(ctx context.Context, query, id string) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var w domain.Word
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&w.ID, &w.IntervalIndex, &w.DueAt, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		mapped := MapError(err, store.ErrWordNotFound, nil)
		if store.IsNotFoundError(mapped) {
			log.Debug("word not found", slog.String("word_id", id))
		} else {
			log.Error("failed to get word",
				slog.String("error", err.Error()),
				slog.String("word_id", id))
		}
		return nil, mapped
	}

	return &w, nil
}

// Update implements store.WordStore.Update
func (s *PostgresWordStore) Update(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE words SET interval_index = $2, due_at = $3, updated_at = $4 WHERE id = $1`,
		word.ID, word.IntervalIndex, word.DueAt, word.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update word",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID))
		return MapError(err, store.ErrWordNotFound, nil)
	}

	if err := CheckRowsAffected(result, store.ErrWordNotFound); err != nil {
		return err
	}

	log.Debug("word updated successfully",
		slog.String("word_id", word.ID),
		slog.Int("interval_index", word.IntervalIndex))
	return nil
}

// List implements store.WordStore.List
func (s *PostgresWordStore) List(ctx context.Context) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+wordColumns+` FROM words ORDER BY id`)
	if err != nil {
		log.Error("failed to list words", slog.String("error", err.Error()))
		return nil, MapError(err, nil, nil)
	}
	defer func() { _ = rows.Close() }()

	words := []*domain.Word{}
	for rows.Next() {
		var w domain.Word
		if err := rows.Scan(&w.ID, &w.IntervalIndex, &w.DueAt, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan word row: %w", err)
		}
		words = append(words, &w)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating word rows", slog.String("error", err.Error()))
		return nil, err
	}

	return words, nil
}
