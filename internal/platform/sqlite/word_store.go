package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/phrazzld/lexicon-srs/internal/platform/logger"
	"github.com/phrazzld/lexicon-srs/internal/store"
)

const wordColumns = `id, interval_index, due_at, created_at, updated_at`

// WordStore implements store.WordStore on SQLite. db may be a *sqlx.DB or a
// *sqlx.Tx.
type WordStore struct {
	db     sqlx.ExtContext
	logger *slog.Logger
}

// Ensure WordStore implements store.WordStore interface
var _ store.WordStore = (*WordStore)(nil)

// NewWordStore creates a WordStore.
// If logger is nil, a default logger will be used.
func NewWordStore(db sqlx.ExtContext, logger *slog.Logger) *WordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Create implements store.WordStore.Create
func (s *WordStore) Create(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO words (`+wordColumns+`) VALUES (?, ?, ?, ?, ?)`,
		word.ID, word.IntervalIndex, utc(word.DueAt), utc(word.CreatedAt), utc(word.UpdatedAt),
	)
	if err != nil {
		mapped := MapError(err, store.ErrWordNotFound, store.ErrWordExists)
		if !store.IsDuplicateError(mapped) {
			log.Error("failed to create word",
				slog.String("error", err.Error()),
				slog.String("word_id", word.ID))
		}
		return mapped
	}

	log.Debug("word created successfully", slog.String("word_id", word.ID))
	return nil
}

// Get implements store.WordStore.Get
func (s *WordStore) Get(ctx context.Context, id string) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var w domain.Word
	err := sqlx.GetContext(ctx, s.db, &w, `SELECT `+wordColumns+` FROM words WHERE id = ?`, id)
	if err != nil {
		mapped := MapError(err, store.ErrWordNotFound, nil)
		if !store.IsNotFoundError(mapped) {
			log.Error("failed to get word",
				slog.String("error", err.Error()),
				slog.String("word_id", id))
		}
		return nil, mapped
	}
	return &w, nil
}

// GetForUpdate implements store.WordStore.GetForUpdate. SQLite has no row
// locks; inside a transaction the single pooled connection serializes
// writers.
func (s *WordStore) GetForUpdate(ctx context.Context, id string) (*domain.Word, error) {
	return s.Get(ctx, id)
}

// Update implements store.WordStore.Update
func (s *WordStore) Update(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE words SET interval_index = ?, due_at = ?, updated_at = ? WHERE id = ?`,
		word.IntervalIndex, utc(word.DueAt), utc(word.UpdatedAt), word.ID,
	)
	if err != nil {
		log.Error("failed to update word",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID))
		return MapError(err, store.ErrWordNotFound, nil)
	}

	return checkRowsAffected(result, store.ErrWordNotFound)
}

// List implements store.WordStore.List
func (s *WordStore) List(ctx context.Context) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	words := []*domain.Word{}
	if err := sqlx.SelectContext(ctx, s.db, &words, `SELECT `+wordColumns+` FROM words ORDER BY id`); err != nil {
		log.Error("failed to list words", slog.String("error", err.Error()))
		return nil, MapError(err, nil, nil)
	}
	return words, nil
}
