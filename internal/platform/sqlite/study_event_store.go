package sqlite

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/phrazzld/lexicon-srs/internal/platform/logger"
	"github.com/phrazzld/lexicon-srs/internal/store"
)

const eventColumns = `id, word_id, previous_index, new_index, quality, studied_at, first_exposure`

// StudyEventStore implements store.StudyEventStore on SQLite. The seq column
// records append order and breaks ties between equal timestamps.
type StudyEventStore struct {
	db     sqlx.ExtContext
	logger *slog.Logger
}

// Ensure StudyEventStore implements store.StudyEventStore interface
var _ store.StudyEventStore = (*StudyEventStore)(nil)

// NewStudyEventStore creates a StudyEventStore.
// If logger is nil, a default logger will be used.
func NewStudyEventStore(db sqlx.ExtContext, logger *slog.Logger) *StudyEventStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StudyEventStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_event_store")),
	}
}

// Append implements store.StudyEventStore.Append
func (s *StudyEventStore) Append(ctx context.Context, event *domain.StudyEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO study_events (`+eventColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID.String(), event.WordID, event.PreviousIndex, event.NewIndex,
		string(event.Quality), utc(event.StudiedAt), event.FirstExposure,
	)
	if err != nil {
		log.Error("failed to append study event",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()),
			slog.String("word_id", event.WordID))
		return MapError(err, nil, nil)
	}
	return nil
}

// Query implements store.StudyEventStore.Query
func (s *StudyEventStore) Query(ctx context.Context, from, to time.Time) ([]domain.StudyEvent, error) {
	return s.list(ctx,
		`SELECT `+eventColumns+` FROM study_events
		 WHERE studied_at >= ? AND studied_at < ?
		 ORDER BY studied_at, seq`,
		utc(from), utc(to),
	)
}

// All implements store.StudyEventStore.All
func (s *StudyEventStore) All(ctx context.Context) ([]domain.StudyEvent, error) {
	return s.list(ctx, `SELECT `+eventColumns+` FROM study_events ORDER BY studied_at, seq`)
}

// ListForWord implements store.StudyEventStore.ListForWord
func (s *StudyEventStore) ListForWord(ctx context.Context, wordID string) ([]domain.StudyEvent, error) {
	return s.list(ctx,
		`SELECT `+eventColumns+` FROM study_events WHERE word_id = ? ORDER BY studied_at, seq`,
		wordID,
	)
}

// LastForWord implements store.StudyEventStore.LastForWord
func (s *StudyEventStore) LastForWord(ctx context.Context, wordID string) (*domain.StudyEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var e domain.StudyEvent
	err := sqlx.GetContext(ctx, s.db, &e,
		`SELECT `+eventColumns+` FROM study_events WHERE word_id = ?
		 ORDER BY studied_at DESC, seq DESC LIMIT 1`,
		wordID,
	)
	if err != nil {
		mapped := MapError(err, store.ErrEventNotFound, nil)
		if !store.IsNotFoundError(mapped) {
			log.Error("failed to get last study event",
				slog.String("error", err.Error()),
				slog.String("word_id", wordID))
		}
		return nil, mapped
	}
	return &e, nil
}

func (s *StudyEventStore) list(ctx context.Context, query string, args ...any) ([]domain.StudyEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	events := []domain.StudyEvent{}
	if err := sqlx.SelectContext(ctx, s.db, &events, query, args...); err != nil {
		log.Error("failed to query study events", slog.String("error", err.Error()))
		return nil, MapError(err, nil, nil)
	}
	return events, nil
}
