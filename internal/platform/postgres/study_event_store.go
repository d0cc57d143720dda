package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/phrazzld/lexicon-srs/internal/platform/logger"
	"github.com/phrazzld/lexicon-srs/internal/store"
)

const eventColumns = `id, word_id, previous_index, new_index, quality, studied_at, first_exposure`

// PostgresStudyEventStore implements the store.StudyEventStore interface
// using a PostgreSQL database as the storage backend. The seq column records
// append order and breaks ties between equal timestamps.
type PostgresStudyEventStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStudyEventStore creates a new PostgreSQL implementation of the StudyEventStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresStudyEventStore(db store.DBTX, logger *slog.Logger) *PostgresStudyEventStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStudyEventStore{
		db:     db,
		logger: logger.With(slog.String("component", "study_event_store")),
	}
}

// Ensure PostgresStudyEventStore implements store.StudyEventStore interface
var _ store.StudyEventStore = (*PostgresStudyEventStore)(nil)

// Append implements store.StudyEventStore.Append
func (s *PostgresStudyEventStore) Append(ctx context.Context, event *domain.StudyEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO study_events (`+eventColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.ID, event.WordID, event.PreviousIndex, event.NewIndex,
		string(event.Quality), event.StudiedAt, event.FirstExposure,
	)
	if err != nil {
		log.Error("failed to append study event",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()),
			slog.String("word_id", event.WordID))
		return MapError(err, store.ErrEventNotFound, nil)
	}

	log.Debug("study event appended",
		slog.String("event_id", event.ID.String()),
		slog.String("word_id", event.WordID))
	return nil
}

// Query implements store.StudyEventStore.Query
func (s *PostgresStudyEventStore) Query(ctx context.Context, from, to time.Time) ([]domain.StudyEvent, error) {
	return s.list(ctx,
		`SELECT `+eventColumns+` FROM study_events
		 WHERE studied_at >= $1 AND studied_at < $2
		 ORDER BY studied_at, seq`,
		from, to,
	)
}

// All implements store.StudyEventStore.All
func (s *PostgresStudyEventStore) All(ctx context.Context) ([]domain.StudyEvent, error) {
	return s.list(ctx, `SELECT `+eventColumns+` FROM study_events ORDER BY studied_at, seq`)
}

// ListForWord implements store.StudyEventStore.ListForWord
func (s *PostgresStudyEventStore) ListForWord(ctx context.Context, wordID string) ([]domain.StudyEvent, error) {
	return s.list(ctx,
		`SELECT `+eventColumns+` FROM study_events WHERE word_id = $1 ORDER BY studied_at, seq`,
		wordID,
	)
}

// LastForWord implements store.StudyEventStore.LastForWord
func (s *PostgresStudyEventStore) LastForWord(ctx context.Context, wordID string) (*domain.StudyEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var e domain.StudyEvent
	err := s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM study_events WHERE word_id = $1
		 ORDER BY studied_at DESC, seq DESC LIMIT 1`,
		wordID,
	).Scan(&e.ID, &e.WordID, &e.PreviousIndex, &e.NewIndex, &e.Quality, &e.StudiedAt, &e.FirstExposure)
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

func (s *PostgresStudyEventStore) list(ctx context.Context, query string, args ...any) ([]domain.StudyEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query study events", slog.String("error", err.Error()))
		return nil, MapError(err, nil, nil)
	}
	defer func() { _ = rows.Close() }()

	events := []domain.StudyEvent{}
	for rows.Next() {
		var e domain.StudyEvent
		if err := rows.Scan(
			&e.ID, &e.WordID, &e.PreviousIndex, &e.NewIndex, &e.Quality, &e.StudiedAt, &e.FirstExposure,
		); err != nil {
			return nil, fmt.Errorf("failed to scan study event row: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating study event rows", slog.String("error", err.Error()))
		return nil, err
	}

	return events, nil
}
