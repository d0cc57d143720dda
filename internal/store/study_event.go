package store

import (
	"context"
	"time"

	"github.com/phrazzld/lexicon-srs/internal/domain"
)

// StudyEventStore is the append-only study event log. There are no update or
// delete operations: corrections are recorded as new events.
type StudyEventStore interface {
	// Append records an event. Failures are returned to the caller; the
	// store never retries on its own.
	Append(ctx context.Context, event *domain.StudyEvent) error

	// Query returns events with from <= StudiedAt < to, oldest first.
	// Events with equal timestamps keep their append order.
	Query(ctx context.Context, from, to time.Time) ([]domain.StudyEvent, error)

	// All returns the whole log, oldest first.
	All(ctx context.Context) ([]domain.StudyEvent, error)

	// ListForWord returns a word's events, oldest first.
	ListForWord(ctx context.Context, wordID string) ([]domain.StudyEvent, error)

	// LastForWord returns the most recent event for a word.
	// Returns ErrEventNotFound if the word has never been studied.
	LastForWord(ctx context.Context, wordID string) (*domain.StudyEvent, error)
}
