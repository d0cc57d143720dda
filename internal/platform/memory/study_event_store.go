package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/phrazzld/lexicon-srs/internal/store"
)

// StudyEventStore implements store.StudyEventStore over a Store. Events are
// held in append order.
type StudyEventStore struct {
	s  *Store
	tx *state
}

// Compile-time check
var _ store.StudyEventStore = (*StudyEventStore)(nil)

// Append implements store.StudyEventStore.
func (e *StudyEventStore) Append(ctx context.Context, event *domain.StudyEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	return e.s.write(e.tx, func(st *state) error {
		st.events = append(st.events, *event)
		return nil
	})
}

// Query implements store.StudyEventStore.
func (e *StudyEventStore) Query(ctx context.Context, from, to time.Time) ([]domain.StudyEvent, error) {
	return e.filter(ctx, func(ev *domain.StudyEvent) bool {
		return !ev.StudiedAt.Before(from) && ev.StudiedAt.Before(to)
	})
}

// All implements store.StudyEventStore.
func (e *StudyEventStore) All(ctx context.Context) ([]domain.StudyEvent, error) {
	return e.filter(ctx, func(*domain.StudyEvent) bool { return true })
}

// ListForWord implements store.StudyEventStore.
func (e *StudyEventStore) ListForWord(ctx context.Context, wordID string) ([]domain.StudyEvent, error) {
	return e.filter(ctx, func(ev *domain.StudyEvent) bool { return ev.WordID == wordID })
}

// LastForWord implements store.StudyEventStore. The most recent event is the
// one with the latest StudiedAt; among equal timestamps the last appended wins.
func (e *StudyEventStore) LastForWord(ctx context.Context, wordID string) (*domain.StudyEvent, error) {
	events, err := e.ListForWord(ctx, wordID)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, store.ErrEventNotFound
	}
	last := events[len(events)-1]
	return &last, nil
}

// filter copies matching events and orders them by StudiedAt, keeping append
// order for ties.
func (e *StudyEventStore) filter(ctx context.Context, keep func(*domain.StudyEvent) bool) ([]domain.StudyEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := []domain.StudyEvent{}
	e.s.read(e.tx, func(st *state) {
		for i := range st.events {
			if keep(&st.events[i]) {
				out = append(out, st.events[i])
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StudiedAt.Before(out[j].StudiedAt)
	})
	return out, nil
}
