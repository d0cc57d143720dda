package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/phrazzld/lexicon-srs/internal/store"
)

// WordStore implements store.WordStore over a Store.
type WordStore struct {
	s  *Store
	tx *state
}

// Compile-time check
var _ store.WordStore = (*WordStore)(nil)

// Create implements store.WordStore.
func (w *WordStore) Create(ctx context.Context, word *domain.Word) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := word.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	return w.s.write(w.tx, func(st *state) error {
		if _, ok := st.words[word.ID]; ok {
			return store.ErrWordExists
		}
		st.words[word.ID] = word.Clone()
		return nil
	})
}

// Get implements store.WordStore.
func (w *WordStore) Get(ctx context.Context, id string) (*domain.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var found *domain.Word
	w.s.read(w.tx, func(st *state) {
		if word, ok := st.words[id]; ok {
			found = word.Clone()
		}
	})
	if found == nil {
		return nil, store.ErrWordNotFound
	}
	return found, nil
}

// GetForUpdate implements store.WordStore. Inside WithinTx the caller already
// holds the store's writer lock, so this is a plain read.
func (w *WordStore) GetForUpdate(ctx context.Context, id string) (*domain.Word, error) {
	return w.Get(ctx, id)
}

// Update implements store.WordStore.
func (w *WordStore) Update(ctx context.Context, word *domain.Word) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := word.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	return w.s.write(w.tx, func(st *state) error {
		existing, ok := st.words[word.ID]
		if !ok {
			return store.ErrWordNotFound
		}
		updated := existing.Clone()
		updated.IntervalIndex = word.IntervalIndex
		updated.DueAt = word.DueAt
		updated.UpdatedAt = word.UpdatedAt
		st.words[word.ID] = updated
		return nil
	})
}

// List implements store.WordStore.
func (w *WordStore) List(ctx context.Context) ([]*domain.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var words []*domain.Word
	w.s.read(w.tx, func(st *state) {
		words = make([]*domain.Word, 0, len(st.words))
		for _, word := range st.words {
			words = append(words, word.Clone())
		}
	})
	sort.Slice(words, func(i, j int) bool { return words[i].ID < words[j].ID })
	return words, nil
}
