package store

import (
	"context"

	"github.com/phrazzld/lexicon-srs/internal/domain"
)

// WordStore defines the interface for word scheduling state persistence.
// The host owns the lexical content of words; only the SR fields live here.
type WordStore interface {
	// Create saves a new word.
	// Returns validation errors from the domain Word if data is invalid.
	// Returns ErrWordExists if a word with the same ID already exists.
	Create(ctx context.Context, word *domain.Word) error

	// Get retrieves a word by ID.
	// Returns ErrWordNotFound if the word does not exist.
	// NOTE: This method does NOT lock the row; use GetForUpdate inside a
	// transaction when the word is about to be modified.
	Get(ctx context.Context, id string) (*domain.Word, error)

	// GetForUpdate retrieves a word and, where the backend supports it,
	// locks the row until the surrounding transaction ends.
	// Returns ErrWordNotFound if the word does not exist.
	GetForUpdate(ctx context.Context, id string) (*domain.Word, error)

	// Update overwrites the interval index, due time and updated time of an
	// existing word.
	// Returns ErrWordNotFound if the word does not exist.
	Update(ctx context.Context, word *domain.Word) error

	// List returns every word ordered by ID. The returned slice is a
	// snapshot; later writes do not affect it.
	List(ctx context.Context) ([]*domain.Word, error)
}
