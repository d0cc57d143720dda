package domain

import (
	"errors"
	"strings"
	"time"
)

// Word validation errors
var (
	// ErrEmptyWordID is returned when a word has no identifier.
	ErrEmptyWordID = errors.New("word ID cannot be empty")

	// ErrNegativeInterval is returned when a word's interval index is negative.
	ErrNegativeInterval = errors.New("interval index must be greater than or equal to 0")
)

// Word is the spaced-repetition subject: a vocabulary entry identified by a
// stable string key (for example a lexicon entry number). The lexical content
// itself lives with the host; only scheduling state is kept here.
type Word struct {
	ID            string    `json:"id" db:"id"`
	IntervalIndex int       `json:"interval_index" db:"interval_index"` // position in the interval table
	DueAt         time.Time `json:"due_at" db:"due_at"`                 // when the word is next due
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// NewWord creates an unseen word (interval index 0) that is due immediately.
func NewWord(id string, now time.Time) (*Word, error) {
	w := &Word{
		ID:            strings.TrimSpace(id),
		IntervalIndex: 0,
		DueAt:         now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	return w, nil
}

// Validate checks if the Word has valid data.
// Upper bounds on IntervalIndex depend on the interval table and are checked
// by the scheduler.
func (w *Word) Validate() error {
	if w.ID == "" {
		return ErrEmptyWordID
	}

	if w.IntervalIndex < 0 {
		return ErrNegativeInterval
	}

	return nil
}

// IsNew reports whether the word has never advanced past the first rung.
func (w *Word) IsNew() bool {
	return w.IntervalIndex == 0
}

// IsDue reports whether a reviewed word's due time has been reached.
// New words are never "due"; they are surfaced through the new-word path.
func (w *Word) IsDue(now time.Time) bool {
	return w.IntervalIndex > 0 && !w.DueAt.After(now)
}

// Clone returns a copy of the word.
func (w *Word) Clone() *Word {
	c := *w
	return &c
}
