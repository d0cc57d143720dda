package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// StudyEvent validation errors
var (
	ErrEmptyEventID     = errors.New("study event ID cannot be empty")
	ErrEmptyEventWordID = errors.New("study event word ID cannot be empty")
	ErrEmptyEventTime   = errors.New("study event timestamp cannot be zero")
)

// StudyEvent records one answer: the interval transition it caused and
// whether it was the word's first exposure. Events are immutable and
// append-only; corrections are modelled as new events.
type StudyEvent struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	WordID        string        `json:"word_id" db:"word_id"`
	PreviousIndex int           `json:"previous_index" db:"previous_index"`
	NewIndex      int           `json:"new_index" db:"new_index"`
	Quality       AnswerQuality `json:"quality" db:"quality"`
	StudiedAt     time.Time     `json:"studied_at" db:"studied_at"`
	FirstExposure bool          `json:"first_exposure" db:"first_exposure"`
}

// NewStudyEvent creates an event with a fresh ID.
func NewStudyEvent(
	wordID string,
	previousIndex, newIndex int,
	quality AnswerQuality,
	studiedAt time.Time,
	firstExposure bool,
) (*StudyEvent, error) {
	e := &StudyEvent{
		ID:            uuid.New(),
		WordID:        wordID,
		PreviousIndex: previousIndex,
		NewIndex:      newIndex,
		Quality:       quality,
		StudiedAt:     studiedAt,
		FirstExposure: firstExposure,
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	return e, nil
}

// Validate checks if the StudyEvent has valid data.
func (e *StudyEvent) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEventID
	}

	if e.WordID == "" {
		return ErrEmptyEventWordID
	}

	if e.PreviousIndex < 0 || e.NewIndex < 0 {
		return ErrNegativeInterval
	}

	if !e.Quality.Valid() {
		return ErrInvalidQuality
	}

	if e.StudiedAt.IsZero() {
		return ErrEmptyEventTime
	}

	return nil
}

// IsReview reports whether the event was a review of an already-seen word.
func (e *StudyEvent) IsReview() bool {
	return !e.FirstExposure
}
