package study

import (
	"context"
	"errors"
	"time"

	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/phrazzld/lexicon-srs/internal/domain/activity"
)

// Service records answers and serves the study read models.
type Service interface {
	// RegisterWords creates unseen words (interval index 0, due immediately)
	// for the given IDs. IDs that already exist are skipped, so the call is
	// idempotent. It returns only the words that were created.
	RegisterWords(ctx context.Context, ids []string) ([]*domain.Word, error)

	// Answer applies an answer to a word.
	//
	// This method performs several operations within a single transaction:
	// 1. Loads the word, locking its row where the store supports it
	// 2. Loads the word's most recent study event
	// 3. Calculates the next interval index and due time
	// 4. Updates the word and appends a study event
	//
	// Answers for the same word are serialized; answers for different words
	// run in parallel.
	//
	// Returns:
	//   - (*AnswerResult, nil): the updated word and the recorded event
	//   - (nil, domain.ErrInvalidQuality): the quality is not recognised
	//   - (nil, store.ErrWordNotFound): the word is not registered
	//   - (nil, *store.StoreError): a store failed; neither write persisted
	Answer(ctx context.Context, wordID string, quality domain.AnswerQuality) (*AnswerResult, error)

	// GetWord returns a word's scheduling state.
	GetWord(ctx context.Context, id string) (*domain.Word, error)

	// WordHistory returns a word's study events, oldest first.
	WordHistory(ctx context.Context, id string) ([]domain.StudyEvent, error)

	// DueWords returns reviewed words whose due time has passed, earliest first.
	DueWords(ctx context.Context) ([]*domain.Word, error)

	// NewWords returns up to limit unseen words, oldest registration first.
	// A limit of zero or less returns all of them.
	NewWords(ctx context.Context, limit int) ([]*domain.Word, error)

	// Activity buckets the events of the last days calendar days plus today.
	// A days value of zero or less uses the configured default.
	Activity(ctx context.Context, days int) (*ActivityReport, error)

	// Thresholds evaluates reminder thresholds over the current words. An
	// empty thresholds slice uses the configured default.
	Thresholds(ctx context.Context, thresholds []int) (*ThresholdReport, error)
}

// AnswerResult is the outcome of a recorded answer.
type AnswerResult struct {
	Word  *domain.Word       `json:"word"`
	Event *domain.StudyEvent `json:"event"`
	// ClockSkew is set when the clock read earlier than the word's previous
	// event. The answer is still recorded with the clock's time.
	ClockSkew bool `json:"clock_skew"`
}

// ActivityReport is the daily activity view.
type ActivityReport struct {
	Groups  []activity.Group `json:"groups"`
	Summary activity.Summary `json:"summary"`
}

// ThresholdReport is the reminder view over the current words.
type ThresholdReport struct {
	// Reached maps each threshold T to whether the T-th scheduled review is
	// still in the future.
	Reached map[int]bool `json:"reached"`
	// DueAt maps each threshold to the due time of the T-th scheduled review,
	// for thresholds with at least T scheduled words.
	DueAt map[int]time.Time `json:"due_at"`
	// NextDueAt is the earliest future due time, if any word is scheduled.
	NextDueAt *time.Time `json:"next_due_at,omitempty"`
	// DueNow is the number of reviewed words already due.
	DueNow int `json:"due_now"`
	// CheckedAt is the clock reading the report was computed for.
	CheckedAt time.Time `json:"checked_at"`
}

// Common error types for the study service
var (
	// ErrNoWordIDs indicates that RegisterWords received no usable IDs.
	ErrNoWordIDs = errors.New("no word IDs provided")
)
