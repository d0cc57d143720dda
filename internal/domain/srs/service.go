package srs

import (
	"errors"
	"fmt"
	"time"

	"github.com/phrazzld/lexicon-srs/internal/domain"
)

// Common errors
var (
	ErrNilWord = errors.New("word cannot be nil")
)

// Service defines the interface for SRS algorithm operations
type Service interface {
	// CalculateNextReview computes a word's next interval index and due time
	// for an answer given at now. It is pure: the input word is not modified.
	// Returns domain.ErrIndexOutOfRange if the word's current index is not in
	// the interval table and domain.ErrInvalidQuality for unknown qualities.
	CalculateNextReview(
		word *domain.Word,
		quality domain.AnswerQuality,
		now time.Time,
	) (*domain.Word, error)

	// Table exposes the interval ladder the service schedules against.
	Table() *IntervalTable
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new SRS service with default parameters
func NewDefaultService() (Service, error) {
	return NewServiceWithParams(NewDefaultParams())
}

// NewServiceWithParams creates a new SRS service with custom parameters
func NewServiceWithParams(params *Params) (Service, error) {
	if params == nil || params.Table == nil {
		return nil, fmt.Errorf("%w: params and interval table are required", domain.ErrValidation)
	}
	return &defaultService{params: params}, nil
}

// CalculateNextReview implements the Service interface
func (s *defaultService) CalculateNextReview(
	word *domain.Word,
	quality domain.AnswerQuality,
	now time.Time,
) (*domain.Word, error) {
	if word == nil {
		return nil, ErrNilWord
	}

	if !quality.Valid() {
		return nil, domain.ErrInvalidQuality
	}

	if !s.params.Table.Contains(word.IntervalIndex) {
		return nil, fmt.Errorf("%w: word %s has index %d, table has %d entries",
			domain.ErrIndexOutOfRange, word.ID, word.IntervalIndex, s.params.Table.Len())
	}

	return calculateNextWord(word, quality, now, s.params)
}

// Table implements the Service interface
func (s *defaultService) Table() *IntervalTable {
	return s.params.Table
}
