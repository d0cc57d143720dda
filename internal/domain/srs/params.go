package srs

import (
	"fmt"

	"github.com/phrazzld/lexicon-srs/internal/domain"
)

// WrongPolicy selects how far a wrong answer demotes a word.
type WrongPolicy string

// Supported wrong-answer policies
const (
	// WrongPolicyReset sends the word back to index 0.
	WrongPolicyReset WrongPolicy = "reset"
	// WrongPolicyStepBack moves the word down two rungs, floored at 0.
	WrongPolicyStepBack WrongPolicy = "step_back"
)

// Params defines all configurable parameters for the SRS algorithm
type Params struct {
	Table *IntervalTable

	// Index delta applied per quality; wrong is governed by WrongPolicy
	IndexDelta map[domain.AnswerQuality]int

	WrongPolicy WrongPolicy
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	// IntervalSeconds replaces the default ladder when non-empty
	IntervalSeconds []int64

	// WrongPolicy defaults to WrongPolicyReset when empty
	WrongPolicy WrongPolicy
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		Table: DefaultIntervalTable(),
		IndexDelta: map[domain.AnswerQuality]int{
			domain.AnswerHard: -1,
			domain.AnswerGood: 1,
			domain.AnswerEasy: 2,
		},
		WrongPolicy: WrongPolicyReset,
	}
}

// NewParams creates a new Params instance with custom configuration
func NewParams(config ParamsConfig) (*Params, error) {
	params := NewDefaultParams()

	if len(config.IntervalSeconds) > 0 {
		table, err := NewIntervalTable(config.IntervalSeconds)
		if err != nil {
			return nil, fmt.Errorf("invalid interval table: %w", err)
		}
		params.Table = table
	}

	switch config.WrongPolicy {
	case "":
	case WrongPolicyReset, WrongPolicyStepBack:
		params.WrongPolicy = config.WrongPolicy
	default:
		return nil, fmt.Errorf("%w: unknown wrong policy %q", domain.ErrValidation, config.WrongPolicy)
	}

	return params, nil
}
