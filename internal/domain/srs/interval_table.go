package srs

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/phrazzld/lexicon-srs/internal/domain"
)

// Interval table construction errors
var (
	ErrEmptyTable        = errors.New("interval table cannot be empty")
	ErrFirstIntervalZero = errors.New("first interval must be 0")
	ErrNegativeDuration  = errors.New("interval durations cannot be negative")
	ErrTableNotSorted    = errors.New("interval durations must be non-decreasing")
	ErrIntervalTooLarge  = errors.New("interval duration exceeds the representable range")
)

// MaxIntervalSeconds is the longest rung a time.Duration can hold.
const MaxIntervalSeconds = int64(math.MaxInt64 / int64(time.Second))

// DefaultIntervalSeconds is the shipped ladder, from "immediately" to ten
// years. Index 0 is the unseen/new rung.
var DefaultIntervalSeconds = []int64{
	0,         // new
	60,        // 1 minute
	120,       // 2 minutes
	300,       // 5 minutes
	900,       // 15 minutes
	1800,      // 30 minutes
	3600,      // 1 hour
	10800,     // 3 hours
	21600,     // 6 hours
	86400,     // 1 day
	259200,    // 3 days
	604800,    // 1 week
	1209600,   // 2 weeks
	2592000,   // 30 days
	5184000,   // 60 days
	12960000,  // 150 days
	20736000,  // 240 days
	31536000,  // 1 year
	63072000,  // 2 years
	94608000,  // 3 years
	157680000, // 5 years
	315360000, // 10 years
}

// IntervalTable is the immutable spaced-repetition ladder. Indices are stable
// identifiers persisted with each word, so a deployment must not change the
// table's length once words have been scheduled against it.
type IntervalTable struct {
	durations []time.Duration
}

// NewIntervalTable builds a table from whole-second durations.
func NewIntervalTable(seconds []int64) (*IntervalTable, error) {
	if len(seconds) == 0 {
		return nil, ErrEmptyTable
	}
	if seconds[0] != 0 {
		return nil, ErrFirstIntervalZero
	}

	durations := make([]time.Duration, len(seconds))
	for i, s := range seconds {
		if s < 0 {
			return nil, fmt.Errorf("%w: index %d is %d", ErrNegativeDuration, i, s)
		}
		if s > MaxIntervalSeconds {
			return nil, fmt.Errorf("%w: index %d is %d, max %d", ErrIntervalTooLarge, i, s, MaxIntervalSeconds)
		}
		if i > 0 && s < seconds[i-1] {
			return nil, fmt.Errorf("%w: index %d (%d) < index %d (%d)",
				ErrTableNotSorted, i, s, i-1, seconds[i-1])
		}
		durations[i] = time.Duration(s) * time.Second
	}

	return &IntervalTable{durations: durations}, nil
}

// DefaultIntervalTable returns the shipped 22-rung ladder.
func DefaultIntervalTable() *IntervalTable {
	t, err := NewIntervalTable(DefaultIntervalSeconds)
	if err != nil {
		// ALLOW-PANIC: the built-in ladder is a compile-time constant
		panic(err)
	}
	return t
}

// DurationAt returns the interval at index, or domain.ErrIndexOutOfRange.
func (t *IntervalTable) DurationAt(index int) (time.Duration, error) {
	if !t.Contains(index) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", domain.ErrIndexOutOfRange, index, len(t.durations))
	}
	return t.durations[index], nil
}

// Len returns the number of rungs.
func (t *IntervalTable) Len() int {
	return len(t.durations)
}

// MaxIndex returns the highest valid index.
func (t *IntervalTable) MaxIndex() int {
	return len(t.durations) - 1
}

// Contains reports whether index addresses a rung of the table.
func (t *IntervalTable) Contains(index int) bool {
	return index >= 0 && index < len(t.durations)
}

// Seconds returns a copy of the ladder in whole seconds.
func (t *IntervalTable) Seconds() []int64 {
	out := make([]int64, len(t.durations))
	for i, d := range t.durations {
		out[i] = int64(d / time.Second)
	}
	return out
}
