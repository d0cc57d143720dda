package srs

import (
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIntervalTable(t *testing.T) {
	t.Parallel()

	table := DefaultIntervalTable()
	require.Equal(t, 22, table.Len())
	assert.Equal(t, 21, table.MaxIndex())

	first, err := table.DurationAt(0)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), first)

	last, err := table.DurationAt(21)
	require.NoError(t, err)
	assert.Equal(t, 10*365*24*time.Hour, last)

	assert.Equal(t, DefaultIntervalSeconds, table.Seconds())
}

func TestIntervalTableDurationAtIsPure(t *testing.T) {
	t.Parallel()

	table := DefaultIntervalTable()
	for i := 0; i < table.Len(); i++ {
		a, errA := table.DurationAt(i)
		b, errB := table.DurationAt(i)
		require.NoError(t, errA)
		require.NoError(t, errB)
		assert.Equal(t, a, b, "index %d", i)
		assert.Equal(t, time.Duration(DefaultIntervalSeconds[i])*time.Second, a)
	}
}

func TestIntervalTableOutOfRange(t *testing.T) {
	t.Parallel()

	table := DefaultIntervalTable()
	for _, idx := range []int{-1, 22, 100} {
		_, err := table.DurationAt(idx)
		assert.True(t, errors.Is(err, domain.ErrIndexOutOfRange), "index %d: %v", idx, err)
		assert.False(t, table.Contains(idx))
	}
}

func TestNewIntervalTableValidation(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		seconds []int64
		wantErr error
	}{
		{"valid custom ladder", []int64{0, 30, 30, 600}, nil},
		{"empty", nil, ErrEmptyTable},
		{"first not zero", []int64{10, 20}, ErrFirstIntervalZero},
		{"negative", []int64{0, -5}, ErrNegativeDuration},
		{"decreasing", []int64{0, 60, 30}, ErrTableNotSorted},
		{"longest representable rung", []int64{0, 60, MaxIntervalSeconds}, nil},
		{"overflows duration", []int64{0, 60, 10_000_000_000}, ErrIntervalTooLarge},
		{"one past longest rung", []int64{0, MaxIntervalSeconds + 1}, ErrIntervalTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			table, err := NewIntervalTable(tc.seconds)
			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, len(tc.seconds), table.Len())
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, table)
		})
	}
}

func TestIntervalTableLongestRungStaysPositive(t *testing.T) {
	t.Parallel()

	table, err := NewIntervalTable([]int64{0, MaxIntervalSeconds})
	require.NoError(t, err)

	d, err := table.DurationAt(1)
	require.NoError(t, err)
	assert.Positive(t, d)
	assert.Equal(t, MaxIntervalSeconds, table.Seconds()[1])
}

func TestIntervalTableSecondsReturnsCopy(t *testing.T) {
	t.Parallel()

	table := DefaultIntervalTable()
	s := table.Seconds()
	s[1] = 999

	d, err := table.DurationAt(1)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, d)
}
