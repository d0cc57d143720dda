package srs

import (
	"testing"
	"time"

	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultService(t *testing.T) {
	t.Parallel()
	service, err := NewDefaultService()
	require.NoError(t, err, "Failed to create SRS service")
	require.NotNil(t, service)
	assert.Equal(t, 22, service.Table().Len())
}

func TestNewServiceWithParamsRequiresTable(t *testing.T) {
	t.Parallel()
	_, err := NewServiceWithParams(&Params{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = NewServiceWithParams(nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCalculateNextReviewEasyLadder(t *testing.T) {
	t.Parallel()
	service, err := NewDefaultService()
	require.NoError(t, err)
	table := service.Table()
	now := time.Unix(1_700_000_000, 0)

	for i := 0; i < table.Len(); i++ {
		word := &domain.Word{ID: "G2316", IntervalIndex: i}
		updated, err := service.CalculateNextReview(word, domain.AnswerEasy, now)
		require.NoError(t, err)

		want := i + 2
		if want > table.MaxIndex() {
			want = table.MaxIndex()
		}
		assert.Equal(t, want, updated.IntervalIndex, "index %d", i)

		interval, err := table.DurationAt(want)
		require.NoError(t, err)
		assert.True(t, updated.DueAt.Equal(now.Add(interval)), "index %d", i)
	}
}

func TestCalculateNextReviewWrongLadder(t *testing.T) {
	t.Parallel()
	service, err := NewDefaultService()
	require.NoError(t, err)
	now := time.Unix(1_700_000_000, 0)

	for i := 0; i < service.Table().Len(); i++ {
		word := &domain.Word{ID: "G2316", IntervalIndex: i}
		updated, err := service.CalculateNextReview(word, domain.AnswerWrong, now)
		require.NoError(t, err)
		assert.Equal(t, 0, updated.IntervalIndex)
		assert.True(t, updated.DueAt.Equal(now), "wrong answers are due immediately")
	}
}

func TestCalculateNextReviewScenarios(t *testing.T) {
	t.Parallel()
	service, err := NewDefaultService()
	require.NoError(t, err)

	t.Run("good from index 5 at t=1000", func(t *testing.T) {
		word := &domain.Word{ID: "H7225", IntervalIndex: 5}
		updated, err := service.CalculateNextReview(word, domain.AnswerGood, time.Unix(1000, 0))
		require.NoError(t, err)
		assert.Equal(t, 6, updated.IntervalIndex)
		assert.Equal(t, int64(4600), updated.DueAt.Unix())
	})

	t.Run("easy on a new word at t=0", func(t *testing.T) {
		word := &domain.Word{ID: "H1254", IntervalIndex: 0}
		updated, err := service.CalculateNextReview(word, domain.AnswerEasy, time.Unix(0, 0))
		require.NoError(t, err)
		assert.Equal(t, 2, updated.IntervalIndex)
		assert.Equal(t, int64(120), updated.DueAt.Unix())
	})
}

func TestCalculateNextReviewErrors(t *testing.T) {
	t.Parallel()
	service, err := NewDefaultService()
	require.NoError(t, err)
	now := time.Now()

	_, err = service.CalculateNextReview(nil, domain.AnswerGood, now)
	assert.ErrorIs(t, err, ErrNilWord)

	_, err = service.CalculateNextReview(&domain.Word{ID: "x"}, "again", now)
	assert.ErrorIs(t, err, domain.ErrInvalidQuality)

	_, err = service.CalculateNextReview(&domain.Word{ID: "x", IntervalIndex: 22}, domain.AnswerGood, now)
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}
