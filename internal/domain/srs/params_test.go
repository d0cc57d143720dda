package srs

import (
	"testing"

	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultParams(t *testing.T) {
	params := NewDefaultParams()

	require.NotNil(t, params.Table)
	assert.Equal(t, 22, params.Table.Len())
	assert.Equal(t, WrongPolicyReset, params.WrongPolicy)

	// Every non-wrong quality needs a delta
	for _, q := range []domain.AnswerQuality{domain.AnswerHard, domain.AnswerGood, domain.AnswerEasy} {
		_, ok := params.IndexDelta[q]
		assert.True(t, ok, "IndexDelta missing for %s", q)
	}
}

func TestNewParams(t *testing.T) {
	t.Run("custom ladder and policy", func(t *testing.T) {
		params, err := NewParams(ParamsConfig{
			IntervalSeconds: []int64{0, 10, 100},
			WrongPolicy:     WrongPolicyStepBack,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, params.Table.Len())
		assert.Equal(t, WrongPolicyStepBack, params.WrongPolicy)
	})

	t.Run("zero config keeps defaults", func(t *testing.T) {
		params, err := NewParams(ParamsConfig{})
		require.NoError(t, err)
		assert.Equal(t, 22, params.Table.Len())
		assert.Equal(t, WrongPolicyReset, params.WrongPolicy)
	})

	t.Run("invalid ladder", func(t *testing.T) {
		_, err := NewParams(ParamsConfig{IntervalSeconds: []int64{5}})
		assert.ErrorIs(t, err, ErrFirstIntervalZero)
	})

	t.Run("unknown policy", func(t *testing.T) {
		_, err := NewParams(ParamsConfig{WrongPolicy: "forget"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
