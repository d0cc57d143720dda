package due

import (
	"testing"
	"time"

	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func word(id string, index int, dueAt int64) *domain.Word {
	return &domain.Word{
		ID:            id,
		IntervalIndex: index,
		DueAt:         time.Unix(dueAt, 0),
		CreatedAt:     time.Unix(0, 0),
	}
}

func ids(words []*domain.Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.ID
	}
	return out
}

func TestDueWords(t *testing.T) {
	t.Parallel()
	now := time.Unix(1000, 0)

	words := []*domain.Word{
		word("late", 3, 900),
		word("new", 0, 0), // new words are never due
		word("future", 4, 1001),
		word("exact", 2, 1000),
		word("earliest", 7, 100),
		nil,
	}

	got := DueWords(words, now)
	assert.Equal(t, []string{"earliest", "late", "exact"}, ids(got))
	for _, w := range got {
		assert.NotZero(t, w.IntervalIndex)
	}
}

func TestDueWordsEmpty(t *testing.T) {
	t.Parallel()
	got := DueWords(nil, time.Now())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDueWordsTiesBreakByID(t *testing.T) {
	t.Parallel()
	got := DueWords([]*domain.Word{word("b", 1, 5), word("a", 1, 5)}, time.Unix(10, 0))
	assert.Equal(t, []string{"a", "b"}, ids(got))
}

func TestNewWords(t *testing.T) {
	t.Parallel()
	a := word("a", 0, 0)
	a.CreatedAt = time.Unix(30, 0)
	b := word("b", 0, 0)
	b.CreatedAt = time.Unix(10, 0)
	c := word("c", 0, 0)
	c.CreatedAt = time.Unix(20, 0)
	seen := word("seen", 2, 0)

	words := []*domain.Word{a, b, c, seen}
	assert.Equal(t, []string{"b", "c", "a"}, ids(NewWords(words, 0)))
	assert.Equal(t, []string{"b", "c"}, ids(NewWords(words, 2)))
}

func TestCountAtThreshold(t *testing.T) {
	t.Parallel()
	now := time.Unix(1000, 0)

	words := []*domain.Word{
		word("d1", 1, 500),
		word("d2", 1, 800),
		word("f1", 5, 1200),
		word("f2", 5, 1500),
		word("new", 0, 2000),
	}

	got := CountAtThreshold(words, now, []int{1, 2, 3, 4, 5, 0})
	assert.False(t, got[1], "1st word is already due")
	assert.False(t, got[2], "2nd word is already due")
	assert.True(t, got[3], "3rd word becomes due in the future")
	assert.True(t, got[4])
	assert.False(t, got[5], "only four reviewed words exist")
	assert.False(t, got[0])
	assert.Len(t, got, 6)
}

func TestCountAtThresholdStrictlyAfterNow(t *testing.T) {
	t.Parallel()
	got := CountAtThreshold([]*domain.Word{word("w", 1, 1000)}, time.Unix(1000, 0), []int{1})
	assert.False(t, got[1])
}

func TestThresholdDueAtAndNextDueAt(t *testing.T) {
	t.Parallel()
	now := time.Unix(1000, 0)
	words := []*domain.Word{word("a", 1, 1500), word("b", 1, 900), word("c", 2, 1200)}

	at, ok := ThresholdDueAt(words, 2)
	require.True(t, ok)
	assert.Equal(t, int64(1200), at.Unix())

	_, ok = ThresholdDueAt(words, 4)
	assert.False(t, ok)

	next, ok := NextDueAt(words, now)
	require.True(t, ok)
	assert.Equal(t, int64(1200), next.Unix())

	_, ok = NextDueAt(words, time.Unix(2000, 0))
	assert.False(t, ok)
}
