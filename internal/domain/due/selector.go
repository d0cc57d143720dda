// Package due selects words for review and answers reminder threshold
// questions over a snapshot of words.
package due

import (
	"sort"
	"time"

	"github.com/phrazzld/lexicon-srs/internal/domain"
)

// DueWords returns the reviewed words (interval index > 0) whose due time is
// at or before now, earliest first. New words are excluded; see NewWords.
func DueWords(words []*domain.Word, now time.Time) []*domain.Word {
	out := make([]*domain.Word, 0)
	for _, w := range words {
		if w != nil && w.IsDue(now) {
			out = append(out, w)
		}
	}
	sortByDue(out)
	return out
}

// NewWords returns unseen words (interval index 0) in creation order.
// A limit <= 0 returns all of them.
func NewWords(words []*domain.Word, limit int) []*domain.Word {
	out := make([]*domain.Word, 0)
	for _, w := range words {
		if w != nil && w.IsNew() {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CountAtThreshold reports, for each threshold T, whether the T-th reviewed
// word by due time (1-indexed) is still in the future. A true value means at
// least T words are scheduled and the T-th has not come due yet, so an
// advance reminder can be planned for it. Thresholds below 1 or beyond the
// number of reviewed words map to false.
func CountAtThreshold(words []*domain.Word, now time.Time, thresholds []int) map[int]bool {
	ranked := reviewed(words)
	sortByDue(ranked)

	result := make(map[int]bool, len(thresholds))
	for _, t := range thresholds {
		if t < 1 || t > len(ranked) {
			result[t] = false
			continue
		}
		result[t] = ranked[t-1].DueAt.After(now)
	}
	return result
}

// ThresholdDueAt returns the due time of the T-th reviewed word by due time,
// which is when a reminder for threshold T should fire. ok is false when
// fewer than T words are scheduled.
func ThresholdDueAt(words []*domain.Word, threshold int) (at time.Time, ok bool) {
	ranked := reviewed(words)
	if threshold < 1 || threshold > len(ranked) {
		return time.Time{}, false
	}
	sortByDue(ranked)
	return ranked[threshold-1].DueAt, true
}

// NextDueAt returns the earliest due time strictly after now among reviewed
// words.
func NextDueAt(words []*domain.Word, now time.Time) (at time.Time, ok bool) {
	for _, w := range reviewed(words) {
		if !w.DueAt.After(now) {
			continue
		}
		if !ok || w.DueAt.Before(at) {
			at, ok = w.DueAt, true
		}
	}
	return at, ok
}

func reviewed(words []*domain.Word) []*domain.Word {
	out := make([]*domain.Word, 0, len(words))
	for _, w := range words {
		if w != nil && !w.IsNew() {
			out = append(out, w)
		}
	}
	return out
}

func sortByDue(words []*domain.Word) {
	sort.SliceStable(words, func(i, j int) bool {
		if !words[i].DueAt.Equal(words[j].DueAt) {
			return words[i].DueAt.Before(words[j].DueAt)
		}
		return words[i].ID < words[j].ID
	})
}
