package srs

import (
	"time"

	"github.com/phrazzld/lexicon-srs/internal/domain"
)

// calculateNextIndex moves a word along the ladder for the given answer.
//
// wrong demotes according to the wrong policy (always strictly below a
// non-zero current index), hard steps down one rung, good steps up one and
// easy steps up two. The result is clamped to [0, table.MaxIndex()].
func calculateNextIndex(current int, quality domain.AnswerQuality, params *Params) int {
	var next int
	if quality == domain.AnswerWrong {
		switch params.WrongPolicy {
		case WrongPolicyStepBack:
			next = current - 2
		default:
			next = 0
		}
	} else {
		next = current + params.IndexDelta[quality]
	}

	if next < 0 {
		next = 0
	}
	if top := params.Table.MaxIndex(); next > top {
		next = top
	}
	return next
}

// calculateNextWord returns a new Word with the interval and due time that
// follow from answering at now. The input word is not modified.
func calculateNextWord(
	word *domain.Word,
	quality domain.AnswerQuality,
	now time.Time,
	params *Params,
) (*domain.Word, error) {
	next := word.Clone()
	next.IntervalIndex = calculateNextIndex(word.IntervalIndex, quality, params)

	interval, err := params.Table.DurationAt(next.IntervalIndex)
	if err != nil {
		return nil, err
	}

	next.DueAt = now.Add(interval)
	next.UpdatedAt = now
	return next, nil
}
