package domain

// AnswerQuality is the user's self-assessed recall quality for a word.
// Qualities are ordered from worst to best: wrong < hard < good < easy.
type AnswerQuality string

// Possible answer quality values
const (
	AnswerWrong AnswerQuality = "wrong"
	AnswerHard  AnswerQuality = "hard"
	AnswerGood  AnswerQuality = "good"
	AnswerEasy  AnswerQuality = "easy"
)

// AnswerQualities lists every valid quality, worst first.
var AnswerQualities = []AnswerQuality{AnswerWrong, AnswerHard, AnswerGood, AnswerEasy}

// Rank returns the position of q in the worst-to-best ordering, or -1 if q
// is not a valid quality.
func (q AnswerQuality) Rank() int {
	for i, v := range AnswerQualities {
		if v == q {
			return i
		}
	}
	return -1
}

// Valid reports whether q is one of the known qualities.
func (q AnswerQuality) Valid() bool {
	return q.Rank() >= 0
}

// Less reports whether q is a worse answer than other.
func (q AnswerQuality) Less(other AnswerQuality) bool {
	return q.Rank() < other.Rank()
}

// ParseAnswerQuality converts a string into an AnswerQuality.
func ParseAnswerQuality(s string) (AnswerQuality, error) {
	q := AnswerQuality(s)
	if !q.Valid() {
		return "", ErrInvalidQuality
	}
	return q, nil
}
