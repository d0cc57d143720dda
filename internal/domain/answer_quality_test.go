package domain

import (
	"errors"
	"testing"
)

func TestAnswerQualityOrdering(t *testing.T) {
	t.Parallel()

	ordered := []AnswerQuality{AnswerWrong, AnswerHard, AnswerGood, AnswerEasy}
	for i := 0; i < len(ordered)-1; i++ {
		if !ordered[i].Less(ordered[i+1]) {
			t.Errorf("Expected %s < %s", ordered[i], ordered[i+1])
		}
		if ordered[i+1].Less(ordered[i]) {
			t.Errorf("Expected %s not < %s", ordered[i+1], ordered[i])
		}
	}
}

func TestParseAnswerQuality(t *testing.T) {
	t.Parallel()

	for _, q := range AnswerQualities {
		got, err := ParseAnswerQuality(string(q))
		if err != nil || got != q {
			t.Errorf("Expected %s to parse, got %q, %v", q, got, err)
		}
	}

	if _, err := ParseAnswerQuality("again"); !errors.Is(err, ErrInvalidQuality) {
		t.Errorf("Expected ErrInvalidQuality, got %v", err)
	}

	if AnswerQuality("").Valid() {
		t.Error("Expected empty quality to be invalid")
	}
}
