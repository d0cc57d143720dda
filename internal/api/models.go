package api

import (
	"sort"
	"time"

	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/phrazzld/lexicon-srs/internal/domain/activity"
	"github.com/phrazzld/lexicon-srs/internal/service/study"
)

// RegisterWordsRequest defines the payload for registering words.
type RegisterWordsRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=10000,dive,required,max=128"`
}

// AnswerRequest defines the payload for answering a word.
type AnswerRequest struct {
	Quality string `json:"quality" validate:"required,oneof=wrong hard good easy"`
}

// WordResponse represents a word's scheduling state.
type WordResponse struct {
	ID            string    `json:"id"`
	IntervalIndex int       `json:"interval_index"`
	IsNew         bool      `json:"is_new"`
	DueAt         time.Time `json:"due_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// WordListResponse wraps a list of words.
type WordListResponse struct {
	Words []WordResponse `json:"words"`
	Count int            `json:"count"`
}

// RegisterWordsResponse reports which words were newly created.
type RegisterWordsResponse struct {
	Created   []WordResponse `json:"created"`
	Requested int            `json:"requested"`
}

// StudyEventResponse represents one recorded answer.
type StudyEventResponse struct {
	ID            string    `json:"id"`
	WordID        string    `json:"word_id"`
	Quality       string    `json:"quality"`
	PreviousIndex int       `json:"previous_index"`
	NewIndex      int       `json:"new_index"`
	FirstExposure bool      `json:"first_exposure"`
	StudiedAt     time.Time `json:"studied_at"`
}

// HistoryResponse lists a word's events, oldest first.
type HistoryResponse struct {
	WordID string               `json:"word_id"`
	Events []StudyEventResponse `json:"events"`
}

// AnswerResponse is returned after an answer is recorded.
type AnswerResponse struct {
	Word      WordResponse       `json:"word"`
	Event     StudyEventResponse `json:"event"`
	ClockSkew bool               `json:"clock_skew,omitempty"`
}

// ActivityGroupResponse is one calendar day of activity.
type ActivityGroupResponse struct {
	Label      string    `json:"label"`
	ShortLabel string    `json:"short_label"`
	Day        time.Time `json:"day"`
	DaysAgo    int       `json:"days_ago"`
	Count      int       `json:"count"`
	New        int       `json:"new"`
	Reviews    int       `json:"reviews"`
}

// ActivityResponse is the daily activity view.
type ActivityResponse struct {
	Groups  []ActivityGroupResponse `json:"groups"`
	Summary activity.Summary        `json:"summary"`
}

// ThresholdStatus reports one reminder threshold.
type ThresholdStatus struct {
	Threshold int        `json:"threshold"`
	Reached   bool       `json:"reached"`
	DueAt     *time.Time `json:"due_at,omitempty"`
}

// ReminderResponse is the reminder view, thresholds ascending.
type ReminderResponse struct {
	Thresholds []ThresholdStatus `json:"thresholds"`
	DueNow     int               `json:"due_now"`
	NextDueAt  *time.Time        `json:"next_due_at,omitempty"`
	CheckedAt  time.Time         `json:"checked_at"`
}

func wordToResponse(w *domain.Word) WordResponse {
	return WordResponse{
		ID:            w.ID,
		IntervalIndex: w.IntervalIndex,
		IsNew:         w.IsNew(),
		DueAt:         w.DueAt,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

func wordsToResponse(words []*domain.Word) WordListResponse {
	resp := WordListResponse{Words: make([]WordResponse, 0, len(words)), Count: len(words)}
	for _, w := range words {
		resp.Words = append(resp.Words, wordToResponse(w))
	}
	return resp
}

func eventToResponse(e *domain.StudyEvent) StudyEventResponse {
	return StudyEventResponse{
		ID:            e.ID.String(),
		WordID:        e.WordID,
		Quality:       string(e.Quality),
		PreviousIndex: e.PreviousIndex,
		NewIndex:      e.NewIndex,
		FirstExposure: e.FirstExposure,
		StudiedAt:     e.StudiedAt,
	}
}

func activityToResponse(report *study.ActivityReport) ActivityResponse {
	resp := ActivityResponse{
		Groups:  make([]ActivityGroupResponse, 0, len(report.Groups)),
		Summary: report.Summary,
	}
	for _, g := range report.Groups {
		resp.Groups = append(resp.Groups, ActivityGroupResponse{
			Label:      g.Label,
			ShortLabel: g.ShortLabel,
			Day:        g.Day,
			DaysAgo:    g.DaysAgo,
			Count:      g.Count(),
			New:        g.NewCount(),
			Reviews:    g.ReviewCount(),
		})
	}
	return resp
}

func thresholdsToResponse(report *study.ThresholdReport) ReminderResponse {
	resp := ReminderResponse{
		Thresholds: make([]ThresholdStatus, 0, len(report.Reached)),
		DueNow:     report.DueNow,
		NextDueAt:  report.NextDueAt,
		CheckedAt:  report.CheckedAt,
	}
	for t, reached := range report.Reached {
		status := ThresholdStatus{Threshold: t, Reached: reached}
		if due, ok := report.DueAt[t]; ok {
			status.DueAt = &due
		}
		resp.Thresholds = append(resp.Thresholds, status)
	}
	sort.Slice(resp.Thresholds, func(i, j int) bool {
		return resp.Thresholds[i].Threshold < resp.Thresholds[j].Threshold
	})
	return resp
}
