package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/lexicon-srs/internal/domain"
)

func TestNewStudyRecordedEvent(t *testing.T) {
	studiedAt := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	se, err := domain.NewStudyEvent("H1254", 0, 2, domain.AnswerEasy, studiedAt, true)
	require.NoError(t, err)

	event, err := NewStudyRecordedEvent(se, studiedAt.Add(2*time.Minute))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeStudyRecorded, event.Type)
	assert.Equal(t, studiedAt, event.CreatedAt)

	var payload StudyRecorded
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, se.ID, payload.EventID)
	assert.Equal(t, "H1254", payload.WordID)
	assert.Equal(t, 2, payload.NewIndex)
	assert.Equal(t, domain.AnswerEasy, payload.Quality)
	assert.True(t, payload.FirstExposure)
	assert.True(t, payload.DueAt.Equal(studiedAt.Add(2*time.Minute)))
}

func TestNewEventRejectsUnencodablePayload(t *testing.T) {
	_, err := NewEvent("bad", make(chan int), time.Now())
	assert.Error(t, err)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	// The last event received by this handler
	LastEvent *Event
	// Error to return from HandleEvent
	HandlerError error
	// Count of events handled
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestHandlerFunc(t *testing.T) {
	called := false
	var h EventHandler = HandlerFunc(func(ctx context.Context, event *Event) error {
		called = true
		return errors.New("handled")
	})

	err := h.HandleEvent(context.Background(), &Event{})
	assert.True(t, called)
	assert.EqualError(t, err, "handled")
}
