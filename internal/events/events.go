package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/lexicon-srs/internal/domain"
)

// Event types
const (
	// TypeStudyRecorded is emitted after an answer has been committed.
	TypeStudyRecorded = "study.recorded"
)

// Event is an envelope for a domain event.
type Event struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type names the payload schema, e.g. TypeStudyRecorded
	Type string `json:"type"`

	// Payload contains the event-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *Event) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEvent creates a new Event with the specified type and payload.
func NewEvent(eventType string, payload interface{}, createdAt time.Time) (*Event, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: createdAt,
	}, nil
}

// StudyRecorded is the payload of a TypeStudyRecorded event.
type StudyRecorded struct {
	EventID       uuid.UUID            `json:"event_id"`
	WordID        string               `json:"word_id"`
	PreviousIndex int                  `json:"previous_index"`
	NewIndex      int                  `json:"new_index"`
	Quality       domain.AnswerQuality `json:"quality"`
	FirstExposure bool                 `json:"first_exposure"`
	StudiedAt     time.Time            `json:"studied_at"`
	DueAt         time.Time            `json:"due_at"`
}

// NewStudyRecordedEvent wraps a committed study event and the word's new due
// time.
func NewStudyRecordedEvent(e *domain.StudyEvent, dueAt time.Time) (*Event, error) {
	return NewEvent(TypeStudyRecorded, StudyRecorded{
		EventID:       e.ID,
		WordID:        e.WordID,
		PreviousIndex: e.PreviousIndex,
		NewIndex:      e.NewIndex,
		Quality:       e.Quality,
		FirstExposure: e.FirstExposure,
		StudiedAt:     e.StudiedAt,
		DueAt:         dueAt,
	}, e.StudiedAt)
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *Event) error
}

// HandlerFunc adapts a function to EventHandler.
type HandlerFunc func(ctx context.Context, event *Event) error

// HandleEvent calls f.
func (f HandlerFunc) HandleEvent(ctx context.Context, event *Event) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *Event) error
}
