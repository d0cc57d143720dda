package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/lexicon-srs/internal/platform/logger"
)

// subscription pairs a handler with the event type it listens to. An empty
// eventType matches every event.
type subscription struct {
	eventType string
	handler   EventHandler
}

// InMemoryEventEmitter dispatches events synchronously to in-process
// subscribers, in subscription order.
type InMemoryEventEmitter struct {
	mu     sync.RWMutex
	subs   []subscription
	logger *slog.Logger
}

// Ensure InMemoryEventEmitter implements EventEmitter
var _ EventEmitter = (*InMemoryEventEmitter)(nil)

// NewInMemoryEventEmitter creates an emitter with no subscribers.
// If logger is nil, a default logger will be used.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{
		logger: logger.With(slog.String("component", "event_emitter")),
	}
}

// RegisterHandler subscribes handler to every event type.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.Subscribe("", handler)
}

// Subscribe registers handler for events of eventType only.
func (e *InMemoryEventEmitter) Subscribe(eventType string, handler EventHandler) {
	if handler == nil {
		panic("handler cannot be nil")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.subs = append(e.subs, subscription{eventType: eventType, handler: handler})
	e.logger.Debug("registered event handler",
		slog.String("event_type", eventType),
		slog.Int("handler_count", len(e.subs)))
}

// EmitEvent delivers event to every matching subscriber. A failing or
// panicking handler does not stop delivery to the rest; all handler errors
// are joined into the returned error.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}

	e.mu.RLock()
	subs := make([]subscription, 0, len(e.subs))
	for _, s := range e.subs {
		if s.eventType == "" || s.eventType == event.Type {
			subs = append(subs, s)
		}
	}
	e.mu.RUnlock()

	log := logger.FromContextOrDefault(ctx, e.logger).With(
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type))
	log.Debug("emitting event", slog.Int("handler_count", len(subs)))

	var errs []error
	for i, s := range subs {
		if err := dispatch(ctx, s.handler, event); err != nil {
			log.Error("event handler failed",
				slog.String("error", err.Error()),
				slog.Int("handler_index", i))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// dispatch runs one handler, turning a panic into an error.
func dispatch(ctx context.Context, h EventHandler, event *Event) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("event handler panicked: %v", p)
		}
	}()
	return h.HandleEvent(ctx, event)
}
