// Package events provides in-process publication of domain events.
//
// The study service emits a StudyRecorded event after each answer commits.
// The reminder scheduler subscribes to that type through
// InMemoryEventEmitter.Subscribe; the service never sees its subscribers.
// Handlers run synchronously on the emitting goroutine, and a handler that
// fails or panics does not prevent delivery to the others.
package events
