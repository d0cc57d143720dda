// Package store declares the persistence contracts of the study core: the
// WordStore holding each word's interval index and due time, the append-only
// StudyEventStore log, and the Transactor that applies an answer's word update and
// event append as one unit.
//
// Implementations live under internal/platform (postgres, sqlite, memory).
// They translate driver failures into the sentinels in errors.go so callers
// can branch with errors.Is without knowing the backend.
package store
