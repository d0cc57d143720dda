package store

import "context"

// Stores bundles the stores that take part in one unit of work.
type Stores struct {
	Words  WordStore
	Events StudyEventStore
}

// StoresFn is run by a Transactor with stores bound to a single transaction.
type StoresFn func(ctx context.Context, stores Stores) error

// Transactor runs a function atomically against the word and event stores:
// either every write made through the supplied stores becomes visible, or
// none does.
type Transactor interface {
	WithinTx(ctx context.Context, fn StoresFn) error
}
