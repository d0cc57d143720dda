package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/phrazzld/lexicon-srs/internal/platform/logger"
	"github.com/phrazzld/lexicon-srs/internal/store"
)

// state is the full contents of the store. Word pointers in the map are never
// mutated in place; writes replace the entry with a fresh copy.
type state struct {
	words  map[string]*domain.Word
	events []domain.StudyEvent
}

func newState() *state {
	return &state{words: make(map[string]*domain.Word)}
}

// fork returns a copy that can be modified without affecting s. The event
// slice is capped so appends on the fork never write into s's backing array.
func (st *state) fork() *state {
	words := make(map[string]*domain.Word, len(st.words))
	for id, w := range st.words {
		words[id] = w
	}
	return &state{
		words:  words,
		events: st.events[:len(st.events):len(st.events)],
	}
}

// Store keeps words and study events in memory. It implements
// store.Transactor; Words and Events return autocommit views.
type Store struct {
	mu      sync.RWMutex // guards data
	writeMu sync.Mutex   // serializes writers, including whole transactions
	data    *state
	logger  *slog.Logger
}

// Compile-time check
var _ store.Transactor = (*Store)(nil)

// NewStore creates an empty Store.
// If logger is nil, a default logger will be used.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		data:   newState(),
		logger: logger.With(slog.String("component", "memory_store")),
	}
}

// Words returns a WordStore whose writes are applied immediately.
func (s *Store) Words() store.WordStore {
	return &WordStore{s: s}
}

// Events returns a StudyEventStore whose appends are applied immediately.
func (s *Store) Events() store.StudyEventStore {
	return &StudyEventStore{s: s}
}

// WithinTx runs fn against a private fork of the store and publishes the fork
// only if fn returns nil. Transactions are serialized, so GetForUpdate inside
// fn observes no concurrent writer.
func (s *Store) WithinTx(ctx context.Context, fn store.StoresFn) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := ctx.Err(); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	tx := s.data.fork()
	s.mu.RUnlock()

	stores := store.Stores{
		Words:  &WordStore{s: s, tx: tx},
		Events: &StudyEventStore{s: s, tx: tx},
	}

	if err := fn(ctx, stores); err != nil {
		log.Debug("discarded in-memory transaction due to error",
			slog.String("error", err.Error()))
		return err
	}

	// A cancelled context must not publish partial work.
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.data = tx
	s.mu.Unlock()

	log.Debug("in-memory transaction committed",
		slog.Int("word_count", len(tx.words)),
		slog.Int("event_count", len(tx.events)))
	return nil
}

// read runs fn with a consistent view of the store.
func (s *Store) read(tx *state, fn func(st *state)) {
	if tx != nil {
		fn(tx)
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.data)
}

// write runs fn against the transaction fork, or against the live data when
// tx is nil.
func (s *Store) write(tx *state, fn func(st *state) error) error {
	if tx != nil {
		return fn(tx)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}
