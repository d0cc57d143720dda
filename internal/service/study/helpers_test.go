package study

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/phrazzld/lexicon-srs/internal/domain"
	"github.com/phrazzld/lexicon-srs/internal/domain/srs"
	"github.com/phrazzld/lexicon-srs/internal/platform/memory"
	"github.com/phrazzld/lexicon-srs/internal/platform/sqlite"
	"github.com/phrazzld/lexicon-srs/internal/store"
	"github.com/phrazzld/lexicon-srs/internal/testdb"
)

// epoch is the zero of the scenario timelines; times are epoch + seconds.
var epoch = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func at(seconds int64) time.Time {
	return epoch.Add(time.Duration(seconds) * time.Second)
}

// manualClock is a settable Clock.
type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock(now time.Time) *manualClock {
	return &manualClock{now: now}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixture struct {
	svc   Service
	mem   *memory.Store
	clock *manualClock
}

func newFixture(t *testing.T, opts Options, logger *slog.Logger) *fixture {
	t.Helper()
	engine, err := srs.NewDefaultService()
	require.NoError(t, err)

	mem := memory.NewStore(discardLogger())
	clock := newManualClock(epoch)
	if opts.Clock == nil {
		opts.Clock = clock
	}
	if logger == nil {
		logger = discardLogger()
	}
	svc := NewService(mem, store.Stores{Words: mem.Words(), Events: mem.Events()}, engine, opts, logger)
	return &fixture{svc: svc, mem: mem, clock: clock}
}

// newSQLiteService builds a Service over a migrated in-memory SQLite
// database.
func newSQLiteService(t *testing.T, opts Options) Service {
	t.Helper()
	engine, err := srs.NewDefaultService()
	require.NoError(t, err)

	txr := sqlite.NewTransactor(testdb.GetSQLiteDBWithT(t), discardLogger())
	if opts.Clock == nil {
		opts.Clock = newManualClock(epoch)
	}
	return NewService(txr, txr.Stores(), engine, opts, discardLogger())
}

// seedWord stores a word at the given interval index and due time.
func (f *fixture) seedWord(t *testing.T, id string, index int, dueAt time.Time) {
	t.Helper()
	ctx := context.Background()
	w, err := domain.NewWord(id, epoch)
	require.NoError(t, err)
	require.NoError(t, f.mem.Words().Create(ctx, w))
	w.IntervalIndex = index
	w.DueAt = dueAt
	require.NoError(t, f.mem.Words().Update(ctx, w))
}

// failingTransactor wraps a Transactor and makes event appends fail inside
// the transaction.
type failingTransactor struct {
	inner store.Transactor
	err   error
}

func (f failingTransactor) WithinTx(ctx context.Context, fn store.StoresFn) error {
	return f.inner.WithinTx(ctx, func(ctx context.Context, stores store.Stores) error {
		stores.Events = failingEvents{StudyEventStore: stores.Events, err: f.err}
		return fn(ctx, stores)
	})
}

type failingEvents struct {
	store.StudyEventStore
	err error
}

func (f failingEvents) Append(context.Context, *domain.StudyEvent) error {
	return f.err
}
