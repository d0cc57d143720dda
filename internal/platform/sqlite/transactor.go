package sqlite

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/phrazzld/lexicon-srs/internal/store"
)

// Transactor runs units of work inside a SQLite transaction.
type Transactor struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// Ensure Transactor implements store.Transactor interface
var _ store.Transactor = (*Transactor)(nil)

// NewTransactor creates a Transactor for db.
// If logger is nil, a default logger will be used.
func NewTransactor(db *sqlx.DB, logger *slog.Logger) *Transactor {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transactor{db: db, logger: logger}
}

// Stores returns stores bound directly to the database handle. They must not
// be used from inside WithinTx: the pool holds one connection, which the
// transaction owns.
func (t *Transactor) Stores() store.Stores {
	return store.Stores{
		Words:  NewWordStore(t.db, t.logger),
		Events: NewStudyEventStore(t.db, t.logger),
	}
}

// WithinTx implements store.Transactor.WithinTx. The transaction is rolled
// back if fn returns an error or panics.
func (t *Transactor) WithinTx(ctx context.Context, fn store.StoresFn) error {
	return store.RunInTransaction[*sqlx.Tx](ctx, t.logger, t.begin, t.bind, fn)
}

func (t *Transactor) begin(ctx context.Context) (*sqlx.Tx, error) {
	return t.db.BeginTxx(ctx, nil)
}

func (t *Transactor) bind(tx *sqlx.Tx) store.Stores {
	return store.Stores{
		Words:  NewWordStore(tx, t.logger),
		Events: NewStudyEventStore(tx, t.logger),
	}
}
