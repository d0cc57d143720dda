package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/phrazzld/lexicon-srs/internal/store"
)

// Transactor runs units of work inside a PostgreSQL transaction.
type Transactor struct {
	db     *sql.DB
	logger *slog.Logger
}

// Ensure Transactor implements store.Transactor interface
var _ store.Transactor = (*Transactor)(nil)

// NewTransactor creates a Transactor for db.
// If logger is nil, a default logger will be used.
func NewTransactor(db *sql.DB, logger *slog.Logger) *Transactor {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Transactor{db: db, logger: logger}
}

// WithinTx implements store.Transactor.WithinTx
func (t *Transactor) WithinTx(ctx context.Context, fn store.StoresFn) error {
	return store.RunInTransaction[*sql.Tx](ctx, t.logger, t.begin, t.bind, fn)
}

func (t *Transactor) begin(ctx context.Context) (*sql.Tx, error) {
	return t.db.BeginTx(ctx, nil)
}

func (t *Transactor) bind(tx *sql.Tx) store.Stores {
	return store.Stores{
		Words:  NewPostgresWordStore(tx, t.logger),
		Events: NewPostgresStudyEventStore(tx, t.logger),
	}
}

// Stores returns stores bound directly to the connection pool.
func (t *Transactor) Stores() store.Stores {
	return store.Stores{
		Words:  NewPostgresWordStore(t.db, t.logger),
		Events: NewPostgresStudyEventStore(t.db, t.logger),
	}
}
