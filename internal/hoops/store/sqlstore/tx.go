package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/hoops/internal/hoops/store"
)

type txStore struct {
	tx      *sql.Tx
	dialect Dialect
	now     func() time.Time
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

// Close is a no-op; the outer pool stays open.
func (t *txStore) Close() error { return nil }

// Ping is a no-op; the connection is held by the transaction.
func (t *txStore) Ping(context.Context) error { return nil }

// ApplyMigrations is a no-op inside a transaction.
func (t *txStore) ApplyMigrations() error { return nil }

func (t *txStore) WithTx(context.Context, func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Accounts() store.Accounts {
	return &accountsRepo{q: t.tx, d: t.dialect, now: t.now}
}

func (t *txStore) Entries() store.Entries {
	return &entriesRepo{q: t.tx, d: t.dialect}
}
