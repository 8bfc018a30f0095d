package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lotusloft/studio/internal/studio/store"
)

// txStore is a Tx-scoped Store backed by a *sql.Tx.
type txStore struct {
	tx *sql.Tx
	q  dbtx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx, q: tx}
}

func (t *txStore) Users() store.Users       { return &usersRepo{q: t.q} }
func (t *txStore) Teachers() store.Teachers { return &teachersRepo{q: t.q} }
func (t *txStore) Sessions() store.Sessions { return &sessionsRepo{q: t.q} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) ApplyMigrations() error {
	return errors.New("sqlite: migrations cannot run inside a transaction")
}

func (t *txStore) Tx(context.Context) (store.Tx, error) {
	return nil, errors.New("sqlite: nested transactions are not supported")
}

func (t *txStore) WithTx(context.Context, func(tx store.Tx) error) error {
	return errors.New("sqlite: nested transactions are not supported")
}

func (t *txStore) Close() error { return nil }

func (t *txStore) Ping(context.Context) error { return nil }
