package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Store owns the shared connection pool and the transaction boundary
// used by every mutation.
type Store struct {
	db *sqlx.DB
}

// NewStore constructs a Store over an open handle.
func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for read-only repositories.
func (s *Store) DB() *sqlx.DB {
	return s.db
}

// WithTx runs fn inside one transaction.  The transaction is committed
// when fn returns nil and rolled back otherwise, including on panic, so
// a failed mutation never leaves a partial write behind.  Errors from
// begin and commit are reported as ErrStorage.
func (s *Store) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return storageError("begin transaction", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cerr := tx.Commit(); cerr != nil {
			err = storageError("commit transaction", cerr)
		}
	}()
	return fn(tx)
}
