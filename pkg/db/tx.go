package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mneelabs/agent-gateway/internal/repository/db"
)

// TxRunner owns the connection pool and hands out sqlc Queries, either
// pool-backed for single statements or tx-bound inside WithTx/WithTxResult.
type TxRunner struct {
	database *sql.DB
}

// NewTxRunner creates a new TxRunner instance.
func NewTxRunner(database *sql.DB) *TxRunner {
	return &TxRunner{database: database}
}

// WithTx runs fn inside a transaction. An error from fn rolls back,
// otherwise the transaction commits.
func (r *TxRunner) WithTx(ctx context.Context, fn func(q *db.Queries) error) error {
	tx, err := r.database.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	q := db.New(tx)

	if err := fn(q); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// WithTxResult is WithTx for functions that produce a value, e.g. an insert
// followed by a read of the inserted row.
func WithTxResult[T any](ctx context.Context, r *TxRunner, fn func(q *db.Queries) (T, error)) (T, error) {
	var result T

	tx, err := r.database.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin transaction: %w", err)
	}

	q := db.New(tx)

	result, err = fn(q)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return result, fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return result, err
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("commit transaction: %w", err)
	}

	return result, nil
}

// Queries returns a pool-backed Queries instance for single-statement
// operations that need no transaction.
func (r *TxRunner) Queries() *db.Queries {
	return db.New(r.database)
}

// DB exposes the underlying pool for callers that need it directly, such as
// health probes.
func (r *TxRunner) DB() *sql.DB {
	return r.database
}
