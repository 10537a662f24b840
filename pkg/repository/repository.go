// Package repository provides generic database helpers for transactions
// and typed query execution.
package repository

import (
	"context"
	"database/sql"
)

// Querier is implemented by *sql.DB, *sql.Tx, and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Executor is implemented by *sql.DB, *sql.Tx, and *sql.Conn.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Scanner abstracts row scanning so scan functions work for single rows
// and row sets alike.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanFunc converts a Scanner into a typed value. Domain packages define
// one per entity type.
type ScanFunc[T any] func(Scanner) (T, error)

// WithTx executes fn within a transaction, handling Begin, Commit, and
// Rollback automatically.
func WithTx[T any](ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) (T, error)) (T, error) {
	var zero T

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return zero, err
	}
	defer tx.Rollback()

	result, err := fn(tx)
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(); err != nil {
		return zero, err
	}

	return result, nil
}

// QueryOne executes a query expected to return exactly one row.
func QueryOne[T any](ctx context.Context, q Querier, query string, args []any, scan ScanFunc[T]) (T, error) {
	var zero T
	result, err := scan(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return zero, err
	}
	return result, nil
}

// QueryMany executes a query returning any number of rows. An empty result
// is an empty slice, never nil.
func QueryMany[T any](ctx context.Context, q Querier, query string, args []any, scan ScanFunc[T]) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ExecExpectOne executes a statement expected to affect exactly one row,
// returning sql.ErrNoRows when none were.
func ExecExpectOne(ctx context.Context, e Executor, query string, args ...any) error {
	result, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
