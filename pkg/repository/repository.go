// Package repository holds the generic row helpers shared by the domain repositories.
package repository

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB and *sql.Tx the helpers need.
type DBTX interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// ScanFunc reads one row into T.
type ScanFunc[T any] func(Scanner) (T, error)

// WithTx runs fn in a transaction. The transaction commits only when fn succeeds.
func WithTx[T any](ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) (T, error)) (result T, err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return result, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if result, err = fn(tx); err != nil {
		return result, err
	}
	err = tx.Commit()
	return result, err
}

func QueryOne[T any](ctx context.Context, db DBTX, query string, args []any, scan ScanFunc[T]) (T, error) {
	return scan(db.QueryRowContext(ctx, query, args...))
}

// QueryMany collects every row. An empty result is a non-nil, zero-length slice
// so it encodes as [] rather than null.
func QueryMany[T any](ctx context.Context, db DBTX, query string, args []any, scan ScanFunc[T]) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ExecOne runs a statement that must touch exactly one row, reporting
// sql.ErrNoRows when it touched none.
func ExecOne(ctx context.Context, db DBTX, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil {
		return err
	} else if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
