package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/slice-of-life/backend/internal/apierr"
)

// Querier is the execution surface a transaction scope yields to its caller.
// pgx.Tx satisfies it.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Collect runs stmt on q and hydrates every result row into a T by column
// name, using the record's db tags. Column names, not positions, carry the
// contract between templates and records.
func Collect[T any](ctx context.Context, q Querier, stmt PreparedStatement) ([]T, error) {
	rows, err := runQuery(ctx, q, stmt)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, apierr.Wrap(apierr.Internal, "could not decode result rows", err)
	}
	return out, nil
}

// CollectScalars is Collect for single-column results.
func CollectScalars[T any](ctx context.Context, q Querier, stmt PreparedStatement) ([]T, error) {
	rows, err := runQuery(ctx, q, stmt)
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, pgx.RowTo[T])
	if err != nil {
		return nil, apierr.Wrap(apierr.Internal, "could not decode result rows", err)
	}
	return out, nil
}

// Exec runs a statement with no result set (inserts).
func Exec(ctx context.Context, q Querier, stmt PreparedStatement) error {
	if q == nil {
		return errNoConnection()
	}
	if _, err := q.Exec(ctx, stmt.SQL, stmt.Args...); err != nil {
		return wrapExecutionErr(err)
	}
	return nil
}

func runQuery(ctx context.Context, q Querier, stmt PreparedStatement) (pgx.Rows, error) {
	if q == nil {
		return nil, errNoConnection()
	}
	rows, err := q.Query(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, wrapExecutionErr(err)
	}
	return rows, nil
}

func errNoConnection() error {
	return apierr.New(apierr.ServiceUnavailable, "no live connection to execute query on")
}

func wrapExecutionErr(err error) error {
	// A closed transaction means the caller held on to a Querier past its
	// scope, or the connection itself went away.
	if errors.Is(err, pgx.ErrTxClosed) || errors.Is(err, pgx.ErrTxCommitRollback) {
		return apierr.Wrap(apierr.ServiceUnavailable, "connection is no longer usable", err)
	}
	return apierr.Wrap(apierr.Internal, "statement execution failed", err)
}
