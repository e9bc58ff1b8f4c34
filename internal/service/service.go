// Package service holds the response assemblers: each operation turns one
// inbound request into one pool-scoped transaction, hydrates the rows it
// needs, and denormalizes foreign keys into full records.
package service

import (
	"context"
	"io"

	"github.com/slice-of-life/backend/internal/apierr"
	"github.com/slice-of-life/backend/internal/database"
)

// DB is the transactional surface services run on. *database.Instance
// satisfies it.
type DB interface {
	WithTransaction(ctx context.Context, fn func(q database.Querier) error) error
}

// ShareSpace is the CDN capability services consume. *cdn.SpaceIndex
// satisfies it.
type ShareSpace interface {
	GetShareLink(ctx context.Context, key string) (string, error)
	SaveFile(ctx context.Context, key string, r io.Reader, size int64) error
}

// requireOne runs a single-row lookup and fails with NotFound unless exactly
// one row came back. The schema should prevent more than one, but any other
// count is treated as missing data rather than trusted.
func requireOne[T any](ctx context.Context, q database.Querier, stmt database.PreparedStatement, what string) (T, error) {
	var zero T
	rows, err := database.Collect[T](ctx, q, stmt)
	if err != nil {
		return zero, err
	}
	if len(rows) != 1 {
		return zero, apierr.Newf(apierr.NotFound, "no such %s", what)
	}
	return rows[0], nil
}
