package service

import (
	"context"
	"io"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/slice-of-life/backend/internal/database"
)

// stubRunner runs transaction scopes directly against a scripted querier, so
// assembler tests exercise the same query sequence the pool would.
type stubRunner struct {
	q database.Querier
}

func (s stubRunner) WithTransaction(ctx context.Context, fn func(q database.Querier) error) error {
	return fn(s.q)
}

// stubSpace fakes the CDN: share links are derived from the key, uploads are
// recorded.
type stubSpace struct {
	savedKeys  []string
	savedBytes int64
}

func (s *stubSpace) GetShareLink(ctx context.Context, key string) (string, error) {
	return "https://cdn.test/" + key, nil
}

func (s *stubSpace) SaveFile(ctx context.Context, key string, r io.Reader, size int64) error {
	s.savedKeys = append(s.savedKeys, key)
	s.savedBytes += size
	return nil
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func userRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"handle", "password_hash", "email", "salt", "first_name", "last_name", "profile_pic"})
}

func postRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"post_id", "free_text", "image", "created_at", "posted_by", "completes"})
}

func taskRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"task_id", "title", "description", "active"})
}

func commentRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"comment_id", "created_at", "free_text", "parent", "comment_by", "comment_on"})
}

func reactionRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"reaction_id", "emoji", "reacted_by", "reacted_to"})
}

func ptr[T any](v T) *T { return &v }
