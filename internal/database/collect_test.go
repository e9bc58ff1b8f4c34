package database

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slice-of-life/backend/internal/apierr"
	"github.com/slice-of-life/backend/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestCollectHydratesByColumnName(t *testing.T) {
	mock := newMock(t)
	stmt := SpecificUser("user1")

	mock.ExpectQuery(stmt.SQL).
		WithArgs("user1").
		WillReturnRows(pgxmock.NewRows(
			[]string{"handle", "password_hash", "email", "salt", "first_name", "last_name", "profile_pic"}).
			AddRow("user1", "hash1", "user1@mail.com", "salt1", "user1first", "user1last", "user1.png"))

	users, err := Collect[domain.User](context.Background(), mock, stmt)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, domain.User{
		Handle:       "user1",
		PasswordHash: "hash1",
		Email:        "user1@mail.com",
		Salt:         "salt1",
		FirstName:    "user1first",
		LastName:     "user1last",
		ProfilePic:   "user1.png",
	}, users[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectHandlesNullableColumns(t *testing.T) {
	mock := newMock(t)
	stmt := SpecificPost(1)

	created := time.Date(2022, 12, 15, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(stmt.SQL).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows(
			[]string{"post_id", "free_text", "image", "created_at", "posted_by", "completes"}).
			AddRow(1, (*string)(nil), "post pic 1", created, "user1", 2))

	posts, err := Collect[domain.Post](context.Background(), mock, stmt)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Nil(t, posts[0].FreeText)
	assert.Equal(t, "user1", posts[0].PostedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectScalars(t *testing.T) {
	mock := newMock(t)
	stmt := ReactionCount("1F600", 1)

	mock.ExpectQuery(stmt.SQL).
		WithArgs(1, "1F600").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	counts, err := CollectScalars[int64](context.Background(), mock, stmt)
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecRunsStatementWithNoResultSet(t *testing.T) {
	mock := newMock(t)
	stmt := InsertCompletion(domain.Completion{CompletedBy: "user1", CompletedTask: 2})

	mock.ExpectExec(stmt.SQL).
		WithArgs("user1", 2).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, Exec(context.Background(), mock, stmt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNilQuerierIsRejected(t *testing.T) {
	_, err := Collect[domain.User](context.Background(), nil, SpecificUser("user1"))
	require.Error(t, err)
	assert.Equal(t, apierr.ServiceUnavailable, apierr.KindOf(err))

	_, err = CollectScalars[string](context.Background(), nil, ReactorsByEmoji("1F600", 1))
	require.Error(t, err)
	assert.Equal(t, apierr.ServiceUnavailable, apierr.KindOf(err))

	err = Exec(context.Background(), nil, InsertCompletion(domain.Completion{}))
	require.Error(t, err)
	assert.Equal(t, apierr.ServiceUnavailable, apierr.KindOf(err))
}
