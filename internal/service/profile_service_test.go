package service

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slice-of-life/backend/internal/apierr"
	"github.com/slice-of-life/backend/internal/database"
	"github.com/slice-of-life/backend/internal/domain"
)

func newProfileService(mock pgxmock.PgxPoolIface) *ProfileService {
	return NewProfileService(stubRunner{q: mock}, &stubSpace{})
}

func TestProfileRedactsSensitiveFields(t *testing.T) {
	mock := newMock(t)
	svc := newProfileService(mock)

	stmt := database.SpecificUser("user1")
	mock.ExpectQuery(stmt.SQL).WithArgs("user1").WillReturnRows(
		userRows().AddRow("user1", "hash1", "user1@mail.com", "salt1", "user1first", "user1last", "user1.png"))

	user, err := svc.Profile(context.Background(), "user1")
	require.NoError(t, err)

	assert.Equal(t, "user1", user.Handle)
	assert.Equal(t, domain.FieldMask, user.PasswordHash)
	assert.Equal(t, domain.FieldMask, user.Salt)
	assert.Equal(t, domain.FieldMask, user.Email)
	assert.Equal(t, "user1first", user.FirstName)
	assert.Equal(t, "https://cdn.test/user1.png", user.ProfilePic)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileForUnknownHandle(t *testing.T) {
	mock := newMock(t)
	svc := newProfileService(mock)

	stmt := database.SpecificUser("ghost")
	mock.ExpectQuery(stmt.SQL).WithArgs("ghost").WillReturnRows(userRows())

	_, err := svc.Profile(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, apierr.NotFound, apierr.KindOf(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTasklistPartitionsTasks(t *testing.T) {
	mock := newMock(t)
	svc := newProfileService(mock)

	completed := database.CompletedTasks("user1")
	mock.ExpectQuery(completed.SQL).WithArgs("user1").WillReturnRows(
		taskRows().AddRow(1, "task1", "task1 description", true))

	available := database.AvailableTasks("user1")
	mock.ExpectQuery(available.SQL).WithArgs("user1").WillReturnRows(
		taskRows().
			AddRow(2, "task2", "task2 description", true).
			AddRow(3, "task3", "task3 description", true))

	list, err := svc.TasklistFor(context.Background(), "user1")
	require.NoError(t, err)

	require.Len(t, list.Completed, 1)
	assert.Equal(t, 1, list.Completed[0].TaskID)

	require.Len(t, list.Available, 2)
	assert.Equal(t, 2, list.Available[0].TaskID)
	assert.Equal(t, 3, list.Available[1].TaskID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTasklistCanBeEmptyOnBothSides(t *testing.T) {
	mock := newMock(t)
	svc := newProfileService(mock)

	completed := database.CompletedTasks("user9")
	mock.ExpectQuery(completed.SQL).WithArgs("user9").WillReturnRows(taskRows())
	available := database.AvailableTasks("user9")
	mock.ExpectQuery(available.SQL).WithArgs("user9").WillReturnRows(taskRows())

	list, err := svc.TasklistFor(context.Background(), "user9")
	require.NoError(t, err)
	assert.Empty(t, list.Completed)
	assert.Empty(t, list.Available)
	assert.NoError(t, mock.ExpectationsWereMet())
}
