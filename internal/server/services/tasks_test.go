package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophtasks/internal/common"
	"github.com/dmitrijs2005/gophtasks/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService(t *testing.T) (*TaskService, *fakeRepoManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	rm := newFakeRepoManager()
	return NewTaskService(db, rm), rm, mock
}

func ptr(s string) *string { return &s }

func TestTaskService_Create(t *testing.T) {
	svc, _, _ := newTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, 7, "write docs", ptr("readme"), models.TaskStatusNew)
	require.NoError(t, err)
	assert.Equal(t, int64(7), task.UserID)
	assert.Equal(t, models.TaskStatusNew, task.Status)

	_, err = svc.Create(ctx, 8, "write docs", nil, models.TaskStatusNew)
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestTaskService_CreateValidation(t *testing.T) {
	svc, _, _ := newTaskService(t)

	tests := []struct {
		name   string
		title  string
		desc   *string
		status models.TaskStatus
	}{
		{"empty title", "", nil, models.TaskStatusNew},
		{"long title", strings.Repeat("я", 51), nil, models.TaskStatusNew},
		{"long description", "t", ptr(strings.Repeat("d", 201)), models.TaskStatusNew},
		{"unknown status", "t", nil, "archived"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), 1, tt.title, tt.desc, tt.status)
			assert.ErrorIs(t, err, common.ErrorValidation)
		})
	}

	_, err := svc.Create(context.Background(), 1, strings.Repeat("я", 50), ptr(strings.Repeat("d", 200)), models.TaskStatusDone)
	assert.NoError(t, err)
}

func TestTaskService_ScopedToOwner(t *testing.T) {
	svc, _, _ := newTaskService(t)
	ctx := context.Background()

	mine, err := svc.Create(ctx, 1, "mine", nil, models.TaskStatusNew)
	require.NoError(t, err)
	_, err = svc.Create(ctx, 2, "theirs", nil, models.TaskStatusNew)
	require.NoError(t, err)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "mine", list[0].Title)

	_, err = svc.Get(ctx, 2, mine.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 2, mine.ID), common.ErrorNotFound)
	assert.NoError(t, svc.Delete(ctx, 1, mine.ID))

	_, err = svc.Get(ctx, 1, mine.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestTaskService_ListEmpty(t *testing.T) {
	svc, _, _ := newTaskService(t)

	list, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTaskService_UpdateStatus(t *testing.T) {
	svc, rm, mock := newTaskService(t)
	ctx := context.Background()

	task, err := svc.Create(ctx, 1, "t", nil, models.TaskStatusNew)
	require.NoError(t, err)

	t.Run("ok", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectCommit()

		got, err := svc.UpdateStatus(ctx, 1, task.ID, models.TaskStatusInProgress)
		require.NoError(t, err)
		assert.Equal(t, models.TaskStatusInProgress, got.Status)
		assert.Equal(t, []int64{task.ID}, rm.tasks.locked)
	})

	t.Run("invalid status never opens a transaction", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, 1, task.ID, "Завершена")
		assert.ErrorIs(t, err, common.ErrorValidation)
	})

	t.Run("not owner", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.UpdateStatus(ctx, 2, task.ID, models.TaskStatusDone)
		assert.ErrorIs(t, err, common.ErrorNotFound)
		assert.Equal(t, models.TaskStatusInProgress, rm.tasks.byID[task.ID].Status)
	})

	t.Run("update failure rolls back", func(t *testing.T) {
		boom := errors.New("boom")
		rm.tasks.updateFn = func(int64, models.TaskStatus) error { return boom }
		defer func() { rm.tasks.updateFn = nil }()

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.UpdateStatus(ctx, 1, task.ID, models.TaskStatusDone)
		assert.ErrorIs(t, err, boom)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
