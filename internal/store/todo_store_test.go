package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/worklog/internal/model"
	"github.com/nhle/worklog/internal/store"
	"github.com/nhle/worklog/tests/testutil"
)

func TestTodoRoundTrip(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, s, "todo-owner")

	catID, err := s.CreateTodoCategory(ctx, model.TodoCategory{
		Name:     "Work",
		IsActive: true,
	})
	require.NoError(t, err)

	due := dateAt(20)
	todoID, err := s.CreateTodo(ctx, model.TodoItem{
		UserID:      user.ID,
		Title:       "Write report",
		Description: "quarterly numbers",
		DueDate:     &due,
		Status:      model.TodoStatusInProgress,
		Priority:    model.PriorityHigh,
		CategoryID:  &catID,
		CreatedAt:   dateAt(1),
	})
	require.NoError(t, err)

	_, err = s.CreateSubTask(ctx, model.TodoSubTask{
		TodoID:      todoID,
		Title:       "collect data",
		IsCompleted: true,
		SortOrder:   1,
		CreatedAt:   dateAt(1),
	})
	require.NoError(t, err)

	_, err = s.CreateComment(ctx, model.TodoComment{
		TodoID:    todoID,
		UserID:    user.ID,
		Content:   "halfway there",
		CreatedAt: dateAt(2),
	})
	require.NoError(t, err)

	attID, err := s.CreateAttachment(ctx, model.TodoAttachment{
		TodoID:      todoID,
		FileName:    "report.pdf",
		FileSize:    4,
		ContentType: "application/pdf",
		FileData:    []byte{1, 2, 3, 4},
		UploadedAt:  dateAt(3),
	})
	require.NoError(t, err)

	todos, err := s.GetTodos(ctx, store.TodoFilter{UserID: user.ID})
	require.NoError(t, err)
	require.Len(t, todos, 1)

	todo := todos[0]
	assert.Equal(t, "Write report", todo.Title)
	assert.Equal(t, model.TodoStatusInProgress, todo.Status)
	assert.Equal(t, model.PriorityHigh, todo.Priority)
	require.NotNil(t, todo.CategoryID)
	assert.Equal(t, catID, *todo.CategoryID)
	require.NotNil(t, todo.CategoryName)
	assert.Equal(t, "Work", *todo.CategoryName)
	require.NotNil(t, todo.DueDate)
	assert.WithinDuration(t, due, *todo.DueDate, time.Second)

	require.Len(t, todo.SubTasks, 1)
	assert.Equal(t, "collect data", todo.SubTasks[0].Title)
	assert.True(t, todo.SubTasks[0].IsCompleted)

	require.Len(t, todo.Comments, 1)
	assert.Equal(t, "halfway there", todo.Comments[0].Content)
	assert.Equal(t, "todo-owner", todo.Comments[0].Username)

	require.Len(t, todo.Attachments, 1)
	assert.Equal(t, "report.pdf", todo.Attachments[0].FileName)
	assert.Empty(t, todo.Attachments[0].FileData, "listing loads metadata only")

	data, err := s.GetAttachmentData(ctx, attID)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, data)
}

func TestTodoUncategorized(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, s, "plain")

	_, err := s.CreateTodo(ctx, model.TodoItem{
		UserID:    user.ID,
		Title:     "no category",
		CreatedAt: dateAt(1),
	})
	require.NoError(t, err)

	todos, err := s.GetTodos(ctx, store.TodoFilter{UserID: user.ID})
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Nil(t, todos[0].CategoryID)
	assert.Nil(t, todos[0].CategoryName)
	assert.Equal(t, model.TodoStatusPending, todos[0].Status, "empty status defaults")
	assert.Equal(t, model.PriorityMedium, todos[0].Priority, "empty priority defaults")
}

func TestTodoCreatedAtFilter(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	user := testutil.NewTestUser(t, s, "filtered")

	for day := 1; day <= 3; day++ {
		_, err := s.CreateTodo(ctx, model.TodoItem{
			UserID:    user.ID,
			Title:     "todo",
			CreatedAt: dateAt(day),
		})
		require.NoError(t, err)
	}

	// Todos filter on creation time, not a record date.
	todos, err := s.GetTodos(ctx, store.TodoFilter{
		UserID: user.ID,
		From:   ptr(dateAt(2)),
	})
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestGetAttachmentDataNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.GetAttachmentData(context.Background(), 9999)
	require.ErrorIs(t, err, store.ErrNotFound)
}
