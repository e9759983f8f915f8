package transfer

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/nhle/worklog/internal/model"
	"github.com/nhle/worklog/internal/store"
)

func day(d int) time.Time {
	return time.Date(2025, 4, d, 10, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

// seedSource populates a store with a small but complete data set: one row
// per lookup category, two work logs (one with junction members), and two
// todos (one with a subtask, a comment, and an attachment).
func seedSource(t *testing.T, s *store.SQLiteStore, user *model.User) {
	t.Helper()
	ctx := context.Background()

	projectID, err := s.CreateLookupItem(ctx, model.CategoryProject, model.LookupItem{
		Name: "Apollo", IsActive: true, SortOrder: 1,
	})
	require.NoError(t, err)
	deptID, err := s.CreateLookupItem(ctx, model.CategoryDepartment, model.LookupItem{
		Name: "QA", IsActive: true,
	})
	require.NoError(t, err)
	workTypeID, err := s.CreateLookupItem(ctx, model.CategoryWorkType, model.LookupItem{
		Name: "Review", IsActive: true,
	})
	require.NoError(t, err)
	statusID, err := s.CreateLookupItem(ctx, model.CategoryProcessStatus, model.LookupItem{
		Name: "Done", IsActive: true,
	})
	require.NoError(t, err)
	categoryID, err := s.CreateTodoCategory(ctx, model.TodoCategory{
		Name: "Personal", ColorCode: "#00ff00", IsActive: true,
	})
	require.NoError(t, err)

	wl1, err := s.CreateWorkLog(ctx, model.WorkLogEntry{
		UserID:          user.ID,
		Title:           "Week one",
		Content:         "regression sweep",
		RecordDate:      day(3),
		WorkHours:       7.5,
		ProjectID:       projectID,
		ProcessStatusID: statusID,
		CreatedAt:       day(3),
	})
	require.NoError(t, err)
	require.NoError(t, s.AddWorkLogDepartment(ctx, wl1, deptID))
	require.NoError(t, s.AddWorkLogWorkType(ctx, wl1, workTypeID))

	_, err = s.CreateWorkLog(ctx, model.WorkLogEntry{
		UserID:          user.ID,
		Title:           "Week two",
		RecordDate:      day(10),
		WorkHours:       4,
		ProjectID:       projectID,
		ProcessStatusID: statusID,
		CreatedAt:       day(10),
	})
	require.NoError(t, err)

	todoID, err := s.CreateTodo(ctx, model.TodoItem{
		UserID:     user.ID,
		Title:      "Pack bags",
		Status:     model.TodoStatusInProgress,
		Priority:   model.PriorityHigh,
		CategoryID: &categoryID,
		CreatedAt:  day(1),
	})
	require.NoError(t, err)
	_, err = s.CreateSubTask(ctx, model.TodoSubTask{
		TodoID: todoID, Title: "passport", SortOrder: 1, CreatedAt: day(1),
	})
	require.NoError(t, err)
	_, err = s.CreateComment(ctx, model.TodoComment{
		TodoID: todoID, UserID: user.ID, Content: "before friday", CreatedAt: day(2),
	})
	require.NoError(t, err)
	_, err = s.CreateAttachment(ctx, model.TodoAttachment{
		TodoID:      todoID,
		FileName:    "notes.txt",
		FileSize:    5,
		ContentType: "text/plain",
		FileData:    []byte("hello"),
		UploadedAt:  day(2),
	})
	require.NoError(t, err)

	_, err = s.CreateTodo(ctx, model.TodoItem{
		UserID:    user.ID,
		Title:     "Call bank",
		CreatedAt: day(4),
	})
	require.NoError(t, err)
}

// exportFullArchive exports everything the user owns into archive bytes.
func exportFullArchive(t *testing.T, s *store.SQLiteStore, userID int64, withAttachments bool) []byte {
	t.Helper()
	ctx := context.Background()

	exp := NewExporter(s, zerolog.Nop())
	m, err := exp.ExportFull(ctx, userID, nil, nil, withAttachments)
	require.NoError(t, err)

	attachments, err := exp.LoadAttachmentData(ctx, m)
	require.NoError(t, err)

	archive, err := exp.BuildArchive(m, attachments)
	require.NoError(t, err)
	return archive
}

// buildArchive serializes a hand-built manifest (plus optional extra
// entries) into archive bytes.
func buildArchive(t *testing.T, m *Manifest, files map[string][]byte) []byte {
	t.Helper()

	raw, err := encodeManifest(m)
	require.NoError(t, err)
	archive, err := writeArchive(raw, files)
	require.NoError(t, err)
	return archive
}
