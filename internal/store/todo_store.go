package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/worklog/internal/model"
)

// GetTodos retrieves todos matching the filter, ordered by creation time,
// with category name, subtasks, comments, and attachment metadata eagerly
// resolved. Attachment bytes are not loaded; use GetAttachmentData.
func (s *SQLiteStore) GetTodos(ctx context.Context, filter TodoFilter) ([]model.TodoItem, error) {
	conditions := []string{"t.user_id = ?"}
	args := []interface{}{filter.UserID}

	if filter.From != nil {
		conditions = append(conditions, "t.created_at >= ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, "t.created_at <= ?")
		args = append(args, *filter.To)
	}

	query := `
		SELECT t.id, t.user_id, t.title, t.description, t.due_date,
		       t.status, t.priority, t.category_id,
		       t.created_at, t.updated_at, t.completed_at,
		       c.name
		FROM todos t
		LEFT JOIN todo_categories c ON c.id = t.category_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY t.created_at, t.id`

	rows, err := s.q.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	var todos []model.TodoItem
	for rows.Next() {
		t, err := scanTodoItem(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range todos {
		id := todos[i].ID

		subTasks, err := s.getSubTasks(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading subtasks for todo %d: %w", id, err)
		}
		todos[i].SubTasks = subTasks

		comments, err := s.getComments(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading comments for todo %d: %w", id, err)
		}
		todos[i].Comments = comments

		attachments, err := s.getAttachmentMeta(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("loading attachments for todo %d: %w", id, err)
		}
		todos[i].Attachments = attachments
	}

	return todos, nil
}

// CreateTodo inserts a new todo row and returns its id.
// Timestamps are stored as given, not reset; imports rely on this.
func (s *SQLiteStore) CreateTodo(ctx context.Context, t model.TodoItem) (int64, error) {
	if strings.TrimSpace(t.Title) == "" {
		return 0, fmt.Errorf("todo title must not be empty")
	}
	if t.Status == "" {
		t.Status = model.TodoStatusPending
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}

	res, err := s.q.ExecContext(ctx, `
		INSERT INTO todos (
			user_id, title, description, due_date, status, priority,
			category_id, created_at, updated_at, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, t.Title, t.Description, t.DueDate, t.Status, t.Priority,
		t.CategoryID, t.CreatedAt, t.UpdatedAt, t.CompletedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("creating todo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading todo id: %w", err)
	}
	return id, nil
}

// CreateSubTask inserts a subtask under an existing todo and returns its id.
func (s *SQLiteStore) CreateSubTask(ctx context.Context, st model.TodoSubTask) (int64, error) {
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO todo_subtasks (todo_id, title, is_completed, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		st.TodoID, st.Title, boolToInt(st.IsCompleted), st.SortOrder, st.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("creating subtask for todo %d: %w", st.TodoID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading subtask id: %w", err)
	}
	return id, nil
}

// CreateComment inserts a comment under an existing todo and returns its id.
func (s *SQLiteStore) CreateComment(ctx context.Context, c model.TodoComment) (int64, error) {
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO todo_comments (todo_id, user_id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.TodoID, c.UserID, c.Content, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("creating comment for todo %d: %w", c.TodoID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading comment id: %w", err)
	}
	return id, nil
}

// CreateAttachment inserts an attachment (bytes included) under an existing
// todo and returns its id.
func (s *SQLiteStore) CreateAttachment(ctx context.Context, a model.TodoAttachment) (int64, error) {
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO todo_attachments (todo_id, file_name, file_size, content_type, file_data, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		a.TodoID, a.FileName, a.FileSize, a.ContentType, a.FileData, a.UploadedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("creating attachment %q for todo %d: %w", a.FileName, a.TodoID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading attachment id: %w", err)
	}
	return id, nil
}

// GetAttachmentData retrieves the stored bytes of a single attachment.
func (s *SQLiteStore) GetAttachmentData(ctx context.Context, id int64) ([]byte, error) {
	var data []byte
	err := s.q.GetContext(ctx, &data,
		"SELECT file_data FROM todo_attachments WHERE id = ?", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("attachment %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting attachment %d data: %w", id, err)
	}
	return data, nil
}

func (s *SQLiteStore) getSubTasks(ctx context.Context, todoID int64) ([]model.TodoSubTask, error) {
	rows, err := s.q.QueryxContext(ctx, `
		SELECT id, todo_id, title, is_completed, sort_order, created_at
		FROM todo_subtasks
		WHERE todo_id = ?
		ORDER BY sort_order, id`, todoID)
	if err != nil {
		return nil, fmt.Errorf("querying subtasks: %w", err)
	}
	defer rows.Close()

	var subTasks []model.TodoSubTask
	for rows.Next() {
		var (
			st           model.TodoSubTask
			completedInt int
		)
		err := rows.Scan(&st.ID, &st.TodoID, &st.Title, &completedInt, &st.SortOrder, &st.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning subtask row: %w", err)
		}
		st.IsCompleted = completedInt != 0
		subTasks = append(subTasks, st)
	}
	return subTasks, rows.Err()
}

func (s *SQLiteStore) getComments(ctx context.Context, todoID int64) ([]model.TodoComment, error) {
	rows, err := s.q.QueryxContext(ctx, `
		SELECT c.id, c.todo_id, c.user_id, c.content, c.created_at, c.updated_at, u.username
		FROM todo_comments c
		INNER JOIN users u ON u.id = c.user_id
		WHERE c.todo_id = ?
		ORDER BY c.created_at, c.id`, todoID)
	if err != nil {
		return nil, fmt.Errorf("querying comments: %w", err)
	}
	defer rows.Close()

	var comments []model.TodoComment
	for rows.Next() {
		var c model.TodoComment
		err := rows.Scan(&c.ID, &c.TodoID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt, &c.Username)
		if err != nil {
			return nil, fmt.Errorf("scanning comment row: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (s *SQLiteStore) getAttachmentMeta(ctx context.Context, todoID int64) ([]model.TodoAttachment, error) {
	rows, err := s.q.QueryxContext(ctx, `
		SELECT id, todo_id, file_name, file_size, content_type, uploaded_at
		FROM todo_attachments
		WHERE todo_id = ?
		ORDER BY uploaded_at, id`, todoID)
	if err != nil {
		return nil, fmt.Errorf("querying attachments: %w", err)
	}
	defer rows.Close()

	var attachments []model.TodoAttachment
	for rows.Next() {
		var a model.TodoAttachment
		err := rows.Scan(&a.ID, &a.TodoID, &a.FileName, &a.FileSize, &a.ContentType, &a.UploadedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning attachment row: %w", err)
		}
		attachments = append(attachments, a)
	}
	return attachments, rows.Err()
}

// scanTodoItem scans a todo row (with joined category name) from a sqlx.Rows.
func scanTodoItem(rows *sqlx.Rows) (model.TodoItem, error) {
	var t model.TodoItem

	err := rows.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate,
		&t.Status, &t.Priority, &t.CategoryID,
		&t.CreatedAt, &t.UpdatedAt, &t.CompletedAt,
		&t.CategoryName,
	)
	if err != nil {
		return model.TodoItem{}, fmt.Errorf("scanning todo row: %w", err)
	}
	return t, nil
}
