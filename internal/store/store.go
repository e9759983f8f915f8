package store

import (
	"context"
	"time"

	"github.com/nhle/worklog/internal/model"
)

// WorkLogFilter controls filtering for work-log queries.
// The date range applies to record_date, inclusive on both ends.
type WorkLogFilter struct {
	UserID int64
	From   *time.Time
	To     *time.Time
}

// TodoFilter controls filtering for todo queries.
// The date range applies to created_at, not due_date, inclusive on both
// ends. Work logs filter on record_date instead; exports depend on the
// difference.
type TodoFilter struct {
	UserID int64
	From   *time.Time
	To     *time.Time
}

// Store defines the persistence interface for users, shared lookup tables,
// work logs, and todos with their associated child entities.
type Store interface {
	// === Users ===

	CreateUser(ctx context.Context, u model.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	// === Shared lookup tables (project, department, work type, process status) ===

	ListLookupItems(ctx context.Context, cat model.LookupCategory) ([]model.LookupItem, error)
	FindLookupItemByName(ctx context.Context, cat model.LookupCategory, name string) (*model.LookupItem, error)
	FindLookupItemsByNames(ctx context.Context, cat model.LookupCategory, names []string) ([]model.LookupItem, error)
	CreateLookupItem(ctx context.Context, cat model.LookupCategory, item model.LookupItem) (int64, error)

	// === Todo categories ===

	ListTodoCategories(ctx context.Context) ([]model.TodoCategory, error)
	FindTodoCategoryByName(ctx context.Context, name string) (*model.TodoCategory, error)
	FindTodoCategoriesByNames(ctx context.Context, names []string) ([]model.TodoCategory, error)
	CreateTodoCategory(ctx context.Context, c model.TodoCategory) (int64, error)

	// === Work logs ===

	GetWorkLogs(ctx context.Context, filter WorkLogFilter) ([]model.WorkLogEntry, error)
	CreateWorkLog(ctx context.Context, e model.WorkLogEntry) (int64, error)
	AddWorkLogDepartment(ctx context.Context, workLogID, departmentID int64) error
	AddWorkLogWorkType(ctx context.Context, workLogID, workTypeID int64) error

	// === Todos ===

	GetTodos(ctx context.Context, filter TodoFilter) ([]model.TodoItem, error)
	CreateTodo(ctx context.Context, t model.TodoItem) (int64, error)
	CreateSubTask(ctx context.Context, st model.TodoSubTask) (int64, error)
	CreateComment(ctx context.Context, c model.TodoComment) (int64, error)
	CreateAttachment(ctx context.Context, a model.TodoAttachment) (int64, error)
	GetAttachmentData(ctx context.Context, id int64) ([]byte, error)

	// === Transactions ===

	// WithTx runs fn against a transaction-scoped Store. A non-nil error from
	// fn rolls the transaction back and is returned; otherwise the
	// transaction commits. Nesting is not supported.
	WithTx(ctx context.Context, fn func(Store) error) error
}
