package model

import "time"

// Todo status constants.
const (
	TodoStatusPending    = "pending"
	TodoStatusInProgress = "in_progress"
	TodoStatusCompleted  = "completed"
)

// Todo priority constants.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// TodoItem is a to-do entry owned by a user.
type TodoItem struct {
	ID          int64      `json:"id" db:"id"`
	UserID      int64      `json:"user_id" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	Status      string     `json:"status" db:"status"`
	Priority    string     `json:"priority" db:"priority"`
	CategoryID  *int64     `json:"category_id,omitempty" db:"category_id"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`

	// CategoryName is populated by queries that join with todo_categories.
	CategoryName *string `json:"category_name,omitempty" db:"-"`

	// Child collections, populated by queries that load the full item.
	SubTasks    []TodoSubTask    `json:"sub_tasks,omitempty" db:"-"`
	Comments    []TodoComment    `json:"comments,omitempty" db:"-"`
	Attachments []TodoAttachment `json:"attachments,omitempty" db:"-"`
}

// TodoSubTask is a checklist entry within a todo. Its lifecycle is bound to
// the parent todo (CASCADE delete).
type TodoSubTask struct {
	ID          int64     `json:"id" db:"id"`
	TodoID      int64     `json:"todo_id" db:"todo_id"`
	Title       string    `json:"title" db:"title"`
	IsCompleted bool      `json:"is_completed" db:"is_completed"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TodoComment is a comment on a todo, attributed to a user.
type TodoComment struct {
	ID        int64      `json:"id" db:"id"`
	TodoID    int64      `json:"todo_id" db:"todo_id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	Content   string     `json:"content" db:"content"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty" db:"updated_at"`

	// Username is populated by queries that join with users.
	Username string `json:"username,omitempty" db:"-"`
}

// TodoAttachment is a file attached to a todo. The bytes are stored inline
// in the attachment row; list queries load metadata only.
type TodoAttachment struct {
	ID          int64     `json:"id" db:"id"`
	TodoID      int64     `json:"todo_id" db:"todo_id"`
	FileName    string    `json:"file_name" db:"file_name"`
	FileSize    int64     `json:"file_size" db:"file_size"`
	ContentType string    `json:"content_type" db:"content_type"`
	FileData    []byte    `json:"-" db:"file_data"`
	UploadedAt  time.Time `json:"uploaded_at" db:"uploaded_at"`
}
