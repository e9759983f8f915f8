package model

import "time"

// WorkLogEntry is one daily work record owned by a user.
type WorkLogEntry struct {
	ID              int64      `json:"id" db:"id"`
	UserID          int64      `json:"user_id" db:"user_id"`
	Title           string     `json:"title" db:"title"`
	Content         string     `json:"content" db:"content"`
	RecordDate      time.Time  `json:"record_date" db:"record_date"`
	WorkHours       float64    `json:"work_hours" db:"work_hours"`
	ProjectID       int64      `json:"project_id" db:"project_id"`
	ProcessStatusID int64      `json:"process_status_id" db:"process_status_id"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty" db:"updated_at"`

	// ProjectName and ProcessStatusName are populated by queries that join
	// with the lookup tables.
	ProjectName       string `json:"project_name,omitempty" db:"-"`
	ProcessStatusName string `json:"process_status_name,omitempty" db:"-"`

	// Departments and WorkTypes are populated by queries that join with the
	// work_log_departments / work_log_work_types junction tables.
	Departments []LookupItem `json:"departments,omitempty" db:"-"`
	WorkTypes   []LookupItem `json:"work_types,omitempty" db:"-"`
}
