package model

// LookupCategory identifies one of the shared lookup tables whose rows are
// reconciled by name across systems. Todo categories are handled separately
// because they carry extra display fields.
type LookupCategory string

const (
	CategoryProject       LookupCategory = "project"
	CategoryDepartment    LookupCategory = "department"
	CategoryWorkType      LookupCategory = "work_type"
	CategoryProcessStatus LookupCategory = "process_status"
)

// LookupCategories lists the simple lookup categories in a stable order.
var LookupCategories = []LookupCategory{
	CategoryProject,
	CategoryDepartment,
	CategoryWorkType,
	CategoryProcessStatus,
}

// LookupItem is one row of a shared lookup table (project, department,
// work type, or process status).
type LookupItem struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	IsActive  bool   `json:"is_active" db:"is_active"`
	SortOrder int    `json:"sort_order" db:"sort_order"`
}

// TodoCategory is a lookup row for grouping todos, with display styling.
type TodoCategory struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	ColorCode string `json:"color_code" db:"color_code"`
	Icon      string `json:"icon" db:"icon"`
	IsActive  bool   `json:"is_active" db:"is_active"`
	SortOrder int    `json:"sort_order" db:"sort_order"`
}
