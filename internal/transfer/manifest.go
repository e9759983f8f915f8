package transfer

import (
	"fmt"
	"time"
)

// FormatVersion is the manifest format version this module writes and the
// only version it reads without warning. There is no version multiplexing.
const FormatVersion = "1.0"

// Export type constants carried in the manifest.
const (
	ExportTypeFull    = "Full"
	ExportTypeWorkLog = "WorkLogData"
	ExportTypeSystem  = "SystemData"
)

// Manifest is the root JSON document of an export archive. Full exports
// carry reference data plus work logs and todos; work-log exports omit the
// reference-data block; system exports carry only reference data.
type Manifest struct {
	Version             string         `json:"version"`
	ExportType          string         `json:"exportType,omitempty"`
	ExportedAt          time.Time      `json:"exportedAt"`
	Username            string         `json:"username"`
	StartDate           *time.Time     `json:"startDate,omitempty"`
	EndDate             *time.Time     `json:"endDate,omitempty"`
	IncludesAttachments bool           `json:"includesAttachments"`
	ReferenceData       *ReferenceData `json:"referenceData,omitempty"`
	WorkLogs            []WorkLogRecord `json:"workLogs,omitempty"`
	Todos               []TodoRecord    `json:"todos,omitempty"`
}

// exportType returns the manifest's export type, treating the legacy
// absent/empty field as a full export.
func (m *Manifest) exportType() string {
	if m.ExportType == "" {
		return ExportTypeFull
	}
	return m.ExportType
}

// ReferenceData holds every row of the shared lookup tables at export time.
type ReferenceData struct {
	Projects        []ReferenceItem    `json:"projects"`
	Departments     []ReferenceItem    `json:"departments"`
	WorkTypes       []ReferenceItem    `json:"workTypes"`
	ProcessStatuses []ReferenceItem    `json:"processStatuses"`
	TodoCategories  []TodoCategoryItem `json:"todoCategories"`
}

// ReferenceItem is one exported lookup row. OriginalID is the row's id in
// the exporting system; the name is the reconciliation key on import.
type ReferenceItem struct {
	OriginalID int64  `json:"originalId"`
	Name       string `json:"name"`
	IsActive   bool   `json:"isActive"`
	SortOrder  int    `json:"sortOrder"`
}

// TodoCategoryItem is an exported todo category with its display fields.
type TodoCategoryItem struct {
	ReferenceItem
	ColorCode string `json:"colorCode,omitempty"`
	Icon      string `json:"icon,omitempty"`
}

// WorkLogRecord is one exported work log. It carries both the foreign ids
// and the human names of every referenced lookup row, because the name is
// the only stable reconciliation key across systems.
type WorkLogRecord struct {
	OriginalID int64      `json:"originalId"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	RecordDate time.Time  `json:"recordDate"`
	WorkHours  float64    `json:"workHours"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`

	ProjectID         int64  `json:"projectId"`
	ProjectName       string `json:"projectName"`
	ProcessStatusID   int64  `json:"processStatusId"`
	ProcessStatusName string `json:"processStatusName"`

	Departments []ReferenceItem `json:"departments"`
	WorkTypes   []ReferenceItem `json:"workTypes"`
}

// TodoRecord is one exported todo with its child collections.
type TodoRecord struct {
	OriginalID  int64      `json:"originalId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	CategoryID   *int64  `json:"categoryId,omitempty"`
	CategoryName *string `json:"categoryName,omitempty"`

	SubTasks    []SubTaskRecord    `json:"subTasks"`
	Comments    []CommentRecord    `json:"comments"`
	Attachments []AttachmentRecord `json:"attachments"`
}

// SubTaskRecord is one exported subtask.
type SubTaskRecord struct {
	OriginalID  int64     `json:"originalId"`
	Title       string    `json:"title"`
	IsCompleted bool      `json:"isCompleted"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CommentRecord is one exported comment. Username identifies the original
// author; imports re-attribute the comment to the importing user.
type CommentRecord struct {
	OriginalID int64      `json:"originalId"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
	Username   string     `json:"username"`
}

// AttachmentRecord is exported attachment metadata. FilePath is the entry
// name of the attachment bytes inside the archive, set only when the export
// embeds attachments; otherwise the record is metadata-only.
type AttachmentRecord struct {
	OriginalID  int64     `json:"originalId"`
	FileName    string    `json:"fileName"`
	FileSize    int64     `json:"fileSize"`
	ContentType string    `json:"contentType"`
	UploadedAt  time.Time `json:"uploadedAt"`
	FilePath    *string   `json:"filePath,omitempty"`
}

// attachmentPath builds the archive entry name for an attachment.
func attachmentPath(originalID int64, fileName string) string {
	return fmt.Sprintf("attachments/%d_%s", originalID, fileName)
}
