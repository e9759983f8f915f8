package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhle/worklog/internal/model"
	"github.com/nhle/worklog/internal/store"
)

// Exporter assembles a user's data (or the system's shared lookup data)
// into a portable manifest and archive.
type Exporter struct {
	store store.Store
	log   zerolog.Logger
}

// NewExporter creates an Exporter backed by the given store.
func NewExporter(st store.Store, log zerolog.Logger) *Exporter {
	return &Exporter{store: st, log: log}
}

// ExportFull builds a full manifest: all reference data plus the user's
// work logs and todos, optionally filtered by date range. The caller's
// user id comes from an authenticated session, so a missing user is an
// invariant violation and surfaces as an error.
func (e *Exporter) ExportFull(ctx context.Context, userID int64, start, end *time.Time, includeAttachments bool) (*Manifest, error) {
	user, err := e.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolving exporting user: %w", err)
	}

	e.log.Info().
		Int64("user_id", userID).
		Bool("attachments", includeAttachments).
		Msg("exporting full data")

	m := &Manifest{
		Version:             FormatVersion,
		ExportType:          ExportTypeFull,
		ExportedAt:          time.Now().UTC(),
		Username:            user.Username,
		StartDate:           start,
		EndDate:             end,
		IncludesAttachments: includeAttachments,
	}

	if m.ReferenceData, err = e.exportReferenceData(ctx); err != nil {
		return nil, err
	}
	if m.WorkLogs, err = e.exportWorkLogs(ctx, userID, start, end); err != nil {
		return nil, err
	}
	if m.Todos, err = e.exportTodos(ctx, userID, start, end, includeAttachments); err != nil {
		return nil, err
	}

	e.log.Info().
		Int("work_logs", len(m.WorkLogs)).
		Int("todos", len(m.Todos)).
		Msg("full export assembled")

	return m, nil
}

// ExportWorkLogData builds a work-log-only manifest: the user's work logs
// and todos without the reference-data block. Importers reconcile lookup
// rows from the names embedded in the records instead.
func (e *Exporter) ExportWorkLogData(ctx context.Context, userID int64, start, end *time.Time, includeAttachments bool) (*Manifest, error) {
	user, err := e.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolving exporting user: %w", err)
	}

	e.log.Info().
		Int64("user_id", userID).
		Bool("attachments", includeAttachments).
		Msg("exporting work-log data")

	m := &Manifest{
		Version:             FormatVersion,
		ExportType:          ExportTypeWorkLog,
		ExportedAt:          time.Now().UTC(),
		Username:            user.Username,
		StartDate:           start,
		EndDate:             end,
		IncludesAttachments: includeAttachments,
	}

	if m.WorkLogs, err = e.exportWorkLogs(ctx, userID, start, end); err != nil {
		return nil, err
	}
	if m.Todos, err = e.exportTodos(ctx, userID, start, end, includeAttachments); err != nil {
		return nil, err
	}

	e.log.Info().
		Int("work_logs", len(m.WorkLogs)).
		Int("todos", len(m.Todos)).
		Msg("work-log export assembled")

	return m, nil
}

// ExportSystemData builds a system-only manifest holding every shared
// lookup row. Authorization of the calling admin belongs to the caller.
func (e *Exporter) ExportSystemData(ctx context.Context, userID int64) (*Manifest, error) {
	user, err := e.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolving exporting user: %w", err)
	}

	e.log.Info().Int64("user_id", userID).Msg("exporting system data")

	m := &Manifest{
		Version:    FormatVersion,
		ExportType: ExportTypeSystem,
		ExportedAt: time.Now().UTC(),
		Username:   user.Username,
	}

	if m.ReferenceData, err = e.exportReferenceData(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// BuildArchive serializes the manifest and any embedded attachment bytes
// (keyed by original attachment id) into a single archive.
func (e *Exporter) BuildArchive(m *Manifest, attachments map[int64][]byte) ([]byte, error) {
	manifestJSON, err := encodeManifest(m)
	if err != nil {
		return nil, err
	}

	files := make(map[string][]byte)
	for _, todo := range m.Todos {
		for _, att := range todo.Attachments {
			if att.FilePath == nil {
				continue
			}
			if data, ok := attachments[att.OriginalID]; ok {
				files[*att.FilePath] = data
			}
		}
	}

	archive, err := writeArchive(manifestJSON, files)
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Int("attachments", len(files)).
		Int("archive_bytes", len(archive)).
		Msg("archive built")

	return archive, nil
}

// LoadAttachmentData fetches the stored bytes of every attachment the
// manifest embeds, keyed by original attachment id. This is the side
// channel merged into the archive by BuildArchive.
func (e *Exporter) LoadAttachmentData(ctx context.Context, m *Manifest) (map[int64][]byte, error) {
	data := make(map[int64][]byte)
	for _, todo := range m.Todos {
		for _, att := range todo.Attachments {
			if att.FilePath == nil {
				continue
			}
			bytes, err := e.store.GetAttachmentData(ctx, att.OriginalID)
			if err != nil {
				return nil, fmt.Errorf("loading attachment %d: %w", att.OriginalID, err)
			}
			data[att.OriginalID] = bytes
		}
	}
	return data, nil
}

// exportReferenceData enumerates every row of each shared lookup category,
// active or not. Callers sort downstream if they need a particular order.
func (e *Exporter) exportReferenceData(ctx context.Context) (*ReferenceData, error) {
	ref := &ReferenceData{}

	for _, target := range []struct {
		cat  model.LookupCategory
		dest *[]ReferenceItem
	}{
		{model.CategoryProject, &ref.Projects},
		{model.CategoryDepartment, &ref.Departments},
		{model.CategoryWorkType, &ref.WorkTypes},
		{model.CategoryProcessStatus, &ref.ProcessStatuses},
	} {
		items, err := e.store.ListLookupItems(ctx, target.cat)
		if err != nil {
			return nil, fmt.Errorf("exporting %s reference data: %w", target.cat, err)
		}
		for _, item := range items {
			*target.dest = append(*target.dest, referenceItemFromModel(item))
		}
	}

	categories, err := e.store.ListTodoCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("exporting todo category reference data: %w", err)
	}
	for _, c := range categories {
		ref.TodoCategories = append(ref.TodoCategories, TodoCategoryItem{
			ReferenceItem: ReferenceItem{
				OriginalID: c.ID,
				Name:       c.Name,
				IsActive:   c.IsActive,
				SortOrder:  c.SortOrder,
			},
			ColorCode: c.ColorCode,
			Icon:      c.Icon,
		})
	}

	return ref, nil
}

// exportWorkLogs filters by owning user and, if provided, by record date
// (inclusive on both ends).
func (e *Exporter) exportWorkLogs(ctx context.Context, userID int64, start, end *time.Time) ([]WorkLogRecord, error) {
	entries, err := e.store.GetWorkLogs(ctx, store.WorkLogFilter{UserID: userID, From: start, To: end})
	if err != nil {
		return nil, fmt.Errorf("exporting work logs: %w", err)
	}

	records := make([]WorkLogRecord, 0, len(entries))
	for _, entry := range entries {
		rec := WorkLogRecord{
			OriginalID:        entry.ID,
			Title:             entry.Title,
			Content:           entry.Content,
			RecordDate:        entry.RecordDate,
			WorkHours:         entry.WorkHours,
			CreatedAt:         entry.CreatedAt,
			UpdatedAt:         entry.UpdatedAt,
			ProjectID:         entry.ProjectID,
			ProjectName:       entry.ProjectName,
			ProcessStatusID:   entry.ProcessStatusID,
			ProcessStatusName: entry.ProcessStatusName,
			Departments:       make([]ReferenceItem, 0, len(entry.Departments)),
			WorkTypes:         make([]ReferenceItem, 0, len(entry.WorkTypes)),
		}
		for _, d := range entry.Departments {
			rec.Departments = append(rec.Departments, referenceItemFromModel(d))
		}
		for _, w := range entry.WorkTypes {
			rec.WorkTypes = append(rec.WorkTypes, referenceItemFromModel(w))
		}
		records = append(records, rec)
	}
	return records, nil
}

// exportTodos filters by owning user and, if provided, by creation time --
// a different date field than work logs use, deliberately.
func (e *Exporter) exportTodos(ctx context.Context, userID int64, start, end *time.Time, includeAttachments bool) ([]TodoRecord, error) {
	todos, err := e.store.GetTodos(ctx, store.TodoFilter{UserID: userID, From: start, To: end})
	if err != nil {
		return nil, fmt.Errorf("exporting todos: %w", err)
	}

	records := make([]TodoRecord, 0, len(todos))
	for _, todo := range todos {
		rec := TodoRecord{
			OriginalID:   todo.ID,
			Title:        todo.Title,
			Description:  todo.Description,
			DueDate:      todo.DueDate,
			Status:       todo.Status,
			Priority:     todo.Priority,
			CreatedAt:    todo.CreatedAt,
			UpdatedAt:    todo.UpdatedAt,
			CompletedAt:  todo.CompletedAt,
			CategoryID:   todo.CategoryID,
			CategoryName: todo.CategoryName,
			SubTasks:     make([]SubTaskRecord, 0, len(todo.SubTasks)),
			Comments:     make([]CommentRecord, 0, len(todo.Comments)),
			Attachments:  make([]AttachmentRecord, 0, len(todo.Attachments)),
		}
		for _, st := range todo.SubTasks {
			rec.SubTasks = append(rec.SubTasks, SubTaskRecord{
				OriginalID:  st.ID,
				Title:       st.Title,
				IsCompleted: st.IsCompleted,
				SortOrder:   st.SortOrder,
				CreatedAt:   st.CreatedAt,
			})
		}
		for _, c := range todo.Comments {
			rec.Comments = append(rec.Comments, CommentRecord{
				OriginalID: c.ID,
				Content:    c.Content,
				CreatedAt:  c.CreatedAt,
				UpdatedAt:  c.UpdatedAt,
				Username:   c.Username,
			})
		}
		for _, a := range todo.Attachments {
			att := AttachmentRecord{
				OriginalID:  a.ID,
				FileName:    a.FileName,
				FileSize:    a.FileSize,
				ContentType: a.ContentType,
				UploadedAt:  a.UploadedAt,
			}
			if includeAttachments {
				path := attachmentPath(a.ID, a.FileName)
				att.FilePath = &path
			}
			rec.Attachments = append(rec.Attachments, att)
		}
		records = append(records, rec)
	}
	return records, nil
}

func referenceItemFromModel(item model.LookupItem) ReferenceItem {
	return ReferenceItem{
		OriginalID: item.ID,
		Name:       item.Name,
		IsActive:   item.IsActive,
		SortOrder:  item.SortOrder,
	}
}
