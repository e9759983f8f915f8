package transfer

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nhle/worklog/internal/model"
	"github.com/nhle/worklog/internal/store"
)

// Importer re-creates a manifest's data graph against the local store.
// Lookup rows are reconciled by name; dependent rows have their foreign
// keys rewritten through a call-scoped original-id to local-id mapping.
//
// Error handling is two-tier: a failure confined to one work log or todo
// is recorded in the result and the loop continues, while any other error
// rolls back the entire import transaction.
type Importer struct {
	store store.Store
	log   zerolog.Logger
}

// NewImporter creates an Importer backed by the given store.
func NewImporter(st store.Store, log zerolog.Logger) *Importer {
	return &Importer{store: st, log: log}
}

// importFunc runs the type-specific part of an import inside the
// transaction opened by run.
type importFunc func(ctx context.Context, tx store.Store, log zerolog.Logger, m *Manifest, attachments map[int64][]byte, result *ImportResult) error

// Import imports a full archive: reference data is reconciled (creating
// missing lookup rows), then the work logs and todos are re-created owned
// by the importing user.
func (im *Importer) Import(ctx context.Context, userID int64, archive []byte) *ImportResult {
	if result := im.Validate(archive, ExportTypeFull); !result.Success {
		return result
	}

	return im.run(ctx, userID, archive, "import completed successfully",
		func(ctx context.Context, tx store.Store, log zerolog.Logger, m *Manifest, attachments map[int64][]byte, result *ImportResult) error {
			ref := m.ReferenceData
			if ref == nil {
				ref = &ReferenceData{}
			}
			mappings, err := im.importReferenceData(ctx, tx, ref, &result.Statistics)
			if err != nil {
				return err
			}
			im.importWorkLogs(ctx, tx, log, userID, m.WorkLogs, mappings, result)
			im.importTodos(ctx, tx, log, userID, m.Todos, mappings, attachments, result)
			return nil
		})
}

// ImportWorkLogData imports a work-log archive. The manifest carries no
// reference-data block, so lookup ids are resolved by matching the names
// embedded in the records against existing local rows. Missing lookup rows
// are never created on this path; work logs referencing them fail per-row.
func (im *Importer) ImportWorkLogData(ctx context.Context, userID int64, archive []byte) *ImportResult {
	if result := im.Validate(archive, ExportTypeWorkLog); !result.Success {
		return result
	}

	return im.run(ctx, userID, archive, "import completed successfully",
		func(ctx context.Context, tx store.Store, log zerolog.Logger, m *Manifest, attachments map[int64][]byte, result *ImportResult) error {
			mappings, err := buildNameMappings(ctx, tx, m.WorkLogs, m.Todos)
			if err != nil {
				return err
			}
			im.importWorkLogs(ctx, tx, log, userID, m.WorkLogs, mappings, result)
			im.importTodos(ctx, tx, log, userID, m.Todos, mappings, attachments, result)
			return nil
		})
}

// ImportSystemData imports a system archive: only the shared lookup tables
// are reconciled. Authorization of the calling admin belongs to the caller.
func (im *Importer) ImportSystemData(ctx context.Context, userID int64, archive []byte) *ImportResult {
	if result := im.Validate(archive, ExportTypeSystem); !result.Success {
		return result
	}

	return im.run(ctx, userID, archive, "system data import completed successfully",
		func(ctx context.Context, tx store.Store, log zerolog.Logger, m *Manifest, attachments map[int64][]byte, result *ImportResult) error {
			ref := m.ReferenceData
			if ref == nil {
				ref = &ReferenceData{}
			}
			_, err := im.importReferenceData(ctx, tx, ref, &result.Statistics)
			return err
		})
}

// run parses the archive, buffers embedded attachments, and executes fn
// inside a single transaction. A non-nil error from fn discards all work
// done by the call and yields a failure result whose only error is the
// top-level message; per-row errors recorded by fn never reach here.
func (im *Importer) run(ctx context.Context, userID int64, archive []byte, successMsg string, fn importFunc) *ImportResult {
	result := &ImportResult{}

	r, err := openArchive(archive)
	if err != nil {
		return importFailure(result, err)
	}
	m, err := decodeManifest(r)
	if err != nil {
		return importFailure(result, err)
	}
	attachments, err := im.bufferAttachments(r, m)
	if err != nil {
		return importFailure(result, err)
	}

	log := im.log.With().
		Str("import_id", uuid.NewString()).
		Int64("user_id", userID).
		Logger()
	log.Info().Str("export_type", m.exportType()).Msg("starting import")

	err = im.store.WithTx(ctx, func(tx store.Store) error {
		return fn(ctx, tx, log, m, attachments, result)
	})
	if err != nil {
		log.Error().Err(err).Msg("import failed, transaction rolled back")
		return importFailure(result, err)
	}

	result.Success = true
	result.Message = successMsg
	log.Info().
		Int("work_logs", result.Statistics.WorkLogsImported).
		Int("todos", result.Statistics.TodosImported).
		Msg("import completed")
	return result
}

func importFailure(result *ImportResult, err error) *ImportResult {
	result.Success = false
	result.Errors = []string{fmt.Sprintf("import failed: %v", err)}
	return result
}

// importReferenceData reconciles each incoming lookup row by exact name
// match: an existing row is reused and counted skipped, a missing one is
// created and counted created. Rows are persisted one at a time, so a
// duplicate name later in the same payload finds the just-created row.
// Any store error here is fatal to the whole import.
func (im *Importer) importReferenceData(ctx context.Context, tx store.Store, ref *ReferenceData, stats *ImportStatistics) (*referenceIDMap, error) {
	mappings := newReferenceIDMap()

	for _, target := range []struct {
		cat              model.LookupCategory
		items            []ReferenceItem
		ids              map[int64]int64
		created, skipped *int
	}{
		{model.CategoryProject, ref.Projects, mappings.projects, &stats.ProjectsCreated, &stats.ProjectsSkipped},
		{model.CategoryDepartment, ref.Departments, mappings.departments, &stats.DepartmentsCreated, &stats.DepartmentsSkipped},
		{model.CategoryWorkType, ref.WorkTypes, mappings.workTypes, &stats.WorkTypesCreated, &stats.WorkTypesSkipped},
		{model.CategoryProcessStatus, ref.ProcessStatuses, mappings.processStatuses, &stats.ProcessStatusesCreated, &stats.ProcessStatusesSkipped},
	} {
		for _, item := range target.items {
			existing, err := tx.FindLookupItemByName(ctx, target.cat, item.Name)
			switch {
			case err == nil:
				target.ids[item.OriginalID] = existing.ID
				*target.skipped++
			case errors.Is(err, store.ErrNotFound):
				id, err := tx.CreateLookupItem(ctx, target.cat, model.LookupItem{
					Name:      item.Name,
					IsActive:  item.IsActive,
					SortOrder: item.SortOrder,
				})
				if err != nil {
					return nil, err
				}
				target.ids[item.OriginalID] = id
				*target.created++
			default:
				return nil, err
			}
		}
	}

	for _, item := range ref.TodoCategories {
		existing, err := tx.FindTodoCategoryByName(ctx, item.Name)
		switch {
		case err == nil:
			mappings.todoCategories[item.OriginalID] = existing.ID
			stats.TodoCategoriesSkipped++
		case errors.Is(err, store.ErrNotFound):
			id, err := tx.CreateTodoCategory(ctx, model.TodoCategory{
				Name:      item.Name,
				ColorCode: item.ColorCode,
				Icon:      item.Icon,
				IsActive:  item.IsActive,
				SortOrder: item.SortOrder,
			})
			if err != nil {
				return nil, err
			}
			mappings.todoCategories[item.OriginalID] = id
			stats.TodoCategoriesCreated++
		default:
			return nil, err
		}
	}

	return mappings, nil
}

// buildNameMappings derives the lookup mapping for manifests without a
// reference-data block by scanning the names embedded in the records and
// bulk-fetching the matching local rows. Names with no local row leave the
// mapping entry absent; dependent-row import treats that as a per-row
// resolution failure. This path never creates lookup rows.
func buildNameMappings(ctx context.Context, tx store.Store, workLogs []WorkLogRecord, todos []TodoRecord) (*referenceIDMap, error) {
	var projectNames, statusNames, deptNames, workTypeNames, categoryNames []string
	seen := make(map[string]map[string]bool)
	collect := func(set string, name string, dest *[]string) {
		if seen[set] == nil {
			seen[set] = make(map[string]bool)
		}
		if name == "" || seen[set][name] {
			return
		}
		seen[set][name] = true
		*dest = append(*dest, name)
	}

	for _, wl := range workLogs {
		collect("project", wl.ProjectName, &projectNames)
		collect("status", wl.ProcessStatusName, &statusNames)
		for _, d := range wl.Departments {
			collect("dept", d.Name, &deptNames)
		}
		for _, w := range wl.WorkTypes {
			collect("worktype", w.Name, &workTypeNames)
		}
	}
	for _, t := range todos {
		if t.CategoryName != nil {
			collect("category", *t.CategoryName, &categoryNames)
		}
	}

	mappings := newReferenceIDMap()

	byName := func(cat model.LookupCategory, names []string) (map[string]int64, error) {
		rows, err := tx.FindLookupItemsByNames(ctx, cat, names)
		if err != nil {
			return nil, err
		}
		m := make(map[string]int64, len(rows))
		for _, row := range rows {
			m[row.Name] = row.ID
		}
		return m, nil
	}

	projectsByName, err := byName(model.CategoryProject, projectNames)
	if err != nil {
		return nil, err
	}
	statusesByName, err := byName(model.CategoryProcessStatus, statusNames)
	if err != nil {
		return nil, err
	}
	deptsByName, err := byName(model.CategoryDepartment, deptNames)
	if err != nil {
		return nil, err
	}
	workTypesByName, err := byName(model.CategoryWorkType, workTypeNames)
	if err != nil {
		return nil, err
	}

	categories, err := tx.FindTodoCategoriesByNames(ctx, categoryNames)
	if err != nil {
		return nil, err
	}
	categoriesByName := make(map[string]int64, len(categories))
	for _, c := range categories {
		categoriesByName[c.Name] = c.ID
	}

	for _, wl := range workLogs {
		if id, ok := projectsByName[wl.ProjectName]; ok {
			mappings.projects[wl.ProjectID] = id
		}
		if id, ok := statusesByName[wl.ProcessStatusName]; ok {
			mappings.processStatuses[wl.ProcessStatusID] = id
		}
		for _, d := range wl.Departments {
			if id, ok := deptsByName[d.Name]; ok {
				mappings.departments[d.OriginalID] = id
			}
		}
		for _, w := range wl.WorkTypes {
			if id, ok := workTypesByName[w.Name]; ok {
				mappings.workTypes[w.OriginalID] = id
			}
		}
	}
	for _, t := range todos {
		if t.CategoryID == nil || t.CategoryName == nil {
			continue
		}
		if id, ok := categoriesByName[*t.CategoryName]; ok {
			mappings.todoCategories[*t.CategoryID] = id
		}
	}

	return mappings, nil
}

// importWorkLogs imports each work log, skipping (and counting) records
// that fail without aborting the rest.
func (im *Importer) importWorkLogs(ctx context.Context, tx store.Store, log zerolog.Logger, userID int64, records []WorkLogRecord, mappings *referenceIDMap, result *ImportResult) {
	for _, rec := range records {
		if err := importWorkLogRecord(ctx, tx, userID, rec, mappings); err != nil {
			log.Warn().Err(err).Str("title", rec.Title).Msg("work log import failed")
			result.Errors = append(result.Errors, fmt.Sprintf("work log %q: %v", rec.Title, err))
			result.Statistics.WorkLogsFailed++
			continue
		}
		result.Statistics.WorkLogsImported++
	}
}

// importWorkLogRecord creates one work log owned by the importing user,
// with timestamps preserved from the export. An unresolvable project or
// process status fails the record; unresolvable junction members are
// dropped silently.
func importWorkLogRecord(ctx context.Context, tx store.Store, userID int64, rec WorkLogRecord, mappings *referenceIDMap) error {
	projectID, ok := mappings.projects[rec.ProjectID]
	if !ok {
		return fmt.Errorf("unknown project %q", rec.ProjectName)
	}
	statusID, ok := mappings.processStatuses[rec.ProcessStatusID]
	if !ok {
		return fmt.Errorf("unknown process status %q", rec.ProcessStatusName)
	}

	id, err := tx.CreateWorkLog(ctx, model.WorkLogEntry{
		UserID:          userID,
		Title:           rec.Title,
		Content:         rec.Content,
		RecordDate:      rec.RecordDate,
		WorkHours:       rec.WorkHours,
		ProjectID:       projectID,
		ProcessStatusID: statusID,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	})
	if err != nil {
		return err
	}

	for _, d := range rec.Departments {
		deptID, ok := mappings.departments[d.OriginalID]
		if !ok {
			continue
		}
		if err := tx.AddWorkLogDepartment(ctx, id, deptID); err != nil {
			return err
		}
	}
	for _, w := range rec.WorkTypes {
		workTypeID, ok := mappings.workTypes[w.OriginalID]
		if !ok {
			continue
		}
		if err := tx.AddWorkLogWorkType(ctx, id, workTypeID); err != nil {
			return err
		}
	}
	return nil
}

// importTodos imports each todo with its children, skipping (and counting)
// records that fail without aborting the rest. Child counters already
// incremented for a todo that later fails are not rolled back; the counters
// only ever accumulate.
func (im *Importer) importTodos(ctx context.Context, tx store.Store, log zerolog.Logger, userID int64, records []TodoRecord, mappings *referenceIDMap, attachments map[int64][]byte, result *ImportResult) {
	for _, rec := range records {
		if err := importTodoRecord(ctx, tx, userID, rec, mappings, attachments, &result.Statistics); err != nil {
			log.Warn().Err(err).Str("title", rec.Title).Msg("todo import failed")
			result.Errors = append(result.Errors, fmt.Sprintf("todo %q: %v", rec.Title, err))
			result.Statistics.TodosFailed++
			continue
		}
		result.Statistics.TodosImported++
	}
}

// importTodoRecord creates one todo owned by the importing user, then its
// subtasks, comments, and attachments. Every row executes against the
// transaction immediately; a failure partway through the children leaves
// the todo and earlier children pending in the transaction while the
// record is counted failed.
func importTodoRecord(ctx context.Context, tx store.Store, userID int64, rec TodoRecord, mappings *referenceIDMap, attachments map[int64][]byte, stats *ImportStatistics) error {
	// A category name missing from the target store is not an error; the
	// todo imports uncategorized.
	var categoryID *int64
	if rec.CategoryID != nil {
		if id, ok := mappings.todoCategories[*rec.CategoryID]; ok {
			categoryID = &id
		}
	}

	todoID, err := tx.CreateTodo(ctx, model.TodoItem{
		UserID:      userID,
		Title:       rec.Title,
		Description: rec.Description,
		DueDate:     rec.DueDate,
		Status:      rec.Status,
		Priority:    rec.Priority,
		CategoryID:  categoryID,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
		CompletedAt: rec.CompletedAt,
	})
	if err != nil {
		return err
	}

	for _, st := range rec.SubTasks {
		_, err := tx.CreateSubTask(ctx, model.TodoSubTask{
			TodoID:      todoID,
			Title:       st.Title,
			IsCompleted: st.IsCompleted,
			SortOrder:   st.SortOrder,
			CreatedAt:   st.CreatedAt,
		})
		if err != nil {
			return err
		}
		stats.SubTasksImported++
	}

	// Comments are re-attributed to the importing user; the exported
	// author username is dropped. Swap commentUserID for a username lookup
	// to preserve original authorship instead.
	commentUserID := userID
	for _, c := range rec.Comments {
		_, err := tx.CreateComment(ctx, model.TodoComment{
			TodoID:    todoID,
			UserID:    commentUserID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		})
		if err != nil {
			return err
		}
		stats.CommentsImported++
	}

	for _, a := range rec.Attachments {
		data := attachments[a.OriginalID]
		if data == nil {
			// Metadata-only attachment: the row is created with empty bytes.
			data = []byte{}
		}
		_, err := tx.CreateAttachment(ctx, model.TodoAttachment{
			TodoID:      todoID,
			FileName:    a.FileName,
			FileSize:    a.FileSize,
			ContentType: a.ContentType,
			FileData:    data,
			UploadedAt:  a.UploadedAt,
		})
		if err != nil {
			return err
		}
		stats.AttachmentsImported++
	}

	return nil
}

// bufferAttachments reads every embedded attachment entry referenced by the
// manifest into memory, keyed by original attachment id. Entries the
// manifest references but the archive lacks are skipped.
func (im *Importer) bufferAttachments(r *zip.Reader, m *Manifest) (map[int64][]byte, error) {
	data := make(map[int64][]byte)
	if !m.IncludesAttachments {
		return data, nil
	}

	for _, todo := range m.Todos {
		for _, att := range todo.Attachments {
			if att.FilePath == nil {
				continue
			}
			f := findEntry(r, *att.FilePath)
			if f == nil {
				continue
			}
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("opening attachment %s: %w", *att.FilePath, err)
			}
			b, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, fmt.Errorf("reading attachment %s: %w", *att.FilePath, err)
			}
			data[att.OriginalID] = b
		}
	}
	return data, nil
}
