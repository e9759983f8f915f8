package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/worklog/internal/model"
)

// GetWorkLogs retrieves work logs matching the filter, ordered by record
// date, with project/status names and junction members eagerly resolved.
func (s *SQLiteStore) GetWorkLogs(ctx context.Context, filter WorkLogFilter) ([]model.WorkLogEntry, error) {
	conditions := []string{"w.user_id = ?"}
	args := []interface{}{filter.UserID}

	if filter.From != nil {
		conditions = append(conditions, "w.record_date >= ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		conditions = append(conditions, "w.record_date <= ?")
		args = append(args, *filter.To)
	}

	query := `
		SELECT w.id, w.user_id, w.title, w.content, w.record_date, w.work_hours,
		       w.project_id, w.process_status_id, w.created_at, w.updated_at,
		       p.name, ps.name
		FROM work_logs w
		INNER JOIN projects p ON p.id = w.project_id
		INNER JOIN process_statuses ps ON ps.id = w.process_status_id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY w.record_date, w.id`

	rows, err := s.q.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying work logs: %w", err)
	}
	defer rows.Close()

	var entries []model.WorkLogEntry
	for rows.Next() {
		e, err := scanWorkLog(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Load junction members for each entry.
	for i := range entries {
		departments, err := s.getWorkLogMembers(ctx, "departments", "work_log_departments", "department_id", entries[i].ID)
		if err != nil {
			return nil, fmt.Errorf("loading departments for work log %d: %w", entries[i].ID, err)
		}
		entries[i].Departments = departments

		workTypes, err := s.getWorkLogMembers(ctx, "work_types", "work_log_work_types", "work_type_id", entries[i].ID)
		if err != nil {
			return nil, fmt.Errorf("loading work types for work log %d: %w", entries[i].ID, err)
		}
		entries[i].WorkTypes = workTypes
	}

	return entries, nil
}

// CreateWorkLog inserts a new work log row and returns its id.
// Timestamps are stored as given, not reset; imports rely on this.
func (s *SQLiteStore) CreateWorkLog(ctx context.Context, e model.WorkLogEntry) (int64, error) {
	if strings.TrimSpace(e.Title) == "" {
		return 0, fmt.Errorf("work log title must not be empty")
	}

	res, err := s.q.ExecContext(ctx, `
		INSERT INTO work_logs (
			user_id, title, content, record_date, work_hours,
			project_id, process_status_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.UserID, e.Title, e.Content, e.RecordDate, e.WorkHours,
		e.ProjectID, e.ProcessStatusID, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("creating work log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading work log id: %w", err)
	}
	return id, nil
}

// AddWorkLogDepartment associates a department with a work log.
func (s *SQLiteStore) AddWorkLogDepartment(ctx context.Context, workLogID, departmentID int64) error {
	_, err := s.q.ExecContext(ctx,
		"INSERT INTO work_log_departments (work_log_id, department_id) VALUES (?, ?)",
		workLogID, departmentID,
	)
	if err != nil {
		return fmt.Errorf("adding department %d to work log %d: %w", departmentID, workLogID, err)
	}
	return nil
}

// AddWorkLogWorkType associates a work type with a work log.
func (s *SQLiteStore) AddWorkLogWorkType(ctx context.Context, workLogID, workTypeID int64) error {
	_, err := s.q.ExecContext(ctx,
		"INSERT INTO work_log_work_types (work_log_id, work_type_id) VALUES (?, ?)",
		workLogID, workTypeID,
	)
	if err != nil {
		return fmt.Errorf("adding work type %d to work log %d: %w", workTypeID, workLogID, err)
	}
	return nil
}

// getWorkLogMembers loads the lookup rows joined to one work log through a
// junction table.
func (s *SQLiteStore) getWorkLogMembers(ctx context.Context, table, junction, fkColumn string, workLogID int64) ([]model.LookupItem, error) {
	query := fmt.Sprintf(`
		SELECT l.id, l.name, l.is_active, l.sort_order
		FROM %s l
		INNER JOIN %s j ON j.%s = l.id
		WHERE j.work_log_id = ?
		ORDER BY l.sort_order, l.name`, table, junction, fkColumn)

	rows, err := s.q.QueryxContext(ctx, query, workLogID)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", junction, err)
	}
	defer rows.Close()

	return scanLookupItems(rows, table)
}

// scanWorkLog scans a work log row (with joined names) from a sqlx.Rows.
func scanWorkLog(rows *sqlx.Rows) (model.WorkLogEntry, error) {
	var e model.WorkLogEntry

	err := rows.Scan(
		&e.ID, &e.UserID, &e.Title, &e.Content, &e.RecordDate, &e.WorkHours,
		&e.ProjectID, &e.ProcessStatusID, &e.CreatedAt, &e.UpdatedAt,
		&e.ProjectName, &e.ProcessStatusName,
	)
	if err != nil {
		return model.WorkLogEntry{}, fmt.Errorf("scanning work log row: %w", err)
	}
	return e, nil
}
