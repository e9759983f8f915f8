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

// lookupTables maps each simple lookup category to its backing table.
// The category set is closed; anything else is a programming error.
var lookupTables = map[model.LookupCategory]string{
	model.CategoryProject:       "projects",
	model.CategoryDepartment:    "departments",
	model.CategoryWorkType:      "work_types",
	model.CategoryProcessStatus: "process_statuses",
}

func lookupTable(cat model.LookupCategory) (string, error) {
	table, ok := lookupTables[cat]
	if !ok {
		return "", fmt.Errorf("unknown lookup category %q", cat)
	}
	return table, nil
}

// ListLookupItems retrieves every row of one lookup category, active or not.
func (s *SQLiteStore) ListLookupItems(ctx context.Context, cat model.LookupCategory) ([]model.LookupItem, error) {
	table, err := lookupTable(cat)
	if err != nil {
		return nil, err
	}

	rows, err := s.q.QueryxContext(ctx,
		fmt.Sprintf("SELECT * FROM %s ORDER BY sort_order, name", table))
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	defer rows.Close()

	return scanLookupItems(rows, table)
}

// FindLookupItemByName retrieves a lookup row by exact name match.
// Returns ErrNotFound when no row has that name.
func (s *SQLiteStore) FindLookupItemByName(ctx context.Context, cat model.LookupCategory, name string) (*model.LookupItem, error) {
	table, err := lookupTable(cat)
	if err != nil {
		return nil, err
	}

	var (
		item      model.LookupItem
		activeInt int
	)
	row := s.q.QueryRowxContext(ctx,
		fmt.Sprintf("SELECT * FROM %s WHERE name = ?", table), name)
	if err := row.Scan(&item.ID, &item.Name, &activeInt, &item.SortOrder); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s %q: %w", cat, name, ErrNotFound)
		}
		return nil, fmt.Errorf("finding %s %q: %w", cat, name, err)
	}
	item.IsActive = activeInt != 0
	return &item, nil
}

// FindLookupItemsByNames bulk-fetches lookup rows whose names are in the
// given set. Names without a matching row are simply absent from the result.
func (s *SQLiteStore) FindLookupItemsByNames(ctx context.Context, cat model.LookupCategory, names []string) ([]model.LookupItem, error) {
	if len(names) == 0 {
		return nil, nil
	}
	table, err := lookupTable(cat)
	if err != nil {
		return nil, err
	}

	query, args, err := sqlx.In(
		fmt.Sprintf("SELECT * FROM %s WHERE name IN (?)", table), names)
	if err != nil {
		return nil, fmt.Errorf("building %s name query: %w", table, err)
	}

	rows, err := s.q.QueryxContext(ctx, s.q.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s by names: %w", table, err)
	}
	defer rows.Close()

	return scanLookupItems(rows, table)
}

// CreateLookupItem inserts a new lookup row and returns its id.
func (s *SQLiteStore) CreateLookupItem(ctx context.Context, cat model.LookupCategory, item model.LookupItem) (int64, error) {
	if strings.TrimSpace(item.Name) == "" {
		return 0, fmt.Errorf("%s name must not be empty", cat)
	}
	table, err := lookupTable(cat)
	if err != nil {
		return 0, err
	}

	res, err := s.q.ExecContext(ctx,
		fmt.Sprintf("INSERT INTO %s (name, is_active, sort_order) VALUES (?, ?, ?)", table),
		item.Name, boolToInt(item.IsActive), item.SortOrder,
	)
	if err != nil {
		return 0, fmt.Errorf("creating %s %q: %w", cat, item.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading %s id: %w", cat, err)
	}
	return id, nil
}

// ListTodoCategories retrieves every todo category, active or not.
func (s *SQLiteStore) ListTodoCategories(ctx context.Context) ([]model.TodoCategory, error) {
	rows, err := s.q.QueryxContext(ctx,
		"SELECT * FROM todo_categories ORDER BY sort_order, name")
	if err != nil {
		return nil, fmt.Errorf("querying todo categories: %w", err)
	}
	defer rows.Close()

	return scanTodoCategories(rows)
}

// FindTodoCategoryByName retrieves a todo category by exact name match.
// Returns ErrNotFound when no category has that name.
func (s *SQLiteStore) FindTodoCategoryByName(ctx context.Context, name string) (*model.TodoCategory, error) {
	var (
		c         model.TodoCategory
		activeInt int
	)
	row := s.q.QueryRowxContext(ctx,
		"SELECT * FROM todo_categories WHERE name = ?", name)
	err := row.Scan(&c.ID, &c.Name, &c.ColorCode, &c.Icon, &activeInt, &c.SortOrder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("todo category %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("finding todo category %q: %w", name, err)
	}
	c.IsActive = activeInt != 0
	return &c, nil
}

// FindTodoCategoriesByNames bulk-fetches todo categories whose names are in
// the given set.
func (s *SQLiteStore) FindTodoCategoriesByNames(ctx context.Context, names []string) ([]model.TodoCategory, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		"SELECT * FROM todo_categories WHERE name IN (?)", names)
	if err != nil {
		return nil, fmt.Errorf("building todo category name query: %w", err)
	}

	rows, err := s.q.QueryxContext(ctx, s.q.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("querying todo categories by names: %w", err)
	}
	defer rows.Close()

	return scanTodoCategories(rows)
}

// CreateTodoCategory inserts a new todo category and returns its id.
func (s *SQLiteStore) CreateTodoCategory(ctx context.Context, c model.TodoCategory) (int64, error) {
	if strings.TrimSpace(c.Name) == "" {
		return 0, fmt.Errorf("todo category name must not be empty")
	}

	res, err := s.q.ExecContext(ctx, `
		INSERT INTO todo_categories (name, color_code, icon, is_active, sort_order)
		VALUES (?, ?, ?, ?, ?)`,
		c.Name, c.ColorCode, c.Icon, boolToInt(c.IsActive), c.SortOrder,
	)
	if err != nil {
		return 0, fmt.Errorf("creating todo category %q: %w", c.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading todo category id: %w", err)
	}
	return id, nil
}

// scanLookupItems scans lookup rows from a sqlx.Rows result set.
func scanLookupItems(rows *sqlx.Rows, table string) ([]model.LookupItem, error) {
	var items []model.LookupItem
	for rows.Next() {
		var (
			item      model.LookupItem
			activeInt int
		)
		if err := rows.Scan(&item.ID, &item.Name, &activeInt, &item.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		item.IsActive = activeInt != 0
		items = append(items, item)
	}
	return items, rows.Err()
}

// scanTodoCategories scans todo category rows from a sqlx.Rows result set.
func scanTodoCategories(rows *sqlx.Rows) ([]model.TodoCategory, error) {
	var categories []model.TodoCategory
	for rows.Next() {
		var (
			c         model.TodoCategory
			activeInt int
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.ColorCode, &c.Icon, &activeInt, &c.SortOrder); err != nil {
			return nil, fmt.Errorf("scanning todo category row: %w", err)
		}
		c.IsActive = activeInt != 0
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
