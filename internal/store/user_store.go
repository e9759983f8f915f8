package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nhle/worklog/internal/model"
)

// CreateUser inserts a new user account row and returns its id.
func (s *SQLiteStore) CreateUser(ctx context.Context, u model.User) (int64, error) {
	if strings.TrimSpace(u.Username) == "" {
		return 0, fmt.Errorf("username must not be empty")
	}
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	res, err := s.q.ExecContext(ctx, `
		INSERT INTO users (username, display_name, role, is_active, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.Username, u.DisplayName, u.Role, boolToInt(u.IsActive), u.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("creating user %s: %w", u.Username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading user id: %w", err)
	}
	return id, nil
}

// GetUserByID retrieves a single user by id.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	row := s.q.QueryRowxContext(ctx, "SELECT * FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("getting user %d: %w", id, err)
	}
	return &u, nil
}

// GetUserByUsername retrieves a single user by username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	row := s.q.QueryRowxContext(ctx, "SELECT * FROM users WHERE username = ?", username)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
		}
		return nil, fmt.Errorf("getting user %s: %w", username, err)
	}
	return &u, nil
}

// scanUser scans a user row from a sqlx.Row.
func scanUser(row *sqlx.Row) (model.User, error) {
	var (
		u         model.User
		activeInt int
	)
	err := row.Scan(&u.ID, &u.Username, &u.DisplayName, &u.Role, &activeInt, &u.CreatedAt)
	if err != nil {
		return model.User{}, err
	}
	u.IsActive = activeInt != 0
	return u, nil
}
