package testutil

import (
	"context"
	"testing"

	"github.com/nhle/worklog/internal/model"
	"github.com/nhle/worklog/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestUser creates a user account and returns it fully populated.
func NewTestUser(t *testing.T, s *store.SQLiteStore, username string) *model.User {
	t.Helper()

	id, err := s.CreateUser(context.Background(), model.User{
		Username:    username,
		DisplayName: username,
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("creating test user %q: %v", username, err)
	}

	user, err := s.GetUserByID(context.Background(), id)
	if err != nil {
		t.Fatalf("loading test user %q: %v", username, err)
	}
	return user
}
