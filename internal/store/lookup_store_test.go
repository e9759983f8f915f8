package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/worklog/internal/model"
	"github.com/nhle/worklog/internal/store"
	"github.com/nhle/worklog/tests/testutil"
)

func TestLookupItems(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, cat := range model.LookupCategories {
		_, err := s.CreateLookupItem(ctx, cat, model.LookupItem{
			Name:      "Shared Name",
			IsActive:  true,
			SortOrder: 1,
		})
		require.NoError(t, err, "creating %s", cat)
	}

	// Same name in different categories never collides.
	for _, cat := range model.LookupCategories {
		item, err := s.FindLookupItemByName(ctx, cat, "Shared Name")
		require.NoError(t, err, "finding %s", cat)
		assert.Equal(t, "Shared Name", item.Name)
		assert.True(t, item.IsActive)
	}

	_, err := s.FindLookupItemByName(ctx, model.CategoryProject, "Missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestLookupItemsOrdering(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, item := range []model.LookupItem{
		{Name: "Zeta", IsActive: true, SortOrder: 1},
		{Name: "Alpha", IsActive: false, SortOrder: 2},
		{Name: "Midway", IsActive: true, SortOrder: 1},
	} {
		_, err := s.CreateLookupItem(ctx, model.CategoryDepartment, item)
		require.NoError(t, err)
	}

	items, err := s.ListLookupItems(ctx, model.CategoryDepartment)
	require.NoError(t, err)
	require.Len(t, items, 3, "inactive rows are listed too")
	assert.Equal(t, "Midway", items[0].Name)
	assert.Equal(t, "Zeta", items[1].Name)
	assert.Equal(t, "Alpha", items[2].Name)
}

func TestFindLookupItemsByNames(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"One", "Two", "Three"} {
		_, err := s.CreateLookupItem(ctx, model.CategoryWorkType, model.LookupItem{
			Name:     name,
			IsActive: true,
		})
		require.NoError(t, err)
	}

	items, err := s.FindLookupItemsByNames(ctx, model.CategoryWorkType,
		[]string{"One", "Three", "Missing"})
	require.NoError(t, err)
	require.Len(t, items, 2, "names without rows are absent, not errors")

	items, err = s.FindLookupItemsByNames(ctx, model.CategoryWorkType, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCreateLookupItemRejectsEmptyName(t *testing.T) {
	s := testutil.NewTestStore(t)

	_, err := s.CreateLookupItem(context.Background(), model.CategoryProject,
		model.LookupItem{Name: "   "})
	require.Error(t, err)
}

func TestTodoCategories(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.CreateTodoCategory(ctx, model.TodoCategory{
		Name:      "Errands",
		ColorCode: "#ff8800",
		Icon:      "cart",
		IsActive:  true,
		SortOrder: 2,
	})
	require.NoError(t, err)

	c, err := s.FindTodoCategoryByName(ctx, "Errands")
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
	assert.Equal(t, "#ff8800", c.ColorCode)
	assert.Equal(t, "cart", c.Icon)

	_, err = s.FindTodoCategoryByName(ctx, "Missing")
	require.ErrorIs(t, err, store.ErrNotFound)

	all, err := s.ListTodoCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	matched, err := s.FindTodoCategoriesByNames(ctx, []string{"Errands", "Missing"})
	require.NoError(t, err)
	assert.Len(t, matched, 1)
}
