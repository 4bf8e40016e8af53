package entities

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookkeeper/internal/entities/models"
	"bookkeeper/pkg/domain"
	dErrors "bookkeeper/pkg/domain-errors"
	"bookkeeper/pkg/platform/sentinel"
)

func categoryID(t *testing.T, set *Set, ctx context.Context, name string) domain.CategoryID {
	t.Helper()
	v, err := set.Categories.FindByName(ctx, name)
	require.NoError(t, err)
	id, err := domain.ParseCategoryID(v.EntityID)
	require.NoError(t, err)
	return id
}

func TestCategoryRoots(t *testing.T) {
	set, ctx := newSeededSet(t)

	roots := set.Categories.Roots(ctx)
	names := make([]string, 0, len(roots))
	for _, v := range roots {
		names = append(names, v.Value.Name)
	}
	assert.ElementsMatch(t,
		[]string{"Food & Dining", "Transportation", "Shopping", "Income", "Transfer"},
		names)
}

func TestCategoryChildrenAndParent(t *testing.T) {
	set, ctx := newSeededSet(t)
	foodDining := categoryID(t, set, ctx, "Food & Dining")

	children := set.Categories.Children(ctx, foodDining)
	names := make([]string, 0, len(children))
	for _, v := range children {
		names = append(names, v.Value.Name)
	}
	assert.ElementsMatch(t, []string{"Restaurants", "Groceries"}, names)

	cafe, err := set.Categories.FindByName(ctx, "Café")
	require.NoError(t, err)
	parent, err := set.Categories.Parent(ctx, cafe.Value)
	require.NoError(t, err)
	assert.Equal(t, "Restaurants", parent.Value.Name)

	root, err := set.Categories.FindByName(ctx, "Income")
	require.NoError(t, err)
	_, err = set.Categories.Parent(ctx, root.Value)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestCategoryPath(t *testing.T) {
	set, ctx := newSeededSet(t)
	cafe := categoryID(t, set, ctx, "Café")

	path, err := set.Categories.Path(ctx, cafe)
	require.NoError(t, err)
	assert.Equal(t, []string{"Food & Dining", "Restaurants", "Café"}, path)

	s, err := set.Categories.PathString(ctx, cafe)
	require.NoError(t, err)
	assert.Equal(t, "Food & Dining → Restaurants → Café", s)
}

func TestCategoryIsAncestor(t *testing.T) {
	set, ctx := newSeededSet(t)
	foodDining := categoryID(t, set, ctx, "Food & Dining")
	restaurants := categoryID(t, set, ctx, "Restaurants")
	cafe := categoryID(t, set, ctx, "Café")
	income := categoryID(t, set, ctx, "Income")

	assert.True(t, set.Categories.IsAncestor(ctx, foodDining, cafe))
	assert.True(t, set.Categories.IsAncestor(ctx, restaurants, cafe))
	assert.True(t, set.Categories.IsAncestor(ctx, cafe, cafe), "a category is its own ancestor")
	assert.False(t, set.Categories.IsAncestor(ctx, cafe, foodDining))
	assert.False(t, set.Categories.IsAncestor(ctx, income, cafe))
}

func TestCategoryDescendantsAndDepth(t *testing.T) {
	set, ctx := newSeededSet(t)
	foodDining := categoryID(t, set, ctx, "Food & Dining")
	cafe := categoryID(t, set, ctx, "Café")

	descendants := set.Categories.Descendants(ctx, foodDining)
	names := make([]string, 0, len(descendants))
	for _, v := range descendants {
		names = append(names, v.Value.Name)
	}
	assert.ElementsMatch(t, []string{"Restaurants", "Groceries", "Fast Food", "Café"}, names)

	depth, err := set.Categories.Depth(ctx, foodDining)
	require.NoError(t, err)
	assert.Equal(t, 0, depth)

	depth, err = set.Categories.Depth(ctx, cafe)
	require.NoError(t, err)
	assert.Equal(t, 2, depth)
}

func TestCategorySetParentMovesSubtree(t *testing.T) {
	set, ctx := newSeededSet(t)
	fastFood := categoryID(t, set, ctx, "Fast Food")
	foodDining := categoryID(t, set, ctx, "Food & Dining")

	_, err := set.Categories.SetParent(ctx, fastFood, &foodDining)
	require.NoError(t, err)

	path, err := set.Categories.Path(ctx, fastFood)
	require.NoError(t, err)
	assert.Equal(t, []string{"Food & Dining", "Fast Food"}, path)

	versions := set.Categories.GetAllVersions(ctx, fastFood)
	assert.Len(t, versions, 2)
}

func TestCategoryMoveRejectsCycle(t *testing.T) {
	set, ctx := newSeededSet(t)
	foodDining := categoryID(t, set, ctx, "Food & Dining")
	cafe := categoryID(t, set, ctx, "Café")

	_, err := set.Categories.SetParent(ctx, foodDining, &cafe)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	_, err = set.Categories.SetParent(ctx, cafe, &cafe)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	// Nothing was written.
	assert.Len(t, set.Categories.GetAllVersions(ctx, foodDining), 1)
	assert.Len(t, set.Categories.GetAllVersions(ctx, cafe), 1)
}

func TestCategoryUpdateAppliesMutatorOnce(t *testing.T) {
	set, ctx := newSeededSet(t)
	groceries := categoryID(t, set, ctx, "Groceries")

	// A non-idempotent mutator must not observe double application.
	calls := 0
	_, err := set.Categories.Update(ctx, groceries, "rename", func(c *models.Category) {
		calls++
		c.Name += " & Market"
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	v, err := set.Categories.GetCurrentVersion(ctx, groceries)
	require.NoError(t, err)
	assert.Equal(t, "Groceries & Market", v.Value.Name)
}

func TestCategoryRegisterRejectsUnknownParent(t *testing.T) {
	set, ctx := newSeededSet(t)
	ghost := domain.NewCategoryID()

	_, err := set.Categories.Register(ctx, models.Category{
		Name:     "Orphan",
		ParentID: &ghost,
		Kind:     models.CategoryExpense,
	})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestCategoryByKind(t *testing.T) {
	set, ctx := newSeededSet(t)
	assert.Len(t, set.Categories.ByKind(ctx, models.CategoryExpense), 11)
	assert.Len(t, set.Categories.ByKind(ctx, models.CategoryIncome), 3)
	assert.Len(t, set.Categories.ByKind(ctx, models.CategoryTransfer), 2)
}
