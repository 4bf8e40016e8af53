package entities

import (
	"context"
	"strings"
	"time"

	"bookkeeper/internal/entities/models"
	"bookkeeper/internal/registry"
	"bookkeeper/internal/registry/match"
	"bookkeeper/pkg/domain"
	dErrors "bookkeeper/pkg/domain-errors"
	"bookkeeper/pkg/platform/sentinel"
)

// CategoryRegistry owns the version log for category entities and the
// hierarchy operations over their parent references.
//
// The tree is navigated through current versions only. All traversals
// are iterative with a visited set, so a cycle that slips into stored
// data degrades a query result instead of hanging the process.
type CategoryRegistry struct {
	reg *registry.Registry[models.Category]
}

// NewCategoryRegistry creates an empty category registry.
func NewCategoryRegistry(opts ...registry.Option) *CategoryRegistry {
	return &CategoryRegistry{reg: registry.New[models.Category](string(models.KindCategory), opts...)}
}

// Register creates a new category entity. A non-nil parent must reference
// a category with a current version.
func (r *CategoryRegistry) Register(ctx context.Context, category models.Category) (registry.Version[models.Category], error) {
	if category.ParentID != nil {
		if _, err := r.GetCurrentVersion(ctx, *category.ParentID); err != nil {
			var zero registry.Version[models.Category]
			return zero, dErrors.Wrap(err, dErrors.CodeInvalidInput, "parent category not found")
		}
	}
	return r.reg.Register(ctx, domain.NewCategoryID().String(), category, ""), nil
}

// GetAllVersions returns every version of a category in append order.
func (r *CategoryRegistry) GetAllVersions(ctx context.Context, id domain.CategoryID) []registry.Version[models.Category] {
	return r.reg.GetAllVersions(ctx, id.String())
}

// GetCurrentVersion returns the category's current version.
func (r *CategoryRegistry) GetCurrentVersion(ctx context.Context, id domain.CategoryID) (registry.Version[models.Category], error) {
	return r.reg.GetCurrentVersion(ctx, id.String())
}

// GetAtTime returns the category's version as of a specific instant.
func (r *CategoryRegistry) GetAtTime(ctx context.Context, id domain.CategoryID, at time.Time) (registry.Version[models.Category], error) {
	return r.reg.GetAtTime(ctx, id.String(), at)
}

// Update expires the current version and appends a successor with the
// mutation applied. The mutator runs exactly once, against a copy of the
// current value; the validated result is what gets written. A mutation
// that moves the category under one of its own descendants (or under
// itself) is rejected with an invariant_violation before anything is
// written.
func (r *CategoryRegistry) Update(ctx context.Context, id domain.CategoryID, reason string, mutate func(*models.Category)) (int64, error) {
	current, err := r.GetCurrentVersion(ctx, id)
	if err != nil {
		return 0, err
	}

	next := current.Value.Clone()
	mutate(&next)

	if next.ParentID != nil && !parentEqual(current.Value.ParentID, next.ParentID) {
		if err := r.checkNewParent(ctx, id, *next.ParentID); err != nil {
			return 0, err
		}
	}
	return r.reg.Update(ctx, id.String(), reason, func(c *models.Category) {
		*c = next.Clone()
	})
}

// SetParent moves a category under a new parent, or to the root when
// parentID is nil.
func (r *CategoryRegistry) SetParent(ctx context.Context, id domain.CategoryID, parentID *domain.CategoryID) (int64, error) {
	return r.Update(ctx, id, "move category", func(c *models.Category) {
		c.ParentID = parentID
	})
}

func parentEqual(a, b *domain.CategoryID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// checkNewParent validates that reparenting id under parentID keeps the
// hierarchy acyclic: the new parent must exist and must not be the
// category itself or one of its descendants.
func (r *CategoryRegistry) checkNewParent(ctx context.Context, id, parentID domain.CategoryID) error {
	if parentID == id {
		return dErrors.New(dErrors.CodeInvariantViolation, "category cannot be its own parent")
	}
	if _, err := r.GetCurrentVersion(ctx, parentID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "parent category not found")
	}
	// Walk up from the proposed parent; reaching id means the new parent
	// sits below the category being moved.
	if r.IsAncestor(ctx, id, parentID) {
		return dErrors.New(dErrors.CodeInvariantViolation, "category move would create a cycle")
	}
	return nil
}

// AllCurrent returns the current version of every category.
func (r *CategoryRegistry) AllCurrent(ctx context.Context) []registry.Version[models.Category] {
	return r.reg.AllCurrent(ctx)
}

// Count returns the number of categories with a current version.
func (r *CategoryRegistry) Count(ctx context.Context) int {
	return r.reg.Count(ctx)
}

// FindByName returns the category whose name matches exactly,
// case-insensitively.
func (r *CategoryRegistry) FindByName(ctx context.Context, name string) (registry.Version[models.Category], error) {
	lower := strings.ToLower(name)
	return r.reg.FindCurrent(ctx, func(c models.Category) bool {
		return strings.ToLower(c.Name) == lower
	})
}

// FindByString resolves a free-text category string through the matching
// engine. Categories have no aliases, so only the exact, containment,
// and fuzzy tiers apply.
func (r *CategoryRegistry) FindByString(ctx context.Context, s string) (registry.Version[models.Category], match.Tier, error) {
	return resolveString(ctx, r.reg, s, func(c models.Category) match.Candidate {
		return match.Candidate{Canonical: c.Name}
	})
}

// FindByID returns the category's current version.
func (r *CategoryRegistry) FindByID(ctx context.Context, id domain.CategoryID) (registry.Version[models.Category], error) {
	return r.GetCurrentVersion(ctx, id)
}

// ByKind filters current categories by kind.
func (r *CategoryRegistry) ByKind(ctx context.Context, kind models.CategoryKind) []registry.Version[models.Category] {
	return r.reg.FilterCurrent(ctx, func(c models.Category) bool { return c.Kind == kind })
}

// Roots returns the current categories with no parent.
func (r *CategoryRegistry) Roots(ctx context.Context) []registry.Version[models.Category] {
	return r.reg.FilterCurrent(ctx, func(c models.Category) bool { return c.IsRoot() })
}

// Children returns the current categories whose parent is the given
// category.
func (r *CategoryRegistry) Children(ctx context.Context, id domain.CategoryID) []registry.Version[models.Category] {
	return r.reg.FilterCurrent(ctx, func(c models.Category) bool {
		return c.ParentID != nil && *c.ParentID == id
	})
}

// Parent returns the current version of a category's parent, or
// sentinel.ErrNotFound for roots and dangling parent references.
func (r *CategoryRegistry) Parent(ctx context.Context, c models.Category) (registry.Version[models.Category], error) {
	if c.ParentID == nil {
		var zero registry.Version[models.Category]
		return zero, sentinel.ErrNotFound
	}
	return r.GetCurrentVersion(ctx, *c.ParentID)
}

// Path returns the category names from the root down to the given
// category, e.g. ["Food & Dining", "Restaurants", "Café"]. A dangling
// parent reference truncates the path at the last resolvable ancestor.
func (r *CategoryRegistry) Path(ctx context.Context, id domain.CategoryID) ([]string, error) {
	v, err := r.GetCurrentVersion(ctx, id)
	if err != nil {
		return nil, err
	}

	path := []string{v.Value.Name}
	seen := map[domain.CategoryID]bool{id: true}

	cur := v.Value
	for cur.ParentID != nil {
		pid := *cur.ParentID
		if seen[pid] {
			break
		}
		seen[pid] = true

		pv, err := r.GetCurrentVersion(ctx, pid)
		if err != nil {
			break
		}
		path = append(path, pv.Value.Name)
		cur = pv.Value
	}

	// Reverse to root-first order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// PathString returns the path joined with " → ".
func (r *CategoryRegistry) PathString(ctx context.Context, id domain.CategoryID) (string, error) {
	path, err := r.Path(ctx, id)
	if err != nil {
		return "", err
	}
	return strings.Join(path, " → "), nil
}

// IsAncestor reports whether ancestor appears on the parent chain of
// descendant. A category is considered its own ancestor.
func (r *CategoryRegistry) IsAncestor(ctx context.Context, ancestor, descendant domain.CategoryID) bool {
	if ancestor == descendant {
		return true
	}

	seen := map[domain.CategoryID]bool{descendant: true}
	cur := descendant
	for {
		v, err := r.GetCurrentVersion(ctx, cur)
		if err != nil || v.Value.ParentID == nil {
			return false
		}
		pid := *v.Value.ParentID
		if pid == ancestor {
			return true
		}
		if seen[pid] {
			return false
		}
		seen[pid] = true
		cur = pid
	}
}

// Descendants returns every current category below the given one,
// breadth-first. The category itself is not included.
func (r *CategoryRegistry) Descendants(ctx context.Context, id domain.CategoryID) []registry.Version[models.Category] {
	var out []registry.Version[models.Category]
	seen := map[domain.CategoryID]bool{id: true}

	queue := []domain.CategoryID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, child := range r.Children(ctx, cur) {
			cid, err := domain.ParseCategoryID(child.EntityID)
			if err != nil || seen[cid] {
				continue
			}
			seen[cid] = true
			out = append(out, child)
			queue = append(queue, cid)
		}
	}
	return out
}

// Depth returns the number of ancestors above the category: 0 for roots,
// 1 for their children, and so on.
func (r *CategoryRegistry) Depth(ctx context.Context, id domain.CategoryID) (int, error) {
	path, err := r.Path(ctx, id)
	if err != nil {
		return 0, err
	}
	return len(path) - 1, nil
}
