package repository

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/LovationAdmin/pcease-api/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

type ComponentRepository interface {
	// List filters, sorts and pages the catalog. The int is the match count
	// before paging.
	List(ctx context.Context, filter models.ComponentFilter) ([]models.Component, int, error)
	All(ctx context.Context) ([]models.Component, error)
	Get(ctx context.Context, category models.Category, id int) (*models.Component, error)
	Create(ctx context.Context, c *models.Component) error
	// Upsert inserts or replaces components keyed by (category, id).
	Upsert(ctx context.Context, items []models.Component) (int, error)
	UpdateSpecs(ctx context.Context, category models.Category, id int, specs map[string]interface{}) error
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type ThreadRepository interface {
	List(ctx context.Context, filter models.ThreadFilter) ([]models.Thread, error)
	// Get returns the thread with its replies, oldest first.
	Get(ctx context.Context, id string) (*models.Thread, error)
	Create(ctx context.Context, t *models.Thread) error
	Delete(ctx context.Context, id string) error
	AddReply(ctx context.Context, r *models.Reply) error
}

// SavedBuildRepository scopes every lookup to the owning user.
type SavedBuildRepository interface {
	ListByUser(ctx context.Context, userID string) ([]models.SavedBuild, error)
	Get(ctx context.Context, id, userID string) (*models.SavedBuild, error)
	Create(ctx context.Context, b *models.SavedBuild) error
	Update(ctx context.Context, b *models.SavedBuild) error
	Delete(ctx context.Context, id, userID string) error
}

// Store bundles the repositories a running server needs.
type Store struct {
	Components  ComponentRepository
	Users       UserRepository
	Threads     ThreadRepository
	SavedBuilds SavedBuildRepository
}

// ============================================================================
// SHARED CATALOG HELPERS
// ============================================================================

const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortName      = "name"
)

// MatchComponent applies the category, brand and search parts of a filter.
func MatchComponent(c models.Component, f models.ComponentFilter) bool {
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.Brand != "" && !strings.EqualFold(c.Brand, f.Brand) {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

func catalogLess(a, b models.Component) bool {
	if ra, rb := a.Category.Rank(), b.Category.Rank(); ra != rb {
		return ra < rb
	}
	if a.Category != b.Category {
		return a.Category < b.Category
	}
	return a.ID < b.ID
}

// SortCatalog orders components by category display order, then id.
func SortCatalog(items []models.Component) {
	sort.SliceStable(items, func(i, j int) bool { return catalogLess(items[i], items[j]) })
}

// SortAndPage orders already-matched components and slices out one page.
// Limit <= 0 returns everything after Skip.
func SortAndPage(items []models.Component, f models.ComponentFilter) []models.Component {
	SortCatalog(items)
	switch f.Sort {
	case SortPriceHigh:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].EffectivePrice() > items[j].EffectivePrice()
		})
	case SortName:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].EffectivePrice() < items[j].EffectivePrice()
		})
	}

	if f.Skip > 0 {
		if f.Skip >= len(items) {
			return []models.Component{}
		}
		items = items[f.Skip:]
	}
	if f.Limit > 0 && f.Limit < len(items) {
		items = items[:f.Limit]
	}
	return items
}

// pageBounds clamps skip/limit to a slice of length n.
func pageBounds(n, skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if skip > n {
		skip = n
	}
	end := n
	if limit > 0 && skip+limit < n {
		end = skip + limit
	}
	return skip, end
}
