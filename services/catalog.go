package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/LovationAdmin/pcease-api/models"
	"github.com/LovationAdmin/pcease-api/repository"
	"github.com/LovationAdmin/pcease-api/utils"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 500
)

type CatalogService struct {
	repo repository.ComponentRepository
}

func NewCatalogService(repo repository.ComponentRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// NormalizeFilter applies defaults and bounds to a client filter.
func NormalizeFilter(f models.ComponentFilter) models.ComponentFilter {
	switch f.Sort {
	case repository.SortPriceLow, repository.SortPriceHigh, repository.SortName:
	default:
		f.Sort = repository.SortPriceLow
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = DefaultListLimit
	}
	if f.Limit > MaxListLimit {
		f.Limit = MaxListLimit
	}
	f.Brand = strings.TrimSpace(f.Brand)
	f.Search = strings.TrimSpace(f.Search)
	return f
}

func toItems(list []models.Component) []models.CatalogItem {
	items := make([]models.CatalogItem, 0, len(list))
	for _, c := range list {
		items = append(items, models.NewCatalogItem(c))
	}
	return items
}

func (s *CatalogService) List(ctx context.Context, filter models.ComponentFilter) ([]models.CatalogItem, int, error) {
	list, total, err := s.repo.List(ctx, NormalizeFilter(filter))
	if err != nil {
		return nil, 0, fmt.Errorf("list components: %w", err)
	}
	return toItems(list), total, nil
}

func (s *CatalogService) Grouped(ctx context.Context) (map[models.Category][]models.CatalogItem, error) {
	list, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	out := make(map[models.Category][]models.CatalogItem, len(models.AllCategories))
	for _, cat := range models.AllCategories {
		out[cat] = []models.CatalogItem{}
	}
	for _, c := range list {
		out[c.Category] = append(out[c.Category], models.NewCatalogItem(c))
	}
	return out, nil
}

func (s *CatalogService) Get(ctx context.Context, category models.Category, id int) (*models.CatalogItem, error) {
	c, err := s.repo.Get(ctx, category, id)
	if err != nil {
		return nil, err
	}
	item := models.NewCatalogItem(*c)
	return &item, nil
}

func validateComponent(c *models.Component) error {
	cat, ok := models.ParseCategory(string(c.Category))
	if !ok {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidComponent, c.Category)
	}
	c.Category = cat
	c.Name = strings.TrimSpace(c.Name)
	if c.ID <= 0 || c.Name == "" {
		return fmt.Errorf("%w: id and name are required", ErrInvalidComponent)
	}
	for _, v := range c.Vendors {
		if v.Price < 0 {
			return fmt.Errorf("%w: vendor %q has a negative price", ErrInvalidComponent, v.Name)
		}
	}
	if c.Vendors == nil {
		c.Vendors = []models.VendorOffer{}
	}
	return nil
}

// Create adds one component with derived specs filled in.
func (s *CatalogService) Create(ctx context.Context, c *models.Component) (*models.CatalogItem, error) {
	if err := validateComponent(c); err != nil {
		return nil, err
	}
	c.Specs = DeriveSpecs(*c)
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	utils.SafeInfo("[Catalog] component created: %s/%d", c.Category, c.ID)
	item := models.NewCatalogItem(*c)
	return &item, nil
}

func (s *CatalogService) Stats(ctx context.Context) (models.CatalogStats, error) {
	list, err := s.repo.All(ctx)
	if err != nil {
		return models.CatalogStats{}, fmt.Errorf("load catalog: %w", err)
	}
	return ComputeStats(list), nil
}

func ComputeStats(list []models.Component) models.CatalogStats {
	stats := models.CatalogStats{PerCategory: make(map[models.Category]int)}
	vendors := make(map[string]bool)
	for _, c := range list {
		stats.Components++
		stats.PerCategory[c.Category]++
		for _, v := range c.Vendors {
			vendors[strings.ToLower(v.Name)] = true
			if v.InStock {
				stats.InStockOffers++
			}
		}
	}
	stats.Categories = len(stats.PerCategory)
	stats.Vendors = len(vendors)
	return stats
}

// Snapshot loads the whole catalog into an immutable view for the advisor.
func (s *CatalogService) Snapshot(ctx context.Context) (*Catalog, error) {
	list, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return NewCatalog(list), nil
}

func (s *CatalogService) Recommend(ctx context.Context, req models.RecommendationRequest) (models.RecommendationResponse, error) {
	catalog, err := s.Snapshot(ctx)
	if err != nil {
		return models.RecommendationResponse{}, err
	}
	rec := catalog.Recommend(req.Budget, req.UseCase, strings.TrimSpace(req.BrandPreference))
	resp := rec.Response()
	utils.LogRecommendation(resp.UseCase, resp.Budget, resp.TotalPrice, resp.DowngradeSteps)
	if rec.Downgrade.CapReached {
		utils.SafeWarn("[Advisor] downgrade cap reached for budget %.0f", req.Budget)
	}
	return resp, nil
}
