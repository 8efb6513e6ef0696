package services

import (
	"sort"
	"strings"

	"github.com/LovationAdmin/pcease-api/models"
)

// MaxDowngradeSteps bounds the downgrade loop.
const MaxDowngradeSteps = 200

// ResolutionOrder is the order categories are picked in. CPU and motherboard
// come first so RAM and case filters see them.
var ResolutionOrder = []models.Category{
	models.CategoryCPU,
	models.CategoryMotherboard,
	models.CategoryRAM,
	models.CategoryGPU,
	models.CategoryStorage,
	models.CategoryPSU,
	models.CategoryCase,
	models.CategoryMonitor,
}

// DowngradePriority lists the categories trimmed first when over budget.
var DowngradePriority = []models.Category{
	models.CategoryCase,
	models.CategoryMonitor,
	models.CategoryStorage,
	models.CategoryPSU,
	models.CategoryRAM,
	models.CategoryGPU,
	models.CategoryCPU,
	models.CategoryMotherboard,
}

const DefaultUseCase = "general"

// AllocationProfiles map a use case to the share of budget each category gets.
// Fractions are weights and are used as-is.
var AllocationProfiles = map[string]map[models.Category]float64{
	"gaming": {
		models.CategoryCPU: 0.2, models.CategoryGPU: 0.4, models.CategoryMotherboard: 0.1, models.CategoryRAM: 0.08,
		models.CategoryStorage: 0.07, models.CategoryPSU: 0.07, models.CategoryCase: 0.04, models.CategoryMonitor: 0.04,
	},
	"productivity": {
		models.CategoryCPU: 0.25, models.CategoryGPU: 0.15, models.CategoryMotherboard: 0.12, models.CategoryRAM: 0.18,
		models.CategoryStorage: 0.1, models.CategoryPSU: 0.08, models.CategoryCase: 0.06, models.CategoryMonitor: 0.06,
	},
	"content-creation": {
		models.CategoryCPU: 0.25, models.CategoryGPU: 0.28, models.CategoryMotherboard: 0.1, models.CategoryRAM: 0.15,
		models.CategoryStorage: 0.1, models.CategoryPSU: 0.06, models.CategoryCase: 0.03, models.CategoryMonitor: 0.03,
	},
	"programming": {
		models.CategoryCPU: 0.25, models.CategoryGPU: 0.1, models.CategoryMotherboard: 0.12, models.CategoryRAM: 0.2,
		models.CategoryStorage: 0.13, models.CategoryPSU: 0.08, models.CategoryCase: 0.06, models.CategoryMonitor: 0.06,
	},
	"general": {
		models.CategoryCPU: 0.22, models.CategoryGPU: 0.18, models.CategoryMotherboard: 0.12, models.CategoryRAM: 0.15,
		models.CategoryStorage: 0.12, models.CategoryPSU: 0.09, models.CategoryCase: 0.06, models.CategoryMonitor: 0.06,
	},
	"workstation": {
		models.CategoryCPU: 0.3, models.CategoryGPU: 0.25, models.CategoryMotherboard: 0.1, models.CategoryRAM: 0.15,
		models.CategoryStorage: 0.08, models.CategoryPSU: 0.06, models.CategoryCase: 0.03, models.CategoryMonitor: 0.03,
	},
}

// Allocation returns the profile for useCase, falling back to general.
func Allocation(useCase string) (string, map[models.Category]float64) {
	key := strings.ToLower(strings.TrimSpace(useCase))
	if profile, ok := AllocationProfiles[key]; ok {
		return key, profile
	}
	return DefaultUseCase, AllocationProfiles[DefaultUseCase]
}

// ============================================================================
// CATALOG VIEW
// ============================================================================

// Catalog is an immutable, flattened snapshot of the component list.
type Catalog struct {
	items []models.Component
}

// FlattenCatalog turns a category → items grouping into one list. Categories
// are emitted in display order, unknown ones after, alphabetically.
func FlattenCatalog(grouped map[models.Category][]models.Component) *Catalog {
	seen := make(map[models.Category]bool, len(grouped))
	order := make([]models.Category, 0, len(grouped))
	for _, cat := range models.AllCategories {
		if _, ok := grouped[cat]; ok {
			order = append(order, cat)
			seen[cat] = true
		}
	}
	var extra []models.Category
	for cat := range grouped {
		if !seen[cat] {
			extra = append(extra, cat)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	order = append(order, extra...)

	var items []models.Component
	for _, cat := range order {
		for _, c := range grouped[cat] {
			c.Category = cat
			items = append(items, c)
		}
	}
	return &Catalog{items: items}
}

// NewCatalog wraps an already flat component list.
func NewCatalog(list []models.Component) *Catalog {
	items := make([]models.Component, len(list))
	copy(items, list)
	return &Catalog{items: items}
}

func (c *Catalog) Items() []models.Component {
	return c.items
}

func (c *Catalog) Len() int {
	return len(c.items)
}

// Grouped is the inverse of FlattenCatalog.
func (c *Catalog) Grouped() map[models.Category][]models.Component {
	out := make(map[models.Category][]models.Component)
	for _, item := range c.items {
		out[item.Category] = append(out[item.Category], item)
	}
	return out
}

func (c *Catalog) Find(category models.Category, id int) *models.Component {
	for i := range c.items {
		if c.items[i].Category == category && c.items[i].ID == id {
			item := c.items[i]
			return &item
		}
	}
	return nil
}

// ============================================================================
// CANDIDATE FILTER
// ============================================================================

// attrMatches treats a missing attribute on either side as compatible.
func attrMatches(want, have string) bool {
	if want == "" || have == "" {
		return true
	}
	return strings.EqualFold(want, have)
}

// Candidates lists purchasable components of category compatible with build,
// cheapest first. Equal prices keep catalog order.
func (c *Catalog) Candidates(category models.Category, build models.Build, brandPreference string) []models.Component {
	cpu := build.Get(models.CategoryCPU)
	board := build.Get(models.CategoryMotherboard)

	var out []models.Component
	for _, item := range c.items {
		if item.Category != category || item.EffectivePrice() <= 0 {
			continue
		}
		switch category {
		case models.CategoryCPU:
			if brandPreference != "" && !strings.EqualFold(item.Brand, brandPreference) {
				continue
			}
		case models.CategoryMotherboard:
			if cpu != nil && !attrMatches(cpu.Brand, item.Brand) {
				continue
			}
		case models.CategoryRAM:
			if board != nil && !attrMatches(board.RAMType, item.RAMType) {
				continue
			}
		case models.CategoryCase:
			if board != nil && !attrMatches(board.FormFactor, item.FormFactor) {
				continue
			}
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EffectivePrice() < out[j].EffectivePrice()
	})
	return out
}

// ============================================================================
// PICKER
// ============================================================================

// PickUnderOrClosest returns the most expensive candidate priced at or under
// ceiling, or the cheapest one when none fits. sorted must be price-ascending.
func PickUnderOrClosest(sorted []models.Component, ceiling float64) *models.Component {
	if len(sorted) == 0 {
		return nil
	}
	pick := -1
	for i := range sorted {
		if sorted[i].EffectivePrice() > ceiling {
			break
		}
		pick = i
	}
	if pick < 0 {
		pick = 0
	}
	c := sorted[pick]
	return &c
}

// ============================================================================
// DOWNGRADE LOOP
// ============================================================================

type DowngradeResult struct {
	Steps      int
	CapReached bool
}

// stepDown finds the next cheaper candidate for current. When current has
// dropped out of the list because an upstream pick changed, the most
// expensive candidate strictly cheaper than it is used.
func stepDown(list []models.Component, current *models.Component) (models.Component, bool) {
	for i := range list {
		if list[i].ID == current.ID {
			if i == 0 {
				return models.Component{}, false
			}
			return list[i-1], true
		}
	}
	// Unlike a plain index step, a pick that fell out of the list still has
	// somewhere to go, so an over-budget build keeps shrinking.
	price := current.EffectivePrice()
	for i := len(list) - 1; i >= 0; i-- {
		if list[i].EffectivePrice() < price {
			return list[i], true
		}
	}
	return models.Component{}, false
}

// Downgrade moves picks one step cheaper, in priority order, until the build
// fits the budget, nothing can be downgraded, or MaxDowngradeSteps is reached.
func (c *Catalog) Downgrade(build models.Build, budget float64, brandPreference string) DowngradeResult {
	steps := 0
	total := build.Total()
	for total > budget && steps < MaxDowngradeSteps {
		downgraded := false
		for _, cat := range DowngradePriority {
			current := build.Get(cat)
			if current == nil {
				continue
			}
			next, ok := stepDown(c.Candidates(cat, build, brandPreference), current)
			if !ok {
				continue
			}
			build[cat] = &next
			total = build.Total()
			downgraded = true
			break
		}
		if !downgraded {
			break
		}
		steps++
	}
	return DowngradeResult{
		Steps:      steps,
		CapReached: steps >= MaxDowngradeSteps && total > budget,
	}
}

// ============================================================================
// RECOMMENDER
// ============================================================================

type Recommendation struct {
	Build     models.Build
	UseCase   string
	Budget    float64
	Downgrade DowngradeResult
}

// Recommend allocates budget across categories, picks greedily and then
// downgrades until the build fits. An over-budget result is still returned.
func (c *Catalog) Recommend(budget float64, useCase, brandPreference string) Recommendation {
	resolved, allocation := Allocation(useCase)
	build := models.Build{}
	for _, cat := range ResolutionOrder {
		pick := PickUnderOrClosest(c.Candidates(cat, build, brandPreference), budget*allocation[cat])
		if pick != nil {
			build[cat] = pick
		}
	}
	result := c.Downgrade(build, budget, brandPreference)
	return Recommendation{
		Build:     build,
		UseCase:   resolved,
		Budget:    budget,
		Downgrade: result,
	}
}

// Response shapes a recommendation for clients.
func (r Recommendation) Response() models.RecommendationResponse {
	total := r.Build.Total()
	status := models.StatusUnderBudget
	if r.Budget-total < 0 {
		status = models.StatusOverBudget
	}
	return models.RecommendationResponse{
		Build:          r.Build.Slots(),
		TotalPrice:     total,
		ComponentCount: r.Build.Count(),
		TotalSlots:     len(models.AllCategories),
		Budget:         r.Budget,
		Remaining:      r.Budget - total,
		Status:         status,
		UseCase:        r.UseCase,
		DowngradeSteps: r.Downgrade.Steps,
		Warnings:       CheckCompatibility(r.Build),
	}
}
