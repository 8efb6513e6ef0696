package models

import (
	"strings"
	"time"
)

// ============================================================================
// CATEGORIES
// ============================================================================

type Category string

const (
	CategoryCPU         Category = "cpu"
	CategoryGPU         Category = "gpu"
	CategoryMotherboard Category = "motherboard"
	CategoryRAM         Category = "ram"
	CategoryStorage     Category = "storage"
	CategoryPSU         Category = "psu"
	CategoryCase        Category = "case"
	CategoryMonitor     Category = "monitor"
)

// AllCategories is the display order used by the builder and summaries.
var AllCategories = []Category{
	CategoryCPU,
	CategoryGPU,
	CategoryMotherboard,
	CategoryRAM,
	CategoryStorage,
	CategoryPSU,
	CategoryCase,
	CategoryMonitor,
}

type CategoryInfo struct {
	Slug        Category `json:"slug"`
	DisplayName string   `json:"display_name"`
	Icon        string   `json:"icon"`
	Description string   `json:"description"`
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryCPU:         {Slug: CategoryCPU, DisplayName: "Processor", Icon: "CPU", Description: "AMD & Intel CPUs"},
	CategoryGPU:         {Slug: CategoryGPU, DisplayName: "Graphics Card", Icon: "GPU", Description: "NVIDIA & AMD GPUs"},
	CategoryMotherboard: {Slug: CategoryMotherboard, DisplayName: "Motherboard", Icon: "MB", Description: "AM5, LGA1700, AM4"},
	CategoryRAM:         {Slug: CategoryRAM, DisplayName: "Memory (RAM)", Icon: "RAM", Description: "DDR4 & DDR5 RAM"},
	CategoryStorage:     {Slug: CategoryStorage, DisplayName: "Storage", Icon: "SSD", Description: "NVMe, SSD & HDD"},
	CategoryPSU:         {Slug: CategoryPSU, DisplayName: "Power Supply", Icon: "PSU", Description: "80+ Certified"},
	CategoryCase:        {Slug: CategoryCase, DisplayName: "Case", Icon: "CASE", Description: "ATX, mATX & ITX"},
	CategoryMonitor:     {Slug: CategoryMonitor, DisplayName: "Monitor", Icon: "MON", Description: "Gaming & Professional"},
}

// ParseCategory normalizes a category slug. "pcCase" is the legacy slug for cases.
func ParseCategory(raw string) (Category, bool) {
	s := strings.TrimSpace(raw)
	if strings.EqualFold(s, "pcCase") {
		return CategoryCase, true
	}
	c := Category(strings.ToLower(s))
	_, ok := categoryInfo[c]
	return c, ok
}

func (c Category) Info() CategoryInfo {
	if info, ok := categoryInfo[c]; ok {
		return info
	}
	return CategoryInfo{Slug: c, DisplayName: strings.ToUpper(string(c))}
}

// Rank is the position of c in AllCategories. Unknown categories sort last.
func (c Category) Rank() int {
	for i, cat := range AllCategories {
		if cat == c {
			return i
		}
	}
	return len(AllCategories)
}

func (c Category) DisplayName() string {
	return c.Info().DisplayName
}

func Categories() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(AllCategories))
	for _, c := range AllCategories {
		out = append(out, categoryInfo[c])
	}
	return out
}

// ============================================================================
// COMPONENT
// ============================================================================

type VendorOffer struct {
	Name    string  `json:"name" yaml:"name"`
	Price   float64 `json:"price" yaml:"price"`
	URL     string  `json:"url" yaml:"url"`
	InStock bool    `json:"stock" yaml:"stock"`
}

// Component is a catalog item. ID is unique within its category.
type Component struct {
	ID         int                    `json:"id" yaml:"id" binding:"required"`
	Category   Category               `json:"category" yaml:"category"`
	Name       string                 `json:"name" yaml:"name" binding:"required"`
	Brand      string                 `json:"brand,omitempty" yaml:"brand,omitempty"`
	RAMType    string                 `json:"ramType,omitempty" yaml:"ramType,omitempty"`
	FormFactor string                 `json:"formFactor,omitempty" yaml:"formFactor,omitempty"`
	Cores      int                    `json:"cores,omitempty" yaml:"cores,omitempty"`
	Memory     string                 `json:"memory,omitempty" yaml:"memory,omitempty"`
	Capacity   string                 `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	Wattage    int                    `json:"wattage,omitempty" yaml:"wattage,omitempty"`
	Vendors    []VendorOffer          `json:"vendors" yaml:"vendors"`
	Specs      map[string]interface{} `json:"specs,omitempty" yaml:"specs,omitempty"`
	CreatedAt  time.Time              `json:"created_at,omitempty" yaml:"-"`
	UpdatedAt  time.Time              `json:"updated_at,omitempty" yaml:"-"`
}

// EffectivePrice is the lowest in-stock offer, else the lowest offer, else zero.
func (c *Component) EffectivePrice() float64 {
	if c == nil || len(c.Vendors) == 0 {
		return 0
	}
	best, found := 0.0, false
	for _, v := range c.Vendors {
		if v.InStock && (!found || v.Price < best) {
			best, found = v.Price, true
		}
	}
	if found {
		return best
	}
	best = c.Vendors[0].Price
	for _, v := range c.Vendors[1:] {
		if v.Price < best {
			best = v.Price
		}
	}
	return best
}

// CheapestVendor returns the offer a buyer would be sent to, preferring stock.
func (c *Component) CheapestVendor() *VendorOffer {
	if c == nil || len(c.Vendors) == 0 {
		return nil
	}
	var pick *VendorOffer
	for i := range c.Vendors {
		v := &c.Vendors[i]
		if v.InStock && (pick == nil || v.Price < pick.Price) {
			pick = v
		}
	}
	if pick != nil {
		return pick
	}
	pick = &c.Vendors[0]
	for i := range c.Vendors {
		if c.Vendors[i].Price < pick.Price {
			pick = &c.Vendors[i]
		}
	}
	return pick
}

// CatalogItem is a component as presented to clients, with its price resolved.
type CatalogItem struct {
	Component
	Price     float64      `json:"price"`
	BestOffer *VendorOffer `json:"cheapest_vendor,omitempty"`
}

func NewCatalogItem(c Component) CatalogItem {
	return CatalogItem{
		Component: c,
		Price:     c.EffectivePrice(),
		BestOffer: c.CheapestVendor(),
	}
}

type ComponentFilter struct {
	Category Category
	Brand    string
	Search   string
	Sort     string
	Skip     int
	Limit    int
}

type CatalogStats struct {
	Components    int              `json:"components"`
	Categories    int              `json:"categories"`
	Vendors       int              `json:"vendors"`
	InStockOffers int              `json:"in_stock_offers"`
	PerCategory   map[Category]int `json:"per_category"`
}
