package models

import (
	"encoding/json"
	"time"
)

// Build holds at most one component per category. Absent slots are nil.
type Build map[Category]*Component

func (b Build) Get(c Category) *Component {
	if b == nil {
		return nil
	}
	return b[c]
}

// Total sums the effective price of every filled slot.
func (b Build) Total() float64 {
	total := 0.0
	for _, c := range b {
		if c != nil {
			total += c.EffectivePrice()
		}
	}
	return total
}

func (b Build) Count() int {
	n := 0
	for _, c := range b {
		if c != nil {
			n++
		}
	}
	return n
}

// Slots renders every category, absent ones as null, for clients.
func (b Build) Slots() map[Category]*CatalogItem {
	out := make(map[Category]*CatalogItem, len(AllCategories))
	for _, cat := range AllCategories {
		if c := b.Get(cat); c != nil {
			item := NewCatalogItem(*c)
			out[cat] = &item
		} else {
			out[cat] = nil
		}
	}
	return out
}

// DecodeBuild reads a category → component object, accepting the "pcCase" slug.
func DecodeBuild(raw json.RawMessage) (Build, error) {
	var loose map[string]*Component
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil, err
	}
	build := Build{}
	for key, comp := range loose {
		cat, ok := ParseCategory(key)
		if !ok || comp == nil {
			continue
		}
		comp.Category = cat
		build[cat] = comp
	}
	return build, nil
}

// ============================================================================
// RECOMMENDATION
// ============================================================================

type RecommendationRequest struct {
	Budget          float64 `json:"budget" binding:"required,gt=0"`
	UseCase         string  `json:"useCase"`
	BrandPreference string  `json:"brandPreference"`
}

const (
	StatusUnderBudget = "Under Budget"
	StatusOverBudget  = "Over Budget"
)

type RecommendationResponse struct {
	Build          map[Category]*CatalogItem `json:"build"`
	TotalPrice     float64                   `json:"totalPrice"`
	ComponentCount int                       `json:"componentCount"`
	TotalSlots     int                       `json:"totalSlots"`
	Budget         float64                   `json:"budget"`
	Remaining      float64                   `json:"remaining"`
	Status         string                    `json:"status"`
	UseCase        string                    `json:"useCase"`
	DowngradeSteps int                       `json:"downgradeSteps"`
	Warnings       []string                  `json:"warnings"`
}

type BuildCheckResponse struct {
	Warnings       []string `json:"warnings"`
	TotalPrice     float64  `json:"totalPrice"`
	ComponentCount int      `json:"componentCount"`
	TotalSlots     int      `json:"totalSlots"`
}

// ============================================================================
// SAVED BUILDS
// ============================================================================

type SavedBuild struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Name       string          `json:"name"`
	Items      json.RawMessage `json:"items"`
	TotalPrice float64         `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type SavedBuildRequest struct {
	Name  *string         `json:"name"`
	Items json.RawMessage `json:"items"`
}

// ============================================================================
// PRESETS
// ============================================================================

type Preset struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Icon        string           `json:"icon"`
	Description string           `json:"description"`
	Budget      float64          `json:"budget,omitempty"`
	UseCase     string           `json:"useCase,omitempty"`
	Parts       map[Category]int `json:"parts,omitempty"`
}

func (p Preset) IsBudgetPreset() bool {
	return p.Budget > 0 && len(p.Parts) == 0
}
