package services

import (
	"github.com/LovationAdmin/pcease-api/models"
)

// Presets are the quick picks offered above the advisor form. Budget presets
// run the recommender; part presets name fixed catalog ids.
var Presets = []models.Preset{
	{ID: "budget-50k", Title: "₹50K Balanced", Icon: "💸", Description: "Entry-level general use", Budget: 50000, UseCase: "general"},
	{ID: "budget-75k", Title: "₹75K Gaming", Icon: "🎮", Description: "1080p gaming starter", Budget: 75000, UseCase: "gaming"},
	{ID: "budget-1l", Title: "₹1L Gaming", Icon: "⚡", Description: "1080p/1440p capable", Budget: 100000, UseCase: "gaming"},
	{ID: "budget-1_5l", Title: "₹1.5L Mid-High", Icon: "🥈", Description: "Strong 1440p gaming", Budget: 150000, UseCase: "gaming"},
	{ID: "budget-2l", Title: "₹2L Creator", Icon: "🎬", Description: "Content creation focus", Budget: 200000, UseCase: "content-creation"},
	{ID: "budget-3l", Title: "₹3L High-End", Icon: "💎", Description: "High-end 1440p/4K", Budget: 300000, UseCase: "gaming"},
	{ID: "budget-4l", Title: "₹4L Enthusiast", Icon: "🚀", Description: "Enthusiast-grade setup", Budget: 400000, UseCase: "workstation"},
	{ID: "budget-5l", Title: "₹5L Ultimate", Icon: "🏆", Description: "No-compromise build", Budget: 500000, UseCase: "workstation"},
	{
		ID: "mid-gaming-amd", Title: "Mid Gaming (AMD)", Icon: "🎮", Description: "1080p/1440p ready, great value",
		Parts: map[models.Category]int{
			models.CategoryCPU: 2, models.CategoryGPU: 13, models.CategoryMotherboard: 18, models.CategoryRAM: 26,
			models.CategoryStorage: 29, models.CategoryPSU: 36, models.CategoryCase: 40, models.CategoryMonitor: 45,
		},
	},
	{
		ID: "high-end-gaming", Title: "High-End Gaming", Icon: "💎", Description: "4080-class 1440p/4K gaming",
		Parts: map[models.Category]int{
			models.CategoryCPU: 3, models.CategoryGPU: 15, models.CategoryMotherboard: 19, models.CategoryRAM: 27,
			models.CategoryStorage: 30, models.CategoryPSU: 37, models.CategoryCase: 41, models.CategoryMonitor: 47,
		},
	},
}

func FindPreset(id string) (models.Preset, bool) {
	for _, p := range Presets {
		if p.ID == id {
			return p, true
		}
	}
	return models.Preset{}, false
}

// PresetSummary is a preset as listed to clients, priced against the catalog.
type PresetSummary struct {
	models.Preset
	Price       float64 `json:"price"`
	FilledParts int     `json:"filledParts"`
}

func (c *Catalog) SummarizePresets() []PresetSummary {
	out := make([]PresetSummary, 0, len(Presets))
	for _, p := range Presets {
		s := PresetSummary{Preset: p}
		if p.IsBudgetPreset() {
			s.Price = p.Budget
		} else {
			build := c.ResolveParts(p.Parts)
			s.Price = build.Total()
			s.FilledParts = build.Count()
		}
		out = append(out, s)
	}
	return out
}

// ResolveParts looks up fixed part ids. Ids missing from the catalog leave
// their slot empty.
func (c *Catalog) ResolveParts(parts map[models.Category]int) models.Build {
	build := models.Build{}
	for cat, id := range parts {
		if comp := c.Find(cat, id); comp != nil {
			build[cat] = comp
		}
	}
	return build
}

// ApplyPreset produces the build a preset stands for.
func (c *Catalog) ApplyPreset(p models.Preset) Recommendation {
	if p.IsBudgetPreset() {
		return c.Recommend(p.Budget, p.UseCase, "")
	}
	build := c.ResolveParts(p.Parts)
	return Recommendation{
		Build:   build,
		UseCase: p.Title,
		Budget:  build.Total(),
	}
}
