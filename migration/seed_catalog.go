// migration/seed_catalog.go
// Loads a grouped catalog (seed/catalog.yaml or a file) into the component
// store. Rows are upserted by (category, id), so re-running is safe.

package migration

import (
	"context"
	"fmt"

	"github.com/LovationAdmin/pcease-api/models"
	"github.com/LovationAdmin/pcease-api/repository"
	"github.com/LovationAdmin/pcease-api/services"
	"github.com/LovationAdmin/pcease-api/utils"
)

type SeedResult struct {
	Written  int `json:"written"`
	Enriched int `json:"enriched"`
}

// SeedCatalog upserts every component of grouped. With enrich set, specs are
// derived before writing.
func SeedCatalog(ctx context.Context, repo repository.ComponentRepository, grouped map[models.Category][]models.Component, enrich bool) (SeedResult, error) {
	var result SeedResult

	utils.SafeInfo("🚀 Seeding catalog (%d categories)...", len(grouped))

	items := services.FlattenCatalog(grouped).Items()
	batch := make([]models.Component, 0, len(items))
	for _, c := range items {
		if _, ok := models.ParseCategory(string(c.Category)); !ok {
			return result, fmt.Errorf("component %d has unknown category %q", c.ID, c.Category)
		}
		if c.ID <= 0 || c.Name == "" {
			return result, fmt.Errorf("component in %s is missing id or name", c.Category)
		}
		if enrich {
			derived := services.DeriveSpecs(c)
			if !services.SpecsEqual(c.Specs, derived) {
				result.Enriched++
			}
			c.Specs = derived
		}
		batch = append(batch, c)
	}

	written, err := repo.Upsert(ctx, batch)
	if err != nil {
		return result, fmt.Errorf("upsert catalog: %w", err)
	}
	result.Written = written

	utils.SafeInfo("📊 Seed result: %d written, %d enriched", result.Written, result.Enriched)
	return result, nil
}
