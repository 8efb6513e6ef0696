// migration/enrich_specs.go
// Backfills structured specs derived from each component's name and
// attributes. Only records whose specs change are written.

package migration

import (
	"context"
	"fmt"

	"github.com/LovationAdmin/pcease-api/repository"
	"github.com/LovationAdmin/pcease-api/services"
	"github.com/LovationAdmin/pcease-api/utils"
)

type EnrichResult struct {
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
	Failed    int `json:"failed"`
}

func EnrichSpecs(ctx context.Context, repo repository.ComponentRepository) (EnrichResult, error) {
	var result EnrichResult

	items, err := repo.All(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to load components: %w", err)
	}

	utils.SafeInfo("🚀 Enriching specs for %d components...", len(items))

	for _, c := range items {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		derived := services.DeriveSpecs(c)
		if services.SpecsEqual(c.Specs, derived) {
			result.Unchanged++
			continue
		}
		if err := repo.UpdateSpecs(ctx, c.Category, c.ID, derived); err != nil {
			utils.SafeWarn("  ❌ %s/%d: %v", c.Category, c.ID, err)
			result.Failed++
			continue
		}
		result.Updated++
	}

	utils.SafeInfo("📊 Enrich result: %d updated, %d unchanged, %d failed",
		result.Updated, result.Unchanged, result.Failed)
	return result, nil
}
