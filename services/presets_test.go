package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LovationAdmin/pcease-api/models"
)

func TestPresetsAreWellFormed(t *testing.T) {
	seen := map[string]bool{}
	budgetPresets := 0
	for _, p := range Presets {
		assert.False(t, seen[p.ID], "duplicate preset %s", p.ID)
		seen[p.ID] = true
		if p.IsBudgetPreset() {
			budgetPresets++
			_, ok := AllocationProfiles[p.UseCase]
			assert.True(t, ok, "%s uses unknown use case %q", p.ID, p.UseCase)
		}
	}
	assert.Equal(t, 8, budgetPresets)

	_, ok := FindPreset("budget-1l")
	assert.True(t, ok)
	_, ok = FindPreset("nope")
	assert.False(t, ok)
}

func TestApplyPartsPreset(t *testing.T) {
	cat := seedCatalog(t)

	p, ok := FindPreset("mid-gaming-amd")
	require.True(t, ok)
	rec := cat.ApplyPreset(p)
	assert.Equal(t, 8, rec.Build.Count())
	assert.Equal(t, 138000.0, rec.Build.Total())
	assert.Equal(t, "Mid Gaming (AMD)", rec.UseCase)
	assert.Equal(t, models.StatusUnderBudget, rec.Response().Status)

	p, _ = FindPreset("high-end-gaming")
	assert.Equal(t, 298000.0, cat.ApplyPreset(p).Build.Total())
}

func TestApplyBudgetPreset(t *testing.T) {
	cat := seedCatalog(t)
	p, _ := FindPreset("budget-1l")
	rec := cat.ApplyPreset(p)
	assert.Equal(t, 91500.0, rec.Build.Total())
	assert.Equal(t, "gaming", rec.UseCase)
	assert.Equal(t, 100000.0, rec.Budget)
}

func TestResolvePartsSkipsMissingIDs(t *testing.T) {
	cat := seedCatalog(t)
	build := cat.ResolveParts(map[models.Category]int{
		models.CategoryCPU: 1,
		models.CategoryGPU: 999,
	})
	assert.Equal(t, 1, build.Count())
	assert.Nil(t, build.Get(models.CategoryGPU))
}

func TestSummarizePresets(t *testing.T) {
	summaries := seedCatalog(t).SummarizePresets()
	require.Len(t, summaries, len(Presets))

	byID := map[string]PresetSummary{}
	for _, s := range summaries {
		byID[s.ID] = s
	}
	assert.Equal(t, 50000.0, byID["budget-50k"].Price)
	assert.Equal(t, 138000.0, byID["mid-gaming-amd"].Price)
	assert.Equal(t, 8, byID["mid-gaming-amd"].FilledParts)
}
