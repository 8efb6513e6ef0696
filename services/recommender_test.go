package services

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LovationAdmin/pcease-api/models"
	"github.com/LovationAdmin/pcease-api/seed"
)

func part(cat models.Category, id int, brand string, price float64) models.Component {
	return models.Component{
		ID:       id,
		Category: cat,
		Name:     fmt.Sprintf("%s-%d", cat, id),
		Brand:    brand,
		Vendors:  []models.VendorOffer{{Name: "shop", Price: price, InStock: true}},
	}
}

func board(id int, brand, ramType, formFactor string, price float64) models.Component {
	c := part(models.CategoryMotherboard, id, brand, price)
	c.RAMType = ramType
	c.FormFactor = formFactor
	return c
}

func seedCatalog(t *testing.T) *Catalog {
	t.Helper()
	grouped, err := seed.Load()
	require.NoError(t, err)
	return FlattenCatalog(grouped)
}

func ids(build models.Build) map[models.Category]int {
	out := make(map[models.Category]int)
	for cat, c := range build {
		if c != nil {
			out[cat] = c.ID
		}
	}
	return out
}

func TestAllocationProfiles(t *testing.T) {
	for name, profile := range AllocationProfiles {
		sum := 0.0
		for _, cat := range models.AllCategories {
			share, ok := profile[cat]
			assert.True(t, ok, "%s lacks %s", name, cat)
			sum += share
		}
		assert.InDelta(t, 1.0, sum, 1e-9, name)
	}

	name, profile := Allocation("Gaming")
	assert.Equal(t, "gaming", name)
	assert.Equal(t, 0.4, profile[models.CategoryGPU])

	name, _ = Allocation("crypto-mining")
	assert.Equal(t, DefaultUseCase, name)
	name, _ = Allocation("")
	assert.Equal(t, DefaultUseCase, name)
}

func TestFlattenCatalogOrder(t *testing.T) {
	grouped := map[models.Category][]models.Component{
		models.CategoryGPU:     {{ID: 2, Name: "g"}},
		"cooler":               {{ID: 9, Name: "c"}},
		models.CategoryCPU:     {{ID: 1, Name: "a"}, {ID: 3, Name: "b"}},
		models.CategoryMonitor: {},
	}
	cat := FlattenCatalog(grouped)
	require.Equal(t, 4, cat.Len())

	var got []string
	for _, c := range cat.Items() {
		got = append(got, fmt.Sprintf("%s/%d", c.Category, c.ID))
	}
	assert.Equal(t, []string{"cpu/1", "cpu/3", "gpu/2", "cooler/9"}, got)

	back := cat.Grouped()
	assert.Len(t, back[models.CategoryCPU], 2)
	assert.Equal(t, models.CategoryCPU, back[models.CategoryCPU][0].Category)
}

func TestCatalogFind(t *testing.T) {
	cat := NewCatalog([]models.Component{part(models.CategoryCPU, 1, "AMD", 10), part(models.CategoryGPU, 1, "", 20)})
	got := cat.Find(models.CategoryGPU, 1)
	require.NotNil(t, got)
	assert.Equal(t, 20.0, got.EffectivePrice())
	assert.Nil(t, cat.Find(models.CategoryRAM, 1))

	got.Name = "mutated"
	assert.NotEqual(t, "mutated", cat.Find(models.CategoryGPU, 1).Name)
}

func TestCandidatesFilters(t *testing.T) {
	free := part(models.CategoryCPU, 9, "AMD", 0)
	free.Vendors = nil
	cat := NewCatalog([]models.Component{
		part(models.CategoryCPU, 2, "AMD", 300),
		part(models.CategoryCPU, 1, "amd", 100),
		part(models.CategoryCPU, 3, "Intel", 150),
		free,
		board(10, "AMD", "DDR4", "ATX", 80),
		board(11, "Intel", "DDR5", "ATX", 90),
		board(12, "", "DDR5", "Micro-ATX", 70),
		{ID: 20, Category: models.CategoryRAM, Name: "r4", RAMType: "DDR4", Vendors: []models.VendorOffer{{Price: 40, InStock: true}}},
		{ID: 21, Category: models.CategoryRAM, Name: "r5", RAMType: "ddr5", Vendors: []models.VendorOffer{{Price: 60, InStock: true}}},
		{ID: 22, Category: models.CategoryRAM, Name: "untyped", Vendors: []models.VendorOffer{{Price: 50, InStock: true}}},
		{ID: 30, Category: models.CategoryCase, Name: "atx", FormFactor: "ATX", Vendors: []models.VendorOffer{{Price: 30, InStock: true}}},
		{ID: 31, Category: models.CategoryCase, Name: "matx", FormFactor: "Micro-ATX", Vendors: []models.VendorOffer{{Price: 20, InStock: true}}},
	})

	idsOf := func(list []models.Component) []int {
		out := []int{}
		for _, c := range list {
			out = append(out, c.ID)
		}
		return out
	}

	t.Run("cpu sorted, zero price excluded", func(t *testing.T) {
		assert.Equal(t, []int{1, 3, 2}, idsOf(cat.Candidates(models.CategoryCPU, models.Build{}, "")))
	})

	t.Run("cpu brand preference is case-insensitive", func(t *testing.T) {
		assert.Equal(t, []int{1, 2}, idsOf(cat.Candidates(models.CategoryCPU, models.Build{}, "AMD")))
		assert.Empty(t, cat.Candidates(models.CategoryCPU, models.Build{}, "Apple"))
	})

	t.Run("motherboard follows cpu brand, brandless boards pass", func(t *testing.T) {
		amd := part(models.CategoryCPU, 1, "AMD", 100)
		build := models.Build{models.CategoryCPU: &amd}
		assert.Equal(t, []int{12, 10}, idsOf(cat.Candidates(models.CategoryMotherboard, build, "")))
		assert.Equal(t, []int{12, 10, 11}, idsOf(cat.Candidates(models.CategoryMotherboard, models.Build{}, "")))
	})

	t.Run("ram follows board memory type", func(t *testing.T) {
		mb := board(11, "Intel", "DDR5", "ATX", 90)
		build := models.Build{models.CategoryMotherboard: &mb}
		assert.Equal(t, []int{22, 21}, idsOf(cat.Candidates(models.CategoryRAM, build, "")))
	})

	t.Run("case follows board form factor", func(t *testing.T) {
		mb := board(10, "AMD", "DDR4", "ATX", 80)
		build := models.Build{models.CategoryMotherboard: &mb}
		assert.Equal(t, []int{30}, idsOf(cat.Candidates(models.CategoryCase, build, "")))
	})

	t.Run("equal prices keep catalog order", func(t *testing.T) {
		tied := NewCatalog([]models.Component{
			part(models.CategoryGPU, 5, "", 100),
			part(models.CategoryGPU, 4, "", 100),
			part(models.CategoryGPU, 6, "", 50),
		})
		assert.Equal(t, []int{6, 5, 4}, idsOf(tied.Candidates(models.CategoryGPU, models.Build{}, "")))
	})
}

func TestPickUnderOrClosest(t *testing.T) {
	sorted := []models.Component{
		part(models.CategoryGPU, 1, "", 100),
		part(models.CategoryGPU, 2, "", 200),
		part(models.CategoryGPU, 3, "", 200),
		part(models.CategoryGPU, 4, "", 400),
	}

	assert.Nil(t, PickUnderOrClosest(nil, 1000))
	assert.Equal(t, 4, PickUnderOrClosest(sorted, 1000).ID)
	assert.Equal(t, 3, PickUnderOrClosest(sorted, 399).ID)
	assert.Equal(t, 3, PickUnderOrClosest(sorted, 200).ID)
	assert.Equal(t, 1, PickUnderOrClosest(sorted, 150).ID)
	assert.Equal(t, 1, PickUnderOrClosest(sorted, 10).ID, "cheapest when nothing fits")
}

func TestStepDown(t *testing.T) {
	list := []models.Component{
		part(models.CategoryGPU, 1, "", 100),
		part(models.CategoryGPU, 2, "", 200),
		part(models.CategoryGPU, 3, "", 300),
	}

	next, ok := stepDown(list, &list[2])
	require.True(t, ok)
	assert.Equal(t, 2, next.ID)

	_, ok = stepDown(list, &list[0])
	assert.False(t, ok)

	gone := part(models.CategoryGPU, 9, "", 250)
	next, ok = stepDown(list, &gone)
	require.True(t, ok)
	assert.Equal(t, 2, next.ID, "missing pick falls to the priciest cheaper candidate")

	cheapest := part(models.CategoryGPU, 8, "", 50)
	_, ok = stepDown(list, &cheapest)
	assert.False(t, ok)
}

func TestDowngradeFollowsPriority(t *testing.T) {
	gpus := []models.Component{part(models.CategoryGPU, 1, "", 100), part(models.CategoryGPU, 2, "", 500)}
	cpus := []models.Component{part(models.CategoryCPU, 10, "AMD", 100), part(models.CategoryCPU, 11, "AMD", 300)}
	cat := NewCatalog(append(gpus, cpus...))

	build := models.Build{models.CategoryGPU: &gpus[1], models.CategoryCPU: &cpus[1]}
	res := cat.Downgrade(build, 700, "")

	assert.Equal(t, 1, res.Steps)
	assert.False(t, res.CapReached)
	assert.Equal(t, map[models.Category]int{models.CategoryGPU: 1, models.CategoryCPU: 11}, ids(build))
	assert.Equal(t, 400.0, build.Total())
}

func TestDowngradeMovesToNextCategoryWhenExhausted(t *testing.T) {
	gpus := []models.Component{part(models.CategoryGPU, 1, "", 100), part(models.CategoryGPU, 2, "", 500)}
	cpus := []models.Component{part(models.CategoryCPU, 10, "AMD", 100), part(models.CategoryCPU, 11, "AMD", 300)}
	cat := NewCatalog(append(gpus, cpus...))

	build := models.Build{models.CategoryGPU: &gpus[1], models.CategoryCPU: &cpus[1]}
	res := cat.Downgrade(build, 250, "")

	assert.Equal(t, 2, res.Steps)
	assert.Equal(t, 200.0, build.Total())
	assert.Equal(t, map[models.Category]int{models.CategoryGPU: 1, models.CategoryCPU: 10}, ids(build))
}

func TestDowngradeStopsWhenNothingCheaper(t *testing.T) {
	gpu := part(models.CategoryGPU, 1, "", 100)
	cat := NewCatalog([]models.Component{gpu})
	build := models.Build{models.CategoryGPU: &gpu}

	res := cat.Downgrade(build, 10, "")
	assert.Zero(t, res.Steps)
	assert.False(t, res.CapReached)
	assert.Equal(t, 100.0, build.Total())
}

func TestDowngradeCap(t *testing.T) {
	var gpus []models.Component
	for i := 1; i <= 300; i++ {
		gpus = append(gpus, part(models.CategoryGPU, i, "", float64(i)))
	}
	cat := NewCatalog(gpus)
	top := gpus[len(gpus)-1]
	build := models.Build{models.CategoryGPU: &top}

	res := cat.Downgrade(build, 0.5, "")
	assert.Equal(t, MaxDowngradeSteps, res.Steps)
	assert.True(t, res.CapReached)
	assert.Equal(t, 100.0, build.Total())
}

func TestRecommendEmptyCatalog(t *testing.T) {
	rec := NewCatalog(nil).Recommend(50000, "gaming", "")
	resp := rec.Response()

	assert.Zero(t, resp.ComponentCount)
	assert.Zero(t, resp.TotalPrice)
	assert.Equal(t, models.StatusUnderBudget, resp.Status)
	assert.Len(t, resp.Build, len(models.AllCategories))
	assert.NotNil(t, resp.Warnings)
}

func TestRecommendSeedGaming1L(t *testing.T) {
	rec := seedCatalog(t).Recommend(100000, "gaming", "")
	want := map[models.Category]int{
		models.CategoryCPU:         6,
		models.CategoryMotherboard: 20,
		models.CategoryRAM:         24,
		models.CategoryGPU:         12,
		models.CategoryStorage:     29,
		models.CategoryPSU:         35,
		models.CategoryCase:        38,
		models.CategoryMonitor:     43,
	}
	if diff := cmp.Diff(want, ids(rec.Build)); diff != "" {
		t.Fatalf("build mismatch (-want +got):\n%s", diff)
	}

	resp := rec.Response()
	assert.Equal(t, 91500.0, resp.TotalPrice)
	assert.Equal(t, 8500.0, resp.Remaining)
	assert.Equal(t, 8, resp.ComponentCount)
	assert.Zero(t, resp.DowngradeSteps)
	assert.Equal(t, models.StatusUnderBudget, resp.Status)
	assert.Empty(t, resp.Warnings)
}

func TestRecommendSeedBrandPreference(t *testing.T) {
	rec := seedCatalog(t).Recommend(100000, "gaming", "AMD")
	got := ids(rec.Build)

	assert.Equal(t, 1, got[models.CategoryCPU])
	assert.Equal(t, 17, got[models.CategoryMotherboard])
	assert.Equal(t, 87000.0, rec.Build.Total())
	assert.Equal(t, "AMD", rec.Build.Get(models.CategoryCPU).Brand)
}

func TestRecommendSeedDowngrades(t *testing.T) {
	rec := seedCatalog(t).Recommend(60000, "gaming", "")
	resp := rec.Response()

	assert.Equal(t, 2, resp.DowngradeSteps)
	assert.Equal(t, 58300.0, resp.TotalPrice)
	assert.Equal(t, models.StatusUnderBudget, resp.Status)

	got := ids(rec.Build)
	assert.Equal(t, 33, got[models.CategoryPSU], "psu trimmed before gpu")
	assert.Equal(t, 10, got[models.CategoryGPU])
}

func TestRecommendSeedTinyBudgetStaysOver(t *testing.T) {
	rec := seedCatalog(t).Recommend(20000, "workstation", "")
	resp := rec.Response()

	assert.Equal(t, 49300.0, resp.TotalPrice)
	assert.Zero(t, resp.DowngradeSteps)
	assert.Equal(t, models.StatusOverBudget, resp.Status)
	assert.Equal(t, -29300.0, resp.Remaining)
	assert.Equal(t, 8, resp.ComponentCount)
}

func TestRecommendProperties(t *testing.T) {
	cat := seedCatalog(t)
	budgets := []float64{1, 15000, 40000, 75000, 123456, 250000, 500000, 1000000}
	brands := []string{"", "AMD", "Intel"}

	for useCase := range AllocationProfiles {
		for _, budget := range budgets {
			for _, brand := range brands {
				name := fmt.Sprintf("%s/%.0f/%s", useCase, budget, brand)
				rec := cat.Recommend(budget, useCase, brand)
				resp := rec.Response()

				for c, comp := range rec.Build {
					require.NotNil(t, comp, name)
					found := cat.Find(c, comp.ID)
					require.NotNil(t, found, name)
					assert.Greater(t, comp.EffectivePrice(), 0.0, name)
				}
				if brand != "" {
					assert.Equal(t, brand, rec.Build.Get(models.CategoryCPU).Brand, name)
				}
				// Without a preference a CPU downgrade may cross brands after the
				// board was chosen, so the pairing only holds untouched.
				if cpu, mb := rec.Build.Get(models.CategoryCPU), rec.Build.Get(models.CategoryMotherboard); cpu != nil && mb != nil &&
					(brand != "" || resp.DowngradeSteps == 0) {
					assert.True(t, attrMatches(cpu.Brand, mb.Brand), "%s: cpu %s on %s board", name, cpu.Brand, mb.Brand)
				}
				assert.LessOrEqual(t, resp.DowngradeSteps, MaxDowngradeSteps, name)
				assert.InDelta(t, budget-resp.TotalPrice, resp.Remaining, 1e-6, name)

				if resp.Status == models.StatusUnderBudget {
					assert.LessOrEqual(t, resp.TotalPrice, budget, name)
					continue
				}
				// Over budget without hitting the cap means no slot could go cheaper.
				if !rec.Downgrade.CapReached {
					for _, c := range DowngradePriority {
						current := rec.Build.Get(c)
						if current == nil {
							continue
						}
						_, ok := stepDown(cat.Candidates(c, rec.Build, brand), current)
						assert.False(t, ok, "%s: %s could still be downgraded", name, c)
					}
				}
			}
		}
	}
}

func TestRecommendLeavesRAMEmptyWithoutMatchingType(t *testing.T) {
	ddr4 := part(models.CategoryRAM, 30, "Corsair", 6000)
	ddr4.RAMType = "DDR4"
	cat := NewCatalog([]models.Component{
		part(models.CategoryCPU, 1, "AMD", 18000),
		board(10, "AMD", "DDR5", "ATX", 15000),
		ddr4,
		part(models.CategoryGPU, 20, "NVIDIA", 35000),
	})

	rec := cat.Recommend(100000, "gaming", "")
	resp := rec.Response()

	require.NotNil(t, rec.Build.Get(models.CategoryMotherboard))
	assert.Nil(t, rec.Build.Get(models.CategoryRAM))
	assert.Nil(t, resp.Build[models.CategoryRAM])
	assert.Equal(t, 3, resp.ComponentCount)
	assert.LessOrEqual(t, resp.ComponentCount, 7)
	assert.Equal(t, 68000.0, resp.TotalPrice)
}

func TestRecommendIsDeterministic(t *testing.T) {
	cat := seedCatalog(t)
	a := cat.Recommend(175000, "content-creation", "").Response()
	b := cat.Recommend(175000, "content-creation", "").Response()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("repeat run differs:\n%s", diff)
	}
	assert.Greater(t, a.TotalPrice, 0.0)
}
