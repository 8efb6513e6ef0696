package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func offer(price float64) []VendorOffer {
	return []VendorOffer{{Name: "shop", Price: price, InStock: true}}
}

func TestBuildTotals(t *testing.T) {
	b := Build{
		CategoryCPU: {ID: 1, Name: "cpu", Vendors: offer(15000)},
		CategoryGPU: {ID: 2, Name: "gpu", Vendors: offer(38000)},
		CategoryRAM: nil,
	}
	assert.Equal(t, 53000.0, b.Total())
	assert.Equal(t, 2, b.Count())
	assert.Nil(t, b.Get(CategoryRAM))

	var empty Build
	assert.Nil(t, empty.Get(CategoryCPU))
	assert.Zero(t, empty.Total())
}

func TestBuildSlots(t *testing.T) {
	b := Build{CategoryCPU: {ID: 1, Name: "cpu", Vendors: offer(100)}}
	slots := b.Slots()
	require.Len(t, slots, len(AllCategories))
	require.NotNil(t, slots[CategoryCPU])
	assert.Equal(t, 100.0, slots[CategoryCPU].Price)
	assert.Nil(t, slots[CategoryMonitor])

	raw, err := json.Marshal(slots)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"monitor":null`)
}

func TestDecodeBuild(t *testing.T) {
	raw := json.RawMessage(`{
		"cpu": {"id": 1, "name": "Ryzen", "brand": "AMD", "vendors": [{"name": "a", "price": 100, "stock": true}]},
		"pcCase": {"id": 9, "name": "Box", "formFactor": "ATX", "vendors": []},
		"cooler": {"id": 3, "name": "ignored"},
		"gpu": null
	}`)
	b, err := DecodeBuild(raw)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Count())
	require.NotNil(t, b.Get(CategoryCase))
	assert.Equal(t, CategoryCase, b[CategoryCase].Category)
	assert.Equal(t, "ATX", b[CategoryCase].FormFactor)
	assert.Equal(t, 100.0, b.Total())

	_, err = DecodeBuild(json.RawMessage(`[1, 2]`))
	assert.Error(t, err)
}

func TestPresetKind(t *testing.T) {
	assert.True(t, Preset{Budget: 50000}.IsBudgetPreset())
	assert.False(t, Preset{Parts: map[Category]int{CategoryCPU: 1}}.IsBudgetPreset())
}
