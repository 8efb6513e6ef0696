// Package seed ships the default component catalog.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/LovationAdmin/pcease-api/models"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Load parses the embedded catalog.
func Load() (map[models.Category][]models.Component, error) {
	return Parse(catalogYAML)
}

func LoadFile(path string) (map[models.Category][]models.Component, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse reads a category -> components document. "pcCase" is accepted for
// cases; any other unknown category is an error.
func Parse(data []byte) (map[models.Category][]models.Component, error) {
	var raw map[string][]models.Component
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	grouped := make(map[models.Category][]models.Component, len(raw))
	seen := make(map[models.Category]map[int]bool)
	for key, items := range raw {
		cat, ok := models.ParseCategory(key)
		if !ok {
			return nil, fmt.Errorf("parse catalog: unknown category %q", key)
		}
		if seen[cat] == nil {
			seen[cat] = make(map[int]bool)
		}
		for _, c := range items {
			if seen[cat][c.ID] {
				return nil, fmt.Errorf("parse catalog: duplicate id %d in %s", c.ID, cat)
			}
			seen[cat][c.ID] = true
			c.Category = cat
			if c.Vendors == nil {
				c.Vendors = []models.VendorOffer{}
			}
			grouped[cat] = append(grouped[cat], c)
		}
	}
	return grouped, nil
}
