package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LovationAdmin/pcease-api/models"
	"github.com/LovationAdmin/pcease-api/utils"
)

// CheckCompatibility reports soft mismatches between the chosen parts. Only
// pairs where both sides carry the attribute are compared.
func CheckCompatibility(build models.Build) []string {
	warnings := []string{}
	cpu := build.Get(models.CategoryCPU)
	board := build.Get(models.CategoryMotherboard)
	ram := build.Get(models.CategoryRAM)
	pcCase := build.Get(models.CategoryCase)

	if cpu != nil && board != nil && !attrMatches(cpu.Brand, board.Brand) {
		warnings = append(warnings, fmt.Sprintf("CPU brand (%s) doesn't match motherboard brand (%s)", cpu.Brand, board.Brand))
	}
	if ram != nil && board != nil && !attrMatches(ram.RAMType, board.RAMType) {
		warnings = append(warnings, fmt.Sprintf("RAM type (%s) doesn't match motherboard (%s)", ram.RAMType, board.RAMType))
	}
	if pcCase != nil && board != nil && !attrMatches(pcCase.FormFactor, board.FormFactor) {
		warnings = append(warnings, fmt.Sprintf("Case form factor (%s) doesn't match motherboard (%s)", pcCase.FormFactor, board.FormFactor))
	}
	return warnings
}

func CheckBuild(build models.Build) models.BuildCheckResponse {
	return models.BuildCheckResponse{
		Warnings:       CheckCompatibility(build),
		TotalPrice:     build.Total(),
		ComponentCount: build.Count(),
		TotalSlots:     len(models.AllCategories),
	}
}

// ComponentSpecs is the one-line spec summary shown under a part name.
func ComponentSpecs(c *models.Component) string {
	if c == nil {
		return ""
	}
	var specs []string
	if c.Cores > 0 {
		specs = append(specs, strconv.Itoa(c.Cores)+" cores")
	}
	if c.Memory != "" {
		specs = append(specs, c.Memory)
	}
	if c.Capacity != "" {
		specs = append(specs, c.Capacity)
	}
	if c.Wattage > 0 {
		specs = append(specs, strconv.Itoa(c.Wattage)+"W")
	}
	if c.FormFactor != "" {
		specs = append(specs, c.FormFactor)
	}
	if len(specs) > 3 {
		specs = specs[:3]
	}
	return strings.Join(specs, " • ")
}

// ExportBuildText renders a build as the plain-text summary users copy out.
func ExportBuildText(build models.Build) string {
	var b strings.Builder
	b.WriteString("🖥️ PCease Build Recommendation\n")
	b.WriteString("================================\n\n")
	for _, cat := range ResolutionOrder {
		c := build.Get(cat)
		if c == nil {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", cat.DisplayName(), c.Name)
		fmt.Fprintf(&b, "  Price: ₹%s\n\n", utils.FormatINR(c.EffectivePrice()))
	}
	fmt.Fprintf(&b, "Total: ₹%s\n", utils.FormatINR(build.Total()))
	return b.String()
}
