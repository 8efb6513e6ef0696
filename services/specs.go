package services

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/LovationAdmin/pcease-api/models"
)

var (
	reCores      = regexp.MustCompile(`(\d+)\s*(?:core|c)\b`)
	reThreads    = regexp.MustCompile(`(\d+)\s*(?:thread|t)\b`)
	reGHz        = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*ghz`)
	reMHz        = regexp.MustCompile(`(\d{3,5})\s*mhz`)
	reSocket     = regexp.MustCompile(`(am4|am5|lga\d{3,4})`)
	reVRAM       = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:gb|gib)\b`)
	reRAMType    = regexp.MustCompile(`(ddr3|ddr4|ddr5)`)
	reDDRSpeed   = regexp.MustCompile(`ddr\d-?(\d{3,5})`)
	reRAMSize    = regexp.MustCompile(`(\d+\s*(?:gb|gib|mb))`)
	reKit        = regexp.MustCompile(`(\d)\s*x\s*\d+\s*gb`)
	reDiskSize   = regexp.MustCompile(`(\d+(?:\.\d+)?\s*(?:tb|gb))`)
	reDiskType   = regexp.MustCompile(`(nvme|ssd|hdd|sata)`)
	reInterface  = regexp.MustCompile(`(sata\s*iii|pcie\s*\d(?:\.\d)?\s*x?\d*)`)
	reFormFactor = regexp.MustCompile(`(atx|micro-?atx|mini-?itx)`)
	reChipset    = regexp.MustCompile(`(b\d{3}|x\d{3}|z\d{3}|h\d{3}|a\d{3})`)
	reWatts      = regexp.MustCompile(`(\d{3,4})\s*w`)
	reEfficiency = regexp.MustCompile(`(80\+\s*(?:bronze|silver|gold|platinum|titanium))`)
	reModular    = regexp.MustCompile(`modular|semi-modular`)
	reInches     = regexp.MustCompile(`(\d{2})(?:"|\s*-?inch)`)
	reRefresh    = regexp.MustCompile(`(\d{2,3})\s*hz`)
	reResolution = regexp.MustCompile(`(\d{3,4}x\d{3,4})`)
)

func grab(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func grabInt(re *regexp.Regexp, s string) int {
	n, _ := strconv.Atoi(grab(re, s))
	return n
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// DeriveSpecs fills structured specs from a component's attributes and name.
// Existing spec keys are kept unless a derived value replaces them.
func DeriveSpecs(c models.Component) map[string]interface{} {
	name := strings.ToLower(c.Name)
	specs := make(map[string]interface{}, len(c.Specs)+4)
	for k, v := range c.Specs {
		specs[k] = v
	}
	setStr := func(key, v string) {
		if v != "" {
			specs[key] = v
		}
	}
	setInt := func(key string, v int) {
		if v > 0 {
			specs[key] = v
		}
	}

	switch c.Category {
	case models.CategoryCPU:
		cores := c.Cores
		if cores == 0 {
			cores = grabInt(reCores, name)
		}
		setInt("cores", cores)
		setInt("threads", grabInt(reThreads, name))
		if ghz, err := strconv.ParseFloat(grab(reGHz, name), 64); err == nil {
			specs["baseClock"] = ghz
		}
		setInt("tdp", c.Wattage)
		setStr("socket", grab(reSocket, name))
	case models.CategoryGPU:
		setStr("vram", grab(reVRAM, name))
		setInt("clock", grabInt(reMHz, name))
	case models.CategoryRAM:
		setStr("type", firstNonEmpty(c.RAMType, grab(reRAMType, name)))
		speed := grabInt(reMHz, name)
		if speed == 0 {
			speed = grabInt(reDDRSpeed, name)
		}
		setInt("speedMHz", speed)
		setStr("capacity", firstNonEmpty(c.Memory, grab(reRAMSize, name)))
		setStr("kit", grab(reKit, name))
	case models.CategoryStorage:
		setStr("capacity", firstNonEmpty(c.Capacity, grab(reDiskSize, name)))
		setStr("type", firstNonEmpty(grab(reDiskType, name), "ssd"))
		setStr("interface", grab(reInterface, name))
	case models.CategoryMotherboard:
		setStr("formFactor", firstNonEmpty(c.FormFactor, grab(reFormFactor, name)))
		setStr("socket", grab(reSocket, name))
		setStr("chipset", grab(reChipset, name))
		setStr("memoryType", firstNonEmpty(c.RAMType, grab(reRAMType, name)))
	case models.CategoryPSU:
		watts := c.Wattage
		if watts == 0 {
			watts = grabInt(reWatts, name)
		}
		setInt("wattage", watts)
		setStr("efficiency", grab(reEfficiency, name))
		if reModular.MatchString(name) {
			specs["modular"] = true
		}
	case models.CategoryCase:
		setStr("formFactor", firstNonEmpty(c.FormFactor, grab(reFormFactor, name)))
		setInt("sizeInches", grabInt(reInches, name))
	case models.CategoryMonitor:
		setInt("sizeInches", grabInt(reInches, name))
		setInt("refreshHz", grabInt(reRefresh, name))
		setStr("resolution", grab(reResolution, name))
	}
	return specs
}

// SpecsEqual compares two spec maps by their JSON form, so numbers decoded
// from storage compare equal to freshly derived ints.
func SpecsEqual(a, b map[string]interface{}) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	if errA != nil || errB != nil {
		return false
	}
	return string(ja) == string(jb)
}
