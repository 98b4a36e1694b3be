package config

import "sort"

// Preset is a canned input paired with the algorithm that shows it off best.
type Preset struct {
	Input       string `yaml:"input"`
	Algorithm   string `yaml:"algorithm"`
	Description string `yaml:"description"`
}

var Presets = map[string]Preset{
	"example": {
		Input: "5, 2, 8, 1, 9", Algorithm: "insertion",
		Description: "the five element example",
	},
	"reversed": {
		Input: "10, 9, 8, 7, 6, 5, 4, 3, 2, 1", Algorithm: "bubble",
		Description: "worst case for the quadratic sorts",
	},
	"sorted": {
		Input: "1, 2, 3, 4, 5, 6, 7, 8, 9, 10", Algorithm: "quick",
		Description: "worst case for last-element pivots",
	},
	"duplicates": {
		Input: "4, 1, 4, 2, 1, 4, 2, 3, 3, 1", Algorithm: "merge",
		Description: "repeated keys, shows stability",
	},
	"nearly_sorted": {
		Input: "1, 2, 4, 3, 5, 6, 8, 7, 9, 10", Algorithm: "insertion",
		Description: "a few adjacent pairs out of place",
	},
	"large": {
		Input: "27, 3, 88, 14, 56, 71, 9, 42, 65, 30, 95, 18, 77, 5, 50, " +
			"61, 36, 83, 22, 11, 99, 47, 68, 2, 39, 80, 25, 58, 91, 33",
		Algorithm:   "quick",
		Description: "thirty values, the input limit",
	},
}

func GetPreset(name string) (Preset, bool) {
	p, ok := Presets[name]
	return p, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset's input and algorithm into c.
func (p Preset) Apply(c *Config) {
	c.Input = p.Input
	if p.Algorithm != "" {
		c.Algorithm = p.Algorithm
	}
}
