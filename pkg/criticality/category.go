package criticality

import "strings"

// Category classifies a fact's informational weight.
type Category string

const (
	// Unique attributes define the source itself.
	Unique Category = "UNIQUE"
	// Root attributes are essential to the entity's definition.
	Root Category = "ROOT"
	// Rare attributes prove depth.
	Rare Category = "RARE"
	// Common covers everything else.
	Common Category = "COMMON"
)

var categoryWeights = map[Category]float64{
	Unique: 0.9,
	Root:   0.8,
	Rare:   0.6,
	Common: 0.4,
}

// ParseCategory maps free text to a Category. Anything outside the four
// known names is Common.
func ParseCategory(s string) Category {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := categoryWeights[c]; ok {
		return c
	}
	return Common
}

// Weight returns the base weight of the category.
func (c Category) Weight() float64 {
	if w, ok := categoryWeights[c]; ok {
		return w
	}
	return categoryWeights[Common]
}

// Stronger returns whichever of c and other carries more weight.
func (c Category) Stronger(other Category) Category {
	if other.Weight() > c.Weight() {
		return other
	}
	return c
}
