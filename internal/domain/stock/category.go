package stock

import (
	"strings"

	"garden-stock-api/internal/pkg/errs"
)

type Category string

const (
	CategorySeeds     Category = "seeds"
	CategoryGear      Category = "gear"
	CategoryEggShop   Category = "egg_shop"
	CategoryHoney     Category = "honey"
	CategoryCosmetics Category = "cosmetics"
)

var registry = []Category{
	CategorySeeds,
	CategoryGear,
	CategoryEggShop,
	CategoryHoney,
	CategoryCosmetics,
}

// heading keywords are checked in this order; "egg" must win over "seeds" etc.
var headingKeywords = []struct {
	keyword  string
	category Category
}{
	{"gear", CategoryGear},
	{"egg", CategoryEggShop},
	{"seeds", CategorySeeds},
	{"honey", CategoryHoney},
	{"cosmetics", CategoryCosmetics},
}

// Categories returns the known categories in registry order.
func Categories() []Category {
	out := make([]Category, len(registry))
	copy(out, registry)
	return out
}

func ParseCategory(name string) (Category, error) {
	for _, c := range registry {
		if string(c) == name {
			return c, nil
		}
	}
	return "", errs.Mark(errs.Newf("unknown category %q", name), errs.ErrInvalidCategory)
}

func (c Category) String() string {
	return string(c)
}

// MatchHeading maps a section heading such as "Gear Stock" to its category.
func MatchHeading(heading string) (Category, bool) {
	h := strings.ToLower(strings.TrimSpace(heading))
	if h == "" {
		return "", false
	}
	for _, k := range headingKeywords {
		if strings.Contains(h, k.keyword) {
			return k.category, true
		}
	}
	return "", false
}
