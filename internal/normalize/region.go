package normalize

import "github.com/vijay-prabhu/applicant-triage/internal/config"

// Region is a top priority region group
type Region string

const (
	RegionCanada    Region = "Canada"
	RegionUSA       Region = "USA"
	RegionEurope    Region = "Europe"
	RegionCaribbean Region = "Caribbean"
)

type regionGroup struct {
	region Region
	tokens []string
}

// newRegionGroups fixes the evaluation order. The lists are disjoint, so
// order only decides which region a reason names.
func newRegionGroups(cfg config.RegionConfig) []regionGroup {
	return []regionGroup{
		{RegionCanada, lowerAll(cfg.Canada)},
		{RegionUSA, lowerAll(cfg.US)},
		{RegionEurope, lowerAll(cfg.Europe)},
		{RegionCaribbean, lowerAll(cfg.Caribbean)},
	}
}

// ClassifyRegion returns the first region with a token contained in the
// country text, so demonyms like "Jamaican" match too. Text containing a
// configured exclusion never matches.
func (n *Normalizer) ClassifyRegion(country string) (Region, bool) {
	t := clean(country)
	if t == "" || containsAny(t, n.regionExclude) {
		return "", false
	}
	for _, g := range n.regions {
		if containsAny(t, g.tokens) {
			return g.region, true
		}
	}
	return "", false
}
