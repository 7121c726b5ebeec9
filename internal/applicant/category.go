package applicant

import "fmt"

// Category is the priority tier assigned from the score and region flag
type Category string

const (
	CategoryTopPriorityRegion       Category = "TopPriorityRegion"
	CategoryHighPotentialRegionWeak Category = "HighPotentialRegionWeak"
	CategoryTopPriorityFinancial    Category = "TopPriorityFinancial"
	CategoryHighPotential           Category = "HighPotential"
	CategoryMediumPotential         Category = "MediumPotential"
	CategoryLowPriority             Category = "LowPriority"
)

// Categories lists every category from highest to lowest priority
var Categories = []Category{
	CategoryTopPriorityRegion,
	CategoryHighPotentialRegionWeak,
	CategoryTopPriorityFinancial,
	CategoryHighPotential,
	CategoryMediumPotential,
	CategoryLowPriority,
}

// Label returns the display text used in tables and exports
func (c Category) Label() string {
	switch c {
	case CategoryTopPriorityRegion:
		return "Top priority (region)"
	case CategoryHighPotentialRegionWeak:
		return "High potential (region, weak finances)"
	case CategoryTopPriorityFinancial:
		return "Top priority (financially strong)"
	case CategoryHighPotential:
		return "High potential"
	case CategoryMediumPotential:
		return "Medium potential"
	case CategoryLowPriority:
		return "Low / scholarship-dependent"
	default:
		return string(c)
	}
}

// IsRegion reports whether the category is one of the region tiers
func (c Category) IsRegion() bool {
	return c == CategoryTopPriorityRegion || c == CategoryHighPotentialRegionWeak
}

// ParseCategory resolves a category name, case-sensitively
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category: %s", s)
}
