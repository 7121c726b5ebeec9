package output

import (
	"cmp"
	"slices"
	"strings"

	"github.com/vijay-prabhu/applicant-triage/internal/applicant"
	"github.com/vijay-prabhu/applicant-triage/internal/config"
)

// Listing is a scored applicant list plus the aliases used to show names
type Listing struct {
	Applicants []applicant.Scored `json:"applicants" yaml:"applicants"`
	fields     config.FieldConfig
}

// NewListing wraps applicants for display
func NewListing(applicants []applicant.Scored, fields config.FieldConfig) *Listing {
	return &Listing{Applicants: applicants, fields: fields}
}

// SortByScore returns a copy ordered by descending score. Equal scores keep
// their batch order.
func SortByScore(applicants []applicant.Scored) []applicant.Scored {
	out := slices.Clone(applicants)
	slices.SortStableFunc(out, func(a, b applicant.Scored) int {
		return cmp.Compare(b.Score, a.Score)
	})
	return out
}

// HighPriority returns applicants scoring at least minScore, best first
func HighPriority(applicants []applicant.Scored, minScore int) []applicant.Scored {
	return SortByScore(MinScore(applicants, minScore))
}

// MinScore keeps applicants scoring at least minScore, in their given order
func MinScore(applicants []applicant.Scored, minScore int) []applicant.Scored {
	var out []applicant.Scored
	for _, a := range applicants {
		if a.Score >= minScore {
			out = append(out, a)
		}
	}
	return out
}

// RegionTop returns applicants in either region category, best first
func RegionTop(applicants []applicant.Scored) []applicant.Scored {
	return FilterCategories(applicants, []applicant.Category{
		applicant.CategoryTopPriorityRegion,
		applicant.CategoryHighPotentialRegionWeak,
	})
}

// PresentColumns keeps the wanted columns that exist in the export columns,
// in wanted order
func PresentColumns(wanted, available []string) []string {
	var out []string
	for _, c := range wanted {
		if slices.Contains(available, c) {
			out = append(out, c)
		}
	}
	return out
}

// FilterCategories keeps applicants in any of the categories, best first.
// An empty category list keeps everything.
func FilterCategories(applicants []applicant.Scored, categories []applicant.Category) []applicant.Scored {
	if len(categories) == 0 {
		return SortByScore(applicants)
	}
	var out []applicant.Scored
	for _, a := range applicants {
		if slices.Contains(categories, a.Category) {
			out = append(out, a)
		}
	}
	return SortByScore(out)
}

// DisplayName joins the first and last name columns
func DisplayName(a applicant.Scored, fields config.FieldConfig) string {
	_, first := a.Record.Lookup(fields.FirstName)
	_, last := a.Record.Lookup(fields.LastName)
	return strings.TrimSpace(first + " " + last)
}
