package output

import (
	"github.com/vijay-prabhu/applicant-triage/internal/applicant"
	"github.com/vijay-prabhu/applicant-triage/internal/engine"
)

// Summary contains batch statistics
type Summary struct {
	RunID        string          `json:"run_id" yaml:"run_id"`
	Input        int             `json:"input" yaml:"input"`
	Scored       int             `json:"scored" yaml:"scored"`
	Removed      int             `json:"removed" yaml:"removed"`
	Collisions   int             `json:"collisions" yaml:"collisions"`
	AverageScore float64         `json:"average_score" yaml:"average_score"`
	HighPriority int             `json:"high_priority" yaml:"high_priority"`
	RegionTop    int             `json:"region_top" yaml:"region_top"`
	Categories   []CategoryCount `json:"categories" yaml:"categories"`
}

// CategoryCount is the number of applicants in one category
type CategoryCount struct {
	Category applicant.Category `json:"category" yaml:"category"`
	Label    string             `json:"label" yaml:"label"`
	Count    int                `json:"count" yaml:"count"`
}

// NewSummary computes statistics for a batch. Every category is listed, in
// priority order, even when empty.
func NewSummary(b *engine.Batch, highPriorityMin int) *Summary {
	s := &Summary{
		RunID:      b.RunID.String(),
		Input:      b.Input,
		Scored:     len(b.Applicants),
		Removed:    b.Removed,
		Collisions: len(b.Collisions),
	}

	total := 0
	for _, a := range b.Applicants {
		total += a.Score
		if a.Score >= highPriorityMin {
			s.HighPriority++
		}
		if a.Category.IsRegion() {
			s.RegionTop++
		}
	}
	if s.Scored > 0 {
		s.AverageScore = float64(total) / float64(s.Scored)
	}

	counts := b.CategoryCounts()
	for _, c := range applicant.Categories {
		s.Categories = append(s.Categories, CategoryCount{Category: c, Label: c.Label(), Count: counts[c]})
	}

	return s
}
