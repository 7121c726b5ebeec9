package scoring

import (
	"github.com/vijay-prabhu/applicant-triage/internal/applicant"
	"github.com/vijay-prabhu/applicant-triage/internal/config"
)

// Result is the aggregated outcome for one applicant
type Result struct {
	Score         int                `json:"score" yaml:"score"`
	Raw           int                `json:"raw" yaml:"raw"` // Sum before clamping
	Category      applicant.Category `json:"category" yaml:"category"`
	Reasons       []string           `json:"reasons" yaml:"reasons"`
	Contributions []Contribution     `json:"contributions" yaml:"contributions"`
}

// Scorer sums point model contributions and assigns a category
type Scorer struct {
	model      *Model
	thresholds config.ThresholdConfig
}

// NewScorer creates a Scorer from the configuration
func NewScorer(cfg *config.Config) *Scorer {
	return &Scorer{
		model:      NewModel(cfg.Weights, cfg.Institution.Name),
		thresholds: cfg.Thresholds,
	}
}

// Score evaluates every rule against the facts
func (s *Scorer) Score(f applicant.Facts) Result {
	contributions := s.model.Evaluate(f)

	raw := 0
	reasons := make([]string, 0, len(contributions))
	for _, c := range contributions {
		raw += c.Points
		reasons = append(reasons, c.Reason)
	}

	score := s.Clamp(raw)
	return Result{
		Score:         score,
		Raw:           raw,
		Category:      s.Categorize(score, f.IsTopPriorityRegion),
		Reasons:       reasons,
		Contributions: contributions,
	}
}

// Clamp truncates a raw sum to the configured bounds
func (s *Scorer) Clamp(raw int) int {
	return max(s.thresholds.MinScore, min(s.thresholds.MaxScore, raw))
}

// Categorize maps a clamped score and the region flag to a category
func (s *Scorer) Categorize(score int, region bool) applicant.Category {
	t := s.thresholds

	if region {
		if score >= t.TopPriority {
			return applicant.CategoryTopPriorityRegion
		}
		return applicant.CategoryHighPotentialRegionWeak
	}

	switch {
	case score >= t.TopPriority:
		return applicant.CategoryTopPriorityFinancial
	case score >= t.High:
		return applicant.CategoryHighPotential
	case score >= t.Medium:
		return applicant.CategoryMediumPotential
	default:
		return applicant.CategoryLowPriority
	}
}
