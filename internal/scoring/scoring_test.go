package scoring

import (
	"slices"
	"testing"

	"github.com/vijay-prabhu/applicant-triage/internal/applicant"
	"github.com/vijay-prabhu/applicant-triage/internal/config"
)

func intPtr(v int) *int { return &v }

func TestScorer_Scenarios(t *testing.T) {
	s := NewScorer(config.Default())

	tests := []struct {
		name         string
		facts        applicant.Facts
		wantScore    int
		wantCategory applicant.Category
		wantReasons  []string
	}{
		{
			name: "canadian graduate paying their own way",
			facts: applicant.Facts{
				Age:                 intPtr(24),
				HasDegree:           true,
				HasSelfFunding:      true,
				IsTopPriorityRegion: true,
				Region:              "Canada",
			},
			wantScore:    75,
			wantCategory: applicant.CategoryTopPriorityRegion,
			wantReasons: []string{
				"Self sponsorship: YES",
				"Has degree and age ≥ 24",
				"From Canada — automatic top priority region",
			},
		},
		{
			name:         "seventeen without degree",
			facts:        applicant.Facts{Age: intPtr(17)},
			wantScore:    0,
			wantCategory: applicant.CategoryLowPriority,
			wantReasons:  []string{"Age 17, no degree: no age/degree points"},
		},
		{
			name:         "planned external scholarship",
			facts:        applicant.Facts{ExternalScholarshipPlanned: true},
			wantScore:    8,
			wantCategory: applicant.CategoryLowPriority,
			wantReasons:  []string{"Plans to apply for external scholarship/bursary", "Age unknown"},
		},
		{
			name:         "relies on institution scholarship",
			facts:        applicant.Facts{DependsOnInstitutionScholarship: true},
			wantScore:    0,
			wantCategory: applicant.CategoryLowPriority,
			wantReasons:  []string{"Relies on All Saints scholarship", "Age unknown"},
		},
		{
			name:         "caribbean applicant",
			facts:        applicant.Facts{IsTopPriorityRegion: true, Region: "Caribbean"},
			wantScore:    40,
			wantCategory: applicant.CategoryHighPotentialRegionWeak,
			wantReasons:  []string{"Age unknown", "From Caribbean — top priority region"},
		},
		{
			name: "family and loan",
			facts: applicant.Facts{
				Age:              intPtr(22),
				HasDegree:        true,
				HasFamilyFunding: true,
				HasPrivateLoan:   true,
			},
			wantScore:    64,
			wantCategory: applicant.CategoryHighPotential,
			wantReasons: []string{
				"Parent/Family support: YES",
				"Private loan arranged",
				"Has degree and age 21–23",
			},
		},
		{
			name: "mature without degree asking for aid",
			facts: applicant.Facts{
				Age:                          intPtr(30),
				HasFamilyFunding:             true,
				StatementRequestsScholarship: true,
			},
			wantScore:    25,
			wantCategory: applicant.CategoryLowPriority,
			wantReasons: []string{
				"Parent/Family support: YES",
				"Age ≥ 24 (more likely to self-fund)",
				"Personal statement suggests need for All Saints scholarship",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Score(tt.facts)

			if got.Score != tt.wantScore {
				t.Errorf("Score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.Category != tt.wantCategory {
				t.Errorf("Category = %s, want %s", got.Category, tt.wantCategory)
			}
			if !slices.Equal(got.Reasons, tt.wantReasons) {
				t.Errorf("Reasons = %q, want %q", got.Reasons, tt.wantReasons)
			}
		})
	}
}

func TestScorer_Clamp(t *testing.T) {
	s := NewScorer(config.Default())

	everything := applicant.Facts{
		Age:                          intPtr(30),
		HasDegree:                    true,
		HasSelfFunding:               true,
		HasFamilyFunding:             true,
		HasPrivateLoan:               true,
		ExternalScholarshipConfirmed: true,
		ExternalScholarshipPlanned:   true,
		IsTopPriorityRegion:          true,
		Region:                       "USA",
	}
	got := s.Score(everything)
	if got.Raw != 149 {
		t.Errorf("Raw = %d, want 149", got.Raw)
	}
	if got.Score != 100 {
		t.Errorf("Score = %d, want 100", got.Score)
	}

	negative := applicant.Facts{
		DependsOnInstitutionScholarship: true,
		StatementRequestsScholarship:    true,
	}
	got = s.Score(negative)
	if got.Raw != -25 {
		t.Errorf("Raw = %d, want -25", got.Raw)
	}
	if got.Score != 0 {
		t.Errorf("Score = %d, want 0", got.Score)
	}
}

func TestScorer_Categorize(t *testing.T) {
	s := NewScorer(config.Default())

	tests := []struct {
		score  int
		region bool
		want   applicant.Category
	}{
		{100, true, applicant.CategoryTopPriorityRegion},
		{70, true, applicant.CategoryTopPriorityRegion},
		{69, true, applicant.CategoryHighPotentialRegionWeak},
		{0, true, applicant.CategoryHighPotentialRegionWeak},
		{70, false, applicant.CategoryTopPriorityFinancial},
		{69, false, applicant.CategoryHighPotential},
		{50, false, applicant.CategoryHighPotential},
		{49, false, applicant.CategoryMediumPotential},
		{35, false, applicant.CategoryMediumPotential},
		{34, false, applicant.CategoryLowPriority},
		{0, false, applicant.CategoryLowPriority},
	}

	for _, tt := range tests {
		if got := s.Categorize(tt.score, tt.region); got != tt.want {
			t.Errorf("Categorize(%d, %v) = %s, want %s", tt.score, tt.region, got, tt.want)
		}
	}
}

func TestScorer_RetunedThresholds(t *testing.T) {
	cfg := config.Default()
	cfg.Thresholds.TopPriority = 90
	cfg.Weights.Region = 10
	s := NewScorer(cfg)

	got := s.Score(applicant.Facts{IsTopPriorityRegion: true, Region: "Europe", HasFamilyFunding: true})
	if got.Score != 38 {
		t.Errorf("Score = %d, want 38", got.Score)
	}
	if got.Category != applicant.CategoryHighPotentialRegionWeak {
		t.Errorf("Category = %s, want %s", got.Category, applicant.CategoryHighPotentialRegionWeak)
	}
}

// TestScorer_Properties walks every combination of boolean facts
func TestScorer_Properties(t *testing.T) {
	s := NewScorer(config.Default())
	ages := []*int{nil, intPtr(12), intPtr(21), intPtr(23), intPtr(24), intPtr(60)}

	for mask := 0; mask < 1<<10; mask++ {
		for _, age := range ages {
			f := factsFromMask(mask, age)
			got := s.Score(f)

			if got.Score < 0 || got.Score > 100 {
				t.Fatalf("mask %b: score %d out of range", mask, got.Score)
			}
			if want := s.Categorize(got.Score, f.IsTopPriorityRegion); got.Category != want {
				t.Fatalf("mask %b: category %s, want %s", mask, got.Category, want)
			}
			if got.Category.IsRegion() != f.IsTopPriorityRegion {
				t.Fatalf("mask %b: region category mismatch", mask)
			}

			hasFamilyReason := slices.Contains(got.Reasons, "Parent/Family support: YES")
			if hasFamilyReason != f.HasFamilyFunding {
				t.Fatalf("mask %b: family reason present=%v, fact=%v", mask, hasFamilyReason, f.HasFamilyFunding)
			}

			// Contributions must follow rule evaluation order
			last := -1
			for _, c := range got.Contributions {
				idx := slices.Index(Rules, c.Rule)
				if idx <= last {
					t.Fatalf("mask %b: rule %s out of order", mask, c.Rule)
				}
				last = idx
			}
			if !slices.ContainsFunc(got.Contributions, func(c Contribution) bool { return c.Rule == RuleAgeDegree }) {
				t.Fatalf("mask %b: missing age/degree reason", mask)
			}
		}
	}
}

func factsFromMask(mask int, age *int) applicant.Facts {
	bit := func(i int) bool { return mask&(1<<i) != 0 }
	f := applicant.Facts{
		Age:                             age,
		HasDegree:                       bit(0),
		HasSelfFunding:                  bit(1),
		HasFamilyFunding:                bit(2),
		HasPrivateLoan:                  bit(3),
		ExternalScholarshipConfirmed:    bit(4),
		ExternalScholarshipPlanned:      bit(5),
		DependsOnInstitutionScholarship: bit(6),
		IsTopPriorityRegion:             bit(7),
		StatementRequestsScholarship:    bit(8),
	}
	if f.IsTopPriorityRegion {
		f.Region = "Europe"
		if bit(9) {
			f.Region = "Caribbean"
		}
	}
	return f
}
