// Package scoring turns canonical applicant facts into points, a clamped
// score and a priority category.
package scoring

import (
	"fmt"

	"github.com/vijay-prabhu/applicant-triage/internal/applicant"
	"github.com/vijay-prabhu/applicant-triage/internal/config"
)

// Rule names a point model category
type Rule string

const (
	RuleSelfFunding        Rule = "self_funding"
	RuleFamilyFunding      Rule = "family_funding"
	RulePrivateLoan        Rule = "private_loan"
	RuleExternalConfirmed  Rule = "external_scholarship_confirmed"
	RuleExternalPlanned    Rule = "external_scholarship_planned"
	RuleInstitutionReliant Rule = "institution_scholarship_reliant"
	RuleAgeDegree          Rule = "age_degree"
	RuleRegion             Rule = "region"
	RuleStatementNeed      Rule = "statement_need"
)

// Rules lists the categories in evaluation order. Reasons follow this order.
var Rules = []Rule{
	RuleSelfFunding,
	RuleFamilyFunding,
	RulePrivateLoan,
	RuleExternalConfirmed,
	RuleExternalPlanned,
	RuleInstitutionReliant,
	RuleAgeDegree,
	RuleRegion,
	RuleStatementNeed,
}

// Contribution is the outcome of one triggered rule
type Contribution struct {
	Rule   Rule   `json:"rule" yaml:"rule"`
	Points int    `json:"points" yaml:"points"`
	Reason string `json:"reason" yaml:"reason"`
}

// Model maps facts to contributions using configured weights
type Model struct {
	weights     config.WeightConfig
	institution string
}

// NewModel creates a Model from the weights and the institution name used in
// reason text
func NewModel(weights config.WeightConfig, institution string) *Model {
	return &Model{weights: weights, institution: institution}
}

// Evaluate returns the contributions of every triggered rule in evaluation
// order. The age/degree rule always contributes, even with zero points.
func (m *Model) Evaluate(f applicant.Facts) []Contribution {
	w := m.weights
	var out []Contribution
	add := func(rule Rule, points int, reason string) {
		out = append(out, Contribution{Rule: rule, Points: points, Reason: reason})
	}

	if f.HasSelfFunding {
		add(RuleSelfFunding, w.SelfFunding, "Self sponsorship: YES")
	}
	if f.HasFamilyFunding {
		add(RuleFamilyFunding, w.FamilyFunding, "Parent/Family support: YES")
	}
	if f.HasPrivateLoan {
		add(RulePrivateLoan, w.PrivateLoan, "Private loan arranged")
	}
	if f.ExternalScholarshipConfirmed {
		add(RuleExternalConfirmed, w.ExternalScholarshipConfirmed, "Confirmed external scholarship/bursary")
	}
	if f.ExternalScholarshipPlanned {
		add(RuleExternalPlanned, w.ExternalScholarshipPlanned, "Plans to apply for external scholarship/bursary")
	}
	if f.DependsOnInstitutionScholarship {
		add(RuleInstitutionReliant, w.InstitutionScholarshipReliant,
			fmt.Sprintf("Relies on %s scholarship", m.institution))
	}

	points, reason := m.ageDegree(f.Age, f.HasDegree)
	add(RuleAgeDegree, points, reason)

	if f.IsTopPriorityRegion {
		add(RuleRegion, w.Region, regionReason(f.Region))
	}
	if f.StatementRequestsScholarship {
		add(RuleStatementNeed, w.StatementNeed,
			fmt.Sprintf("Personal statement suggests need for %s scholarship", m.institution))
	}

	return out
}

func (m *Model) ageDegree(age *int, hasDegree bool) (int, string) {
	w := m.weights
	if age == nil {
		return 0, "Age unknown"
	}

	a := *age
	switch {
	case hasDegree && a >= w.MatureAge:
		return w.DegreeMature, fmt.Sprintf("Has degree and age ≥ %d", w.MatureAge)
	case hasDegree && a >= w.GraduateAge:
		return w.DegreeYoungGraduate, fmt.Sprintf("Has degree and age %d–%d", w.GraduateAge, w.MatureAge-1)
	case !hasDegree && a >= w.MatureAge:
		return w.NoDegreeMature, fmt.Sprintf("Age ≥ %d (more likely to self-fund)", w.MatureAge)
	}

	state := "no degree"
	if hasDegree {
		state = "has degree"
	}
	return 0, fmt.Sprintf("Age %d, %s: no age/degree points", a, state)
}

func regionReason(region string) string {
	if region == "Caribbean" {
		return "From Caribbean — top priority region"
	}
	return fmt.Sprintf("From %s — automatic top priority region", region)
}
