// Package normalize turns loosely typed intake form values into canonical
// applicant facts. Every function is total: malformed input degrades to
// "unknown" or false, never to an error.
package normalize

import (
	"strings"
	"time"

	"github.com/vijay-prabhu/applicant-triage/internal/applicant"
	"github.com/vijay-prabhu/applicant-triage/internal/config"
)

// Normalizer applies the configured keyword and region tables
type Normalizer struct {
	fields      config.FieldConfig
	negative    map[string]bool
	affirmative map[string]bool
	schYes      map[string]bool

	selfFunding   []string
	familyFunding []string
	privateLoan   []string

	schDomain   []string
	schContext  []string
	schStem     []string
	schPlanning []string
	institution []string

	statementNeed []string
	regions       []regionGroup
	regionExclude []string
}

// New creates a Normalizer from the configuration. Keyword lists are
// lower-cased once here so matching can work on cleaned text directly.
func New(cfg *config.Config) *Normalizer {
	kw := cfg.Keywords
	return &Normalizer{
		fields:        cfg.Fields,
		negative:      wordSet(kw.Negative),
		affirmative:   wordSet(kw.Affirmative),
		schYes:        wordSet(kw.ScholarshipYes),
		selfFunding:   lowerAll(kw.SelfFunding),
		familyFunding: lowerAll(kw.FamilyFunding),
		privateLoan:   lowerAll(kw.PrivateLoan),
		schDomain:     lowerAll(kw.ScholarshipDomain),
		schContext:    lowerAll(kw.InstitutionContext),
		schStem:       lowerAll(kw.ScholarshipStem),
		schPlanning:   lowerAll(kw.ScholarshipPlanning),
		institution:   lowerAll(cfg.Institution.Aliases),
		statementNeed: lowerAll(kw.StatementNeed),
		regions:       newRegionGroups(cfg.Regions),
		regionExclude: lowerAll(cfg.Regions.Exclude),
	}
}

// Facts derives the canonical facts of one record. now supplies the
// reference year for birth-year conversion.
func (n *Normalizer) Facts(r applicant.Record, now time.Time) applicant.Facts {
	var f applicant.Facts

	if _, raw := r.Lookup(n.fields.Age); raw != "" {
		if age, ok := Age(raw, now); ok {
			f.Age = &age
		}
	}

	_, degree := r.Lookup(n.fields.Degree)
	_, self := r.Lookup(n.fields.SelfSponsorship)
	_, family := r.Lookup(n.fields.FamilySupport)
	_, loan := r.Lookup(n.fields.PrivateLoan)
	_, thirdParty := r.Lookup(n.fields.ThirdPartyScholarship)
	_, other := r.Lookup(n.fields.OtherFunding)
	_, country := r.Lookup(n.fields.Country)
	_, statement := r.Lookup(n.fields.PersonalStatement)

	f.HasDegree = n.HasDegree(degree)
	f.HasSelfFunding = n.HasSelfFunding(self)
	f.HasFamilyFunding = n.HasFamilyFunding(family) || n.HasFamilyFunding(other)
	f.HasPrivateLoan = n.HasPrivateLoan(loan)

	// Each source asserts at most one intent; the facts OR across sources
	for _, raw := range []string{thirdParty, other} {
		switch n.ClassifyScholarship(raw) {
		case ScholarshipExternalConfirmed:
			f.ExternalScholarshipConfirmed = true
		case ScholarshipExternalPlanned:
			f.ExternalScholarshipPlanned = true
		case ScholarshipInstitution:
			f.DependsOnInstitutionScholarship = true
		}
	}

	if region, ok := n.ClassifyRegion(country); ok {
		f.IsTopPriorityRegion = true
		f.Region = string(region)
	}

	f.StatementRequestsScholarship = n.StatementRequestsScholarship(statement)

	return f
}

// clean lower-cases and trims a raw value
func clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func wordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[clean(w)] = true
	}
	return set
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = clean(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}
