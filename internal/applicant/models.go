package applicant

import (
	"strconv"
	"strings"
)

// Record is one raw form submission keyed by column header. Values are
// strings, numbers, booleans or nil, exactly as the ingestion layer decoded them.
type Record map[string]any

// String returns the field value as text. Missing fields and nil values are
// empty; integral numbers print without a decimal point.
func (r Record) String(field string) string {
	v, ok := r[field]
	if !ok {
		return ""
	}
	return Stringify(v)
}

// Lookup returns the first alias present with a non-blank value
func (r Record) Lookup(aliases []string) (field, value string) {
	for _, alias := range aliases {
		v := strings.TrimSpace(r.String(alias))
		if v != "" {
			return alias, v
		}
	}
	return "", ""
}

// Stringify converts a decoded cell value to text
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return Stringify(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case bool:
		if val {
			return "yes"
		}
		return "no"
	default:
		return ""
	}
}

// Facts are the canonical values derived from one record
type Facts struct {
	Age                             *int `json:"age,omitempty" yaml:"age,omitempty"`
	HasDegree                       bool `json:"has_degree" yaml:"has_degree"`
	HasSelfFunding                  bool `json:"has_self_funding" yaml:"has_self_funding"`
	HasFamilyFunding                bool `json:"has_family_funding" yaml:"has_family_funding"`
	HasPrivateLoan                  bool `json:"has_private_loan" yaml:"has_private_loan"`
	ExternalScholarshipConfirmed    bool `json:"external_scholarship_confirmed" yaml:"external_scholarship_confirmed"`
	ExternalScholarshipPlanned      bool `json:"external_scholarship_planned" yaml:"external_scholarship_planned"`
	DependsOnInstitutionScholarship bool `json:"depends_on_institution_scholarship" yaml:"depends_on_institution_scholarship"`
	IsTopPriorityRegion             bool `json:"is_top_priority_region" yaml:"is_top_priority_region"`
	StatementRequestsScholarship    bool `json:"statement_requests_scholarship" yaml:"statement_requests_scholarship"`

	// Region names the matched region group; empty when IsTopPriorityRegion is false
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
}

// Scored is a record with its score, category and justification
type Scored struct {
	Record   Record   `json:"record" yaml:"record"`
	Score    int      `json:"score" yaml:"score"`
	Category Category `json:"category" yaml:"category"`
	Reasons  []string `json:"reasons" yaml:"reasons"`
	Facts    `yaml:",inline"`
}

// ReasonText joins the reasons the way the export sheets show them
func (s *Scored) ReasonText() string {
	return strings.Join(s.Reasons, "; ")
}

// AgeText returns the computed age or an empty string when unknown
func (s *Scored) AgeText() string {
	if s.Age == nil {
		return ""
	}
	return strconv.Itoa(*s.Age)
}
