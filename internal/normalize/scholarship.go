package normalize

// ScholarshipIntent classifies one scholarship source field
type ScholarshipIntent string

const (
	ScholarshipNone              ScholarshipIntent = "none"
	ScholarshipExternalConfirmed ScholarshipIntent = "external_confirmed"
	ScholarshipExternalPlanned   ScholarshipIntent = "external_planned"
	ScholarshipInstitution       ScholarshipIntent = "institution"
)

// ClassifyScholarship reads a scholarship source field. The checks run in a
// fixed order: negative answer, bare yes, scholarship vocabulary, reliance on
// the institution, planning words, and finally a confirmed award.
func (n *Normalizer) ClassifyScholarship(raw string) ScholarshipIntent {
	t := clean(raw)
	if n.negative[t] {
		return ScholarshipNone
	}

	// A bare "yes" says nothing about where the money comes from
	if n.schYes[t] {
		return ScholarshipExternalPlanned
	}

	if !containsAny(t, n.schDomain) {
		return ScholarshipNone
	}

	if n.mentionsInstitution(t) {
		return ScholarshipInstitution
	}

	if containsAny(t, n.schPlanning) {
		return ScholarshipExternalPlanned
	}

	return ScholarshipExternalConfirmed
}

// mentionsInstitution reports whether text names the institution itself, or
// pairs a generic "school"/"university" with scholarship wording
func (n *Normalizer) mentionsInstitution(t string) bool {
	if containsAnyWord(t, n.institution) {
		return true
	}
	return containsAny(t, n.schContext) && containsAny(t, n.schStem)
}
