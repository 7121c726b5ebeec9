package normalize

import "strings"

// HasDegree reports whether a degree field names any qualification.
// Degree fields hold free-form qualification names, so anything that is not
// a negative answer counts.
func (n *Normalizer) HasDegree(raw string) bool {
	t := clean(raw)
	if n.negative[t] {
		return false
	}
	return t != ""
}

// HasSelfFunding reports whether the text describes the applicant paying
func (n *Normalizer) HasSelfFunding(raw string) bool {
	return n.matchFunding(raw, n.selfFunding)
}

// HasFamilyFunding reports whether the text describes family paying
func (n *Normalizer) HasFamilyFunding(raw string) bool {
	return n.matchFunding(raw, n.familyFunding)
}

// HasPrivateLoan reports whether the text describes a loan
func (n *Normalizer) HasPrivateLoan(raw string) bool {
	return n.matchFunding(raw, n.privateLoan)
}

// StatementRequestsScholarship reports whether a personal statement asks
// for financial help
func (n *Normalizer) StatementRequestsScholarship(raw string) bool {
	t := clean(raw)
	if t == "" {
		return false
	}
	return containsAny(t, n.statementNeed)
}

func (n *Normalizer) matchFunding(raw string, keywords []string) bool {
	t := clean(raw)
	if n.negative[t] {
		return false
	}
	if n.affirmative[t] {
		return true
	}
	return containsAny(t, keywords)
}

// containsAny reports whether text contains any keyword as a substring
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// containsAnyWord is containsAny with word boundaries on single words
func containsAnyWord(text string, keywords []string) bool {
	for _, kw := range keywords {
		if containsWord(text, kw) {
			return true
		}
	}
	return false
}

// containsWord checks if text contains the word (with word boundary awareness)
func containsWord(text, word string) bool {
	// Simple contains for multi-word phrases
	if strings.Contains(word, " ") {
		return strings.Contains(text, word)
	}

	// For single words, check for word boundaries
	// This prevents "asu" from matching "casual"
	idx := strings.Index(text, word)
	if idx == -1 {
		return false
	}

	// Check character before (if exists)
	if idx > 0 && isWordChar(text[idx-1]) {
		return containsWord(text[idx+len(word):], word)
	}

	// Check character after (if exists)
	endIdx := idx + len(word)
	if endIdx < len(text) && isWordChar(text[endIdx]) {
		return containsWord(text[endIdx:], word)
	}

	return true
}

// isWordChar returns true for alphanumeric characters
func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
