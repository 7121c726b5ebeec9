package normalize

import (
	"strconv"
	"strings"
	"time"
)

const (
	minBirthYear = 1900
	minAge       = 10
	maxAge       = 80
)

// dateLayouts are tried in order; day-first layouts come before their
// month-first counterparts so "03/04/2001" reads as 3 April.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2.1.2006",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"2 January 2006",
	"02 January 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2006-01-02 15:04:05 -0700 MST",
}

// Age resolves an age in years from a bare age, a birth year, a full date or
// free text containing a birth year. ok is false when nothing resolves.
func Age(raw string, now time.Time) (age int, ok bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	year := now.Year()

	// Bare integer: birth year or age
	if x, err := strconv.Atoi(s); err == nil {
		if age, ok := fromBirthYear(x, year); ok {
			return age, true
		}
		if x >= minAge && x <= maxAge {
			return x, true
		}
	}

	// Full calendar date
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if age, ok := fromBirthYear(t.Year(), year); ok {
				return age, true
			}
			break
		}
	}

	// Any 4-digit run inside a token, e.g. "born:2001," or "DOB 2001"
	for _, token := range strings.Fields(s) {
		for _, candidate := range fourDigitWindows(token) {
			if age, ok := fromBirthYear(candidate, year); ok {
				return age, true
			}
		}
	}

	// Leading number, e.g. "24 years"
	if fields := strings.Fields(s); len(fields) > 1 {
		if x, err := strconv.Atoi(fields[0]); err == nil && x >= minAge && x <= maxAge {
			return x, true
		}
	}

	return 0, false
}

func fromBirthYear(x, currentYear int) (int, bool) {
	if x >= minBirthYear && x <= currentYear {
		return currentYear - x, true
	}
	return 0, false
}

// fourDigitWindows returns every 4-digit substring of the token's digit runs
func fourDigitWindows(token string) []int {
	var out []int
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		for i := start; i+4 <= end; i++ {
			if v, err := strconv.Atoi(token[i : i+4]); err == nil {
				out = append(out, v)
			}
		}
		start = -1
	}

	for i := 0; i < len(token); i++ {
		if token[i] >= '0' && token[i] <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(token))

	return out
}
