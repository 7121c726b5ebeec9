package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/vijay-prabhu/applicant-triage/internal/dedup"
	"github.com/vijay-prabhu/applicant-triage/internal/scoring"
)

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data any) error {
	switch v := data.(type) {
	case *Listing:
		return applicantsTable(w, v)
	case *Summary:
		return summaryTable(w, v)
	case []dedup.Collision:
		return collisionsTable(w, v)
	case *scoring.Result:
		return explainTable(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func applicantsTable(w io.Writer, l *Listing) error {
	if len(l.Applicants) == 0 {
		fmt.Fprintln(w, "No applicants found.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("#", "Name", "Email", "Country", "Age", "Score", "Category", "Reasons")

	for i, a := range l.Applicants {
		_, email := a.Record.Lookup(l.fields.Email)
		_, country := a.Record.Lookup(l.fields.Country)
		row := []string{
			strconv.Itoa(i + 1),
			truncate(DisplayName(a, l.fields), 24),
			truncate(email, 28),
			truncate(country, 16),
			a.AgeText(),
			strconv.Itoa(a.Score),
			a.Category.Label(),
			truncate(a.ReasonText(), 60),
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}

	return table.Render()
}

func summaryTable(w io.Writer, s *Summary) error {
	fmt.Fprintln(w, "Applicant Triage Summary")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Run:                    %s\n", s.RunID)
	fmt.Fprintf(w, "Submissions read:       %d\n", s.Input)
	fmt.Fprintf(w, "Repeats removed:        %d\n", s.Removed)
	fmt.Fprintf(w, "Applicants scored:      %d\n", s.Scored)
	if s.Collisions > 0 {
		fmt.Fprintf(w, "Identity collisions:    %d (review)\n", s.Collisions)
	}
	fmt.Fprintf(w, "Average score:          %.1f\n", s.AverageScore)
	fmt.Fprintf(w, "High priority:          %d\n", s.HighPriority)
	fmt.Fprintf(w, "Region top:             %d\n", s.RegionTop)
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.Header("Category", "Applicants")
	for _, c := range s.Categories {
		if err := table.Append([]string{c.Label, strconv.Itoa(c.Count)}); err != nil {
			return err
		}
	}
	return table.Render()
}

func collisionsTable(w io.Writer, collisions []dedup.Collision) error {
	if len(collisions) == 0 {
		fmt.Fprintln(w, "No identity collisions.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Name", "Birth", "Submissions")
	for _, c := range collisions {
		if err := table.Append([]string{c.Name, c.Birth, strconv.Itoa(c.Submissions)}); err != nil {
			return err
		}
	}
	return table.Render()
}

func explainTable(w io.Writer, r *scoring.Result) error {
	table := tablewriter.NewWriter(w)
	table.Header("Rule", "Points", "Reason")
	for _, c := range r.Contributions {
		if err := table.Append([]string{string(c.Rule), fmt.Sprintf("%+d", c.Points), c.Reason}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Raw %d, score %d, category %s\n", r.Raw, r.Score, r.Category.Label())
	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
