// Package dedup selects one submission per applicant from a stream of
// possibly repeated form submissions. The most recent submission wins.
package dedup

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/vijay-prabhu/applicant-triage/internal/applicant"
	"github.com/vijay-prabhu/applicant-triage/internal/config"
)

// Collision is a fallback identity shared by more than one submission. These
// may be resubmissions or different applicants with the same name and birth
// value, so they are reported for review.
type Collision struct {
	Name        string `json:"name" yaml:"name"`
	Birth       string `json:"birth" yaml:"birth"`
	Submissions int    `json:"submissions" yaml:"submissions"`
}

// Result holds the surviving records in timestamp order
type Result struct {
	Records    []applicant.Record `json:"-" yaml:"-"`
	Removed    int                `json:"removed" yaml:"removed"`
	Collisions []Collision        `json:"collisions,omitempty" yaml:"collisions,omitempty"`
}

// Deduplicator applies the "most recent wins" policy
type Deduplicator struct {
	fields  config.FieldConfig
	layouts []string
	logger  *slog.Logger
}

// New creates a Deduplicator. A nil logger discards output.
func New(cfg *config.Config, logger *slog.Logger) *Deduplicator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Deduplicator{
		fields:  cfg.Fields,
		layouts: cfg.Dedup.TimestampLayouts,
		logger:  logger,
	}
}

type entry struct {
	record   applicant.Record
	ts       time.Time
	key      string
	fallback bool
}

// Dedupe keeps the last submission per identity. Records are stable-sorted by
// submission timestamp first when any record carries one; unparseable
// timestamps sort earliest. Records with no email, name or birth value
// cannot be matched and are always kept.
func (d *Deduplicator) Dedupe(records []applicant.Record) Result {
	entries := make([]entry, len(records))
	timestamped := false
	for i, r := range records {
		e := entry{record: r}
		if _, raw := r.Lookup(d.fields.Timestamp); raw != "" {
			timestamped = true
			e.ts = d.parseTimestamp(raw)
		}
		e.key, e.fallback = d.identity(r)
		entries[i] = e
	}

	if timestamped {
		slices.SortStableFunc(entries, func(a, b entry) int {
			return a.ts.Compare(b.ts)
		})
	}

	last := make(map[string]int)
	counts := make(map[string]int)
	for i, e := range entries {
		if e.key == "" {
			continue
		}
		last[e.key] = i
		counts[e.key]++
	}

	res := Result{Records: make([]applicant.Record, 0, len(last))}
	for i, e := range entries {
		if e.key != "" && last[e.key] != i {
			res.Removed++
			continue
		}
		res.Records = append(res.Records, e.record)

		if e.fallback && counts[e.key] > 1 {
			c := d.collision(e.record, counts[e.key])
			res.Collisions = append(res.Collisions, c)
			d.logger.Warn("possible identity collision",
				"name", c.Name,
				"birth", c.Birth,
				"submissions", c.Submissions,
			)
		}
	}

	slices.SortFunc(res.Collisions, func(a, b Collision) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Birth, b.Birth))
	})

	d.logger.Debug("deduplicated records",
		"input", len(records),
		"kept", len(res.Records),
		"removed", res.Removed,
		"collisions", len(res.Collisions),
	)

	return res
}

// identity returns the primary email key, or the name and birth fallback key
func (d *Deduplicator) identity(r applicant.Record) (key string, fallback bool) {
	if _, email := r.Lookup(d.fields.Email); email != "" {
		return "email:" + NormalizeEmail(email), false
	}

	name, birth := d.nameAndBirth(r)
	if name == "" && birth == "" {
		return "", false
	}
	return "name:" + name + "|" + birth, true
}

func (d *Deduplicator) nameAndBirth(r applicant.Record) (name, birth string) {
	_, first := r.Lookup(d.fields.FirstName)
	_, last := r.Lookup(d.fields.LastName)
	_, dob := r.Lookup(d.fields.BirthDate)
	return NormalizeName(first + " " + last), NormalizeBirth(dob)
}

func (d *Deduplicator) collision(r applicant.Record, n int) Collision {
	name, birth := d.nameAndBirth(r)
	return Collision{Name: name, Birth: birth, Submissions: n}
}

// parseTimestamp returns the zero time when no layout matches
func (d *Deduplicator) parseTimestamp(raw string) time.Time {
	s := strings.TrimSpace(raw)
	for _, layout := range d.layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
