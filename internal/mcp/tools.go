package mcp

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vijay-prabhu/applicant-triage/internal/applicant"
	"github.com/vijay-prabhu/applicant-triage/internal/ingest"
	"github.com/vijay-prabhu/applicant-triage/internal/normalize"
	"github.com/vijay-prabhu/applicant-triage/internal/output"
	"github.com/vijay-prabhu/applicant-triage/internal/scoring"
)

const defaultLimit = 50

// ScoreInput is the input schema for the score_applicants tool
type ScoreInput struct {
	Records []map[string]any `json:"records,omitempty" jsonschema:"applicant records keyed by column header"`
	Path    string           `json:"path,omitempty" jsonschema:"path to a csv, xlsx or json intake export, used when records is empty"`
	View    string           `json:"view,omitempty" jsonschema:"all, high-priority or region-top (default all)"`
	Limit   int              `json:"limit,omitempty" jsonschema:"maximum number of applicants to return (default 50)"`
}

// ScoreOutput is the output schema for the score_applicants tool
type ScoreOutput struct {
	RunID      string            `json:"run_id"`
	Input      int               `json:"input"`
	Removed    int               `json:"removed"`
	Collisions int               `json:"collisions"`
	Count      int               `json:"count"`
	Categories map[string]int    `json:"categories"`
	Applicants []ApplicantOutput `json:"applicants"`
}

// ApplicantOutput is one scored applicant
type ApplicantOutput struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Country  string   `json:"country"`
	Age      *int     `json:"age,omitempty"`
	Score    int      `json:"score"`
	Category string   `json:"category"`
	Reasons  []string `json:"reasons"`
}

// ClassifyInput is the input schema for the classify_text tool
type ClassifyInput struct {
	Field string `json:"field" jsonschema:"one of age, degree, self, family, loan, scholarship, region, statement"`
	Text  string `json:"text" jsonschema:"the raw field value to classify"`
}

// ClassifyOutput is the output schema for the classify_text tool
type ClassifyOutput struct {
	Field   string `json:"field"`
	Text    string `json:"text"`
	Result  string `json:"result"`
	Matched bool   `json:"matched"`
	Age     *int   `json:"age,omitempty"`
}

// ExplainInput is the input schema for the explain_applicant tool
type ExplainInput struct {
	Record map[string]any `json:"record" jsonschema:"one applicant record keyed by column header"`
}

// registerTools registers all tool handlers with the MCP server
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "score_applicants",
		Description: "Deduplicate and score applicant records. Returns score, priority category and reasons per applicant, best first unless view is all.",
	}, s.handleScore)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "classify_text",
		Description: "Run one field heuristic on a raw value. Useful for checking how a form answer will be read.",
	}, s.handleClassify)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "explain_applicant",
		Description: "Show every rule that fired for one applicant record, with points and reason.",
	}, s.handleExplain)
}

func (s *Server) handleScore(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ScoreInput,
) (*mcp.CallToolResult, ScoreOutput, error) {
	records := make([]applicant.Record, 0, len(input.Records))
	for _, r := range input.Records {
		records = append(records, applicant.Record(r))
	}

	columns := []string(nil)
	if len(records) == 0 {
		if input.Path == "" {
			return nil, ScoreOutput{}, fmt.Errorf("records or path is required")
		}
		tbl, err := ingest.ReadFile(input.Path, ingest.Options{})
		if err != nil {
			return nil, ScoreOutput{}, err
		}
		records, columns = tbl.Records, tbl.Columns
	}

	batch, err := s.engine.ScoreBatch(ctx, records)
	if err != nil {
		return nil, ScoreOutput{}, err
	}
	s.logger.Debug("score_applicants", "run_id", batch.RunID.String(), "records", len(records), "columns", len(columns))

	var selected []applicant.Scored
	switch input.View {
	case "", "all":
		selected = batch.Applicants
	case "high-priority":
		selected = output.HighPriority(batch.Applicants, s.cfg.Output.HighPriorityMinScore)
	case "region-top":
		selected = output.RegionTop(batch.Applicants)
	default:
		return nil, ScoreOutput{}, fmt.Errorf("unknown view: %s", input.View)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if len(selected) > limit {
		selected = selected[:limit]
	}

	out := ScoreOutput{
		RunID:      batch.RunID.String(),
		Input:      batch.Input,
		Removed:    batch.Removed,
		Collisions: len(batch.Collisions),
		Count:      len(selected),
		Categories: make(map[string]int),
		Applicants: make([]ApplicantOutput, len(selected)),
	}
	for c, n := range batch.CategoryCounts() {
		out.Categories[string(c)] = n
	}
	for i, a := range selected {
		out.Applicants[i] = s.toOutput(a)
	}

	return nil, out, nil
}

func (s *Server) toOutput(a applicant.Scored) ApplicantOutput {
	_, email := a.Record.Lookup(s.cfg.Fields.Email)
	_, country := a.Record.Lookup(s.cfg.Fields.Country)
	return ApplicantOutput{
		Name:     output.DisplayName(a, s.cfg.Fields),
		Email:    email,
		Country:  country,
		Age:      a.Age,
		Score:    a.Score,
		Category: string(a.Category),
		Reasons:  a.Reasons,
	}
}

func (s *Server) handleClassify(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ClassifyInput,
) (*mcp.CallToolResult, ClassifyOutput, error) {
	n := s.normalizer
	out := ClassifyOutput{Field: input.Field, Text: input.Text}

	boolean := func(v bool) {
		out.Matched = v
		out.Result = strconv.FormatBool(v)
	}

	switch strings.ToLower(input.Field) {
	case "age":
		if age, ok := normalize.Age(input.Text, s.engine.Now()); ok {
			out.Age = &age
			out.Matched = true
			out.Result = strconv.Itoa(age)
		} else {
			out.Result = "unknown"
		}
	case "degree":
		boolean(n.HasDegree(input.Text))
	case "self":
		boolean(n.HasSelfFunding(input.Text))
	case "family":
		boolean(n.HasFamilyFunding(input.Text))
	case "loan":
		boolean(n.HasPrivateLoan(input.Text))
	case "statement":
		boolean(n.StatementRequestsScholarship(input.Text))
	case "scholarship":
		intent := n.ClassifyScholarship(input.Text)
		out.Result = string(intent)
		out.Matched = intent != normalize.ScholarshipNone
	case "region":
		region, ok := n.ClassifyRegion(input.Text)
		out.Result = string(region)
		out.Matched = ok
	default:
		return nil, ClassifyOutput{}, fmt.Errorf("unknown field: %s", input.Field)
	}

	return nil, out, nil
}

func (s *Server) handleExplain(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ExplainInput,
) (*mcp.CallToolResult, scoring.Result, error) {
	if len(input.Record) == 0 {
		return nil, scoring.Result{}, fmt.Errorf("record is required")
	}
	return nil, s.engine.Explain(applicant.Record(input.Record)), nil
}
