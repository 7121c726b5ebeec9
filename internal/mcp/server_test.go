package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-prabhu/applicant-triage/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := NewServer(config.Default(), "test", nil)
	require.NoError(t, err)
	return s
}

func TestNewServer(t *testing.T) {
	t.Run("nil config returns error", func(t *testing.T) {
		s, err := NewServer(nil, "test", nil)
		assert.Nil(t, s)
		assert.ErrorIs(t, err, ErrMissingConfig)
	})

	t.Run("invalid config returns error", func(t *testing.T) {
		cfg := config.Default()
		cfg.Engine.Workers = 0
		_, err := NewServer(cfg, "test", nil)
		assert.ErrorIs(t, err, config.ErrInvalid)
	})

	t.Run("valid config creates server", func(t *testing.T) {
		assert.NotNil(t, newTestServer(t))
	})
}

func TestServer_handleScore(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	t.Run("scores records", func(t *testing.T) {
		input := ScoreInput{Records: []map[string]any{
			{"Name": "Ana", "Email": "ana@example.com", "Country of Citizenship": "Barbados", "Date Created": "2025-01-01"},
			{"Name": "Ana", "Email": "ana@example.com", "Country of Citizenship": "Barbados", "Family Support": "my mother", "Date Created": "2025-02-01"},
			{"Name": "Raj", "Email": "raj@example.com", "Third Party Scholarship": "ASU scholarship"},
		}}

		_, out, err := s.handleScore(ctx, nil, input)
		require.NoError(t, err)

		assert.Equal(t, 3, out.Input)
		assert.Equal(t, 1, out.Removed)
		assert.Equal(t, 2, out.Count)
		assert.NotEmpty(t, out.RunID)
		assert.Equal(t, 1, out.Categories["HighPotentialRegionWeak"])
		assert.Equal(t, 1, out.Categories["LowPriority"])

		var ana ApplicantOutput
		for _, a := range out.Applicants {
			if a.Email == "ana@example.com" {
				ana = a
			}
		}
		assert.Equal(t, 68, ana.Score)
		assert.Equal(t, "Barbados", ana.Country)
		assert.Contains(t, ana.Reasons, "Parent/Family support: YES")
	})

	t.Run("region-top view with limit", func(t *testing.T) {
		input := ScoreInput{
			View:  "region-top",
			Limit: 1,
			Records: []map[string]any{
				{"Email": "a@example.com", "Country of Citizenship": "France"},
				{"Email": "b@example.com", "Country of Citizenship": "Kenya"},
				{"Email": "c@example.com", "Country of Citizenship": "Canada", "Private Loan": "bank"},
			},
		}

		_, out, err := s.handleScore(ctx, nil, input)
		require.NoError(t, err)
		require.Len(t, out.Applicants, 1)
		assert.Equal(t, "c@example.com", out.Applicants[0].Email)
	})

	t.Run("reads a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "intake.csv")
		require.NoError(t, os.WriteFile(path, []byte("Email,Age,Degree\nx@example.com,1990,BSc\n"), 0o644))

		_, out, err := s.handleScore(ctx, nil, ScoreInput{Path: path})
		require.NoError(t, err)
		require.Len(t, out.Applicants, 1)
		assert.Equal(t, 17, out.Applicants[0].Score)
	})

	t.Run("requires input", func(t *testing.T) {
		_, _, err := s.handleScore(ctx, nil, ScoreInput{})
		assert.Error(t, err)
	})

	t.Run("unknown view", func(t *testing.T) {
		_, _, err := s.handleScore(ctx, nil, ScoreInput{View: "best", Records: []map[string]any{{"Email": "a@example.com"}}})
		assert.Error(t, err)
	})
}

func TestServer_handleClassify(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	tests := []struct {
		field       string
		text        string
		wantResult  string
		wantMatched bool
	}{
		{"degree", "BSc", "true", true},
		{"family", "none", "false", false},
		{"self", "yes", "true", true},
		{"loan", "credit union", "true", true},
		{"statement", "I cannot afford tuition", "true", true},
		{"scholarship", "planning to apply for a bursary", "external_planned", true},
		{"scholarship", "n/a", "none", false},
		{"region", "Jamaica", "Caribbean", true},
		{"region", "Kenya", "", false},
		{"age", "unknown", "unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.field+"/"+tt.text, func(t *testing.T) {
			_, out, err := s.handleClassify(ctx, nil, ClassifyInput{Field: tt.field, Text: tt.text})
			require.NoError(t, err)
			assert.Equal(t, tt.wantResult, out.Result)
			assert.Equal(t, tt.wantMatched, out.Matched)
		})
	}

	t.Run("age resolves", func(t *testing.T) {
		_, out, err := s.handleClassify(ctx, nil, ClassifyInput{Field: "age", Text: "24"})
		require.NoError(t, err)
		require.NotNil(t, out.Age)
		assert.Equal(t, 24, *out.Age)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, _, err := s.handleClassify(ctx, nil, ClassifyInput{Field: "height", Text: "180"})
		assert.Error(t, err)
	})
}

func TestServer_handleExplain(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	_, res, err := s.handleExplain(ctx, nil, ExplainInput{Record: map[string]any{
		"Private Loan":           "bank loan",
		"Country of Citizenship": "Canada",
	}})
	require.NoError(t, err)
	assert.Equal(t, 64, res.Score)
	assert.Len(t, res.Contributions, 3)

	_, _, err = s.handleExplain(ctx, nil, ExplainInput{})
	assert.Error(t, err)
}

func TestServer_resources(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	t.Run("config", func(t *testing.T) {
		res, err := s.handleConfigResource(ctx, readRequest("triage://config"))
		require.NoError(t, err)
		require.Len(t, res.Contents, 1)
		assert.Contains(t, res.Contents[0].Text, "[weights]")
	})

	t.Run("categories", func(t *testing.T) {
		res, err := s.handleCategoriesResource(ctx, readRequest("triage://categories"))
		require.NoError(t, err)
		require.Len(t, res.Contents, 1)

		var infos []categoryInfo
		require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &infos))
		require.Len(t, infos, 6)
		assert.Equal(t, "TopPriorityRegion", infos[0].Category)
		assert.Equal(t, "region and score >= 70", infos[0].Rule)
		assert.Equal(t, "score < 35", infos[5].Rule)
	})
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}
