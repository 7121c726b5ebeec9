package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vijay-prabhu/applicant-triage/internal/applicant"
)

const uriScheme = "triage://"

// registerResources registers all resource handlers with the MCP server
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "config",
		Name:        "config",
		Description: "Effective scoring configuration: weights, thresholds, keyword lists and column aliases",
		MIMEType:    "application/toml",
	}, s.handleConfigResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "categories",
		Name:        "categories",
		Description: "Priority categories in order, with labels and score cut-offs",
		MIMEType:    "application/json",
	}, s.handleCategoriesResource)
}

func (s *Server) handleConfigResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := s.cfg.Marshal()
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/toml",
			Text:     string(data),
		}},
	}, nil
}

type categoryInfo struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Rule     string `json:"rule"`
}

func (s *Server) handleCategoriesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	t := s.cfg.Thresholds
	rules := map[applicant.Category]string{
		applicant.CategoryTopPriorityRegion:       fmt.Sprintf("region and score >= %d", t.TopPriority),
		applicant.CategoryHighPotentialRegionWeak: fmt.Sprintf("region and score < %d", t.TopPriority),
		applicant.CategoryTopPriorityFinancial:    fmt.Sprintf("score >= %d", t.TopPriority),
		applicant.CategoryHighPotential:           fmt.Sprintf("%d <= score < %d", t.High, t.TopPriority),
		applicant.CategoryMediumPotential:         fmt.Sprintf("%d <= score < %d", t.Medium, t.High),
		applicant.CategoryLowPriority:             fmt.Sprintf("score < %d", t.Medium),
	}

	infos := make([]categoryInfo, len(applicant.Categories))
	for i, c := range applicant.Categories {
		infos[i] = categoryInfo{Category: string(c), Label: c.Label(), Rule: rules[c]}
	}

	data, err := json.Marshal(infos)
	if err != nil {
		return nil, fmt.Errorf("marshaling categories: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
