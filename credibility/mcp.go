package credibility

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/credence/kit"
)

// RegisterMCP registers credibility tools on an MCP server.
func (e *Engine) RegisterMCP(srv *mcp.Server) {
	e.registerAssessTool(srv)
	e.registerOutcomeTool(srv)
	e.registerGraphStatsTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// --- assess_source_credibility ---

func (e *Engine) registerAssessTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "assess_source_credibility",
		Description: "Assess the credibility of a web source. Fuses domain, title, content, and metadata evidence into a posterior credibility score with an uncertainty band and a recommendation.",
		InputSchema: inputSchema(map[string]any{
			"url":     map[string]any{"type": "string", "description": "Source URL (required)"},
			"title":   map[string]any{"type": "string", "description": "Page or article title"},
			"content": map[string]any{"type": "string", "description": "Extracted text content"},
			"metadata": map[string]any{
				"type":        "object",
				"description": "Publication metadata: year, authors, citations, doi, is_peer_reviewed",
				"properties": map[string]any{
					"year":             map[string]any{"type": "integer"},
					"authors":          map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"citations":        map[string]any{"type": "integer"},
					"doi":              map[string]any{"type": "string"},
					"is_peer_reviewed": map[string]any{"type": "boolean"},
				},
			},
			"citations_to":   map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "URLs this source cites"},
			"citations_from": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "URLs known to cite this source"},
			"outcome":        map[string]any{"type": "number", "description": "Optional ground-truth outcome in [0,1], recorded after the assessment"},
		}, []string{"url"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		return e.Assess(ctx, req.(*Input))
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var in Input
		if err := json.Unmarshal(req.Params.Arguments, &in); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &in}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- record_credibility_outcome ---

type outcomeRequest struct {
	URL     string  `json:"url"`
	Outcome float64 `json:"outcome"`
}

func (e *Engine) registerOutcomeTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "record_credibility_outcome",
		Description: "Record a ground-truth credibility outcome for a source. Adjusts the domain's prior on later assessments.",
		InputSchema: inputSchema(map[string]any{
			"url":     map[string]any{"type": "string", "description": "Source URL"},
			"outcome": map[string]any{"type": "number", "description": "Observed credibility in [0,1]"},
		}, []string{"url", "outcome"}),
	}

	endpoint := func(_ context.Context, req any) (any, error) {
		rr := req.(*outcomeRequest)
		return e.RecordOutcome(rr.URL, rr.Outcome)
	}

	decode := func(req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		var rr outcomeRequest
		if err := json.Unmarshal(req.Params.Arguments, &rr); err != nil {
			return nil, err
		}
		return &kit.MCPDecodeResult{Request: &rr}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}

// --- citation_graph_stats ---

func (e *Engine) registerGraphStatsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "citation_graph_stats",
		Description: "Get citation graph statistics: node and edge counts plus the top domains by PageRank.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(_ context.Context, _ any) (any, error) {
		return e.GraphStats(), nil
	}

	decode := func(_ *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decode)
}
