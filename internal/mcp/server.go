// Package mcp implements the MCP server for openpages.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/open-pages/openpages/internal/corpus"
	"github.com/open-pages/openpages/internal/paper"
)

// Version is set by the caller (main) before calling Serve.
var Version = "dev"

var (
	mgr             *corpus.Manager
	rebuildFn       func() (*corpus.Result, error)
	lastRebuildTime time.Time
	rebuildMu       sync.Mutex
)

const rebuildCooldown = 60 * time.Second

// Serve starts the MCP server on stdio over an already-built corpus.
// rebuild re-ingests the papers on demand; nil disables the rebuild tool.
func Serve(m *corpus.Manager, rebuild func() (*corpus.Result, error)) error {
	mgr = m
	rebuildFn = rebuild

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "openpages",
		Version: Version,
	}, nil)

	registerTools(server)

	return server.Run(context.Background(), &mcp.StdioTransport{})
}

func registerTools(server *mcp.Server) {
	// search_papers
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_papers",
		Description: "Search the paper collection by free text and metadata filters. Use this to find papers on a topic or narrow the collection down.\n\nArgs:\n  query: Text matched against titles, summaries, tags, and authors (optional)\n  category: Filter by exact category/tag (optional)\n  status: Filter by status: working, idea, or completed (optional)\n  sort: Sort order: title-asc, title-desc, date-asc, date-desc (default title-asc)\n\nReturns matching papers with titles, slugs, statuses, and summaries.",
	}, handleSearchPapers)

	// get_paper
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_paper",
		Description: "Read the full record of one paper, including its abstract, table of contents, and markdown body. Use this after search_papers returns a relevant slug.\n\nArgs:\n  slug: Paper slug (the filename without .md, as returned by search_papers)\n\nReturns the complete paper record.",
	}, handleGetPaper)

	// list_papers
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_papers",
		Description: "List every paper in the collection with its title, slug, and status. Use this to get an overview before searching.\n\nReturns the full paper list sorted by title.",
	}, handleListPapers)

	// list_categories
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_categories",
		Description: "List the categories derived from paper tags. Use the result values as the category argument to search_papers.\n\nReturns the sorted category list.",
	}, handleListCategories)

	// rebuild
	mcp.AddTool(server, &mcp.Tool{
		Name:        "rebuild",
		Description: "Re-ingest every paper from the source. Use this if the user has added or changed papers and results seem stale.\n\nReturns ingestion statistics.",
	}, handleRebuild)

	// collection_stats
	mcp.AddTool(server, &mcp.Tool{
		Name:        "collection_stats",
		Description: "Check the health and size of the paper collection. Reports paper count, category count, and any ingestion errors from the last build.",
	}, handleCollectionStats)
}

// Tool input types

type searchInput struct {
	Query    string `json:"query,omitempty" jsonschema:"Text matched against titles, summaries, tags, and authors"`
	Category string `json:"category,omitempty" jsonschema:"Filter by exact category"`
	Status   string `json:"status,omitempty" jsonschema:"Filter by status: working, idea, or completed"`
	Sort     string `json:"sort,omitempty" jsonschema:"Sort order: title-asc, title-desc, date-asc, date-desc"`
}

type getInput struct {
	Slug string `json:"slug" jsonschema:"Paper slug (filename without .md)"`
}

type emptyInput struct{}

// Tool handlers

func handleSearchPapers(ctx context.Context, req *mcp.CallToolRequest, input searchInput) (*mcp.CallToolResult, any, error) {
	spec := corpus.FilterSpec{
		Search:   input.Query,
		Category: input.Category,
		Status:   strings.ToLower(strings.TrimSpace(input.Status)),
		Sort:     corpus.ParseSortKey(input.Sort),
	}

	docs := mgr.Corpus().Query(spec)
	if len(docs) == 0 {
		return textResult("No papers matched."), nil, nil
	}

	data, _ := json.MarshalIndent(summaries(docs), "", "  ")
	return textResult(string(data)), nil, nil
}

func handleGetPaper(ctx context.Context, req *mcp.CallToolRequest, input getInput) (*mcp.CallToolResult, any, error) {
	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		return textResult("Error: slug is required."), nil, nil
	}

	doc, ok := mgr.Corpus().BySlug(slug)
	if !ok {
		return textResult(fmt.Sprintf("No paper found for slug: %s", slug)), nil, nil
	}

	data, _ := json.MarshalIndent(doc, "", "  ")
	return textResult(string(data)), nil, nil
}

func handleListPapers(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	docs := mgr.Corpus().ListAll()
	if len(docs) == 0 {
		return textResult("The collection is empty."), nil, nil
	}

	data, _ := json.MarshalIndent(summaries(docs), "", "  ")
	return textResult(string(data)), nil, nil
}

func handleListCategories(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	data, _ := json.MarshalIndent(mgr.Corpus().Categories(), "", "  ")
	return textResult(string(data)), nil, nil
}

func handleRebuild(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	if rebuildFn == nil {
		return textResult("Rebuild is not available for this source."), nil, nil
	}

	rebuildMu.Lock()
	defer rebuildMu.Unlock()

	if time.Since(lastRebuildTime) < rebuildCooldown {
		remaining := int(rebuildCooldown.Seconds() - time.Since(lastRebuildTime).Seconds())
		return textResult(fmt.Sprintf("Rebuild cooldown active. Try again in %ds.", remaining)), nil, nil
	}
	lastRebuildTime = time.Now()

	res, err := rebuildFn()
	if err != nil {
		return textResult(fmt.Sprintf("Rebuild error: %v", err)), nil, nil
	}

	data, _ := json.MarshalIndent(res.Stats, "", "  ")
	return textResult(string(data)), nil, nil
}

func handleCollectionStats(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	res := mgr.Current()

	out := map[string]any{
		"stats": res.Stats,
	}
	if len(res.Errors) > 0 {
		msgs := make([]string, 0, len(res.Errors))
		for _, e := range res.Errors {
			msgs = append(msgs, e.Error())
		}
		out["errors"] = msgs
	}

	data, _ := json.MarshalIndent(out, "", "  ")
	return textResult(string(data)), nil, nil
}

// Helpers

type paperSummary struct {
	Title   string   `json:"title"`
	Slug    string   `json:"slug"`
	Status  string   `json:"status"`
	Tags    []string `json:"tags"`
	Summary string   `json:"summary"`
}

func summaries(docs []paper.Document) []paperSummary {
	out := make([]paperSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, paperSummary{
			Title:   d.Title,
			Slug:    d.Slug,
			Status:  d.Status,
			Tags:    d.Tags,
			Summary: d.Summary,
		})
	}
	return out
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
