package tools

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/blevesearch/bleve/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/importer"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/searchindex"
)

// searchManager guards the open bleve index. The pointer is swapped
// atomically on refresh so searches never block each other; the wait group
// lets Close drain in-flight searches before releasing the index.
type searchManager struct {
	current atomic.Pointer[bleve.Index]
	wg      sync.WaitGroup

	indexDir   string
	outputRoot string
}

var searchMgr *searchManager

// SearchContentInput is a full-text query over migrated content.
type SearchContentInput struct {
	Query      string `json:"query" jsonschema:"full-text query matched against titles, headings, and body text"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"maximum results, default 10, cap 20"`
}

type SearchContentOutput struct {
	Results   []searchindex.Result `json:"results"`
	Query     string               `json:"query"`
	TotalHits int                  `json:"totalHits"`
}

// SearchContent runs a relevance-ranked query against the content index.
func SearchContent(ctx context.Context, req *mcp.CallToolRequest, input SearchContentInput) (*mcp.CallToolResult, SearchContentOutput, error) {
	if searchMgr == nil {
		return nil, SearchContentOutput{}, fmt.Errorf("content search not initialized")
	}
	indexPtr := searchMgr.current.Load()
	if indexPtr == nil {
		return nil, SearchContentOutput{}, fmt.Errorf("content index unavailable, run refresh_content_index")
	}

	searchMgr.wg.Add(1)
	defer searchMgr.wg.Done()

	results, err := searchindex.Search(*indexPtr, input.Query, input.MaxResults)
	if err != nil {
		return nil, SearchContentOutput{}, err
	}
	return nil, SearchContentOutput{
		Results:   results,
		Query:     input.Query,
		TotalHits: len(results),
	}, nil
}

// RefreshContentIndexInput has no parameters.
type RefreshContentIndexInput struct{}

type RefreshContentIndexOutput struct {
	DocsIndexed int    `json:"docsIndexed"`
	Message     string `json:"message"`
}

// RefreshContentIndex rebuilds the index from the current repository state
// and swaps it in atomically.
func RefreshContentIndex(ctx context.Context, req *mcp.CallToolRequest, input RefreshContentIndexInput) (*mcp.CallToolResult, RefreshContentIndexOutput, error) {
	if searchMgr == nil {
		return nil, RefreshContentIndexOutput{}, fmt.Errorf("content search not initialized")
	}

	if old := searchMgr.current.Swap(nil); old != nil {
		searchMgr.wg.Wait()
		if err := (*old).Close(); err != nil {
			log.Printf("Error closing stale content index: %v", err)
		}
	}

	count, err := searchindex.Build(searchMgr.outputRoot, searchMgr.indexDir, importer.Families)
	if err != nil {
		return nil, RefreshContentIndexOutput{}, fmt.Errorf("rebuild failed: %w", err)
	}
	index, err := searchindex.Open(searchMgr.indexDir)
	if err != nil {
		return nil, RefreshContentIndexOutput{}, err
	}
	searchMgr.current.Store(&index)

	return nil, RefreshContentIndexOutput{
		DocsIndexed: count,
		Message:     fmt.Sprintf("Content index rebuilt, %d documents indexed", count),
	}, nil
}

// RegisterSearchTools opens the content index and wires the search tools.
// A missing or stale index is not fatal; search degrades until a refresh.
func RegisterSearchTools(server *mcp.Server, indexDir, outputRoot string) error {
	searchMgr = &searchManager{indexDir: indexDir, outputRoot: outputRoot}

	index, err := searchindex.Open(indexDir)
	if err != nil {
		log.Printf("Warning: content index unavailable: %v", err)
		log.Printf("Content search will be unavailable until refresh_content_index runs")
	} else {
		searchMgr.current.Store(&index)
	}

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "search_content",
			Description: "Full-text search across migrated content: titles, headings, sections, and FAQ text. Relevance ranked.",
		},
		SearchContent,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "refresh_content_index",
			Description: "Rebuild the full-text content index from the current repository state.",
		},
		RefreshContentIndex,
	)

	return nil
}

// CloseSearch drains in-flight searches and closes the index.
func CloseSearch() error {
	if searchMgr == nil {
		return nil
	}
	indexPtr := searchMgr.current.Swap(nil)
	if indexPtr == nil {
		return nil
	}
	searchMgr.wg.Wait()
	return (*indexPtr).Close()
}
