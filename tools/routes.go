package tools

import (
	"context"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/routeindex"
)

// routes holds the loaded catalog, set once at registration. Queries are
// pure so no locking is needed.
var routes *routeindex.Index

// CountRoutesInput selects a locale prefix bucket.
type CountRoutesInput struct {
	Locale       string `json:"locale" jsonschema:"locale code: en, es, pt, or fr"`
	Prefix       string `json:"prefix,omitempty" jsonschema:"slug prefix, empty counts every route"`
	IncludeExact bool   `json:"includeExact,omitempty" jsonschema:"count the route equal to the prefix itself"`
}

type CountRoutesOutput struct {
	Count int `json:"count"`
}

func CountRoutes(ctx context.Context, req *mcp.CallToolRequest, input CountRoutesInput) (*mcp.CallToolResult, CountRoutesOutput, error) {
	return nil, CountRoutesOutput{Count: routes.CountByPrefix(input.Locale, input.Prefix, input.IncludeExact)}, nil
}

// ListRoutesInput selects routes under a prefix.
type ListRoutesInput struct {
	Locale       string `json:"locale" jsonschema:"locale code: en, es, pt, or fr"`
	Prefix       string `json:"prefix,omitempty" jsonschema:"slug prefix, empty lists every route"`
	Limit        int    `json:"limit,omitempty" jsonschema:"maximum routes returned, default 24"`
	IncludeExact bool   `json:"includeExact,omitempty" jsonschema:"include the route equal to the prefix itself"`
}

type ListRoutesOutput struct {
	Links []routeindex.RouteLink `json:"links"`
}

func ListRoutes(ctx context.Context, req *mcp.CallToolRequest, input ListRoutesInput) (*mcp.CallToolResult, ListRoutesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 24
	}
	return nil, ListRoutesOutput{Links: routes.LinksByPrefix(input.Locale, input.Prefix, limit, input.IncludeExact)}, nil
}

// GroupRoutesInput buckets routes under a prefix by child segment.
type GroupRoutesInput struct {
	Locale     string `json:"locale" jsonschema:"locale code: en, es, pt, or fr"`
	Prefix     string `json:"prefix" jsonschema:"slug prefix to group under"`
	MaxGroups  int    `json:"maxGroups,omitempty" jsonschema:"maximum groups returned, default 12"`
	SampleSize int    `json:"sampleSize,omitempty" jsonschema:"routes sampled per group, default 4"`
}

type GroupRoutesOutput struct {
	Groups []routeindex.Group `json:"groups"`
}

func GroupRoutes(ctx context.Context, req *mcp.CallToolRequest, input GroupRoutesInput) (*mcp.CallToolResult, GroupRoutesOutput, error) {
	maxGroups := input.MaxGroups
	if maxGroups <= 0 {
		maxGroups = 12
	}
	sampleSize := input.SampleSize
	if sampleSize <= 0 {
		sampleSize = 4
	}
	return nil, GroupRoutesOutput{Groups: routes.GroupByPrefix(input.Locale, input.Prefix, maxGroups, sampleSize)}, nil
}

// RelatedLinksInput asks for sibling routes of a slug.
type RelatedLinksInput struct {
	Locale string `json:"locale" jsonschema:"locale code: en, es, pt, or fr"`
	Slug   string `json:"slug" jsonschema:"route slug to find siblings for"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum links returned, default 16"`
}

type RelatedLinksOutput struct {
	Links []routeindex.RouteLink `json:"links"`
}

func RelatedLinks(ctx context.Context, req *mcp.CallToolRequest, input RelatedLinksInput) (*mcp.CallToolResult, RelatedLinksOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 16
	}
	return nil, RelatedLinksOutput{Links: routes.RelatedLinks(input.Locale, input.Slug, limit)}, nil
}

// SearchRoutesInput is a title/slug substring query.
type SearchRoutesInput struct {
	Locale string `json:"locale" jsonschema:"locale code: en, es, pt, or fr"`
	Query  string `json:"query" jsonschema:"case-insensitive text matched against route titles and slugs"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum results returned, default 20"`
}

type SearchRoutesOutput struct {
	Links []routeindex.RouteLink `json:"links"`
}

func SearchRoutes(ctx context.Context, req *mcp.CallToolRequest, input SearchRoutesInput) (*mcp.CallToolResult, SearchRoutesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	return nil, SearchRoutesOutput{Links: routes.Search(input.Locale, input.Query, limit)}, nil
}

// RegisterRouteTools loads the route catalog and wires its query tools.
func RegisterRouteTools(server *mcp.Server, indexPath string) error {
	idx, err := routeindex.Load(indexPath)
	if err != nil {
		return fmt.Errorf("failed to load route index: %w", err)
	}
	routes = idx

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "count_routes",
			Description: "Count routes for a locale under a slug prefix.",
		},
		CountRoutes,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_routes",
			Description: "List routes under a slug prefix, sorted by slug.",
		},
		ListRoutes,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "group_routes",
			Description: "Group routes under a prefix by immediate child segment, ordered by size with a sample per group.",
		},
		GroupRoutes,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "related_links",
			Description: "Find sibling routes for a slug by walking successively shorter path prefixes.",
		},
		RelatedLinks,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "search_routes",
			Description: "Search route titles and slugs with deterministic substring ranking.",
		},
		SearchRoutes,
	)

	log.Printf("Route tools registered: %d routes", len(routes.Entries()))
	return nil
}
