// Package tools exposes the content repository, route index, and search
// index over MCP. Handlers are read-only: all mutation happens in the batch
// import commands.
package tools

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/importer"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/repository"
)

// contentStores holds one repository per family, set once at registration.
var contentStores map[string]*repository.Store

// ResolvePageInput requests one document.
type ResolvePageInput struct {
	Family string `json:"family" jsonschema:"content family: pages, discover, or guides"`
	Locale string `json:"locale,omitempty" jsonschema:"locale code, defaults to en"`
	Slug   string `json:"slug" jsonschema:"canonical slug or any registered legacy alias"`
}

// ResolvePageOutput returns the merged document as served to readers.
type ResolvePageOutput struct {
	Found    bool              `json:"found"`
	Document *content.Document `json:"document,omitempty"`
	Message  string            `json:"message,omitempty"`
}

// ResolvePage resolves aliases, falls back to the canonical locale, and
// applies the locale override before returning the document.
func ResolvePage(ctx context.Context, req *mcp.CallToolRequest, input ResolvePageInput) (*mcp.CallToolResult, ResolvePageOutput, error) {
	store, ok := contentStores[input.Family]
	if !ok {
		return nil, ResolvePageOutput{}, fmt.Errorf("unknown family %q", input.Family)
	}

	doc, err := store.Resolve(input.Locale, input.Slug)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ResolvePageOutput{
			Found:   false,
			Message: fmt.Sprintf("no document for %s/%s in %s or the canonical locale", input.Family, input.Slug, input.Locale),
		}, nil
	}
	if err != nil {
		return nil, ResolvePageOutput{}, err
	}
	return nil, ResolvePageOutput{Found: true, Document: doc}, nil
}

// ListManifestInput requests one family manifest.
type ListManifestInput struct {
	Family string `json:"family" jsonschema:"content family: pages, discover, or guides"`
	Locale string `json:"locale,omitempty" jsonschema:"locale code, defaults to en"`
}

// ListManifestOutput returns the per-locale aggregate record.
type ListManifestOutput struct {
	Manifest *repository.Manifest `json:"manifest"`
}

// ListManifest returns the import manifest: counts, taxonomy stats, alias
// table, and page summaries.
func ListManifest(ctx context.Context, req *mcp.CallToolRequest, input ListManifestInput) (*mcp.CallToolResult, ListManifestOutput, error) {
	store, ok := contentStores[input.Family]
	if !ok {
		return nil, ListManifestOutput{}, fmt.Errorf("unknown family %q", input.Family)
	}
	locale := input.Locale
	if locale == "" {
		locale = content.DefaultLocale
	}
	manifest, err := store.Manifest(locale)
	if err != nil {
		return nil, ListManifestOutput{}, err
	}
	return nil, ListManifestOutput{Manifest: manifest}, nil
}

// RegisterContentTools wires the repository-backed tools. outputRoot is the
// directory import runs write to.
func RegisterContentTools(server *mcp.Server, outputRoot string) error {
	contentStores = make(map[string]*repository.Store, len(importer.Families))
	for _, family := range importer.Families {
		contentStores[family] = repository.NewStore(outputRoot, family)
	}

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "resolve_page",
			Description: "Resolve a content page by family, locale, and slug. Accepts legacy aliases, falls back to the canonical locale, and applies locale overrides.",
		},
		ResolvePage,
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_manifest",
			Description: "Return the import manifest for a content family and locale: page counts, taxonomy stats, and the alias table.",
		},
		ListManifest,
	)

	log.Printf("Content tools registered over %s", outputRoot)
	return nil
}
