// Package searchindex maintains the full-text index over migrated content.
// It complements the route index: route queries stay deterministic substring
// scoring, while this index serves relevance-ranked deep search into section
// and FAQ text.
package searchindex

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/repository"
)

// IndexSchemaVersion increments when the indexed document shape changes.
// v1: title/heading/body/slug fields per record.
const IndexSchemaVersion = 1

// versionFile sits alongside the index so a stale on-disk index can be
// detected and rebuilt.
const versionFile = ".schema-version"

// batchSize bounds how many records go into one bleve batch.
const batchSize = 100

// IndexedDoc is the shape stored per record.
type IndexedDoc struct {
	Family   string `json:"family"`
	Locale   string `json:"locale"`
	Slug     string `json:"slug"`
	Pathname string `json:"pathname"`
	Title    string `json:"title"`
	Heading  string `json:"heading"`
	Body     string `json:"body"`
}

// Result is one search hit.
type Result struct {
	Doc   IndexedDoc `json:"doc"`
	Score float64    `json:"score"`
}

// Build creates a fresh index from every record in the given families. The
// index is written to a sibling temp directory and renamed into place so a
// concurrent reader never observes a half-built index.
func Build(outputRoot, indexDir string, families []string) (int, error) {
	tempDir := indexDir + ".tmp"
	if err := os.RemoveAll(tempDir); err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(indexDir), 0o755); err != nil {
		return 0, err
	}

	mapping := bleve.NewIndexMapping()
	index, err := bleve.New(tempDir, mapping)
	if err != nil {
		return 0, fmt.Errorf("create index: %w", err)
	}

	indexed := 0
	batch := index.NewBatch()
	for _, family := range families {
		store := repository.NewStore(outputRoot, family)
		for _, locale := range content.KnownLocales {
			slugsForLocale, err := store.Slugs(locale)
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				index.Close()
				return 0, err
			}
			for _, slug := range slugsForLocale {
				doc, err := store.Get(locale, slug)
				if err != nil {
					index.Close()
					return 0, err
				}
				id := family + "/" + locale + "/" + slug
				if err := batch.Index(id, IndexedDoc{
					Family:   family,
					Locale:   locale,
					Slug:     slug,
					Pathname: doc.Pathname,
					Title:    doc.Title,
					Heading:  doc.Heading,
					Body:     content.FlattenText(doc),
				}); err != nil {
					index.Close()
					return 0, fmt.Errorf("batch %s: %w", id, err)
				}
				indexed++
				if indexed%batchSize == 0 {
					if err := index.Batch(batch); err != nil {
						index.Close()
						return 0, err
					}
					batch = index.NewBatch()
				}
			}
		}
	}
	if batch.Size() > 0 {
		if err := index.Batch(batch); err != nil {
			index.Close()
			return 0, err
		}
	}
	if err := index.Close(); err != nil {
		return 0, err
	}

	version := []byte(strconv.Itoa(IndexSchemaVersion) + "\n")
	if err := os.WriteFile(filepath.Join(tempDir, versionFile), version, 0o644); err != nil {
		return 0, err
	}

	if err := os.RemoveAll(indexDir); err != nil {
		return 0, err
	}
	if err := os.Rename(tempDir, indexDir); err != nil {
		return 0, err
	}
	return indexed, nil
}

// Open opens an existing index, rejecting one whose schema version does not
// match this binary.
func Open(indexDir string) (bleve.Index, error) {
	data, err := os.ReadFile(filepath.Join(indexDir, versionFile))
	if err != nil {
		return nil, fmt.Errorf("index version: %w", err)
	}
	version, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || version != IndexSchemaVersion {
		return nil, fmt.Errorf("index schema version mismatch: have %q, want %d", string(data), IndexSchemaVersion)
	}
	return bleve.Open(indexDir)
}

// Search runs a relevance-ranked query against an open index.
func Search(index bleve.Index, query string, limit int) ([]Result, error) {
	if limit <= 0 || limit > 20 {
		limit = 10
	}
	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = limit
	req.Fields = []string{"*"}

	res, err := index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	results := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		doc := IndexedDoc{}
		if v, ok := hit.Fields["family"].(string); ok {
			doc.Family = v
		}
		if v, ok := hit.Fields["locale"].(string); ok {
			doc.Locale = v
		}
		if v, ok := hit.Fields["slug"].(string); ok {
			doc.Slug = v
		}
		if v, ok := hit.Fields["pathname"].(string); ok {
			doc.Pathname = v
		}
		if v, ok := hit.Fields["title"].(string); ok {
			doc.Title = v
		}
		if v, ok := hit.Fields["heading"].(string); ok {
			doc.Heading = v
		}
		if v, ok := hit.Fields["body"].(string); ok {
			doc.Body = v
		}
		results = append(results, Result{Doc: doc, Score: hit.Score})
	}
	return results, nil
}
