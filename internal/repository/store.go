// Package repository persists and serves structured documents. The write
// side produces one addressable record per (family, locale, slug) plus one
// manifest per locale; the read side resolves aliases, falls back to the
// canonical locale, and memoizes decoded records for the process lifetime.
package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
)

// ErrNotFound is returned when a slug resolves to no record in the requested
// locale nor in the canonical locale.
var ErrNotFound = errors.New("document not found")

// rootRecordName stores the family root document, whose slug is empty.
const rootRecordName = "__root__"

// manifestName is the per-locale aggregate record written once per import.
const manifestName = "_manifest"

// labelsName is the per-locale navigation-label map written for the discover
// family.
const labelsName = "_labels"

// PageSummary is the per-document row embedded in a manifest.
type PageSummary struct {
	Slug         string           `json:"slug"`
	Pathname     string           `json:"pathname"`
	SourcePath   string           `json:"sourcePath,omitempty"`
	Title        string           `json:"title"`
	Taxonomy     content.Taxonomy `json:"taxonomy"`
	SectionCount int              `json:"sectionCount,omitempty"`
	FaqCount     int              `json:"faqCount,omitempty"`
}

// Manifest aggregates one locale family produced by one import run.
type Manifest struct {
	Locale         string            `json:"locale"`
	GeneratedAt    string            `json:"generatedAt"`
	PageCount      int               `json:"pageCount"`
	CountsByPrefix map[string]int    `json:"countsByPrefix,omitempty"`
	StatsByType    map[string]int    `json:"statsByType,omitempty"`
	Aliases        map[string]string `json:"aliases,omitempty"`
	Pages          []PageSummary     `json:"pages"`
}

// Store is a file-backed document repository rooted at one directory, with
// one subtree per family. A Store is safe for concurrent readers; writes
// happen only during an import run.
type Store struct {
	root   string
	family string
	cache  *documentCache

	manifestMu sync.RWMutex
	manifests  map[string]*Manifest
}

// NewStore opens family under root. No I/O happens until first use.
func NewStore(root, family string) *Store {
	return &Store{
		root:      root,
		family:    family,
		cache:     newDocumentCache(),
		manifests: make(map[string]*Manifest),
	}
}

func (s *Store) Family() string { return s.family }

// validSlug rejects traversal and anything outside the canonical slug
// alphabet before a slug is used as a file path.
func validSlug(slug string) error {
	if slug == "" {
		return nil
	}
	for _, segment := range strings.Split(slug, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return fmt.Errorf("invalid slug %q", slug)
		}
	}
	for _, r := range slug {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '/' {
			return fmt.Errorf("invalid slug %q", slug)
		}
	}
	return nil
}

func (s *Store) recordPath(locale, slug string) string {
	name := slug
	if name == "" {
		name = rootRecordName
	}
	return filepath.Join(s.root, s.family, locale, filepath.FromSlash(name)+".json")
}

func (s *Store) manifestPath(locale string) string {
	return filepath.Join(s.root, s.family, locale, manifestName+".json")
}

// Put persists one record. The artifact is deterministic: stable key order,
// two-space indentation, trailing newline.
func (s *Store) Put(doc *content.Document) error {
	if err := validSlug(doc.Slug); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("put %s/%s: %w", doc.Locale, doc.Slug, err)
	}
	return WriteJSON(s.recordPath(doc.Locale, doc.Slug), doc)
}

// PutManifest persists the per-locale aggregate record with deterministic
// ordering of its embedded tables.
func (s *Store) PutManifest(locale string, m *Manifest) error {
	sort.Slice(m.Pages, func(i, j int) bool { return m.Pages[i].Slug < m.Pages[j].Slug })
	return WriteJSON(s.manifestPath(locale), m)
}

// PutLabels persists the slug-to-label navigation map for locale. The site
// build reads it when rendering hub pages.
func (s *Store) PutLabels(locale string, labels map[string]string) error {
	return WriteJSON(filepath.Join(s.root, s.family, locale, labelsName+".json"), labels)
}

// Manifest loads and caches the aggregate record for locale.
func (s *Store) Manifest(locale string) (*Manifest, error) {
	s.manifestMu.RLock()
	m, ok := s.manifests[locale]
	s.manifestMu.RUnlock()
	if ok {
		return m, nil
	}
	data, err := os.ReadFile(s.manifestPath(locale))
	if err != nil {
		return nil, fmt.Errorf("manifest %s/%s: %w", s.family, locale, err)
	}
	var decoded Manifest
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("manifest %s/%s: %w", s.family, locale, err)
	}
	s.manifestMu.Lock()
	s.manifests[locale] = &decoded
	s.manifestMu.Unlock()
	return &decoded, nil
}

// resolveAlias maps slug through the canonical-locale manifest alias table
// when one is present. A missing manifest leaves the slug unchanged.
func (s *Store) resolveAlias(slug string) string {
	m, err := s.Manifest(content.DefaultLocale)
	if err != nil {
		return slug
	}
	if canonical, ok := m.Aliases[slug]; ok {
		return canonical
	}
	return slug
}

// Get returns the record for (locale, slug), resolving aliases and falling
// back transparently to the canonical locale when the requested locale has
// no record. A miss in both places is ErrNotFound.
func (s *Store) Get(locale, slug string) (*content.Document, error) {
	if err := validSlug(slug); err != nil {
		return nil, err
	}
	if locale == "" {
		locale = content.DefaultLocale
	}
	canonical := s.resolveAlias(slug)

	doc, err := s.load(locale, canonical)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if locale != content.DefaultLocale {
		doc, err = s.load(content.DefaultLocale, canonical)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, s.family, slug)
}

func (s *Store) load(locale, slug string) (*content.Document, error) {
	key := locale + "\x00" + slug
	if doc, ok := s.cache.get(key); ok {
		return doc, nil
	}
	data, err := os.ReadFile(s.recordPath(locale, slug))
	if err != nil {
		return nil, err
	}
	var doc content.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s/%s/%s: %w", s.family, locale, slug, err)
	}
	s.cache.put(key, &doc)
	return &doc, nil
}

// Slugs lists the canonical slugs present for locale, sorted.
func (s *Store) Slugs(locale string) ([]string, error) {
	base := filepath.Join(s.root, s.family, locale)
	var out []string
	err := filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		slug := strings.TrimSuffix(filepath.ToSlash(rel), ".json")
		switch slug {
		case manifestName, labelsName:
			return nil
		case rootRecordName:
			slug = ""
		}
		out = append(out, slug)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// WriteJSON writes value as a deterministic artifact: two-space indentation
// and a trailing newline, parent directories created as needed.
func WriteJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
