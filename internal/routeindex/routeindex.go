// Package routeindex builds and queries the flat route catalog generated by
// scanning the legacy source corpus. The index is an immutable in-memory
// slice once loaded; every query is a pure function over it.
package routeindex

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/repository"
)

// Entry is one route discovered in the source corpus.
type Entry struct {
	Locale      string `json:"locale"`
	Slug        string `json:"slug"`
	SourcePath  string `json:"sourcePath"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// RouteLink is the outward shape queries return.
type RouteLink struct {
	Slug        string `json:"slug"`
	Href        string `json:"href"`
	Title       string `json:"title"`
	Description string `json:"description"`
	SourcePath  string `json:"sourcePath"`
}

// Group buckets routes under one immediate child segment of a prefix.
type Group struct {
	Key    string      `json:"key"`
	Label  string      `json:"label"`
	Count  int         `json:"count"`
	Href   string      `json:"href"`
	Sample []RouteLink `json:"sample"`
}

// Index is the loaded catalog. Entries are sorted by locale then slug and
// never mutated after construction.
type Index struct {
	entries  []Entry
	byLocale map[string][]Entry
}

// New builds an Index over entries, sorting and bucketing them by locale.
// Entries with an unknown locale are dropped.
func New(entries []Entry) *Index {
	kept := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		known := false
		for _, locale := range content.KnownLocales {
			if entry.Locale == locale {
				known = true
				break
			}
		}
		if known {
			kept = append(kept, entry)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].Locale != kept[j].Locale {
			return kept[i].Locale < kept[j].Locale
		}
		return kept[i].Slug < kept[j].Slug
	})

	byLocale := make(map[string][]Entry)
	for _, entry := range kept {
		byLocale[entry.Locale] = append(byLocale[entry.Locale], entry)
	}
	return &Index{entries: kept, byLocale: byLocale}
}

// Load reads a generated catalog file.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("route index: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("route index %s: %w", path, err)
	}
	return New(entries), nil
}

// Save writes the catalog as a deterministic artifact.
func (idx *Index) Save(path string) error {
	return repository.WriteJSON(path, idx.entries)
}

// Entries returns the full sorted catalog.
func (idx *Index) Entries() []Entry { return idx.entries }

// Locale returns the sorted entries for one locale.
func (idx *Index) Locale(locale string) []Entry { return idx.byLocale[locale] }

func trimSlashes(s string) string { return strings.Trim(s, "/") }

func toHref(locale, slug string) string {
	if slug == "" {
		return "/" + locale
	}
	return "/" + locale + "/" + slug
}

func toLink(locale string, entry Entry) RouteLink {
	return RouteLink{
		Slug:        entry.Slug,
		Href:        toHref(locale, entry.Slug),
		Title:       Title(entry),
		Description: normalizeText(entry.Description),
		SourcePath:  entry.SourcePath,
	}
}

func matchesPrefix(slug, prefix string, includeExact bool) bool {
	if prefix == "" {
		return true
	}
	if includeExact && slug == prefix {
		return true
	}
	return strings.HasPrefix(slug, prefix+"/")
}

// CountByPrefix counts the locale's routes under prefix.
func (idx *Index) CountByPrefix(locale, prefix string, includeExact bool) int {
	prefix = trimSlashes(prefix)
	count := 0
	for _, entry := range idx.byLocale[locale] {
		if matchesPrefix(entry.Slug, prefix, includeExact) {
			count++
		}
	}
	return count
}

// LinksByPrefix returns up to limit routes under prefix, sorted by slug.
func (idx *Index) LinksByPrefix(locale, prefix string, limit int, includeExact bool) []RouteLink {
	prefix = trimSlashes(prefix)
	var links []RouteLink
	for _, entry := range idx.byLocale[locale] {
		if !matchesPrefix(entry.Slug, prefix, includeExact) {
			continue
		}
		links = append(links, toLink(locale, entry))
		if limit > 0 && len(links) == limit {
			break
		}
	}
	return links
}

// GroupByPrefix buckets routes strictly below prefix by their immediate
// child segment. Groups are ordered by count descending then label
// ascending; each carries a capped sample in slug order.
func (idx *Index) GroupByPrefix(locale, prefix string, maxGroups, sampleSize int) []Group {
	prefix = trimSlashes(prefix)

	grouped := make(map[string][]Entry)
	var order []string
	for _, entry := range idx.byLocale[locale] {
		if !strings.HasPrefix(entry.Slug, prefix+"/") {
			continue
		}
		remainder := entry.Slug[len(prefix)+1:]
		if remainder == "" {
			continue
		}
		key := strings.SplitN(remainder, "/", 2)[0]
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], entry)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		entries := grouped[key]

		// Prefer the group's own landing route as its link target.
		first := entries[0]
		for _, entry := range entries {
			if entry.Slug[len(prefix)+1:] == key {
				first = entry
				break
			}
		}

		sample := make([]RouteLink, 0, sampleSize)
		for _, entry := range entries {
			if sampleSize > 0 && len(sample) == sampleSize {
				break
			}
			sample = append(sample, toLink(locale, entry))
		}

		groups = append(groups, Group{
			Key:    key,
			Label:  labelFromSegment(key),
			Count:  len(entries),
			Href:   toHref(locale, first.Slug),
			Sample: sample,
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Label < groups[j].Label
	})
	if maxGroups > 0 && len(groups) > maxGroups {
		groups = groups[:maxGroups]
	}
	return groups
}

// relatedSiblingMax bounds how large a sibling set can be before a shorter
// prefix is tried instead; huge sets make poor related-link blocks.
const relatedSiblingMax = 120

// RelatedLinks walks successively shorter path prefixes of slug looking for
// a usable sibling set, falling back to the top-level segment and finally to
// an arbitrary slice of all other routes.
func (idx *Index) RelatedLinks(locale, slug string, limit int) []RouteLink {
	routes := idx.byLocale[locale]
	current := trimSlashes(slug)
	segments := strings.Split(current, "/")

	var candidates []string
	for depth := len(segments) - 1; depth >= 1; depth-- {
		candidates = append(candidates, strings.Join(segments[:depth], "/"))
	}
	if len(segments) > 0 && segments[0] != "" {
		candidates = append(candidates, segments[0])
	}

	var related []Entry
	for _, prefix := range candidates {
		var siblings []Entry
		for _, entry := range routes {
			if entry.Slug != current && strings.HasPrefix(entry.Slug, prefix+"/") {
				siblings = append(siblings, entry)
			}
		}
		if len(siblings) >= 1 && len(siblings) <= relatedSiblingMax {
			related = siblings
			break
		}
	}

	if len(related) == 0 {
		for _, entry := range routes {
			if entry.Slug == current {
				continue
			}
			related = append(related, entry)
			if limit > 0 && len(related) == limit {
				break
			}
		}
	}

	sort.Slice(related, func(i, j int) bool { return related[i].Slug < related[j].Slug })
	if limit > 0 && len(related) > limit {
		related = related[:limit]
	}
	links := make([]RouteLink, 0, len(related))
	for _, entry := range related {
		links = append(links, toLink(locale, entry))
	}
	return links
}

// Search scores routes against a case-insensitive query: exact title beats
// exact slug beats title prefix beats slug prefix beats title substring
// beats slug substring. Ties break on title order.
func (idx *Index) Search(locale, query string, limit int) []RouteLink {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	type scored struct {
		entry Entry
		title string
		score int
	}
	var matches []scored
	for _, entry := range idx.byLocale[locale] {
		title := Title(entry)
		lowerTitle := strings.ToLower(title)
		lowerSlug := strings.ToLower(entry.Slug)
		if !strings.Contains(lowerTitle, query) && !strings.Contains(lowerSlug, query) {
			continue
		}
		score := 0
		if lowerTitle == query {
			score += 120
		}
		if lowerSlug == query {
			score += 110
		}
		if strings.HasPrefix(lowerTitle, query) {
			score += 80
		}
		if strings.HasPrefix(lowerSlug, query) {
			score += 70
		}
		if strings.Contains(lowerTitle, query) {
			score += 30
		}
		if strings.Contains(lowerSlug, query) {
			score += 20
		}
		matches = append(matches, scored{entry: entry, title: title, score: score})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].title < matches[j].title
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	links := make([]RouteLink, 0, len(matches))
	for _, m := range matches {
		links = append(links, toLink(locale, m.entry))
	}
	return links
}
