package routeindex

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/extract"
)

// skipDirs are tooling and scratch directories excluded from the corpus
// scan wherever they appear.
var skipDirs = map[string]struct{}{
	".git":           {},
	".next":          {},
	"node_modules":   {},
	"backups":        {},
	".venv":          {},
	".vscode":        {},
	"memory-bank":    {},
	"fixer_scripts":  {},
	"useful_scripts": {},
}

// skipPrefixes exclude shared markup fragments and documentation trees that
// are not routable pages.
var skipPrefixes = []string{"partials/", "scripts/", "documentation/"}

// Scan walks the source corpus under root and builds the route catalog. Per
// the duplicate rule, the first file for a (locale, slug) pair wins. A file
// whose metadata cannot be read still yields a route with empty title.
func Scan(root string) (*Index, error) {
	seen := make(map[string]struct{})
	var entries []Entry

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if !strings.HasSuffix(rel, ".html") {
			return nil
		}
		if strings.HasSuffix(rel, ".bak") || strings.HasSuffix(rel, ".backup") {
			return nil
		}
		for _, prefix := range skipPrefixes {
			if strings.HasPrefix(rel, prefix) {
				return nil
			}
		}

		locale, slug := localeAndSlug(rel)
		if slug == "" || slug == "home" || slug == "home/index" {
			return nil
		}
		if strings.Contains(slug, ".bak") || strings.Contains(slug, ".backup") {
			return nil
		}

		key := locale + ":" + slug
		if _, dup := seen[key]; dup {
			return nil
		}
		seen[key] = struct{}{}

		title, description := readMetadata(path, rel)
		entries = append(entries, Entry{
			Locale:      locale,
			Slug:        slug,
			SourcePath:  rel,
			Title:       title,
			Description: description,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return New(entries), nil
}

// localeAndSlug splits a corpus-relative path into its locale and route
// slug. Files outside a recognized locale directory belong to the canonical
// locale.
func localeAndSlug(rel string) (locale, slug string) {
	locale = content.DefaultLocale
	trimmed := rel
	if first, rest, found := strings.Cut(rel, "/"); found {
		for _, known := range content.KnownLocales {
			if known != content.DefaultLocale && first == known {
				locale = known
				trimmed = rest
				break
			}
		}
	}

	slug = strings.TrimSuffix(trimmed, "/index.html")
	if slug == trimmed {
		slug = strings.TrimSuffix(trimmed, ".html")
	}
	slug = strings.TrimSuffix(slug, "/")
	if slug == "index" {
		slug = ""
	}
	return locale, slug
}

// readMetadata extracts title and description, keeping the route on failure.
func readMetadata(path, rel string) (title, description string) {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("route scan: %s: %v", rel, err)
		return "", ""
	}
	defer f.Close()
	title, description, err = extract.Metadata(f)
	if err != nil {
		log.Printf("route scan: %s: %v", rel, err)
		return "", ""
	}
	return title, description
}
