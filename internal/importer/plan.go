package importer

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/slugs"
)

// plannedDoc is one (family, locale, canonical slug) record to be extracted
// and written. The plan holds at most one entry per key.
type plannedDoc struct {
	family     string
	locale     string
	slug       string
	sourcePath string
	absPath    string
}

type importPlan struct {
	docs     []plannedDoc
	resolver *slugs.Resolver
}

// scannedSkipDirs mirrors the route scanner's exclusions so both passes see
// the same corpus.
var scannedSkipDirs = map[string]struct{}{
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

var scannedSkipPrefixes = []string{"partials/", "scripts/", "documentation/"}

// buildPlan enumerates the corpus in lexicographic order and routes every
// source file to its family, registering aliases as it goes. This pass is
// single-threaded so first-registered-wins is reproducible.
func buildPlan(opts Options) (*importPlan, error) {
	paths, err := corpusPaths(opts.SourceRoot)
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	wanted := make(map[string]struct{}, len(opts.Families))
	for _, family := range opts.Families {
		wanted[family] = struct{}{}
	}

	plan := &importPlan{resolver: slugs.NewResolver()}
	claimed := make(map[string]struct{})

	for _, sourcePath := range paths {
		locale, slug := slugs.FromSourcePath(sourcePath)
		family := familyForSlug(slug)
		if family == "" {
			continue
		}
		if _, run := wanted[family]; !run {
			continue
		}

		canonical, _, err := plan.resolver.Register(slug)
		if err != nil {
			return nil, err
		}

		key := family + "\x00" + locale + "\x00" + canonical
		if _, taken := claimed[key]; taken {
			// A later address shape for an already-planned record; its
			// alias is registered and its content discarded.
			continue
		}
		claimed[key] = struct{}{}

		plan.docs = append(plan.docs, plannedDoc{
			family:     family,
			locale:     locale,
			slug:       familySlug(family, canonical),
			sourcePath: sourcePath,
			absPath:    filepath.Join(opts.SourceRoot, filepath.FromSlash(sourcePath)),
		})
	}
	return plan, nil
}

// corpusPaths walks the source root collecting relative markup paths, with
// the standard exclusions.
func corpusPaths(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := scannedSkipDirs[d.Name()]; skip && path != root {
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
		if strings.Contains(rel, ".bak") || strings.Contains(rel, ".backup") {
			return nil
		}
		for _, prefix := range scannedSkipPrefixes {
			if strings.HasPrefix(rel, prefix) {
				return nil
			}
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// familyForSlug routes a canonical-form slug to its import family. Slugs
// outside every family are not imported; they remain reachable through the
// route index only.
func familyForSlug(slug string) string {
	switch {
	case slug == "discover" || strings.HasPrefix(slug, "discover/"):
		return FamilyDiscover
	case strings.HasPrefix(slug, "everything-you-need-to-know-about-"),
		strings.HasPrefix(slug, "blog/blog-"),
		strings.HasPrefix(slug, "blog/everything-you-need-to-know-about-"):
		return FamilyGuides
	case slugs.IsManaged(slug):
		return FamilyPages
	default:
		return ""
	}
}

// familySlug strips the family's address prefix off a canonical slug so the
// repository path is relative to the family root.
func familySlug(family, canonical string) string {
	if family != FamilyDiscover {
		return canonical
	}
	if canonical == "discover" {
		return ""
	}
	return strings.TrimPrefix(canonical, "discover/")
}
