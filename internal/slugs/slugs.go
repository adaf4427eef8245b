// Package slugs derives canonical identifiers and taxonomy classifications
// from legacy physical addresses, and resolves the historical address-shape
// variants that must collapse onto one record.
package slugs

import (
	"strings"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
)

// localePrefixes are source-tree locale directories stripped during slug
// derivation. The canonical locale has no prefix.
var localePrefixes = map[string]string{
	"es": "es",
	"pt": "pt",
	"fr": "fr",
}

// FromSourcePath derives (locale, slug) from a legacy source-tree path.
// A recognized leading locale segment is stripped and reported; a trailing
// index marker and the markup extension are stripped; the remainder is
// normalized to lowercase hyphenated segments.
func FromSourcePath(sourcePath string) (locale, slug string) {
	normalized := strings.ReplaceAll(sourcePath, "\\", "/")
	normalized = strings.Trim(normalized, "/")

	locale = content.DefaultLocale
	if first, rest, found := strings.Cut(normalized, "/"); found {
		if known, ok := localePrefixes[first]; ok {
			locale = known
			normalized = rest
		}
	}

	if strings.HasSuffix(normalized, "/index.html") {
		normalized = strings.TrimSuffix(normalized, "/index.html")
	} else if normalized == "index.html" {
		normalized = ""
	} else {
		normalized = strings.TrimSuffix(normalized, ".html")
	}

	return locale, Normalize(normalized)
}

// Normalize lowercases a slug and drops empty segments.
func Normalize(slug string) string {
	segments := strings.Split(strings.ToLower(strings.TrimSpace(slug)), "/")
	kept := segments[:0]
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment != "" {
			kept = append(kept, segment)
		}
	}
	return strings.Join(kept, "/")
}

// managedPrefixes are top-level families handled by the managed-page import.
var managedPrefixes = []string{
	"about",
	"faq",
	"policies",
	"services",
	"contact",
	"home",
	"resources-guides-brazil",
	"accessibility",
	"blog",
	"consultation",
}

// IsManaged reports whether slug belongs to one of the managed page families.
func IsManaged(slug string) bool {
	for _, prefix := range managedPrefixes {
		if slug == prefix || strings.HasPrefix(slug, prefix+"/") {
			return true
		}
	}
	return false
}

// Classify assigns a taxonomy to a discover-tree slug relative to the
// discover root. The empty slug is the root itself.
func Classify(slug string) content.Taxonomy {
	var segments []string
	if slug != "" {
		segments = strings.Split(slug, "/")
	}

	typ := "other"
	switch {
	case len(segments) == 0:
		typ = "discover-root"
	case segments[0] == "brazilian-states":
		switch len(segments) {
		case 1:
			typ = "states-hub"
		case 2:
			typ = "state-overview"
		default:
			typ = "state-subpage"
		}
	case segments[0] == "brazilian-regions":
		switch len(segments) {
		case 1:
			typ = "regions-hub"
		case 2:
			typ = "region-overview"
		case 3:
			typ = "region-state-overview"
		default:
			typ = "region-city"
		}
	}

	return content.Taxonomy{Type: typ, Depth: len(segments), Segments: segments}
}

// ClassifyManaged assigns a taxonomy to a managed or guide family slug.
// Managed slugs are typed by their leading family segment; state guide slugs
// get their own family; everything else is other.
func ClassifyManaged(slug string) content.Taxonomy {
	var segments []string
	if slug != "" {
		segments = strings.Split(slug, "/")
	}

	typ := "other"
	switch {
	case len(segments) == 0:
	case strings.HasPrefix(slug, "everything-you-need-to-know-about-"):
		typ = "state-guide"
	default:
		for _, prefix := range managedPrefixes {
			if segments[0] == prefix {
				typ = prefix
				break
			}
		}
	}

	return content.Taxonomy{Type: typ, Depth: len(segments), Segments: segments}
}
