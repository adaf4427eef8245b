// Package content defines the structured document model produced by the
// legacy migration and consumed by the read surface. Documents are stored as
// one JSON artifact per (locale, slug) and merged with sparse locale
// overrides at read time.
package content

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultLocale is the canonical authoring locale. Records missing in another
// locale silently fall back to it.
const DefaultLocale = "en"

// KnownLocales are the locales the repository accepts.
var KnownLocales = []string{"en", "es", "pt", "fr"}

// IsKnownLocale reports whether the repository tracks the given locale.
func IsKnownLocale(locale string) bool {
	for _, l := range KnownLocales {
		if l == locale {
			return true
		}
	}
	return false
}

// Status is the editorial lifecycle state of a document.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// TOCEntry references a section by id in reading order.
type TOCEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// FaqItem is one collapsible question/answer pair.
type FaqItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Section is one heading-delimited span of the document.
type Section struct {
	ID         string   `json:"id"`
	Heading    string   `json:"heading"`
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Blocks     []Block  `json:"blocks"`
}

// Cta is the call-to-action card rendered at the end of a page.
type Cta struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	PrimaryLabel   string `json:"primaryLabel"`
	PrimaryHref    string `json:"primaryHref"`
	SecondaryLabel string `json:"secondaryLabel"`
	SecondaryHref  string `json:"secondaryHref"`
}

// Seo carries page metadata for the rendering layer.
type Seo struct {
	MetaTitle       string   `json:"metaTitle"`
	MetaDescription string   `json:"metaDescription"`
	Keywords        []string `json:"keywords"`
}

// Taxonomy classifies a document by the shape of its address.
type Taxonomy struct {
	Type     string   `json:"type"`
	Depth    int      `json:"depth"`
	Segments []string `json:"segments"`
}

// Document is the canonical unit of migrated content. SourcePath is immutable
// provenance; Slug is the stable identifier, unique within a locale family.
type Document struct {
	Locale             string     `json:"locale"`
	Slug               string     `json:"slug"`
	Pathname           string     `json:"pathname"`
	SourcePath         string     `json:"sourcePath"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Heading            string     `json:"heading"`
	HeroIntro          string     `json:"heroIntro,omitempty"`
	HeroImage          string     `json:"heroImage,omitempty"`
	HeroImageAlt       string     `json:"heroImageAlt,omitempty"`
	SourceUpdatedLabel string     `json:"sourceUpdatedLabel,omitempty"`
	TableOfContents    []TOCEntry `json:"tableOfContents,omitempty"`
	Sections           []Section  `json:"sections"`
	Bullets            []string   `json:"bullets,omitempty"`
	Faq                []FaqItem  `json:"faq,omitempty"`
	Cta                *Cta       `json:"cta,omitempty"`
	Seo                *Seo       `json:"seo,omitempty"`
	Taxonomy           Taxonomy   `json:"taxonomy"`
	Owner              string     `json:"owner"`
	Status             Status     `json:"status"`
	LastReviewedAt     string     `json:"lastReviewedAt"`
	ReviewEveryDays    int        `json:"reviewEveryDays"`
}

// Validate checks the structural invariants every persisted document must
// hold: unique section ids, table of contents referencing only existing
// sections, and published documents carrying a title, heading, and at least
// one section.
func (d *Document) Validate() error {
	seen := make(map[string]struct{}, len(d.Sections))
	for _, section := range d.Sections {
		if section.ID == "" {
			return fmt.Errorf("document %q: section with empty id", d.Slug)
		}
		if _, dup := seen[section.ID]; dup {
			return fmt.Errorf("document %q: duplicate section id %q", d.Slug, section.ID)
		}
		seen[section.ID] = struct{}{}
		for i, block := range section.Blocks {
			if err := block.Validate(); err != nil {
				return fmt.Errorf("document %q: section %q block %d: %w", d.Slug, section.ID, i, err)
			}
		}
	}

	for _, entry := range d.TableOfContents {
		if _, ok := seen[entry.ID]; !ok {
			return fmt.Errorf("document %q: table of contents references unknown section %q", d.Slug, entry.ID)
		}
	}

	if d.Status == StatusPublished {
		if strings.TrimSpace(d.Title) == "" {
			return fmt.Errorf("published document %q: empty title", d.Slug)
		}
		if strings.TrimSpace(d.Heading) == "" {
			return fmt.Errorf("published document %q: empty heading", d.Slug)
		}
		if len(d.Sections) == 0 {
			return fmt.Errorf("published document %q: no sections", d.Slug)
		}
	}

	if d.ReviewEveryDays < 0 {
		return fmt.Errorf("document %q: negative reviewEveryDays", d.Slug)
	}

	return nil
}

// SectionIDs returns the sorted set of section ids, mainly for tests and
// audit reporting.
func (d *Document) SectionIDs() []string {
	ids := make([]string, 0, len(d.Sections))
	for _, section := range d.Sections {
		ids = append(ids, section.ID)
	}
	sort.Strings(ids)
	return ids
}
