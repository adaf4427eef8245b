// Package extract converts one raw legacy markup document into the
// structured intermediate representation the import pipeline persists. It is
// a tokenizing DOM walk, not pattern substitution: malformed input degrades
// through documented fallbacks and never fails extraction outright.
package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
)

// descriptionCap bounds the derived meta description length.
const descriptionCap = 170

// explicitTOCMin is the minimum resolvable entries an authored
// table-of-contents block must yield before it is preferred over the derived
// per-section one.
const explicitTOCMin = 5

// Page is the pre-locale-merge extraction result for one source document.
type Page struct {
	SourcePath         string
	Title              string
	Description        string
	Heading            string
	HeroIntro          string
	HeroImage          string
	HeroImageAlt       string
	SourceUpdatedLabel string
	TableOfContents    []content.TOCEntry
	Sections           []content.Section
	Bullets            []string
	Faq                []content.FaqItem

	// LowConfidence marks documents where no heading-delimited sections were
	// found and the chunked-paragraph fallback fired.
	LowConfidence bool
}

// ParseFile extracts the file at path. An unreadable file is the only hard
// failure; it is reported so the import run can log and exclude the document.
func ParseFile(path, sourcePath string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("source unavailable: %s: %w", sourcePath, err)
	}
	defer f.Close()
	return Parse(f, sourcePath)
}

// Parse extracts one raw markup document read from r.
func Parse(r io.Reader, sourcePath string) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("source unavailable: %s: %w", sourcePath, err)
	}

	page := &Page{SourcePath: sourcePath}
	page.Title = documentTitle(doc)
	page.Description = metaDescription(doc)

	prune(doc)
	region := contentRegion(doc)

	page.Heading = firstHeadingText(region)
	if page.Heading == "" {
		page.Heading = page.Title
	}

	page.HeroImage, page.HeroImageAlt = heroImage(region)
	if page.HeroImage != "" && page.HeroImageAlt == "" {
		page.HeroImageAlt = page.Heading
	}

	page.HeroIntro = heroIntro(region)
	if page.HeroIntro == "" {
		page.HeroIntro = page.Description
	}

	page.SourceUpdatedLabel = sourceUpdatedLabel(region)

	page.Sections, page.Faq, page.LowConfidence = buildSections(region)
	page.Bullets = documentBullets(region)
	page.TableOfContents = tableOfContents(region, page.Sections)

	if page.Description == "" {
		fallback := page.HeroIntro
		if fallback == "" && len(page.Sections) > 0 {
			fallback = page.Sections[0].Summary
		}
		if fallback == "" {
			fallback = page.Heading
		}
		page.Description = fallback
	}
	page.Description = TrimToSentence(page.Description, descriptionCap)

	return page, nil
}

func firstHeadingText(region *html.Node) string {
	h1 := findFirst(region, func(n *html.Node) bool { return isElement(n, "h1") })
	if h1 == nil {
		return ""
	}
	return textOf(h1)
}

// heroImage finds the first image that carries both a source and an
// accessible-text attribute, normalizing legacy asset addresses.
func heroImage(region *html.Node) (src, alt string) {
	img := findFirst(region, func(n *html.Node) bool {
		return isElement(n, "img") && attr(n, "src") != "" && hasAttr(n, "alt")
	})
	if img == nil {
		return "", ""
	}
	return NormalizeImageAddress(attr(img, "src")), collapse(attr(img, "alt"))
}

// NormalizeImageAddress rewrites legacy static-asset paths into the new
// namespace: /assets/ and assets/ move under /legacy-assets/, absolute and
// protocol-relative addresses pass through, everything else becomes
// site-root-relative.
func NormalizeImageAddress(src string) string {
	switch {
	case src == "":
		return ""
	case strings.HasPrefix(src, "/assets/"):
		return "/legacy-assets/" + strings.TrimPrefix(src, "/assets/")
	case strings.HasPrefix(src, "assets/"):
		return "/legacy-assets/" + strings.TrimPrefix(src, "assets/")
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"), strings.HasPrefix(src, "//"):
		return src
	case strings.HasPrefix(src, "/"):
		return src
	default:
		return "/" + src
	}
}

// heroIntro takes the first paragraph of the content region that is not part
// of the page heading.
func heroIntro(region *html.Node) string {
	p := findFirst(region, func(n *html.Node) bool { return isElement(n, "p") })
	if p == nil {
		return ""
	}
	return textOf(p)
}

// sourceUpdatedLabel reads the legacy blog-meta byline when present.
func sourceUpdatedLabel(region *html.Node) string {
	div := findFirst(region, func(n *html.Node) bool {
		if !isElement(n, "div") {
			return false
		}
		for _, token := range classTokens(n) {
			if token == "blog-meta" {
				return true
			}
		}
		return false
	})
	if div == nil {
		return ""
	}
	return textOf(div)
}

// documentBullets collects the de-duplicated union of all list items across
// the document, the key-point digest for the informational page family.
func documentBullets(region *html.Node) []string {
	var items []string
	for _, li := range findAllDeep(region, func(n *html.Node) bool { return isElement(n, "li") }) {
		if text := textOf(li); len(text) >= 3 {
			items = append(items, text)
		}
	}
	return dedupePreservingOrder(items, 0)
}

// tableOfContents prefers an authored in-page navigation block when it
// resolves at least explicitTOCMin entries against the extracted sections,
// otherwise derives one entry per section in document order.
func tableOfContents(region *html.Node, sections []content.Section) []content.TOCEntry {
	ids := make(map[string]struct{}, len(sections))
	for _, section := range sections {
		ids[section.ID] = struct{}{}
	}

	if explicit := explicitTOC(region, ids); len(explicit) >= explicitTOCMin {
		return explicit
	}

	derived := make([]content.TOCEntry, 0, len(sections))
	for _, section := range sections {
		derived = append(derived, content.TOCEntry{ID: section.ID, Label: section.Heading})
	}
	return derived
}

func explicitTOC(region *html.Node, sectionIDs map[string]struct{}) []content.TOCEntry {
	nav := findFirst(region, func(n *html.Node) bool {
		if isElement(n, "nav") {
			return true
		}
		for _, token := range classTokens(n) {
			if token == "toc" || token == "table-of-contents" {
				return true
			}
		}
		return false
	})
	if nav == nil {
		return nil
	}

	var entries []content.TOCEntry
	seen := make(map[string]struct{})
	for _, a := range findAllDeep(nav, func(n *html.Node) bool { return isElement(n, "a") }) {
		href := attr(a, "href")
		if !strings.HasPrefix(href, "#") {
			continue
		}
		id := strings.TrimPrefix(href, "#")
		if _, resolvable := sectionIDs[id]; !resolvable {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		label := textOf(a)
		if label == "" {
			continue
		}
		seen[id] = struct{}{}
		entries = append(entries, content.TOCEntry{ID: id, Label: label})
	}
	return entries
}

// Metadata reads only the document title and meta description, for the route
// index scan where full extraction is not needed.
func Metadata(r io.Reader) (title, description string, err error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", "", err
	}
	return documentTitle(doc), metaDescription(doc), nil
}
