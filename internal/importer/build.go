package importer

import (
	"strings"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/extract"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/slugs"
)

// defaultOwner and defaultReviewEveryDays stamp every imported record for
// the editorial auditors.
const (
	defaultOwner           = "content-team"
	defaultReviewEveryDays = 90
)

// buildDocument extracts one planned source file and assembles the stored
// record for its family.
func buildDocument(opts Options, doc plannedDoc) (*content.Document, bool, error) {
	page, err := extract.ParseFile(doc.absPath, doc.sourcePath)
	if err != nil {
		return nil, false, err
	}

	record := &content.Document{
		Locale:             doc.locale,
		Slug:               doc.slug,
		Pathname:           pathnameFor(doc.family, doc.slug),
		SourcePath:         doc.sourcePath,
		Title:              page.Title,
		Description:        page.Description,
		Heading:            page.Heading,
		HeroIntro:          page.HeroIntro,
		HeroImage:          page.HeroImage,
		HeroImageAlt:       page.HeroImageAlt,
		SourceUpdatedLabel: page.SourceUpdatedLabel,
		TableOfContents:    page.TableOfContents,
		Sections:           page.Sections,
		Faq:                page.Faq,
		Owner:              defaultOwner,
		Status:             content.StatusPublished,
		LastReviewedAt:     opts.ReviewDate,
		ReviewEveryDays:    defaultReviewEveryDays,
	}

	// Key-point bullets belong to informational pages; discover and guide
	// records surface list content through their sections instead.
	if doc.family == FamilyPages {
		record.Bullets = page.Bullets
	}

	switch doc.family {
	case FamilyDiscover:
		record.Taxonomy = slugs.Classify(doc.slug)
		subject := subjectFromTitle(record.Heading, doc.slug)
		record.Cta = &content.Cta{
			Title:          "Plan your move to " + subject,
			Description:    "Get a tailored relocation roadmap for " + subject + ", including immigration planning, document sequencing, and practical first-month setup steps.",
			PrimaryLabel:   "Book a consultation",
			PrimaryHref:    "/visa-consultation",
			SecondaryLabel: "Contact our team",
			SecondaryHref:  "/contact",
		}
		record.Seo = &content.Seo{
			MetaTitle:       record.Heading + " | Immigrate to Brazil",
			MetaDescription: record.Description,
			Keywords: []string{
				record.Heading,
				strings.ReplaceAll(doc.slug, "/", " "),
				"Brazil discover guide",
				"Brazil relocation",
				"Brazil immigration",
			},
		}
	case FamilyGuides:
		if strings.HasPrefix(doc.slug, "everything-you-need-to-know-about-") {
			record.Taxonomy = slugs.ClassifyManaged(doc.slug)
		} else {
			// A blog address that did not resolve to a known entity keeps
			// its own slug and a neutral classification.
			record.Taxonomy = content.Taxonomy{
				Type:     "other",
				Depth:    len(strings.Split(doc.slug, "/")),
				Segments: strings.Split(doc.slug, "/"),
			}
		}
	default:
		record.Taxonomy = slugs.ClassifyManaged(doc.slug)
	}

	if record.Title == "" {
		record.Title = record.Heading
	}
	if record.Heading == "" {
		record.Heading = record.Title
	}

	// A source with no extractable sections still persists, but as a draft
	// so it never renders unreviewed.
	if len(record.Sections) == 0 {
		record.Status = content.StatusDraft
	}

	lowConfidence := page.LowConfidence || len(record.Sections) == 0
	return record, lowConfidence, nil
}

func pathnameFor(family, slug string) string {
	switch family {
	case FamilyDiscover:
		if slug == "" {
			return "/discover"
		}
		return "/discover/" + slug
	case FamilyGuides:
		return "/state-guides/" + slug
	default:
		return "/" + slug
	}
}

// subjectFromTitle strips the brand suffix or prefix off a page heading to
// get the plain place name, falling back to the last slug segment.
func subjectFromTitle(title, slug string) string {
	cleaned := title
	for _, sep := range []string{" - ", " | ", ": "} {
		if before, _, found := strings.Cut(cleaned, sep+"Immigrate to Brazil"); found {
			cleaned = before
		}
	}
	cleaned = strings.TrimPrefix(cleaned, "Immigrate to Brazil | ")
	cleaned = strings.TrimPrefix(cleaned, "Immigrate to Brazil: ")
	cleaned = strings.TrimPrefix(cleaned, "Immigrate to Brazil - ")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned != "" {
		return cleaned
	}

	segments := strings.Split(slug, "/")
	last := segments[len(segments)-1]
	if last == "" {
		return "Brazil destination"
	}
	words := strings.Fields(strings.ReplaceAll(last, "-", " "))
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
