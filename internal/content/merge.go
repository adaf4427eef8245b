package content

import "strings"

// Override is a sparse locale-specific partial document. Only populated
// fields supersede the canonical-locale base; empty scalars and empty arrays
// keep the base value. Arrays are replaced wholesale, never merged
// element-wise, so a half-translated section list can never interleave with
// the base.
type Override struct {
	Slug               string     `json:"slug"`
	Title              string     `json:"title,omitempty"`
	Description        string     `json:"description,omitempty"`
	Heading            string     `json:"heading,omitempty"`
	HeroIntro          string     `json:"heroIntro,omitempty"`
	HeroImage          string     `json:"heroImage,omitempty"`
	HeroImageAlt       string     `json:"heroImageAlt,omitempty"`
	SourceUpdatedLabel string     `json:"sourceUpdatedLabel,omitempty"`
	TableOfContents    []TOCEntry `json:"tableOfContents,omitempty"`
	Sections           []Section  `json:"sections,omitempty"`
	Bullets            []string   `json:"bullets,omitempty"`
	Faq                []FaqItem  `json:"faq,omitempty"`
	Cta                *CtaPatch  `json:"cta,omitempty"`
	Seo                *SeoPatch  `json:"seo,omitempty"`
	Owner              string     `json:"owner,omitempty"`
	Status             string     `json:"status,omitempty"`
	LastReviewedAt     string     `json:"lastReviewedAt,omitempty"`
	ReviewEveryDays    int        `json:"reviewEveryDays,omitempty"`
}

// CtaPatch overrides individual call-to-action fields.
type CtaPatch struct {
	Title          string `json:"title,omitempty"`
	Description    string `json:"description,omitempty"`
	PrimaryLabel   string `json:"primaryLabel,omitempty"`
	PrimaryHref    string `json:"primaryHref,omitempty"`
	SecondaryLabel string `json:"secondaryLabel,omitempty"`
	SecondaryHref  string `json:"secondaryHref,omitempty"`
}

// SeoPatch overrides individual SEO metadata fields.
type SeoPatch struct {
	MetaTitle       string   `json:"metaTitle,omitempty"`
	MetaDescription string   `json:"metaDescription,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
}

func nonEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}

func pick(override, base string) string {
	if nonEmpty(override) {
		return override
	}
	return base
}

func mergeCta(base *Cta, patch *CtaPatch) *Cta {
	if patch == nil {
		return base
	}
	merged := Cta{}
	if base != nil {
		merged = *base
	}
	merged.Title = pick(patch.Title, merged.Title)
	merged.Description = pick(patch.Description, merged.Description)
	merged.PrimaryLabel = pick(patch.PrimaryLabel, merged.PrimaryLabel)
	merged.PrimaryHref = pick(patch.PrimaryHref, merged.PrimaryHref)
	merged.SecondaryLabel = pick(patch.SecondaryLabel, merged.SecondaryLabel)
	merged.SecondaryHref = pick(patch.SecondaryHref, merged.SecondaryHref)
	return &merged
}

func mergeSeo(base *Seo, patch *SeoPatch) *Seo {
	if patch == nil {
		return base
	}
	merged := Seo{}
	if base != nil {
		merged = *base
	}
	merged.MetaTitle = pick(patch.MetaTitle, merged.MetaTitle)
	merged.MetaDescription = pick(patch.MetaDescription, merged.MetaDescription)
	if len(patch.Keywords) > 0 {
		merged.Keywords = patch.Keywords
	}
	return &merged
}

// Merge applies a locale override onto a canonical-locale base document and
// returns the merged copy. The function is pure: neither argument is
// modified, and identical inputs always produce identical output. A nil
// override returns the base unchanged.
func Merge(base Document, override *Override) Document {
	if override == nil {
		return base
	}

	merged := base
	merged.Title = pick(override.Title, base.Title)
	merged.Description = pick(override.Description, base.Description)
	merged.Heading = pick(override.Heading, base.Heading)
	merged.HeroIntro = pick(override.HeroIntro, base.HeroIntro)
	merged.HeroImage = pick(override.HeroImage, base.HeroImage)
	merged.HeroImageAlt = pick(override.HeroImageAlt, base.HeroImageAlt)
	merged.SourceUpdatedLabel = pick(override.SourceUpdatedLabel, base.SourceUpdatedLabel)
	merged.Owner = pick(override.Owner, base.Owner)
	merged.LastReviewedAt = pick(override.LastReviewedAt, base.LastReviewedAt)

	if override.Status == string(StatusDraft) || override.Status == string(StatusPublished) {
		merged.Status = Status(override.Status)
	}
	if override.ReviewEveryDays > 0 {
		merged.ReviewEveryDays = override.ReviewEveryDays
	}

	if len(override.TableOfContents) > 0 {
		merged.TableOfContents = override.TableOfContents
	}
	if len(override.Sections) > 0 {
		merged.Sections = override.Sections
	}
	if len(override.Bullets) > 0 {
		merged.Bullets = override.Bullets
	}
	if len(override.Faq) > 0 {
		merged.Faq = override.Faq
	}

	merged.Cta = mergeCta(base.Cta, override.Cta)
	merged.Seo = mergeSeo(base.Seo, override.Seo)

	return merged
}
