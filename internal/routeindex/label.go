package routeindex

import "strings"

// brandLabel is the display title for the site's own landing routes.
const brandLabel = "Immigrate to Brazil"

func normalizeText(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func titleCase(value string) string {
	words := strings.Fields(value)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// labelFromSegment derives a human label from one slug segment when the
// source document carried no usable title.
func labelFromSegment(segment string) string {
	clean := strings.ToLower(segment)

	if clean == "immigratetobrazil-index" || clean == "immigratetobrazil" {
		return brandLabel
	}
	if rest, ok := strings.CutPrefix(clean, "immigrate-to-"); ok {
		rest = strings.TrimSuffix(rest, "-index")
		return "Immigrate to " + titleCase(strings.ReplaceAll(rest, "-", " "))
	}

	for _, prefix := range []string{"about-", "blog-", "contact-", "faq-"} {
		if rest, ok := strings.CutPrefix(clean, prefix); ok {
			clean = rest
			break
		}
	}
	clean = strings.TrimSuffix(clean, "-index")
	return titleCase(strings.ReplaceAll(clean, "-", " "))
}

// Title returns the display title for an entry: its normalized document
// title when present, else a label derived from its last slug segment.
func Title(entry Entry) string {
	if normalized := normalizeText(entry.Title); normalized != "" {
		return normalized
	}
	segments := strings.Split(entry.Slug, "/")
	last := segments[len(segments)-1]
	if last == "" {
		last = entry.Slug
	}
	return labelFromSegment(last)
}
