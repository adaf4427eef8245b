package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// collapse normalizes all whitespace runs to single spaces and trims.
func collapse(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// Slugify converts heading text to a URL-safe anchor: diacritics stripped,
// lowercased, non-alphanumeric runs collapsed to hyphens, capped at 100
// characters.
func Slugify(value string) string {
	decomposed := norm.NFD.String(value)

	var b strings.Builder
	b.Grow(len(decomposed))
	lastHyphen := true
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if len(slug) > 100 {
		slug = strings.Trim(slug[:100], "-")
	}
	return slug
}

// TrimToSentence shortens free text destined for a metadata or summary role
// to at most max characters, preferring to cut at the last sentence boundary
// once it falls past roughly 40% of the cap, then at the last word boundary,
// appending an ellipsis marker when the cut is mid-sentence.
func TrimToSentence(text string, max int) string {
	if text == "" || max <= 0 {
		return text
	}

	runes := []rune(text)
	if len(runes) <= max {
		return text
	}

	snippet := string(runes[:max])
	sentenceEnd := -1
	for _, marker := range []string{".", "!", "?"} {
		if idx := strings.LastIndex(snippet, marker); idx > sentenceEnd {
			sentenceEnd = idx
		}
	}
	if sentenceEnd > max*2/5 {
		return strings.TrimSpace(snippet[:sentenceEnd+1])
	}

	if wordEnd := strings.LastIndex(snippet, " "); wordEnd > max/3 {
		return strings.TrimSpace(snippet[:wordEnd]) + "..."
	}

	return strings.TrimSpace(snippet) + "..."
}

// dedupePreservingOrder removes case-insensitive duplicates, keeping first
// occurrences in order, capped at limit entries (limit <= 0 means no cap).
func dedupePreservingOrder(items []string, limit int) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(item)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, item)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
