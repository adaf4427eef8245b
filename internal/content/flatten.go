package content

import "strings"

// FlattenText joins every human-readable string in a document into one
// whitespace-normalized blob. The retention auditor compares its word count
// against the original source, and the full-text indexer feeds it to the
// search index.
func FlattenText(doc *Document) string {
	parts := make([]string, 0, 16)
	push := func(values ...string) {
		for _, value := range values {
			if strings.TrimSpace(value) != "" {
				parts = append(parts, value)
			}
		}
	}

	push(doc.Title, doc.Description, doc.Heading, doc.HeroIntro, doc.SourceUpdatedLabel)
	for _, entry := range doc.TableOfContents {
		push(entry.Label)
	}
	for _, section := range doc.Sections {
		push(section.Heading, section.Summary)
		push(section.Highlights...)
		for _, block := range section.Blocks {
			switch block.Kind {
			case BlockList:
				push(block.Items...)
			default:
				push(block.Text)
			}
		}
	}
	push(doc.Bullets...)
	for _, item := range doc.Faq {
		push(item.Question, item.Answer)
	}

	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// CountWords counts whitespace-separated words after normalization.
func CountWords(text string) int {
	return len(strings.Fields(text))
}
