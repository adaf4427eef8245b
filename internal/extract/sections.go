package extract

import (
	"fmt"

	"golang.org/x/net/html"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
)

// chunkSize is the pseudo-section size for documents with no headings at all.
const chunkSize = 5

// highlightCap bounds the de-duplicated highlight list per section.
const highlightCap = 30

// uniqueID reserves base in used, suffixing -2, -3, ... on collision.
func uniqueID(base string, used map[string]struct{}) string {
	id := base
	for suffix := 2; ; suffix++ {
		if _, taken := used[id]; !taken {
			used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s-%d", base, suffix)
	}
}

// finishSection derives the summary and highlights a section exposes to list
// views. Summary prefers the first paragraph, then the first list item, then
// the first note, then the heading itself. Highlights pool subheadings, list
// items, and note text, case-insensitively de-duplicated and capped.
func finishSection(id, heading string, blocks []content.Block) content.Section {
	summary := ""
	for _, block := range blocks {
		if block.Kind == content.BlockParagraph {
			summary = block.Text
			break
		}
	}
	if summary == "" {
		for _, block := range blocks {
			if block.Kind == content.BlockList && len(block.Items) > 0 {
				summary = block.Items[0]
				break
			}
		}
	}
	if summary == "" {
		for _, block := range blocks {
			if block.Kind == content.BlockNote {
				summary = block.Text
				break
			}
		}
	}
	if summary == "" {
		summary = heading
	}

	var pool []string
	for _, block := range blocks {
		switch block.Kind {
		case content.BlockSubheading:
			pool = append(pool, block.Text)
		case content.BlockList:
			pool = append(pool, block.Items...)
		case content.BlockNote:
			pool = append(pool, block.Text)
		}
	}

	return content.Section{
		ID:         id,
		Heading:    heading,
		Summary:    summary,
		Highlights: dedupePreservingOrder(pool, highlightCap),
		Blocks:     blocks,
	}
}

// parseSectionElement extracts one explicit <section> element. Returns false
// when the section has no usable heading.
func parseSectionElement(sec *html.Node, index int, used map[string]struct{}) (content.Section, []content.FaqItem, bool) {
	heading := findFirst(sec, func(n *html.Node) bool { return isElement(n, "h2") })
	if heading == nil {
		heading = findFirst(sec, func(n *html.Node) bool { return isElement(n, "h1") })
	}
	if heading == nil {
		heading = findFirst(sec, func(n *html.Node) bool { return isElement(n, "h3") })
	}
	if heading == nil {
		return content.Section{}, nil, false
	}

	headingText := textOf(heading)
	if headingText == "" {
		return content.Section{}, nil, false
	}

	base := attr(heading, "id")
	if base == "" {
		base = Slugify(headingText)
	}
	if base == "" {
		base = fmt.Sprintf("section-%d", index+1)
	}
	id := uniqueID(base, used)

	blocks, faq := classifyBlocks(collectBlocks(sec), headingText)
	if len(blocks) == 0 {
		if fallback := textOf(sec); fallback != "" {
			blocks = append(blocks, content.Paragraph(fallback))
		}
	}

	return finishSection(id, headingText, blocks), faq, true
}

// headingLevelFor picks the heading tag the document actually uses for its
// section boundaries, trying h2 first, then h3, then h4.
func headingLevelFor(nodes []*html.Node) string {
	for _, tag := range []string{"h2", "h3", "h4"} {
		for _, node := range nodes {
			if node.Data == tag {
				return tag
			}
		}
	}
	return ""
}

// splitByHeadings segments the flattened block list at the chosen heading
// level. Content preceding the first heading becomes an implicit
// "Introduction" section when non-empty.
func splitByHeadings(nodes []*html.Node, tag string, used map[string]struct{}) ([]content.Section, []content.FaqItem) {
	var sections []content.Section
	var faq []content.FaqItem

	boundaries := make([]int, 0, 8)
	for i, node := range nodes {
		if node.Data == tag {
			boundaries = append(boundaries, i)
		}
	}
	if len(boundaries) == 0 {
		return nil, nil
	}

	if first := boundaries[0]; first > 0 {
		blocks, introFaq := classifyBlocks(nodes[:first], "")
		if len(blocks) > 0 {
			sections = append(sections, finishSection(uniqueID("introduction", used), "Introduction", blocks))
			faq = append(faq, introFaq...)
		}
	}

	for i, start := range boundaries {
		headingNode := nodes[start]
		headingText := textOf(headingNode)
		if headingText == "" {
			continue
		}

		end := len(nodes)
		if i+1 < len(boundaries) {
			end = boundaries[i+1]
		}

		blocks, sectionFaq := classifyBlocks(nodes[start+1:end], headingText)
		if len(blocks) == 0 {
			continue
		}

		base := attr(headingNode, "id")
		if base == "" {
			base = Slugify(headingText)
		}
		if base == "" {
			base = fmt.Sprintf("section-%d", i+1)
		}

		sections = append(sections, finishSection(uniqueID(base, used), headingText, blocks))
		faq = append(faq, sectionFaq...)
	}

	return sections, faq
}

// chunkParagraphs is the last-resort sectioning for documents with no
// headings: flat paragraphs grouped into fixed-size pseudo-sections so the
// published-document invariant (at least one section) still holds.
func chunkParagraphs(region *html.Node, used map[string]struct{}) []content.Section {
	var paragraphs []string
	for _, p := range findAllDeep(region, func(n *html.Node) bool { return isElement(n, "p") }) {
		if text := textOf(p); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}
	if len(paragraphs) == 0 {
		if text := textOf(region); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	var sections []content.Section
	for start := 0; start < len(paragraphs); start += chunkSize {
		chunk := paragraphs[start:min(start+chunkSize, len(paragraphs))]
		heading := "Overview"
		if start > 0 {
			heading = fmt.Sprintf("Guidance %d", start/chunkSize+1)
		}

		blocks := make([]content.Block, 0, len(chunk))
		for _, text := range chunk {
			blocks = append(blocks, content.Paragraph(text))
		}
		sections = append(sections, finishSection(uniqueID(Slugify(heading), used), heading, blocks))
	}
	return sections
}

// buildSections runs the full sectioning ladder over the content region:
// explicit <section> elements, then heading-delimited spans (h2, h3, h4 in
// priority order), then chunked flat paragraphs. lowConfidence reports that
// the final fallback fired, so the import report can flag the document for
// editorial review instead of guessing further.
func buildSections(region *html.Node) (sections []content.Section, faq []content.FaqItem, lowConfidence bool) {
	used := make(map[string]struct{})

	sectionEls := findAll(region, func(n *html.Node) bool { return isElement(n, "section") })
	for i, sec := range sectionEls {
		parsed, sectionFaq, ok := parseSectionElement(sec, i, used)
		if !ok {
			continue
		}
		sections = append(sections, parsed)
		faq = append(faq, sectionFaq...)
	}
	if len(sections) > 0 {
		return sections, faq, false
	}

	nodes := collectBlocks(region)
	if tag := headingLevelFor(nodes); tag != "" {
		sections, faq = splitByHeadings(nodes, tag, used)
		if len(sections) > 0 {
			return sections, faq, false
		}
	}

	return chunkParagraphs(region, used), nil, true
}
