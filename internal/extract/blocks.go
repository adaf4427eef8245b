package extract

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
)

// blockElements are the block-level tags the classifier recognizes. Headings
// above h1 act as section boundaries or subheadings depending on the split
// mode; everything else is container chrome the walk descends through.
var blockElements = map[string]struct{}{
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {},
	"p": {}, "ul": {}, "ol": {}, "table": {}, "details": {},
}

// collectBlocks flattens a subtree into its block-level elements in document
// order. Matched blocks are not descended into, and figures are skipped
// entirely (decorative imagery and captions).
func collectBlocks(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			if node.Data == "figure" {
				return
			}
			if _, ok := blockElements[node.Data]; ok {
				out = append(out, node)
				return
			}
			// Legacy call-out notes authored as classed divs.
			if isElement(node, "div") && content.ToneFromClassTokens(classTokens(node)) != "" {
				out = append(out, node)
				return
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return out
}

func listItems(n *html.Node) []string {
	var items []string
	for _, li := range findAllDeep(n, func(node *html.Node) bool { return isElement(node, "li") }) {
		if text := textOf(li); text != "" {
			items = append(items, text)
		}
	}
	return items
}

// tableItems renders table rows into list items. When the header count
// matches the cell count, each row becomes "header: cell" pairs; otherwise
// the raw cells are joined.
func tableItems(table *html.Node) []string {
	var headers []string
	for _, th := range findAllDeep(table, func(n *html.Node) bool { return isElement(n, "th") }) {
		if text := textOf(th); text != "" {
			headers = append(headers, text)
		}
	}

	var items []string
	for _, tr := range findAllDeep(table, func(n *html.Node) bool { return isElement(n, "tr") }) {
		var cells []string
		for _, td := range findAllDeep(tr, func(n *html.Node) bool { return isElement(n, "td") }) {
			if text := textOf(td); text != "" {
				cells = append(cells, text)
			}
		}
		if len(cells) == 0 {
			continue
		}

		if len(headers) == len(cells) {
			pairs := make([]string, len(cells))
			for i, cell := range cells {
				pairs[i] = headers[i] + ": " + cell
			}
			items = append(items, strings.Join(pairs, " | "))
		} else {
			items = append(items, strings.Join(cells, " | "))
		}
	}
	return items
}

// detailsPair splits a <details> element into its summary question and the
// remaining answer text. Either side may come back empty.
func detailsPair(details *html.Node) (question, answer string) {
	summary := findFirst(details, func(n *html.Node) bool { return isElement(n, "summary") })
	if summary != nil {
		question = textOf(summary)
		removeNode(summary)
	}
	answer = textOf(details)
	return question, answer
}

// classifyBlocks converts block-level elements into the tagged content block
// union, splitting out FAQ pairs. The first subheading textually identical to
// the owning section heading is skipped to avoid duplicating it.
func classifyBlocks(nodes []*html.Node, owningHeading string) ([]content.Block, []content.FaqItem) {
	var blocks []content.Block
	var faq []content.FaqItem
	ownerSkipped := false

	for _, node := range nodes {
		switch node.Data {
		case "h1", "h2", "h3", "h4", "h5":
			text := textOf(node)
			if text == "" {
				continue
			}
			if !ownerSkipped && strings.EqualFold(text, owningHeading) {
				ownerSkipped = true
				continue
			}
			blocks = append(blocks, content.Subheading(text))

		case "p":
			text := textOf(node)
			if text == "" {
				continue
			}
			if tone := content.ToneFromClassTokens(classTokens(node)); tone != "" {
				blocks = append(blocks, content.Note(tone, text))
			} else {
				blocks = append(blocks, content.Paragraph(text))
			}

		case "ul", "ol":
			if items := listItems(node); len(items) > 0 {
				blocks = append(blocks, content.List(items))
			}

		case "table":
			if items := tableItems(node); len(items) > 0 {
				blocks = append(blocks, content.List(items))
			}

		case "details":
			question, answer := detailsPair(node)
			if question != "" && answer != "" {
				faq = append(faq, content.FaqItem{Question: question, Answer: answer})
			}

		case "div":
			if tone := content.ToneFromClassTokens(classTokens(node)); tone != "" {
				if text := textOf(node); text != "" {
					blocks = append(blocks, content.Note(tone, text))
				}
			}
		}
	}

	return blocks, faq
}
