package extract

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// prune removes non-content subtrees in place: scripts, styles, comments,
// and the legacy include-partial placeholder containers that used to be
// filled client-side.
func prune(root *html.Node) {
	var doomed []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.CommentNode:
			doomed = append(doomed, n)
			return
		case html.ElementNode:
			switch n.Data {
			case "script", "style", "noscript":
				doomed = append(doomed, n)
				return
			}
			if isPartialPlaceholder(n) {
				doomed = append(doomed, n)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	for _, n := range doomed {
		removeNode(n)
	}
}

func isPartialPlaceholder(n *html.Node) bool {
	if !isElement(n, "div") {
		return false
	}
	for _, key := range []string{"id", "data-include", "data-partial-role"} {
		value := strings.ToLower(attr(n, key))
		if strings.Contains(value, "placeholder") || strings.Contains(value, "partial") {
			return true
		}
	}
	return false
}

// contentRegion isolates the primary content of a parsed document using the
// same preference ladder the legacy corpus was authored against: an explicit
// main-content marker first, the longest <main> second, <body> third, the
// whole tree last.
func contentRegion(doc *html.Node) *html.Node {
	mains := findAllDeep(doc, func(n *html.Node) bool { return isElement(n, "main") })

	for _, main := range mains {
		if attr(main, "id") == "main-content" {
			return main
		}
	}

	var longest *html.Node
	longestLen := 0
	for _, main := range mains {
		if l := len(textOf(main)); l > longestLen {
			longest, longestLen = main, l
		}
	}
	if longest != nil {
		return longest
	}

	if body := findFirst(doc, func(n *html.Node) bool { return isElement(n, "body") }); body != nil {
		return body
	}
	return doc
}

// documentTitle reads the <title> element of the whole document.
func documentTitle(doc *html.Node) string {
	title := findFirst(doc, func(n *html.Node) bool { return isElement(n, "title") })
	if title == nil {
		return ""
	}
	return textOf(title)
}

// metaDescription reads <meta name="description" content="...">.
func metaDescription(doc *html.Node) string {
	meta := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "meta") && strings.EqualFold(attr(n, "name"), "description")
	})
	if meta == nil {
		return ""
	}
	return collapse(attr(meta, "content"))
}

// RegionText parses a raw document and returns the collapsed text of its
// content region, for word-level comparison against migrated records.
func RegionText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}
	prune(doc)
	return textOf(contentRegion(doc)), nil
}
