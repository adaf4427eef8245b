package extract_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/extract"
)

const stateGuideFixture = `<!DOCTYPE html>
<html>
<head>
<title>Living in Bahia | Immigrate to Brazil</title>
<meta name="description" content="A guide to Bahia.">
<script>window.track()</script>
</head>
<body>
<nav><a href="/">Home</a></nav>
<main id="main-content">
<h1>Living in Bahia</h1>
<p>Bahia mixes coastline with culture.</p>
<img src="/assets/img/bahia.jpg" alt="Salvador skyline">
<h2 id="overview">Overview</h2>
<p>The state capital is Salvador.</p>
<div class="tip">Visit in spring.</div>
<h2>Cost of Living</h2>
<ul><li>Rent is affordable</li><li>Groceries vary</li></ul>
<table><tr><th>City</th><th>Rent</th></tr><tr><td>Salvador</td><td>$600</td></tr></table>
<h2>Cost of Living</h2>
<p>Season affects prices.</p>
<details><summary>Do I need a visa?</summary><p>Depends on nationality.</p></details>
</main>
<main><p>Short secondary region.</p></main>
</body>
</html>`

func TestParseHeadingSplitDocument(t *testing.T) {
	page, err := extract.Parse(strings.NewReader(stateGuideFixture), "discover/bahia/index.html")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if page.Title != "Living in Bahia | Immigrate to Brazil" {
		t.Errorf("Title = %q", page.Title)
	}
	if page.Description != "A guide to Bahia." {
		t.Errorf("Description = %q", page.Description)
	}
	if page.Heading != "Living in Bahia" {
		t.Errorf("Heading = %q", page.Heading)
	}
	if page.HeroIntro != "Bahia mixes coastline with culture." {
		t.Errorf("HeroIntro = %q", page.HeroIntro)
	}
	if page.HeroImage != "/legacy-assets/img/bahia.jpg" {
		t.Errorf("HeroImage = %q", page.HeroImage)
	}
	if page.HeroImageAlt != "Salvador skyline" {
		t.Errorf("HeroImageAlt = %q", page.HeroImageAlt)
	}
	if page.LowConfidence {
		t.Error("LowConfidence = true, want false")
	}

	ids := make([]string, 0, len(page.Sections))
	for _, section := range page.Sections {
		ids = append(ids, section.ID)
	}
	wantIDs := []string{"introduction", "overview", "cost-of-living", "cost-of-living-2"}
	if !reflect.DeepEqual(ids, wantIDs) {
		t.Fatalf("section ids = %v, want %v", ids, wantIDs)
	}

	intro := page.Sections[0]
	if intro.Heading != "Introduction" {
		t.Errorf("intro heading = %q", intro.Heading)
	}
	if intro.Summary != "Bahia mixes coastline with culture." {
		t.Errorf("intro summary = %q", intro.Summary)
	}

	overview := page.Sections[1]
	if overview.Summary != "The state capital is Salvador." {
		t.Errorf("overview summary = %q", overview.Summary)
	}
	foundNote := false
	for _, block := range overview.Blocks {
		if block.Kind == content.BlockNote {
			foundNote = true
			if block.Tone != content.ToneTip {
				t.Errorf("note tone = %q, want %q", block.Tone, content.ToneTip)
			}
			if block.Text != "Visit in spring." {
				t.Errorf("note text = %q", block.Text)
			}
		}
	}
	if !foundNote {
		t.Error("overview section lost its call-out note")
	}

	cost := page.Sections[2]
	if cost.Summary != "Rent is affordable" {
		t.Errorf("cost summary = %q, want first list item", cost.Summary)
	}
	if len(cost.Blocks) != 2 || cost.Blocks[1].Kind != content.BlockList {
		t.Fatalf("cost blocks = %+v, want list + table list", cost.Blocks)
	}
	if got := cost.Blocks[1].Items; !reflect.DeepEqual(got, []string{"City: Salvador | Rent: $600"}) {
		t.Errorf("table items = %v", got)
	}

	if len(page.Faq) != 1 || page.Faq[0].Question != "Do I need a visa?" || page.Faq[0].Answer != "Depends on nationality." {
		t.Errorf("Faq = %+v", page.Faq)
	}

	if !reflect.DeepEqual(page.Bullets, []string{"Rent is affordable", "Groceries vary"}) {
		t.Errorf("Bullets = %v", page.Bullets)
	}

	wantTOC := []content.TOCEntry{
		{ID: "introduction", Label: "Introduction"},
		{ID: "overview", Label: "Overview"},
		{ID: "cost-of-living", Label: "Cost of Living"},
		{ID: "cost-of-living-2", Label: "Cost of Living"},
	}
	if !reflect.DeepEqual(page.TableOfContents, wantTOC) {
		t.Errorf("TableOfContents = %+v, want %+v", page.TableOfContents, wantTOC)
	}
}

func TestParseHeadinglessDocumentFallsBackToChunks(t *testing.T) {
	fixture := `<html><head><title>Plain</title></head><body><main><p>One.</p><p>Two.</p></main></body></html>`

	page, err := extract.Parse(strings.NewReader(fixture), "plain.html")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !page.LowConfidence {
		t.Error("LowConfidence = false, want true for chunked fallback")
	}
	if page.Heading != "Plain" {
		t.Errorf("Heading = %q, want title fallback", page.Heading)
	}
	if len(page.Sections) != 1 {
		t.Fatalf("sections = %d, want 1", len(page.Sections))
	}
	section := page.Sections[0]
	if section.ID != "overview" || section.Heading != "Overview" {
		t.Errorf("section = %q/%q", section.ID, section.Heading)
	}
	if len(section.Blocks) != 2 {
		t.Errorf("blocks = %d, want 2 paragraphs", len(section.Blocks))
	}
	if page.Description != "One." {
		t.Errorf("Description = %q, want hero-intro fallback", page.Description)
	}
}

func TestParsePrefersAuthoredTableOfContents(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><head><title>Handbook</title></head><body><main id="main-content"><nav>`)
	labels := []string{"Getting started", "Paperwork", "Housing", "Healthcare", "Banking"}
	for i, label := range labels {
		b.WriteString(`<a href="#part-` + string(rune('1'+i)) + `">` + label + `</a>`)
	}
	b.WriteString(`</nav>`)
	for i, label := range labels {
		b.WriteString(`<h2 id="part-` + string(rune('1'+i)) + `">` + label + ` details</h2><p>Body for ` + label + `.</p>`)
	}
	b.WriteString(`</main></body></html>`)

	page, err := extract.Parse(strings.NewReader(b.String()), "handbook.html")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(page.TableOfContents) != len(labels) {
		t.Fatalf("toc entries = %d, want %d", len(page.TableOfContents), len(labels))
	}
	for i, entry := range page.TableOfContents {
		if entry.Label != labels[i] {
			t.Errorf("toc[%d].Label = %q, want authored label %q", i, entry.Label, labels[i])
		}
	}
}

func TestParseExplicitSectionElements(t *testing.T) {
	fixture := `<html><head><title>Sectioned</title></head><body><main>
<section><h2 id="arrive">Arriving</h2><p>Land in Guarulhos.</p></section>
<section><h2>Settling In</h2><p>Find a flat.</p></section>
</main></body></html>`

	page, err := extract.Parse(strings.NewReader(fixture), "sectioned.html")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if page.LowConfidence {
		t.Error("LowConfidence = true, want false")
	}
	if len(page.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(page.Sections))
	}
	if page.Sections[0].ID != "arrive" {
		t.Errorf("first section id = %q, want authored anchor", page.Sections[0].ID)
	}
	if page.Sections[1].ID != "settling-in" {
		t.Errorf("second section id = %q, want slugified heading", page.Sections[1].ID)
	}
}

func TestMetadata(t *testing.T) {
	title, description, err := extract.Metadata(strings.NewReader(stateGuideFixture))
	if err != nil {
		t.Fatalf("Metadata() error = %v", err)
	}
	if title != "Living in Bahia | Immigrate to Brazil" {
		t.Errorf("title = %q", title)
	}
	if description != "A guide to Bahia." {
		t.Errorf("description = %q", description)
	}
}

func TestRegionTextPrunesChrome(t *testing.T) {
	fixture := `<html><body><main id="main-content">
<script>window.track()</script>
<div id="footer-placeholder">shell markup</div>
<p>Only the real words survive.</p>
</main></body></html>`

	text, err := extract.RegionText(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("RegionText() error = %v", err)
	}
	if text != "Only the real words survive." {
		t.Errorf("RegionText() = %q", text)
	}
}
