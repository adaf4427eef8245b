package importer_test

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/importer"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/repository"
)

func writeSource(t *testing.T, root, rel, heading string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	markup := `<html><head><title>` + heading + ` | Immigrate to Brazil</title>` +
		`<meta name="description" content="About ` + heading + `."></head>` +
		`<body><main id="main-content"><h1>` + heading + `</h1>` +
		`<p>Intro for ` + heading + `.</p>` +
		`<h2>Overview</h2><p>Details about ` + heading + `.</p>` +
		`<ul><li>Keep your documents ready.</li></ul>` +
		`<details><summary>Is ` + heading + ` current?</summary><p>Yes.</p></details>` +
		`</main></body></html>`
	if err := os.WriteFile(path, []byte(markup), 0o644); err != nil {
		t.Fatal(err)
	}
}

func seedCorpus(t *testing.T, root string) {
	t.Helper()
	writeSource(t, root, "about/about-immigratetobrazil.html", "About Us")
	writeSource(t, root, "faq/faq-bahia.html", "Bahia FAQ")
	writeSource(t, root, "faq/bahia-faq.html", "Bahia FAQ Variant")
	writeSource(t, root, "blog/blog-bahia.html", "Everything About Bahia")
	writeSource(t, root, "discover/index.html", "Discover Brazil")
	writeSource(t, root, "discover/brazilian-states/bahia/index.html", "Bahia")
	writeSource(t, root, "es/about/about-immigratetobrazil.html", "Sobre Nosotros")

	// Excluded material the planner must never pick up.
	writeSource(t, root, "node_modules/pkg/index.html", "Vendor")
	writeSource(t, root, "partials/header.html", "Header")
	writeSource(t, root, "about/old.bak.html", "Stale Copy")
	writeSource(t, root, "index.html", "Site Root")
}

func TestRunImportsCorpus(t *testing.T) {
	source := t.TempDir()
	output := t.TempDir()
	seedCorpus(t, source)

	report, err := importer.Run(importer.Options{
		SourceRoot:  source,
		OutputRoot:  output,
		Workers:     4,
		GeneratedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantImported := map[string]int{"pages": 3, "discover": 2, "guides": 1}
	if !reflect.DeepEqual(report.Imported, wantImported) {
		t.Errorf("Imported = %v, want %v", report.Imported, wantImported)
	}
	if report.AliasCount != 3 {
		t.Errorf("AliasCount = %d, want 3", report.AliasCount)
	}
	if len(report.Failures) != 0 {
		t.Errorf("Failures = %+v, want none", report.Failures)
	}
	if len(report.LowConfidence) != 0 {
		t.Errorf("LowConfidence = %v, want none", report.LowConfidence)
	}
	if report.GeneratedAt != "2026-02-01T12:00:00Z" {
		t.Errorf("GeneratedAt = %q", report.GeneratedAt)
	}

	pages := repository.NewStore(output, "pages")

	// Either historical FAQ shape resolves to the one canonical record.
	for _, addr := range []string{"faq/faq-bahia", "faq/bahia-faq", "faq/yourfaqsaboutbahiaansweredbyimmigratetobrazil"} {
		doc, err := pages.Get("en", addr)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", addr, err)
		}
		if doc.Slug != "faq/yourfaqsaboutbahiaansweredbyimmigratetobrazil" {
			t.Errorf("Get(%q).Slug = %q", addr, doc.Slug)
		}
	}

	localized, err := pages.Get("es", "about/about-immigratetobrazil")
	if err != nil {
		t.Fatalf("Get(es) error = %v", err)
	}
	if localized.Locale != "es" || localized.Heading != "Sobre Nosotros" {
		t.Errorf("es record = %q/%q", localized.Locale, localized.Heading)
	}
	if !reflect.DeepEqual(localized.Bullets, []string{"Keep your documents ready."}) {
		t.Errorf("pages record bullets = %v", localized.Bullets)
	}

	guides := repository.NewStore(output, "guides")
	guide, err := guides.Get("en", "everything-you-need-to-know-about-bahia")
	if err != nil {
		t.Fatalf("Get(guide) error = %v", err)
	}
	if guide.Taxonomy.Type != "state-guide" {
		t.Errorf("guide taxonomy = %q", guide.Taxonomy.Type)
	}
	if guide.Pathname != "/state-guides/everything-you-need-to-know-about-bahia" {
		t.Errorf("guide pathname = %q", guide.Pathname)
	}

	discover := repository.NewStore(output, "discover")
	root, err := discover.Get("en", "")
	if err != nil {
		t.Fatalf("Get(discover root) error = %v", err)
	}
	if root.Pathname != "/discover" || root.Taxonomy.Type != "discover-root" {
		t.Errorf("discover root = %q/%q", root.Pathname, root.Taxonomy.Type)
	}
	if root.Cta == nil || root.Seo == nil {
		t.Error("discover record missing cta/seo defaults")
	}
	if root.LastReviewedAt != "2026-02-01" {
		t.Errorf("LastReviewedAt = %q, want derived from clock", root.LastReviewedAt)
	}

	state, err := discover.Get("en", "brazilian-states/bahia")
	if err != nil {
		t.Fatalf("Get(state) error = %v", err)
	}
	if state.Taxonomy.Type != "state-overview" {
		t.Errorf("state taxonomy = %q", state.Taxonomy.Type)
	}
	if len(state.Bullets) != 0 {
		t.Errorf("discover record bullets = %v, want none", state.Bullets)
	}
	if len(guide.Bullets) != 0 {
		t.Errorf("guide record bullets = %v, want none", guide.Bullets)
	}

	manifest, err := pages.Manifest("en")
	if err != nil {
		t.Fatalf("Manifest() error = %v", err)
	}
	if manifest.PageCount != 2 {
		t.Errorf("pages en manifest PageCount = %d, want 2", manifest.PageCount)
	}
	if len(manifest.Aliases) != 2 {
		t.Errorf("pages manifest aliases = %v, want both faq variants", manifest.Aliases)
	}
	for i, page := range manifest.Pages {
		if i > 0 && manifest.Pages[i-1].Slug > page.Slug {
			t.Errorf("manifest pages not sorted: %q > %q", manifest.Pages[i-1].Slug, page.Slug)
		}
		if page.SourcePath == "" {
			t.Errorf("page %q missing sourcePath", page.Slug)
		}
		if page.SectionCount != 2 {
			t.Errorf("page %q sectionCount = %d, want 2", page.Slug, page.SectionCount)
		}
		if page.FaqCount != 1 {
			t.Errorf("page %q faqCount = %d, want 1", page.Slug, page.FaqCount)
		}
	}

	labelsData, err := os.ReadFile(filepath.Join(output, "discover", "en", "_labels.json"))
	if err != nil {
		t.Fatalf("read discover labels: %v", err)
	}
	var labels map[string]string
	if err := json.Unmarshal(labelsData, &labels); err != nil {
		t.Fatalf("decode discover labels: %v", err)
	}
	if labels["brazilian-states/bahia"] != state.Title {
		t.Errorf("labels[brazilian-states/bahia] = %q, want %q", labels["brazilian-states/bahia"], state.Title)
	}
	if _, ok := labels[""]; ok {
		t.Error("labels include the root record")
	}
}

func TestRunIsIdempotent(t *testing.T) {
	source := t.TempDir()
	seedCorpus(t, source)

	clock := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	first := t.TempDir()
	second := t.TempDir()

	for _, output := range []string{first, second} {
		if _, err := importer.Run(importer.Options{
			SourceRoot:  source,
			OutputRoot:  output,
			Workers:     4,
			GeneratedAt: clock,
		}); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	}

	if !reflect.DeepEqual(snapshotTree(t, first), snapshotTree(t, second)) {
		t.Error("identical source and clock produced differing artifacts")
	}
}

func snapshotTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
	return out
}

func TestRunRestrictedToOneFamily(t *testing.T) {
	source := t.TempDir()
	output := t.TempDir()
	seedCorpus(t, source)

	report, err := importer.Run(importer.Options{
		SourceRoot:  source,
		OutputRoot:  output,
		Families:    []string{importer.FamilyGuides},
		GeneratedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !reflect.DeepEqual(report.Imported, map[string]int{"guides": 1}) {
		t.Errorf("Imported = %v, want guides only", report.Imported)
	}
	if _, err := os.Stat(filepath.Join(output, "pages")); !os.IsNotExist(err) {
		t.Errorf("pages family written in a guides-only run: %v", err)
	}
}
