package slugs_test

import (
	"testing"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/slugs"
)

func TestFromSourcePath(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantLocale string
		wantSlug   string
	}{
		{name: "root index", path: "index.html", wantLocale: "en", wantSlug: ""},
		{name: "nested index", path: "discover/brazilian-states/bahia/index.html", wantLocale: "en", wantSlug: "discover/brazilian-states/bahia"},
		{name: "flat file", path: "about/about-immigratetobrazil.html", wantLocale: "en", wantSlug: "about/about-immigratetobrazil"},
		{name: "spanish locale", path: "es/contact/contact-bahia.html", wantLocale: "es", wantSlug: "contact/contact-bahia"},
		{name: "portuguese index", path: "pt/faq/index.html", wantLocale: "pt", wantSlug: "faq"},
		{name: "french locale", path: "fr/services.html", wantLocale: "fr", wantSlug: "services"},
		{name: "windows separators", path: `blog\blog-bahia.html`, wantLocale: "en", wantSlug: "blog/blog-bahia"},
		{name: "uppercase normalized", path: "About/FAQ.html", wantLocale: "en", wantSlug: "about/faq"},
		{name: "unknown first segment kept", path: "de/contact.html", wantLocale: "en", wantSlug: "de/contact"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locale, slug := slugs.FromSourcePath(tt.path)
			if locale != tt.wantLocale || slug != tt.wantSlug {
				t.Errorf("FromSourcePath(%q) = (%q, %q), want (%q, %q)", tt.path, locale, slug, tt.wantLocale, tt.wantSlug)
			}
		})
	}
}

func TestIsManaged(t *testing.T) {
	for _, slug := range []string{"about", "about/team", "faq", "blog/blog-bahia", "consultation", "resources-guides-brazil"} {
		if !slugs.IsManaged(slug) {
			t.Errorf("IsManaged(%q) = false, want true", slug)
		}
	}
	for _, slug := range []string{"aboutus", "discover/brazilian-states", "", "everything-you-need-to-know-about-bahia"} {
		if slugs.IsManaged(slug) {
			t.Errorf("IsManaged(%q) = true, want false", slug)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		slug      string
		wantType  string
		wantDepth int
	}{
		{slug: "", wantType: "discover-root", wantDepth: 0},
		{slug: "brazilian-states", wantType: "states-hub", wantDepth: 1},
		{slug: "brazilian-states/bahia", wantType: "state-overview", wantDepth: 2},
		{slug: "brazilian-states/bahia/cost-of-living", wantType: "state-subpage", wantDepth: 3},
		{slug: "brazilian-regions", wantType: "regions-hub", wantDepth: 1},
		{slug: "brazilian-regions/northeast", wantType: "region-overview", wantDepth: 2},
		{slug: "brazilian-regions/northeast/bahia", wantType: "region-state-overview", wantDepth: 3},
		{slug: "brazilian-regions/northeast/bahia/salvador", wantType: "region-city", wantDepth: 4},
		{slug: "something-else", wantType: "other", wantDepth: 1},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			got := slugs.Classify(tt.slug)
			if got.Type != tt.wantType || got.Depth != tt.wantDepth {
				t.Errorf("Classify(%q) = %q depth %d, want %q depth %d", tt.slug, got.Type, got.Depth, tt.wantType, tt.wantDepth)
			}
		})
	}
}

func TestClassifyManaged(t *testing.T) {
	tests := []struct {
		slug     string
		wantType string
	}{
		{slug: "about/about-states/about-bahia", wantType: "about"},
		{slug: "faq/yourfaqsaboutbahiaansweredbyimmigratetobrazil", wantType: "faq"},
		{slug: "everything-you-need-to-know-about-bahia", wantType: "state-guide"},
		{slug: "contact/bahia", wantType: "contact"},
		{slug: "policies/privacy", wantType: "policies"},
		{slug: "misc/page", wantType: "other"},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := slugs.ClassifyManaged(tt.slug); got.Type != tt.wantType {
				t.Errorf("ClassifyManaged(%q).Type = %q, want %q", tt.slug, got.Type, tt.wantType)
			}
		})
	}
}

func TestFederationUnits(t *testing.T) {
	units := slugs.FederationUnits()
	if len(units) != 27 {
		t.Fatalf("FederationUnits() len = %d, want 27", len(units))
	}
	if !slugs.IsFederationUnit("rio-grande-do-sul") {
		t.Error("IsFederationUnit(rio-grande-do-sul) = false")
	}
	if slugs.IsFederationUnit("northeast") {
		t.Error("IsFederationUnit(northeast) = true")
	}
}
