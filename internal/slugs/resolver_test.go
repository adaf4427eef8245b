package slugs_test

import (
	"reflect"
	"testing"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/slugs"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name           string
		slug           string
		wantCanonical  string
		wantParametric bool
	}{
		{
			name:           "faq short form",
			slug:           "faq/faq-bahia",
			wantCanonical:  "faq/yourfaqsaboutbahiaansweredbyimmigratetobrazil",
			wantParametric: true,
		},
		{
			name:           "faq reversed form",
			slug:           "faq/bahia-faq",
			wantCanonical:  "faq/yourfaqsaboutbahiaansweredbyimmigratetobrazil",
			wantParametric: true,
		},
		{
			name:           "faq long form is its own canonical",
			slug:           "faq/yourfaqsaboutriograndedosulansweredbyimmigratetobrazil",
			wantCanonical:  "faq/yourfaqsaboutriograndedosulansweredbyimmigratetobrazil",
			wantParametric: true,
		},
		{
			name:           "about state bare form",
			slug:           "about/about-states/bahia",
			wantCanonical:  "about/about-states/about-bahia",
			wantParametric: true,
		},
		{
			name:           "about state canonical form",
			slug:           "about/about-states/about-bahia",
			wantCanonical:  "about/about-states/about-bahia",
			wantParametric: true,
		},
		{
			name:           "contact prefixed form",
			slug:           "contact/contact-bahia",
			wantCanonical:  "contact/bahia",
			wantParametric: true,
		},
		{
			name:           "blog parametrized form",
			slug:           "blog/blog-bahia",
			wantCanonical:  "everything-you-need-to-know-about-bahia",
			wantParametric: true,
		},
		{
			name:           "blog long form",
			slug:           "blog/everything-you-need-to-know-about-bahia",
			wantCanonical:  "everything-you-need-to-know-about-bahia",
			wantParametric: true,
		},
		{
			name:           "guide canonical form",
			slug:           "everything-you-need-to-know-about-bahia",
			wantCanonical:  "everything-you-need-to-know-about-bahia",
			wantParametric: true,
		},
		{
			name:           "unknown entity keeps own slug",
			slug:           "blog/blog-lisbon",
			wantCanonical:  "blog/blog-lisbon",
			wantParametric: false,
		},
		{
			name:           "faq hub untouched",
			slug:           "faq",
			wantCanonical:  "faq",
			wantParametric: false,
		},
		{
			name:           "unrelated slug untouched",
			slug:           "services/relocation",
			wantCanonical:  "services/relocation",
			wantParametric: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			canonical, parametrized := slugs.Canonicalize(tt.slug)
			if canonical != tt.wantCanonical || parametrized != tt.wantParametric {
				t.Errorf("Canonicalize(%q) = (%q, %v), want (%q, %v)",
					tt.slug, canonical, parametrized, tt.wantCanonical, tt.wantParametric)
			}
		})
	}
}

func TestResolverRegisterFirstWins(t *testing.T) {
	r := slugs.NewResolver()

	canonical, duplicate, err := r.Register("blog/blog-bahia")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if duplicate {
		t.Error("first registration reported as duplicate")
	}
	if canonical != "everything-you-need-to-know-about-bahia" {
		t.Errorf("canonical = %q", canonical)
	}

	canonical, duplicate, err = r.Register("blog/everything-you-need-to-know-about-bahia")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if !duplicate {
		t.Error("family variant not reported as duplicate")
	}
	if canonical != "everything-you-need-to-know-about-bahia" {
		t.Errorf("canonical = %q", canonical)
	}

	wantAliases := map[string]string{
		"blog/blog-bahia": "everything-you-need-to-know-about-bahia",
		"blog/everything-you-need-to-know-about-bahia": "everything-you-need-to-know-about-bahia",
	}
	if got := r.Aliases(); !reflect.DeepEqual(got, wantAliases) {
		t.Errorf("Aliases() = %v, want %v", got, wantAliases)
	}
}

func TestResolverSameSlugIsDuplicateNotCollision(t *testing.T) {
	r := slugs.NewResolver()

	if _, _, err := r.Register("services/relocation"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	_, duplicate, err := r.Register("services/relocation")
	if err != nil {
		t.Fatalf("re-registration error = %v", err)
	}
	if !duplicate {
		t.Error("re-registration of identical slug not reported as duplicate")
	}
}

func TestResolverFamilyVariantsDoNotCollide(t *testing.T) {
	r := slugs.NewResolver()

	variants := []string{
		"faq/faq-bahia",
		"faq/bahia-faq",
		"faq/yourfaqsaboutbahiaansweredbyimmigratetobrazil",
	}
	for i, slug := range variants {
		canonical, duplicate, err := r.Register(slug)
		if err != nil {
			t.Fatalf("Register(%q) error = %v", slug, err)
		}
		if canonical != "faq/yourfaqsaboutbahiaansweredbyimmigratetobrazil" {
			t.Errorf("Register(%q) canonical = %q", slug, canonical)
		}
		if duplicate != (i > 0) {
			t.Errorf("Register(%q) duplicate = %v", slug, duplicate)
		}
	}
}

func TestResolverResolve(t *testing.T) {
	r := slugs.NewResolver()
	if _, _, err := r.Register("contact/contact-bahia"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if got := r.Resolve("contact/contact-bahia"); got != "contact/bahia" {
		t.Errorf("Resolve(registered alias) = %q", got)
	}
	if got := r.Resolve("contact/acre"); got != "contact/acre" {
		t.Errorf("Resolve(unregistered family form) = %q, want pattern fallback", got)
	}
	if got := r.Resolve("contact/contact-acre"); got != "contact/acre" {
		t.Errorf("Resolve(unregistered variant) = %q, want pattern fallback", got)
	}
	if got := r.Resolve("services"); got != "services" {
		t.Errorf("Resolve(identity) = %q", got)
	}

	if addrs := r.AliasAddresses(); !reflect.DeepEqual(addrs, []string{"contact/contact-bahia"}) {
		t.Errorf("AliasAddresses() = %v", addrs)
	}
}
