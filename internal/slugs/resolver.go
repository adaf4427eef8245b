package slugs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrSlugCollision reports two distinct source documents resolving to one
// canonical slug outside a recognized alias family. This is a hard import
// error; silently keeping either document would lose content.
var ErrSlugCollision = errors.New("slug collision")

// faqCanonical builds the long historical FAQ address, which is also the
// canonical slug for the per-entity FAQ family.
func faqCanonical(unit string) string {
	return "faq/yourfaqsabout" + strings.ReplaceAll(unit, "-", "") + "answeredbyimmigratetobrazil"
}

// guideCanonical is the canonical slug for a per-entity state guide.
func guideCanonical(unit string) string {
	return "everything-you-need-to-know-about-" + unit
}

// Canonicalize maps an address onto its canonical slug when the address
// matches a parametrized per-entity family. Addresses whose entity suffix is
// not a known federation unit do not match and keep their own slug. The
// second return reports whether a family pattern fired.
func Canonicalize(slug string) (string, bool) {
	if unit, ok := matchUnitSuffix(slug, "faq/faq-"); ok {
		return faqCanonical(unit), true
	}
	if rest, ok := strings.CutPrefix(slug, "faq/"); ok {
		if unit, found := strings.CutSuffix(rest, "-faq"); found && IsFederationUnit(unit) {
			return faqCanonical(unit), true
		}
		if body, hasPrefix := strings.CutPrefix(rest, "yourfaqsabout"); hasPrefix {
			if compact, hasSuffix := strings.CutSuffix(body, "answeredbyimmigratetobrazil"); hasSuffix {
				if unit, known := compactUnits[compact]; known {
					return faqCanonical(unit), true
				}
			}
		}
	}
	if unit, ok := matchUnitSuffix(slug, "about/about-states/about-"); ok {
		return "about/about-states/about-" + unit, true
	}
	if unit, ok := matchUnitSuffix(slug, "about/about-states/"); ok {
		return "about/about-states/about-" + unit, true
	}
	if unit, ok := matchUnitSuffix(slug, "contact/contact-"); ok {
		return "contact/" + unit, true
	}
	if unit, ok := matchUnitSuffix(slug, "contact/"); ok {
		return "contact/" + unit, true
	}
	if unit, ok := matchUnitSuffix(slug, "blog/blog-"); ok {
		return guideCanonical(unit), true
	}
	if unit, ok := matchUnitSuffix(slug, "blog/everything-you-need-to-know-about-"); ok {
		return guideCanonical(unit), true
	}
	if unit, ok := matchUnitSuffix(slug, "everything-you-need-to-know-about-"); ok {
		return guideCanonical(unit), true
	}
	return slug, false
}

func matchUnitSuffix(slug, prefix string) (string, bool) {
	unit, ok := strings.CutPrefix(slug, prefix)
	if !ok || !IsFederationUnit(unit) {
		return "", false
	}
	return unit, true
}

// Resolver holds the address-variant to canonical-slug table for one import
// run. It is built single-threaded in lexicographic address order before
// parallel writes begin and read-only afterwards.
type Resolver struct {
	aliases map[string]string
	// origins records, per canonical slug, the first address registered for
	// it, so collisions can name both offenders.
	origins map[string]string
}

func NewResolver() *Resolver {
	return &Resolver{
		aliases: make(map[string]string),
		origins: make(map[string]string),
	}
}

// Register records one address. The first address to claim a canonical slug
// owns it; later family variants of the same entity are recorded as aliases
// and reported as duplicates so the caller discards their content. Two
// distinct addresses claiming one canonical slug outside a family pattern is
// a collision.
func (r *Resolver) Register(slug string) (canonical string, duplicate bool, err error) {
	canonical, parametrized := Canonicalize(slug)

	if first, taken := r.origins[canonical]; taken {
		if !parametrized && slug != first {
			return "", false, fmt.Errorf("%w: %q and %q both resolve to %q", ErrSlugCollision, first, slug, canonical)
		}
		if slug != canonical {
			r.aliases[slug] = canonical
		}
		return canonical, true, nil
	}

	r.origins[canonical] = slug
	if slug != canonical {
		r.aliases[slug] = canonical
	}
	return canonical, false, nil
}

// Resolve maps an address to its canonical slug. It is pure over the built
// table: registered aliases win, then family patterns, then identity.
func (r *Resolver) Resolve(slug string) string {
	if canonical, ok := r.aliases[slug]; ok {
		return canonical
	}
	canonical, _ := Canonicalize(slug)
	return canonical
}

// Aliases returns a copy of the alias table, ready for embedding in a
// manifest. Manifest serialization orders the addresses.
func (r *Resolver) Aliases() map[string]string {
	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}

// AliasAddresses returns the registered addresses in sorted order.
func (r *Resolver) AliasAddresses() []string {
	addrs := make([]string, 0, len(r.aliases))
	for addr := range r.aliases {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	return addrs
}
