package repository

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
)

// overridesDir holds sparse per-locale override documents. Unlike records,
// overrides are authored by hand and re-read on every resolve so edits take
// effect without an import run.
const overridesDir = "overrides"

func (s *Store) overridePath(locale, slug string) string {
	name := slug
	if name == "" {
		name = rootRecordName
	}
	return filepath.Join(s.root, s.family, overridesDir, locale, filepath.FromSlash(name)+".json")
}

// Override loads the sparse override for (locale, slug). A missing file is
// not an error; fields failing shape validation are dropped individually and
// logged, never the whole override.
func (s *Store) Override(locale, slug string) (*content.Override, error) {
	if err := validSlug(slug); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.overridePath(locale, slug))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	override, dropped, err := content.DecodeOverride(data)
	if err != nil {
		return nil, fmt.Errorf("override %s/%s/%s: %w", s.family, locale, slug, err)
	}
	for _, field := range dropped {
		log.Printf("override %s/%s/%s: dropped invalid field %q", s.family, locale, slug, field)
	}
	return override, nil
}

// Resolve returns the document served for (locale, slug): the stored record
// (with canonical-locale fallback) merged with the locale's override when
// one exists.
func (s *Store) Resolve(locale, slug string) (*content.Document, error) {
	if locale == "" {
		locale = content.DefaultLocale
	}
	base, err := s.Get(locale, slug)
	if err != nil {
		return nil, err
	}
	override, err := s.Override(locale, s.resolveAlias(slug))
	if err != nil {
		return nil, err
	}
	merged := content.Merge(*base, override)
	return &merged, nil
}
