// Package importer drives a full migration run: it enumerates the legacy
// source corpus, builds the alias table, extracts every document, and writes
// per-locale records and manifests through the repository. Runs are
// idempotent: unchanged source plus the same clock produces byte-identical
// artifacts.
package importer

import (
	"fmt"
	"log"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/repository"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/slugs"
)

// Family names group documents into separately-manifested corpora.
const (
	FamilyPages    = "pages"
	FamilyDiscover = "discover"
	FamilyGuides   = "guides"
)

// Families lists every import family in run order.
var Families = []string{FamilyPages, FamilyDiscover, FamilyGuides}

// Options configures one import run.
type Options struct {
	SourceRoot string
	OutputRoot string

	// Families restricts the run; empty means all.
	Families []string

	// Workers bounds the parallel extraction pool. Zero means GOMAXPROCS.
	Workers int

	// GeneratedAt stamps manifests. The zero value means time.Now, which
	// callers needing reproducible output must override.
	GeneratedAt time.Time

	// ReviewDate stamps lastReviewedAt on imported records. Empty derives
	// the date from GeneratedAt.
	ReviewDate string
}

func (o *Options) normalize() {
	if len(o.Families) == 0 {
		o.Families = Families
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.GeneratedAt.IsZero() {
		o.GeneratedAt = time.Now().UTC()
	}
	if o.ReviewDate == "" {
		o.ReviewDate = o.GeneratedAt.UTC().Format("2006-01-02")
	}
}

// Failure records one document excluded from a run.
type Failure struct {
	SourcePath string `json:"sourcePath"`
	Reason     string `json:"reason"`
}

// Report aggregates the outcome of a run. Per-document failures never abort
// the run; they are collected here.
type Report struct {
	GeneratedAt   string         `json:"generatedAt"`
	Imported      map[string]int `json:"imported"`
	AliasCount    int            `json:"aliasCount"`
	Failures      []Failure      `json:"failures,omitempty"`
	LowConfidence []string       `json:"lowConfidence,omitempty"`
	StatsByType   map[string]int `json:"statsByType,omitempty"`
}

// Run executes a full import. The plan phase is single-threaded in
// lexicographic source order so alias registration and slug-collision checks
// are reproducible; extraction and write-out then run in parallel, with each
// planned document owned by exactly one worker.
func Run(opts Options) (*Report, error) {
	opts.normalize()

	plan, err := buildPlan(opts)
	if err != nil {
		return nil, err
	}

	report := &Report{
		GeneratedAt: opts.GeneratedAt.UTC().Format(time.RFC3339),
		Imported:    make(map[string]int),
		StatsByType: make(map[string]int),
		AliasCount:  len(plan.resolver.Aliases()),
	}

	stores := make(map[string]*repository.Store, len(opts.Families))
	for _, family := range opts.Families {
		stores[family] = repository.NewStore(opts.OutputRoot, family)
	}

	results := executePlan(opts, plan, stores)

	built := make(map[string][]builtDoc)
	for _, res := range results {
		if res.err != nil {
			report.Failures = append(report.Failures, Failure{
				SourcePath: res.doc.sourcePath,
				Reason:     res.err.Error(),
			})
			continue
		}
		if res.lowConfidence {
			report.LowConfidence = append(report.LowConfidence, res.doc.sourcePath)
		}
		report.Imported[res.doc.family]++
		report.StatsByType[res.document.Taxonomy.Type]++
		built[res.doc.family+"\x00"+res.doc.locale] = append(built[res.doc.family+"\x00"+res.doc.locale], builtDoc{
			doc:      res.doc,
			document: res.document,
		})
	}

	sort.Slice(report.Failures, func(i, j int) bool {
		return report.Failures[i].SourcePath < report.Failures[j].SourcePath
	})
	sort.Strings(report.LowConfidence)

	for key, docs := range built {
		family, locale, _ := strings.Cut(key, "\x00")
		if err := writeManifest(stores[family], locale, docs, plan, opts); err != nil {
			return nil, err
		}
	}

	for family, count := range report.Imported {
		log.Printf("import: %s: %d records", family, count)
	}
	log.Printf("import: %d aliases, %d failures, %d low confidence",
		report.AliasCount, len(report.Failures), len(report.LowConfidence))
	return report, nil
}

type builtDoc struct {
	doc      plannedDoc
	document *content.Document
}

type result struct {
	doc           plannedDoc
	document      *content.Document
	lowConfidence bool
	err           error
}

// executePlan fans planned documents out to a bounded worker pool. The plan
// holds one entry per (family, locale, canonical slug), so no two workers
// ever write the same record.
func executePlan(opts Options, plan *importPlan, stores map[string]*repository.Store) []result {
	jobs := make(chan plannedDoc)
	out := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for doc := range jobs {
				document, lowConfidence, err := buildDocument(opts, doc)
				if err == nil {
					err = stores[doc.family].Put(document)
					if err != nil {
						err = fmt.Errorf("write: %w", err)
					}
				}
				out <- result{doc: doc, document: document, lowConfidence: lowConfidence, err: err}
			}
		}()
	}

	go func() {
		for _, doc := range plan.docs {
			jobs <- doc
		}
		close(jobs)
		wg.Wait()
		close(out)
	}()

	var results []result
	for res := range out {
		results = append(results, res)
	}
	return results
}

// writeManifest assembles and persists the per-locale aggregate record for
// one family.
func writeManifest(store *repository.Store, locale string, docs []builtDoc, plan *importPlan, opts Options) error {
	manifest := &repository.Manifest{
		Locale:         locale,
		GeneratedAt:    opts.GeneratedAt.UTC().Format(time.RFC3339),
		PageCount:      len(docs),
		CountsByPrefix: make(map[string]int),
		StatsByType:    make(map[string]int),
	}
	if locale == content.DefaultLocale {
		manifest.Aliases = familyAliases(store.Family(), plan.resolver)
	}
	for _, b := range docs {
		prefix := b.document.Slug
		if first, _, found := strings.Cut(prefix, "/"); found {
			prefix = first
		}
		if prefix != "" {
			manifest.CountsByPrefix[prefix]++
		}
		manifest.StatsByType[b.document.Taxonomy.Type]++
		manifest.Pages = append(manifest.Pages, repository.PageSummary{
			Slug:         b.document.Slug,
			Pathname:     b.document.Pathname,
			SourcePath:   b.doc.sourcePath,
			Title:        b.document.Title,
			Taxonomy:     b.document.Taxonomy,
			SectionCount: len(b.document.Sections),
			FaqCount:     len(b.document.Faq),
		})
	}
	if err := store.PutManifest(locale, manifest); err != nil {
		return err
	}
	if store.Family() == FamilyDiscover {
		return store.PutLabels(locale, discoverLabels(docs))
	}
	return nil
}

// discoverLabels maps each discover slug to its display heading. The root
// record is skipped; its label never varies.
func discoverLabels(docs []builtDoc) map[string]string {
	labels := make(map[string]string)
	for _, b := range docs {
		if b.document.Slug == "" {
			continue
		}
		labels[b.document.Slug] = b.document.Title
	}
	return labels
}

// familyAliases filters the run-wide alias table down to the addresses a
// family serves.
func familyAliases(family string, resolver *slugs.Resolver) map[string]string {
	aliases := resolver.Aliases()
	out := make(map[string]string)
	for addr, canonical := range aliases {
		if familyForSlug(canonical) == family || familyForSlug(addr) == family {
			out[addr] = canonical
		}
	}
	return out
}
