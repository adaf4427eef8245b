// Package audit checks the migrated corpus against its legacy sources:
// retention compares flattened word counts per document, staleness compares
// editorial review metadata against a reference date. Both emit JSON and
// markdown reports and never abort on a bad document.
package audit

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/extract"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/repository"
)

// DefaultRetentionThreshold is the minimum acceptable migrated-to-source
// word ratio.
const DefaultRetentionThreshold = 0.55

// RetentionOptions configures one retention audit.
type RetentionOptions struct {
	SourceRoot string
	OutputRoot string
	ReportDir  string
	Families   []string
	Threshold  float64
	// SampleLimit audits only the first N documents when positive.
	SampleLimit int
	GeneratedAt time.Time
}

// RetentionRow is one audited document.
type RetentionRow struct {
	Family         string  `json:"family"`
	SourcePath     string  `json:"sourcePath"`
	Slug           string  `json:"slug"`
	OldWords       int     `json:"oldWords"`
	NewWords       int     `json:"newWords"`
	RetentionRatio float64 `json:"retentionRatio"`
	BelowThreshold bool    `json:"belowThreshold"`
}

// MissingSource is a document whose legacy origin no longer exists.
type MissingSource struct {
	Family     string `json:"family"`
	SourcePath string `json:"sourcePath"`
	Slug       string `json:"slug"`
}

// RetentionReport is the full audit outcome, persisted as JSON and markdown.
type RetentionReport struct {
	GeneratedAt         string          `json:"generatedAt"`
	SourceRoot          string          `json:"sourceRoot"`
	TotalChecked        int             `json:"totalChecked"`
	TotalExpected       int             `json:"totalExpected"`
	MissingSourceCount  int             `json:"missingSourceCount"`
	Threshold           float64         `json:"threshold"`
	BelowThresholdCount int             `json:"belowThresholdCount"`
	CountsByFamily      map[string]int  `json:"countsByFamily"`
	MissingSources      []MissingSource `json:"missingSources,omitempty"`
	Rows                []RetentionRow  `json:"rows"`
}

// Failed reports whether the audit found problems a strict pipeline should
// stop on.
func (r *RetentionReport) Failed() bool {
	return r.BelowThresholdCount > 0 || r.MissingSourceCount > 0
}

// RetentionRatio rounds newWords/oldWords to four decimals. A document with
// an empty source counts as zero retention.
func RetentionRatio(oldWords, newWords int) float64 {
	if oldWords <= 0 {
		return 0
	}
	return math.Round(float64(newWords)/float64(oldWords)*10000) / 10000
}

// RunRetention audits every record in the configured families. Rows are
// sorted by ratio ascending so the worst migrations lead the report.
func RunRetention(opts RetentionOptions) (*RetentionReport, error) {
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultRetentionThreshold
	}
	if len(opts.Families) == 0 {
		opts.Families = []string{"pages", "discover", "guides"}
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now().UTC()
	}

	report := &RetentionReport{
		GeneratedAt:    opts.GeneratedAt.UTC().Format(time.RFC3339),
		SourceRoot:     opts.SourceRoot,
		Threshold:      opts.Threshold,
		CountsByFamily: make(map[string]int),
	}

	checked := 0
	for _, family := range opts.Families {
		store := repository.NewStore(opts.OutputRoot, family)
		slugs, err := store.Slugs(content.DefaultLocale)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		for _, slug := range slugs {
			if opts.SampleLimit > 0 && checked >= opts.SampleLimit {
				break
			}
			checked++
			doc, err := store.Get(content.DefaultLocale, slug)
			if err != nil {
				return nil, err
			}
			report.TotalExpected++

			oldWords, ok := sourceWordCount(opts.SourceRoot, doc.SourcePath)
			if !ok {
				report.MissingSources = append(report.MissingSources, MissingSource{
					Family:     family,
					SourcePath: doc.SourcePath,
					Slug:       slug,
				})
				continue
			}

			newWords := content.CountWords(content.FlattenText(doc))
			ratio := RetentionRatio(oldWords, newWords)
			report.Rows = append(report.Rows, RetentionRow{
				Family:         family,
				SourcePath:     doc.SourcePath,
				Slug:           slug,
				OldWords:       oldWords,
				NewWords:       newWords,
				RetentionRatio: ratio,
				BelowThreshold: ratio < opts.Threshold,
			})
			report.CountsByFamily[family]++
		}
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		if report.Rows[i].RetentionRatio != report.Rows[j].RetentionRatio {
			return report.Rows[i].RetentionRatio < report.Rows[j].RetentionRatio
		}
		return report.Rows[i].SourcePath < report.Rows[j].SourcePath
	})
	sort.Slice(report.MissingSources, func(i, j int) bool {
		return report.MissingSources[i].SourcePath < report.MissingSources[j].SourcePath
	})

	report.TotalChecked = len(report.Rows)
	report.MissingSourceCount = len(report.MissingSources)
	for _, row := range report.Rows {
		if row.BelowThreshold {
			report.BelowThresholdCount++
		}
	}

	if opts.ReportDir != "" {
		if err := writeRetentionReports(opts.ReportDir, report); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// sourceWordCount extracts the legacy document's content region and counts
// its words. A missing or unparseable source reports not-ok.
func sourceWordCount(sourceRoot, sourcePath string) (int, bool) {
	f, err := os.Open(filepath.Join(sourceRoot, filepath.FromSlash(sourcePath)))
	if err != nil {
		return 0, false
	}
	defer f.Close()
	text, err := extract.RegionText(f)
	if err != nil {
		return 0, false
	}
	return content.CountWords(text), true
}

// retentionTableCap bounds the markdown table so reports stay reviewable.
const retentionTableCap = 200

func writeRetentionReports(dir string, report *RetentionReport) error {
	if err := repository.WriteJSON(filepath.Join(dir, "retention-report.json"), report); err != nil {
		return err
	}

	var md strings.Builder
	md.WriteString("# Content Retention Report\n\n")
	fmt.Fprintf(&md, "- Generated: %s\n", report.GeneratedAt)
	fmt.Fprintf(&md, "- Source root: %s\n", report.SourceRoot)
	fmt.Fprintf(&md, "- Checked: %d/%d\n", report.TotalChecked, report.TotalExpected)
	fmt.Fprintf(&md, "- Missing sources: %d\n", report.MissingSourceCount)
	fmt.Fprintf(&md, "- Threshold: %g\n", report.Threshold)
	fmt.Fprintf(&md, "- Below threshold: %d\n", report.BelowThresholdCount)
	md.WriteString("\n## Family Counts\n\n")

	families := make([]string, 0, len(report.CountsByFamily))
	for family := range report.CountsByFamily {
		families = append(families, family)
	}
	sort.Strings(families)
	for _, family := range families {
		fmt.Fprintf(&md, "- %s: %d\n", family, report.CountsByFamily[family])
	}

	md.WriteString("\n## Lowest Retention\n\n")
	md.WriteString("| Family | Source | Retention | Old Words | New Words |\n")
	md.WriteString("|---|---|---:|---:|---:|\n")
	for i, row := range report.Rows {
		if i == retentionTableCap {
			break
		}
		fmt.Fprintf(&md, "| %s | `%s` | %.3f | %d | %d |\n",
			row.Family, row.SourcePath, row.RetentionRatio, row.OldWords, row.NewWords)
	}

	return os.WriteFile(filepath.Join(dir, "retention-report.md"), []byte(md.String()), 0o644)
}
