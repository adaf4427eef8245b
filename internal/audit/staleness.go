package audit

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/content"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/repository"
)

// Stale reasons.
const (
	ReasonDraft           = "draft"
	ReasonMissingMetadata = "missing-review-metadata"
	ReasonOverdue         = "review-overdue"
	ReasonInWindow        = "in-window"
)

// StalenessOptions configures one editorial staleness check.
type StalenessOptions struct {
	OutputRoot string
	ReportDir  string
	Families   []string
	// ReferenceDate is "today" for the check. Zero means time.Now.
	ReferenceDate time.Time
	GeneratedAt   time.Time
}

// StaleItem is one evaluated record.
type StaleItem struct {
	Family          string `json:"family"`
	Slug            string `json:"slug"`
	Owner           string `json:"owner"`
	Status          string `json:"status"`
	LastReviewedAt  string `json:"lastReviewedAt"`
	ReviewEveryDays int    `json:"reviewEveryDays"`
	Stale           bool   `json:"stale"`
	Reason          string `json:"reason"`
	DueDate         string `json:"dueDate,omitempty"`
	DaysOverdue     int    `json:"daysOverdue,omitempty"`
}

// StalenessReport is the full check outcome.
type StalenessReport struct {
	GeneratedAt    string         `json:"generatedAt"`
	ReferenceDate  string         `json:"referenceDate"`
	TotalPages     int            `json:"totalPages"`
	StalePages     int            `json:"stalePages"`
	CountsByFamily map[string]int `json:"countsByFamily"`
	StaleByFamily  map[string]int `json:"staleByFamily"`
	Stale          []StaleItem    `json:"stale"`
}

func (r *StalenessReport) Failed() bool { return r.StalePages > 0 }

// Evaluate applies the review-cadence policy to one record against a
// reference date. Drafts are never stale; published records without usable
// review metadata always are.
func Evaluate(doc *content.Document, reference time.Time) StaleItem {
	item := StaleItem{
		Slug:            doc.Slug,
		Owner:           doc.Owner,
		Status:          string(doc.Status),
		LastReviewedAt:  doc.LastReviewedAt,
		ReviewEveryDays: doc.ReviewEveryDays,
	}

	if doc.Status != content.StatusPublished {
		item.Reason = ReasonDraft
		return item
	}

	reviewed, err := time.Parse("2006-01-02", doc.LastReviewedAt)
	if err != nil || doc.ReviewEveryDays <= 0 {
		item.Stale = true
		item.Reason = ReasonMissingMetadata
		return item
	}

	due := reviewed.AddDate(0, 0, doc.ReviewEveryDays)
	item.DueDate = due.Format("2006-01-02")
	if due.Before(reference) {
		item.Stale = true
		item.Reason = ReasonOverdue
		item.DaysOverdue = int(reference.Sub(due).Hours() / 24)
		return item
	}
	item.Reason = ReasonInWindow
	return item
}

// RunStaleness evaluates every canonical-locale record in the configured
// families. Stale items are ordered by days overdue descending so the most
// neglected pages lead the report.
func RunStaleness(opts StalenessOptions) (*StalenessReport, error) {
	if len(opts.Families) == 0 {
		opts.Families = []string{"pages", "discover", "guides"}
	}
	if opts.ReferenceDate.IsZero() {
		opts.ReferenceDate = time.Now().UTC()
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now().UTC()
	}

	report := &StalenessReport{
		GeneratedAt:    opts.GeneratedAt.UTC().Format(time.RFC3339),
		ReferenceDate:  opts.ReferenceDate.UTC().Format("2006-01-02"),
		CountsByFamily: make(map[string]int),
		StaleByFamily:  make(map[string]int),
	}

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
			doc, err := store.Get(content.DefaultLocale, slug)
			if err != nil {
				return nil, err
			}
			item := Evaluate(doc, opts.ReferenceDate)
			item.Family = family
			report.TotalPages++
			report.CountsByFamily[family]++
			if item.Stale {
				report.StalePages++
				report.StaleByFamily[family]++
				report.Stale = append(report.Stale, item)
			}
		}
	}

	sort.Slice(report.Stale, func(i, j int) bool {
		if report.Stale[i].DaysOverdue != report.Stale[j].DaysOverdue {
			return report.Stale[i].DaysOverdue > report.Stale[j].DaysOverdue
		}
		return report.Stale[i].Slug < report.Stale[j].Slug
	})

	if opts.ReportDir != "" {
		if err := writeStalenessReports(opts.ReportDir, report); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// staleTableCap bounds the markdown table.
const staleTableCap = 500

func writeStalenessReports(dir string, report *StalenessReport) error {
	if err := repository.WriteJSON(filepath.Join(dir, "stale-report.json"), report); err != nil {
		return err
	}

	var md strings.Builder
	md.WriteString("# Editorial Stale Content Report\n\n")
	fmt.Fprintf(&md, "- Generated: %s\n", report.GeneratedAt)
	fmt.Fprintf(&md, "- Reference date: %s\n", report.ReferenceDate)
	fmt.Fprintf(&md, "- Total pages: %d\n", report.TotalPages)
	fmt.Fprintf(&md, "- Stale pages: %d\n", report.StalePages)
	md.WriteString("\n## Counts by family\n\n")

	families := make([]string, 0, len(report.CountsByFamily))
	for family := range report.CountsByFamily {
		families = append(families, family)
	}
	sort.Strings(families)
	for _, family := range families {
		fmt.Fprintf(&md, "- %s: %d total, %d stale\n",
			family, report.CountsByFamily[family], report.StaleByFamily[family])
	}

	md.WriteString("\n## Top stale pages\n\n")
	md.WriteString("| Family | Slug | Days Overdue | Last Reviewed | Cadence |\n")
	md.WriteString("|---|---|---:|---|---:|\n")
	for i, item := range report.Stale {
		if i == staleTableCap {
			break
		}
		fmt.Fprintf(&md, "| %s | `%s` | %d | %s | %d |\n",
			item.Family, item.Slug, item.DaysOverdue, item.LastReviewedAt, item.ReviewEveryDays)
	}

	return os.WriteFile(filepath.Join(dir, "stale-report.md"), []byte(md.String()), 0o644)
}
