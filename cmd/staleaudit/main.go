package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/audit"
)

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	outputRoot := flag.String("content", envOr("CONTENT_OUTPUT_ROOT", "content/cms"), "repository root to audit")
	reportDir := flag.String("reports", "artifacts/editorial", "report output directory")
	reference := flag.String("reference", os.Getenv("EDITORIAL_REFERENCE_DATE"), "reference date YYYY-MM-DD (default today)")
	failOnStale := flag.Bool("fail-on-stale", os.Getenv("EDITORIAL_FAIL_ON_STALE") == "true", "exit nonzero when stale pages exist")
	flag.Parse()

	opts := audit.StalenessOptions{
		OutputRoot: *outputRoot,
		ReportDir:  *reportDir,
	}
	if *reference != "" {
		ts, err := time.Parse("2006-01-02", *reference)
		if err != nil {
			log.Fatalf("Invalid -reference: %v", err)
		}
		opts.ReferenceDate = ts
	}

	report, err := audit.RunStaleness(opts)
	if err != nil {
		log.Fatalf("Staleness check failed: %v", err)
	}

	fmt.Printf("total=%d stale=%d reference=%s\n",
		report.TotalPages, report.StalePages, report.ReferenceDate)
	log.Printf("Report: %s/stale-report.md", *reportDir)

	if *failOnStale && report.Failed() {
		os.Exit(1)
	}
}
