package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/importer"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/repository"
)

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	sourceRoot := flag.String("source", envOr("LEGACY_SOURCE_ROOT", ".legacy-snapshot"), "legacy source corpus root")
	outputRoot := flag.String("out", envOr("CONTENT_OUTPUT_ROOT", "content/cms"), "repository output root")
	families := flag.String("families", "", "comma-separated families to import (default all)")
	workers := flag.Int("workers", 0, "extraction worker count (default GOMAXPROCS)")
	generatedAt := flag.String("generated-at", "", "RFC3339 timestamp stamped on manifests (default now; set for reproducible output)")
	reportPath := flag.String("report", "", "write the run report JSON to this path")
	flag.Parse()

	opts := importer.Options{
		SourceRoot: *sourceRoot,
		OutputRoot: *outputRoot,
		Workers:    *workers,
	}
	if *families != "" {
		opts.Families = strings.Split(*families, ",")
	}
	if *generatedAt != "" {
		ts, err := time.Parse(time.RFC3339, *generatedAt)
		if err != nil {
			log.Fatalf("Invalid -generated-at: %v", err)
		}
		opts.GeneratedAt = ts
	}

	log.Printf("Content importer")
	log.Printf("Source: %s", opts.SourceRoot)
	log.Printf("Output: %s", opts.OutputRoot)

	report, err := importer.Run(opts)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	if *reportPath != "" {
		if err := repository.WriteJSON(*reportPath, report); err != nil {
			log.Fatalf("Failed to write report: %v", err)
		}
		log.Printf("Report: %s", *reportPath)
	}

	total := 0
	for _, count := range report.Imported {
		total += count
	}
	fmt.Printf("imported=%d aliases=%d failures=%d lowConfidence=%d\n",
		total, report.AliasCount, len(report.Failures), len(report.LowConfidence))
}
