package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/audit"
)

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func main() {
	sourceRoot := flag.String("source", envOr("LEGACY_SOURCE_ROOT", ".legacy-snapshot"), "legacy source corpus root")
	outputRoot := flag.String("content", envOr("CONTENT_OUTPUT_ROOT", "content/cms"), "repository root to audit")
	reportDir := flag.String("reports", "artifacts/content-retention", "report output directory")
	threshold := flag.Float64("threshold", envFloat("MIN_RETENTION_RATIO", audit.DefaultRetentionThreshold), "minimum acceptable retention ratio")
	sampleLimit := flag.Int("sample", 0, "audit only the first N documents (0 = all)")
	failOnLow := flag.Bool("fail-on-low", os.Getenv("RETENTION_FAIL_ON_LOW") == "true", "exit nonzero when documents fall below the threshold")
	flag.Parse()

	report, err := audit.RunRetention(audit.RetentionOptions{
		SourceRoot:  *sourceRoot,
		OutputRoot:  *outputRoot,
		ReportDir:   *reportDir,
		Threshold:   *threshold,
		SampleLimit: *sampleLimit,
	})
	if err != nil {
		log.Fatalf("Retention audit failed: %v", err)
	}

	fmt.Printf("checked=%d missing=%d belowThreshold=%d threshold=%g\n",
		report.TotalChecked, report.MissingSourceCount, report.BelowThresholdCount, report.Threshold)
	log.Printf("Report: %s/retention-report.md", *reportDir)

	if *failOnLow && report.Failed() {
		os.Exit(1)
	}
}
