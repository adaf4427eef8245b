package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/routeindex"
)

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	sourceRoot := flag.String("source", envOr("LEGACY_SOURCE_ROOT", ".legacy-snapshot"), "legacy source corpus root")
	outputPath := flag.String("out", envOr("ROUTE_INDEX_PATH", "content/generated/route-index.json"), "route index output path")
	flag.Parse()

	log.Printf("Route indexer scanning %s", *sourceRoot)

	idx, err := routeindex.Scan(*sourceRoot)
	if err != nil {
		log.Fatalf("Scan failed: %v", err)
	}
	if err := idx.Save(*outputPath); err != nil {
		log.Fatalf("Failed to write route index: %v", err)
	}

	counts := make(map[string]int)
	for _, entry := range idx.Entries() {
		counts[entry.Locale]++
	}
	log.Printf("Generated route index: %s", *outputPath)
	fmt.Printf("total=%d en=%d es=%d pt=%d fr=%d\n",
		len(idx.Entries()), counts["en"], counts["es"], counts["pt"], counts["fr"])
}
