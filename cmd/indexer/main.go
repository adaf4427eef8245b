package main

import (
	"fmt"
	"log"
	"os"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/importer"
	"github.com/immigratetobrazilteam-collab/content-mcp-server/internal/searchindex"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <content-root> <index-dir>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s content/cms search/content-index\n", os.Args[0])
		os.Exit(1)
	}

	outputRoot := os.Args[1]
	indexDir := os.Args[2]

	log.Printf("Content Search Indexer v%d", searchindex.IndexSchemaVersion)
	log.Printf("Indexing repository: %s", outputRoot)

	count, err := searchindex.Build(outputRoot, indexDir, importer.Families)
	if err != nil {
		log.Fatalf("Failed to build index: %v", err)
	}

	log.Printf("✓ Indexed %d documents", count)
	log.Printf("✓ Index ready: %s", indexDir)
}
