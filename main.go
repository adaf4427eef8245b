package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/immigratetobrazilteam-collab/content-mcp-server/tools"
)

const (
	version     = "1.0.0"
	serverName  = "content-mcp-server"
	description = "MCP server for the migrated legacy content repository and route index"
)

// Defaults match the import commands' output layout; each can be overridden
// through the environment.
const (
	defaultOutputRoot = "content/cms"
	defaultRoutePath  = "content/generated/route-index.json"
	defaultIndexDir   = "search/content-index"
)

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("%s version %s\n", serverName, version)
		os.Exit(0)
	}

	// MCP uses stdout for protocol traffic, so all logging goes to stderr.
	log.SetOutput(os.Stderr)
	log.Printf("%s v%s starting...", serverName, version)

	outputRoot := envOr("CONTENT_OUTPUT_ROOT", defaultOutputRoot)
	routePath := envOr("ROUTE_INDEX_PATH", defaultRoutePath)
	indexDir := envOr("CONTENT_INDEX_DIR", defaultIndexDir)

	server := createMCPServer()

	if err := registerTools(server, outputRoot, routePath, indexDir); err != nil {
		log.Fatalf("Failed to register tools: %v", err)
	}

	log.Printf("✓ Server ready and waiting for connections")

	defer func() {
		if err := tools.CloseSearch(); err != nil {
			log.Printf("Error closing content search: %v", err)
		}
	}()

	ctx := context.Background()
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func createMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    serverName,
			Version: version,
		},
		nil,
	)
	log.Printf("Server initialized: %s v%s", serverName, version)
	return server
}

func registerTools(server *mcp.Server, outputRoot, routePath, indexDir string) error {
	toolCount := 0

	if err := tools.RegisterContentTools(server, outputRoot); err != nil {
		return fmt.Errorf("failed to register content tools: %w", err)
	}
	toolCount += 2

	if err := tools.RegisterRouteTools(server, routePath); err != nil {
		return fmt.Errorf("failed to register route tools: %w", err)
	}
	toolCount += 5

	// Content search degrades gracefully when no index has been built yet.
	if err := tools.RegisterSearchTools(server, indexDir, outputRoot); err != nil {
		log.Printf("Warning: failed to register search tools: %v", err)
	} else {
		toolCount += 2
	}

	log.Printf("✓ All tools registered: %d tools (content + routes + search)", toolCount)
	return nil
}
