package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/Project-Sylos/Arbor/internal/logger"
	"github.com/Project-Sylos/Arbor/internal/types"
	"github.com/Project-Sylos/Arbor/sdk"
)

// demoBatches builds the canonical four-batch demo tree: a root folder
// with two child folders holding files of sizes 128+256 and 512+1024+64.
const demoBatches = `[
  {"items": [{"type": "FOLDER", "id": "root-folder", "parentId": null}],
   "updateDate": "2022-02-01T12:00:00+0000"},
  {"items": [
     {"type": "FOLDER", "id": "docs", "parentId": "root-folder"},
     {"type": "FILE", "url": "/file/url1", "id": "readme", "parentId": "docs", "size": 128},
     {"type": "FILE", "url": "/file/url2", "id": "notes", "parentId": "docs", "size": 256}],
   "updateDate": "2022-02-02T12:00:00+0000"},
  {"items": [
     {"type": "FOLDER", "id": "media", "parentId": "root-folder"},
     {"type": "FILE", "url": "/file/url3", "id": "clip1", "parentId": "media", "size": 512},
     {"type": "FILE", "url": "/file/url4", "id": "clip2", "parentId": "media", "size": 1024}],
   "updateDate": "2022-02-03T12:00:00+0000"},
  {"items": [
     {"type": "FILE", "url": "/file/url5", "id": "clip3", "parentId": "media", "size": 64}],
   "updateDate": "2022-02-03T15:00:00+0000"}
]`

func main() {
	var (
		configPath = flag.String("config", "configs/default.json", "Configuration file path")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	fmt.Println("Arbor - SDK Demo")
	fmt.Println("================")
	fmt.Println("Replays the canonical import batches and prints the tree.")
	fmt.Println("For the API server, run: go run cmd/api/main.go")
	fmt.Println()

	if err := runDemo(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Demo failed: %v\n", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println("Arbor - Versioned File Tree Import Service")
	fmt.Println("==========================================")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  go run main.go [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -config string")
	fmt.Println("        Configuration file path (default: configs/default.json)")
	fmt.Println("  -help")
	fmt.Println("        Show this help message")
	fmt.Println()
	fmt.Println("API Server:")
	fmt.Println("  go run cmd/api/main.go [config-file]")
}

func runDemo(configPath string) error {
	fmt.Printf("Loading configuration from: %s\n", configPath)

	fs, err := sdk.New(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize Arbor: %w", err)
	}
	defer fs.Close()

	logger.Init(fs.GetConfig().Logging.Level)
	ctx := context.Background()

	// Start from a clean store so repeated runs agree
	if err := fs.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}

	var batches []types.ImportBatch
	if err := json.Unmarshal([]byte(demoBatches), &batches); err != nil {
		return fmt.Errorf("failed to parse demo batches: %w", err)
	}

	for i := range batches {
		fmt.Printf("Importing batch %d (%d items)\n", i+1, len(batches[i].Items))
		if err := fs.Import(ctx, &batches[i]); err != nil {
			return fmt.Errorf("failed to import batch %d: %w", i+1, err)
		}
	}

	tree, err := fs.GetSubtree(ctx, "root-folder")
	if err != nil {
		return fmt.Errorf("failed to read tree: %w", err)
	}

	fmt.Printf("\nRoot aggregate size: %d bytes, last touched %s\n", tree.Size, tree.Date)
	pretty, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render tree: %w", err)
	}
	fmt.Println(string(pretty))

	count, err := fs.CountNodes(ctx)
	if err != nil {
		return fmt.Errorf("failed to count nodes: %w", err)
	}
	fmt.Printf("\nStore holds %d nodes\n", count)

	fmt.Println("\nArbor SDK demo completed successfully!")
	return nil
}
