// cmd/tools/search-index/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"restaurant-workers/internal/catalog"
	appaws "restaurant-workers/internal/common/aws"
	"restaurant-workers/internal/common/config"
	"restaurant-workers/internal/common/database"
	"restaurant-workers/internal/common/logger"
)

func main() {
	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	cmd := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	configPath := cmd.String("config", "", "Path to config file (defaults to configs/config.yaml)")
	index := cmd.String("index", "", "Index name (defaults to search.index_name)")

	switch os.Args[1] {
	case "recreate", "count", "reindex":
		cmd.Parse(os.Args[2:])
	default:
		help()
		os.Exit(1)
	}

	cfg, err := config.LoadPath(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *index != "" {
		cfg.Search.IndexName = *index
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	es, err := database.NewElasticsearch(cfg.Search)
	if err != nil {
		zapLog.Fatal("elasticsearch client failed", zap.Error(err))
	}
	if err := es.Ping(); err != nil {
		zapLog.Fatal("elasticsearch unreachable", zap.Error(err))
	}
	idx := catalog.NewSearchIndex(es.Client, cfg.Search.IndexName, cfg.Search.BulkBatch, log)

	switch os.Args[1] {
	case "recreate":
		if err := idx.Recreate(ctx); err != nil {
			zapLog.Fatal("recreate failed", zap.Error(err))
		}
		fmt.Printf("Recreated index %s\n", idx.Name())

	case "count":
		n, err := idx.Count(ctx)
		if err != nil {
			zapLog.Fatal("count failed", zap.Error(err))
		}
		fmt.Printf("%s: %d documents\n", idx.Name(), n)

	case "reindex":
		awsCfg, err := appaws.LoadConfig(ctx, cfg.AWS)
		if err != nil {
			zapLog.Fatal("aws config failed", zap.Error(err))
		}
		store := catalog.NewMenuStore(appaws.NewDynamoDBClient(awsCfg), cfg.AWS.DynamoDB.MenuTable, cfg.AWS.DynamoDB.BatchMaxRetries, log)

		summary, err := catalog.Reindex(ctx, store, idx, log)
		if err != nil {
			zapLog.Fatal("reindex failed", zap.Error(err))
		}
		fmt.Printf("Indexed %d of %d items into %s (%d failed, %d documents)\n",
			summary.Bulk.Indexed, summary.Scanned, idx.Name(), summary.Bulk.Failed, summary.Count)
	}
}

func help() {
	fmt.Println("Usage: search-index <command> [flags]")
	fmt.Println("Commands:")
	fmt.Println("  recreate   Delete the index if present and create it with the food mapping")
	fmt.Println("  count      Print the number of indexed documents")
	fmt.Println("  reindex    Rebuild the index from a full scan of the menu table")
	fmt.Println("Flags:")
	fmt.Println("  -config    Path to config file")
	fmt.Println("  -index     Index name override")
}
