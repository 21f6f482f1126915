// cmd/tools/menu-ingest/main.go
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
	"restaurant-workers/internal/common/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (defaults to configs/config.yaml)")
	input := flag.String("input", "", "Cleaned dataset JSON (defaults to dataset.output_path)")
	table := flag.String("table", "", "Menu table (defaults to aws.dynamodb.menu_table)")
	flag.Parse()

	cfg, err := config.LoadPath(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	path := cfg.Dataset.OutputPath
	if *input != "" {
		path = *input
	}
	tableName := cfg.AWS.DynamoDB.MenuTable
	if *table != "" {
		tableName = *table
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	awsCfg, err := appaws.LoadConfig(ctx, cfg.AWS)
	if err != nil {
		zapLog.Fatal("aws config failed", zap.Error(err))
	}
	store := catalog.NewMenuStore(appaws.NewDynamoDBClient(awsCfg), tableName, cfg.AWS.DynamoDB.BatchMaxRetries, log)

	summary, err := catalog.Ingest(ctx, store, path, log)
	if err != nil {
		if summary != nil {
			zapLog.Error("ingest incomplete", zap.Int("written", summary.Written), zap.Int("items", summary.Items))
		}
		zapLog.Fatal("ingest failed", zap.Error(err))
	}

	fmt.Printf("Ingested %d items from %d restaurants into %s\n", summary.Written, summary.Restaurants, tableName)
}
