// cmd/tools/menu-truncate/main.go
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
	table := flag.String("table", "", "Menu table (defaults to aws.dynamodb.menu_table)")
	confirm := flag.Bool("yes", false, "Confirm deletion of every item in the table")
	flag.Parse()

	cfg, err := config.LoadPath(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	tableName := cfg.AWS.DynamoDB.MenuTable
	if *table != "" {
		tableName = *table
	}
	if !*confirm {
		fmt.Printf("Refusing to empty %s without -yes\n", tableName)
		os.Exit(2)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	awsCfg, err := appaws.LoadConfig(ctx, cfg.AWS)
	if err != nil {
		zapLog.Fatal("aws config failed", zap.Error(err))
	}
	store := catalog.NewMenuStore(appaws.NewDynamoDBClient(awsCfg), tableName, cfg.AWS.DynamoDB.BatchMaxRetries, log)

	deleted, err := catalog.Truncate(ctx, store, log)
	if err != nil {
		zapLog.Fatal("truncate failed", zap.Int("deleted", deleted), zap.Error(err))
	}
	fmt.Printf("Deleted %d items from %s\n", deleted, tableName)
}
