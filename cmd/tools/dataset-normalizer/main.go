// cmd/tools/dataset-normalizer/main.go
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"restaurant-workers/internal/common/config"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/dataset"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (defaults to configs/config.yaml)")
	restaurants := flag.String("restaurants", "", "Restaurant CSV (overrides dataset.restaurants_path)")
	menus := flag.String("menus", "", "Menu CSV (overrides dataset.menus_path)")
	output := flag.String("output", "", "Output JSON (overrides dataset.output_path)")
	limit := flag.Int("limit", -1, "Maximum restaurants to emit (overrides dataset.max_restaurants)")
	strict := flag.Bool("strict-price", false, "Reject ambiguous price strings instead of stripping them")
	pushgateway := flag.String("pushgateway", "", "Pushgateway URL for run metrics (overrides observability.pushgateway_url)")
	flag.Parse()

	cfg, err := config.LoadPath(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	pc := dataset.PipelineConfig{
		RestaurantsPath: firstNonEmpty(*restaurants, cfg.Dataset.RestaurantsPath),
		MenusPath:       firstNonEmpty(*menus, cfg.Dataset.MenusPath),
		OutputPath:      firstNonEmpty(*output, cfg.Dataset.OutputPath),
		Options: dataset.Options{
			MaxRestaurants: cfg.Dataset.MaxRestaurants,
			PricePolicy:    dataset.PricePolicyBestEffort,
		},
	}
	if *limit >= 0 {
		pc.Options.MaxRestaurants = *limit
	}
	if *strict || cfg.Dataset.StrictPrice {
		pc.Options.PricePolicy = dataset.PricePolicyStrict
	}

	report, err := dataset.Run(pc, log)
	if err != nil {
		zapLog.Fatal("normalization failed", zap.Error(err))
	}

	log.Info("normalization report", report.Fields())

	if url := firstNonEmpty(*pushgateway, cfg.Observability.PushgatewayURL); url != "" {
		if err := report.Push(url, "dataset-normalizer"); err != nil {
			zapLog.Warn("metrics push failed", zap.Error(err))
		}
	}

	fmt.Printf("Wrote %d restaurants (%d menu items) to %s, %d menu rows excluded\n",
		report.RestaurantsEmitted, report.ItemsEmitted, pc.OutputPath, report.ExcludedMenuRows())
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
