package dataset

import (
	"fmt"

	"restaurant-workers/internal/common/logger"
)

// PipelineConfig names the inputs and output of one run.
type PipelineConfig struct {
	RestaurantsPath string
	MenusPath       string
	OutputPath      string
	Options         Options
}

// Run reads both sources, normalizes and writes the output artifact. Both
// inputs are loaded before anything is written, so a missing source leaves
// any previous output untouched.
func Run(cfg PipelineConfig, log logger.Logger) (*Report, error) {
	restaurants, err := LoadRestaurants(cfg.RestaurantsPath)
	if err != nil {
		return nil, err
	}
	menus, err := LoadMenus(cfg.MenusPath)
	if err != nil {
		return nil, err
	}

	log.Info("dataset sources loaded", map[string]interface{}{
		"restaurants": len(restaurants),
		"menuRows":    len(menus),
		"pricePolicy": cfg.Options.PricePolicy.String(),
	})

	out, report := NewNormalizer(cfg.Options, log).Normalize(restaurants, menus)

	if err := WriteFile(cfg.OutputPath, out); err != nil {
		return report, fmt.Errorf("write %s: %w", cfg.OutputPath, err)
	}

	log.Info("cleaned dataset written", map[string]interface{}{
		"path":        cfg.OutputPath,
		"restaurants": report.RestaurantsEmitted,
		"items":       report.ItemsEmitted,
	})
	return report, nil
}
