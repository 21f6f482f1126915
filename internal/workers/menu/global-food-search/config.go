// internal/workers/menu/global-food-search/config.go
package globalfoodsearch

import (
	"time"

	"restaurant-workers/internal/common/config"
)

const (
	DefaultSize = 20
	MaxSize     = 100
)

type Config struct {
	Timeout   time.Duration
	IndexName string
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:   config.GetWorkerConfig(cfg, TaskType).TimeoutDuration(),
		IndexName: cfg.Search.IndexName,
	}
}
