// internal/workers/menu/get-restaurant-recommendations/config.go
package getrestaurantrecommendations

import (
	"time"

	"restaurant-workers/internal/common/config"
)

type Config struct {
	Timeout     time.Duration
	CampaignARN string
	NumResults  int
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:     config.GetWorkerConfig(cfg, TaskType).TimeoutDuration(),
		CampaignARN: cfg.AWS.Personalize.CampaignARN,
		NumResults:  cfg.AWS.Personalize.NumResults,
	}
}
