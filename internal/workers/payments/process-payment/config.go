// internal/workers/payments/process-payment/config.go
package processpayment

import (
	"time"

	"restaurant-workers/internal/common/config"
)

const DefaultCurrency = "USD"

type Config struct {
	Timeout         time.Duration
	DefaultCurrency string
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:         config.GetWorkerConfig(cfg, TaskType).TimeoutDuration(),
		DefaultCurrency: DefaultCurrency,
	}
}
