// internal/workers/orders/create-order/config.go
package createorder

import (
	"time"

	"restaurant-workers/internal/common/config"
)

type Config struct {
	Timeout   time.Duration
	TableName string
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:   config.GetWorkerConfig(cfg, TaskType).TimeoutDuration(),
		TableName: cfg.AWS.DynamoDB.OrdersTable,
	}
}
