// internal/workers/orders/get-orders/config.go
package getorders

import (
	"time"

	"restaurant-workers/internal/common/config"
)

type Config struct {
	Timeout   time.Duration
	TableName string
	IndexName string
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:   config.GetWorkerConfig(cfg, TaskType).TimeoutDuration(),
		TableName: cfg.AWS.DynamoDB.OrdersTable,
		IndexName: cfg.AWS.DynamoDB.UserOrdersIndex,
	}
}
