// internal/workers/orders/update-order-status/config.go
package updateorderstatus

import (
	"time"

	"restaurant-workers/internal/common/config"
)

type Config struct {
	Timeout   time.Duration
	TableName string
	TopicARN  string
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout:   config.GetWorkerConfig(cfg, TaskType).TimeoutDuration(),
		TableName: cfg.AWS.DynamoDB.OrdersTable,
		TopicARN:  cfg.AWS.SNS.OrderUpdatesTopicARN,
	}
}
