// internal/workers/feedback/generate-upload-url/config.go
package generateuploadurl

import (
	"time"

	"restaurant-workers/internal/common/config"
)

const (
	DefaultUserID  = "test-user"
	DefaultOrderID = "unknown"
	ContentType    = "image/png"
)

type Config struct {
	Timeout time.Duration
	Bucket  string
	Expiry  time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Timeout: config.GetWorkerConfig(cfg, TaskType).TimeoutDuration(),
		Bucket:  cfg.AWS.S3.UploadBucket,
		Expiry:  time.Duration(cfg.AWS.S3.URLExpiry) * time.Second,
	}
}
