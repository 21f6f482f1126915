// internal/common/config/loader.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAllowedOrigins are the frontend origins served by the API.
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:5174",
	"http://localhost:3000",
	"https://d3t9ac16dxeckl.cloudfront.net",
}

// Load reads configs/config.yaml, overlays config.<APP_ENVIRONMENT>.yaml and
// environment variables, then applies defaults.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig()

	return finish(v)
}

// LoadPath loads path when it is set and falls back to Load otherwise.
func LoadPath(path string) (*Config, error) {
	if path == "" {
		return Load()
	}
	return LoadFromFile(path)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// expandEnvVars resolves ${VAR} placeholders left in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		switch val := v.Get(key).(type) {
		case string:
			if hasEnvRef(val) {
				v.Set(key, os.ExpandEnv(val))
			}
		case []interface{}:
			out := make([]string, 0, len(val))
			changed := false
			for _, item := range val {
				str, ok := item.(string)
				if !ok {
					out = nil
					break
				}
				if hasEnvRef(str) {
					str = os.ExpandEnv(str)
					changed = true
				}
				// unset placeholders drop out of lists
				if str != "" {
					out = append(out, str)
				}
			}
			if changed && out != nil {
				v.Set(key, out)
			}
		}
	}
}

func hasEnvRef(s string) bool {
	return strings.Contains(s, "${") || (strings.HasPrefix(s, "$") && len(s) > 1)
}

// overrideEmptyConfig fills well-known deployment variables the yaml left empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.AWS.S3.UploadBucket == "" {
		cfg.AWS.S3.UploadBucket = os.Getenv("BUCKET_NAME")
	}
	if cfg.AWS.Region == "" {
		cfg.AWS.Region = os.Getenv("AWS_REGION")
	}
	if cfg.AWS.Personalize.CampaignARN == "" {
		cfg.AWS.Personalize.CampaignARN = os.Getenv("PERSONALIZE_CAMPAIGN_ARN")
	}
	if cfg.AWS.SNS.OrderUpdatesTopicARN == "" {
		cfg.AWS.SNS.OrderUpdatesTopicARN = os.Getenv("ORDER_UPDATES_TOPIC_ARN")
	}
	if cfg.Database.Postgres.User == "" {
		cfg.Database.Postgres.User = os.Getenv("DB_USER")
	}
	if cfg.Database.Postgres.Password == "" {
		cfg.Database.Postgres.Password = os.Getenv("DB_PASSWORD")
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "restaurant-workers"
	}

	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	if cfg.AWS.Region == "" {
		cfg.AWS.Region = "us-east-1"
	}
	if cfg.AWS.DynamoDB.MenuTable == "" {
		cfg.AWS.DynamoDB.MenuTable = "RestaurantMenu"
	}
	if cfg.AWS.DynamoDB.RatingsTable == "" {
		cfg.AWS.DynamoDB.RatingsTable = "Ratings"
	}
	if cfg.AWS.DynamoDB.OrdersTable == "" {
		cfg.AWS.DynamoDB.OrdersTable = "RestaurantOrders"
	}
	if cfg.AWS.DynamoDB.UserOrdersIndex == "" {
		cfg.AWS.DynamoDB.UserOrdersIndex = "UserOrdersIndex"
	}
	if cfg.AWS.DynamoDB.BatchMaxRetries == 0 {
		cfg.AWS.DynamoDB.BatchMaxRetries = 8
	}
	if cfg.AWS.S3.URLExpiry == 0 {
		cfg.AWS.S3.URLExpiry = 300
	}
	if cfg.AWS.Personalize.NumResults == 0 {
		cfg.AWS.Personalize.NumResults = 10
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Redis.CacheTTL == 0 {
		cfg.Database.Redis.CacheTTL = 300
	}

	if cfg.Search.IndexName == "" {
		cfg.Search.IndexName = "food_index"
	}
	if cfg.Search.BulkBatch == 0 {
		cfg.Search.BulkBatch = 5000
	}

	if cfg.Dataset.RestaurantsPath == "" {
		cfg.Dataset.RestaurantsPath = "restaurants.csv"
	}
	if cfg.Dataset.MenusPath == "" {
		cfg.Dataset.MenusPath = "restaurant-menus.csv"
	}
	if cfg.Dataset.OutputPath == "" {
		cfg.Dataset.OutputPath = "cleaned_restaurant_data.json"
	}
	if cfg.Dataset.MaxRestaurants == 0 {
		cfg.Dataset.MaxRestaurants = 500
	}

	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8081"
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = DefaultAllowedOrigins
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Observability.MetricsAddress == "" {
		cfg.Observability.MetricsAddress = ":8080"
	}

	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = 5
		}
		if worker.Timeout == 0 {
			worker.Timeout = 30000
		}
		if worker.MaxRetries == 0 {
			worker.MaxRetries = 3
		}
		cfg.Workers[key] = worker
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Dataset.MaxRestaurants < 0 {
		return fmt.Errorf("dataset.max_restaurants must not be negative")
	}
	if cfg.AWS.S3.URLExpiry < 0 {
		return fmt.Errorf("aws.s3.url_expiry must not be negative")
	}
	if cfg.Database.Postgres.Port <= 0 || cfg.Database.Postgres.Port > 65535 {
		return fmt.Errorf("database.postgres.port out of range: %d", cfg.Database.Postgres.Port)
	}
	return nil
}

// ValidateForWorkers checks the settings only the long-running worker manager needs.
func ValidateForWorkers(cfg *Config) error {
	if cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required")
	}
	if len(cfg.Search.Addresses) == 0 {
		return fmt.Errorf("search.addresses is required")
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetWorkerConfig retrieves worker-specific configuration with fallback to defaults
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}
	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30000,
		MaxRetries:    3,
	}
}

// IsWorkerEnabled reports whether a worker is enabled; unlisted workers are on.
func IsWorkerEnabled(cfg *Config, workerName string) bool {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker.Enabled
	}
	return true
}
