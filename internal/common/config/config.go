// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	AWS           AWSConfig               `mapstructure:"aws"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Search        SearchConfig            `mapstructure:"search"`
	Dataset       DatasetConfig           `mapstructure:"dataset"`
	HTTP          HTTPConfig              `mapstructure:"http"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Observability ObservabilityConfig     `mapstructure:"observability"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// AWSConfig names every managed AWS resource the workers touch.
type AWSConfig struct {
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"` // local stacks only

	DynamoDB struct {
		MenuTable       string `mapstructure:"menu_table"`
		RatingsTable    string `mapstructure:"ratings_table"`
		OrdersTable     string `mapstructure:"orders_table"`
		UserOrdersIndex string `mapstructure:"user_orders_index"`
		BatchMaxRetries int    `mapstructure:"batch_max_retries"`
	} `mapstructure:"dynamodb"`

	S3 struct {
		UploadBucket string `mapstructure:"upload_bucket"`
		URLExpiry    int    `mapstructure:"url_expiry"` // seconds
	} `mapstructure:"s3"`

	Personalize struct {
		CampaignARN string `mapstructure:"campaign_arn"`
		NumResults  int    `mapstructure:"num_results"`
	} `mapstructure:"personalize"`

	SNS struct {
		OrderUpdatesTopicARN string `mapstructure:"order_updates_topic_arn"`
	} `mapstructure:"sns"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds
}

// SearchConfig points at the Elasticsearch-compatible food index.
type SearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	IndexName string   `mapstructure:"index_name"`
	BulkBatch int      `mapstructure:"bulk_batch"`
}

// DatasetConfig holds defaults for the offline dataset tools.
type DatasetConfig struct {
	RestaurantsPath string `mapstructure:"restaurants_path"`
	MenusPath       string `mapstructure:"menus_path"`
	OutputPath      string `mapstructure:"output_path"`
	MaxRestaurants  int    `mapstructure:"max_restaurants"`
	StrictPrice     bool   `mapstructure:"strict_price"`
}

type HTTPConfig struct {
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// TimeoutDuration converts the millisecond timeout.
func (w WorkerConfig) TimeoutDuration() time.Duration {
	return GetDuration(w.Timeout)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ObservabilityConfig struct {
	MetricsAddress string `mapstructure:"metrics_address"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	PushgatewayURL string `mapstructure:"pushgateway_url"`
}
