// Package app connects the shared service clients and builds the worker
// handlers used by both the worker manager and the Lambda API.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	appaws "restaurant-workers/internal/common/aws"
	"restaurant-workers/internal/common/camunda"
	"restaurant-workers/internal/common/config"
	"restaurant-workers/internal/common/database"
	apphttp "restaurant-workers/internal/common/http"
	"restaurant-workers/internal/common/logger"
)

const personalizeTimeout = 10 * time.Second

// Clients holds every backend a handler may need. Redis and Postgres are
// optional: without Redis the handlers skip caching, without Postgres the
// payment worker is not built.
type Clients struct {
	DynamoDB    appaws.DynamoDBAPI
	SNS         appaws.SNSService
	Presigner   appaws.UploadPresigner
	Recommender appaws.Recommender
	Search      *elasticsearch.Client
	Redis       *database.RedisClient
	Postgres    *database.PostgresClient
}

// Connect opens all clients, retrying the network-backed ones with retry.
func Connect(ctx context.Context, cfg *config.Config, retry *camunda.RetryConfig, log logger.Logger) (*Clients, error) {
	awsCfg, err := appaws.LoadConfig(ctx, cfg.AWS)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	c := &Clients{
		DynamoDB:    appaws.NewDynamoDBClient(awsCfg),
		SNS:         appaws.NewSNSClient(awsCfg),
		Presigner:   appaws.NewS3Presigner(awsCfg),
		Recommender: appaws.NewPersonalizeClient(awsCfg, apphttp.NewClient(personalizeTimeout)),
	}

	var es *database.ElasticsearchClient
	err = camunda.RetryWithBackoff(ctx, retry, log, "Elasticsearch connection", func() error {
		var err error
		if es, err = database.NewElasticsearch(cfg.Search); err != nil {
			return err
		}
		return es.Ping()
	})
	if err != nil {
		return nil, err
	}
	c.Search = es.Client
	log.Info("Elasticsearch connected", map[string]interface{}{"addresses": cfg.Search.Addresses})

	if cfg.Database.Redis.Address != "" {
		err = camunda.RetryWithBackoff(ctx, retry, log, "Redis connection", func() error {
			var err error
			if c.Redis, err = database.NewRedis(cfg.Database.Redis); err != nil {
				return err
			}
			return c.Redis.Ping(ctx)
		})
		if err != nil {
			c.Close()
			return nil, err
		}
		log.Info("Redis connected", map[string]interface{}{"address": cfg.Database.Redis.Address})
	} else {
		log.Warn("redis not configured, caching disabled", nil)
	}

	if cfg.Database.Postgres.Host != "" {
		err = camunda.RetryWithBackoff(ctx, retry, log, "PostgreSQL connection", func() error {
			var err error
			if c.Postgres, err = database.NewPostgres(cfg.Database.Postgres); err != nil {
				return err
			}
			return c.Postgres.Ping(ctx)
		})
		if err != nil {
			c.Close()
			return nil, err
		}
		log.Info("PostgreSQL connected", map[string]interface{}{"host": cfg.Database.Postgres.Host})
	} else {
		log.Warn("postgres not configured, payments disabled", nil)
	}

	return c, nil
}

func (c *Clients) Close() {
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Postgres != nil {
		_ = c.Postgres.Close()
	}
}
