// Package aws builds the AWS SDK clients shared by workers, tools and the API.
package aws

import (
	"context"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	appconfig "restaurant-workers/internal/common/config"
)

// LoadConfig resolves the default credential chain for the configured region.
// With a custom endpoint (local stacks) static dummy credentials are used.
func LoadConfig(ctx context.Context, cfg appconfig.AWSConfig) (awssdk.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return awssdk.Config{}, err
	}
	if cfg.Endpoint != "" {
		awsCfg.BaseEndpoint = awssdk.String(cfg.Endpoint)
	}
	return awsCfg, nil
}
