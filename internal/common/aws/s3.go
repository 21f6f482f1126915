// internal/common/aws/s3.go
package aws

import (
	"context"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// UploadPresigner issues time-limited PUT URLs.
type UploadPresigner interface {
	PresignPut(ctx context.Context, bucket, key, contentType string, expires time.Duration) (string, error)
}

type S3Presigner struct {
	client *s3.PresignClient
}

func NewS3Presigner(cfg awssdk.Config) *S3Presigner {
	return &S3Presigner{client: s3.NewPresignClient(s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.BaseEndpoint != nil
	}))}
}

func (p *S3Presigner) PresignPut(ctx context.Context, bucket, key, contentType string, expires time.Duration) (string, error) {
	req, err := p.client.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      awssdk.String(bucket),
		Key:         awssdk.String(key),
		ContentType: awssdk.String(contentType),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
