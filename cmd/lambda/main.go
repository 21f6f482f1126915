// cmd/lambda/main.go
package main

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"go.uber.org/zap"

	"restaurant-workers/internal/api"
	"restaurant-workers/internal/app"
	"restaurant-workers/internal/common/camunda"
	"restaurant-workers/internal/common/config"
	"restaurant-workers/internal/common/logger"
)

// Cold starts must stay short; a backend that is down fails the invocation
// instead of waiting out the worker manager's retry budget.
var coldStartRetry = &camunda.RetryConfig{
	MaxRetries: 2,
	BaseDelay:  200 * time.Millisecond,
	MaxDelay:   time.Second,
}

var chiLambda *chiadapter.ChiLambda

func init() {
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, "json")
	log := logger.NewZapAdapter(zapLog)

	clients, err := app.Connect(context.Background(), cfg, coldStartRetry, log)
	if err != nil {
		zapLog.Fatal("backend connection failed", zap.Error(err))
	}

	router := api.NewRouter(app.BuildServices(cfg, clients, log), cfg.HTTP.AllowedOrigins, log)
	chiLambda = chiadapter.New(router.Setup())

	zapLog.Info("Lambda cold start completed", zap.Duration("duration", time.Since(start)))
}

// Handler serves API Gateway REST (v1 payload) proxy events.
func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return chiLambda.ProxyWithContext(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
