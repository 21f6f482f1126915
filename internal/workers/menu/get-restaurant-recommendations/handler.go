// internal/workers/menu/get-restaurant-recommendations/handler.go
package getrestaurantrecommendations

import (
	"context"
	"errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	appaws "restaurant-workers/internal/common/aws"
	"restaurant-workers/internal/common/camunda"
	"restaurant-workers/internal/common/database"
	apperrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/metrics"
	"restaurant-workers/internal/common/validation"
)

const (
	TaskType = "get-restaurant-recommendations"

	cacheName = "recommendations"
)

var errNoCampaign = errors.New("personalize campaign ARN is not configured")

type Handler struct {
	config      *Config
	recommender appaws.Recommender
	cache       *database.RedisClient
	logger      logger.Logger
	errHandler  *apperrors.ErrorHandler
}

func NewHandler(config *Config, recommender appaws.Recommender, cache *database.RedisClient, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:      config,
		recommender: recommender,
		cache:       cache,
		logger:      l,
		errHandler:  apperrors.NewErrorHandler(l),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := camunda.DecodeVariables(job, &input); err != nil {
		h.errHandler.HandleJobError(context.Background(), client, job, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errHandler.HandleJobError(context.Background(), client, job, err)
		return
	}

	camunda.CompleteJob(client, job, output, h.logger)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if h.config.CampaignARN == "" {
		return nil, apperrors.NewInternalError(errNoCampaign)
	}

	key := "recs:" + input.UserID
	if h.cache != nil {
		var ids []string
		err := h.cache.GetJSON(ctx, key, &ids)
		switch {
		case err == nil:
			metrics.CacheLookups.WithLabelValues(cacheName, "hit").Inc()
			return &Output{UserID: input.UserID, RecommendedRestaurants: ids, Cached: true}, nil
		case errors.Is(err, database.ErrCacheMiss):
			metrics.CacheLookups.WithLabelValues(cacheName, "miss").Inc()
		default:
			metrics.CacheLookups.WithLabelValues(cacheName, "error").Inc()
			h.logger.Warn("recommendation cache read failed", map[string]interface{}{"key": key, "error": err})
		}
	}

	ids, err := h.recommender.GetRecommendations(ctx, h.config.CampaignARN, input.UserID, h.config.NumResults)
	if err != nil {
		return nil, apperrors.NewRecommendationError(err)
	}
	if ids == nil {
		ids = []string{}
	}

	if h.cache != nil {
		if err := h.cache.SetJSON(ctx, key, ids); err != nil {
			h.logger.Warn("failed to cache recommendations", map[string]interface{}{"key": key, "error": err})
		}
	}

	return &Output{UserID: input.UserID, RecommendedRestaurants: ids}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
