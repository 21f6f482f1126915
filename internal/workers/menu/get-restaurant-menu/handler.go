// internal/workers/menu/get-restaurant-menu/handler.go
package getrestaurantmenu

import (
	"context"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"restaurant-workers/internal/common/camunda"
	"restaurant-workers/internal/common/database"
	apperrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/metrics"
	"restaurant-workers/internal/common/validation"
	"restaurant-workers/internal/models"
)

const (
	TaskType = "get-restaurant-menu"

	cacheName = "menu"
)

// MenuReader is implemented by catalog.MenuStore.
type MenuReader interface {
	QueryByRestaurant(ctx context.Context, restaurantID string) ([]models.MenuItemRecord, error)
}

type Handler struct {
	config     *Config
	store      MenuReader
	cache      *database.RedisClient
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

// NewHandler builds the handler; cache may be nil to always read the table.
func NewHandler(config *Config, store MenuReader, cache *database.RedisClient, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		store:      store,
		cache:      cache,
		logger:     l,
		errHandler: apperrors.NewErrorHandler(l),
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

	key := cacheKey(input.RestaurantID)
	if items, ok := h.fromCache(ctx, key); ok {
		return &Output{RestaurantID: input.RestaurantID, Items: items, Count: len(items), Cached: true}, nil
	}

	items, err := h.store.QueryByRestaurant(ctx, input.RestaurantID)
	if err != nil {
		return nil, apperrors.NewDynamoDBError("Query", err)
	}
	if len(items) == 0 {
		return nil, apperrors.NewNotFoundError("Restaurant menu", fmt.Sprintf("restaurantId: %s", input.RestaurantID))
	}

	if h.cache != nil {
		if err := h.cache.SetJSON(ctx, key, items); err != nil {
			h.logger.Warn("failed to cache menu", map[string]interface{}{
				"restaurantId": input.RestaurantID,
				"error":        err,
			})
		}
	}

	return &Output{RestaurantID: input.RestaurantID, Items: items, Count: len(items)}, nil
}

// fromCache never fails the request: a broken cache only costs a table read.
func (h *Handler) fromCache(ctx context.Context, key string) ([]models.MenuItemRecord, bool) {
	if h.cache == nil {
		return nil, false
	}

	var items []models.MenuItemRecord
	err := h.cache.GetJSON(ctx, key, &items)
	switch {
	case err == nil && len(items) > 0:
		metrics.CacheLookups.WithLabelValues(cacheName, "hit").Inc()
		return items, true
	case err == nil, errors.Is(err, database.ErrCacheMiss):
		metrics.CacheLookups.WithLabelValues(cacheName, "miss").Inc()
	default:
		metrics.CacheLookups.WithLabelValues(cacheName, "error").Inc()
		h.logger.Warn("menu cache read failed", map[string]interface{}{"key": key, "error": err})
	}
	return nil, false
}

func cacheKey(restaurantID string) string {
	return "menu:" + restaurantID
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
