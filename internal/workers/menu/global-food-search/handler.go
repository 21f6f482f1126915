// internal/workers/menu/global-food-search/handler.go
package globalfoodsearch

import (
	"context"
	"errors"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"restaurant-workers/internal/catalog"
	"restaurant-workers/internal/common/camunda"
	apperrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/validation"
)

const (
	TaskType = "global-food-search"
)

// Searcher is implemented by catalog.SearchIndex.
type Searcher interface {
	Search(ctx context.Context, query string, from, size int) (*catalog.SearchResult, error)
}

type Handler struct {
	config     *Config
	index      Searcher
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, index Searcher, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		index:      index,
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
	input.Query = strings.TrimSpace(input.Query)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	size := clampSize(input.Size)
	result, err := h.index.Search(ctx, input.Query, input.From, size)
	if err != nil {
		return nil, h.mapError(ctx, err)
	}

	h.logger.Debug("search completed", map[string]interface{}{
		"query":     input.Query,
		"totalHits": result.TotalHits,
		"took":      result.Took,
	})

	return &Output{
		Results:   result.Hits,
		TotalHits: result.TotalHits,
		MaxScore:  result.MaxScore,
		Took:      result.Took,
	}, nil
}

func (h *Handler) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewSearchTimeoutError()
	case errors.Is(err, catalog.ErrIndexNotFound):
		return apperrors.NewIndexNotFoundError(h.config.IndexName)
	case errors.Is(err, catalog.ErrSearchFailed):
		return apperrors.NewSearchQueryError(err)
	default:
		return apperrors.NewSearchConnectionError(err)
	}
}

// clampSize applies the default page size and the upper bound.
func clampSize(size int) int {
	if size < 1 {
		return DefaultSize
	}
	if size > MaxSize {
		return MaxSize
	}
	return size
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
