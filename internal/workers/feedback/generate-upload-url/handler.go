// internal/workers/feedback/generate-upload-url/handler.go
package generateuploadurl

import (
	"context"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	appaws "restaurant-workers/internal/common/aws"
	"restaurant-workers/internal/common/camunda"
	apperrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
)

const (
	TaskType = "generate-upload-url"
)

var errNoBucket = errors.New("upload bucket is not configured")

type Handler struct {
	config     *Config
	presigner  appaws.UploadPresigner
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, presigner appaws.UploadPresigner, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		presigner:  presigner,
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
	if h.config.Bucket == "" {
		return nil, apperrors.NewInternalError(errNoBucket)
	}

	key := ObjectKey(input.UserID, input.OrderID, uuid.NewString())

	url, err := h.presigner.PresignPut(ctx, h.config.Bucket, key, ContentType, h.config.Expiry)
	if err != nil {
		return nil, apperrors.NewUploadURLError(err)
	}

	h.logger.Debug("upload url issued", map[string]interface{}{"photoKey": key})

	return &Output{
		UploadURL: url,
		PhotoKey:  key,
		ExpiresIn: int(h.config.Expiry.Seconds()),
	}, nil
}

// ObjectKey is "uploads/{userId}/{orderId}/{fileID}.jpg" with the defaults
// substituted for empty ids.
func ObjectKey(userID, orderID, fileID string) string {
	if userID == "" {
		userID = DefaultUserID
	}
	if orderID == "" {
		orderID = DefaultOrderID
	}
	return fmt.Sprintf("uploads/%s/%s/%s.jpg", userID, orderID, fileID)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
