// internal/workers/feedback/create-rating/handler.go
package createrating

import (
	"context"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	appaws "restaurant-workers/internal/common/aws"
	"restaurant-workers/internal/common/camunda"
	apperrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/validation"
	"restaurant-workers/internal/models"
)

const (
	TaskType = "create-rating"

	SuccessMessage = "Rating saved successfully"
)

type Handler struct {
	config     *Config
	db         appaws.DynamoDBAPI
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
	now        func() time.Time
}

func NewHandler(config *Config, db appaws.DynamoDBAPI, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		db:         db,
		logger:     l,
		errHandler: apperrors.NewErrorHandler(l),
		now:        time.Now,
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

	rating := models.Rating{
		UserOrderID:  models.UserOrderKey(input.UserID, input.OrderID),
		RestaurantID: input.RestaurantID,
		CreatedAt:    h.now().UTC().Format(time.RFC3339),
		RatingID:     uuid.NewString(),
		UserID:       input.UserID,
		OrderID:      input.OrderID,
		Rating:       input.Rating,
		Comment:      input.Comment,
		PhotoKey:     input.PhotoKey,
	}

	item, err := attributevalue.MarshalMap(rating)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	// a second rating for the same order replaces the first
	_, err = h.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: awssdk.String(h.config.TableName),
		Item:      item,
	})
	if err != nil {
		return nil, apperrors.NewDynamoDBError("PutItem", err)
	}

	h.logger.Info("rating stored", map[string]interface{}{
		"ratingId":     rating.RatingID,
		"restaurantId": rating.RestaurantID,
		"rating":       rating.Rating,
	})

	return &Output{
		RatingID:    rating.RatingID,
		UserOrderID: rating.UserOrderID,
		CreatedAt:   rating.CreatedAt,
		Message:     SuccessMessage,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
