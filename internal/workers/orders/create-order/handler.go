// internal/workers/orders/create-order/handler.go
package createorder

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
	"restaurant-workers/internal/models"
)

const (
	TaskType = "create-order"

	SuccessMessage = "Order Created"
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
	if input.UserID == "" {
		return nil, apperrors.NewMissingParameterError("userId")
	}
	items, err := NormalizeItems(input.Items)
	if err != nil {
		return nil, err
	}

	order := models.Order{
		OrderID:      uuid.NewString(),
		UserID:       input.UserID,
		RestaurantID: input.RestaurantID,
		Items:        items,
		Amount:       input.TotalAmount,
		PaymentID:    input.PaymentID,
		Status:       models.OrderStatusPlaced,
		Timestamp:    h.now().UTC().Format(models.OrderTimestampLayout),
	}

	item, err := attributevalue.MarshalMap(order)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	_, err = h.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: awssdk.String(h.config.TableName),
		Item:      item,
	})
	if err != nil {
		return nil, apperrors.NewDynamoDBError("PutItem", err)
	}

	h.logger.Info("order created", map[string]interface{}{
		"orderId":   order.OrderID,
		"userId":    order.UserID,
		"itemCount": len(order.Items),
	})

	return &Output{
		OrderID:   order.OrderID,
		Status:    order.Status,
		Items:     order.Items,
		Timestamp: order.Timestamp,
		Message:   SuccessMessage,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
