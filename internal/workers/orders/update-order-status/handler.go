// internal/workers/orders/update-order-status/handler.go
package updateorderstatus

import (
	"context"
	"errors"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	appaws "restaurant-workers/internal/common/aws"
	"restaurant-workers/internal/common/camunda"
	apperrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
)

const (
	TaskType = "update-order-status"

	NotificationSubject = "Restaurant Order Update"
	SuccessMessage      = "Status updated and notification sent"
)

type Handler struct {
	config     *Config
	db         appaws.DynamoDBAPI
	notifier   appaws.SNSService
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, db appaws.DynamoDBAPI, notifier appaws.SNSService, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		db:         db,
		notifier:   notifier,
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

// NotificationMessage is the text published to order subscribers.
func NotificationMessage(orderID, status string) string {
	return fmt.Sprintf("Update for Order #%s: Your order is now %s!", orderID, status)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.OrderID == "" || input.Status == "" {
		return nil, apperrors.NewMissingParameterError("orderId or status")
	}
	if h.config.TopicARN == "" {
		return nil, apperrors.NewInternalError(errors.New("order updates topic is not configured"))
	}

	if err := h.updateStatus(ctx, input.OrderID, input.Status); err != nil {
		return nil, err
	}

	out, err := h.notifier.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(h.config.TopicARN),
		Message:  awssdk.String(NotificationMessage(input.OrderID, input.Status)),
		Subject:  awssdk.String(NotificationSubject),
	})
	if err != nil {
		// the status write already landed; the caller sees the failed notification
		h.logger.Error("status stored but notification failed", map[string]interface{}{
			"orderId": input.OrderID,
			"error":   err.Error(),
		})
		return nil, apperrors.NewNotificationError(err)
	}

	h.logger.Info("order status updated", map[string]interface{}{
		"orderId": input.OrderID,
		"status":  input.Status,
	})

	return &Output{
		OrderID:   input.OrderID,
		NewStatus: input.Status,
		Message:   SuccessMessage,
		MessageID: awssdk.ToString(out.MessageId),
	}, nil
}

func (h *Handler) updateStatus(ctx context.Context, orderID, status string) error {
	update := expression.Set(expression.Name("status"), expression.Value(status))
	cond := expression.AttributeExists(expression.Name("orderId"))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("failed to build expression: %w", err))
	}

	key, err := attributevalue.MarshalMap(map[string]string{"orderId": orderID})
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	_, err = h.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 awssdk.String(h.config.TableName),
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return apperrors.NewNotFoundError("Order", fmt.Sprintf("orderId: %s", orderID))
		}
		return apperrors.NewDynamoDBError("UpdateItem", err)
	}
	return nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
