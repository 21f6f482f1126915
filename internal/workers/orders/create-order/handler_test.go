package createorder

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-workers/internal/common/aws/awstest"
	apperrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/models"
)

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second, TableName: "RestaurantOrders"}
}

func TestNormalizeItems_AcceptedShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain list", `["Burger", "Fries"]`},
		{"typed values", `[{"S": "Burger"}, {"S": "Fries"}]`},
		{"dynamodb list", `{"L": [{"S": "Burger"}, {"S": "Fries"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := NormalizeItems(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, []string{"Burger", "Fries"}, items)
		})
	}
}

func TestNormalizeItems_Stringifies(t *testing.T) {
	items, err := NormalizeItems(json.RawMessage(`[3, {"N": "2.50"}, true, {"a": 1, "b": 2}]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "2.50", "true", `{"a":1,"b":2}`}, items)
}

func TestNormalizeItems_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want apperrors.ErrorCode
	}{
		{"absent", ``, apperrors.ErrCodeMissingParameter},
		{"null", `null`, apperrors.ErrCodeMissingParameter},
		{"empty list", `[]`, apperrors.ErrCodeMissingParameter},
		{"string", `"Burger"`, apperrors.ErrCodeValidationFailed},
		{"object without L", `{"S": "Burger"}`, apperrors.ErrCodeValidationFailed},
		{"malformed", `[`, apperrors.ErrCodeValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeItems(json.RawMessage(tt.raw))
			assert.Equal(t, tt.want, apperrors.AsStandardError(err).Code)
		})
	}
}

func TestHandler_Execute_StoresOrder(t *testing.T) {
	var stored models.Order
	db := &awstest.MockDynamoDB{
		PutItemFunc: func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			assert.Equal(t, "RestaurantOrders", *params.TableName)
			require.NoError(t, attributevalue.UnmarshalMap(params.Item, &stored))
			return &dynamodb.PutItemOutput{}, nil
		},
	}
	handler := NewHandler(createTestConfig(), db, logger.NewTestLogger(t))
	handler.now = func() time.Time { return time.Date(2024, 6, 2, 18, 30, 0, 123000000, time.UTC) }

	output, err := handler.Execute(context.Background(), &Input{
		UserID:       "user-1",
		Items:        json.RawMessage(`{"L":[{"S":"Burger"},{"S":"Fries"}]}`),
		TotalAmount:  18.75,
		RestaurantID: "42",
		PaymentID:    "txn-1",
	})
	require.NoError(t, err)

	assert.Equal(t, output.OrderID, stored.OrderID)
	assert.Equal(t, "user-1", stored.UserID)
	assert.Equal(t, []string{"Burger", "Fries"}, stored.Items)
	assert.Equal(t, 18.75, stored.Amount)
	assert.Equal(t, "txn-1", stored.PaymentID)
	assert.Equal(t, "ORDER_PLACED", stored.Status)
	assert.Equal(t, "2024-06-02T18:30:00.123000Z", stored.Timestamp)
	assert.Equal(t, "Order Created", output.Message)
}

func TestHandler_Execute_MissingUser(t *testing.T) {
	handler := NewHandler(createTestConfig(), &awstest.MockDynamoDB{}, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{Items: json.RawMessage(`["Burger"]`)})

	stdErr := apperrors.AsStandardError(err)
	assert.Equal(t, apperrors.ErrCodeMissingParameter, stdErr.Code)
	assert.Equal(t, "Missing userId", stdErr.Message)
}

func TestHandler_Execute_PutFailure(t *testing.T) {
	db := &awstest.MockDynamoDB{
		PutItemFunc: func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			return nil, errors.New("throttled")
		},
	}
	handler := NewHandler(createTestConfig(), db, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{UserID: "u", Items: json.RawMessage(`["Soup"]`)})
	assert.Equal(t, apperrors.ErrCodeDynamoDBFailed, apperrors.AsStandardError(err).Code)
}
