package createrating

import (
	"context"
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
	return &Config{Timeout: 5 * time.Second, TableName: "Ratings"}
}

func createTestInput() *Input {
	return &Input{
		UserID:       "user-1",
		OrderID:      "order-9",
		RestaurantID: "42",
		Rating:       4,
		Comment:      "Great tacos",
		PhotoKey:     "uploads/user-1/order-9/abc.jpg",
	}
}

func TestHandler_Execute_StoresRating(t *testing.T) {
	var stored models.Rating
	db := &awstest.MockDynamoDB{
		PutItemFunc: func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			assert.Equal(t, "Ratings", *params.TableName)
			require.NoError(t, attributevalue.UnmarshalMap(params.Item, &stored))
			return &dynamodb.PutItemOutput{}, nil
		},
	}
	handler := NewHandler(createTestConfig(), db, logger.NewTestLogger(t))
	handler.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	output, err := handler.Execute(context.Background(), createTestInput())
	require.NoError(t, err)

	assert.Equal(t, "user-1#order-9", stored.UserOrderID)
	assert.Equal(t, "42", stored.RestaurantID)
	assert.Equal(t, 4, stored.Rating)
	assert.Equal(t, "Great tacos", stored.Comment)
	assert.Equal(t, "2024-05-01T12:00:00Z", stored.CreatedAt)
	assert.Len(t, stored.RatingID, 36)

	assert.Equal(t, stored.RatingID, output.RatingID)
	assert.Equal(t, "Rating saved successfully", output.Message)
}

func TestHandler_Execute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Input)
		want   apperrors.ErrorCode
	}{
		{"missing user", func(in *Input) { in.UserID = "" }, apperrors.ErrCodeMissingParameter},
		{"missing order", func(in *Input) { in.OrderID = "" }, apperrors.ErrCodeMissingParameter},
		{"missing restaurant", func(in *Input) { in.RestaurantID = "" }, apperrors.ErrCodeMissingParameter},
		{"rating zero", func(in *Input) { in.Rating = 0 }, apperrors.ErrCodeValidationFailed},
		{"rating six", func(in *Input) { in.Rating = 6 }, apperrors.ErrCodeValidationFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(createTestConfig(), &awstest.MockDynamoDB{}, logger.NewTestLogger(t))
			input := createTestInput()
			tt.mutate(input)

			_, err := handler.Execute(context.Background(), input)
			assert.Equal(t, tt.want, apperrors.AsStandardError(err).Code)
		})
	}
}

func TestHandler_Execute_PutFailure(t *testing.T) {
	db := &awstest.MockDynamoDB{
		PutItemFunc: func(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			return nil, errors.New("ResourceNotFoundException: table missing")
		},
	}
	handler := NewHandler(createTestConfig(), db, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), createTestInput())

	stdErr := apperrors.AsStandardError(err)
	assert.Equal(t, apperrors.ErrCodeDynamoDBFailed, stdErr.Code)
	assert.Contains(t, stdErr.Details, "PutItem")
}
