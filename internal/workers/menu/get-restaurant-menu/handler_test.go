package getrestaurantmenu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-workers/internal/common/database"
	apperrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/models"
)

type MockMenuReader struct {
	QueryByRestaurantFunc func(ctx context.Context, restaurantID string) ([]models.MenuItemRecord, error)
	calls                 int
}

func (m *MockMenuReader) QueryByRestaurant(ctx context.Context, restaurantID string) ([]models.MenuItemRecord, error) {
	m.calls++
	return m.QueryByRestaurantFunc(ctx, restaurantID)
}

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second, TableName: "RestaurantMenu"}
}

func setupCache(t *testing.T) (*database.RedisClient, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return database.NewRedisFromClient(client, 5*time.Minute), mr
}

func sampleMenu(rid string) []models.MenuItemRecord {
	return []models.MenuItemRecord{
		{RestaurantID: rid, MenuItemID: rid + "_1", RestaurantName: "Casa", Cuisine: "Mexican", Name: "Tacos", Price: 9.5, Category: "Mains"},
		{RestaurantID: rid, MenuItemID: rid + "_2", RestaurantName: "Casa", Cuisine: "Mexican", Name: "Churros", Price: 4, Category: "Dessert"},
	}
}

func TestHandler_Execute_MissingRestaurantID(t *testing.T) {
	handler := NewHandler(createTestConfig(), &MockMenuReader{}, nil, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{})

	stdErr := apperrors.AsStandardError(err)
	assert.Equal(t, apperrors.ErrCodeMissingParameter, stdErr.Code)
	assert.Equal(t, "Missing restaurantId", stdErr.Message)
}

func TestHandler_Execute_ReadsTableThenCache(t *testing.T) {
	cache, mr := setupCache(t)
	store := &MockMenuReader{
		QueryByRestaurantFunc: func(ctx context.Context, restaurantID string) ([]models.MenuItemRecord, error) {
			assert.Equal(t, "42", restaurantID)
			return sampleMenu("42"), nil
		},
	}
	handler := NewHandler(createTestConfig(), store, cache, logger.NewTestLogger(t))

	first, err := handler.Execute(context.Background(), &Input{RestaurantID: "42"})
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 2, first.Count)
	assert.True(t, mr.Exists("menu:42"))
	assert.Equal(t, 5*time.Minute, mr.TTL("menu:42"))

	second, err := handler.Execute(context.Background(), &Input{RestaurantID: "42"})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Items, second.Items)
	assert.Equal(t, 1, store.calls)
}

func TestHandler_Execute_NotFound(t *testing.T) {
	cache, mr := setupCache(t)
	store := &MockMenuReader{
		QueryByRestaurantFunc: func(ctx context.Context, restaurantID string) ([]models.MenuItemRecord, error) {
			return nil, nil
		},
	}
	handler := NewHandler(createTestConfig(), store, cache, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{RestaurantID: "404"})

	stdErr := apperrors.AsStandardError(err)
	assert.Equal(t, apperrors.ErrCodeNotFound, stdErr.Code)
	assert.Contains(t, stdErr.Details, "404")
	assert.False(t, mr.Exists("menu:404"), "empty results are not cached")
}

func TestHandler_Execute_StoreFailureIsRetryable(t *testing.T) {
	store := &MockMenuReader{
		QueryByRestaurantFunc: func(ctx context.Context, restaurantID string) ([]models.MenuItemRecord, error) {
			return nil, errors.New("ProvisionedThroughputExceededException")
		},
	}
	handler := NewHandler(createTestConfig(), store, nil, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{RestaurantID: "1"})

	stdErr := apperrors.AsStandardError(err)
	assert.Equal(t, apperrors.ErrCodeDynamoDBFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestHandler_Execute_CacheErrorFallsBackToTable(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet("menu:7").SetErr(errors.New("connection refused"))
	mock.Regexp().ExpectSet("menu:7", `.*`, 5*time.Minute).SetErr(errors.New("connection refused"))

	store := &MockMenuReader{
		QueryByRestaurantFunc: func(ctx context.Context, restaurantID string) ([]models.MenuItemRecord, error) {
			return sampleMenu("7"), nil
		},
	}
	handler := NewHandler(createTestConfig(), store, database.NewRedisFromClient(client, 5*time.Minute), logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{RestaurantID: "7"})

	require.NoError(t, err)
	assert.Equal(t, 2, output.Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
