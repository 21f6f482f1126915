package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-workers/internal/common/aws/awstest"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/models"
)

const testTable = "RestaurantMenu"

func noBackoff(int) time.Duration { return 0 }

func testRecords(n int) []models.MenuItemRecord {
	out := make([]models.MenuItemRecord, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, models.MenuItemRecord{
			RestaurantID:   "r1",
			MenuItemID:     fmt.Sprintf("r1_%d", i),
			RestaurantName: "Casa",
			Cuisine:        "Mexican",
			Name:           fmt.Sprintf("Dish %d", i),
			Price:          float64(i),
			Category:       "Mains",
		})
	}
	return out
}

func newTestStore(t *testing.T, mock *awstest.MockDynamoDB, maxRetries int) *MenuStore {
	return NewMenuStore(mock, testTable, maxRetries, logger.NewTestLogger(t)).WithBackoff(noBackoff)
}

func TestFlatten(t *testing.T) {
	restaurants := []models.CleanRestaurant{
		{
			ID: "9", Name: "Noodle Bar", Cuisine: "Asian",
			Menu: []models.CleanMenuItem{
				{ID: "9_1", Name: "Ramen", Description: "Pork broth", Price: 12.5, Category: "Soup", RestaurantID: "9"},
				{ID: "9_2", Name: "Gyoza", Price: 6, Category: "Sides", RestaurantID: "9"},
			},
		},
		{
			ID: "3", Name: "Deli", Cuisine: "American",
			Menu: []models.CleanMenuItem{{ID: "3_1", Name: "Reuben", Price: 9, Category: "Sandwiches", RestaurantID: "3"}},
		},
	}

	rows := Flatten(restaurants)

	require.Len(t, rows, 3)
	assert.Equal(t, models.MenuItemRecord{
		RestaurantID:   "9",
		MenuItemID:     "9_1",
		RestaurantName: "Noodle Bar",
		Cuisine:        "Asian",
		Name:           "Ramen",
		Description:    "Pork broth",
		Price:          12.5,
		Category:       "Soup",
	}, rows[0])
	assert.Equal(t, "9-9_2", rows[1].DocumentID())
	assert.Equal(t, "Deli", rows[2].RestaurantName)
}

func TestMenuStore_BatchPut_ChunksOf25(t *testing.T) {
	var sizes []int
	mock := &awstest.MockDynamoDB{
		BatchWriteItemFunc: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			reqs := params.RequestItems[testTable]
			sizes = append(sizes, len(reqs))
			require.NotNil(t, reqs[0].PutRequest)
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}

	written, err := newTestStore(t, mock, 3).BatchPut(context.Background(), testRecords(60))

	require.NoError(t, err)
	assert.Equal(t, 60, written)
	assert.Equal(t, []int{25, 25, 10}, sizes)
}

func TestMenuStore_BatchPut_ResendsUnprocessedItems(t *testing.T) {
	calls := 0
	mock := &awstest.MockDynamoDB{
		BatchWriteItemFunc: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			calls++
			reqs := params.RequestItems[testTable]
			switch calls {
			case 1:
				assert.Len(t, reqs, 5)
				return &dynamodb.BatchWriteItemOutput{
					UnprocessedItems: map[string][]types.WriteRequest{testTable: reqs[3:]},
				}, nil
			case 2:
				assert.Len(t, reqs, 2)
				var rec models.MenuItemRecord
				require.NoError(t, attributevalue.UnmarshalMap(reqs[0].PutRequest.Item, &rec))
				assert.Equal(t, "r1_4", rec.MenuItemID)
				return &dynamodb.BatchWriteItemOutput{}, nil
			}
			t.Fatalf("unexpected call %d", calls)
			return nil, nil
		},
	}

	written, err := newTestStore(t, mock, 3).BatchPut(context.Background(), testRecords(5))

	require.NoError(t, err)
	assert.Equal(t, 5, written)
	assert.Equal(t, 2, calls)
}

func TestMenuStore_BatchPut_RetriesExhausted(t *testing.T) {
	calls := 0
	mock := &awstest.MockDynamoDB{
		BatchWriteItemFunc: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			calls++
			return &dynamodb.BatchWriteItemOutput{UnprocessedItems: params.RequestItems}, nil
		},
	}

	written, err := newTestStore(t, mock, 2).BatchPut(context.Background(), testRecords(3))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries (2) exceeded")
	assert.Equal(t, 0, written)
	assert.Equal(t, 3, calls)
}

func TestMenuStore_BatchPut_RequestError(t *testing.T) {
	mock := &awstest.MockDynamoDB{
		BatchWriteItemFunc: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			return nil, errors.New("throttled")
		},
	}

	_, err := newTestStore(t, mock, 2).BatchPut(context.Background(), testRecords(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestMenuStore_ScanKeys_Paginates(t *testing.T) {
	page := func(ids ...string) []map[string]types.AttributeValue {
		var items []map[string]types.AttributeValue
		for _, id := range ids {
			items = append(items, map[string]types.AttributeValue{
				"restaurant_id": &types.AttributeValueMemberS{Value: "r1"},
				"menu_item_id":  &types.AttributeValueMemberS{Value: id},
			})
		}
		return items
	}

	calls := 0
	mock := &awstest.MockDynamoDB{
		ScanFunc: func(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
			calls++
			require.NotNil(t, params.ProjectionExpression)
			assert.ElementsMatch(t, []string{"restaurant_id", "menu_item_id"}, valuesOf(params.ExpressionAttributeNames))
			if calls == 1 {
				assert.Nil(t, params.ExclusiveStartKey)
				return &dynamodb.ScanOutput{
					Items:            page("r1_1", "r1_2"),
					LastEvaluatedKey: page("r1_2")[0],
				}, nil
			}
			assert.NotNil(t, params.ExclusiveStartKey)
			return &dynamodb.ScanOutput{Items: page("r1_3")}, nil
		},
	}

	keys, err := newTestStore(t, mock, 1).ScanKeys(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []models.MenuItemKey{
		{RestaurantID: "r1", MenuItemID: "r1_1"},
		{RestaurantID: "r1", MenuItemID: "r1_2"},
		{RestaurantID: "r1", MenuItemID: "r1_3"},
	}, keys)
}

func TestMenuStore_BatchDelete(t *testing.T) {
	var deleted int
	mock := &awstest.MockDynamoDB{
		BatchWriteItemFunc: func(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
			for _, req := range params.RequestItems[testTable] {
				require.NotNil(t, req.DeleteRequest)
				assert.Len(t, req.DeleteRequest.Key, 2)
				deleted++
			}
			return &dynamodb.BatchWriteItemOutput{}, nil
		},
	}

	keys := []models.MenuItemKey{{RestaurantID: "1", MenuItemID: "1_1"}, {RestaurantID: "1", MenuItemID: "1_2"}}
	n, err := newTestStore(t, mock, 1).BatchDelete(context.Background(), keys)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, deleted)
}

func TestMenuStore_QueryByRestaurant(t *testing.T) {
	item, err := attributevalue.MarshalMap(testRecords(1)[0])
	require.NoError(t, err)

	mock := &awstest.MockDynamoDB{
		QueryFunc: func(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
			assert.Equal(t, testTable, *params.TableName)
			require.NotNil(t, params.KeyConditionExpression)
			assert.Contains(t, valuesOf(params.ExpressionAttributeNames), "restaurant_id")
			var found bool
			for _, v := range params.ExpressionAttributeValues {
				if s, ok := v.(*types.AttributeValueMemberS); ok && s.Value == "r1" {
					found = true
				}
			}
			assert.True(t, found, "restaurant id must be bound as a value")
			return &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{item}}, nil
		},
	}

	records, err := newTestStore(t, mock, 1).QueryByRestaurant(context.Background(), "r1")

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Dish 1", records[0].Name)
	assert.Equal(t, 1.0, records[0].Price)
}

func valuesOf(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
