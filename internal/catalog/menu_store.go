package catalog

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	appaws "restaurant-workers/internal/common/aws"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/metrics"
	"restaurant-workers/internal/models"
)

// MaxBatchWriteItems is the BatchWriteItem request limit.
const MaxBatchWriteItems = 25

// BackoffFunc returns the wait before retry attempt n (1-based).
type BackoffFunc func(attempt int) time.Duration

// ExponentialBackoff is capped exponential backoff with full jitter.
func ExponentialBackoff(base time.Duration, multiplier float64, limit time.Duration) BackoffFunc {
	return func(attempt int) time.Duration {
		factor := 1.0
		for i := 0; i < attempt; i++ {
			factor *= multiplier
		}
		backoff := time.Duration(float64(base) * factor)
		if backoff > limit {
			backoff = limit
		}
		if backoff <= 0 {
			return 0
		}
		return time.Duration(rand.Int64N(int64(backoff)))
	}
}

// DefaultBackoff is 50ms base, 2x multiplier, 5s cap.
var DefaultBackoff = ExponentialBackoff(50*time.Millisecond, 2.0, 5*time.Second)

// MenuStore reads and writes the RestaurantMenu table.
type MenuStore struct {
	client     appaws.DynamoDBAPI
	table      string
	maxRetries int
	backoff    BackoffFunc
	logger     logger.Logger
}

func NewMenuStore(client appaws.DynamoDBAPI, table string, maxRetries int, log logger.Logger) *MenuStore {
	if maxRetries <= 0 {
		maxRetries = 8
	}
	return &MenuStore{
		client:     client,
		table:      table,
		maxRetries: maxRetries,
		backoff:    DefaultBackoff,
		logger:     log.WithFields(map[string]interface{}{"table": table}),
	}
}

// WithBackoff replaces the retry backoff, mostly so tests do not sleep.
func (s *MenuStore) WithBackoff(fn BackoffFunc) *MenuStore {
	s.backoff = fn
	return s
}

// BatchPut writes every record, resending unprocessed items until the table
// accepts them or the retry budget is spent.
func (s *MenuStore) BatchPut(ctx context.Context, records []models.MenuItemRecord) (int, error) {
	requests := make([]types.WriteRequest, 0, len(records))
	for _, rec := range records {
		item, err := attributevalue.MarshalMap(rec)
		if err != nil {
			return 0, fmt.Errorf("marshal %s/%s: %w", rec.RestaurantID, rec.MenuItemID, err)
		}
		requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
	}

	written, err := s.writeAll(ctx, requests)
	metrics.CatalogItemsWritten.WithLabelValues("dynamodb").Add(float64(written))
	return written, err
}

// BatchDelete removes the given keys with the same chunking and retry rule as BatchPut.
func (s *MenuStore) BatchDelete(ctx context.Context, keys []models.MenuItemKey) (int, error) {
	requests := make([]types.WriteRequest, 0, len(keys))
	for _, k := range keys {
		key, err := attributevalue.MarshalMap(k)
		if err != nil {
			return 0, fmt.Errorf("marshal key %s/%s: %w", k.RestaurantID, k.MenuItemID, err)
		}
		requests = append(requests, types.WriteRequest{DeleteRequest: &types.DeleteRequest{Key: key}})
	}
	return s.writeAll(ctx, requests)
}

func (s *MenuStore) writeAll(ctx context.Context, requests []types.WriteRequest) (int, error) {
	done := 0
	for start := 0; start < len(requests); start += MaxBatchWriteItems {
		end := start + MaxBatchWriteItems
		if end > len(requests) {
			end = len(requests)
		}
		if err := s.writeChunk(ctx, requests[start:end]); err != nil {
			return done, err
		}
		done = end
	}
	return done, nil
}

func (s *MenuStore) writeChunk(ctx context.Context, chunk []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{s.table: chunk}

	for attempt := 0; ; attempt++ {
		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: pending,
		})
		if err != nil {
			return fmt.Errorf("batch write failed: %w", err)
		}

		pending = out.UnprocessedItems
		left := len(pending[s.table])
		if left == 0 {
			return nil
		}
		if attempt >= s.maxRetries {
			return fmt.Errorf("max retries (%d) exceeded: %d items unprocessed", s.maxRetries, left)
		}

		s.logger.Warn("unprocessed items, retrying", map[string]interface{}{
			"unprocessed": left,
			"attempt":     attempt + 1,
		})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.backoff(attempt + 1)):
		}
	}
}

// ScanKeys returns the primary key of every row, projecting only the key attributes.
func (s *MenuStore) ScanKeys(ctx context.Context) ([]models.MenuItemKey, error) {
	proj := expression.NamesList(expression.Name("restaurant_id"), expression.Name("menu_item_id"))
	expr, err := expression.NewBuilder().WithProjection(proj).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &dynamodb.ScanInput{
		TableName:                awssdk.String(s.table),
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
	}

	var keys []models.MenuItemKey
	err = s.scan(ctx, input, func(items []map[string]types.AttributeValue) error {
		var page []models.MenuItemKey
		if err := attributevalue.UnmarshalListOfMaps(items, &page); err != nil {
			return err
		}
		keys = append(keys, page...)
		return nil
	})
	return keys, err
}

// ScanAll returns every row of the table.
func (s *MenuStore) ScanAll(ctx context.Context) ([]models.MenuItemRecord, error) {
	var records []models.MenuItemRecord
	err := s.scan(ctx, &dynamodb.ScanInput{TableName: awssdk.String(s.table)}, func(items []map[string]types.AttributeValue) error {
		var page []models.MenuItemRecord
		if err := attributevalue.UnmarshalListOfMaps(items, &page); err != nil {
			return err
		}
		records = append(records, page...)
		return nil
	})
	return records, err
}

func (s *MenuStore) scan(ctx context.Context, input *dynamodb.ScanInput, onPage func([]map[string]types.AttributeValue) error) error {
	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", s.table, err)
		}
		if err := onPage(page.Items); err != nil {
			return fmt.Errorf("failed to parse items: %w", err)
		}
	}
	return nil
}

// QueryByRestaurant returns the menu of one restaurant, ordered by menu_item_id.
func (s *MenuStore) QueryByRestaurant(ctx context.Context, restaurantID string) ([]models.MenuItemRecord, error) {
	keyExpr := expression.Key("restaurant_id").Equal(expression.Value(restaurantID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyExpr).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	paginator := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:                 awssdk.String(s.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})

	var records []models.MenuItemRecord
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query items: %w", err)
		}
		var items []models.MenuItemRecord
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, fmt.Errorf("failed to parse items: %w", err)
		}
		records = append(records, items...)
	}
	return records, nil
}
