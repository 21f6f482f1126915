package e2e

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// memTable is a keyed item store. queryAttr is the attribute the table (or
// its one index) is queried on.
type memTable struct {
	keys      []string
	queryAttr string
	sortAttr  string
	items     map[string]map[string]types.AttributeValue
}

// memDB is an in-memory stand-in for the handful of DynamoDB calls the
// services make.
type memDB struct {
	mu     sync.Mutex
	tables map[string]*memTable
}

func newMemDB() *memDB {
	return &memDB{tables: map[string]*memTable{
		"RestaurantMenu":   {keys: []string{"restaurant_id", "menu_item_id"}, queryAttr: "restaurant_id"},
		"RestaurantOrders": {keys: []string{"orderId"}, queryAttr: "userId", sortAttr: "timestamp"},
		"Ratings":          {keys: []string{"userOrderId"}, queryAttr: "restaurantId"},
	}}
}

func (m *memDB) table(name *string) (*memTable, error) {
	if name == nil {
		return nil, fmt.Errorf("table name missing")
	}
	t, ok := m.tables[*name]
	if !ok {
		return nil, &types.ResourceNotFoundException{Message: name}
	}
	if t.items == nil {
		t.items = map[string]map[string]types.AttributeValue{}
	}
	return t, nil
}

func str(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func (t *memTable) keyOf(item map[string]types.AttributeValue) string {
	parts := make([]string, 0, len(t.keys))
	for _, k := range t.keys {
		parts = append(parts, str(item[k]))
	}
	return strings.Join(parts, "#")
}

func (m *memDB) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables[name].items)
}

func (m *memDB) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table(params.TableName)
	if err != nil {
		return nil, err
	}
	return &dynamodb.GetItemOutput{Item: t.items[t.keyOf(params.Key)]}, nil
}

func (m *memDB) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table(params.TableName)
	if err != nil {
		return nil, err
	}
	t.items[t.keyOf(params.Item)] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

// UpdateItem supports the single "SET status" update with an existence condition.
func (m *memDB) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table(params.TableName)
	if err != nil {
		return nil, err
	}
	item, ok := t.items[t.keyOf(params.Key)]
	if !ok {
		return nil, &types.ConditionalCheckFailedException{}
	}
	update := deref(params.UpdateExpression)
	for placeholder, name := range params.ExpressionAttributeNames {
		if name != "status" || !strings.Contains(update, placeholder) {
			continue
		}
		for vp, v := range params.ExpressionAttributeValues {
			if strings.Contains(update, vp) {
				item["status"] = v
			}
		}
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (m *memDB) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table(params.TableName)
	if err != nil {
		return nil, err
	}
	var want string
	for _, v := range params.ExpressionAttributeValues {
		want = str(v)
	}

	var out []map[string]types.AttributeValue
	for _, item := range t.items {
		if str(item[t.queryAttr]) == want {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if t.sortAttr == "" {
			return t.keyOf(out[i]) < t.keyOf(out[j])
		}
		a, b := str(out[i][t.sortAttr]), str(out[j][t.sortAttr])
		if params.ScanIndexForward != nil && !*params.ScanIndexForward {
			return a > b
		}
		return a < b
	})
	return &dynamodb.QueryOutput{Items: out, Count: int32(len(out))}, nil
}

func (m *memDB) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table(params.TableName)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]types.AttributeValue, 0, len(t.items))
	for _, item := range t.items {
		out = append(out, item)
	}
	return &dynamodb.ScanOutput{Items: out, Count: int32(len(out))}, nil
}

func (m *memDB) BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, requests := range params.RequestItems {
		t, err := m.table(&name)
		if err != nil {
			return nil, err
		}
		for _, req := range requests {
			switch {
			case req.PutRequest != nil:
				t.items[t.keyOf(req.PutRequest.Item)] = req.PutRequest.Item
			case req.DeleteRequest != nil:
				delete(t.items, t.keyOf(req.DeleteRequest.Key))
			}
		}
	}
	return &dynamodb.BatchWriteItemOutput{}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
