// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-lambda-go/events"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-workers/internal/api"
	"restaurant-workers/internal/app"
	"restaurant-workers/internal/catalog"
	"restaurant-workers/internal/common/aws/awstest"
	"restaurant-workers/internal/common/config"
	"restaurant-workers/internal/common/database"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/dataset"
	"restaurant-workers/internal/models"
	createorder "restaurant-workers/internal/workers/orders/create-order"
	getorders "restaurant-workers/internal/workers/orders/get-orders"
	updateorderstatus "restaurant-workers/internal/workers/orders/update-order-status"
)

const (
	restaurantsCSV = "id,position,name,score,ratings,category\n" +
		"1,19,PJ Fresh,4.5,100,\"Burgers, American\"\n" +
		"2,9,Papa Johns,,0,Pizza\n" +
		"3,4,No Menu Diner,3.9,12,Diner\n"

	menusCSV = "restaurant_id,category,name,description,price\n" +
		"1,Picked for you,Breakfast Sandwich,\"Egg, cheese\",5.49 USD\n" +
		"1,Sides,Fries,,\n" +
		"1,Sides,Onion Rings,,3.00 USD\n" +
		"2,Pizza,Pepperoni,Large pie,12.99 USD\n" +
		"9,Sides,Orphan Soda,,1.00 USD\n"

	topicARN = "arn:aws:sns:us-east-1:123456789012:order-updates"
)

type published struct {
	mu       sync.Mutex
	messages []string
}

type stack struct {
	cfg    *config.Config
	db     *memDB
	redis  *miniredis.Miniredis
	sns    *published
	server *httptest.Server
	mux    *chi.Mux
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func newStack(t *testing.T) *stack {
	t.Helper()
	log := logger.NewTestLogger(t)

	cfgPath := writeFile(t, t.TempDir(), "config.yaml", `
aws:
  region: us-east-1
  s3:
    upload_bucket: review-photos
  sns:
    order_updates_topic_arn: `+topicARN+`
workers:
  create-order:
    enabled: true
    timeout: 5000
`)
	cfg, err := config.LoadFromFile(cfgPath)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	cfg.Database.Redis.Address = mr.Addr()
	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	db := newMemDB()
	sent := &published{}
	clients := &app.Clients{
		DynamoDB: db,
		SNS: &awstest.MockSNS{
			PublishFunc: func(ctx context.Context, params *sns.PublishInput) (*sns.PublishOutput, error) {
				sent.mu.Lock()
				defer sent.mu.Unlock()
				sent.messages = append(sent.messages, awssdk.ToString(params.Message))
				return &sns.PublishOutput{MessageId: awssdk.String("msg-1")}, nil
			},
		},
		Presigner: &awstest.MockPresigner{
			PresignPutFunc: func(ctx context.Context, bucket, key, contentType string, expires time.Duration) (string, error) {
				return "https://" + bucket + ".s3.amazonaws.com/" + key, nil
			},
		},
		Recommender: &awstest.MockRecommender{
			GetRecommendationsFunc: func(ctx context.Context, campaignARN, userID string, numResults int) ([]string, error) {
				return []string{"2", "1"}, nil
			},
		},
		Redis: rdb,
	}

	services := app.BuildServices(cfg, clients, log)
	mux := api.NewRouter(services, cfg.HTTP.AllowedOrigins, log).Setup()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &stack{cfg: cfg, db: db, redis: mr, sns: sent, server: server, mux: mux}
}

func (s *stack) call(t *testing.T, method, path, body string, dest interface{}) int {
	t.Helper()
	req, err := http.NewRequest(method, s.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	if dest != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(dest))
	}
	return res.StatusCode
}

func TestDatasetToMenuAPI(t *testing.T) {
	s := newStack(t)
	log := logger.NewTestLogger(t)
	dir := t.TempDir()

	report, err := dataset.Run(dataset.PipelineConfig{
		RestaurantsPath: writeFile(t, dir, "restaurants.csv", restaurantsCSV),
		MenusPath:       writeFile(t, dir, "restaurant-menus.csv", menusCSV),
		OutputPath:      filepath.Join(dir, "cleaned_restaurant_data.json"),
		Options:         dataset.Options{MaxRestaurants: 500},
	}, log)
	require.NoError(t, err)

	assert.Equal(t, 2, report.RestaurantsEmitted)
	assert.Equal(t, 3, report.ItemsEmitted)
	assert.Equal(t, 1, report.MissingPrice)
	assert.Equal(t, 1, report.RestaurantsWithoutMenu)
	assert.Equal(t, 1, report.OrphanMenuItems)

	store := catalog.NewMenuStore(s.db, s.cfg.AWS.DynamoDB.MenuTable, s.cfg.AWS.DynamoDB.BatchMaxRetries, log)
	summary, err := catalog.Ingest(context.Background(), store, filepath.Join(dir, "cleaned_restaurant_data.json"), log)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Written)
	assert.Equal(t, 3, s.db.count("RestaurantMenu"))

	var items []models.MenuItemRecord
	require.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/restaurants/1/menu", "", &items))
	require.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, "PJ Fresh", item.RestaurantName)
		assert.Equal(t, "Burgers, American", item.Cuisine)
	}
	assert.True(t, s.redis.Exists("menu:1"))

	var notFound map[string]string
	require.Equal(t, http.StatusNotFound, s.call(t, http.MethodGet, "/restaurants/3/menu", "", &notFound))
	assert.Equal(t, "Restaurant menu not found for ID: 3", notFound["error"])

	deleted, err := catalog.Truncate(context.Background(), store, log)
	require.NoError(t, err)
	assert.Equal(t, 3, deleted)
	assert.Zero(t, s.db.count("RestaurantMenu"))
}

func TestOrderLifecycle(t *testing.T) {
	s := newStack(t)

	var created createorder.Output
	require.Equal(t, http.StatusOK, s.call(t, http.MethodPost, "/orders",
		`{"userId":"u-7","items":["Pepperoni","Fries"],"totalAmount":16.49,"restaurantId":"2"}`, &created))
	require.NotEmpty(t, created.OrderID)
	assert.Equal(t, models.OrderStatusPlaced, created.Status)
	assert.Equal(t, []string{"Pepperoni", "Fries"}, created.Items)

	var listed getorders.Output
	require.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/orders?userId=u-7", "", &listed))
	require.Len(t, listed.Orders, 1)
	assert.Equal(t, created.OrderID, listed.Orders[0].OrderID)

	var updated updateorderstatus.Output
	require.Equal(t, http.StatusOK, s.call(t, http.MethodPost, "/orders/status",
		`{"orderId":"`+created.OrderID+`","status":"OUT_FOR_DELIVERY"}`, &updated))
	assert.Equal(t, "OUT_FOR_DELIVERY", updated.NewStatus)
	assert.Equal(t, "msg-1", updated.MessageID)
	require.Len(t, s.sns.messages, 1)
	assert.Equal(t, updateorderstatus.NotificationMessage(created.OrderID, "OUT_FOR_DELIVERY"), s.sns.messages[0])

	require.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/orders?userId=u-7", "", &listed))
	assert.Equal(t, "OUT_FOR_DELIVERY", listed.Orders[0].Status)

	var missing map[string]string
	require.Equal(t, http.StatusNotFound, s.call(t, http.MethodPost, "/orders/status",
		`{"orderId":"nope","status":"DELIVERED"}`, &missing))
	assert.Len(t, s.sns.messages, 1)
}

func TestRatingAfterUpload(t *testing.T) {
	s := newStack(t)

	var upload map[string]interface{}
	require.Equal(t, http.StatusOK, s.call(t, http.MethodPost, "/uploads", "", &upload))
	key, _ := upload["photoKey"].(string)
	require.NotEmpty(t, key)

	body := `{"userId":"u-7","orderId":"o-1","restaurantId":"2","rating":5,"comment":"great","photoKey":"` + key + `"}`
	require.Equal(t, http.StatusCreated, s.call(t, http.MethodPost, "/ratings", body, nil))
	require.Equal(t, http.StatusCreated, s.call(t, http.MethodPost, "/ratings", body, nil))
	assert.Equal(t, 1, s.db.count("Ratings"))
}

func TestLambdaProxy(t *testing.T) {
	s := newStack(t)
	adapter := chiadapter.New(s.mux)

	res, err := adapter.ProxyWithContext(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/orders",
		QueryStringParameters: map[string]string{
			"userId": "nobody",
		},
		RequestContext: events.APIGatewayProxyRequestContext{RequestID: "req-1", Stage: "prod"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var out getorders.Output
	require.NoError(t, json.Unmarshal([]byte(res.Body), &out))
	assert.NotNil(t, out.Orders)
	assert.Empty(t, out.Orders)
}
