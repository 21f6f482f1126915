package globalfoodsearch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-workers/internal/catalog"
	apperrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
)

type MockSearcher struct {
	SearchFunc func(ctx context.Context, query string, from, size int) (*catalog.SearchResult, error)
}

func (m *MockSearcher) Search(ctx context.Context, query string, from, size int) (*catalog.SearchResult, error) {
	return m.SearchFunc(ctx, query, from, size)
}

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second, IndexName: "food_index"}
}

func TestHandler_Execute_Success(t *testing.T) {
	searcher := &MockSearcher{
		SearchFunc: func(ctx context.Context, query string, from, size int) (*catalog.SearchResult, error) {
			assert.Equal(t, "pizza", query)
			assert.Equal(t, 10, from)
			assert.Equal(t, 5, size)
			return &catalog.SearchResult{
				Hits:      []map[string]interface{}{{"name": "Pepperoni Pizza"}},
				TotalHits: 1,
				MaxScore:  2.1,
				Took:      3,
			}, nil
		},
	}
	handler := NewHandler(createTestConfig(), searcher, logger.NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Query: "  pizza ", From: 10, Size: 5})

	require.NoError(t, err)
	require.Len(t, output.Results, 1)
	assert.Equal(t, "Pepperoni Pizza", output.Results[0]["name"])
	assert.EqualValues(t, 1, output.TotalHits)
	assert.Equal(t, 2.1, output.MaxScore)
}

func TestHandler_Execute_SizeClamp(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 20},
		{-3, 20},
		{1, 1},
		{100, 100},
		{500, 100},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("size_%d", tt.in), func(t *testing.T) {
			var got int
			searcher := &MockSearcher{
				SearchFunc: func(ctx context.Context, query string, from, size int) (*catalog.SearchResult, error) {
					got = size
					return &catalog.SearchResult{}, nil
				},
			}
			handler := NewHandler(createTestConfig(), searcher, logger.NewTestLogger(t))

			_, err := handler.Execute(context.Background(), &Input{Query: "tacos", Size: tt.in})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandler_Execute_MissingQuery(t *testing.T) {
	handler := NewHandler(createTestConfig(), &MockSearcher{}, logger.NewTestLogger(t))

	_, err := handler.Execute(context.Background(), &Input{Query: "   "})

	assert.Equal(t, apperrors.ErrCodeMissingParameter, apperrors.AsStandardError(err).Code)
}

func TestHandler_Execute_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.ErrorCode
	}{
		{"index missing", fmt.Errorf("%w: food_index", catalog.ErrIndexNotFound), apperrors.ErrCodeIndexNotFound},
		{"bad query", fmt.Errorf("%w: status 400", catalog.ErrSearchFailed), apperrors.ErrCodeSearchQueryFailed},
		{"timeout", context.DeadlineExceeded, apperrors.ErrCodeSearchTimeout},
		{"connection", errors.New("dial tcp: connection refused"), apperrors.ErrCodeSearchConnectionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &MockSearcher{
				SearchFunc: func(ctx context.Context, query string, from, size int) (*catalog.SearchResult, error) {
					return nil, tt.err
				},
			}
			handler := NewHandler(createTestConfig(), searcher, logger.NewTestLogger(t))

			_, err := handler.Execute(context.Background(), &Input{Query: "sushi"})
			assert.Equal(t, tt.want, apperrors.AsStandardError(err).Code)
		})
	}
}
