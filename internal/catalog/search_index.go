package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/common/metrics"
	"restaurant-workers/internal/models"
)

// DefaultBulkBatch is the number of documents per bulk request.
const DefaultBulkBatch = 5000

var (
	ErrIndexNotFound = errors.New("index not found")
	ErrSearchFailed  = errors.New("search request failed")
)

// SearchFields are the multi_match fields, item name weighted highest.
var SearchFields = []string{"name^3", "description", "cuisine", "restaurant_name"}

const indexBody = `{
	"settings": {
		"number_of_shards": 1,
		"number_of_replicas": 0
	},
	"mappings": {
		"properties": {
			"restaurant_id": {"type": "keyword"},
			"restaurant_name": {"type": "text"},
			"cuisine": {"type": "keyword"},
			"name": {"type": "text"},
			"description": {"type": "text"},
			"price": {"type": "float"},
			"category": {"type": "keyword"}
		}
	}
}`

// SearchIndex manages the food index.
type SearchIndex struct {
	client    *elasticsearch.Client
	index     string
	bulkBatch int
	logger    logger.Logger
}

func NewSearchIndex(client *elasticsearch.Client, index string, bulkBatch int, log logger.Logger) *SearchIndex {
	if bulkBatch <= 0 {
		bulkBatch = DefaultBulkBatch
	}
	return &SearchIndex{
		client:    client,
		index:     index,
		bulkBatch: bulkBatch,
		logger:    log.WithFields(map[string]interface{}{"index": index}),
	}
}

func (s *SearchIndex) Name() string {
	return s.index
}

// Recreate drops the index when it exists and creates it again with the
// menu item mapping.
func (s *SearchIndex) Recreate(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	res.Body.Close()

	if res.StatusCode == http.StatusOK {
		del, err := s.client.Indices.Delete([]string{s.index}, s.client.Indices.Delete.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("delete index: %w", err)
		}
		defer del.Body.Close()
		if del.IsError() {
			return fmt.Errorf("delete index: %s", del.String())
		}
		s.logger.Info("index deleted", nil)
	}

	create, err := s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithBody(strings.NewReader(indexBody)),
		s.client.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer create.Body.Close()
	if create.IsError() {
		return fmt.Errorf("create index: %s", create.String())
	}

	s.logger.Info("index created", nil)
	return nil
}

// Refresh makes every indexed document visible to search and count.
func (s *SearchIndex) Refresh(ctx context.Context) error {
	res, err := s.client.Indices.Refresh(
		s.client.Indices.Refresh.WithIndex(s.index),
		s.client.Indices.Refresh.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}
	defer res.Body.Close()
	return responseError(res, s.index)
}

// Count returns the number of documents in the index.
func (s *SearchIndex) Count(ctx context.Context) (int64, error) {
	res, err := s.client.Count(
		s.client.Count.WithIndex(s.index),
		s.client.Count.WithContext(ctx),
	)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	defer res.Body.Close()

	if err := responseError(res, s.index); err != nil {
		return 0, err
	}

	var body struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode count: %w", err)
	}
	return body.Count, nil
}

// BulkResult summarizes one BulkIndex run.
type BulkResult struct {
	Indexed           int
	Failed            int
	Batches           int
	BatchesWithErrors int
}

type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		Status int             `json:"status"`
		Error  json.RawMessage `json:"error,omitempty"`
	} `json:"items"`
}

// BulkIndex indexes the records in NDJSON batches, one document per menu
// item with id "{restaurant_id}-{menu_item_id}". A batch reporting item
// errors is counted, not fatal; a failed request is.
func (s *SearchIndex) BulkIndex(ctx context.Context, records []models.MenuItemRecord) (*BulkResult, error) {
	result := &BulkResult{}
	for start := 0; start < len(records); start += s.bulkBatch {
		end := start + s.bulkBatch
		if end > len(records) {
			end = len(records)
		}

		body, err := encodeBulk(s.index, records[start:end])
		if err != nil {
			return result, err
		}

		res, err := s.client.Bulk(bytes.NewReader(body), s.client.Bulk.WithContext(ctx))
		if err != nil {
			return result, fmt.Errorf("bulk request: %w", err)
		}
		failed, err := decodeBulk(res)
		if err != nil {
			return result, err
		}

		result.Batches++
		result.Failed += failed
		result.Indexed += (end - start) - failed
		if failed > 0 {
			result.BatchesWithErrors++
			s.logger.Warn("bulk batch completed with errors", map[string]interface{}{
				"batchSize": end - start,
				"failed":    failed,
			})
		} else {
			s.logger.Info("bulk batch indexed", map[string]interface{}{"batchSize": end - start})
		}
	}

	metrics.CatalogItemsWritten.WithLabelValues("search").Add(float64(result.Indexed))
	return result, nil
}

func encodeBulk(index string, records []models.MenuItemRecord) ([]byte, error) {
	var buf bytes.Buffer
	for _, rec := range records {
		meta := map[string]map[string]string{
			"index": {"_index": index, "_id": rec.DocumentID()},
		}
		metaLine, err := json.Marshal(meta)
		if err != nil {
			return nil, err
		}
		docLine, err := json.Marshal(rec.SearchDocument())
		if err != nil {
			return nil, fmt.Errorf("encode document %s: %w", rec.DocumentID(), err)
		}
		buf.Write(metaLine)
		buf.WriteByte('\n')
		buf.Write(docLine)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func decodeBulk(res *esapi.Response) (int, error) {
	defer res.Body.Close()
	if res.IsError() {
		return 0, fmt.Errorf("bulk request: %s", res.String())
	}

	var br bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&br); err != nil {
		return 0, fmt.Errorf("decode bulk response: %w", err)
	}
	if !br.Errors {
		return 0, nil
	}

	failed := 0
	for _, item := range br.Items {
		for _, op := range item {
			if op.Status > 299 || len(op.Error) > 0 {
				failed++
			}
		}
	}
	return failed, nil
}

// SearchResult holds the _source of each hit.
type SearchResult struct {
	Hits      []map[string]interface{}
	TotalHits int64
	MaxScore  float64
	Took      int64
}

type searchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		MaxScore *float64 `json:"max_score"`
		Hits     []struct {
			Source map[string]interface{} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// BuildSearchQuery returns the fuzzy multi_match body used by Search.
func BuildSearchQuery(query string, from, size int) map[string]interface{} {
	return map[string]interface{}{
		"from": from,
		"size": size,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    SearchFields,
				"fuzziness": "AUTO",
			},
		},
	}
}

func (s *SearchIndex) Search(ctx context.Context, query string, from, size int) (*SearchResult, error) {
	body, err := json.Marshal(BuildSearchQuery(query, from, size))
	if err != nil {
		return nil, err
	}

	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
	}

	start := time.Now()
	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if err := responseError(res, s.index); err != nil {
		return nil, err
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrSearchFailed, err)
	}

	out := &SearchResult{
		Hits:      make([]map[string]interface{}, 0, len(sr.Hits.Hits)),
		TotalHits: sr.Hits.Total.Value,
		Took:      sr.Took,
	}
	if sr.Hits.MaxScore != nil {
		out.MaxScore = *sr.Hits.MaxScore
	}
	if out.Took == 0 {
		out.Took = time.Since(start).Milliseconds()
	}
	for _, hit := range sr.Hits.Hits {
		out.Hits = append(out.Hits, hit.Source)
	}
	return out, nil
}

func responseError(res *esapi.Response, index string) error {
	if !res.IsError() {
		return nil
	}
	raw, _ := io.ReadAll(res.Body)
	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrIndexNotFound, index)
	}
	return fmt.Errorf("%w: status %d: %s", ErrSearchFailed, res.StatusCode, strings.TrimSpace(string(raw)))
}
