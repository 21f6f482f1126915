// internal/workers/menu/global-food-search/models.go
package globalfoodsearch

type Input struct {
	Query string `json:"query" validate:"required"`
	From  int    `json:"from,omitempty" validate:"gte=0"`
	Size  int    `json:"size,omitempty"`
}

type Output struct {
	Results   []map[string]interface{} `json:"results"`
	TotalHits int64                    `json:"totalHits"`
	MaxScore  float64                  `json:"maxScore"`
	Took      int64                    `json:"took"` // milliseconds
}
