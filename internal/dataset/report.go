package dataset

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus/push"

	"restaurant-workers/internal/common/metrics"
)

// Report counts what a run read, dropped and emitted.
type Report struct {
	RestaurantRowsRead int `json:"restaurantRowsRead"`
	MenuRowsRead       int `json:"menuRowsRead"`

	MissingPrice     int `json:"missingPrice"`
	UnparseablePrice int `json:"unparseablePrice"`
	NonPositivePrice int `json:"nonPositivePrice"`

	MissingRestaurantID int `json:"missingRestaurantId"`

	// menu items whose restaurant id has no restaurant row
	OrphanMenuItems int `json:"orphanMenuItems"`

	RestaurantsMissingID   int `json:"restaurantsMissingId"`
	DuplicateRestaurants   int `json:"duplicateRestaurants"`
	RestaurantsWithoutMenu int `json:"restaurantsWithoutMenu"`
	RestaurantsOverLimit   int `json:"restaurantsOverLimit"`

	RestaurantsEmitted int `json:"restaurantsEmitted"`
	ItemsEmitted       int `json:"itemsEmitted"`
}

func NewReport() *Report {
	return &Report{}
}

func (r *Report) exclude(reason ExclusionReason) {
	switch reason {
	case ReasonMissingPrice:
		r.MissingPrice++
	case ReasonUnparseablePrice:
		r.UnparseablePrice++
	case ReasonNonPositivePrice:
		r.NonPositivePrice++
	case ReasonMissingRestaurantID:
		r.MissingRestaurantID++
	}
}

// ExcludedMenuRows is the number of menu rows dropped while cleaning.
func (r *Report) ExcludedMenuRows() int {
	return r.MissingPrice + r.UnparseablePrice + r.NonPositivePrice + r.MissingRestaurantID
}

// Fields renders the report for structured logging.
func (r *Report) Fields() map[string]interface{} {
	return map[string]interface{}{
		"restaurantRowsRead":     r.RestaurantRowsRead,
		"menuRowsRead":           r.MenuRowsRead,
		"missingPrice":           r.MissingPrice,
		"unparseablePrice":       r.UnparseablePrice,
		"nonPositivePrice":       r.NonPositivePrice,
		"missingRestaurantId":    r.MissingRestaurantID,
		"orphanMenuItems":        r.OrphanMenuItems,
		"restaurantsMissingId":   r.RestaurantsMissingID,
		"duplicateRestaurants":   r.DuplicateRestaurants,
		"restaurantsWithoutMenu": r.RestaurantsWithoutMenu,
		"restaurantsOverLimit":   r.RestaurantsOverLimit,
		"restaurantsEmitted":     r.RestaurantsEmitted,
		"itemsEmitted":           r.ItemsEmitted,
	}
}

// export adds the counts to the process metrics.
func (r *Report) export() {
	metrics.DatasetRowsExcluded.WithLabelValues(string(ReasonMissingPrice)).Add(float64(r.MissingPrice))
	metrics.DatasetRowsExcluded.WithLabelValues(string(ReasonUnparseablePrice)).Add(float64(r.UnparseablePrice))
	metrics.DatasetRowsExcluded.WithLabelValues(string(ReasonNonPositivePrice)).Add(float64(r.NonPositivePrice))
	metrics.DatasetRowsExcluded.WithLabelValues(string(ReasonMissingRestaurantID)).Add(float64(r.MissingRestaurantID))
	metrics.DatasetRowsExcluded.WithLabelValues("orphan_menu_item").Add(float64(r.OrphanMenuItems))
	metrics.DatasetRowsExcluded.WithLabelValues("restaurant_without_menu").Add(float64(r.RestaurantsWithoutMenu))
	metrics.DatasetRowsExcluded.WithLabelValues("restaurant_over_limit").Add(float64(r.RestaurantsOverLimit))
	metrics.DatasetRowsExcluded.WithLabelValues("restaurant_missing_id").Add(float64(r.RestaurantsMissingID))
	metrics.DatasetRowsExcluded.WithLabelValues("duplicate_restaurant").Add(float64(r.DuplicateRestaurants))
	metrics.DatasetRestaurantsEmitted.Add(float64(r.RestaurantsEmitted))
}

// Push exports the report and sends the dataset counters to the Prometheus
// pushgateway at url under job. A one-shot run has no /metrics endpoint to
// scrape.
func (r *Report) Push(url, job string) error {
	r.export()
	err := push.New(url, job).
		Collector(metrics.DatasetRowsExcluded).
		Collector(metrics.DatasetRestaurantsEmitted).
		Push()
	if err != nil {
		return fmt.Errorf("push dataset metrics: %w", err)
	}
	return nil
}
