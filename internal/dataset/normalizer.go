// Package dataset turns the raw restaurant and menu CSV exports into the
// nested restaurant document consumed by the catalog ingest and search tools.
package dataset

import (
	"fmt"

	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/models"
)

const (
	DefaultMaxRestaurants = 500

	PlaceholderImage       = "https://s3.amazonaws.com/project-assets/default-restaurant.jpg"
	PlaceholderDescription = "Authentic food and fast delivery."
)

// Options controls a normalization run.
type Options struct {
	MaxRestaurants int
	PricePolicy    PricePolicy
}

// Normalizer is a single forward pass over both inputs. It holds no state
// between runs; equal inputs give equal outputs.
type Normalizer struct {
	opts   Options
	logger logger.Logger
}

func NewNormalizer(opts Options, log logger.Logger) *Normalizer {
	if opts.MaxRestaurants <= 0 {
		opts.MaxRestaurants = DefaultMaxRestaurants
	}
	return &Normalizer{
		opts:   opts,
		logger: log.WithFields(map[string]interface{}{"component": "dataset-normalizer"}),
	}
}

// menuIndex is an ordered multimap restaurant id -> surviving items.
type menuIndex struct {
	items map[string][]models.CleanMenuItem
}

func (m *menuIndex) add(item models.CleanMenuItem) {
	m.items[item.RestaurantID] = append(m.items[item.RestaurantID], item)
}

// BuildMenu cleans menu rows and groups the survivors by restaurant id,
// numbering them 1..n per restaurant in input order.
func BuildMenu(rows []models.RawMenuRecord, policy PricePolicy, report *Report) map[string][]models.CleanMenuItem {
	idx := &menuIndex{items: make(map[string][]models.CleanMenuItem)}

	for _, row := range rows {
		report.MenuRowsRead++

		if row.RestaurantID == "" {
			report.exclude(ReasonMissingRestaurantID)
			continue
		}

		price, reason := cleanPrice(row.Price, policy)
		if reason != ReasonNone {
			report.exclude(reason)
			continue
		}

		seq := len(idx.items[row.RestaurantID]) + 1
		idx.add(models.CleanMenuItem{
			ID:           fmt.Sprintf("%s_%d", row.RestaurantID, seq),
			Name:         row.Name,
			Description:  row.Description,
			Price:        price,
			Category:     TruncateCategory(row.Category),
			RestaurantID: row.RestaurantID,
		})
	}
	return idx.items
}

// MapRestaurant renames the source columns to the output contract and fills
// the placeholder fields. Menu is left empty.
func MapRestaurant(raw models.RawRestaurantRecord) models.CleanRestaurant {
	rating := 0.0
	if raw.Score != nil {
		rating = *raw.Score
	}
	return models.CleanRestaurant{
		ID:          raw.ID,
		Name:        raw.Name,
		Rating:      rating,
		Cuisine:     raw.Category,
		Image:       PlaceholderImage,
		Description: PlaceholderDescription,
	}
}

// Normalize runs the whole transform. Row-level problems are counted in the
// returned report, never returned as errors.
func (n *Normalizer) Normalize(restaurants []models.RawRestaurantRecord, menus []models.RawMenuRecord) ([]models.CleanRestaurant, *Report) {
	report := NewReport()
	menu := BuildMenu(menus, n.opts.PricePolicy, report)

	out := make([]models.CleanRestaurant, 0, min(len(restaurants), n.opts.MaxRestaurants))
	seen := make(map[string]struct{}, len(restaurants))
	joined := make(map[string]struct{}, len(menu))

	for _, raw := range restaurants {
		report.RestaurantRowsRead++

		if raw.ID == "" {
			report.RestaurantsMissingID++
			continue
		}
		if _, dup := seen[raw.ID]; dup {
			report.DuplicateRestaurants++
			continue
		}
		seen[raw.ID] = struct{}{}

		items := menu[raw.ID]
		if len(items) == 0 {
			report.RestaurantsWithoutMenu++
			continue
		}
		joined[raw.ID] = struct{}{}

		if len(out) >= n.opts.MaxRestaurants {
			report.RestaurantsOverLimit++
			continue
		}

		r := MapRestaurant(raw)
		r.Menu = items
		out = append(out, r)
		report.RestaurantsEmitted++
		report.ItemsEmitted += len(items)
	}

	for rid, items := range menu {
		if _, ok := joined[rid]; !ok {
			report.OrphanMenuItems += len(items)
		}
	}

	n.logger.Info("dataset normalized", report.Fields())
	return out, report
}
