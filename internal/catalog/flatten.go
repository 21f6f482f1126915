// Package catalog moves the cleaned restaurant dataset into the menu table and
// the food search index.
package catalog

import "restaurant-workers/internal/models"

// Flatten turns the nested dataset into one table row per menu item,
// copying the restaurant name and cuisine onto every row.
func Flatten(restaurants []models.CleanRestaurant) []models.MenuItemRecord {
	var out []models.MenuItemRecord
	for _, r := range restaurants {
		for _, item := range r.Menu {
			out = append(out, models.MenuItemRecord{
				RestaurantID:   r.ID,
				MenuItemID:     item.ID,
				RestaurantName: r.Name,
				Cuisine:        r.Cuisine,
				Name:           item.Name,
				Description:    item.Description,
				Price:          item.Price,
				Category:       item.Category,
			})
		}
	}
	return out
}
