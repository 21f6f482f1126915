// internal/workers/menu/get-restaurant-menu/models.go
package getrestaurantmenu

import "restaurant-workers/internal/models"

type Input struct {
	RestaurantID string `json:"restaurantId" validate:"required"`
}

type Output struct {
	RestaurantID string                  `json:"restaurantId"`
	Items        []models.MenuItemRecord `json:"items"`
	Count        int                     `json:"count"`
	Cached       bool                    `json:"cached"`
}
