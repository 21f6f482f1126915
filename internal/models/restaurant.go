// internal/models/restaurant.go
package models

// RawRestaurantRecord is one row of the restaurants CSV.
type RawRestaurantRecord struct {
	ID       string
	Name     string
	Score    *float64 // nil when the cell is empty or unparseable
	Category string
}

// RawMenuRecord is one row of the menus CSV. Price is kept verbatim.
type RawMenuRecord struct {
	RestaurantID string
	Name         string
	Description  string
	Price        *string // nil when the cell is empty
	Category     string
}

// CleanMenuItem is a menu entry of the cleaned dataset. Price is always > 0.
type CleanMenuItem struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	RestaurantID string  `json:"restaurantId"`
}

// CleanRestaurant is one element of the cleaned dataset; Menu is never empty.
type CleanRestaurant struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Rating      float64         `json:"rating"`
	Cuisine     string          `json:"cuisine"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Menu        []CleanMenuItem `json:"menu"`
}
