// internal/workers/menu/get-restaurant-recommendations/models.go
package getrestaurantrecommendations

type Input struct {
	UserID string `json:"userId" validate:"required"`
}

type Output struct {
	UserID                 string   `json:"userId"`
	RecommendedRestaurants []string `json:"recommendedRestaurants"`
	Cached                 bool     `json:"cached"`
}
