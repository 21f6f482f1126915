// internal/workers/orders/get-orders/models.go
package getorders

import "restaurant-workers/internal/models"

type Input struct {
	UserID string `json:"userId" validate:"required"`
}

type Output struct {
	Message string         `json:"message"`
	Count   int            `json:"count"`
	Orders  []models.Order `json:"orders"`
}
