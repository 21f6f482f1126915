// internal/workers/feedback/create-rating/models.go
package createrating

type Input struct {
	UserID       string `json:"userId" validate:"required"`
	OrderID      string `json:"orderId" validate:"required"`
	RestaurantID string `json:"restaurantId" validate:"required"`
	Rating       int    `json:"rating" validate:"min=1,max=5"`
	Comment      string `json:"comment,omitempty" validate:"max=2000"`
	PhotoKey     string `json:"photoKey,omitempty"`
}

type Output struct {
	RatingID    string `json:"ratingId"`
	UserOrderID string `json:"userOrderId"`
	CreatedAt   string `json:"createdAt"`
	Message     string `json:"message"`
}
