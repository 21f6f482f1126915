// internal/models/rating.go
package models

import "fmt"

type Rating struct {
	UserOrderID  string `json:"userOrderId" dynamodbav:"userOrderId"`
	RestaurantID string `json:"restaurantId" dynamodbav:"restaurantId"`
	CreatedAt    string `json:"createdAt" dynamodbav:"createdAt"`
	RatingID     string `json:"ratingId" dynamodbav:"ratingId"`
	UserID       string `json:"userId" dynamodbav:"userId"`
	OrderID      string `json:"orderId" dynamodbav:"orderId"`
	Rating       int    `json:"rating" dynamodbav:"rating"`
	Comment      string `json:"comment" dynamodbav:"comment"`
	PhotoKey     string `json:"photoKey" dynamodbav:"photoKey"`
}

// UserOrderKey builds the Ratings partition key; one rating per user and order.
func UserOrderKey(userID, orderID string) string {
	return fmt.Sprintf("%s#%s", userID, orderID)
}
