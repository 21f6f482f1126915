// internal/models/order.go
package models

const OrderStatusPlaced = "ORDER_PLACED"

// OrderTimestampLayout has fixed-width fractions so the UserOrdersIndex sort
// key orders lexicographically by time.
const OrderTimestampLayout = "2006-01-02T15:04:05.000000Z"

type Order struct {
	OrderID      string   `json:"orderId" dynamodbav:"orderId"`
	UserID       string   `json:"userId" dynamodbav:"userId"`
	RestaurantID string   `json:"restaurantId,omitempty" dynamodbav:"restaurantId,omitempty"`
	Items        []string `json:"items" dynamodbav:"items"`
	Amount       float64  `json:"amount" dynamodbav:"amount"`
	PaymentID    string   `json:"paymentId,omitempty" dynamodbav:"paymentId,omitempty"`
	Status       string   `json:"status" dynamodbav:"status"`
	Timestamp    string   `json:"timestamp" dynamodbav:"timestamp"`
}
