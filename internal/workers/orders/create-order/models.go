// internal/workers/orders/create-order/models.go
package createorder

import "encoding/json"

// Input.Items is kept raw: clients send plain strings, DynamoDB-typed
// values or a whole DynamoDB list.
type Input struct {
	UserID       string          `json:"userId"`
	Items        json.RawMessage `json:"items"`
	TotalAmount  float64         `json:"totalAmount"`
	RestaurantID string          `json:"restaurantId,omitempty"`
	PaymentID    string          `json:"paymentId,omitempty"`
}

type Output struct {
	OrderID   string   `json:"orderId"`
	Status    string   `json:"status"`
	Items     []string `json:"items"`
	Timestamp string   `json:"timestamp"`
	Message   string   `json:"message"`
}
