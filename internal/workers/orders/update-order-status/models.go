// internal/workers/orders/update-order-status/models.go
package updateorderstatus

type Input struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type Output struct {
	OrderID   string `json:"orderId"`
	NewStatus string `json:"newStatus"`
	Message   string `json:"message"`
	MessageID string `json:"messageId,omitempty"`
}
