// internal/models/payment.go
package models

import "time"

type Payment struct {
	TransactionID string    `json:"transactionId"`
	OrderRef      string    `json:"orderRef,omitempty"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"createdAt"`
}
