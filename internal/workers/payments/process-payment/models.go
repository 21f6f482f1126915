// internal/workers/payments/process-payment/models.go
package processpayment

// Amount is a pointer so an absent amount is told apart from zero.
type Input struct {
	Amount   *float64 `json:"amount"`
	OrderRef string   `json:"orderRef,omitempty"`
	Currency string   `json:"currency,omitempty"`
}

type Output struct {
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	Message       string  `json:"message"`
}
