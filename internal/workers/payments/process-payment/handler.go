// internal/workers/payments/process-payment/handler.go
package processpayment

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"restaurant-workers/internal/common/camunda"
	"restaurant-workers/internal/common/database"
	apperrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
	"restaurant-workers/internal/models"
)

const (
	TaskType = "process-payment"

	SuccessMessage = "Payment Successful"
)

const (
	createPaymentsTable = `CREATE TABLE IF NOT EXISTS payments (
	transaction_id TEXT PRIMARY KEY,
	order_ref      TEXT,
	amount         NUMERIC(12, 2) NOT NULL CHECK (amount > 0),
	currency       TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
)`

	insertPayment = `INSERT INTO payments (transaction_id, order_ref, amount, currency, created_at) VALUES ($1, $2, $3, $4, $5)`
)

type Handler struct {
	config     *Config
	db         *database.PostgresClient
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
	now        func() time.Time
}

func NewHandler(config *Config, db *database.PostgresClient, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		db:         db,
		logger:     l,
		errHandler: apperrors.NewErrorHandler(l),
		now:        time.Now,
	}
}

// EnsureSchema creates the payments ledger table if it is missing.
func EnsureSchema(ctx context.Context, db *database.PostgresClient) error {
	_, err := db.Exec(ctx, createPaymentsTable)
	return err
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := camunda.DecodeVariables(job, &input); err != nil {
		h.errHandler.HandleJobError(context.Background(), client, job, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.errHandler.HandleJobError(context.Background(), client, job, err)
		return
	}

	camunda.CompleteJob(client, job, output, h.logger)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Amount == nil || *input.Amount <= 0 || math.IsNaN(*input.Amount) || math.IsInf(*input.Amount, 0) {
		return nil, apperrors.NewInvalidPaymentAmountError()
	}

	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = h.config.DefaultCurrency
	}

	payment := models.Payment{
		TransactionID: uuid.NewString(),
		OrderRef:      input.OrderRef,
		Amount:        *input.Amount,
		Currency:      currency,
		CreatedAt:     h.now().UTC(),
	}

	_, err := h.db.Exec(ctx, insertPayment,
		payment.TransactionID,
		nullable(payment.OrderRef),
		payment.Amount,
		payment.Currency,
		payment.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.NewPaymentError(err)
	}

	h.logger.Info("payment recorded", map[string]interface{}{
		"transactionId": payment.TransactionID,
		"amount":        payment.Amount,
		"currency":      payment.Currency,
	})

	return &Output{
		TransactionID: payment.TransactionID,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		Message:       SuccessMessage,
	}, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
