package processpayment

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-workers/internal/common/database"
	apperrors "restaurant-workers/internal/common/errors"
	"restaurant-workers/internal/common/logger"
)

var insertPattern = regexp.QuoteMeta(insertPayment)

func createTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &Config{Timeout: 5 * time.Second, DefaultCurrency: DefaultCurrency}
	h := NewHandler(cfg, database.NewPostgresFromDB(db), logger.NewTestLogger(t))
	h.now = func() time.Time { return time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC) }
	return h, mock
}

func amount(v float64) *float64 { return &v }

func TestHandler_Execute_RecordsPayment(t *testing.T) {
	handler, mock := createTestHandler(t)

	mock.ExpectExec(insertPattern).
		WithArgs(sqlmock.AnyArg(), "order-9", 25.5, "USD", time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	output, err := handler.Execute(context.Background(), &Input{Amount: amount(25.5), OrderRef: "order-9"})
	require.NoError(t, err)

	assert.NotEmpty(t, output.TransactionID)
	assert.Equal(t, 25.5, output.Amount)
	assert.Equal(t, "USD", output.Currency)
	assert.Equal(t, "Payment Successful", output.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_CurrencyNormalized(t *testing.T) {
	handler, mock := createTestHandler(t)

	mock.ExpectExec(insertPattern).
		WithArgs(sqlmock.AnyArg(), nil, 10.0, "EUR", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	output, err := handler.Execute(context.Background(), &Input{Amount: amount(10), Currency: " eur "})
	require.NoError(t, err)
	assert.Equal(t, "EUR", output.Currency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandler_Execute_InvalidAmount(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{"missing", &Input{}},
		{"zero", &Input{Amount: amount(0)}},
		{"negative", &Input{Amount: amount(-3)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, mock := createTestHandler(t)

			_, err := handler.Execute(context.Background(), tt.input)

			stdErr := apperrors.AsStandardError(err)
			assert.Equal(t, apperrors.ErrCodeInvalidPaymentAmount, stdErr.Code)
			assert.Equal(t, "Invalid payment amount", stdErr.Message)
			assert.Equal(t, 400, apperrors.HTTPStatus(stdErr.Code))
			// nothing reaches the ledger
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHandler_Execute_DatabaseFailure(t *testing.T) {
	handler, mock := createTestHandler(t)

	mock.ExpectExec(insertPattern).WillReturnError(errors.New("connection refused"))

	_, err := handler.Execute(context.Background(), &Input{Amount: amount(12)})
	assert.Equal(t, apperrors.ErrCodePaymentFailed, apperrors.AsStandardError(err).Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS payments`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsureSchema(context.Background(), database.NewPostgresFromDB(db)))
	assert.NoError(t, mock.ExpectationsWereMet())
}
