// Package errors provides standardized error handling for BPMN workflow integration
// and the HTTP surface.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingParameter ErrorCode = "MISSING_PARAMETER"
	ErrCodeNotFound         ErrorCode = "RESOURCE_NOT_FOUND"

	ErrCodeDynamoDBFailed ErrorCode = "DYNAMODB_OPERATION_FAILED"

	ErrCodeSearchConnectionFailed ErrorCode = "SEARCH_CONNECTION_FAILED"
	ErrCodeSearchQueryFailed      ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout          ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound          ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeUploadURLFailed      ErrorCode = "UPLOAD_URL_FAILED"
	ErrCodeRecommendationFailed ErrorCode = "RECOMMENDATION_FAILED"
	ErrCodeNotificationFailed   ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeInvalidPaymentAmount ErrorCode = "INVALID_PAYMENT_AMOUNT"
	ErrCodePaymentFailed        ErrorCode = "PAYMENT_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// BPMNError represents an error that can be thrown to the Camunda workflow engine.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError creates a non-retryable input validation error.
func NewValidationError(details string) *StandardError {
	return newError(ErrCodeValidationFailed, "Input validation failed", details, false)
}

// NewMissingParameterError is returned when a required request parameter is absent.
func NewMissingParameterError(name string) *StandardError {
	return newError(ErrCodeMissingParameter, fmt.Sprintf("Missing %s", name), "", false)
}

func NewNotFoundError(resource, details string) *StandardError {
	return newError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource), details, false)
}

// NewDynamoDBError creates a retryable table operation error.
func NewDynamoDBError(operation string, err error) *StandardError {
	return newError(ErrCodeDynamoDBFailed, "DynamoDB operation failed",
		fmt.Sprintf("operation: %s, error: %s", operation, err.Error()), true)
}

func NewSearchConnectionError(err error) *StandardError {
	return newError(ErrCodeSearchConnectionFailed, "Search cluster connection error", err.Error(), true)
}

func NewSearchQueryError(err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Search query error", err.Error(), true)
}

func NewSearchTimeoutError() *StandardError {
	return newError(ErrCodeSearchTimeout, "Search query timeout", "", true)
}

func NewIndexNotFoundError(indexName string) *StandardError {
	return newError(ErrCodeIndexNotFound, "Search index not found", fmt.Sprintf("indexName: %s", indexName), false)
}

func NewUploadURLError(err error) *StandardError {
	return newError(ErrCodeUploadURLFailed, "Could not generate upload URL", err.Error(), true)
}

func NewRecommendationError(err error) *StandardError {
	return newError(ErrCodeRecommendationFailed, "Recommendation service error", err.Error(), true)
}

func NewNotificationError(err error) *StandardError {
	return newError(ErrCodeNotificationFailed, "Notification delivery failed", err.Error(), true)
}

// NewInvalidPaymentAmountError is a business error: no retry.
func NewInvalidPaymentAmountError() *StandardError {
	return newError(ErrCodeInvalidPaymentAmount, "Invalid payment amount", "", false)
}

func NewPaymentError(err error) *StandardError {
	return newError(ErrCodePaymentFailed, "Payment processing failed", err.Error(), true)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// BPMNErrorMapping maps internal error codes to BPMN error codes.
var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeValidationFailed:       "VALIDATION_FAILED",
	ErrCodeMissingParameter:       "VALIDATION_FAILED",
	ErrCodeNotFound:               "RESOURCE_NOT_FOUND",
	ErrCodeDynamoDBFailed:         "DYNAMODB_OPERATION_FAILED",
	ErrCodeSearchConnectionFailed: "SEARCH_CONNECTION_FAILED",
	ErrCodeSearchQueryFailed:      "SEARCH_QUERY_FAILED",
	ErrCodeSearchTimeout:          "SEARCH_TIMEOUT",
	ErrCodeIndexNotFound:          "INDEX_NOT_FOUND",
	ErrCodeUploadURLFailed:        "UPLOAD_URL_FAILED",
	ErrCodeRecommendationFailed:   "RECOMMENDATION_FAILED",
	ErrCodeNotificationFailed:     "NOTIFICATION_SEND_FAILED",
	ErrCodeInvalidPaymentAmount:   "INVALID_PAYMENT_AMOUNT",
	ErrCodePaymentFailed:          "PAYMENT_FAILED",
}

// GetRetryCount returns the recommended retry count for an error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDynamoDBFailed,
		ErrCodeSearchConnectionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeUploadURLFailed,
		ErrCodeRecommendationFailed,
		ErrCodeNotificationFailed,
		ErrCodePaymentFailed:
		return 3

	case ErrCodeSearchTimeout:
		return 2

	default:
		return 0 // Business errors: no retry
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// AsStandardError unwraps err to a StandardError, wrapping unknown errors as internal.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return NewInternalError(err)
}

// HTTPStatus maps an error code to the status returned by the REST surface.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeMissingParameter, ErrCodeInvalidPaymentAmount:
		return http.StatusBadRequest
	case ErrCodeNotFound, ErrCodeIndexNotFound:
		return http.StatusNotFound
	case ErrCodeSearchTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeInternal:
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DYNAMODB") || strings.Contains(codeStr, "CACHE"):
		return "STORAGE"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "INDEX"):
		return "SEARCH"
	case strings.Contains(codeStr, "PAYMENT"):
		return "PAYMENT"
	case strings.Contains(codeStr, "NOTIFICATION") || strings.Contains(codeStr, "UPLOAD") || strings.Contains(codeStr, "RECOMMENDATION"):
		return "AWS"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "MISSING") || strings.Contains(codeStr, "NOT_FOUND"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
