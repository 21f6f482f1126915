// internal/common/camunda/retry.go
package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"restaurant-workers/internal/common/logger"
)

type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = &RetryConfig{
	MaxRetries: 10,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

// RetryWithBackoff runs operation until it succeeds, the attempts are used up
// or ctx is done. The delay doubles after every failure, capped at MaxDelay.
func RetryWithBackoff(ctx context.Context, cfg *RetryConfig, log logger.Logger, operationName string, operation func() error) error {
	if cfg == nil {
		cfg = DefaultRetryConfig
	}

	var err error
	delay := cfg.BaseDelay

	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		if err = operation(); err == nil {
			return nil
		}
		if attempt == cfg.MaxRetries {
			break
		}

		log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
			"error":       err,
			"attempt":     attempt,
			"maxRetries":  cfg.MaxRetries,
			"nextRetryIn": delay.String(),
			"transient":   IsTransient(err),
		})

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return fmt.Errorf("%s cancelled after %d attempts: %w", operationName, attempt, ctx.Err())
		}

		delay *= 2
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, cfg.MaxRetries, err)
}

// IsTransient reports whether err looks like a connectivity failure.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, phrase := range []string{
		"connection refused",
		"connection reset",
		"timeout",
		"deadline exceeded",
		"unavailable",
		"unreachable",
		"broken pipe",
	} {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
