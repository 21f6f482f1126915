package dataset

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCleanPrice_BestEffort(t *testing.T) {
	tests := []struct {
		name   string
		raw    *string
		want   float64
		reason ExclusionReason
	}{
		{"dollar sign", strPtr("$12.50"), 12.50, ReasonNone},
		{"currency code", strPtr("12.99 USD"), 12.99, ReasonNone},
		{"thousands separator", strPtr("1,299.00"), 1299, ReasonNone},
		{"comma decimal misread", strPtr("12,50"), 1250, ReasonNone},
		{"leading dot", strPtr(".5"), 0.5, ReasonNone},
		{"absent", nil, 0, ReasonMissingPrice},
		{"no digits", strPtr("Market price"), 0, ReasonUnparseablePrice},
		{"only dot", strPtr("$."), 0, ReasonUnparseablePrice},
		{"two dots", strPtr("1.2.3"), 0, ReasonUnparseablePrice},
		{"zero", strPtr("$0.00"), 0, ReasonNonPositivePrice},
		{"minus is stripped", strPtr("-4.00"), 4, ReasonNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := cleanPrice(tt.raw, PricePolicyBestEffort)
			assert.Equal(t, tt.reason, reason)
			if reason == ReasonNone {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestCleanPrice_Strict(t *testing.T) {
	_, reason := cleanPrice(strPtr("12,50"), PricePolicyStrict)
	assert.Equal(t, ReasonUnparseablePrice, reason)

	_, reason = cleanPrice(strPtr("1,299.00"), PricePolicyStrict)
	assert.Equal(t, ReasonUnparseablePrice, reason)

	got, reason := cleanPrice(strPtr("$12.50"), PricePolicyStrict)
	assert.Equal(t, ReasonNone, reason)
	assert.Equal(t, 12.50, got)
}

func TestTruncateCategory(t *testing.T) {
	long := strings.Repeat("a", 1500)
	assert.Len(t, TruncateCategory(long), MaxCategoryLength)

	exact := strings.Repeat("b", MaxCategoryLength)
	assert.Equal(t, exact, TruncateCategory(exact))

	assert.Equal(t, "Pizza", TruncateCategory("Pizza"))

	multibyte := strings.Repeat("é", 1200)
	got := TruncateCategory(multibyte)
	assert.Equal(t, MaxCategoryLength, utf8.RuneCountInString(got))
	assert.True(t, utf8.ValidString(got))
}
