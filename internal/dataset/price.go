package dataset

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// PricePolicy decides how ambiguous price strings are treated.
type PricePolicy int

const (
	// PricePolicyBestEffort strips every rune that is not a digit or '.'
	// and parses what remains. "1,299.00" becomes 1299 and "12,50" becomes 1250.
	PricePolicyBestEffort PricePolicy = iota
	// PricePolicyStrict rejects strings with a ',' or more than one '.'
	// before stripping, so locale formatted prices are excluded instead of misread.
	PricePolicyStrict
)

func (p PricePolicy) String() string {
	if p == PricePolicyStrict {
		return "strict"
	}
	return "best-effort"
}

// ExclusionReason names why a menu row did not survive cleaning.
type ExclusionReason string

const (
	ReasonNone             ExclusionReason = ""
	ReasonMissingPrice     ExclusionReason = "missing_price"
	ReasonUnparseablePrice ExclusionReason = "unparseable_price"
	ReasonNonPositivePrice ExclusionReason = "non_positive_price"

	ReasonMissingRestaurantID ExclusionReason = "missing_restaurant_id"
)

// MaxCategoryLength is the longest category kept, in characters.
const MaxCategoryLength = 1000

// cleanPrice extracts a numeric price from raw and classifies the outcome.
// A parsed price <= 0 is returned with ReasonNonPositivePrice.
func cleanPrice(raw *string, policy PricePolicy) (float64, ExclusionReason) {
	if raw == nil {
		return 0, ReasonMissingPrice
	}
	s := *raw

	if policy == PricePolicyStrict && (strings.Contains(s, ",") || strings.Count(s, ".") > 1) {
		return 0, ReasonUnparseablePrice
	}

	stripped := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, s)

	price, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0, ReasonUnparseablePrice
	}
	if price <= 0 {
		return price, ReasonNonPositivePrice
	}
	return price, ReasonNone
}

// TruncateCategory cuts s to at most MaxCategoryLength characters.
func TruncateCategory(s string) string {
	if utf8.RuneCountInString(s) <= MaxCategoryLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxCategoryLength])
}
