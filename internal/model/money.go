package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Price wraps a decimal amount so it serializes as a bare JSON number
// (19.99, not "19.99"). The Printlane order API expects numeric prices;
// shopspring/decimal marshals as a quoted string by default.
type Price struct {
	decimal.Decimal
}

// NewPrice converts a decimal amount into its wire representation.
func NewPrice(d decimal.Decimal) Price {
	return Price{d}
}

// MarshalJSON emits the amount as an unquoted number. Decimal's String
// output is already a valid JSON number, so no float round-trip happens.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts both numeric and quoted forms.
func (p *Price) UnmarshalJSON(data []byte) error {
	d, err := decimal.NewFromString(trimQuotes(string(data)))
	if err != nil {
		return fmt.Errorf("parsing price %q: %w", data, err)
	}
	p.Decimal = d
	return nil
}

func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// ParseAmount converts a host decimal-string amount ("19.99") to a decimal.
// Hosts occasionally send empty strings for zeroed fields; those parse to
// zero rather than erroring, since a malformed amount must never abort an
// order sync.
func ParseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
