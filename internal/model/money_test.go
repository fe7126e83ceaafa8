package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestPriceMarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"19.99", "19.99"},
		{"0", "0"},
		{"1234.5", "1234.5"},
		{"-4.20", "-4.2"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			b, err := json.Marshal(NewPrice(decimal.RequireFromString(tt.in)))
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(b) != tt.want {
				t.Errorf("Marshal = %s, want %s (unquoted number)", b, tt.want)
			}
		})
	}
}

func TestPriceUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare number", `19.99`, "19.99"},
		{"quoted number", `"19.99"`, "19.99"},
		{"integer", `7`, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Price
			if err := json.Unmarshal([]byte(tt.in), &p); err != nil {
				t.Fatalf("Unmarshal(%s): %v", tt.in, err)
			}
			if !p.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Unmarshal(%s) = %s, want %s", tt.in, p, tt.want)
			}
		})
	}

	var p Price
	if err := json.Unmarshal([]byte(`"not a number"`), &p); err == nil {
		t.Error("Unmarshal of non-numeric string should fail")
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"19.99", "19.99"},
		{"", "0"},
		{"garbage", "0"},
		{"-12.34", "-12.34"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseAmount(tt.in); !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}
