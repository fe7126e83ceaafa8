// Package model defines the canonical order aggregate shared by all host
// platform adapters and the Printlane sync engine. The bridge only reads
// orders; the host commerce system owns them.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line item metadata keys carrying the Printlane design reference.
// MetaDesignToken is paired 1:1 with MetaDesignID and is treated as
// sensitive: hosts hide it from customer-facing displays.
const (
	MetaDesignID    = "design_id"
	MetaDesignToken = "design_token"
)

// Order is the read-only view of a host order. Number is the host's public
// order number, stable across create and update events for the same order.
type Order struct {
	Number    string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time

	Billing  Address
	Shipping Address

	// Customer is the associated account, if any. When present, its
	// contact fields take precedence over the billing contact fields.
	Customer *Customer

	LineItems []LineItem
}

// Address is the shared shape of billing and shipping parties.
// A zero Address means the party was not collected.
type Address struct {
	FirstName string
	LastName  string
	Company   string
	Address1  string
	Address2  string
	City      string
	Province  string
	Zip       string
	// CountryCode is the host's free-text country code (usually ISO 3166-1
	// alpha-2, but never validated here).
	CountryCode string
	Phone       string
	Email       string
}

// HasRecipient reports whether the address names a deliverable recipient.
// The Printlane order API requires both names on shipping details; an
// address failing this check is treated as "shipping not collected".
func (a Address) HasRecipient() bool {
	return a.FirstName != "" && a.LastName != ""
}

// Customer is the optional account associated with an order.
type Customer struct {
	Email     string
	FirstName string
	LastName  string
}

// LineItem is one purchasable unit within an order. Meta is the host's
// loosely-typed key/value bag; only MetaDesignID and MetaDesignToken are
// significant to the bridge, and insertion order is irrelevant.
type LineItem struct {
	Quantity int
	// Total is the total charged for the line (all units, after discounts).
	Total decimal.Decimal
	Meta  map[string]string
}

// DesignID returns the Printlane design identifier, or "" for a line that
// carries no customization.
func (li LineItem) DesignID() string {
	return li.Meta[MetaDesignID]
}

// DesignToken returns the opaque access token paired with DesignID.
func (li LineItem) DesignToken() string {
	return li.Meta[MetaDesignToken]
}

// UnitPrice returns the per-unit price charged, rounded to two decimal
// places. Matches the host's per-item total (line total divided by
// quantity), which is what the Printlane order API expects as price.
func (li LineItem) UnitPrice() decimal.Decimal {
	if li.Quantity <= 0 {
		return li.Total.Round(2)
	}
	return li.Total.DivRound(decimal.NewFromInt(int64(li.Quantity)), 2)
}
