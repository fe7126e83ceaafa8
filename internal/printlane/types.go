// Package printlane implements the order sync engine: it turns a host order
// into the Printlane order API payload, signs it, and ships it.
//
// Every sync is a short-lived, stateless operation. A Client is cheap to
// construct, holds no state between calls, and performs exactly one HTTP
// request per operation: no retries, no queues, no caching. The remote side
// upserts by order number, so replaying the same full-state payload is safe.
package printlane

import "printlane-bridge/internal/model"

// Default Printlane endpoints. All three are configurable per store.
const (
	DefaultBaseURL   = "https://api.printlane.com/2023-10"
	DefaultStudioURL = "https://studio.printlane.com"
	DefaultExportURL = "https://export.printlane.com"
)

// Config holds everything a sync needs: credentials, endpoints, and the
// storefront identity embedded in the payload. Read fresh from service
// configuration for each construction.
//
// Blank credentials are tolerated: payload construction and signature
// computation still work (the signature is just meaningless), which keeps
// the pure parts testable. Whether to sync at all is the CALLER's
// precondition check, not this package's.
type Config struct {
	ShopID    string
	APIKey    string
	APISecret string

	// BaseURL is the order API root, without trailing slash.
	BaseURL string

	// StoreDomain is the storefront host name sent as the payload domain.
	StoreDomain string

	// StudioURL and ExportURL host the design links rendered for operators.
	StudioURL string
	ExportURL string
}

// withDefaults fills unset endpoints so a Config built from minimal
// settings still points at production Printlane.
func (cfg Config) withDefaults() Config {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.StudioURL == "" {
		cfg.StudioURL = DefaultStudioURL
	}
	if cfg.ExportURL == "" {
		cfg.ExportURL = DefaultExportURL
	}
	return cfg
}

// OrderPayload is the wire shape of POST /orders. Field order matches the
// serialized key order, which is part of payload determinism: the same
// order always marshals to byte-identical JSON.
type OrderPayload struct {
	BillingDetails  AddressDetails    `json:"billingDetails"`
	Created         string            `json:"created"`
	Domain          string            `json:"domain"`
	Email           string            `json:"email"`
	FirstName       string            `json:"firstName"`
	LastName        string            `json:"lastName"`
	LineItems       []LineItemPayload `json:"lineItems"`
	OrderID         string            `json:"orderId"`
	ShippingDetails AddressDetails    `json:"shippingDetails"`
	Status          string            `json:"status"`
	Updated         string            `json:"updated"`
}

// AddressDetails is the billing/shipping block of the payload. Country
// carries the display name; CountryCode the raw host code.
type AddressDetails struct {
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	City        string `json:"city"`
	CompanyName string `json:"companyName"`
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Phone       string `json:"phone"`
	Province    string `json:"province"`
	Zip         string `json:"zip"`
}

// LineItemPayload is one customized line in the payload. Lines without a
// design id never appear here.
type LineItemPayload struct {
	ID       string      `json:"id"`
	Token    string      `json:"token"`
	Quantity int         `json:"quantity"`
	Price    model.Price `json:"price"`
}
