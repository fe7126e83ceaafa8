// Package shopify implements the platform adapter for Shopify stores.
// It parses orders/create and orders/updated webhook deliveries and verifies
// their signatures.
package shopify

import "encoding/json"

// === Shopify Webhook Payload Types ===

// ShopifyOrder represents a Shopify order as delivered by the orders/*
// webhook topics. Name is the customer-facing order number ("#1001").
type ShopifyOrder struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	OrderNumber     int              `json:"order_number"`
	FinancialStatus string           `json:"financial_status"`
	CreatedAt       string           `json:"created_at"`
	UpdatedAt       string           `json:"updated_at"`
	Email           string           `json:"email"`
	Customer        *ShopifyCustomer `json:"customer"`
	BillingAddress  *ShopifyAddress  `json:"billing_address"`
	ShippingAddress *ShopifyAddress  `json:"shipping_address"`
	LineItems       []ShopifyLine    `json:"line_items"`
}

// ShopifyCustomer is the account block attached to non-guest orders.
type ShopifyCustomer struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ShopifyAddress represents an order address. Both address blocks are
// nullable: guest express checkouts can omit billing entirely.
type ShopifyAddress struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Company     string `json:"company"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2"`
	City        string `json:"city"`
	Province    string `json:"province_code"`
	Zip         string `json:"zip"`
	CountryCode string `json:"country_code"`
	Phone       string `json:"phone"`
}

// ShopifyLine represents an order line. Price is the per-unit price as a
// string decimal; properties carry the designer's custom fields.
type ShopifyLine struct {
	ID         int64             `json:"id"`
	Quantity   int               `json:"quantity"`
	Price      string            `json:"price"`
	Properties []ShopifyProperty `json:"properties,omitempty"`
}

// ShopifyProperty is one custom line item property. Underscore-prefixed
// names are hidden from the storefront by convention.
type ShopifyProperty struct {
	Name  string          `json:"name"`
	Value json.RawMessage `json:"value"`
}

// StringValue returns the property value when it is a JSON string, "" otherwise.
func (p ShopifyProperty) StringValue() string {
	var s string
	if err := json.Unmarshal(p.Value, &s); err != nil {
		return ""
	}
	return s
}
