// Package woocommerce implements the platform adapter for WooCommerce stores.
// It parses REST v3 order webhook deliveries and verifies their signatures.
package woocommerce

import "encoding/json"

// === WooCommerce Webhook Payload Types ===

// WooOrder represents a WooCommerce REST v3 order as delivered by the
// order.created / order.updated webhook topics.
type WooOrder struct {
	ID              int           `json:"id"`
	Number          string        `json:"number"`
	Status          string        `json:"status"`
	DateCreatedGMT  string        `json:"date_created_gmt"`
	DateModifiedGMT string        `json:"date_modified_gmt"`
	CustomerID      int           `json:"customer_id"`
	Billing         WooAddress    `json:"billing"`
	Shipping        WooAddress    `json:"shipping"`
	LineItems       []WooLineItem `json:"line_items"`
}

// WooAddress represents a WooCommerce order address block. The billing block
// additionally carries the buyer's contact email and phone.
type WooAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company"`
	Address1  string `json:"address_1"`
	Address2  string `json:"address_2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Postcode  string `json:"postcode"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// WooLineItem represents an order line in the webhook payload.
// Total is the line total after discounts as a string decimal ("36.00").
type WooLineItem struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	ProductID int           `json:"product_id"`
	Quantity  int           `json:"quantity"`
	Total     string        `json:"total"`
	MetaData  []WooItemMeta `json:"meta_data,omitempty"`
}

// WooItemMeta represents custom field metadata on an order line.
// Value is mixed-type in the REST schema; only scalar string values are
// meaningful to the bridge.
type WooItemMeta struct {
	ID    int             `json:"id"`
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

// StringValue returns the meta value when it is a JSON string, "" otherwise.
func (m WooItemMeta) StringValue() string {
	var s string
	if err := json.Unmarshal(m.Value, &s); err != nil {
		return ""
	}
	return s
}
