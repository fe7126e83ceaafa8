package printlane

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"printlane-bridge/internal/model"
)

var testConfig = Config{
	ShopID:      "shop-1",
	APIKey:      "key",
	APISecret:   "secret",
	StoreDomain: "shop.example.com",
}

// testOrder builds the baseline order fixture: US billing, no shipping,
// one customized line and one plain line.
func testOrder() *model.Order {
	created := time.Date(2024, 3, 5, 10, 30, 0, 0, time.FixedZone("CET", 3600))
	return &model.Order{
		Number:    "1001",
		Status:    "processing",
		CreatedAt: created,
		UpdatedAt: created.Add(5 * time.Minute),
		Billing: model.Address{
			FirstName:   "Ann",
			LastName:    "Lee",
			Email:       "ann@example.com",
			Address1:    "1 Main St",
			City:        "Springfield",
			Province:    "IL",
			Zip:         "62704",
			CountryCode: "US",
			Phone:       "555-0101",
		},
		LineItems: []model.LineItem{
			{
				Quantity: 2,
				Total:    decimal.RequireFromString("39.98"),
				Meta: map[string]string{
					model.MetaDesignID:    "d1",
					model.MetaDesignToken: "t1",
				},
			},
			{
				Quantity: 1,
				Total:    decimal.RequireFromString("5.00"),
				Meta:     map[string]string{"gift_wrap": "yes"},
			},
		},
	}
}

func TestBuildOrderPayloadBaseline(t *testing.T) {
	p := BuildOrderPayload(testOrder(), testConfig)

	if p.OrderID != "1001" {
		t.Errorf("OrderID = %q, want 1001", p.OrderID)
	}
	if p.Status != "processing" {
		t.Errorf("Status = %q, want processing", p.Status)
	}
	if p.Domain != "shop.example.com" {
		t.Errorf("Domain = %q, want shop.example.com", p.Domain)
	}
	if p.Created != "2024-03-05T10:30:00+0100" {
		t.Errorf("Created = %q, want ISO-8601 with offset", p.Created)
	}
	if p.Updated != "2024-03-05T10:35:00+0100" {
		t.Errorf("Updated = %q, want ISO-8601 with offset", p.Updated)
	}

	// No customer account: billing contact fields win.
	if p.Email != "ann@example.com" || p.FirstName != "Ann" || p.LastName != "Lee" {
		t.Errorf("contact = (%q, %q, %q), want billing contact", p.Email, p.FirstName, p.LastName)
	}

	if p.BillingDetails.Country != "United States" || p.BillingDetails.CountryCode != "US" {
		t.Errorf("billing country = (%q, %q)", p.BillingDetails.Country, p.BillingDetails.CountryCode)
	}
}

func TestBuildOrderPayloadShippingFallsBackToBilling(t *testing.T) {
	tests := []struct {
		name     string
		shipping model.Address
		fallback bool
	}{
		{"no shipping at all", model.Address{}, true},
		{"missing first name", model.Address{LastName: "Lee", Address1: "2 Oak St"}, true},
		{"missing last name", model.Address{FirstName: "Ann", Address1: "2 Oak St"}, true},
		{
			name: "full recipient",
			shipping: model.Address{
				FirstName: "Bo", LastName: "Vos", Address1: "2 Oak St",
				City: "Ghent", Zip: "9000", CountryCode: "BE",
			},
			fallback: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := testOrder()
			order.Shipping = tt.shipping
			p := BuildOrderPayload(order, testConfig)

			if tt.fallback {
				if p.ShippingDetails != p.BillingDetails {
					t.Errorf("ShippingDetails = %+v, want deep-equal to BillingDetails", p.ShippingDetails)
				}
			} else {
				if p.ShippingDetails == p.BillingDetails {
					t.Error("ShippingDetails equals BillingDetails despite full recipient")
				}
				if p.ShippingDetails.FirstName != "Bo" || p.ShippingDetails.Country != "Belgium" {
					t.Errorf("ShippingDetails = %+v", p.ShippingDetails)
				}
			}
		})
	}
}

func TestBuildOrderPayloadCustomerPrecedence(t *testing.T) {
	order := testOrder()
	order.Customer = &model.Customer{
		Email:     "account@example.com",
		FirstName: "Anna",
		LastName:  "Leeuw",
	}

	p := BuildOrderPayload(order, testConfig)
	if p.Email != "account@example.com" || p.FirstName != "Anna" || p.LastName != "Leeuw" {
		t.Errorf("contact = (%q, %q, %q), want customer account values", p.Email, p.FirstName, p.LastName)
	}
}

func TestBuildOrderPayloadLineItems(t *testing.T) {
	p := BuildOrderPayload(testOrder(), testConfig)

	if len(p.LineItems) != 1 {
		t.Fatalf("len(LineItems) = %d, want 1 (plain line skipped)", len(p.LineItems))
	}
	li := p.LineItems[0]
	if li.ID != "d1" || li.Token != "t1" || li.Quantity != 2 {
		t.Errorf("line item = %+v", li)
	}
	if !li.Price.Equal(decimal.RequireFromString("19.99")) {
		t.Errorf("Price = %s, want unit price 19.99", li.Price)
	}
}

func TestBuildOrderPayloadNoCustomizedLines(t *testing.T) {
	order := testOrder()
	order.LineItems = []model.LineItem{
		{Quantity: 1, Total: decimal.RequireFromString("5.00"), Meta: map[string]string{"gift_wrap": "yes"}},
		{Quantity: 3, Total: decimal.RequireFromString("9.00")},
	}

	p := BuildOrderPayload(order, testConfig)
	if len(p.LineItems) != 0 {
		t.Fatalf("len(LineItems) = %d, want 0", len(p.LineItems))
	}

	// Must serialize as [], not null.
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Contains(b, []byte(`"lineItems":[]`)) {
		t.Errorf("payload JSON = %s, want empty lineItems array", b)
	}
}

func TestBuildOrderPayloadTokenMayBeAbsent(t *testing.T) {
	order := testOrder()
	order.LineItems = []model.LineItem{{
		Quantity: 1,
		Total:    decimal.RequireFromString("10.00"),
		Meta:     map[string]string{model.MetaDesignID: "d2"},
	}}

	p := BuildOrderPayload(order, testConfig)
	if len(p.LineItems) != 1 {
		t.Fatalf("len(LineItems) = %d, want 1", len(p.LineItems))
	}
	if p.LineItems[0].Token != "" {
		t.Errorf("Token = %q, want empty", p.LineItems[0].Token)
	}
}

func TestBuildOrderPayloadUnknownCountryPassesThrough(t *testing.T) {
	order := testOrder()
	order.Billing.CountryCode = "??"

	p := BuildOrderPayload(order, testConfig)
	if p.BillingDetails.Country != "??" || p.BillingDetails.CountryCode != "??" {
		t.Errorf("country = (%q, %q), want raw code passed through",
			p.BillingDetails.Country, p.BillingDetails.CountryCode)
	}
}

func TestBuildOrderPayloadDeterministic(t *testing.T) {
	order := testOrder()

	first, err := json.Marshal(BuildOrderPayload(order, testConfig))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	second, err := json.Marshal(BuildOrderPayload(order, testConfig))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("payloads differ between builds:\n%s\n%s", first, second)
	}
}

func TestBuildOrderPayloadKeyOrder(t *testing.T) {
	b, err := json.Marshal(BuildOrderPayload(testOrder(), testConfig))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	keys := []string{
		`"billingDetails"`, `"created"`, `"domain"`, `"email"`, `"firstName"`,
		`"lastName"`, `"lineItems"`, `"orderId"`, `"shippingDetails"`,
		`"status"`, `"updated"`,
	}
	last := -1
	for _, k := range keys {
		idx := bytes.Index(b, []byte(k))
		if idx < 0 {
			t.Fatalf("payload missing key %s: %s", k, b)
		}
		if idx < last {
			t.Errorf("key %s out of order in payload", k)
		}
		last = idx
	}
}
