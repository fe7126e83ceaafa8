package shopify

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"printlane-bridge/internal/model"
)

// Line item property names the Printlane designer writes on Shopify lines.
// The underscore prefix keeps them off the storefront cart display.
const (
	propertyDesignID    = "_design_id"
	propertyDesignToken = "_design_token"
)

// ParseOrder translates a Shopify order webhook body into the bridge's
// order model. The order number is taken from Name with its "#" prefix
// stripped, so it matches what store staff see in the admin.
func ParseOrder(body []byte) (*model.Order, error) {
	var so ShopifyOrder
	if err := json.Unmarshal(body, &so); err != nil {
		return nil, model.NewValidationError("order", err.Error())
	}
	if so.ID == 0 {
		return nil, model.NewValidationError("order", "missing id")
	}

	order := &model.Order{
		Number:    orderNumber(so),
		Status:    so.FinancialStatus,
		CreatedAt: parseWebhookTime(so.CreatedAt),
		UpdatedAt: parseWebhookTime(so.UpdatedAt),
		Billing:   transformAddress(so.BillingAddress),
		Shipping:  transformAddress(so.ShippingAddress),
		LineItems: transformLineItems(so.LineItems),
	}

	// The billing block carries no email on Shopify; the order-level
	// email is the buyer contact for guest checkouts.
	order.Billing.Email = so.Email

	if so.Customer != nil && so.Customer.Email != "" {
		order.Customer = &model.Customer{
			Email:     so.Customer.Email,
			FirstName: so.Customer.FirstName,
			LastName:  so.Customer.LastName,
		}
	}
	return order, nil
}

func orderNumber(so ShopifyOrder) string {
	if name := strings.TrimPrefix(so.Name, "#"); name != "" {
		return name
	}
	if so.OrderNumber != 0 {
		return strconv.Itoa(so.OrderNumber)
	}
	return strconv.FormatInt(so.ID, 10)
}

func transformAddress(a *ShopifyAddress) model.Address {
	if a == nil {
		return model.Address{}
	}
	return model.Address{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Company:     a.Company,
		Address1:    a.Address1,
		Address2:    a.Address2,
		City:        a.City,
		Province:    a.Province,
		Zip:         a.Zip,
		CountryCode: a.CountryCode,
		Phone:       a.Phone,
	}
}

func transformLineItems(items []ShopifyLine) []model.LineItem {
	out := make([]model.LineItem, 0, len(items))
	for _, item := range items {
		unit := model.ParseAmount(item.Price)
		out = append(out, model.LineItem{
			Quantity: item.Quantity,
			Total:    unit.Mul(decimal.NewFromInt(int64(item.Quantity))),
			Meta:     designMeta(item.Properties),
		})
	}
	return out
}

// designMeta extracts the design reference from line properties under the
// canonical keys. Returns nil when the line carries no design.
func designMeta(props []ShopifyProperty) map[string]string {
	var id, token string
	for _, p := range props {
		switch p.Name {
		case propertyDesignID, model.MetaDesignID:
			id = p.StringValue()
		case propertyDesignToken, model.MetaDesignToken:
			token = p.StringValue()
		}
	}
	if id == "" {
		return nil
	}
	out := map[string]string{model.MetaDesignID: id}
	if token != "" {
		out[model.MetaDesignToken] = token
	}
	return out
}

func parseWebhookTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
