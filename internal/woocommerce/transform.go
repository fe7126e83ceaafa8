package woocommerce

import (
	"encoding/json"
	"strconv"
	"time"

	"printlane-bridge/internal/model"
)

// Meta keys the Printlane designer writes on WooCommerce cart items. The
// token key is prefixed with an underscore, which WooCommerce treats as a
// hidden field on the order screen.
const (
	metaKeyDesignID    = "colorlab_id"
	metaKeyDesignToken = "_colorlab_token"
)

// webhookTimeLayout parses the *_gmt timestamps of the REST v3 schema,
// which carry no zone designator and are always UTC.
const webhookTimeLayout = "2006-01-02T15:04:05"

// ParseOrder translates a REST v3 order webhook body into the bridge's
// order model. Design metadata is remapped from the plugin's meta keys to
// the canonical design keys; all other line metadata is dropped.
func ParseOrder(body []byte) (*model.Order, error) {
	var wo WooOrder
	if err := json.Unmarshal(body, &wo); err != nil {
		return nil, model.NewValidationError("order", err.Error())
	}
	if wo.ID == 0 {
		return nil, model.NewValidationError("order", "missing id")
	}

	number := wo.Number
	if number == "" {
		number = strconv.Itoa(wo.ID)
	}

	order := &model.Order{
		Number:    number,
		Status:    wo.Status,
		CreatedAt: parseWebhookTime(wo.DateCreatedGMT),
		UpdatedAt: parseWebhookTime(wo.DateModifiedGMT),
		Billing:   transformAddress(wo.Billing),
		Shipping:  transformAddress(wo.Shipping),
		LineItems: transformLineItems(wo.LineItems),
	}
	return order, nil
}

func transformAddress(a WooAddress) model.Address {
	return model.Address{
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Company:     a.Company,
		Address1:    a.Address1,
		Address2:    a.Address2,
		City:        a.City,
		Province:    a.State,
		Zip:         a.Postcode,
		CountryCode: a.Country,
		Email:       a.Email,
		Phone:       a.Phone,
	}
}

func transformLineItems(items []WooLineItem) []model.LineItem {
	out := make([]model.LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, model.LineItem{
			Quantity: item.Quantity,
			Total:    model.ParseAmount(item.Total),
			Meta:     designMeta(item.MetaData),
		})
	}
	return out
}

// designMeta extracts the design reference from line metadata under the
// canonical keys. Returns nil when the line carries no design.
func designMeta(meta []WooItemMeta) map[string]string {
	var id, token string
	for _, m := range meta {
		switch m.Key {
		case metaKeyDesignID, model.MetaDesignID:
			id = m.StringValue()
		case metaKeyDesignToken, model.MetaDesignToken:
			token = m.StringValue()
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
	t, err := time.ParseInLocation(webhookTimeLayout, s, time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}
