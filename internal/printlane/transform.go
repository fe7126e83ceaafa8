package printlane

import (
	"printlane-bridge/internal/countries"
	"printlane-bridge/internal/model"
)

// timestampLayout is ISO-8601 with a numeric timezone offset, the format
// the Printlane order API has accepted since its first version.
const timestampLayout = "2006-01-02T15:04:05-0700"

// BuildOrderPayload derives the full API payload from an order. Pure: no
// clock, no I/O, no randomness. The order's own timestamps are the only
// time source, so building twice from an unmodified order is byte-stable.
func BuildOrderPayload(order *model.Order, cfg Config) *OrderPayload {
	cfg = cfg.withDefaults()

	billing := addressDetails(order.Billing)

	// Shipping without a recipient name means shipping was not collected;
	// the API still requires the block, so billing stands in wholesale.
	shipping := billing
	if order.Shipping.HasRecipient() {
		shipping = addressDetails(order.Shipping)
	}

	email, firstName, lastName := contactFields(order)

	return &OrderPayload{
		BillingDetails:  billing,
		Created:         order.CreatedAt.Format(timestampLayout),
		Domain:          cfg.StoreDomain,
		Email:           email,
		FirstName:       firstName,
		LastName:        lastName,
		LineItems:       lineItemPayloads(order),
		OrderID:         order.Number,
		ShippingDetails: shipping,
		Status:          order.Status,
		Updated:         order.UpdatedAt.Format(timestampLayout),
	}
}

// contactFields picks the order's contact identity: the associated customer
// account wins, billing contact fields are the fallback.
func contactFields(order *model.Order) (email, firstName, lastName string) {
	if c := order.Customer; c != nil {
		return c.Email, c.FirstName, c.LastName
	}
	return order.Billing.Email, order.Billing.FirstName, order.Billing.LastName
}

// addressDetails maps a host address onto the API block. The country code
// is resolved to a display name; unknown codes pass through as-is.
func addressDetails(a model.Address) AddressDetails {
	return AddressDetails{
		Address1:    a.Address1,
		Address2:    a.Address2,
		City:        a.City,
		CompanyName: a.Company,
		Country:     countries.Name(a.CountryCode),
		CountryCode: a.CountryCode,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Phone:       a.Phone,
		Province:    a.Province,
		Zip:         a.Zip,
	}
}

// lineItemPayloads extracts the customized lines. A line without a design
// id is not a customized product and is skipped silently, never errored.
// Always returns a non-nil slice so the payload serializes [] rather than
// null.
func lineItemPayloads(order *model.Order) []LineItemPayload {
	items := make([]LineItemPayload, 0, len(order.LineItems))
	for _, li := range order.LineItems {
		id := li.DesignID()
		if id == "" {
			continue
		}
		items = append(items, LineItemPayload{
			ID:       id,
			Token:    li.DesignToken(),
			Quantity: li.Quantity,
			Price:    model.NewPrice(li.UnitPrice()),
		})
	}
	return items
}
