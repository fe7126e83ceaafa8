// Package design implements the customization attachment layer: carrying a
// Printlane (design id, token) pair from add-to-cart through the session
// onto order line items, and shaping how the pair is shown back to people.
//
// The host commerce system owns all persistence. This package only decides
// what gets stored under which key and what is visible to whom.
package design

import (
	"net/url"

	"printlane-bridge/internal/model"
)

// Form field names posted by the storefront widget on add-to-cart.
const (
	FormFieldID    = "design_id"
	FormFieldToken = "design_token"
)

// Ref is the typed design reference narrowed from a host's loose metadata
// bag. The loose map stays at the boundary; everything past it works with
// this struct.
type Ref struct {
	ID    string
	Token string
}

// RefFromMeta extracts the design reference from line item metadata.
// Returns nil when the item carries no design id: that item is not a
// customized product and contributes nothing downstream.
func RefFromMeta(meta map[string]string) *Ref {
	id := meta[model.MetaDesignID]
	if id == "" {
		return nil
	}
	return &Ref{
		ID:    id,
		Token: meta[model.MetaDesignToken],
	}
}

// HasCustomization reports whether any line item in the order carries a
// design id. Orders without one are never synced to Printlane.
func HasCustomization(order *model.Order) bool {
	for _, li := range order.LineItems {
		if li.DesignID() != "" {
			return true
		}
	}
	return false
}

// AttachmentFromForm reads the design pair out of the add-to-cart form
// submission. Returns nil when the widget posted no design id, so plain
// (non-customized) add-to-cart flows attach nothing.
func AttachmentFromForm(form url.Values) map[string]string {
	id := form.Get(FormFieldID)
	if id == "" {
		return nil
	}

	meta := map[string]string{model.MetaDesignID: id}
	if token := form.Get(FormFieldToken); token != "" {
		meta[model.MetaDesignToken] = token
	}
	return meta
}

// CartItemFromSession restores the design pair onto a cart item rebuilt
// from session storage. Only the two design keys survive the round trip.
func CartItemFromSession(stored map[string]string) map[string]string {
	var meta map[string]string
	if id := stored[model.MetaDesignID]; id != "" {
		meta = map[string]string{model.MetaDesignID: id}
		if token := stored[model.MetaDesignToken]; token != "" {
			meta[model.MetaDesignToken] = token
		}
	}
	return meta
}

// OrderItemMeta copies the design pair from cart item metadata onto the
// order line item at checkout. This is the hand-off that later feeds the
// sync engine.
func OrderItemMeta(cartMeta map[string]string) map[string]string {
	return CartItemFromSession(cartMeta)
}

// HiddenMetaKeys lists metadata keys hosts must exclude from customer and
// operator item displays. The token is an access credential, not data.
func HiddenMetaKeys() []string {
	return []string{model.MetaDesignToken}
}

// DisplayKey translates a raw metadata key into its human-facing label.
// Operators see "Design reference"; shoppers see the softer "reference".
// Other keys pass through untouched.
func DisplayKey(key string, operatorView bool) string {
	if key != model.MetaDesignID {
		return key
	}
	if operatorView {
		return "Design reference"
	}
	return "reference"
}

// VisibleMeta filters line item metadata for display. The token is always
// withheld; the design id is withheld too when the store has opted to hide
// design references from customer-facing views.
func VisibleMeta(meta map[string]string, hideReference bool) map[string]string {
	visible := make(map[string]string, len(meta))
	for k, v := range meta {
		if k == model.MetaDesignToken {
			continue
		}
		if k == model.MetaDesignID && hideReference {
			continue
		}
		visible[k] = v
	}
	return visible
}
