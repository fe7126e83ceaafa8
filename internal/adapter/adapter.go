// Package adapter defines the interface for e-commerce platform integrations.
// Adapters translate platform-specific webhook deliveries into the bridge's
// order model.
package adapter

import (
	"net/http"

	"printlane-bridge/internal/model"
)

// Platform abstracts the host commerce platform behind the bridge.
// Each platform (WooCommerce, Shopify, etc.) provides its own implementation.
//
// Implementations are stateless: verification and parsing work purely on the
// delivered request, and platform-specific error handling is encapsulated
// within each implementation.
type Platform interface {
	// Name returns the platform identifier used in routes and logs
	// (e.g. "woocommerce", "shopify").
	Name() string

	// VerifyWebhook authenticates a webhook delivery from its headers and
	// raw body. Returns nil when the delivery is authentic, an
	// unauthorized error otherwise. Implementations with no secret
	// configured accept everything (development mode).
	VerifyWebhook(header http.Header, body []byte) error

	// ParseOrder translates a platform order webhook body into the
	// bridge's order model. Customization metadata ends up under the
	// canonical design meta keys regardless of how the platform stores it.
	ParseOrder(body []byte) (*model.Order, error)
}
