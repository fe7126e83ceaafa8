package woocommerce

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"

	"printlane-bridge/internal/model"
)

// HeaderSignature carries the delivery signature: base64 of the HMAC-SHA256
// of the raw body, keyed with the webhook secret.
const HeaderSignature = "X-WC-Webhook-Signature"

// Platform implements adapter.Platform for WooCommerce stores.
type Platform struct {
	// WebhookSecret is the shared secret configured on the WooCommerce
	// webhook. Blank disables verification (development mode).
	WebhookSecret string
}

// Name returns "woocommerce".
func (p *Platform) Name() string { return "woocommerce" }

// VerifyWebhook authenticates a delivery against the webhook secret.
func (p *Platform) VerifyWebhook(header http.Header, body []byte) error {
	if p.WebhookSecret == "" {
		return nil
	}

	provided := header.Get(HeaderSignature)
	if provided == "" {
		return model.NewUnauthorizedError("missing webhook signature")
	}
	sig, err := base64.StdEncoding.DecodeString(provided)
	if err != nil {
		return model.NewUnauthorizedError("malformed webhook signature")
	}

	mac := hmac.New(sha256.New, []byte(p.WebhookSecret))
	mac.Write(body)
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return model.NewUnauthorizedError("webhook signature mismatch")
	}
	return nil
}

// ParseOrder translates a REST v3 order webhook body into the order model.
func (p *Platform) ParseOrder(body []byte) (*model.Order, error) {
	return ParseOrder(body)
}
