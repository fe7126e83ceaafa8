package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"

	"printlane-bridge/internal/model"
)

// HeaderSignature carries the delivery signature: base64 of the HMAC-SHA256
// of the raw body, keyed with the app's webhook secret.
const HeaderSignature = "X-Shopify-Hmac-Sha256"

// Platform implements adapter.Platform for Shopify stores.
type Platform struct {
	// WebhookSecret is the app's webhook signing secret. Blank disables
	// verification (development mode).
	WebhookSecret string
}

// Name returns "shopify".
func (p *Platform) Name() string { return "shopify" }

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

// ParseOrder translates an orders/* webhook body into the order model.
func (p *Platform) ParseOrder(body []byte) (*model.Order, error) {
	return ParseOrder(body)
}
