package adapter

import (
	"net/http"

	"printlane-bridge/internal/model"
)

// Mock implements Platform for testing.
// Each method can be configured via function fields.
type Mock struct {
	NameValue         string
	VerifyWebhookFunc func(header http.Header, body []byte) error
	ParseOrderFunc    func(body []byte) (*model.Order, error)
}

// Name returns the configured name or "mock".
func (m *Mock) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

// VerifyWebhook calls the configured VerifyWebhookFunc or accepts everything.
func (m *Mock) VerifyWebhook(header http.Header, body []byte) error {
	if m.VerifyWebhookFunc != nil {
		return m.VerifyWebhookFunc(header, body)
	}
	return nil
}

// ParseOrder calls the configured ParseOrderFunc or returns an error.
func (m *Mock) ParseOrder(body []byte) (*model.Order, error) {
	if m.ParseOrderFunc != nil {
		return m.ParseOrderFunc(body)
	}
	return nil, model.NewValidationError("order", "no parser configured")
}

// Verify Mock implements Platform interface at compile time.
var _ Platform = (*Mock)(nil)
