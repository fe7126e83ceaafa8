package printlane

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"printlane-bridge/internal/model"
	"printlane-bridge/internal/transport"
)

// Authentication headers. No other auth scheme is supported by the order API.
const (
	HeaderStore     = "X-Printlane-Store"
	HeaderAPIKey    = "X-Printlane-Api-Key"
	HeaderSignature = "X-Printlane-Api-Signature"
)

// Sync operations.
const (
	OpCreate = "create"
	OpUpdate = "update"
)

// requestTimeout bounds a sync request end to end. Sync runs on the hot
// path of order webhooks; it must never hang the host's delivery worker.
const requestTimeout = 10 * time.Second

// Result is the typed outcome of one sync operation. Failures live in Err
// instead of an error return: callers on the checkout path must observe the
// outcome (usually to log it) without being tempted to propagate it — a
// failed sync never fails the host's order flow.
type Result struct {
	Op          string
	OrderNumber string

	// StatusCode is the HTTP status received, 0 when the request never
	// got a response (transport failure).
	StatusCode int
	Duration   time.Duration

	// Err is non-nil for transport failures and for non-2xx responses.
	// Non-2xx is recorded as a failure even though nothing acts on it;
	// operators should at least see it in the logs.
	Err error
}

// Succeeded reports whether the remote accepted the payload.
func (r *Result) Succeeded() bool {
	return r.Err == nil
}

// Client talks to the Printlane order API for a single store.
type Client struct {
	httpClient *http.Client
	cfg        Config
}

// New creates a client from store configuration. Construction never fails:
// blank credentials yield a client whose pure methods (Payload, Headers)
// work normally and whose network calls will simply be rejected remotely.
// The credentials-present precondition belongs to the caller.
func New(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport.New(requestTimeout),
		},
		cfg: cfg.withDefaults(),
	}
}

// Payload builds the API payload for an order without sending anything.
func (c *Client) Payload(order *model.Order) *OrderPayload {
	return BuildOrderPayload(order, c.cfg)
}

// Headers returns the authentication headers for a request about the given
// order number.
func (c *Client) Headers(orderNumber string) map[string]string {
	return map[string]string{
		"Content-Type":  "application/json",
		HeaderStore:     c.cfg.ShopID,
		HeaderAPIKey:    c.cfg.APIKey,
		HeaderSignature: Signature(c.cfg.ShopID, orderNumber, c.cfg.APISecret),
	}
}

// CreateOrder registers a new order with Printlane.
// POST <base>/orders with the full payload.
func (c *Client) CreateOrder(ctx context.Context, order *model.Order) *Result {
	return c.send(ctx, OpCreate, c.cfg.BaseURL+"/orders", order)
}

// UpdateOrder pushes the current full state of an existing order.
// POST <base>/orders/<number>; the remote upserts by order number, so
// replays and create/update races resolve to last-write-wins.
func (c *Client) UpdateOrder(ctx context.Context, order *model.Order) *Result {
	endpoint := c.cfg.BaseURL + "/orders/" + url.PathEscape(order.Number)
	return c.send(ctx, OpUpdate, endpoint, order)
}

// send performs the one HTTP call of a sync operation.
func (c *Client) send(ctx context.Context, op, endpoint string, order *model.Order) *Result {
	result := &Result{Op: op, OrderNumber: order.Number}
	start := time.Now()
	defer func() { result.Duration = time.Since(start) }()

	body, err := json.Marshal(c.Payload(order))
	if err != nil {
		result.Err = fmt.Errorf("marshaling payload: %w", err)
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		result.Err = fmt.Errorf("creating request: %w", err)
		return result
	}
	for k, v := range c.Headers(order.Number) {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		result.Err = model.NewUpstreamError("Printlane", err)
		return result
	}
	defer resp.Body.Close()

	// Drain body to allow connection reuse; the API returns no payload
	// the bridge acts on.
	io.Copy(io.Discard, resp.Body)

	result.StatusCode = resp.StatusCode
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if resp.StatusCode == http.StatusTooManyRequests {
			result.Err = model.NewRateLimitError("Printlane")
			return result
		}
		result.Err = model.NewUpstreamError("Printlane",
			fmt.Errorf("%s order %s: status %d", op, order.Number, resp.StatusCode))
	}
	return result
}
