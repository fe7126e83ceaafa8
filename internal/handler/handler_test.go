package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"printlane-bridge/internal/adapter"
	"printlane-bridge/internal/model"
	"printlane-bridge/internal/printlane"
	"printlane-bridge/internal/storefront"
)

// customizedOrder is the order every test platform mock parses to.
func customizedOrder() *model.Order {
	return &model.Order{
		Number:    "1001",
		Status:    "processing",
		CreatedAt: time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC),
		Billing: model.Address{
			FirstName: "Ann", LastName: "Lee", Email: "ann@example.com",
			Address1: "1 Main St", City: "Springfield", Zip: "62704", CountryCode: "US",
		},
		LineItems: []model.LineItem{{
			Quantity: 1,
			Total:    decimal.RequireFromString("19.99"),
			Meta: map[string]string{
				model.MetaDesignID:    "d1",
				model.MetaDesignToken: "t1",
			},
		}},
	}
}

// upstream is a fake Printlane order API.
type upstream struct {
	srv      *httptest.Server
	requests []*http.Request
	status   int
}

func newUpstream(t *testing.T, status int) *upstream {
	t.Helper()
	u := &upstream{status: status}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(io.Discard, r.Body)
		u.requests = append(u.requests, r.Clone(r.Context()))
		w.WriteHeader(u.status)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

type testEnv struct {
	handler  *Handler
	mux      *http.ServeMux
	upstream *upstream
	platform *adapter.Mock
}

func newTestEnv(t *testing.T, upstreamStatus int) *testEnv {
	t.Helper()
	u := newUpstream(t, upstreamStatus)
	platform := &adapter.Mock{
		NameValue: "woocommerce",
		ParseOrderFunc: func(body []byte) (*model.Order, error) {
			return customizedOrder(), nil
		},
	}
	sync := printlane.New(printlane.Config{
		ShopID:      "shop-1",
		APIKey:      "key",
		APISecret:   "secret",
		BaseURL:     u.srv.URL,
		StoreDomain: "shop.example.com",
	})
	h := New(platform, sync, true, storefront.Settings{ShopID: "shop-1"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return &testEnv{handler: h, mux: mux, upstream: u, platform: platform}
}

func (e *testEnv) post(t *testing.T, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func decodeOutcome(t *testing.T, w *httptest.ResponseRecorder) SyncOutcome {
	t.Helper()
	var out SyncOutcome
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding outcome: %v (%s)", err, w.Body.String())
	}
	return out
}

func TestOrderCreatedWebhook(t *testing.T) {
	env := newTestEnv(t, http.StatusOK)

	w := env.post(t, "/webhooks/woocommerce/orders/created", `{"id": 742}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	out := decodeOutcome(t, w)
	if out.Result != ResultSynced || out.Op != printlane.OpCreate || out.OrderNumber != "1001" {
		t.Errorf("outcome = %+v", out)
	}

	if len(env.upstream.requests) != 1 {
		t.Fatalf("upstream got %d requests, want 1", len(env.upstream.requests))
	}
	req := env.upstream.requests[0]
	if req.URL.Path != "/orders" {
		t.Errorf("upstream path = %q, want /orders", req.URL.Path)
	}
	if req.Header.Get(printlane.HeaderStore) != "shop-1" {
		t.Errorf("missing store header on upstream request")
	}
}

func TestOrderUpdatedWebhook(t *testing.T) {
	env := newTestEnv(t, http.StatusOK)

	w := env.post(t, "/webhooks/woocommerce/orders/updated", `{"id": 742}`)
	out := decodeOutcome(t, w)
	if out.Result != ResultSynced || out.Op != printlane.OpUpdate {
		t.Errorf("outcome = %+v", out)
	}
	if path := env.upstream.requests[0].URL.Path; path != "/orders/1001" {
		t.Errorf("upstream path = %q, want /orders/1001", path)
	}
}

func TestWebhookUnauthorized(t *testing.T) {
	env := newTestEnv(t, http.StatusOK)
	env.platform.VerifyWebhookFunc = func(header http.Header, body []byte) error {
		return model.NewUnauthorizedError("webhook signature mismatch")
	}

	w := env.post(t, "/webhooks/woocommerce/orders/created", `{"id": 742}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if len(env.upstream.requests) != 0 {
		t.Error("rejected delivery still reached upstream")
	}
}

func TestWebhookUnparsableOrder(t *testing.T) {
	env := newTestEnv(t, http.StatusOK)
	env.platform.ParseOrderFunc = func(body []byte) (*model.Order, error) {
		return nil, model.NewValidationError("order", "missing id")
	}

	w := env.post(t, "/webhooks/woocommerce/orders/created", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestWebhookSkipsPlainOrder(t *testing.T) {
	env := newTestEnv(t, http.StatusOK)
	env.platform.ParseOrderFunc = func(body []byte) (*model.Order, error) {
		order := customizedOrder()
		order.LineItems[0].Meta = nil
		return order, nil
	}

	w := env.post(t, "/webhooks/woocommerce/orders/created", `{"id": 742}`)
	out := decodeOutcome(t, w)
	if out.Result != ResultSkipped || out.Reason != "no_customization" {
		t.Errorf("outcome = %+v", out)
	}
	if len(env.upstream.requests) != 0 {
		t.Error("plain order reached upstream")
	}
}

func TestWebhookSyncDisabled(t *testing.T) {
	env := newTestEnv(t, http.StatusOK)
	env.handler.syncEnabled = false

	w := env.post(t, "/webhooks/woocommerce/orders/created", `{"id": 742}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	out := decodeOutcome(t, w)
	if out.Result != ResultSkipped || out.Reason != "sync_disabled" {
		t.Errorf("outcome = %+v", out)
	}
}

func TestWebhookUpstreamFailureStillAcks(t *testing.T) {
	env := newTestEnv(t, http.StatusInternalServerError)

	w := env.post(t, "/webhooks/woocommerce/orders/created", `{"id": 742}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite upstream failure", w.Code)
	}
	out := decodeOutcome(t, w)
	if out.Result != ResultFailed || out.StatusCode != http.StatusInternalServerError {
		t.Errorf("outcome = %+v", out)
	}
}

func TestWebhookWrongPlatform404s(t *testing.T) {
	env := newTestEnv(t, http.StatusOK)

	w := env.post(t, "/webhooks/shopify/orders/created", `{"id": 1}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestWidgetParams(t *testing.T) {
	env := newTestEnv(t, http.StatusOK)

	req := httptest.NewRequest("GET", "/widget/params", nil)
	req.Header.Set(storefront.HeaderClient, `version="1.5.5", platform="woocommerce", platform-version="8.4.1"`)
	w := httptest.NewRecorder()
	env.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var params storefront.Params
	if err := json.Unmarshal(w.Body.Bytes(), &params); err != nil {
		t.Fatal(err)
	}
	if params.Shop != "shop-1" || !params.BlockCart {
		t.Errorf("params = %+v", params)
	}
	if params.ButtonSelector != storefront.DefaultButtonSelector {
		t.Errorf("ButtonSelector = %q", params.ButtonSelector)
	}
}

func TestWidgetParamsMalformedHeaderIgnored(t *testing.T) {
	env := newTestEnv(t, http.StatusOK)

	req := httptest.NewRequest("GET", "/widget/params", nil)
	req.Header.Set(storefront.HeaderClient, "not a dictionary ===")
	w := httptest.NewRecorder()
	env.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with defaults", w.Code)
	}
	var params storefront.Params
	if err := json.Unmarshal(w.Body.Bytes(), &params); err != nil {
		t.Fatal(err)
	}
	if params.BlockCart {
		t.Error("BlockCart = true without client info")
	}
}

func TestDesignLinks(t *testing.T) {
	env := newTestEnv(t, http.StatusOK)

	w := env.get(t, "/design-links?id=d1&token=t1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var links printlane.Links
	if err := json.Unmarshal(w.Body.Bytes(), &links); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(links.Open, "id=d1") {
		t.Errorf("Open = %q", links.Open)
	}
	if !strings.HasSuffix(links.Download, "/shop-1/d1.t1") {
		t.Errorf("Download = %q", links.Download)
	}
}

func TestDesignLinksRequiresID(t *testing.T) {
	env := newTestEnv(t, http.StatusOK)

	if w := env.get(t, "/design-links?token=t1"); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestWellKnown(t *testing.T) {
	env := newTestEnv(t, http.StatusOK)

	w := env.get(t, "/.well-known/printlane")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var doc discoveryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Service != "printlane-bridge" || doc.Platform != "woocommerce" || !doc.SyncEnabled {
		t.Errorf("doc = %+v", doc)
	}
	if doc.Shop != "shop-1" || len(doc.Webhooks) != 2 {
		t.Errorf("doc = %+v", doc)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, http.StatusOK)

	for _, path := range []string{"/health", "/healthz"} {
		if w := env.get(t, path); w.Code != http.StatusOK {
			t.Errorf("GET %s = %d", path, w.Code)
		}
	}
}
