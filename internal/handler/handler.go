// Package handler provides HTTP handlers for the bridge API.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"printlane-bridge/internal/adapter"
	"printlane-bridge/internal/model"
	"printlane-bridge/internal/printlane"
	"printlane-bridge/internal/storefront"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	platform adapter.Platform
	sync     *printlane.Client
	// syncEnabled is false when the store has no Printlane credentials;
	// webhooks are then acknowledged without contacting the API.
	syncEnabled bool
	widget      storefront.Settings
	logger      *slog.Logger
}

// New creates a new Handler. sync may be nil only when syncEnabled is false.
func New(platform adapter.Platform, sync *printlane.Client, syncEnabled bool, widget storefront.Settings, logger *slog.Logger) *Handler {
	return &Handler{
		platform:    platform,
		sync:        sync,
		syncEnabled: syncEnabled,
		widget:      widget,
		logger:      logger,
	}
}

// RegisterRoutes registers all HTTP routes with the given ServeMux.
// Uses Go 1.22+ method routing patterns. Webhook routes are bound to the
// configured platform's name so deliveries for the wrong platform 404.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	name := h.platform.Name()

	// Host platform order webhooks
	mux.HandleFunc("POST /webhooks/"+name+"/orders/created", h.handleOrderCreated)
	mux.HandleFunc("POST /webhooks/"+name+"/orders/updated", h.handleOrderUpdated)

	// Storefront plugin surface
	mux.HandleFunc("GET /widget/params", h.handleWidgetParams)
	mux.HandleFunc("GET /design-links", h.handleDesignLinks)

	// Discovery endpoint
	mux.HandleFunc("GET /.well-known/printlane", h.handleWellKnown)

	// MCP transport - JSON-RPC endpoint using official MCP SDK
	mux.Handle("/mcp", h.NewMCPHandler())

	// Health check
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /healthz", h.handleHealth)
}

// === Response Helpers ===

// writeJSON sends a JSON response with the given status code.
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// writeError sends an error response, extracting status/code from APIError if present.
// Uses errors.As() to unwrap error chains (e.g., fmt.Errorf wrapping).
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError

	if errors.As(err, &apiErr) {
		// Found APIError in error chain - use it
	} else {
		// Wrap unexpected errors
		apiErr = &model.APIError{
			Code:       "INTERNAL_ERROR",
			Message:    "an internal error occurred",
			StatusCode: http.StatusInternalServerError,
		}
		h.logger.Error("internal error", slog.String("error", err.Error()))
	}

	h.writeJSON(w, apiErr.StatusCode, errorResponse{
		Error: errorBody{
			Code:    apiErr.Code,
			Message: apiErr.Message,
		},
	})
}

// errorResponse is the JSON structure for error responses.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MaxRequestBodySize limits webhook bodies to 1MB to prevent DoS. Order
// payloads for stores with hundreds of lines stay well under this.
const MaxRequestBodySize = 1 << 20 // 1MB
