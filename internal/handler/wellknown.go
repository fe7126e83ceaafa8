package handler

import (
	"net/http"

	"printlane-bridge/internal/storefront"
)

// apiVersion is the Printlane order API generation this bridge speaks.
const apiVersion = "2023-10"

// handleWellKnown returns the bridge discovery document. Storefront plugins
// use it to confirm the bridge is reachable, which platform it serves, and
// where to point their webhooks.
// GET /.well-known/printlane
func (h *Handler) handleWellKnown(w http.ResponseWriter, r *http.Request) {
	name := h.platform.Name()
	h.writeJSON(w, http.StatusOK, discoveryResponse{
		Service:     "printlane-bridge",
		APIVersion:  apiVersion,
		Platform:    name,
		Shop:        h.widget.ShopID,
		ScriptURL:   storefront.DefaultScriptURL,
		SyncEnabled: h.syncEnabled,
		Webhooks: []string{
			"/webhooks/" + name + "/orders/created",
			"/webhooks/" + name + "/orders/updated",
		},
	})
}

// handleHealth returns a simple health check response.
// GET /health, GET /healthz
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

type discoveryResponse struct {
	Service     string   `json:"service"`
	APIVersion  string   `json:"api_version"`
	Platform    string   `json:"platform"`
	Shop        string   `json:"shop,omitempty"`
	ScriptURL   string   `json:"script_url"`
	SyncEnabled bool     `json:"sync_enabled"`
	Webhooks    []string `json:"webhooks"`
}

type healthResponse struct {
	Status string `json:"status"`
}
