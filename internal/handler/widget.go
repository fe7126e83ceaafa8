package handler

import (
	"log/slog"
	"net/http"

	"printlane-bridge/internal/design"
	"printlane-bridge/internal/model"
	"printlane-bridge/internal/storefront"
)

// handleWidgetParams returns the designer widget bootstrap parameters.
// GET /widget/params
//
// The Printlane-Client header is optional: without it the params fall back
// to classic markup and version-gated features stay off.
func (h *Handler) handleWidgetParams(w http.ResponseWriter, r *http.Request) {
	var client storefront.HeaderClientInfo
	if raw := r.Header.Get(storefront.HeaderClient); raw != "" {
		parsed, err := storefront.ParseClientHeader(raw)
		if err != nil {
			h.logger.Warn("ignoring malformed client header",
				slog.String("header", raw),
				slog.String("error", err.Error()),
			)
		} else {
			client = parsed
		}
	}

	h.writeJSON(w, http.StatusOK, storefront.BuildParams(h.widget, client))
}

// handleDesignLinks returns the studio and export links for a design.
// GET /design-links?id=...&token=...
//
// The download link is only usable with the design's token; requests
// without one get the open link alone.
func (h *Handler) handleDesignLinks(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		h.writeError(w, model.NewValidationError("id", "design id required"))
		return
	}
	if !h.syncEnabled {
		h.writeError(w, model.NewValidationError("store", "Printlane credentials not configured"))
		return
	}

	ref := design.Ref{ID: id, Token: r.URL.Query().Get("token")}
	h.writeJSON(w, http.StatusOK, h.sync.Links(ref))
}
