package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"printlane-bridge/internal/design"
	"printlane-bridge/internal/model"
	"printlane-bridge/internal/printlane"
)

// Webhook acknowledgement results.
const (
	ResultSynced  = "synced"
	ResultSkipped = "skipped"
	ResultFailed  = "failed"
)

// SyncOutcome is the acknowledgement body for an order webhook. Result is
// always one of synced, skipped, or failed; a delivery is acknowledged with
// 200 regardless, because the host retransmitting an order the bridge could
// not sync would not help anyone.
type SyncOutcome struct {
	Result      string `json:"result"`
	Op          string `json:"op"`
	OrderNumber string `json:"order_number,omitempty"`
	// Reason explains a skip ("no_customization", "sync_disabled").
	Reason string `json:"reason,omitempty"`
	// StatusCode is the Printlane API response status for attempted syncs.
	StatusCode int `json:"status_code,omitempty"`
}

// handleOrderCreated processes an order-created webhook.
// POST /webhooks/{platform}/orders/created
func (h *Handler) handleOrderCreated(w http.ResponseWriter, r *http.Request) {
	h.handleOrderWebhook(w, r, printlane.OpCreate)
}

// handleOrderUpdated processes an order-updated webhook.
// POST /webhooks/{platform}/orders/updated
func (h *Handler) handleOrderUpdated(w http.ResponseWriter, r *http.Request) {
	h.handleOrderWebhook(w, r, printlane.OpUpdate)
}

func (h *Handler) handleOrderWebhook(w http.ResponseWriter, r *http.Request, op string) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxRequestBodySize))
	if err != nil {
		h.writeError(w, model.NewValidationError("body", "unreadable or too large"))
		return
	}

	// Authentication failures are the one case that must NOT be
	// acknowledged: the delivery may not be from the host at all.
	if err := h.platform.VerifyWebhook(r.Header, body); err != nil {
		h.logger.WarnContext(ctx, "webhook rejected",
			slog.String("platform", h.platform.Name()),
			slog.String("error", err.Error()),
		)
		h.writeError(w, err)
		return
	}

	order, err := h.platform.ParseOrder(body)
	if err != nil {
		h.writeError(w, err)
		return
	}

	outcome := h.syncOrder(ctx, op, order)
	h.writeJSON(w, http.StatusOK, outcome)
}

// syncOrder runs one sync attempt end to end: gating, the API call, and
// logging. It never returns an error; the outcome says what happened.
func (h *Handler) syncOrder(ctx context.Context, op string, order *model.Order) *SyncOutcome {
	outcome := &SyncOutcome{Op: op, OrderNumber: order.Number}

	if !h.syncEnabled {
		outcome.Result = ResultSkipped
		outcome.Reason = "sync_disabled"
		return outcome
	}
	if !design.HasCustomization(order) {
		outcome.Result = ResultSkipped
		outcome.Reason = "no_customization"
		h.logger.InfoContext(ctx, "order skipped",
			slog.String("op", op),
			slog.String("order", order.Number),
		)
		return outcome
	}

	var result *printlane.Result
	switch op {
	case printlane.OpUpdate:
		result = h.sync.UpdateOrder(ctx, order)
	default:
		result = h.sync.CreateOrder(ctx, order)
	}

	outcome.StatusCode = result.StatusCode
	if result.Succeeded() {
		outcome.Result = ResultSynced
		h.logger.InfoContext(ctx, "order synced",
			slog.String("op", result.Op),
			slog.String("order", result.OrderNumber),
			slog.Int("status", result.StatusCode),
			slog.Duration("duration", result.Duration),
		)
	} else {
		outcome.Result = ResultFailed
		h.logger.ErrorContext(ctx, "order sync failed",
			slog.String("op", result.Op),
			slog.String("order", result.OrderNumber),
			slog.Int("status", result.StatusCode),
			slog.Duration("duration", result.Duration),
			slog.String("error", result.Err.Error()),
		)
	}
	return outcome
}
