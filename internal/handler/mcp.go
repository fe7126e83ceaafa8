// MCP transport handler for the bridge using the official MCP Go SDK.
// Exposes order sync and design link operations as MCP tools, mainly for
// operator tooling and support workflows.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"printlane-bridge/internal/design"
	"printlane-bridge/internal/model"
	"printlane-bridge/internal/printlane"
)

// === MCP Tool Input/Output Types ===

// SyncOrderInput is the input schema for the sync_order tool. Order is the
// raw platform webhook payload, exactly as the host would deliver it.
type SyncOrderInput struct {
	Op    string         `json:"op,omitempty" jsonschema:"sync operation: create or update (default create)"`
	Order map[string]any `json:"order" jsonschema:"platform order payload,required"`
}

// PreviewOrderPayloadInput is the input schema for preview_order_payload.
type PreviewOrderPayloadInput struct {
	Order map[string]any `json:"order" jsonschema:"platform order payload,required"`
}

// DesignLinksInput is the input schema for the design_links tool.
type DesignLinksInput struct {
	ID    string `json:"id" jsonschema:"design identifier,required"`
	Token string `json:"token,omitempty" jsonschema:"design access token (enables the download link)"`
}

// NewMCPServer creates an MCP server with bridge tools registered.
func (h *Handler) NewMCPServer() *mcp.Server {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "printlane-bridge",
			Version: "1.0.0",
		},
		&mcp.ServerOptions{
			Instructions: "Printlane bridge - order sync and design link operations. " +
				"Orders are given as raw " + h.platform.Name() + " webhook payloads.",
		},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "sync_order",
		Description: "Push an order to the Printlane order API. Use op=update to re-push an existing order.",
	}, h.mcpSyncOrder)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "preview_order_payload",
		Description: "Build the Printlane API payload for an order without sending anything.",
	}, h.mcpPreviewOrderPayload)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "design_links",
		Description: "Render the studio and export links for a design reference.",
	}, h.mcpDesignLinks)

	return server
}

// NewMCPHandler returns an HTTP handler for the MCP endpoint.
// Mount this at /mcp on your mux.
func (h *Handler) NewMCPHandler() http.Handler {
	server := h.NewMCPServer()
	return mcp.NewStreamableHTTPHandler(
		func(r *http.Request) *mcp.Server { return server },
		nil,
	)
}

// === Tool Handlers ===

func (h *Handler) mcpSyncOrder(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input SyncOrderInput,
) (*mcp.CallToolResult, *SyncOutcome, error) {
	op := printlane.OpCreate
	switch input.Op {
	case "", printlane.OpCreate:
	case printlane.OpUpdate:
		op = printlane.OpUpdate
	default:
		return nil, nil, fmt.Errorf("op must be %q or %q", printlane.OpCreate, printlane.OpUpdate)
	}

	order, err := h.parseToolOrder(input.Order)
	if err != nil {
		return nil, nil, err
	}

	return nil, h.syncOrder(ctx, op, order), nil
}

func (h *Handler) mcpPreviewOrderPayload(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input PreviewOrderPayloadInput,
) (*mcp.CallToolResult, *printlane.OrderPayload, error) {
	order, err := h.parseToolOrder(input.Order)
	if err != nil {
		return nil, nil, err
	}
	if h.sync == nil {
		return nil, nil, fmt.Errorf("store has no Printlane configuration")
	}
	return nil, h.sync.Payload(order), nil
}

func (h *Handler) mcpDesignLinks(
	ctx context.Context,
	req *mcp.CallToolRequest,
	input DesignLinksInput,
) (*mcp.CallToolResult, *printlane.Links, error) {
	if input.ID == "" {
		return nil, nil, fmt.Errorf("id is required")
	}
	if h.sync == nil {
		return nil, nil, fmt.Errorf("store has no Printlane configuration")
	}
	links := h.sync.Links(design.Ref{ID: input.ID, Token: input.Token})
	return nil, &links, nil
}

// parseToolOrder round-trips a tool's loosely-typed order argument through
// the platform parser, so tool calls exercise exactly the webhook path.
func (h *Handler) parseToolOrder(raw map[string]any) (*model.Order, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("order is required")
	}
	body, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("encoding order: %w", err)
	}
	order, err := h.platform.ParseOrder(body)
	if err != nil {
		return nil, h.mcpError(err)
	}
	return order, nil
}

// mcpError converts adapter errors to MCP-friendly errors.
func (h *Handler) mcpError(err error) error {
	if apiErr, ok := err.(*model.APIError); ok {
		return fmt.Errorf("%s: %s", apiErr.Code, apiErr.Message)
	}
	// Don't leak internal error details
	h.logger.Error("mcp internal error", "error", err.Error())
	return fmt.Errorf("internal error")
}
