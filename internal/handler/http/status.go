package http

import (
	"net/http"

	"github.com/utafrali/storefront-api/internal/service"
	"github.com/utafrali/storefront-api/pkg/httputil"
)

const readyMessage = "Ecommerce API ready"

// StatusHandler serves the root banner, the connectivity report and the
// schema listing.
type StatusHandler struct {
	diagnostics *service.DiagnosticsService
}

// NewStatusHandler creates a new status HTTP handler.
func NewStatusHandler(svc *service.DiagnosticsService) *StatusHandler {
	return &StatusHandler{diagnostics: svc}
}

// MessageResponse is the body of GET /.
type MessageResponse struct {
	Message string `json:"message"`
}

// SchemaResponse is the body of GET /schema.
type SchemaResponse struct {
	Collections []string `json:"collections"`
}

// Root handles GET /
func (h *StatusHandler) Root(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, MessageResponse{Message: readyMessage})
}

// Test handles GET /test. It always answers 200; store failures are
// reported in the body.
func (h *StatusHandler) Test(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.diagnostics.Status(r.Context()))
}

// Schema handles GET /schema
func (h *StatusHandler) Schema(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, SchemaResponse{Collections: h.diagnostics.Collections()})
}
