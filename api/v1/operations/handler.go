package operations

import (
	"go_vpnadmin/internal/httpx"
	"go_vpnadmin/internal/orchestrator"

	"github.com/gin-gonic/gin"
)

// Handler exposes the audit trail over HTTP
type Handler struct {
	svc *orchestrator.Service
}

// NewHandler creates a new operations handler
func NewHandler(svc *orchestrator.Service) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /api/v1/operations?clientId=...
// Returns the audit trail for one client, newest first.
func (h *Handler) List(c *gin.Context) {
	clientID := c.Query("clientId")
	if clientID == "" {
		httpx.FailErr(c, httpx.ErrParamMissing("clientId is required"))
		return
	}

	ops, total, err := h.svc.Operations(c.Request.Context(), clientID)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("", err))
		return
	}
	httpx.OKItems(c, ops, total)
}
