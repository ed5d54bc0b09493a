package clients

import (
	"errors"

	"go_vpnadmin/internal/httpx"
	"go_vpnadmin/internal/model"
	"go_vpnadmin/internal/orchestrator"

	"github.com/gin-gonic/gin"
)

// Handler exposes the client lifecycle operations over HTTP
type Handler struct {
	svc *orchestrator.Service
}

// NewHandler creates a new clients handler
func NewHandler(svc *orchestrator.Service) *Handler {
	return &Handler{svc: svc}
}

// CreateRequest represents create client request
type CreateRequest struct {
	Username string `json:"username" binding:"required"`
	Days     int    `json:"days"`
}

// ExtendRequest represents extend subscription request
type ExtendRequest struct {
	Days int `json:"days" binding:"required,min=1"`
}

// ListRequest represents list clients query parameters
type ListRequest struct {
	Status  string `form:"status"`
	Expired *bool  `form:"expired"`
}

// Create handles POST /api/v1/clients
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body: "+err.Error()))
		return
	}
	if req.Days <= 0 {
		req.Days = 30
	}

	client, err := h.svc.Create(c.Request.Context(), req.Username, req.Days)
	if err != nil {
		failOrchestrator(c, err)
		return
	}
	httpx.OK(c, toDTO(client))
}

// List handles GET /api/v1/clients
func (h *Handler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid query parameters"))
		return
	}

	filter := orchestrator.ClientFilter{Expired: req.Expired}
	if req.Status != "" {
		status := model.ClientStatus(req.Status)
		if status != model.ClientStatusActive && status != model.ClientStatusBlocked {
			httpx.FailErr(c, httpx.ErrParamInvalid("status must be active or blocked"))
			return
		}
		filter.Status = &status
	}

	items, total, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		failOrchestrator(c, err)
		return
	}
	httpx.OKItems(c, toDTOs(items), total)
}

// Get handles GET /api/v1/clients/:id
func (h *Handler) Get(c *gin.Context) {
	client, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failOrchestrator(c, err)
		return
	}
	httpx.OK(c, toDTO(client))
}

// Delete handles DELETE /api/v1/clients/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failOrchestrator(c, err)
		return
	}
	httpx.OKMsg(c, "client deleted", nil)
}

// Extend handles POST /api/v1/clients/:id/extend
func (h *Handler) Extend(c *gin.Context) {
	var req ExtendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("days must be a positive integer"))
		return
	}

	client, err := h.svc.Extend(c.Request.Context(), c.Param("id"), req.Days)
	if err != nil {
		failOrchestrator(c, err)
		return
	}
	httpx.OK(c, toDTO(client))
}

// Block handles POST /api/v1/clients/:id/block
func (h *Handler) Block(c *gin.Context) {
	client, err := h.svc.Block(c.Request.Context(), c.Param("id"))
	if err != nil {
		failOrchestrator(c, err)
		return
	}
	httpx.OK(c, toDTO(client))
}

// Unblock handles POST /api/v1/clients/:id/unblock
func (h *Handler) Unblock(c *gin.Context) {
	client, err := h.svc.Unblock(c.Request.Context(), c.Param("id"))
	if err != nil {
		failOrchestrator(c, err)
		return
	}
	httpx.OK(c, toDTO(client))
}

// GetConfig handles GET /api/v1/clients/:id/config
func (h *Handler) GetConfig(c *gin.Context) {
	result, err := h.svc.GetConfig(c.Request.Context(), c.Param("id"))
	if err != nil {
		failOrchestrator(c, err)
		return
	}
	httpx.OK(c, result)
}

// RotateConfig handles POST /api/v1/clients/:id/config/rotate
func (h *Handler) RotateConfig(c *gin.Context) {
	client, err := h.svc.RotateConfig(c.Request.Context(), c.Param("id"))
	if err != nil {
		failOrchestrator(c, err)
		return
	}
	httpx.OK(c, toDTO(client))
}

// failOrchestrator maps the orchestrator error taxonomy onto HTTP responses.
// The core never sees transport semantics; this is the only place the two
// vocabularies meet.
func failOrchestrator(c *gin.Context, err error) {
	switch {
	case errors.Is(err, orchestrator.ErrNotFound):
		httpx.FailErr(c, httpx.ErrNotFound("client not found"))
	case errors.Is(err, orchestrator.ErrAlreadyExists):
		httpx.FailErr(c, httpx.ErrAlreadyExists("client with this username already exists"))
	case errors.Is(err, orchestrator.ErrAlreadyBlocked):
		httpx.FailErr(c, httpx.ErrStateConflict("client is already blocked"))
	case errors.Is(err, orchestrator.ErrNotBlocked):
		httpx.FailErr(c, httpx.ErrStateConflict("client is not blocked"))
	case errors.Is(err, orchestrator.ErrConfigUnavailable):
		httpx.FailErr(c, httpx.ErrNotFound("client config unavailable, no remote binding"))
	case errors.Is(err, orchestrator.ErrRemoteUnavailable):
		httpx.FailErr(c, httpx.ErrExternalError("remote panel error", err))
	default:
		httpx.FailErr(c, httpx.ErrDatabaseError("", err))
	}
}
