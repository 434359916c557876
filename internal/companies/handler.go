package companies

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"leadbot-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches company routes to the router group.
// Creation lives in the onboarding package because it spans documents too.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/companies", h.list)
	rg.GET("/companies/:id", h.get)
	rg.PUT("/companies/:id", h.update)
	rg.DELETE("/companies/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items := h.Svc.List(c.Request.Context())
	resp := make([]CompanyResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, ToResponse(item))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("companyId", id)

	company, ok := h.Svc.Get(c.Request.Context(), id)
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "company not found", nil)
		return
	}
	respond.OK(c, ToResponse(company))
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set("companyId", id)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	company, err := h.Svc.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		writeError(c, err, "failed to update company")
		return
	}
	respond.OK(c, ToResponse(company))
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set("companyId", id)

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, "failed to delete company")
		return
	}
	c.Status(http.StatusNoContent)
}

func writeError(c *gin.Context, err error, fallback string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "validation_error", verr.Error(), gin.H{"field": verr.Field})
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "company not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
