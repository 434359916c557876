package siteprobe

import (
	"github.com/gin-gonic/gin"

	"leadbot-backend/internal/shared/server/respond"
)

// Handler exposes the website preview used by the create form.
type Handler struct {
	Prober *Prober
}

// NewHandler constructs a Handler.
func NewHandler(p *Prober) *Handler {
	return &Handler{Prober: p}
}

// RegisterRoutes attaches the preview route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/site-preview", h.preview)
}

// preview always answers 200; failures are carried in the body as valid=false.
func (h *Handler) preview(c *gin.Context) {
	respond.OK(c, h.Prober.Probe(c.Request.Context(), c.Query("url")))
}
