package documents

import (
	"errors"
	"mime"
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

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/companies/:id/documents", h.listByCompany)
	rg.GET("/documents/:id/download", h.download)
	rg.DELETE("/documents/:id", h.delete)
	rg.PATCH("/documents/:id/status", h.updateStatus)
}

func (h *Handler) listByCompany(c *gin.Context) {
	companyID := c.Param("id")
	c.Set("companyId", companyID)

	docs := h.Svc.ListByCompany(c.Request.Context(), companyID)
	resp := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		resp = append(resp, ToResponse(doc))
	}
	respond.OK(c, resp)
}

func (h *Handler) download(c *gin.Context) {
	documentID := c.Param("id")
	c.Set("documentId", documentID)

	doc, reader, err := h.Svc.Open(c.Request.Context(), documentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load document", nil)
		}
		return
	}
	defer reader.Close()
	c.Set("companyId", doc.CompanyID)

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName})
	if disposition == "" {
		disposition = "attachment"
	}
	c.DataFromReader(http.StatusOK, doc.SizeBytes, doc.ContentType, reader, map[string]string{
		"Content-Disposition": disposition,
	})
}

func (h *Handler) delete(c *gin.Context) {
	documentID := c.Param("id")
	c.Set("documentId", documentID)

	if err := h.Svc.Delete(c.Request.Context(), documentID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete document", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) updateStatus(c *gin.Context) {
	documentID := c.Param("id")
	c.Set("documentId", documentID)

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if err := h.Svc.UpdateStatus(c.Request.Context(), documentID, req.Status); err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update document status", nil)
		}
		return
	}
	respond.OK(c, gin.H{"id": documentID, "status": NormalizeStatus(req.Status)})
}
