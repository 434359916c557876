package onboarding

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"leadbot-backend/internal/companies"
	"leadbot-backend/internal/documents"
	"leadbot-backend/internal/scan"
	"leadbot-backend/internal/shared/server/middleware"
	"leadbot-backend/internal/shared/server/respond"
)

// maxFormBytes bounds the whole multipart body: every file at its limit plus the text fields.
const maxFormBytes = documents.MaxFiles*documents.MaxFileSize + 1<<20

// Handler wires the create form to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the create endpoint to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/companies", h.create)
}

type createResponse struct {
	CompanyID     string   `json:"companyId"`
	ChatbotName   string   `json:"chatbotName"`
	FolderPath    string   `json:"folderPath"`
	UploadedFiles []string `json:"uploadedFiles"`
	Status        string   `json:"status"`
	Outcome       string   `json:"outcome"`
}

func (h *Handler) create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFormBytes)

	form, err := bindForm(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid multipart form", nil)
		return
	}

	res, err := h.Svc.Submit(c.Request.Context(), form, middleware.RequestIDFromContext(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set("companyId", res.Company.ID)

	respond.Created(c, createResponse{
		CompanyID:     res.Company.ID,
		ChatbotName:   res.Company.ChatbotName,
		FolderPath:    res.Company.FolderPath,
		UploadedFiles: res.UploadedFiles,
		Status:        res.Status,
		Outcome:       string(res.Outcome),
	})
}

func writeError(c *gin.Context, err error) {
	var formErr *FormError
	var verr *companies.ValidationError
	var upErr *UploadFailedError
	if errors.As(err, &upErr) {
		c.Set("companyId", upErr.CompanyID)
	}

	switch {
	case errors.As(err, &formErr):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid form", formErr.Fields)
	case errors.As(err, &verr):
		respond.Error(c, http.StatusBadRequest, "validation_error", verr.Error(), gin.H{"field": verr.Field})
	case upErr != nil && errors.Is(err, scan.ErrInfected):
		respond.Error(c, http.StatusUnprocessableEntity, "infected_file", "Le fichier "+upErr.FileName+" a été rejeté par l'antivirus", uploadDetails(upErr))
	case upErr != nil:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Échec de l'upload du fichier: "+upErr.FileName, uploadDetails(upErr))
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Une erreur est survenue lors de la création du chatbot.", nil)
	}
}

func uploadDetails(e *UploadFailedError) gin.H {
	if e == nil {
		return nil
	}
	return gin.H{
		"companyId":     e.CompanyID,
		"fileName":      e.FileName,
		"uploadedFiles": e.Uploaded,
	}
}

func bindForm(c *gin.Context) (Form, error) {
	mf, err := c.MultipartForm()
	if err != nil {
		return Form{}, err
	}
	value := func(key string) string {
		if v := mf.Value[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}

	form := Form{
		CompanyName:     value("companyName"),
		Industry:        value("industry"),
		Description:     value("companyDescription"),
		WebsiteURL:      value("websiteUrl"),
		CrawlWebsite:    checkbox(value("crawlWebsite")),
		AnalyzeSitemap:  checkbox(value("analyzeSitemap")),
		ExtractMetadata: checkbox(value("extractMetadata")),
		ChatbotName:     value("chatbotName"),
		Language:        value("language"),
		WelcomeMessage:  value("welcomeMessage"),
		UserID:          value("userId"),
	}
	for _, fh := range mf.File["documents"] {
		form.Files = append(form.Files, fileFromHeader(fh))
	}
	return form, nil
}

func fileFromHeader(fh *multipart.FileHeader) File {
	return File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadSeekCloser, error) {
			return fh.Open()
		},
	}
}

// checkbox accepts HTML checkbox values as well as booleans.
func checkbox(v string) bool {
	v = strings.TrimSpace(strings.ToLower(v))
	if v == "on" {
		return true
	}
	b, _ := strconv.ParseBool(v)
	return b
}
