package chat

import (
	"context"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"leadbot-backend/internal/companies"
	"leadbot-backend/internal/shared/server/respond"
)

const maxMessageLength = 1000

// CompanyLookup resolves the greeting configured for a company.
type CompanyLookup interface {
	Get(ctx context.Context, id string) (companies.Company, bool)
}

// Handler serves the scripted chat widget.
type Handler struct {
	Bot       *Bot
	Companies CompanyLookup
}

// NewHandler constructs a Handler.
func NewHandler(bot *Bot, lookup CompanyLookup) *Handler {
	return &Handler{Bot: bot, Companies: lookup}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.reply)
	rg.GET("/chat/welcome", h.welcome)
}

type messageRequest struct {
	Message string `json:"message"`
}

func (h *Handler) reply(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}
	if utf8.RuneCountInString(msg) > maxMessageLength {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is too long", nil)
		return
	}
	respond.OK(c, h.Bot.Reply(msg))
}

func (h *Handler) welcome(c *gin.Context) {
	message := DefaultWelcome
	if id := strings.TrimSpace(c.Query("companyId")); id != "" && h.Companies != nil {
		c.Set("companyId", id)
		if company, ok := h.Companies.Get(c.Request.Context(), id); ok && company.ChatbotWelcomeMessage != "" {
			message = company.ChatbotWelcomeMessage
		}
	}
	respond.OK(c, gin.H{"message": message})
}
