package onboarding

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"leadbot-backend/internal/companies"
	"leadbot-backend/internal/documents"
)

var ErrInvalidInput = errors.New("invalid input")

const (
	maxCompanyName    = 100
	maxDescription    = 500
	maxChatbotName    = 50
	maxWelcomeMessage = 300
)

// File is one uploaded attachment of the create form.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadSeekCloser, error)
}

// Form is the multi-step create form as submitted.
type Form struct {
	CompanyName     string
	Industry        string
	Description     string
	WebsiteURL      string
	CrawlWebsite    bool
	AnalyzeSitemap  bool
	ExtractMetadata bool
	ChatbotName     string
	Language        string
	WelcomeMessage  string
	UserID          string
	Files           []File
}

// FieldError is one rejected form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FormError lists every rejected field, in form order.
type FormError struct {
	Fields []FieldError
}

func (e *FormError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return strings.Join(parts, "; ")
}

func (e *FormError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Normalize trims text fields and applies the language default.
func (f *Form) Normalize() {
	f.CompanyName = strings.TrimSpace(f.CompanyName)
	f.Industry = strings.TrimSpace(f.Industry)
	f.Description = strings.TrimSpace(f.Description)
	f.WebsiteURL = strings.TrimSpace(f.WebsiteURL)
	f.ChatbotName = strings.TrimSpace(f.ChatbotName)
	f.Language = strings.TrimSpace(f.Language)
	f.WelcomeMessage = strings.TrimSpace(f.WelcomeMessage)
	f.UserID = strings.TrimSpace(f.UserID)
	if f.Language == "" {
		f.Language = companies.DefaultLanguage
	}
}

// Validate checks the form and every attachment. It makes no remote calls.
func (f Form) Validate() error {
	var errs []FieldError
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	switch {
	case f.CompanyName == "":
		add("companyName", "Le nom de l'entreprise est requis")
	case utf8.RuneCountInString(f.CompanyName) > maxCompanyName:
		add("companyName", "Le nom ne peut pas dépasser 100 caractères")
	}
	if f.Industry == "" {
		add("industry", "Le secteur d'activité est requis")
	}
	if utf8.RuneCountInString(f.Description) > maxDescription {
		add("companyDescription", "La description ne peut pas dépasser 500 caractères")
	}
	if f.WebsiteURL != "" && !validWebsite(f.WebsiteURL) {
		add("websiteUrl", "Veuillez entrer une URL valide")
	}
	switch {
	case f.ChatbotName == "":
		add("chatbotName", "Le nom du chatbot est requis")
	case utf8.RuneCountInString(f.ChatbotName) > maxChatbotName:
		add("chatbotName", "Le nom ne peut pas dépasser 50 caractères")
	}
	if utf8.RuneCountInString(f.Language) > companies.MaxLanguageLength {
		add("language", "La langue ne peut pas dépasser 10 caractères")
	}
	if utf8.RuneCountInString(f.WelcomeMessage) > maxWelcomeMessage {
		add("welcomeMessage", "Le message ne peut pas dépasser 300 caractères")
	}
	if f.UserID != "" {
		if _, err := uuid.Parse(f.UserID); err != nil {
			add("userId", "Identifiant utilisateur invalide")
		}
	}

	if err := documents.ValidateFileCount(len(f.Files)); err != nil {
		add("documents", err.Error())
	} else {
		for _, file := range f.Files {
			if err := documents.ValidateUpload(file.Name, file.Size); err != nil {
				add("documents", err.Error())
				break
			}
		}
	}

	if len(errs) > 0 {
		return &FormError{Fields: errs}
	}
	return nil
}

func validWebsite(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
