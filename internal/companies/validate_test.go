package companies

import (
	"errors"
	"strings"
	"testing"
)

func validCompany() Company {
	return Company{
		ID:                    "COMP_ACME_A1B2C3D4",
		CompanyName:           "Acme",
		FolderPath:            "documents/acme",
		ChatbotName:           "Bot",
		ChatbotWelcomeMessage: "Bonjour",
	}
}

func TestValidateAcceptsCompleteRecord(t *testing.T) {
	if err := Validate(validCompany()); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}
}

func TestValidateNamesFirstBlankField(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*Company)
	}{
		{"id", func(c *Company) { c.ID = "" }},
		{"companyName", func(c *Company) { c.CompanyName = "  " }},
		{"folderPath", func(c *Company) { c.FolderPath = "" }},
		{"chatbotName", func(c *Company) { c.ChatbotName = "\t" }},
		{"chatbotWelcomeMessage", func(c *Company) { c.ChatbotWelcomeMessage = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			c := validCompany()
			tt.mutate(&c)
			err := Validate(c)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Fatalf("expected field %q, got %v", tt.field, err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Fatalf("error %q does not name %q", err, tt.field)
			}
		})
	}
}

func TestValidateOrder(t *testing.T) {
	c := validCompany()
	c.CompanyName = ""
	c.ChatbotWelcomeMessage = ""
	var verr *ValidationError
	if err := Validate(c); !errors.As(err, &verr) || verr.Field != "companyName" {
		t.Fatalf("expected companyName reported first, got %v", err)
	}
}

func TestValidateBoundsLanguage(t *testing.T) {
	c := validCompany()
	c.ChatbotDefaultLanguage = strings.Repeat("x", MaxLanguageLength)
	if err := Validate(c); err != nil {
		t.Fatalf("expected language at limit to pass, got %v", err)
	}

	c.ChatbotDefaultLanguage = strings.Repeat("x", MaxLanguageLength+1)
	var verr *ValidationError
	if err := Validate(c); !errors.As(err, &verr) || verr.Field != "chatbotDefaultLanguage" {
		t.Fatalf("expected chatbotDefaultLanguage error, got %v", err)
	}
	if !errors.Is(verr, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput")
	}
}
