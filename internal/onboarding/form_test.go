package onboarding

import (
	"errors"
	"strings"
	"testing"

	"leadbot-backend/internal/documents"
)

func validForm() Form {
	return Form{
		CompanyName: "Acme Corp",
		Industry:    "retail",
		ChatbotName: "Bot",
	}
}

func TestFormValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Form)
		field  string
	}{
		{name: "valid", mutate: func(*Form) {}},
		{name: "missing company", mutate: func(f *Form) { f.CompanyName = "" }, field: "companyName"},
		{name: "long company", mutate: func(f *Form) { f.CompanyName = strings.Repeat("é", 101) }, field: "companyName"},
		{name: "missing industry", mutate: func(f *Form) { f.Industry = "" }, field: "industry"},
		{name: "long description", mutate: func(f *Form) { f.Description = strings.Repeat("a", 501) }, field: "companyDescription"},
		{name: "bad url", mutate: func(f *Form) { f.WebsiteURL = "acme.test" }, field: "websiteUrl"},
		{name: "ftp url", mutate: func(f *Form) { f.WebsiteURL = "ftp://acme.test" }, field: "websiteUrl"},
		{name: "https url", mutate: func(f *Form) { f.WebsiteURL = "https://acme.test/fr" }},
		{name: "missing chatbot", mutate: func(f *Form) { f.ChatbotName = "" }, field: "chatbotName"},
		{name: "long chatbot", mutate: func(f *Form) { f.ChatbotName = strings.Repeat("b", 51) }, field: "chatbotName"},
		{name: "long language", mutate: func(f *Form) { f.Language = "fr-FR-x-longer" }, field: "language"},
		{name: "regional language", mutate: func(f *Form) { f.Language = "fr-FR" }},
		{name: "long welcome", mutate: func(f *Form) { f.WelcomeMessage = strings.Repeat("w", 301) }, field: "welcomeMessage"},
		{name: "bad user id", mutate: func(f *Form) { f.UserID = "42" }, field: "userId"},
		{name: "good user id", mutate: func(f *Form) { f.UserID = "6f1c7c9e-7c43-4a53-9d43-0f7c1e2b3a4d" }},
		{name: "bad extension", mutate: func(f *Form) { f.Files = []File{{Name: "virus.exe", Size: 1}} }, field: "documents"},
		{name: "too big", mutate: func(f *Form) { f.Files = []File{{Name: "a.pdf", Size: documents.MaxFileSize + 1}} }, field: "documents"},
		{name: "double dot name", mutate: func(f *Form) { f.Files = []File{{Name: "rapport..final.pdf", Size: 1}} }, field: "documents"},
		{name: "too many", mutate: func(f *Form) { f.Files = make([]File, documents.MaxFiles+1) }, field: "documents"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			tc.mutate(&f)
			f.Normalize()
			err := f.Validate()
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ferr *FormError
			if !errors.As(err, &ferr) || !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected FormError, got %v", err)
			}
			if ferr.Fields[0].Field != tc.field {
				t.Fatalf("expected field %s, got %+v", tc.field, ferr.Fields)
			}
		})
	}
}

func TestFormNormalizeDefaultsLanguage(t *testing.T) {
	f := Form{CompanyName: "  Acme  "}
	f.Normalize()
	if f.Language != "fr" || f.CompanyName != "Acme" {
		t.Fatalf("unexpected normalized form %+v", f)
	}
}

func TestFormValidateReportsEveryField(t *testing.T) {
	err := Form{}.Validate()
	var ferr *FormError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FormError, got %v", err)
	}
	if len(ferr.Fields) != 3 {
		t.Fatalf("expected companyName, industry and chatbotName errors, got %+v", ferr.Fields)
	}
}
