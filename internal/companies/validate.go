package companies

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validate checks the required fields in a fixed order and reports the first blank one,
// then bounds the chatbot language.
func Validate(c Company) error {
	required := []struct {
		field string
		value string
	}{
		{"id", c.ID},
		{"companyName", c.CompanyName},
		{"folderPath", c.FolderPath},
		{"chatbotName", c.ChatbotName},
		{"chatbotWelcomeMessage", c.ChatbotWelcomeMessage},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field}
		}
	}
	if utf8.RuneCountInString(c.ChatbotDefaultLanguage) > MaxLanguageLength {
		return &ValidationError{
			Field:  "chatbotDefaultLanguage",
			Reason: fmt.Sprintf("must be at most %d characters", MaxLanguageLength),
		}
	}
	return nil
}
