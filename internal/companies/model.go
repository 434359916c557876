package companies

import "time"

// Company is the tenant record that owns documents and the chatbot configuration.
type Company struct {
	ID                     string
	CompanyName            string
	URL                    string
	FolderPath             string
	Description            string
	ChatbotName            string
	ChatbotDefaultLanguage string
	ChatbotWelcomeMessage  string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// DefaultLanguage is used when the form leaves the chatbot language empty.
const DefaultLanguage = "fr"

// MaxLanguageLength bounds chatbot_default_language.
const MaxLanguageLength = 10

// Outcome describes how a create call learned that its row exists.
type Outcome string

const (
	// OutcomeInserted: the insert returned the stored row.
	OutcomeInserted Outcome = "inserted"
	// OutcomeRecovered: the insert returned no row but the read-back found it.
	OutcomeRecovered Outcome = "recovered"
	// OutcomeUnconfirmed: neither the insert nor the read-back produced a row.
	// The returned company is the in-memory candidate.
	OutcomeUnconfirmed Outcome = "unconfirmed"
)

// CreateResult is the company as last seen plus how it was obtained.
type CreateResult struct {
	Company Company
	Outcome Outcome
}

// Confirmed reports whether the backend has shown us the row.
func (r CreateResult) Confirmed() bool {
	return r.Outcome == OutcomeInserted || r.Outcome == OutcomeRecovered
}

// CreateInput carries the user-supplied fields of a new company.
type CreateInput struct {
	CompanyName     string
	URL             string
	Description     string
	ChatbotName     string
	ChatbotLanguage string
	WelcomeMessage  string
}

// UpdateInput replaces the mutable fields of a company. ID and FolderPath never change.
type UpdateInput struct {
	CompanyName     string
	URL             string
	Description     string
	ChatbotName     string
	ChatbotLanguage string
	WelcomeMessage  string
}
