package companies

import "time"

// CompanyResponse is the outward-facing representation of a company.
type CompanyResponse struct {
	ID                     string    `json:"id"`
	CompanyName            string    `json:"companyName"`
	URL                    string    `json:"url,omitempty"`
	FolderPath             string    `json:"folderPath"`
	Description            string    `json:"description,omitempty"`
	ChatbotName            string    `json:"chatbotName"`
	ChatbotDefaultLanguage string    `json:"chatbotDefaultLanguage"`
	ChatbotWelcomeMessage  string    `json:"chatbotWelcomeMessage"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// ToResponse maps a Company to its JSON shape.
func ToResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:                     c.ID,
		CompanyName:            c.CompanyName,
		URL:                    c.URL,
		FolderPath:             c.FolderPath,
		Description:            c.Description,
		ChatbotName:            c.ChatbotName,
		ChatbotDefaultLanguage: c.ChatbotDefaultLanguage,
		ChatbotWelcomeMessage:  c.ChatbotWelcomeMessage,
		CreatedAt:              c.CreatedAt,
		UpdatedAt:              c.UpdatedAt,
	}
}

type updateRequest struct {
	CompanyName            string `json:"companyName"`
	URL                    string `json:"url"`
	Description            string `json:"description"`
	ChatbotName            string `json:"chatbotName"`
	ChatbotDefaultLanguage string `json:"chatbotDefaultLanguage"`
	ChatbotWelcomeMessage  string `json:"chatbotWelcomeMessage"`
}

func (r updateRequest) toInput() UpdateInput {
	return UpdateInput{
		CompanyName:     r.CompanyName,
		URL:             r.URL,
		Description:     r.Description,
		ChatbotName:     r.ChatbotName,
		ChatbotLanguage: r.ChatbotDefaultLanguage,
		WelcomeMessage:  r.ChatbotWelcomeMessage,
	}
}
