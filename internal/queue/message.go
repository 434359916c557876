package queue

import (
	"encoding/json"
	"errors"
)

// MessageVersion is bumped when the provisioning payload changes shape.
const MessageVersion = 1

// WebsiteOptions are the crawl switches chosen on the create form.
type WebsiteOptions struct {
	URL             string `json:"url,omitempty"`
	CrawlWebsite    bool   `json:"crawlWebsite"`
	AnalyzeSitemap  bool   `json:"analyzeSitemap"`
	ExtractMetadata bool   `json:"extractMetadata"`
}

// ChatbotSettings describe the bot to provision.
type ChatbotSettings struct {
	Name           string `json:"name"`
	Language       string `json:"language"`
	WelcomeMessage string `json:"welcomeMessage"`
}

// Message asks downstream workers to provision a chatbot for a new company.
type Message struct {
	CompanyID     string          `json:"companyId"`
	CompanyName   string          `json:"companyName"`
	Industry      string          `json:"industry"`
	Description   string          `json:"description,omitempty"`
	Website       WebsiteOptions  `json:"website"`
	Chatbot       ChatbotSettings `json:"chatbot"`
	FolderPath    string          `json:"folderPath"`
	UploadedFiles []string        `json:"uploadedFiles"`
	Status        string          `json:"status"`
	RequestID     string          `json:"requestId,omitempty"`
	CreatedAt     string          `json:"createdAt"`
	Version       int             `json:"version"`
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	if msg.CompanyID == "" {
		return nil, errors.New("company id is required")
	}
	if msg.Version == 0 {
		msg.Version = MessageVersion
	}
	if msg.UploadedFiles == nil {
		msg.UploadedFiles = []string{}
	}
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
