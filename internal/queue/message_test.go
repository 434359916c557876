package queue

import (
	"reflect"
	"testing"
)

func TestMessageRoundTrip(t *testing.T) {
	msg := Message{
		CompanyID:   "COMP_ACME_ABC12345",
		CompanyName: "Acme",
		Industry:    "retail",
		Website: WebsiteOptions{
			URL:          "https://acme.test",
			CrawlWebsite: true,
		},
		Chatbot: ChatbotSettings{
			Name:           "Bot",
			Language:       "fr",
			WelcomeMessage: "Bonjour",
		},
		FolderPath:    "documents/acme",
		UploadedFiles: []string{"documents/acme/x_a.pdf"},
		Status:        "processing",
		CreatedAt:     "2026-01-30T22:00:00Z",
		Version:       MessageVersion,
	}

	payload, err := EncodeMessage(msg)
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}

	got, err := DecodeMessage(payload)
	if err != nil {
		t.Fatalf("decode message: %v", err)
	}

	if !reflect.DeepEqual(got, msg) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, msg)
	}
}

func TestEncodeMessageDefaults(t *testing.T) {
	payload, err := EncodeMessage(Message{CompanyID: "COMP_X_AAAAAAAA"})
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}
	got, err := DecodeMessage(payload)
	if err != nil {
		t.Fatalf("decode message: %v", err)
	}
	if got.Version != MessageVersion || got.UploadedFiles == nil {
		t.Fatalf("defaults not applied: %+v", got)
	}
}

func TestEncodeMessageRequiresCompany(t *testing.T) {
	if _, err := EncodeMessage(Message{}); err == nil {
		t.Fatalf("expected error for missing company id")
	}
}
