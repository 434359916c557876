package onboarding

import (
	"context"
	"fmt"
	"time"

	"leadbot-backend/internal/companies"
	"leadbot-backend/internal/documents"
	"leadbot-backend/internal/queue"
	"leadbot-backend/internal/shared/metrics"
	"leadbot-backend/internal/shared/telemetry"
)

// StatusProcessing is reported while the chatbot is being provisioned.
const StatusProcessing = "processing"

// CompanyCreator creates the company record.
type CompanyCreator interface {
	Create(ctx context.Context, in companies.CreateInput) (companies.CreateResult, error)
}

// Uploader stores one attachment.
type Uploader interface {
	Upload(ctx context.Context, in documents.UploadInput) (documents.Document, error)
}

// Result is what a successful submission produced.
type Result struct {
	Company       companies.Company
	Outcome       companies.Outcome
	UploadedFiles []string
	Status        string
}

// UploadFailedError reports the attachment that stopped a submission.
// Files uploaded before it are kept.
type UploadFailedError struct {
	CompanyID string
	FileName  string
	Uploaded  []string
	Err       error
}

func (e *UploadFailedError) Error() string {
	return fmt.Sprintf("upload %s for %s: %v", e.FileName, e.CompanyID, e.Err)
}

func (e *UploadFailedError) Unwrap() error { return e.Err }

// Service runs the create form end to end.
type Service struct {
	Companies CompanyCreator
	Documents Uploader
	Queue     queue.Client
	Now       func() time.Time
}

// Submit validates the form, creates the company, uploads the attachments in order
// and announces the new company on the provisioning queue.
func (s *Service) Submit(ctx context.Context, form Form, requestID string) (Result, error) {
	form.Normalize()
	if err := form.Validate(); err != nil {
		return Result{}, err
	}

	created, err := s.Companies.Create(ctx, companies.CreateInput{
		CompanyName:     form.CompanyName,
		URL:             form.WebsiteURL,
		Description:     form.Description,
		ChatbotName:     form.ChatbotName,
		ChatbotLanguage: form.Language,
		WelcomeMessage:  form.WelcomeMessage,
	})
	if err != nil {
		return Result{}, err
	}
	company := created.Company

	uploaded := make([]string, 0, len(form.Files))
	for _, file := range form.Files {
		path, err := s.upload(ctx, company.ID, form.UserID, file)
		if err != nil {
			return Result{}, &UploadFailedError{
				CompanyID: company.ID,
				FileName:  file.Name,
				Uploaded:  uploaded,
				Err:       err,
			}
		}
		uploaded = append(uploaded, path)
	}

	s.publish(ctx, form, company, uploaded, requestID)

	return Result{
		Company:       company,
		Outcome:       created.Outcome,
		UploadedFiles: uploaded,
		Status:        StatusProcessing,
	}, nil
}

func (s *Service) upload(ctx context.Context, companyID, userID string, file File) (string, error) {
	body, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	defer body.Close()

	doc, err := s.Documents.Upload(ctx, documents.UploadInput{
		CompanyID:   companyID,
		UserID:      userID,
		FileName:    file.Name,
		ContentType: file.ContentType,
		Size:        file.Size,
		Body:        body,
	})
	if err != nil {
		return "", err
	}
	return doc.FilePath, nil
}

func (s *Service) publish(ctx context.Context, form Form, company companies.Company, uploaded []string, requestID string) {
	if s.Queue == nil {
		return
	}
	msg := queue.Message{
		CompanyID:   company.ID,
		CompanyName: company.CompanyName,
		Industry:    form.Industry,
		Description: company.Description,
		Website: queue.WebsiteOptions{
			URL:             company.URL,
			CrawlWebsite:    form.CrawlWebsite,
			AnalyzeSitemap:  form.AnalyzeSitemap,
			ExtractMetadata: form.ExtractMetadata,
		},
		Chatbot: queue.ChatbotSettings{
			Name:           company.ChatbotName,
			Language:       company.ChatbotDefaultLanguage,
			WelcomeMessage: company.ChatbotWelcomeMessage,
		},
		FolderPath:    company.FolderPath,
		UploadedFiles: uploaded,
		Status:        StatusProcessing,
		RequestID:     requestID,
		CreatedAt:     s.now().Format(time.RFC3339),
		Version:       queue.MessageVersion,
	}
	if err := s.Queue.Send(ctx, msg); err != nil {
		metrics.IncProvisioningPublishFailed()
		telemetry.Error("onboarding.publish.failed", map[string]any{
			"company_id": company.ID,
			"request_id": requestID,
			"error":      err,
		})
		return
	}
	telemetry.Info("onboarding.published", map[string]any{
		"company_id": company.ID,
		"files":      len(uploaded),
	})
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
