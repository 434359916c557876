package companies

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"leadbot-backend/internal/shared/metrics"
	"leadbot-backend/internal/shared/telemetry"
)

// DefaultReadbackDelay is the pause before the single read-back of an unechoed insert.
const DefaultReadbackDelay = 2 * time.Second

// DocumentPurger removes every document owned by a company.
type DocumentPurger interface {
	DeleteAllForCompany(ctx context.Context, companyID string) error
}

// Service contains business logic for companies.
type Service struct {
	Repo Repo
	Docs DocumentPurger

	// ReadbackDelay is waited once when Insert returns no row. Zero means no wait.
	ReadbackDelay time.Duration

	// NewID overrides GenerateID, mostly for tests.
	NewID func(companyName string) string
	Now   func() time.Time
}

// NewService constructs a Service with the default read-back delay.
func NewService(repo Repo, docs DocumentPurger) *Service {
	return &Service{Repo: repo, Docs: docs, ReadbackDelay: DefaultReadbackDelay}
}

// Create builds, validates and inserts a company record.
func (s *Service) Create(ctx context.Context, in CreateInput) (CreateResult, error) {
	newID := s.NewID
	if newID == nil {
		newID = GenerateID
	}
	id := newID(in.CompanyName)
	if id == "" {
		return CreateResult{}, ErrIDGeneration
	}

	now := s.now()
	candidate := Company{
		ID:                     id,
		CompanyName:            strings.TrimSpace(in.CompanyName),
		URL:                    strings.TrimSpace(in.URL),
		FolderPath:             FolderPath(in.CompanyName),
		Description:            strings.TrimSpace(in.Description),
		ChatbotName:            strings.TrimSpace(in.ChatbotName),
		ChatbotDefaultLanguage: strings.TrimSpace(in.ChatbotLanguage),
		ChatbotWelcomeMessage:  strings.TrimSpace(in.WelcomeMessage),
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	applyDefaults(&candidate)

	if err := Validate(candidate); err != nil {
		return CreateResult{}, err
	}

	stored, err := s.Repo.Insert(ctx, candidate)
	if err != nil {
		return CreateResult{}, fmt.Errorf("insert company %s: %w", candidate.ID, err)
	}
	if stored != nil {
		return s.created(*stored, OutcomeInserted), nil
	}

	telemetry.Warn("company.insert.no_row", map[string]any{
		"company_id":  candidate.ID,
		"readback_in": s.ReadbackDelay.String(),
	})
	if err := sleep(ctx, s.ReadbackDelay); err != nil {
		return CreateResult{}, err
	}
	if found, ok := s.Get(ctx, candidate.ID); ok {
		return s.created(found, OutcomeRecovered), nil
	}

	telemetry.Error("company.insert.unconfirmed", map[string]any{
		"company_id": candidate.ID,
	})
	return s.created(candidate, OutcomeUnconfirmed), nil
}

func (s *Service) created(c Company, outcome Outcome) CreateResult {
	metrics.IncCompanyCreated(string(outcome))
	telemetry.Info("company.created", map[string]any{
		"company_id":  c.ID,
		"folder_path": c.FolderPath,
		"outcome":     string(outcome),
	})
	return CreateResult{Company: c, Outcome: outcome}
}

// Get returns a company by ID. Backend failures are logged and reported as absent.
func (s *Service) Get(ctx context.Context, id string) (Company, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Company{}, false
	}
	c, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			telemetry.Error("company.get.failed", map[string]any{
				"company_id": id,
				"error":      err,
			})
		}
		return Company{}, false
	}
	return c, true
}

// List returns all companies, or an empty slice if the backend fails.
func (s *Service) List(ctx context.Context) []Company {
	items, err := s.Repo.List(ctx)
	if err != nil {
		telemetry.Error("company.list.failed", map[string]any{"error": err})
		return []Company{}
	}
	if items == nil {
		return []Company{}
	}
	return items
}

// Update replaces the mutable fields of a company.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Company, error) {
	existing, err := s.Repo.FindByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Company{}, err
	}

	existing.CompanyName = strings.TrimSpace(in.CompanyName)
	existing.URL = strings.TrimSpace(in.URL)
	existing.Description = strings.TrimSpace(in.Description)
	existing.ChatbotName = strings.TrimSpace(in.ChatbotName)
	existing.ChatbotDefaultLanguage = strings.TrimSpace(in.ChatbotLanguage)
	existing.ChatbotWelcomeMessage = strings.TrimSpace(in.WelcomeMessage)
	existing.UpdatedAt = s.now()
	applyDefaults(&existing)

	if err := Validate(existing); err != nil {
		return Company{}, err
	}
	if err := s.Repo.Update(ctx, existing); err != nil {
		return Company{}, err
	}
	return existing, nil
}

// Delete removes a company after purging its documents.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return err
	}
	if s.Docs != nil {
		if err := s.Docs.DeleteAllForCompany(ctx, id); err != nil {
			return fmt.Errorf("purge documents of %s: %w", id, err)
		}
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	telemetry.Info("company.deleted", map[string]any{"company_id": id})
	return nil
}

// WelcomeMessage is the greeting used when none is supplied.
func WelcomeMessage(chatbotName, companyName string) string {
	name := strings.TrimSpace(chatbotName)
	if name == "" {
		name = strings.TrimSpace(companyName)
	}
	return fmt.Sprintf("Bonjour ! Je suis %s, comment puis-je vous aider ?", name)
}

func applyDefaults(c *Company) {
	if c.ChatbotWelcomeMessage == "" {
		c.ChatbotWelcomeMessage = WelcomeMessage(c.ChatbotName, c.CompanyName)
	}
	if c.ChatbotName == "" {
		c.ChatbotName = c.CompanyName
	}
	if c.ChatbotDefaultLanguage == "" {
		c.ChatbotDefaultLanguage = DefaultLanguage
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
