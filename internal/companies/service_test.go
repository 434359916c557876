package companies

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// silentRepo accepts inserts without echoing the row. If keep is false it also
// drops the row, which models a write the backend never made visible.
type silentRepo struct {
	*MemoryRepo
	keep bool
}

func (r *silentRepo) Insert(ctx context.Context, c Company) (*Company, error) {
	if r.keep {
		if _, err := r.MemoryRepo.Insert(ctx, c); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

type failingRepo struct {
	*MemoryRepo
	err error
}

func (r *failingRepo) Insert(context.Context, Company) (*Company, error) { return nil, r.err }
func (r *failingRepo) List(context.Context) ([]Company, error)           { return nil, r.err }

type fakeDocs struct {
	byCompany map[string][]string
	err       error
}

func (f *fakeDocs) DeleteAllForCompany(_ context.Context, companyID string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.byCompany, companyID)
	return nil
}

func newTestService(repo Repo) *Service {
	return &Service{Repo: repo, Docs: &fakeDocs{byCompany: map[string][]string{}}}
}

func TestCreateInserted(t *testing.T) {
	svc := newTestService(NewMemoryRepo())

	res, err := svc.Create(context.Background(), CreateInput{CompanyName: "Acme Corp", ChatbotName: "Bot"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Outcome != OutcomeInserted || !res.Confirmed() {
		t.Fatalf("expected inserted outcome, got %s", res.Outcome)
	}
	if !strings.HasPrefix(res.Company.ID, "COMP_ACME_CORP_") {
		t.Fatalf("unexpected id %q", res.Company.ID)
	}
	if res.Company.FolderPath != "documents/acme_corp" {
		t.Fatalf("unexpected folder path %q", res.Company.FolderPath)
	}
	if res.Company.ChatbotDefaultLanguage != DefaultLanguage {
		t.Fatalf("expected default language, got %q", res.Company.ChatbotDefaultLanguage)
	}
}

func TestCreateDefaultsWelcomeMessageFromChatbotName(t *testing.T) {
	svc := newTestService(NewMemoryRepo())

	res, err := svc.Create(context.Background(), CreateInput{CompanyName: "Acme", ChatbotName: "Bot"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.Contains(res.Company.ChatbotWelcomeMessage, "Bot") {
		t.Fatalf("welcome message %q does not mention chatbot", res.Company.ChatbotWelcomeMessage)
	}
}

func TestCreateDefaultsChatbotNameAndWelcomeFromCompany(t *testing.T) {
	svc := newTestService(NewMemoryRepo())

	res, err := svc.Create(context.Background(), CreateInput{CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Company.ChatbotName != "Acme" {
		t.Fatalf("expected chatbot name Acme, got %q", res.Company.ChatbotName)
	}
	if !strings.Contains(res.Company.ChatbotWelcomeMessage, "Acme") {
		t.Fatalf("welcome message %q does not mention company", res.Company.ChatbotWelcomeMessage)
	}
}

func TestCreateKeepsSuppliedWelcomeMessage(t *testing.T) {
	svc := newTestService(NewMemoryRepo())

	res, err := svc.Create(context.Background(), CreateInput{
		CompanyName:    "Acme",
		ChatbotName:    "Bot",
		WelcomeMessage: "Salut !",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Company.ChatbotWelcomeMessage != "Salut !" {
		t.Fatalf("unexpected welcome message %q", res.Company.ChatbotWelcomeMessage)
	}
}

func TestCreateRecoveredAfterReadback(t *testing.T) {
	svc := newTestService(&silentRepo{MemoryRepo: NewMemoryRepo(), keep: true})
	svc.ReadbackDelay = time.Millisecond

	res, err := svc.Create(context.Background(), CreateInput{CompanyName: "Acme", ChatbotName: "Bot"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Outcome != OutcomeRecovered {
		t.Fatalf("expected recovered, got %s", res.Outcome)
	}
}

func TestCreateUnconfirmedReturnsCandidate(t *testing.T) {
	svc := newTestService(&silentRepo{MemoryRepo: NewMemoryRepo()})

	res, err := svc.Create(context.Background(), CreateInput{CompanyName: "Acme", ChatbotName: "Bot"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Outcome != OutcomeUnconfirmed || res.Confirmed() {
		t.Fatalf("expected unconfirmed, got %s", res.Outcome)
	}
	if res.Company.ID == "" || res.Company.ChatbotName != "Bot" {
		t.Fatalf("expected candidate record, got %+v", res.Company)
	}
}

func TestCreateReadbackHonoursContext(t *testing.T) {
	svc := newTestService(&silentRepo{MemoryRepo: NewMemoryRepo()})
	svc.ReadbackDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.Create(ctx, CreateInput{CompanyName: "Acme"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCreatePropagatesInsertError(t *testing.T) {
	boom := errors.New("backend down")
	svc := newTestService(&failingRepo{MemoryRepo: NewMemoryRepo(), err: boom})

	if _, err := svc.Create(context.Background(), CreateInput{CompanyName: "Acme"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped insert error, got %v", err)
	}
}

func TestCreateValidationStopsBeforeInsert(t *testing.T) {
	repo := &failingRepo{MemoryRepo: NewMemoryRepo(), err: errors.New("must not be called")}
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), CreateInput{CompanyName: "   "})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "companyName" {
		t.Fatalf("expected companyName validation error, got %v", err)
	}
}

func TestCreateEmptyIDIsFatal(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	svc.NewID = func(string) string { return "" }

	if _, err := svc.Create(context.Background(), CreateInput{CompanyName: "Acme"}); !errors.Is(err, ErrIDGeneration) {
		t.Fatalf("expected ErrIDGeneration, got %v", err)
	}
}

func TestGetAndListSwallowBackendErrors(t *testing.T) {
	svc := newTestService(&failingRepo{MemoryRepo: NewMemoryRepo(), err: errors.New("down")})

	if _, ok := svc.Get(context.Background(), "COMP_X_AAAAAAAA"); ok {
		t.Fatalf("expected absent company")
	}
	if items := svc.List(context.Background()); items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", items)
	}
}

func TestUpdateKeepsIdentityFields(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	res, err := svc.Create(context.Background(), CreateInput{CompanyName: "Acme", ChatbotName: "Bot"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(context.Background(), res.Company.ID, UpdateInput{
		CompanyName: "Acme Renamed",
		ChatbotName: "Max",
		URL:         "https://acme.test",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != res.Company.ID || updated.FolderPath != res.Company.FolderPath {
		t.Fatalf("identity fields changed: %+v", updated)
	}
	if !strings.Contains(updated.ChatbotWelcomeMessage, "Max") {
		t.Fatalf("expected regenerated welcome message, got %q", updated.ChatbotWelcomeMessage)
	}

	got, ok := svc.Get(context.Background(), res.Company.ID)
	if !ok || got.CompanyName != "Acme Renamed" || got.URL != "https://acme.test" {
		t.Fatalf("update not persisted: %+v", got)
	}
}

func TestUpdateRejectsLongLanguage(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	res, err := svc.Create(context.Background(), CreateInput{CompanyName: "Acme", ChatbotName: "Bot"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Update(context.Background(), res.Company.ID, UpdateInput{
		CompanyName:     "Acme",
		ChatbotName:     "Bot",
		ChatbotLanguage: "fr-FR-x-longer",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "chatbotDefaultLanguage" {
		t.Fatalf("expected chatbotDefaultLanguage error, got %v", err)
	}
	if got, _ := svc.Get(context.Background(), res.Company.ID); got.ChatbotDefaultLanguage != DefaultLanguage {
		t.Fatalf("language changed to %q", got.ChatbotDefaultLanguage)
	}
}

func TestUpdateMissingCompany(t *testing.T) {
	svc := newTestService(NewMemoryRepo())
	if _, err := svc.Update(context.Background(), "COMP_NOPE_AAAAAAAA", UpdateInput{CompanyName: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteCascadesToDocuments(t *testing.T) {
	repo := NewMemoryRepo()
	docs := &fakeDocs{byCompany: map[string][]string{}}
	svc := &Service{Repo: repo, Docs: docs}

	res, err := svc.Create(context.Background(), CreateInput{CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	id := res.Company.ID
	docs.byCompany[id] = []string{"a.pdf", "b.txt"}

	if err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n := len(docs.byCompany[id]); n != 0 {
		t.Fatalf("expected zero documents, got %d", n)
	}
	if _, ok := svc.Get(context.Background(), id); ok {
		t.Fatalf("company still present")
	}
}

func TestDeleteAbortsWhenPurgeFails(t *testing.T) {
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Docs: &fakeDocs{err: errors.New("storage down")}}

	res, err := svc.Create(context.Background(), CreateInput{CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(context.Background(), res.Company.ID); err == nil {
		t.Fatalf("expected purge error")
	}
	if _, ok := svc.Get(context.Background(), res.Company.ID); !ok {
		t.Fatalf("company should survive a failed purge")
	}
}
