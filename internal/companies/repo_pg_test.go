package companies

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var companyCols = []string{
	"id", "company_name", "url", "folder_path", "description", "chatbot_name",
	"chatbot_default_language", "chatbot_welcome_message", "created_at", "updated_at",
}

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func sampleCompany() Company {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return Company{
		ID:                     "COMP_ACME_ABC12345",
		CompanyName:            "Acme",
		FolderPath:             "documents/acme",
		ChatbotName:            "Bot",
		ChatbotDefaultLanguage: "fr",
		ChatbotWelcomeMessage:  "Bonjour",
		CreatedAt:              now,
		UpdatedAt:              now,
	}
}

func TestPGRepoInsertReturnsStoredRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	c := sampleCompany()

	mock.ExpectQuery("INSERT INTO companies").
		WithArgs(
			c.ID,
			c.CompanyName,
			nil, // url
			c.FolderPath,
			nil, // description
			c.ChatbotName,
			c.ChatbotDefaultLanguage,
			c.ChatbotWelcomeMessage,
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows(companyCols).AddRow(
			c.ID, c.CompanyName, nil, c.FolderPath, nil, c.ChatbotName,
			c.ChatbotDefaultLanguage, c.ChatbotWelcomeMessage, c.CreatedAt, c.UpdatedAt,
		))

	stored, err := repo.Insert(context.Background(), c)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if stored == nil {
		t.Fatalf("expected stored row")
	}
	if stored.ID != c.ID || stored.URL != "" {
		t.Fatalf("unexpected row: %+v", stored)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoInsertWithoutReturnedRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO companies").WillReturnRows(sqlmock.NewRows(companyCols))

	stored, err := repo.Insert(context.Background(), sampleCompany())
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if stored != nil {
		t.Fatalf("expected nil row, got %+v", stored)
	}
}

func TestPGRepoFindByIDMapsNullColumns(t *testing.T) {
	repo, mock := newMockRepo(t)
	c := sampleCompany()

	mock.ExpectQuery("SELECT .* FROM companies WHERE id = \\$1").
		WithArgs(c.ID).
		WillReturnRows(sqlmock.NewRows(companyCols).AddRow(
			c.ID, c.CompanyName, "https://acme.test", c.FolderPath, nil, c.ChatbotName,
			c.ChatbotDefaultLanguage, c.ChatbotWelcomeMessage, c.CreatedAt, c.UpdatedAt,
		))

	got, err := repo.FindByID(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.URL != "https://acme.test" || got.Description != "" {
		t.Fatalf("unexpected nullable mapping: %+v", got)
	}
}

func TestPGRepoFindByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT .* FROM companies").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(companyCols))

	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoUpdateNoRowsIsNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	c := sampleCompany()
	c.URL = "https://acme.test"

	mock.ExpectExec("UPDATE companies").
		WithArgs(
			c.ID, c.CompanyName, c.URL, nil, c.ChatbotName,
			c.ChatbotDefaultLanguage, c.ChatbotWelcomeMessage, sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Update(context.Background(), c); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM companies WHERE id = \\$1").
		WithArgs("COMP_X_AAAAAAAA").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "COMP_X_AAAAAAAA"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListOrdersNewestFirst(t *testing.T) {
	repo, mock := newMockRepo(t)
	c := sampleCompany()

	mock.ExpectQuery("SELECT .* FROM companies ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows(companyCols).
			AddRow(c.ID, c.CompanyName, nil, c.FolderPath, nil, c.ChatbotName,
				c.ChatbotDefaultLanguage, c.ChatbotWelcomeMessage, c.CreatedAt, c.UpdatedAt).
			AddRow("COMP_B_BBBBBBBB", "B", nil, "documents/b", "desc", "B",
				"fr", "hi", c.CreatedAt, c.UpdatedAt))

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 || items[1].Description != "desc" {
		t.Fatalf("unexpected items: %+v", items)
	}
}
