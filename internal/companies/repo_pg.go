package companies

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const companyColumns = `id, company_name, url, folder_path, description, chatbot_name, chatbot_default_language, chatbot_welcome_message, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// Insert writes the company and returns the row as stored.
func (r *PGRepo) Insert(ctx context.Context, c Company) (*Company, error) {
	const query = `
INSERT INTO companies (` + companyColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + companyColumns

	row := r.DB.QueryRowContext(
		ctx,
		query,
		c.ID,
		c.CompanyName,
		nullString(c.URL),
		c.FolderPath,
		nullString(c.Description),
		c.ChatbotName,
		c.ChatbotDefaultLanguage,
		c.ChatbotWelcomeMessage,
		c.CreatedAt,
		c.UpdatedAt,
	)
	stored, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &stored, nil
}

// FindByID returns a company by ID.
func (r *PGRepo) FindByID(ctx context.Context, id string) (Company, error) {
	const query = `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Company{}, ErrNotFound
		}
		return Company{}, err
	}
	return c, nil
}

// List returns all companies, newest first.
func (r *PGRepo) List(ctx context.Context) ([]Company, error) {
	const query = `SELECT ` + companyColumns + ` FROM companies ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update rewrites the mutable fields of a company.
func (r *PGRepo) Update(ctx context.Context, c Company) error {
	const query = `
UPDATE companies
SET company_name = $2,
    url = $3,
    description = $4,
    chatbot_name = $5,
    chatbot_default_language = $6,
    chatbot_welcome_message = $7,
    updated_at = $8
WHERE id = $1`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		c.ID,
		c.CompanyName,
		nullString(c.URL),
		nullString(c.Description),
		c.ChatbotName,
		c.ChatbotDefaultLanguage,
		c.ChatbotWelcomeMessage,
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// Delete removes a company; document_metadata rows go with it via ON DELETE CASCADE.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

func scanCompany(row rowScanner) (Company, error) {
	var c Company
	var url sql.NullString
	var description sql.NullString
	err := row.Scan(
		&c.ID,
		&c.CompanyName,
		&url,
		&c.FolderPath,
		&description,
		&c.ChatbotName,
		&c.ChatbotDefaultLanguage,
		&c.ChatbotWelcomeMessage,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return Company{}, err
	}
	if url.Valid {
		c.URL = url.String
	}
	if description.Valid {
		c.Description = description.String
	}
	return c, nil
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
