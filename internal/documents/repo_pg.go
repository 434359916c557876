package documents

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements DocumentsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, user_id, company_id, file_path, file_name, content_type, size_bytes, status, uploaded_at`

// Insert writes a document_metadata row.
func (r *PGRepo) Insert(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO document_metadata (` + documentColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	status := doc.Status
	if status == "" {
		status = StatusUploaded
	}

	var userID sql.NullString
	if doc.UserID != "" {
		userID = sql.NullString{String: doc.UserID, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		userID,
		doc.CompanyID,
		doc.FilePath,
		doc.FileName,
		doc.ContentType,
		doc.SizeBytes,
		status,
		doc.UploadedAt,
	)
	return err
}

// FindByID fetches a document by ID.
func (r *PGRepo) FindByID(ctx context.Context, id string) (Document, error) {
	const query = `SELECT ` + documentColumns + ` FROM document_metadata WHERE id = $1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListByCompany lists a company's documents ordered newest-first.
func (r *PGRepo) ListByCompany(ctx context.Context, companyID string) ([]Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM document_metadata
WHERE company_id = $1
ORDER BY uploaded_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// UpdateStatus sets the lifecycle status of a document.
func (r *PGRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE document_metadata SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// Delete removes a document row.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM document_metadata WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var userID sql.NullString
	var fileName sql.NullString
	var contentType sql.NullString
	err := row.Scan(
		&doc.ID,
		&userID,
		&doc.CompanyID,
		&doc.FilePath,
		&fileName,
		&contentType,
		&doc.SizeBytes,
		&doc.Status,
		&doc.UploadedAt,
	)
	if err != nil {
		return Document{}, err
	}
	if userID.Valid {
		doc.UserID = userID.String
	}
	if fileName.Valid {
		doc.FileName = fileName.String
	}
	if contentType.Valid {
		doc.ContentType = contentType.String
	}
	return doc, nil
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

var _ DocumentsRepo = (*PGRepo)(nil)
