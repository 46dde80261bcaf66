package repository

import (
	"database/sql"

	"github.com/fiich/fiich-api/internal/models"
)

type DocumentRepository interface {
	UpsertDocument(doc models.Document) (models.Document, error)
	ListDocumentsByCompany(companyID string) ([]models.Document, error)
}

type documentRepository struct {
	db *sql.DB
}

func NewDocumentRepository(db *sql.DB) DocumentRepository {
	return &documentRepository{db: db}
}

// UpsertDocument replaces the reference held by the (company, type) slot.
// The three slots are independent; writing one never touches the other two.
func (r *documentRepository) UpsertDocument(doc models.Document) (models.Document, error) {
	const query = `
		INSERT INTO fiich.documents (company_id, type, name, url)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id, type)
		DO UPDATE SET name = EXCLUDED.name, url = EXCLUDED.url, updated_at = now()
		RETURNING id, company_id, type, name, url, created_at, updated_at;`

	err := r.db.QueryRow(query, doc.CompanyID, doc.Type, doc.Name, doc.URL).Scan(
		&doc.ID,
		&doc.CompanyID,
		&doc.Type,
		&doc.Name,
		&doc.URL,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return models.Document{}, err
	}
	return doc, nil
}

func (r *documentRepository) ListDocumentsByCompany(companyID string) ([]models.Document, error) {
	const query = `
		SELECT id, company_id, type, name, url, created_at, updated_at
		FROM fiich.documents
		WHERE company_id = $1
		ORDER BY type;`

	rows, err := r.db.Query(query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		if err := rows.Scan(
			&doc.ID,
			&doc.CompanyID,
			&doc.Type,
			&doc.Name,
			&doc.URL,
			&doc.CreatedAt,
			&doc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
