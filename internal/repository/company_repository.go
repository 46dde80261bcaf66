package repository

import (
	"database/sql"
	"fmt"

	"github.com/fiich/fiich-api/internal/models"
)

type CompanyRepository interface {
	CreateCompany(company models.Company) (models.Company, error)
	UpdateCompany(company models.Company) (models.Company, error)
	GetCompanyByID(id string) (models.Company, error)
	ListCompaniesByOwner(userID string) ([]models.Company, error)
	SetDocumentURL(companyID string, docType models.DocumentType, url string) error
}

type companyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) CompanyRepository {
	return &companyRepository{db: db}
}

const companyColumns = `id, user_id, name, siren, siret, tva_number,
		address_number, address_street, address_postal_code, address_city, address_country,
		admin_email, phone, payment_terms,
		COALESCE(kbis_url, ''), COALESCE(rib_url, ''), COALESCE(cgv_url, ''),
		created_at, updated_at`

func scanCompany(row interface{ Scan(...interface{}) error }) (models.Company, error) {
	var c models.Company
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Siren,
		&c.Siret,
		&c.TVANumber,
		&c.AddressNumber,
		&c.AddressStreet,
		&c.AddressPostalCode,
		&c.AddressCity,
		&c.AddressCountry,
		&c.AdminEmail,
		&c.Phone,
		&c.PaymentTerms,
		&c.KbisURL,
		&c.RibURL,
		&c.CgvURL,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (r *companyRepository) CreateCompany(company models.Company) (models.Company, error) {
	query := `
		INSERT INTO fiich.companies (
			user_id, name, siren, siret, tva_number,
			address_number, address_street, address_postal_code, address_city, address_country,
			admin_email, phone, payment_terms, kbis_url, rib_url, cgv_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NULLIF($14, ''), NULLIF($15, ''), NULLIF($16, ''))
		RETURNING ` + companyColumns + `;`

	row := r.db.QueryRow(query,
		company.UserID,
		company.Name,
		company.Siren,
		company.Siret,
		company.TVANumber,
		company.AddressNumber,
		company.AddressStreet,
		company.AddressPostalCode,
		company.AddressCity,
		company.AddressCountry,
		company.AdminEmail,
		company.Phone,
		company.PaymentTerms,
		company.KbisURL,
		company.RibURL,
		company.CgvURL,
	)
	return scanCompany(row)
}

// UpdateCompany rewrites every mutable attribute of the record. The WHERE
// clause is scoped to the owner; updating someone else's record reports
// sql.ErrNoRows.
func (r *companyRepository) UpdateCompany(company models.Company) (models.Company, error) {
	query := `
		UPDATE fiich.companies
		SET name = $3, siren = $4, siret = $5, tva_number = $6,
			address_number = $7, address_street = $8, address_postal_code = $9,
			address_city = $10, address_country = $11,
			admin_email = $12, phone = $13, payment_terms = $14,
			kbis_url = NULLIF($15, ''), rib_url = NULLIF($16, ''), cgv_url = NULLIF($17, ''),
			updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + companyColumns + `;`

	row := r.db.QueryRow(query,
		company.ID,
		company.UserID,
		company.Name,
		company.Siren,
		company.Siret,
		company.TVANumber,
		company.AddressNumber,
		company.AddressStreet,
		company.AddressPostalCode,
		company.AddressCity,
		company.AddressCountry,
		company.AdminEmail,
		company.Phone,
		company.PaymentTerms,
		company.KbisURL,
		company.RibURL,
		company.CgvURL,
	)
	return scanCompany(row)
}

func (r *companyRepository) GetCompanyByID(id string) (models.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM fiich.companies
		WHERE id = $1;`
	return scanCompany(r.db.QueryRow(query, id))
}

func (r *companyRepository) ListCompaniesByOwner(userID string) ([]models.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		FROM fiich.companies
		WHERE user_id = $1
		ORDER BY created_at DESC;`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

// SetDocumentURL points one of the three document URL columns at a freshly
// uploaded blob. The column is derived from the document type, never from
// caller input.
func (r *companyRepository) SetDocumentURL(companyID string, docType models.DocumentType, url string) error {
	if !models.IsValidDocumentType(docType) {
		return fmt.Errorf("unknown document type %q", docType)
	}
	query := fmt.Sprintf(`
		UPDATE fiich.companies
		SET %s = $2, updated_at = now()
		WHERE id = $1;`, docType.URLField())

	result, err := r.db.Exec(query, companyID, url)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
