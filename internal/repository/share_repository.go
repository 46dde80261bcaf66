package repository

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/fiich/fiich-api/internal/models"
)

type ShareRepository interface {
	GetShareByID(id string) (models.Share, error)
	ListSharesByRecipient(userID string) ([]models.ShareSummary, error)
}

type shareRepository struct {
	db *sql.DB
}

func NewShareRepository(db *sql.DB) ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) GetShareByID(id string) (models.Share, error) {
	const query = `
		SELECT id, company_id, invite_id, recipient_user_id, accepted, shared_fields, created_at
		FROM fiich.shares
		WHERE id = $1;`

	var (
		share        models.Share
		sharedFields pq.StringArray
	)
	err := r.db.QueryRow(query, id).Scan(
		&share.ID,
		&share.CompanyID,
		&share.InviteID,
		&share.RecipientUserID,
		&share.Accepted,
		&sharedFields,
		&share.CreatedAt,
	)
	if err != nil {
		return models.Share{}, err
	}
	share.SharedFields = []string(sharedFields)
	return share, nil
}

func (r *shareRepository) ListSharesByRecipient(userID string) ([]models.ShareSummary, error) {
	const query = `
		SELECT s.id, s.company_id, c.name, c.siret, s.created_at
		FROM fiich.shares s
		JOIN fiich.companies c ON c.id = s.company_id
		WHERE s.recipient_user_id = $1 AND s.accepted
		ORDER BY s.created_at DESC;`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []models.ShareSummary
	for rows.Next() {
		var summary models.ShareSummary
		if err := rows.Scan(
			&summary.ID,
			&summary.CompanyID,
			&summary.CompanyName,
			&summary.Siret,
			&summary.CreatedAt,
		); err != nil {
			return nil, err
		}
		shares = append(shares, summary)
	}
	return shares, rows.Err()
}
