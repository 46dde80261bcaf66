package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	pkgerrors "github.com/pkg/errors"

	"github.com/fiich/fiich-api/internal/apperr"
	"github.com/fiich/fiich-api/internal/models"
)

type InviteRepository interface {
	CreateInvite(invite models.Invite) (models.Invite, error)
	GetInviteByID(id string) (models.Invite, error)
	ListInvitesForRecipient(userID, email string) ([]models.Invite, error)
	AcceptInvite(inviteID, userID string) (models.Share, error)
	DeclineInvite(inviteID string) error
}

type inviteRepository struct {
	db *sql.DB
}

func NewInviteRepository(db *sql.DB) InviteRepository {
	return &inviteRepository{db: db}
}

const inviteColumns = `id, inviter_company_id, inviter_user_id, invitee_email, invitee_user_id, status, fields, created_at, updated_at`

func scanInvite(row interface{ Scan(...interface{}) error }) (models.Invite, error) {
	var (
		invite        models.Invite
		fields        pq.StringArray
		inviteeUserID sql.NullString
	)
	err := row.Scan(
		&invite.ID,
		&invite.InviterCompanyID,
		&invite.InviterUserID,
		&invite.InviteeEmail,
		&inviteeUserID,
		&invite.Status,
		&fields,
		&invite.CreatedAt,
		&invite.UpdatedAt,
	)
	if err != nil {
		return models.Invite{}, err
	}
	invite.Fields = []string(fields)
	if inviteeUserID.Valid {
		invite.InviteeUserID = &inviteeUserID.String
	}
	return invite, nil
}

func (r *inviteRepository) CreateInvite(invite models.Invite) (models.Invite, error) {
	const query = `
		INSERT INTO fiich.invites (inviter_company_id, inviter_user_id, invitee_email, status, fields)
		VALUES ($1, $2, $3, 'pending', $4)
		RETURNING ` + inviteColumns + `;`

	row := r.db.QueryRow(query,
		invite.InviterCompanyID,
		invite.InviterUserID,
		invite.InviteeEmail,
		pq.Array(invite.Fields),
	)
	return scanInvite(row)
}

func (r *inviteRepository) GetInviteByID(id string) (models.Invite, error) {
	const query = `
		SELECT ` + inviteColumns + `
		FROM fiich.invites
		WHERE id = $1;`
	return scanInvite(r.db.QueryRow(query, id))
}

// ListInvitesForRecipient returns invites addressed to the viewer, matched by
// bound invitee identity or by a still-unbound invitee email equal to the
// viewer's verified email. Email comparison is literal, matching how the
// addresses are normalized when the invite is created.
func (r *inviteRepository) ListInvitesForRecipient(userID, email string) ([]models.Invite, error) {
	const query = `
		SELECT ` + inviteColumns + `
		FROM fiich.invites
		WHERE invitee_user_id = $1 OR (invitee_user_id IS NULL AND invitee_email = $2)
		ORDER BY created_at DESC;`

	rows, err := r.db.Query(query, userID, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []models.Invite
	for rows.Next() {
		invite, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		invites = append(invites, invite)
	}
	return invites, rows.Err()
}

// AcceptInvite transitions a pending invite to accepted and creates its share
// grant in a single transaction. The status update is conditioned on the
// invite still being pending, so concurrent double-invocation leaves exactly
// one grant: the loser observes apperr.ErrInvalidState.
func (r *inviteRepository) AcceptInvite(inviteID, userID string) (models.Share, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return models.Share{}, pkgerrors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	const acceptQuery = `
		UPDATE fiich.invites
		SET status = 'accepted', invitee_user_id = $2, updated_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING inviter_company_id, fields;`

	var (
		companyID string
		fields    pq.StringArray
	)
	err = tx.QueryRow(acceptQuery, inviteID, userID).Scan(&companyID, &fields)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Share{}, r.answerConflict(inviteID)
	}
	if err != nil {
		return models.Share{}, err
	}

	// shared_fields is copied by value from the invite row; the grant never
	// references the invite's live field set.
	const shareQuery = `
		INSERT INTO fiich.shares (company_id, invite_id, recipient_user_id, accepted, shared_fields)
		VALUES ($1, $2, $3, TRUE, $4)
		RETURNING id, company_id, invite_id, recipient_user_id, accepted, shared_fields, created_at;`

	var (
		share        models.Share
		sharedFields pq.StringArray
	)
	err = tx.QueryRow(shareQuery, companyID, inviteID, userID, fields).Scan(
		&share.ID,
		&share.CompanyID,
		&share.InviteID,
		&share.RecipientUserID,
		&share.Accepted,
		&sharedFields,
		&share.CreatedAt,
	)
	if err != nil {
		return models.Share{}, pkgerrors.Wrap(err, "failed to create share grant")
	}
	share.SharedFields = []string(sharedFields)

	if err := tx.Commit(); err != nil {
		return models.Share{}, pkgerrors.Wrap(err, "failed to commit accept transaction")
	}
	return share, nil
}

// DeclineInvite transitions a pending invite to declined. No share grant is
// created.
func (r *inviteRepository) DeclineInvite(inviteID string) error {
	const query = `
		UPDATE fiich.invites
		SET status = 'declined', updated_at = now()
		WHERE id = $1 AND status = 'pending';`

	result, err := r.db.Exec(query, inviteID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.answerConflict(inviteID)
	}
	return nil
}

// answerConflict distinguishes a missing invite from one that already reached
// a terminal state.
func (r *inviteRepository) answerConflict(inviteID string) error {
	var status models.InviteStatus
	err := r.db.QueryRow(`SELECT status FROM fiich.invites WHERE id = $1;`, inviteID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.ErrNotFound
	}
	if err != nil {
		return err
	}
	return apperr.ErrInvalidState
}
