package models

import "time"

// Share is the durable, accepted outcome of an invitation. SharedFields is a
// value copy of the invite's requested field set taken at acceptance time and
// never mutated afterwards; later state of the invite has no effect on it.
type Share struct {
	ID              string    `json:"id"`
	CompanyID       string    `json:"company_id"`
	InviteID        string    `json:"invite_id"`
	RecipientUserID string    `json:"recipient_user_id"`
	Accepted        bool      `json:"accepted"`
	SharedFields    []string  `json:"shared_fields"`
	CreatedAt       time.Time `json:"created_at"`
}

// ShareSummary is the listing view of a received share, joined with the
// identifying attributes of the shared company.
type ShareSummary struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	CompanyName string    `json:"company_name"`
	Siret       string    `json:"siret"`
	CreatedAt   time.Time `json:"created_at"`
}
