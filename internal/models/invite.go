package models

import "time"

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
)

// Invite represents a proposal, sent by a record owner, to disclose a chosen
// subset of optional fields to an invitee. Fields holds the requested
// optional-field keys; required fields are implicit and never stored here.
type Invite struct {
	ID               string       `json:"id"`
	InviterCompanyID string       `json:"inviter_company_id"`
	InviterUserID    string       `json:"inviter_user_id"`
	InviteeEmail     string       `json:"invitee_email"`
	InviteeUserID    *string      `json:"invitee_user_id,omitempty"`
	Status           InviteStatus `json:"status"`
	Fields           []string     `json:"fields"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// IsPending indicates whether the invite still awaits an answer.
func (i Invite) IsPending() bool {
	return i.Status == InviteStatusPending
}

// IsTerminal indicates whether the invite has reached a final state.
// Accepted and declined invites admit no further transitions.
func (i Invite) IsTerminal() bool {
	return i.Status == InviteStatusAccepted || i.Status == InviteStatusDeclined
}
