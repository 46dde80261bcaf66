package handlers

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/fiich/fiich-api/internal/apperr"
	"github.com/fiich/fiich-api/internal/authz"
	"github.com/fiich/fiich-api/internal/models"
	"github.com/fiich/fiich-api/internal/notification"
	"github.com/fiich/fiich-api/internal/repository"
)

type InviteHandler struct {
	inviteRepo  repository.InviteRepository
	companyRepo repository.CompanyRepository
	mailer      notification.InviteMailer
	logger      zerolog.Logger
}

type inviteRequest struct {
	Email  string   `json:"email"`
	Fields []string `json:"fields"`
}

func NewInviteHandler(
	inviteRepo repository.InviteRepository,
	companyRepo repository.CompanyRepository,
	mailer notification.InviteMailer,
	logger zerolog.Logger,
) *InviteHandler {
	return &InviteHandler{
		inviteRepo:  inviteRepo,
		companyRepo: companyRepo,
		mailer:      mailer,
		logger:      logger,
	}
}

// CreateInvite records a pending invitation carrying the requested
// optional-field set and dispatches the invitation email. Mail delivery is
// fire and forget: the invitation stands whether or not the email goes out.
func (h *InviteHandler) CreateInvite(w http.ResponseWriter, r *http.Request) {
	identity, ok := authz.IdentityFromRequest(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	companyID := mux.Vars(r)["companyID"]
	if companyID == "" {
		http.Error(w, "company id is required", http.StatusBadRequest)
		return
	}

	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		http.Error(w, "a valid email address is required", http.StatusBadRequest)
		return
	}

	fields, err := normalizeFieldSelection(req.Fields)
	if err != nil {
		httpError(w, err)
		return
	}

	company, err := h.companyRepo.GetCompanyByID(companyID)
	if err != nil {
		httpError(w, err)
		return
	}
	if company.UserID != identity.UserID {
		httpError(w, apperr.ErrUnauthorized)
		return
	}

	invite, err := h.inviteRepo.CreateInvite(models.Invite{
		InviterCompanyID: companyID,
		InviterUserID:    identity.UserID,
		InviteeEmail:     email,
		Fields:           fields,
	})
	if err != nil {
		http.Error(w, "failed to create invitation: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Detached dispatch: the invitation is already durable and must not be
	// rolled back on mail failure.
	go h.sendInviteMail(invite, company.Name, identity.Email)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(invite)
}

// ListInvites returns invitations addressed to the caller, matched by bound
// identity or by the caller's verified email for invites not yet claimed.
func (h *InviteHandler) ListInvites(w http.ResponseWriter, r *http.Request) {
	identity, ok := authz.IdentityFromRequest(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	invites, err := h.inviteRepo.ListInvitesForRecipient(identity.UserID, identity.Email)
	if err != nil {
		http.Error(w, "failed to list invitations: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if invites == nil {
		invites = []models.Invite{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(invites)
}

// AcceptInvite transitions a pending invitation to accepted and returns the
// share grant created from its field set.
func (h *InviteHandler) AcceptInvite(w http.ResponseWriter, r *http.Request) {
	identity, ok := authz.IdentityFromRequest(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	inviteID := mux.Vars(r)["inviteID"]
	share, err := h.inviteRepo.AcceptInvite(inviteID, identity.UserID)
	if err != nil {
		httpError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(share)
}

// DeclineInvite transitions a pending invitation to declined.
func (h *InviteHandler) DeclineInvite(w http.ResponseWriter, r *http.Request) {
	if _, ok := authz.IdentityFromRequest(r); !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	inviteID := mux.Vars(r)["inviteID"]
	if err := h.inviteRepo.DeclineInvite(inviteID); err != nil {
		httpError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *InviteHandler) sendInviteMail(invite models.Invite, companyName, inviterEmail string) {
	if h.mailer == nil {
		return
	}
	if err := h.mailer.SendInvite(invite.InviteeEmail, companyName, inviterEmail, invite.Fields); err != nil {
		h.logger.Warn().Err(err).
			Str("invite_id", invite.ID).
			Str("invitee_email", invite.InviteeEmail).
			Msg("failed to send invitation email")
	}
}

// normalizeFieldSelection validates the requested keys against the optional
// catalog and de-duplicates them, preserving order. Required fields are never
// part of the stored set.
func normalizeFieldSelection(requested []string) ([]string, error) {
	fields := make([]string, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for _, key := range requested {
		key = strings.TrimSpace(key)
		if !models.IsOptionalField(key) {
			return nil, apperr.Validation("fields", "contains unknown field "+key)
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		fields = append(fields, key)
	}
	return fields, nil
}
