package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/fiich/fiich-api/internal/apperr"
	"github.com/fiich/fiich-api/internal/authz"
	"github.com/fiich/fiich-api/internal/models"
	"github.com/fiich/fiich-api/internal/repository"
	"github.com/fiich/fiich-api/internal/visibility"
)

type ShareHandler struct {
	shareRepo   repository.ShareRepository
	companyRepo repository.CompanyRepository
	logger      zerolog.Logger
}

// sharedCompanyResponse is what a recipient sees through a grant: the company
// record projected down to the frozen field set, plus the set itself so
// clients can distinguish "hidden" from "empty".
type sharedCompanyResponse struct {
	Share   models.Share   `json:"share"`
	Company models.Company `json:"company"`
}

func NewShareHandler(shareRepo repository.ShareRepository, companyRepo repository.CompanyRepository, logger zerolog.Logger) *ShareHandler {
	return &ShareHandler{
		shareRepo:   shareRepo,
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// ListShares returns the accepted shares received by the caller, with the
// identifying attributes of each shared company.
func (h *ShareHandler) ListShares(w http.ResponseWriter, r *http.Request) {
	identity, ok := authz.IdentityFromRequest(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	shares, err := h.shareRepo.ListSharesByRecipient(identity.UserID)
	if err != nil {
		http.Error(w, "failed to list shares: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if shares == nil {
		shares = []models.ShareSummary{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(shares)
}

// GetSharedCompany returns the company record a share grant discloses,
// restricted to the grant's frozen field set.
func (h *ShareHandler) GetSharedCompany(w http.ResponseWriter, r *http.Request) {
	identity, ok := authz.IdentityFromRequest(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	shareID := mux.Vars(r)["shareID"]
	share, err := h.shareRepo.GetShareByID(shareID)
	if err != nil {
		httpError(w, err)
		return
	}

	if share.RecipientUserID != identity.UserID || !share.Accepted {
		httpError(w, apperr.ErrUnauthorized)
		return
	}

	company, err := h.companyRepo.GetCompanyByID(share.CompanyID)
	if err != nil {
		httpError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sharedCompanyResponse{
		Share:   share,
		Company: visibility.Project(company, share.SharedFields),
	})
}
