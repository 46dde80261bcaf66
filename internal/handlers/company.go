package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/fiich/fiich-api/internal/apperr"
	"github.com/fiich/fiich-api/internal/authz"
	"github.com/fiich/fiich-api/internal/models"
	"github.com/fiich/fiich-api/internal/repository"
)

type CompanyHandler struct {
	companyRepo  repository.CompanyRepository
	documentRepo repository.DocumentRepository
	logger       zerolog.Logger
}

type companyRequest struct {
	Name              string `json:"name"`
	Siren             string `json:"siren"`
	Siret             string `json:"siret"`
	TVANumber         string `json:"tva_number"`
	AddressNumber     string `json:"address_number"`
	AddressStreet     string `json:"address_street"`
	AddressPostalCode string `json:"address_postal_code"`
	AddressCity       string `json:"address_city"`
	AddressCountry    string `json:"address_country"`
	AdminEmail        string `json:"admin_email"`
	Phone             string `json:"phone"`
	PaymentTerms      string `json:"payment_terms"`
	KbisURL           string `json:"kbis_url"`
	RibURL            string `json:"rib_url"`
	CgvURL            string `json:"cgv_url"`
	// IncludeDocuments controls whether staged document URLs are persisted
	// with the record. When false the three URL slots are cleared rather
	// than left stale. Defaults to true.
	IncludeDocuments *bool `json:"include_documents"`
}

func NewCompanyHandler(companyRepo repository.CompanyRepository, documentRepo repository.DocumentRepository, logger zerolog.Logger) *CompanyHandler {
	return &CompanyHandler{
		companyRepo:  companyRepo,
		documentRepo: documentRepo,
		logger:       logger,
	}
}

func (req companyRequest) toCompany() models.Company {
	company := models.Company{
		Name:              strings.TrimSpace(req.Name),
		Siren:             strings.TrimSpace(req.Siren),
		Siret:             strings.TrimSpace(req.Siret),
		TVANumber:         strings.TrimSpace(req.TVANumber),
		AddressNumber:     req.AddressNumber,
		AddressStreet:     req.AddressStreet,
		AddressPostalCode: req.AddressPostalCode,
		AddressCity:       req.AddressCity,
		AddressCountry:    req.AddressCountry,
		AdminEmail:        req.AdminEmail,
		Phone:             req.Phone,
		PaymentTerms:      req.PaymentTerms,
		KbisURL:           req.KbisURL,
		RibURL:            req.RibURL,
		CgvURL:            req.CgvURL,
	}
	if req.IncludeDocuments != nil && !*req.IncludeDocuments {
		company.KbisURL = ""
		company.RibURL = ""
		company.CgvURL = ""
	}
	return company
}

func (req companyRequest) documentsIncluded() bool {
	return req.IncludeDocuments == nil || *req.IncludeDocuments
}

func (h *CompanyHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	identity, ok := authz.IdentityFromRequest(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	company := req.toCompany()
	company.UserID = identity.UserID
	if err := company.Validate(); err != nil {
		httpError(w, err)
		return
	}

	created, err := h.companyRepo.CreateCompany(company)
	if err != nil {
		http.Error(w, "failed to create company: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if req.documentsIncluded() {
		h.saveDocumentReferences(created)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

func (h *CompanyHandler) UpdateCompany(w http.ResponseWriter, r *http.Request) {
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

	var req companyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request payload", http.StatusBadRequest)
		return
	}

	company := req.toCompany()
	company.ID = companyID
	company.UserID = identity.UserID
	if err := company.Validate(); err != nil {
		httpError(w, err)
		return
	}

	updated, err := h.companyRepo.UpdateCompany(company)
	if err != nil {
		httpError(w, err)
		return
	}

	if req.documentsIncluded() {
		h.saveDocumentReferences(updated)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (h *CompanyHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	identity, ok := authz.IdentityFromRequest(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	companyID := mux.Vars(r)["companyID"]
	company, err := h.companyRepo.GetCompanyByID(companyID)
	if err != nil {
		httpError(w, err)
		return
	}

	// Direct reads are owner-only; non-owners go through a share grant.
	if company.UserID != identity.UserID {
		httpError(w, apperr.ErrUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(company)
}

func (h *CompanyHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	identity, ok := authz.IdentityFromRequest(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	companies, err := h.companyRepo.ListCompaniesByOwner(identity.UserID)
	if err != nil {
		http.Error(w, "failed to list companies: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if companies == nil {
		companies = []models.Company{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(companies)
}

// saveDocumentReferences mirrors the record's staged URL slots into the
// documents table. Save failures here do not fail the record mutation; the
// record is already persisted and the slots can be re-synced on next save.
func (h *CompanyHandler) saveDocumentReferences(company models.Company) {
	refs := []struct {
		url     string
		docType models.DocumentType
		name    string
	}{
		{company.KbisURL, models.DocumentTypeKbis, "KBIS"},
		{company.RibURL, models.DocumentTypeRib, "RIB"},
		{company.CgvURL, models.DocumentTypeCgv, "CGV"},
	}
	for _, ref := range refs {
		if ref.url == "" {
			continue
		}
		_, err := h.documentRepo.UpsertDocument(models.Document{
			CompanyID: company.ID,
			Type:      ref.docType,
			Name:      ref.name,
			URL:       ref.url,
		})
		if err != nil {
			h.logger.Warn().Err(err).
				Str("company_id", company.ID).
				Str("type", string(ref.docType)).
				Msg("failed to save document reference")
		}
	}
}
