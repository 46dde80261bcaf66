package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/fiich/fiich-api/internal/apperr"
	"github.com/fiich/fiich-api/internal/authz"
	"github.com/fiich/fiich-api/internal/models"
	"github.com/fiich/fiich-api/internal/repository"
	"github.com/fiich/fiich-api/internal/storage"
)

// Uploads are bounded; the KBIS/RIB/CGV slots hold small PDF or image files.
const maxDocumentSize = 20 << 20

type DocumentHandler struct {
	companyRepo  repository.CompanyRepository
	documentRepo repository.DocumentRepository
	blobStore    storage.BlobStore
	logger       zerolog.Logger
}

func NewDocumentHandler(
	companyRepo repository.CompanyRepository,
	documentRepo repository.DocumentRepository,
	blobStore storage.BlobStore,
	logger zerolog.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		companyRepo:  companyRepo,
		documentRepo: documentRepo,
		blobStore:    blobStore,
		logger:       logger,
	}
}

// UploadDocument stores the file for one of the three document slots and
// upserts its reference. The object path is stable per (type, owner,
// filename), so re-uploading the same file replaces the prior content.
// A blob left behind by a later failure is accepted as orphaned storage.
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	identity, ok := authz.IdentityFromRequest(r)
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	companyID := vars["companyID"]
	docType := models.DocumentType(vars["type"])
	if !models.IsValidDocumentType(docType) {
		http.Error(w, "document type must be one of kbis, rib, cgv", http.StatusBadRequest)
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

	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		http.Error(w, "invalid multipart payload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if filename == "" || filename == "." || filename == "/" {
		http.Error(w, "file name is required", http.StatusBadRequest)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	path := fmt.Sprintf("%s/%s/%s", docType, identity.UserID, filename)
	url, err := h.blobStore.Upload(r.Context(), path, file, header.Size, contentType)
	if err != nil {
		http.Error(w, "failed to store document: "+err.Error(), http.StatusInternalServerError)
		return
	}

	doc, err := h.documentRepo.UpsertDocument(models.Document{
		CompanyID: companyID,
		Type:      docType,
		Name:      filename,
		URL:       url,
	})
	if err != nil {
		http.Error(w, "failed to save document reference: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if err := h.companyRepo.SetDocumentURL(companyID, docType, url); err != nil {
		h.logger.Warn().Err(err).
			Str("company_id", companyID).
			Str("type", string(docType)).
			Msg("failed to update company document url")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}

// ListDocuments returns the document references attached to an owned company.
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
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
	if company.UserID != identity.UserID {
		httpError(w, apperr.ErrUnauthorized)
		return
	}

	docs, err := h.documentRepo.ListDocumentsByCompany(companyID)
	if err != nil {
		http.Error(w, "failed to list documents: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(docs)
}
