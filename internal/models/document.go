package models

import "time"

type DocumentType string

const (
	DocumentTypeKbis DocumentType = "kbis"
	DocumentTypeRib  DocumentType = "rib"
	DocumentTypeCgv  DocumentType = "cgv"
)

// Document references a supporting file attached to a company record. At most
// one document exists per (company, type); re-uploading a slot replaces the
// prior reference.
type Document struct {
	ID        string       `json:"id"`
	CompanyID string       `json:"company_id"`
	Type      DocumentType `json:"type"`
	Name      string       `json:"name"`
	URL       string       `json:"url"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// IsValidDocumentType reports whether t names one of the three document slots.
func IsValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentTypeKbis, DocumentTypeRib, DocumentTypeCgv:
		return true
	}
	return false
}

// URLField returns the company attribute key holding this document type's
// public URL.
func (t DocumentType) URLField() string {
	return string(t) + "_url"
}
