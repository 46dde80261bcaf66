package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiich/fiich-api/internal/models"
)

func TestCreateCompanyValidatesBeforePersisting(t *testing.T) {
	env := newTestEnv()

	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"bad siren", map[string]interface{}{"name": "Acme", "siren": "123", "siret": "12345678901234", "tva_number": "FR1234567AB89"}},
		{"bad siret", map[string]interface{}{"name": "Acme", "siren": "123456789", "siret": "123", "tva_number": "FR1234567AB89"}},
		{"bad tva", map[string]interface{}{"name": "Acme", "siren": "123456789", "siret": "12345678901234", "tva_number": "FR"}},
		{"missing name", map[string]interface{}{"siren": "123456789", "siret": "12345678901234", "tva_number": "FR1234567AB89"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, owner, http.MethodPost, "/api/companies", tt.payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, env.store.companies)
		})
	}
}

func TestCreateCompanyBindsOwner(t *testing.T) {
	env := newTestEnv()

	rec := env.do(t, owner, http.MethodPost, "/api/companies", map[string]interface{}{
		"name":       "Acme",
		"siren":      "123456789",
		"siret":      "12345678901234",
		"tva_number": "FR1234567AB89",
		"phone":      "+33102030405",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var company models.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &company))
	assert.Equal(t, owner.UserID, company.UserID)
	assert.NotEmpty(t, company.ID)
}

func TestGetCompanyIsOwnerOnly(t *testing.T) {
	env := newTestEnv()
	company := env.addCompany(owner, "Acme")

	rec := env.do(t, owner, http.MethodGet, "/api/companies/"+company.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Non-owners reach a record only through an accepted share grant.
	rec = env.do(t, recipient, http.MethodGet, "/api/companies/"+company.ID, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateCompanyRejectsNonOwner(t *testing.T) {
	env := newTestEnv()
	company := env.addCompany(owner, "Acme")

	rec := env.do(t, recipient, http.MethodPut, "/api/companies/"+company.ID, map[string]interface{}{
		"name":       "Hijacked",
		"siren":      "123456789",
		"siret":      "12345678901234",
		"tva_number": "FR1234567AB89",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	stored, _ := env.store.GetCompanyByID(company.ID)
	assert.Equal(t, "Acme", stored.Name)
}

func TestUpdateCompanyWithoutDocumentsClearsSlots(t *testing.T) {
	env := newTestEnv()
	company := env.addCompany(owner, "Acme")
	require.NoError(t, env.store.SetDocumentURL(company.ID, models.DocumentTypeKbis, "https://blob.test/kbis.pdf"))

	rec := env.do(t, owner, http.MethodPut, "/api/companies/"+company.ID, map[string]interface{}{
		"name":              "Acme",
		"siren":             "123456789",
		"siret":             "12345678901234",
		"tva_number":        "FR1234567AB89",
		"kbis_url":          "https://blob.test/kbis.pdf",
		"include_documents": false,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.Company
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Empty(t, updated.KbisURL)
	assert.Empty(t, updated.RibURL)
	assert.Empty(t, updated.CgvURL)
	assert.Empty(t, env.store.documents)
}

func TestUpdateCompanyWithDocumentsSavesReferences(t *testing.T) {
	env := newTestEnv()
	company := env.addCompany(owner, "Acme")

	rec := env.do(t, owner, http.MethodPut, "/api/companies/"+company.ID, map[string]interface{}{
		"name":       "Acme",
		"siren":      "123456789",
		"siret":      "12345678901234",
		"tva_number": "FR1234567AB89",
		"kbis_url":   "https://blob.test/kbis.pdf",
		"rib_url":    "https://blob.test/rib.pdf",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	docs, err := env.store.ListDocumentsByCompany(company.ID)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}
