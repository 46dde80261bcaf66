package visibility

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fiich/fiich-api/internal/models"
)

func TestVisibleRequiredFieldsAlwaysVisible(t *testing.T) {
	sets := [][]string{
		nil,
		{},
		{"phone"},
		models.OptionalFields,
	}
	for _, set := range sets {
		for _, key := range models.RequiredFields {
			assert.True(t, Visible(key, set), "required field %s with set %v", key, set)
		}
	}
}

func TestVisiblePermissiveDefault(t *testing.T) {
	for _, key := range models.OptionalFields {
		assert.True(t, Visible(key, nil), "nil set should reveal %s", key)
		assert.True(t, Visible(key, []string{}), "empty set should reveal %s", key)
	}
}

func TestVisibleMembership(t *testing.T) {
	set := []string{"phone", "admin_email"}
	for _, key := range models.OptionalFields {
		want := key == "phone" || key == "admin_email"
		assert.Equal(t, want, Visible(key, set), "field %s", key)
	}
}

func TestVisibleFullCatalog(t *testing.T) {
	for _, key := range models.OptionalFields {
		assert.True(t, Visible(key, models.OptionalFields), "field %s", key)
	}
}

func TestProjectZeroesHiddenFields(t *testing.T) {
	company := models.Company{
		ID:                "c1",
		Name:              "Acme",
		Siren:             "123456789",
		Siret:             "12345678901234",
		TVANumber:         "FR1234567AB89",
		AddressNumber:     "12",
		AddressStreet:     "rue de la Paix",
		AddressPostalCode: "75002",
		AddressCity:       "Paris",
		AddressCountry:    "France",
		AdminEmail:        "admin@acme.fr",
		Phone:             "+33102030405",
		PaymentTerms:      "30 jours fin de mois",
		KbisURL:           "https://files.example/kbis.pdf",
		RibURL:            "https://files.example/rib.pdf",
		CgvURL:            "https://files.example/cgv.pdf",
	}

	projected := Project(company, []string{"phone"})

	assert.Equal(t, "Acme", projected.Name)
	assert.Equal(t, "123456789", projected.Siren)
	assert.Equal(t, "12345678901234", projected.Siret)
	assert.Equal(t, "FR1234567AB89", projected.TVANumber)
	assert.Equal(t, "+33102030405", projected.Phone)

	assert.Empty(t, projected.AddressNumber)
	assert.Empty(t, projected.AddressStreet)
	assert.Empty(t, projected.AddressPostalCode)
	assert.Empty(t, projected.AddressCity)
	assert.Empty(t, projected.AddressCountry)
	assert.Empty(t, projected.AdminEmail)
	assert.Empty(t, projected.PaymentTerms)
	assert.Empty(t, projected.KbisURL)
	assert.Empty(t, projected.RibURL)
	assert.Empty(t, projected.CgvURL)
}

func TestProjectPermissiveDefaultKeepsEverything(t *testing.T) {
	company := models.Company{Name: "Acme", Phone: "+33102030405", AdminEmail: "admin@acme.fr"}

	assert.Equal(t, company, Project(company, nil))
	assert.Equal(t, company, Project(company, []string{}))
}
