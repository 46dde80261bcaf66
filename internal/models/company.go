package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/fiich/fiich-api/internal/apperr"
)

// Company is the canonical record holding a business's identifying and
// administrative data. Name, SIREN, SIRET and the VAT number are required;
// every other attribute is optional and eligible for selective disclosure.
type Company struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	Name              string    `json:"name"`
	Siren             string    `json:"siren"`
	Siret             string    `json:"siret"`
	TVANumber         string    `json:"tva_number"`
	AddressNumber     string    `json:"address_number"`
	AddressStreet     string    `json:"address_street"`
	AddressPostalCode string    `json:"address_postal_code"`
	AddressCity       string    `json:"address_city"`
	AddressCountry    string    `json:"address_country"`
	AdminEmail        string    `json:"admin_email"`
	Phone             string    `json:"phone"`
	PaymentTerms      string    `json:"payment_terms"`
	KbisURL           string    `json:"kbis_url,omitempty"`
	RibURL            string    `json:"rib_url,omitempty"`
	CgvURL            string    `json:"cgv_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

var (
	sirenPattern = regexp.MustCompile(`^\d{9}$`)
	siretPattern = regexp.MustCompile(`^\d{14}$`)
)

// Validate checks the required-attribute invariants: SIREN is exactly 9
// digits, SIRET exactly 14 digits, the VAT number exactly 13 characters and
// the name non-empty.
func (c Company) Validate() error {
	if !sirenPattern.MatchString(c.Siren) {
		return apperr.Validation("siren", "must contain exactly 9 digits")
	}
	if !siretPattern.MatchString(c.Siret) {
		return apperr.Validation("siret", "must contain exactly 14 digits")
	}
	if len(c.TVANumber) != 13 {
		return apperr.Validation("tva_number", "must contain exactly 13 characters")
	}
	if strings.TrimSpace(c.Name) == "" {
		return apperr.Validation("name", "is required")
	}
	return nil
}
