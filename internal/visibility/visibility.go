// Package visibility decides which fields of a company record a share grant
// permits a recipient to see. It answers "is disclosure permitted", not "is
// there content to show"; suppressing empty values is a presentation concern.
package visibility

import "github.com/fiich/fiich-api/internal/models"

// Visible reports whether a field may be disclosed through a share carrying
// the given frozen field set.
//
// Required fields are always visible. A nil or empty set means every optional
// field is visible: shares created before field selection existed carry no
// restriction, and narrowing them retroactively would silently alter
// already-granted shares. A non-empty set is a strict membership test.
func Visible(fieldKey string, sharedFields []string) bool {
	if models.IsRequiredField(fieldKey) {
		return true
	}
	if len(sharedFields) == 0 {
		return true
	}
	for _, key := range sharedFields {
		if key == fieldKey {
			return true
		}
	}
	return false
}

// Project returns a copy of the company with every optional field the shared
// set does not permit zeroed out. Required fields and identifiers pass
// through untouched.
func Project(c models.Company, sharedFields []string) models.Company {
	projected := c
	if !Visible("address_number", sharedFields) {
		projected.AddressNumber = ""
	}
	if !Visible("address_street", sharedFields) {
		projected.AddressStreet = ""
	}
	if !Visible("address_postal_code", sharedFields) {
		projected.AddressPostalCode = ""
	}
	if !Visible("address_city", sharedFields) {
		projected.AddressCity = ""
	}
	if !Visible("address_country", sharedFields) {
		projected.AddressCountry = ""
	}
	if !Visible("admin_email", sharedFields) {
		projected.AdminEmail = ""
	}
	if !Visible("phone", sharedFields) {
		projected.Phone = ""
	}
	if !Visible("payment_terms", sharedFields) {
		projected.PaymentTerms = ""
	}
	if !Visible("kbis_url", sharedFields) {
		projected.KbisURL = ""
	}
	if !Visible("rib_url", sharedFields) {
		projected.RibURL = ""
	}
	if !Visible("cgv_url", sharedFields) {
		projected.CgvURL = ""
	}
	return projected
}
