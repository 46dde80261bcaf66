package models

// RequiredFields are always disclosed through a share, regardless of the
// field set frozen on the grant.
var RequiredFields = []string{"name", "siren", "siret", "tva_number"}

// OptionalFields is the fixed catalog of attributes eligible for selective
// disclosure, in the order they are presented to the inviter.
var OptionalFields = []string{
	"address_number",
	"address_street",
	"address_postal_code",
	"address_city",
	"address_country",
	"admin_email",
	"phone",
	"payment_terms",
	"kbis_url",
	"rib_url",
	"cgv_url",
}

// FieldLabels maps field keys to the human-readable labels used in
// invitation emails.
var FieldLabels = map[string]string{
	"address_number":      "Numéro de voie",
	"address_street":      "Rue",
	"address_postal_code": "Code postal",
	"address_city":        "Ville",
	"address_country":     "Pays",
	"admin_email":         "Email administratif",
	"phone":               "Téléphone",
	"payment_terms":       "Conditions de paiement",
	"kbis_url":            "KBIS",
	"rib_url":             "RIB",
	"cgv_url":             "CGV",
}

var optionalFieldSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(OptionalFields))
	for _, key := range OptionalFields {
		set[key] = struct{}{}
	}
	return set
}()

var requiredFieldSet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(RequiredFields))
	for _, key := range RequiredFields {
		set[key] = struct{}{}
	}
	return set
}()

// IsOptionalField reports whether key belongs to the optional-field catalog.
func IsOptionalField(key string) bool {
	_, ok := optionalFieldSet[key]
	return ok
}

// IsRequiredField reports whether key is one of the always-shared attributes.
func IsRequiredField(key string) bool {
	_, ok := requiredFieldSet[key]
	return ok
}
