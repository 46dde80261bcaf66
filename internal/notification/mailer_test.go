package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fiich/fiich-api/internal/models"
)

func TestComposeInviteBodyListsSelectedFields(t *testing.T) {
	body := ComposeInviteBody("Acme", "owner@acme.fr", []string{"phone", "kbis_url"})

	assert.Contains(t, body, "owner@acme.fr")
	assert.Contains(t, body, "Acme")
	assert.Contains(t, body, "Informations partagées : Téléphone, KBIS")
	assert.NotContains(t, body, "Toutes les informations facultatives.")
}

func TestComposeInviteBodyEmptySetUsesSentinel(t *testing.T) {
	body := ComposeInviteBody("Acme", "owner@acme.fr", nil)
	assert.Contains(t, body, "Toutes les informations facultatives.")
}

func TestComposeInviteBodyFullCatalogUsesSentinel(t *testing.T) {
	body := ComposeInviteBody("Acme", "owner@acme.fr", models.OptionalFields)
	assert.Contains(t, body, "Toutes les informations facultatives.")
	assert.NotContains(t, body, "Informations partagées")
}
