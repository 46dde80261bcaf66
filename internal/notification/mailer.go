package notification

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/fiich/fiich-api/internal/config"
	"github.com/fiich/fiich-api/internal/models"
)

// InviteMailer delivers invitation emails to prospective partners. Delivery
// is best effort: callers must not fail the invitation transaction when it
// errors.
type InviteMailer interface {
	SendInvite(recipientEmail, companyName, inviterEmail string, fields []string) error
}

// SMTPInviteMailer sends invitation emails through an SMTP server.
type SMTPInviteMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTPInviteMailer constructs a new SMTPInviteMailer from config.
func NewSMTPInviteMailer(cfg config.EmailConfig) (*SMTPInviteMailer, error) {
	if strings.TrimSpace(cfg.SMTPHost) == "" {
		return nil, fmt.Errorf("smtp_host is required")
	}
	if cfg.SMTPPort == 0 {
		cfg.SMTPPort = 587
	}
	if strings.TrimSpace(cfg.From) == "" {
		return nil, fmt.Errorf("email from address is required")
	}

	return &SMTPInviteMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.Username,
		password: cfg.Password,
		from:     cfg.From,
	}, nil
}

// SendInvite dispatches an invitation email describing which fields of the
// company record the recipient was offered.
func (m *SMTPInviteMailer) SendInvite(recipientEmail, companyName, inviterEmail string, fields []string) error {
	subject := fmt.Sprintf("Invitation à consulter la fiche de %s", companyName)
	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n",
		m.from, recipientEmail, subject)

	message := []byte(headers + ComposeInviteBody(companyName, inviterEmail, fields))

	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if strings.TrimSpace(m.username) != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	return smtp.SendMail(addr, auth, m.from, []string{recipientEmail}, message)
}

// ComposeInviteBody renders the plain-text invitation message. An empty field
// set, or one covering the whole optional catalog, is announced with the
// "all optional fields" sentinel instead of a field list.
func ComposeInviteBody(companyName, inviterEmail string, fields []string) string {
	body := strings.Builder{}
	body.WriteString("Bonjour,\n\n")
	body.WriteString(fmt.Sprintf("%s vous invite à consulter la fiche de son entreprise %s sur Fiich.\n\n", inviterEmail, companyName))
	body.WriteString(sharedFieldsLine(fields) + "\n\n")
	body.WriteString("Pour accepter l'invitation et consulter la fiche, connectez-vous ou créez un compte sur Fiich.\n\n")
	body.WriteString("Cordialement,\nL'équipe Fiich\n")
	return body.String()
}

func sharedFieldsLine(fields []string) string {
	if len(fields) == 0 || coversOptionalCatalog(fields) {
		return "Toutes les informations facultatives."
	}
	labels := make([]string, 0, len(fields))
	for _, key := range fields {
		if label, ok := models.FieldLabels[key]; ok {
			labels = append(labels, label)
		}
	}
	return "Informations partagées : " + strings.Join(labels, ", ")
}

func coversOptionalCatalog(fields []string) bool {
	seen := make(map[string]struct{}, len(fields))
	for _, key := range fields {
		seen[key] = struct{}{}
	}
	for _, key := range models.OptionalFields {
		if _, ok := seen[key]; !ok {
			return false
		}
	}
	return true
}
