package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fiich/fiich-api/internal/apperr"
	"github.com/fiich/fiich-api/internal/models"
)

// memStore is an in-memory stand-in for the Postgres repositories, mirroring
// their contracts closely enough to exercise the handler flows: owner-scoped
// updates report sql.ErrNoRows, accept/decline are guarded by a pending-state
// check under a single lock, and share field sets are copied by value.
type memStore struct {
	mu        sync.Mutex
	companies map[string]models.Company
	invites   map[string]models.Invite
	shares    map[string]models.Share
	documents map[string]models.Document
	seq       int
}

func newMemStore() *memStore {
	return &memStore{
		companies: make(map[string]models.Company),
		invites:   make(map[string]models.Invite),
		shares:    make(map[string]models.Share),
		documents: make(map[string]models.Document),
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *memStore) CreateCompany(company models.Company) (models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	company.ID = s.nextID("company")
	company.CreatedAt = time.Now()
	company.UpdatedAt = company.CreatedAt
	s.companies[company.ID] = company
	return company, nil
}

func (s *memStore) UpdateCompany(company models.Company) (models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.companies[company.ID]
	if !ok || existing.UserID != company.UserID {
		return models.Company{}, sql.ErrNoRows
	}
	company.CreatedAt = existing.CreatedAt
	company.UpdatedAt = time.Now()
	s.companies[company.ID] = company
	return company, nil
}

func (s *memStore) GetCompanyByID(id string) (models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	company, ok := s.companies[id]
	if !ok {
		return models.Company{}, sql.ErrNoRows
	}
	return company, nil
}

func (s *memStore) ListCompaniesByOwner(userID string) ([]models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var companies []models.Company
	for _, company := range s.companies {
		if company.UserID == userID {
			companies = append(companies, company)
		}
	}
	return companies, nil
}

func (s *memStore) SetDocumentURL(companyID string, docType models.DocumentType, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	company, ok := s.companies[companyID]
	if !ok {
		return sql.ErrNoRows
	}
	switch docType {
	case models.DocumentTypeKbis:
		company.KbisURL = url
	case models.DocumentTypeRib:
		company.RibURL = url
	case models.DocumentTypeCgv:
		company.CgvURL = url
	}
	s.companies[companyID] = company
	return nil
}

func (s *memStore) CreateInvite(invite models.Invite) (models.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invite.ID = s.nextID("invite")
	invite.Status = models.InviteStatusPending
	invite.CreatedAt = time.Now()
	invite.UpdatedAt = invite.CreatedAt
	s.invites[invite.ID] = invite
	return invite, nil
}

func (s *memStore) GetInviteByID(id string) (models.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invite, ok := s.invites[id]
	if !ok {
		return models.Invite{}, sql.ErrNoRows
	}
	return invite, nil
}

func (s *memStore) ListInvitesForRecipient(userID, email string) ([]models.Invite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var invites []models.Invite
	for _, invite := range s.invites {
		if invite.InviteeUserID != nil && *invite.InviteeUserID == userID {
			invites = append(invites, invite)
			continue
		}
		if invite.InviteeUserID == nil && invite.InviteeEmail == email {
			invites = append(invites, invite)
		}
	}
	return invites, nil
}

func (s *memStore) AcceptInvite(inviteID, userID string) (models.Share, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	invite, ok := s.invites[inviteID]
	if !ok {
		return models.Share{}, apperr.ErrNotFound
	}
	if invite.Status != models.InviteStatusPending {
		return models.Share{}, apperr.ErrInvalidState
	}
	invite.Status = models.InviteStatusAccepted
	invite.InviteeUserID = &userID
	invite.UpdatedAt = time.Now()
	s.invites[inviteID] = invite

	share := models.Share{
		ID:              s.nextID("share"),
		CompanyID:       invite.InviterCompanyID,
		InviteID:        inviteID,
		RecipientUserID: userID,
		Accepted:        true,
		SharedFields:    append([]string(nil), invite.Fields...),
		CreatedAt:       time.Now(),
	}
	s.shares[share.ID] = share
	return share, nil
}

func (s *memStore) DeclineInvite(inviteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	invite, ok := s.invites[inviteID]
	if !ok {
		return apperr.ErrNotFound
	}
	if invite.Status != models.InviteStatusPending {
		return apperr.ErrInvalidState
	}
	invite.Status = models.InviteStatusDeclined
	invite.UpdatedAt = time.Now()
	s.invites[inviteID] = invite
	return nil
}

func (s *memStore) GetShareByID(id string) (models.Share, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	share, ok := s.shares[id]
	if !ok {
		return models.Share{}, sql.ErrNoRows
	}
	return share, nil
}

func (s *memStore) ListSharesByRecipient(userID string) ([]models.ShareSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var summaries []models.ShareSummary
	for _, share := range s.shares {
		if share.RecipientUserID != userID || !share.Accepted {
			continue
		}
		company := s.companies[share.CompanyID]
		summaries = append(summaries, models.ShareSummary{
			ID:          share.ID,
			CompanyID:   share.CompanyID,
			CompanyName: company.Name,
			Siret:       company.Siret,
			CreatedAt:   share.CreatedAt,
		})
	}
	return summaries, nil
}

func (s *memStore) UpsertDocument(doc models.Document) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := doc.CompanyID + "/" + string(doc.Type)
	if existing, ok := s.documents[key]; ok {
		existing.Name = doc.Name
		existing.URL = doc.URL
		existing.UpdatedAt = time.Now()
		s.documents[key] = existing
		return existing, nil
	}
	doc.ID = s.nextID("document")
	doc.CreatedAt = time.Now()
	doc.UpdatedAt = doc.CreatedAt
	s.documents[key] = doc
	return doc, nil
}

func (s *memStore) ListDocumentsByCompany(companyID string) ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var docs []models.Document
	for _, doc := range s.documents {
		if doc.CompanyID == companyID {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

// fakeMailer records invite emails and can be told to fail every send.
type fakeMailer struct {
	mu   sync.Mutex
	sent []fakeMail
	err  error
	ch   chan fakeMail
}

type fakeMail struct {
	Recipient   string
	CompanyName string
	Inviter     string
	Fields      []string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{ch: make(chan fakeMail, 8)}
}

func (m *fakeMailer) SendInvite(recipientEmail, companyName, inviterEmail string, fields []string) error {
	mail := fakeMail{
		Recipient:   recipientEmail,
		CompanyName: companyName,
		Inviter:     inviterEmail,
		Fields:      append([]string(nil), fields...),
	}
	m.mu.Lock()
	m.sent = append(m.sent, mail)
	err := m.err
	m.mu.Unlock()
	m.ch <- mail
	return err
}

func (m *fakeMailer) wait(timeout time.Duration) (fakeMail, bool) {
	select {
	case mail := <-m.ch:
		return mail, true
	case <-time.After(timeout):
		return fakeMail{}, false
	}
}

// fakeBlobStore returns a deterministic public URL per upload, distinguishing
// successive uploads to the same path.
type fakeBlobStore struct {
	mu      sync.Mutex
	uploads int
}

func (b *fakeBlobStore) Upload(_ context.Context, path string, r io.Reader, _ int64, _ string) (string, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.uploads++
	return fmt.Sprintf("https://blob.test/%s?v=%d", path, b.uploads), nil
}
