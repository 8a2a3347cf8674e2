// Package complaint implements the complaint lifecycle engine: the closed
// status state machine, who may trigger which transition, and the guarantee
// that every accepted transition is mirrored into the append-only audit
// ledger in the same transaction.
package complaint

import (
	"errors"
	"strings"

	"lapor/backend/internal/config"
	"lapor/backend/internal/models"
	"lapor/backend/internal/session"
	"lapor/backend/internal/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service is stateless between calls; the only shared mutable state is the
// persisted complaint + ledger pair behind Storage.
type Service struct {
	Storage storage.Storage
	Log     *zap.SugaredLogger
}

// NewService creates a new complaint lifecycle service.
func NewService(s storage.Storage, log *zap.SugaredLogger) *Service {
	return &Service{Storage: s, Log: log}
}

// CreateInput carries the customer-supplied fields of a new complaint.
type CreateInput struct {
	Title        string
	Category     string
	Description  string
	Address      string
	City         string
	District     string
	AddressPhone string
	AddressNotes string
	Photos       []string
}

// Filter narrows and pages complaint listings at the engine boundary.
type Filter struct {
	Status   string
	Category string
	Page     int
	Limit    int
}

// Pagination describes one page of a listing.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int64 `json:"total_pages"`
}

// Page is a page of complaints plus its pagination envelope.
type Page struct {
	Complaints []models.Complaint `json:"complaints"`
	Pagination Pagination         `json:"pagination"`
}

// Detail is a complaint denormalized with the public identities of its
// owner and technician plus the full audit ledger, newest first.
type Detail struct {
	models.Complaint
	User    *models.PublicUser   `json:"user,omitempty"`
	Teknisi *models.PublicUser   `json:"teknisi,omitempty"`
	Ledger  []models.LedgerEntry `json:"status_history"`
}

// Stats are the technician dashboard aggregates.
type Stats struct {
	Ready      int64 `json:"ready"`
	InProgress int64 `json:"in_progress"`
	Completed  int64 `json:"completed"`
	Handled    int64 `json:"handled"`
}

// Create validates and persists a new complaint for a customer. The
// complaint row and its first ledger entry are written atomically; the
// caller never sees a complaint with an empty ledger.
func (s *Service) Create(actor *session.Session, input CreateInput) (*models.Complaint, error) {
	if actor.Role != models.RoleCustomer {
		return nil, ErrForbidden
	}

	fields := map[string]string{}
	if strings.TrimSpace(input.Title) == "" {
		fields["judul"] = "Judul wajib diisi"
	}
	if strings.TrimSpace(input.Category) == "" {
		fields["kategori"] = "Kategori wajib diisi"
	}
	if strings.TrimSpace(input.Address) == "" {
		fields["alamat"] = "Alamat wajib diisi"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	complaint := &models.Complaint{
		UserID:       actor.UserID,
		Title:        strings.TrimSpace(input.Title),
		Category:     strings.TrimSpace(input.Category),
		Description:  input.Description,
		Address:      strings.TrimSpace(input.Address),
		City:         input.City,
		District:     input.District,
		AddressPhone: input.AddressPhone,
		AddressNotes: input.AddressNotes,
		Photos:       input.Photos,
		Status:       models.StatusCreated,
	}
	entry := &models.StatusHistory{
		Status: models.StatusCreated,
		Reason: config.ReasonComplaintCreated,
	}

	if err := s.Storage.CreateComplaintWithEntry(complaint, entry); err != nil {
		return nil, err
	}

	s.Log.Infow("complaint created", "complaint_id", complaint.ID, "user_id", actor.UserID)
	return complaint, nil
}

// TransitionStatus moves a complaint to newStatus and appends the matching
// ledger entry atomically. Any teknisi or admin may transition any
// complaint; technician-attributed transitions stick the complaint to the
// first technician that touched it.
func (s *Service) TransitionStatus(actor *session.Session, complaintID, rawStatus, reason string) (*Detail, error) {
	if actor.Role != models.RoleTeknisi && actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	newStatus, err := models.ParseStatus(rawStatus)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}

	if !canTransition(complaint.Status, newStatus) {
		return nil, ErrInvalidStatus
	}

	if strings.TrimSpace(reason) == "" {
		reason = config.ReasonStatusUpdated
	}

	entry := &models.StatusHistory{Status: newStatus, Reason: reason}
	updates := map[string]interface{}{"status": newStatus}
	if actor.Role == models.RoleTeknisi {
		entry.TeknisiID = &actor.UserID
		// First writer is sticky; a later technician does not reassign.
		if complaint.TeknisiID == nil {
			updates["teknisi_id"] = actor.UserID
		}
	}

	if err := s.Storage.UpdateComplaintWithEntry(complaintID, updates, entry); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.Log.Infow("complaint status updated",
		"complaint_id", complaintID, "status", newStatus, "actor", actor.UserID)
	return s.detail(complaintID)
}

// Take self-assigns an unassigned complaint to the acting technician and
// moves it to in_progress in the same transaction.
func (s *Service) Take(actor *session.Session, complaintID string) (*Detail, error) {
	if actor.Role != models.RoleTeknisi {
		return nil, ErrForbidden
	}

	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if complaint.TeknisiID != nil {
		return nil, ErrConflict
	}
	if !canTransition(complaint.Status, models.StatusInProgress) {
		return nil, ErrInvalidStatus
	}

	entry := &models.StatusHistory{
		Status:    models.StatusInProgress,
		TeknisiID: &actor.UserID,
		Reason:    config.ReasonTakenByTeknisi,
	}
	updates := map[string]interface{}{
		"status":     models.StatusInProgress,
		"teknisi_id": actor.UserID,
	}

	if err := s.Storage.UpdateComplaintWithEntry(complaintID, updates, entry); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	s.Log.Infow("complaint taken", "complaint_id", complaintID, "teknisi_id", actor.UserID)
	return s.detail(complaintID)
}

// GetDetail returns the complaint with its denormalized identities and full
// ledger. Only the owner, a teknisi, or an admin may read it.
func (s *Service) GetDetail(actor *session.Session, complaintID string) (*Detail, error) {
	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if !canRead(actor, complaint) {
		return nil, ErrForbidden
	}
	return s.detail(complaintID)
}

// GetStatusHistory returns only the ledger, same authorization as GetDetail.
func (s *Service) GetStatusHistory(actor *session.Session, complaintID string) ([]models.LedgerEntry, error) {
	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}
	if !canRead(actor, complaint) {
		return nil, ErrForbidden
	}

	entries, err := s.Storage.ListLedger(complaintID)
	if err != nil {
		return nil, err
	}
	return s.denormalizeLedger(entries)
}

// GetHistory lists the actor's own complaints, newest first.
func (s *Service) GetHistory(actor *session.Session, f Filter) (*Page, error) {
	filter, err := s.storageFilter(f)
	if err != nil {
		return nil, err
	}
	complaints, total, err := s.Storage.ListComplaintsByOwner(actor.UserID, filter)
	if err != nil {
		return nil, err
	}
	return buildPage(complaints, total, filter), nil
}

// ReadyQueue lists unassigned complaints for technicians to pick up.
func (s *Service) ReadyQueue(actor *session.Session, f Filter) (*Page, error) {
	if actor.Role != models.RoleTeknisi {
		return nil, ErrForbidden
	}
	f.Status = models.StatusCreated.String()
	filter, err := s.storageFilter(f)
	if err != nil {
		return nil, err
	}
	complaints, total, err := s.Storage.ListUnassignedComplaints(filter)
	if err != nil {
		return nil, err
	}
	return buildPage(complaints, total, filter), nil
}

// TechnicianQueue lists the actor's assigned complaints in one status.
func (s *Service) TechnicianQueue(actor *session.Session, status models.Status, f Filter) (*Page, error) {
	if actor.Role != models.RoleTeknisi {
		return nil, ErrForbidden
	}
	f.Status = status.String()
	filter, err := s.storageFilter(f)
	if err != nil {
		return nil, err
	}
	complaints, total, err := s.Storage.ListComplaintsByTechnician(actor.UserID, filter)
	if err != nil {
		return nil, err
	}
	return buildPage(complaints, total, filter), nil
}

// DashboardStats aggregates queue counts for the technician dashboard.
func (s *Service) DashboardStats(actor *session.Session) (*Stats, error) {
	if actor.Role != models.RoleTeknisi {
		return nil, ErrForbidden
	}

	ready, err := s.Storage.CountUnassigned()
	if err != nil {
		return nil, err
	}
	inProgress, err := s.Storage.CountByTechnician(actor.UserID, models.StatusInProgress)
	if err != nil {
		return nil, err
	}
	completed, err := s.Storage.CountByTechnician(actor.UserID, models.StatusCompleted)
	if err != nil {
		return nil, err
	}
	handled, err := s.Storage.CountByTechnician(actor.UserID, "")
	if err != nil {
		return nil, err
	}

	return &Stats{
		Ready:      ready,
		InProgress: inProgress,
		Completed:  completed,
		Handled:    handled,
	}, nil
}

func canRead(actor *session.Session, complaint *models.Complaint) bool {
	if complaint.UserID == actor.UserID {
		return true
	}
	return actor.Role == models.RoleTeknisi || actor.Role == models.RoleAdmin
}

func (s *Service) findComplaint(id string) (*models.Complaint, error) {
	complaint, err := s.Storage.FindComplaintByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return complaint, nil
}

// storageFilter validates the status filter against the closed enum and
// clamps pagination to sane bounds.
func (s *Service) storageFilter(f Filter) (storage.ComplaintFilter, error) {
	out := storage.ComplaintFilter{Category: f.Category, Page: f.Page, Limit: f.Limit}
	if f.Status != "" {
		status, err := models.ParseStatus(f.Status)
		if err != nil {
			return out, ErrInvalidStatus
		}
		out.Status = status
	}
	if out.Page < 1 {
		out.Page = config.DefaultPage
	}
	if out.Limit < 1 {
		out.Limit = config.DefaultLimit
	}
	if out.Limit > config.MaxLimit {
		out.Limit = config.MaxLimit
	}
	return out, nil
}

func buildPage(complaints []models.Complaint, total int64, f storage.ComplaintFilter) *Page {
	totalPages := (total + int64(f.Limit) - 1) / int64(f.Limit)
	if complaints == nil {
		complaints = []models.Complaint{}
	}
	return &Page{
		Complaints: complaints,
		Pagination: Pagination{
			Total:      total,
			Page:       f.Page,
			Limit:      f.Limit,
			TotalPages: totalPages,
		},
	}
}

// detail loads the complaint, its ledger, and the referenced identities.
func (s *Service) detail(complaintID string) (*Detail, error) {
	complaint, err := s.findComplaint(complaintID)
	if err != nil {
		return nil, err
	}

	entries, err := s.Storage.ListLedger(complaintID)
	if err != nil {
		return nil, err
	}

	ids := []string{complaint.UserID}
	if complaint.TeknisiID != nil {
		ids = append(ids, *complaint.TeknisiID)
	}
	for _, e := range entries {
		if e.TeknisiID != nil {
			ids = append(ids, *e.TeknisiID)
		}
	}
	users, err := s.Storage.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Complaint: *complaint, Ledger: make([]models.LedgerEntry, 0, len(entries))}
	if owner, ok := users[complaint.UserID]; ok {
		pub := owner.Public()
		detail.User = &pub
	}
	if complaint.TeknisiID != nil {
		if teknisi, ok := users[*complaint.TeknisiID]; ok {
			pub := teknisi.Public()
			detail.Teknisi = &pub
		}
	}
	for _, e := range entries {
		entry := models.LedgerEntry{StatusHistory: e}
		if e.TeknisiID != nil {
			if teknisi, ok := users[*e.TeknisiID]; ok {
				pub := teknisi.Public()
				entry.Teknisi = &pub
			}
		}
		detail.Ledger = append(detail.Ledger, entry)
	}
	return detail, nil
}

// denormalizeLedger attaches technician identities to raw ledger rows.
func (s *Service) denormalizeLedger(entries []models.StatusHistory) ([]models.LedgerEntry, error) {
	var ids []string
	for _, e := range entries {
		if e.TeknisiID != nil {
			ids = append(ids, *e.TeknisiID)
		}
	}
	users, err := s.Storage.GetUsersByIDs(ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		entry := models.LedgerEntry{StatusHistory: e}
		if e.TeknisiID != nil {
			if teknisi, ok := users[*e.TeknisiID]; ok {
				pub := teknisi.Public()
				entry.Teknisi = &pub
			}
		}
		out = append(out, entry)
	}
	return out, nil
}
