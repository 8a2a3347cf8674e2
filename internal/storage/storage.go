// Package storage persists complaints, their audit ledger, and users in
// PostgreSQL. The two-write operations (complaint + ledger entry) run inside
// a single transaction so readers never observe a complaint whose status
// diverges from its newest ledger row.
package storage

import (
	"lapor/backend/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ComplaintFilter narrows and pages complaint listings. Page is 1-indexed.
type ComplaintFilter struct {
	Status   models.Status
	Category string
	Page     int
	Limit    int
}

type Storage interface {
	CreateComplaintWithEntry(complaint *models.Complaint, entry *models.StatusHistory) error
	UpdateComplaintWithEntry(complaintID string, updates map[string]interface{}, entry *models.StatusHistory) error
	FindComplaintByID(id string) (*models.Complaint, error)
	ListComplaintsByOwner(ownerID string, f ComplaintFilter) ([]models.Complaint, int64, error)
	ListComplaintsByTechnician(teknisiID string, f ComplaintFilter) ([]models.Complaint, int64, error)
	ListUnassignedComplaints(f ComplaintFilter) ([]models.Complaint, int64, error)
	ListLedger(complaintID string) ([]models.StatusHistory, error)
	CountUnassigned() (int64, error)
	CountByTechnician(teknisiID string, status models.Status) (int64, error)

	SaveUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	FindUserByUsernameOrEmail(identifier string) (*models.User, error)
	UpdateUser(id string, updates map[string]interface{}) (*models.User, error)
	GetUsersByIDs(ids []string) (map[string]models.User, error)
}

type Service struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
}

// NewStorageService wires the persistence layer.
func NewStorageService(db *gorm.DB, log *zap.SugaredLogger) *Service {
	return &Service{DB: db, Log: log}
}

// CreateComplaintWithEntry inserts the complaint and its first ledger row
// atomically. The entry's ComplaintID is filled from the generated id.
func (s *Service) CreateComplaintWithEntry(complaint *models.Complaint, entry *models.StatusHistory) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(complaint).Error; err != nil {
			return err
		}
		entry.ComplaintID = complaint.ID
		return tx.Create(entry).Error
	})
	if err != nil {
		s.Log.Errorw("failed to create complaint", "user_id", complaint.UserID, "err", err)
	}
	return err
}

// UpdateComplaintWithEntry applies a partial update to the complaint and
// appends one ledger row, atomically.
func (s *Service) UpdateComplaintWithEntry(complaintID string, updates map[string]interface{}, entry *models.StatusHistory) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Complaint{}).Where("id = ?", complaintID).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		entry.ComplaintID = complaintID
		return tx.Create(entry).Error
	})
	if err != nil {
		s.Log.Errorw("failed to update complaint", "complaint_id", complaintID, "err", err)
	}
	return err
}

func (s *Service) FindComplaintByID(id string) (*models.Complaint, error) {
	var complaint models.Complaint
	if err := s.DB.First(&complaint, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

// listComplaints runs a filtered, paginated query over an already scoped
// statement. A failing count or find propagates as an error; an empty page
// is returned only when the query genuinely matched nothing.
func (s *Service) listComplaints(query *gorm.DB, f ComplaintFilter) ([]models.Complaint, int64, error) {
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Page > 0 && f.Limit > 0 {
		query = query.Offset((f.Page - 1) * f.Limit).Limit(f.Limit)
	}

	var complaints []models.Complaint
	if err := query.Order("created_at DESC").Find(&complaints).Error; err != nil {
		return nil, 0, err
	}
	return complaints, total, nil
}

func (s *Service) ListComplaintsByOwner(ownerID string, f ComplaintFilter) ([]models.Complaint, int64, error) {
	query := s.DB.Model(&models.Complaint{}).Where("user_id = ?", ownerID)
	return s.listComplaints(query, f)
}

func (s *Service) ListComplaintsByTechnician(teknisiID string, f ComplaintFilter) ([]models.Complaint, int64, error) {
	query := s.DB.Model(&models.Complaint{}).Where("teknisi_id = ?", teknisiID)
	return s.listComplaints(query, f)
}

func (s *Service) ListUnassignedComplaints(f ComplaintFilter) ([]models.Complaint, int64, error) {
	query := s.DB.Model(&models.Complaint{}).Where("teknisi_id IS NULL")
	return s.listComplaints(query, f)
}

// ListLedger returns the full audit ledger for a complaint, newest first.
// Ties on created_at fall back to insertion order.
func (s *Service) ListLedger(complaintID string) ([]models.StatusHistory, error) {
	var entries []models.StatusHistory
	err := s.DB.Where("complaint_id = ?", complaintID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&entries).Error
	if err != nil {
		s.Log.Errorw("failed to load ledger", "complaint_id", complaintID, "err", err)
		return nil, err
	}
	return entries, nil
}

func (s *Service) CountUnassigned() (int64, error) {
	var count int64
	err := s.DB.Model(&models.Complaint{}).
		Where("teknisi_id IS NULL AND status = ?", models.StatusCreated).
		Count(&count).Error
	return count, err
}

// CountByTechnician counts complaints assigned to a technician, optionally
// narrowed to one status. An empty status counts all of them.
func (s *Service) CountByTechnician(teknisiID string, status models.Status) (int64, error) {
	query := s.DB.Model(&models.Complaint{}).Where("teknisi_id = ?", teknisiID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByUsernameOrEmail resolves a login identifier against both the
// username and email columns.
func (s *Service) FindUserByUsernameOrEmail(identifier string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", identifier).
		Or("email = ?", identifier).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) UpdateUser(id string, updates map[string]interface{}) (*models.User, error) {
	result := s.DB.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.GetUserByID(id)
}

// GetUsersByIDs loads a batch of users keyed by id, used to denormalize
// owner and technician identities into responses.
func (s *Service) GetUsersByIDs(ids []string) (map[string]models.User, error) {
	users := make(map[string]models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	var rows []models.User
	if err := s.DB.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, u := range rows {
		users[u.ID] = u
	}
	return users, nil
}
