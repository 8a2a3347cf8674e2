package handler_test

import (
	"lapor/backend/internal/models"
	"lapor/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of storage.Storage for handler tests.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateComplaintWithEntry(complaint *models.Complaint, entry *models.StatusHistory) error {
	args := m.Called(complaint, entry)
	return args.Error(0)
}

func (m *MockStorage) UpdateComplaintWithEntry(complaintID string, updates map[string]interface{}, entry *models.StatusHistory) error {
	args := m.Called(complaintID, updates, entry)
	return args.Error(0)
}

func (m *MockStorage) FindComplaintByID(id string) (*models.Complaint, error) {
	args := m.Called(id)
	if c := args.Get(0); c != nil {
		return c.(*models.Complaint), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) ListComplaintsByOwner(ownerID string, f storage.ComplaintFilter) ([]models.Complaint, int64, error) {
	args := m.Called(ownerID, f)
	if c := args.Get(0); c != nil {
		return c.([]models.Complaint), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) ListComplaintsByTechnician(teknisiID string, f storage.ComplaintFilter) ([]models.Complaint, int64, error) {
	args := m.Called(teknisiID, f)
	if c := args.Get(0); c != nil {
		return c.([]models.Complaint), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) ListUnassignedComplaints(f storage.ComplaintFilter) ([]models.Complaint, int64, error) {
	args := m.Called(f)
	if c := args.Get(0); c != nil {
		return c.([]models.Complaint), args.Get(1).(int64), args.Error(2)
	}
	return nil, args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) ListLedger(complaintID string) ([]models.StatusHistory, error) {
	args := m.Called(complaintID)
	if e := args.Get(0); e != nil {
		return e.([]models.StatusHistory), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) CountUnassigned() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) CountByTechnician(teknisiID string, status models.Status) (int64, error) {
	args := m.Called(teknisiID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) FindUserByUsernameOrEmail(identifier string) (*models.User, error) {
	args := m.Called(identifier)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) UpdateUser(id string, updates map[string]interface{}) (*models.User, error) {
	args := m.Called(id, updates)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) GetUsersByIDs(ids []string) (map[string]models.User, error) {
	args := m.Called(ids)
	if u := args.Get(0); u != nil {
		return u.(map[string]models.User), args.Error(1)
	}
	return nil, args.Error(1)
}
