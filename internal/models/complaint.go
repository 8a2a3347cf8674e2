package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq" // pq.StringArray maps onto postgres text[]
	"gorm.io/gorm"
)

// Complaint is a customer service complaint. Its Status must always equal
// the status of the newest StatusHistory row for the same complaint; the
// two are only ever written together inside one transaction.
type Complaint struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"not null;index" json:"user_id"`

	Title       string `gorm:"not null" json:"judul"`
	Category    string `gorm:"not null;index" json:"kategori"`
	Description string `gorm:"type:text" json:"deskripsi"`

	// Structured address of the site the complaint refers to.
	Address      string `gorm:"not null" json:"alamat"`
	City         string `json:"kota"`
	District     string `json:"kecamatan"`
	AddressPhone string `json:"telepon_alamat"`
	AddressNotes string `json:"catatan_alamat"`

	// Photos holds attachment URLs uploaded by the customer.
	Photos pq.StringArray `gorm:"type:text[]" json:"foto"`

	Status Status `gorm:"not null;index" json:"status"`
	// TeknisiID is set by the first technician-attributed transition and is
	// never cleared or reassigned by the lifecycle engine afterwards.
	TeknisiID *string `gorm:"index" json:"teknisi_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate is a GORM hook that assigns a new ID when one is not set.
func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = "complaint_" + uuid.New().String()
	}
	return
}
