package models

import "time"

// StatusHistory is one row of a complaint's append-only audit ledger.
// Rows are immutable once written; the ledger ordered by CreatedAt
// descending is the authoritative history of the complaint.
type StatusHistory struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	ComplaintID string `gorm:"not null;index:idx_complaint_ledger" json:"complaint_id"`

	Status Status `gorm:"not null" json:"status"`
	// TeknisiID attributes the entry to a technician; nil for entries
	// produced by customer creation or admin transitions.
	TeknisiID *string `json:"teknisi_id"`
	Reason    string  `gorm:"type:text" json:"alasan"`

	CreatedAt time.Time `gorm:"index:idx_complaint_ledger" json:"created_at"`
}

// LedgerEntry is a StatusHistory row denormalized with the technician's
// public identity for API responses.
type LedgerEntry struct {
	StatusHistory
	Teknisi *PublicUser `json:"teknisi,omitempty"`
}
