package models

import "time"

// PettyCash is a small cash payment. Amount is capped at 5000.
type PettyCash struct {
	ID             uint      `gorm:"primaryKey" json:"peticash_id"`
	VendorName     string    `gorm:"size:100;not null" json:"vendor_name"`
	TxnDescription string    `gorm:"size:255;not null" json:"txn_description"`
	TxnAmount      float64   `gorm:"not null" json:"txn_amount"`
	EntryDate      time.Time `gorm:"index;not null" json:"entry_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
