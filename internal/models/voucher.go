package models

import (
	"time"

	"schoolfin-backend/internal/workflow"
)

// Voucher is a purchase request awaiting a supervisor decision.
// ProductAmount is always qty x rate; client-supplied values are ignored.
type Voucher struct {
	ID                 uint            `gorm:"primaryKey" json:"voucher_id"`
	VendorID           uint            `gorm:"index;not null" json:"vendor_id"`
	VendorName         string          `gorm:"size:100" json:"vendor_name"` // denormalized for the forms
	ProductName        string          `gorm:"size:100;not null" json:"product_name"`
	ProductQty         float64         `gorm:"not null" json:"product_qty"`
	ProductRate        float64         `gorm:"not null" json:"product_rate"`
	ProductAmount      float64         `gorm:"not null" json:"product_amount"`
	VoucherEntryDate   time.Time       `gorm:"index;not null" json:"voucher_entry_date"`
	VoucherStatus      workflow.Status `gorm:"size:10;not null;default:PENDING" json:"voucher_status"`
	VoucherDescription string          `gorm:"size:255" json:"voucher_description"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
