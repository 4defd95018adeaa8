package models

import (
	"time"

	"schoolfin-backend/internal/workflow"
)

// Transaction is a voucher-linked payment request. TrnsAmount is seeded
// from the voucher's ProductAmount; BankID is set only for Cheque/DD/RTGS.
type Transaction struct {
	ID                 uint            `gorm:"primaryKey" json:"transaction_id"`
	VoucherID          uint            `gorm:"index;not null" json:"voucher_id"`
	TransactionTypeID  uint            `gorm:"index;not null" json:"transaction_type_id"`
	TransactionType    string          `gorm:"size:50" json:"transaction_type"` // denormalized type name
	BankID             *uint           `gorm:"index" json:"bank_id"`
	TrnsAmount         float64         `gorm:"not null" json:"trns_amount"`
	TrnsDate           time.Time       `gorm:"index;not null" json:"trns_date"`
	TrnsStatus         workflow.Status `gorm:"size:10;not null;default:PENDING" json:"trns_status"`
	TransactionDetails string          `gorm:"size:255" json:"transaction_details"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
