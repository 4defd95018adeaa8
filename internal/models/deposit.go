package models

import "time"

type DepositDirection string

const (
	DirectionDeposit  DepositDirection = "deposit"
	DirectionWithdraw DepositDirection = "withdraw"
)

// Deposit records money moved into or out of a self bank account.
// ChequeDDNumber and RTGSNumber are required depending on the mode.
type Deposit struct {
	ID                uint             `gorm:"primaryKey" json:"deposit_id"`
	BankID            uint             `gorm:"index;not null" json:"bank_id"`
	TransactionTypeID uint             `gorm:"index;not null" json:"transaction_type_id"`
	Direction         DepositDirection `gorm:"size:10;not null;default:deposit" json:"direction"`
	TxnAmount         float64          `gorm:"not null" json:"txn_amount"`
	TxnDate           time.Time        `gorm:"index;not null" json:"transaction_date"`
	ChequeDDNumber    string           `gorm:"size:20" json:"cheque_dd_number"`
	RTGSNumber        string           `gorm:"size:22" json:"rtgs_number"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}
