package models

import "time"

type BankType string

const (
	BankTypeSelf   BankType = "self"   // account owned by the organization
	BankTypeVendor BankType = "vendor" // account belonging to a vendor
)

type Bank struct {
	ID            uint     `gorm:"primaryKey" json:"bank_id"`
	BankName      string   `gorm:"size:100;not null" json:"bank_name"`
	BankAccountNo string   `gorm:"size:18;uniqueIndex;not null" json:"bank_account_no"` // 9-18 digits
	BankIFSC      string   `gorm:"size:20;not null" json:"bank_ifsc"`
	BankBranch    string   `gorm:"size:100;not null" json:"bank_branch"`
	CityID        uint     `gorm:"index;not null" json:"city_id"`
	StateID       uint     `gorm:"index;not null" json:"state_id"`
	BankAddress   string   `gorm:"size:255" json:"bank_address"`
	BankType      BankType `gorm:"size:10;not null" json:"bank_type"`
	BankAmount    float64  `gorm:"default:0" json:"bank_amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
