package models

import "time"

type Vendor struct {
	ID            uint   `gorm:"primaryKey" json:"vendor_id"`
	VendorName    string `gorm:"size:100;not null" json:"vendor_name"`
	VendorMobile  string `gorm:"size:10;not null" json:"vendor_mobile"`
	VendorEmail   string `gorm:"size:100;not null" json:"vendor_email"`
	VendorGST     string `gorm:"size:20;not null" json:"vendor_GST"`
	VendorTypeID  uint   `gorm:"index;not null" json:"vendor_type_id"`
	VendorAddress string `gorm:"size:255" json:"vendor_address"`
	CityID        uint   `gorm:"index;not null" json:"city_id"`
	StateID       uint   `gorm:"index;not null" json:"state_id"`
	BankID        uint   `gorm:"index;not null" json:"bank_id"` // vendor bank from step one of the wizard
	VendorStatus  string `gorm:"size:20;not null;default:ACTIVE" json:"vendor_status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
