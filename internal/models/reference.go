package models

// Static reference entities, fetched read-only to populate dropdowns.

type State struct {
	ID        uint   `gorm:"primaryKey" json:"state_id"`
	StateName string `gorm:"size:100;not null;unique" json:"state_name"`
}

// City always belongs to a state; city dropdowns are filtered by state_id.
type City struct {
	ID       uint   `gorm:"primaryKey" json:"city_id"`
	CityName string `gorm:"size:100;not null" json:"city_name"`
	StateID  uint   `gorm:"index;not null" json:"state_id"`
}

type VendorType struct {
	ID         uint   `gorm:"primaryKey" json:"vendor_type_id"`
	VendorType string `gorm:"size:100;not null;unique" json:"vendor_type"`
}

type TransactionType struct {
	ID              uint   `gorm:"primaryKey" json:"transaction_type_id"`
	TransactionType string `gorm:"size:50;not null;unique" json:"transaction_type"` // Cash / Online / Cheque / Demand Draft / Rtgs
}
