package database

import (
	"log"

	"schoolfin-backend/internal/config"
	"schoolfin-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	SeedReferenceData(DB)

	log.Println("database connected, migration complete")
}

// Migrate runs AutoMigrate for the full model set. Shared with tests,
// which run it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.State{},
		&models.City{},
		&models.VendorType{},
		&models.TransactionType{},
		&models.Bank{},
		&models.Vendor{},
		&models.Voucher{},
		&models.Transaction{},
		&models.Deposit{},
		&models.PettyCash{},
		&models.AuditLog{},
	)
}

// SeedReferenceData fills the static dropdown tables when they are empty.
// Transaction type names are contractual: the bank requirement and the
// mode-specific number rules key off them.
func SeedReferenceData(db *gorm.DB) {
	var count int64

	db.Model(&models.TransactionType{}).Count(&count)
	if count == 0 {
		types := []models.TransactionType{
			{TransactionType: "Cash"},
			{TransactionType: "Online"},
			{TransactionType: "Cheque"},
			{TransactionType: "Demand Draft"},
			{TransactionType: "Rtgs"},
		}
		if err := db.Create(&types).Error; err != nil {
			log.Printf("seeding transaction types failed: %v", err)
		}
	}

	db.Model(&models.VendorType{}).Count(&count)
	if count == 0 {
		types := []models.VendorType{
			{VendorType: "Supplier"},
			{VendorType: "Contractor"},
			{VendorType: "Service Provider"},
		}
		if err := db.Create(&types).Error; err != nil {
			log.Printf("seeding vendor types failed: %v", err)
		}
	}

	db.Model(&models.State{}).Count(&count)
	if count == 0 {
		mh := models.State{StateName: "Maharashtra"}
		mp := models.State{StateName: "Madhya Pradesh"}
		if err := db.Create(&mh).Error; err != nil {
			log.Printf("seeding states failed: %v", err)
			return
		}
		if err := db.Create(&mp).Error; err != nil {
			log.Printf("seeding states failed: %v", err)
			return
		}
		cities := []models.City{
			{CityName: "Nagpur", StateID: mh.ID},
			{CityName: "Pandhrabodi", StateID: mh.ID},
			{CityName: "Bhandar", StateID: mp.ID},
		}
		if err := db.Create(&cities).Error; err != nil {
			log.Printf("seeding cities failed: %v", err)
		}
	}
}
