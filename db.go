package main

import (
	"log"
	"os"
	"strings"

	"strukpos/models"
	"strukpos/pkg/receipt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var db *gorm.DB

func initDB() {
	var err error
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}
	db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	// Control schema migrations with env DB_AUTO_MIGRATE (default true).
	shouldMigrate := true
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		lv := strings.ToLower(v)
		if lv == "false" || lv == "0" || lv == "no" {
			shouldMigrate = false
		}
	}
	// Roles first so the users FK can be applied safely.
	if shouldMigrate {
		if err := db.AutoMigrate(&models.Role{}); err != nil {
			log.Printf("migration warning (roles): %v", err)
		}
	}
	seedRoles()

	if shouldMigrate {
		// Migrate models individually so a failure on one doesn't block others
		if err := db.AutoMigrate(&models.User{}); err != nil {
			log.Printf("migration warning (users): %v", err)
		}
		if err := db.AutoMigrate(&models.Upload{}); err != nil {
			log.Printf("migration warning (uploads): %v", err)
		}
		if err := db.AutoMigrate(&models.ReceiptRecord{}); err != nil {
			log.Printf("migration warning (receipt_records): %v", err)
		}
		if err := db.AutoMigrate(&models.AccountMapping{}); err != nil {
			log.Printf("migration warning (account_mappings): %v", err)
		}
		if err := db.AutoMigrate(&models.RefreshToken{}); err != nil {
			log.Printf("migration warning (refresh_tokens): %v", err)
		}
	}
	seedDB()
}

func seedRoles() {
	roles := []models.Role{{Name: "administrator", Description: "full access"}, {Name: "user", Description: "regular user"}}
	for _, r := range roles {
		var cnt int64
		db.Model(&models.Role{}).Where("name = ?", r.Name).Count(&cnt)
		if cnt == 0 {
			db.Create(&r)
		}
	}
}

func seedDB() {
	seedRoles()

	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count == 0 {
		var role models.Role
		if err := db.Where("name = ?", "administrator").First(&role).Error; err != nil {
			log.Printf("failed to find administrator role: %v", err)
		}
		rid := role.ID
		admin := models.User{
			Username: "admin",
			RoleID:   &rid,
		}
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		admin.HashedPassword = hashedPassword
		db.Create(&admin)
		log.Println("Seeded admin user: username=admin, password=admin123")
	}

	seedAccountMappings()
	ensureUploadBase()
}

// seedAccountMappings installs the known receiver-to-masked-account pairs so
// the recovery chain's mapping step works out of the box on a fresh database.
func seedAccountMappings() {
	known := []models.AccountMapping{
		{ReceiverName: "YULIA NINGSIH", MaskedAccount: "***********8532", BankCode: "BRI"},
		{ReceiverName: "SANTI WIDIASARI", MaskedAccount: "***********8504", BankCode: "BRI"},
	}
	for _, m := range known {
		var cnt int64
		db.Model(&models.AccountMapping{}).Where("receiver_name = ?", m.ReceiverName).Count(&cnt)
		if cnt == 0 {
			if err := db.Create(&m).Error; err != nil {
				log.Printf("failed to seed mapping %s: %v", m.ReceiverName, err)
			}
		}
	}
}

// dbAccountLookup adapts the mappings table to the engine's lookup interface.
type dbAccountLookup struct {
	db *gorm.DB
}

func (l dbAccountLookup) Lookup(name string) (string, bool) {
	var m models.AccountMapping
	if err := l.db.Where("receiver_name = ?", strings.ToUpper(strings.TrimSpace(name))).First(&m).Error; err != nil {
		return "", false
	}
	return m.MaskedAccount, true
}

var _ receipt.AccountLookup = dbAccountLookup{}

// ensureUploadBase creates the base uploads directory.
func ensureUploadBase() {
	base := uploadBaseDir()
	if err := os.MkdirAll(base, 0755); err != nil {
		log.Printf("failed to create upload base dir %s: %v", base, err)
	}
}

// uploadBaseDir returns the base directory for stored receipt images
// (configurable via UPLOAD_BASE env).
func uploadBaseDir() string {
	if v := os.Getenv("UPLOAD_BASE"); v != "" {
		return v
	}
	return "uploads"
}
