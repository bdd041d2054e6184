package config

import (
	"log"
	"os"

	"github.com/dolevhayut/mineral-gas-sub001/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret = []byte(getEnv("JWT_SECRET", "mineral_gas_super_secret_2024"))

// VerificationWebhookURL receives {phone, code, method} and forwards the
// code over WhatsApp/SMS through the messaging automation service.
var VerificationWebhookURL = getEnv("VERIFICATION_WEBHOOK_URL", "")

// CitiesAPIURL is the government open-data endpoint for the city registry.
var CitiesAPIURL = getEnv("CITIES_API_URL",
	"https://data.gov.il/api/3/action/datastore_search?resource_id=5c78e9fa-c2e2-4771-93ff-7f400a12f7ba&limit=32000")

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	OpenDB(getEnv("DB_PATH", "mineral_gas.db"))
	SeedAdmin()
}

// OpenDB connects to the given sqlite path (":memory:" in tests) and migrates.
func OpenDB(path string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate all models
	err = DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Product{},
		&models.PriceList{},
		&models.CustomPrice{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.SystemUpdate{},
		&models.DeliveryDayConfig{},
		&models.VerificationCode{},
		&models.CartDraft{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("✅ Database connected and migrated successfully")
}

// SeedAdmin creates the back-office account from ADMIN_PHONE and
// ADMIN_PASSWORD when one does not exist yet. Safe to run on every boot.
func SeedAdmin() {
	phone := os.Getenv("ADMIN_PHONE")
	password := os.Getenv("ADMIN_PASSWORD")
	if phone == "" || password == "" {
		log.Println("ADMIN_PHONE/ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var existing models.User
	if err := DB.Where("phone = ?", phone).First(&existing).Error; err == nil {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}
	admin := models.User{
		Name:         "Admin",
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to seed admin user:", err)
	}
	log.Println("✅ Admin account seeded for", phone)
}
