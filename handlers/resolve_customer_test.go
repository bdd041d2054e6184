package handlers

import (
	"path/filepath"
	"testing"

	"github.com/dolevhayut/mineral-gas-sub001/config"
	"github.com/dolevhayut/mineral-gas-sub001/models"

	"gorm.io/gorm"
)

// TestResolveCustomerDuplicateInsertRace reproduces the two-tabs race:
// the lookup misses, a second submission creates the customer first,
// and our insert hits the unique user_id index. resolveCustomer must
// recover by re-reading instead of failing or minting a second row.
func TestResolveCustomerDuplicateInsertRace(t *testing.T) {
	config.OpenDB(filepath.Join(t.TempDir(), "test.db"))

	user := models.User{Name: "Dana", Phone: "0501234567", PasswordHash: "x", Role: models.RoleCustomer}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	// Sneak a conflicting customer row in after resolveCustomer's
	// lookup has missed but before its insert runs.
	var rival models.Customer
	fired := false
	err := config.DB.Callback().Create().Before("gorm:create").Register("rival_customer_insert", func(db *gorm.DB) {
		if fired || db.Statement.Schema == nil || db.Statement.Schema.Table != "customers" {
			return
		}
		fired = true
		rival = models.Customer{UserID: user.ID, Name: "Other Tab", Phone: user.Phone}
		if err := config.DB.Session(&gorm.Session{NewDB: true}).Create(&rival).Error; err != nil {
			t.Errorf("rival insert failed: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
	defer config.DB.Callback().Create().Remove("rival_customer_insert")

	customer, err := resolveCustomer(config.DB, &user)
	if err != nil {
		t.Fatalf("resolveCustomer should recover from the duplicate insert: %v", err)
	}
	if !fired {
		t.Fatal("conflicting insert never ran — the race was not exercised")
	}
	if customer.ID != rival.ID {
		t.Fatalf("expected the rival row %d to win, got %d", rival.ID, customer.ID)
	}

	var n int64
	config.DB.Model(&models.Customer{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected exactly 1 customer row after the race, got %d", n)
	}
}
