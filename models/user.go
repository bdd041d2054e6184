package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Phone        string    `json:"phone" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"not null;default:'customer'"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Customer is the delivery-facing record behind a user account.
// Exactly one row per user — the unique index on UserID makes
// find-or-create safe when two submissions race.
type Customer struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"uniqueIndex;not null"`
	User        User       `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Name        string     `json:"name" gorm:"not null"`
	Phone       string     `json:"phone"`
	Address     string     `json:"address"`
	City        string     `json:"city"`
	PriceListID *uint      `json:"price_list_id"`
	PriceList   *PriceList `json:"price_list,omitempty" gorm:"foreignKey:PriceListID"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// VerificationCode is a short-lived phone verification challenge,
// delivered over WhatsApp or SMS by the messaging webhook.
type VerificationCode struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Phone     string    `json:"phone" gorm:"index;not null"`
	Code      string    `json:"-" gorm:"not null"`
	Method    string    `json:"method"` // "whatsapp" or "sms"
	Used      bool      `json:"used" gorm:"default:false"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
