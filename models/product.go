package models

import "time"

type Product struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	Unit        string    `json:"unit"`         // e.g. "cylinder", "kg"
	PackageSize string    `json:"package_size"` // e.g. "12kg", "48kg"
	IsAvailable bool      `json:"is_available" gorm:"default:true"`
	IsFeatured  bool      `json:"is_featured" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PriceList lets a business customer buy at negotiated prices.
// Products missing from the list fall back to the catalog price.
type PriceList struct {
	ID        uint          `json:"id" gorm:"primaryKey"`
	Name      string        `json:"name" gorm:"not null"`
	Prices    []CustomPrice `json:"prices,omitempty" gorm:"foreignKey:PriceListID"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type CustomPrice struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	PriceListID uint    `json:"price_list_id" gorm:"uniqueIndex:idx_list_product;not null"`
	ProductID   uint    `json:"product_id" gorm:"uniqueIndex:idx_list_product;not null"`
	Product     Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Price       float64 `json:"price" gorm:"not null"`
}
