package handlers

import (
	"net/http"
	"time"

	"github.com/dolevhayut/mineral-gas-sub001/config"
	"github.com/dolevhayut/mineral-gas-sub001/middleware"
	"github.com/dolevhayut/mineral-gas-sub001/models"

	"github.com/gin-gonic/gin"
)

// ListProducts returns the public catalog with optional filters
func ListProducts(c *gin.Context) {
	var products []models.Product
	query := config.DB

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if featured := c.Query("featured"); featured == "true" {
		query = query.Where("is_featured = ?", true)
	}
	if available := c.Query("available"); available == "true" {
		query = query.Where("is_available = ?", true)
	}

	query.Order("id").Find(&products)
	c.JSON(http.StatusOK, gin.H{"count": len(products), "products": products})
}

// GetCustomerProducts returns the catalog with the caller's custom
// price list overlaid onto the default prices.
func GetCustomerProducts(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var products []models.Product
	config.DB.Where("is_available = ?", true).Order("id").Find(&products)

	var customer models.Customer
	if err := config.DB.Where("user_id = ?", userID).First(&customer).Error; err == nil {
		products = overlayPrices(products, customer.PriceListID)
	}

	c.JSON(http.StatusOK, gin.H{"count": len(products), "products": products})
}

// overlayPrices replaces catalog prices with the list's custom prices.
// Products not on the list keep the default price.
func overlayPrices(products []models.Product, priceListID *uint) []models.Product {
	if priceListID == nil {
		return products
	}
	var customPrices []models.CustomPrice
	config.DB.Where("price_list_id = ?", *priceListID).Find(&customPrices)
	if len(customPrices) == 0 {
		return products
	}
	byProduct := make(map[uint]float64, len(customPrices))
	for _, cp := range customPrices {
		byProduct[cp.ProductID] = cp.Price
	}
	for i := range products {
		if price, ok := byProduct[products[i].ID]; ok {
			products[i].Price = price
		}
	}
	return products
}

// ListSystemUpdates returns active, unexpired announcements
func ListSystemUpdates(c *gin.Context) {
	var updates []models.SystemUpdate
	config.DB.
		Where("is_active = ?", true).
		Where("expires_at IS NULL OR expires_at > ?", time.Now()).
		Order("created_at desc").
		Find(&updates)
	c.JSON(http.StatusOK, gin.H{"count": len(updates), "updates": updates})
}

// GetDeliveryDays returns the day-of-week → serviced cities config
func GetDeliveryDays(c *gin.Context) {
	var days []models.DeliveryDayConfig
	config.DB.Order("day_of_week").Find(&days)
	c.JSON(http.StatusOK, gin.H{"count": len(days), "delivery_days": days})
}
