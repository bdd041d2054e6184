package handlers

import (
	"net/http"
	"time"

	"github.com/dolevhayut/mineral-gas-sub001/config"
	"github.com/dolevhayut/mineral-gas-sub001/models"

	"github.com/gin-gonic/gin"
)

type ProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageURL    string  `json:"image_url"`
	Category    string  `json:"category"`
	Unit        string  `json:"unit"`
	PackageSize string  `json:"package_size"`
	IsAvailable *bool   `json:"is_available"`
	IsFeatured  *bool   `json:"is_featured"`
}

// AdminCreateProduct adds a catalog product
func AdminCreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Unit:        req.Unit,
		PackageSize: req.PackageSize,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		product.IsAvailable = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}

	if err := config.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
}

// AdminUpdateProduct edits a catalog product
func AdminUpdateProduct(c *gin.Context) {
	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"name":         req.Name,
		"description":  req.Description,
		"price":        req.Price,
		"image_url":    req.ImageURL,
		"category":     req.Category,
		"unit":         req.Unit,
		"package_size": req.PackageSize,
	}
	if req.IsAvailable != nil {
		updates["is_available"] = *req.IsAvailable
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}

	if err := config.DB.Model(&product).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": product})
}

// AdminDeleteProduct marks a product unavailable. Product rows are kept
// because order items reference them.
func AdminDeleteProduct(c *gin.Context) {
	var product models.Product
	if err := config.DB.First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err := config.DB.Model(&product).Update("is_available", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product removed from catalog", "product_id": product.ID})
}

type PriceListRequest struct {
	Name string `json:"name" binding:"required"`
}

// AdminCreatePriceList creates an empty named price list
func AdminCreatePriceList(c *gin.Context) {
	var req PriceListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	list := models.PriceList{Name: req.Name}
	if err := config.DB.Create(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create price list"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Price list created", "price_list": list})
}

// AdminGetPriceLists returns all price lists with their prices
func AdminGetPriceLists(c *gin.Context) {
	var lists []models.PriceList
	config.DB.Preload("Prices.Product").Find(&lists)
	c.JSON(http.StatusOK, gin.H{"count": len(lists), "price_lists": lists})
}

type CustomPriceRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Price     float64 `json:"price" binding:"required,gt=0"`
}

// AdminSetCustomPrice sets or replaces a product price on a list
func AdminSetCustomPrice(c *gin.Context) {
	var req CustomPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var list models.PriceList
	if err := config.DB.First(&list, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Price list not found"})
		return
	}
	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var cp models.CustomPrice
	err := config.DB.Where("price_list_id = ? AND product_id = ?", list.ID, req.ProductID).First(&cp).Error
	if err == nil {
		config.DB.Model(&cp).Update("price", req.Price)
	} else {
		cp = models.CustomPrice{PriceListID: list.ID, ProductID: req.ProductID, Price: req.Price}
		if err := config.DB.Create(&cp).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set custom price"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Custom price set", "custom_price": cp})
}

type SystemUpdateRequest struct {
	Title     string     `json:"title" binding:"required"`
	Content   string     `json:"content"`
	IsActive  *bool      `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// AdminCreateSystemUpdate publishes an announcement
func AdminCreateSystemUpdate(c *gin.Context) {
	var req SystemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := models.SystemUpdate{
		Title:     req.Title,
		Content:   req.Content,
		IsActive:  true,
		ExpiresAt: req.ExpiresAt,
	}
	if req.IsActive != nil {
		update.IsActive = *req.IsActive
	}

	if err := config.DB.Create(&update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create update"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Update published", "update": update})
}

// AdminEditSystemUpdate edits an announcement
func AdminEditSystemUpdate(c *gin.Context) {
	var update models.SystemUpdate
	if err := config.DB.First(&update, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Update not found"})
		return
	}

	var req SystemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{
		"title":      req.Title,
		"content":    req.Content,
		"expires_at": req.ExpiresAt,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := config.DB.Model(&update).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to edit update"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Update edited", "update": update})
}

// AdminDeleteSystemUpdate removes an announcement
func AdminDeleteSystemUpdate(c *gin.Context) {
	var update models.SystemUpdate
	if err := config.DB.First(&update, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Update not found"})
		return
	}
	if err := config.DB.Delete(&update).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete update"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Update deleted", "update_id": update.ID})
}
