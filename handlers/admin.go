package handlers

import (
	"net/http"

	"github.com/dolevhayut/mineral-gas-sub001/config"
	"github.com/dolevhayut/mineral-gas-sub001/middleware"
	"github.com/dolevhayut/mineral-gas-sub001/models"
	"github.com/dolevhayut/mineral-gas-sub001/statemachine"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminGetAllOrders returns all orders with full detail — admin only
func AdminGetAllOrders(c *gin.Context) {
	var orders []models.Order
	query := config.DB.Preload("Items.Product").
		Preload("Customer").Preload("StatusHistory")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("created_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("created_at <= ?", to)
	}

	query.Order("created_at desc").Find(&orders)

	// Dashboard: aggregate by status, revenue from completed orders
	summary := map[string]int{}
	var totalRevenue float64
	for _, o := range orders {
		summary[string(o.Status)]++
		if o.Status == models.StatusCompleted {
			totalRevenue += o.Total
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"total_revenue": totalRevenue,
		"count":         len(orders),
		"orders":        orders,
	})
}

type AdminStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required,oneof=pending processing completed cancelled"`
	Note   string             `json:"note"`
	Force  bool               `json:"force"`
}

// AdminUpdateOrderStatus transitions an order through the state
// machine. Force bypasses validation and is flagged in the audit trail.
func AdminUpdateOrderStatus(c *gin.Context) {
	adminID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var req AdminStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	note := req.Note
	if req.Force {
		note = "[ADMIN OVERRIDE] " + req.Note
	} else if err := statemachine.CanTransition(order.Status, req.Status, "admin"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         req.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	// Status change and its audit row land together or not at all.
	prevStatus := order.Status
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", req.Status).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prevStatus,
			ToStatus:   req.Status,
			ChangedBy:  adminID,
			Note:       note,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"new_status":      req.Status,
	})
}

// AdminGetAllUsers returns all users — admin only
func AdminGetAllUsers(c *gin.Context) {
	var users []models.User
	query := config.DB
	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}
	query.Find(&users)
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

// AdminGetAllCustomers returns all customers with their price lists
func AdminGetAllCustomers(c *gin.Context) {
	var customers []models.Customer
	query := config.DB.Preload("PriceList")
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	query.Find(&customers)
	c.JSON(http.StatusOK, gin.H{"count": len(customers), "customers": customers})
}

type AssignPriceListRequest struct {
	PriceListID *uint `json:"price_list_id"`
}

// AdminAssignPriceList attaches (or clears) a customer's price list
func AdminAssignPriceList(c *gin.Context) {
	var req AssignPriceListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	if req.PriceListID != nil {
		var list models.PriceList
		if err := config.DB.First(&list, *req.PriceListID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Price list not found"})
			return
		}
	}

	if err := config.DB.Model(&customer).Update("price_list_id", req.PriceListID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign price list"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Price list assigned", "customer_id": customer.ID})
}
