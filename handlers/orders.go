package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dolevhayut/mineral-gas-sub001/cart"
	"github.com/dolevhayut/mineral-gas-sub001/config"
	"github.com/dolevhayut/mineral-gas-sub001/middleware"
	"github.com/dolevhayut/mineral-gas-sub001/models"
	"github.com/dolevhayut/mineral-gas-sub001/statemachine"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaceOrderRequest struct {
	TargetDate *time.Time `json:"target_date"`
	Notes      string     `json:"notes"`
	Items      []struct {
		ProductID    uint       `json:"product_id" binding:"required"`
		Quantity     int        `json:"quantity" binding:"required,min=1"`
		DeliveryDay  string     `json:"delivery_day"`
		DeliveryDate *time.Time `json:"delivery_date"`
	} `json:"items" binding:"required,min=1"`
}

// PlaceOrder submits an order. Customer resolution, the header and all
// item rows are written in one transaction, and the total is computed
// here from resolved prices — a client-sent total is never trusted.
func PlaceOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Merge request items into a selection and keep per-line dates.
	sel := cart.New()
	lineDates := make(map[uint]map[string]*time.Time)
	for _, item := range req.Items {
		day := item.DeliveryDay
		if day == "" {
			day = models.DeliveryDayASAP
		}
		sel.Add(item.ProductID, day, item.Quantity)
		if item.DeliveryDate != nil {
			if lineDates[item.ProductID] == nil {
				lineDates[item.ProductID] = make(map[string]*time.Time)
			}
			lineDates[item.ProductID][day] = item.DeliveryDate
		}
	}
	if sel.TotalItems() == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order has no items"})
		return
	}

	var products []models.Product
	config.DB.Where("is_available = ?", true).Find(&products)

	// Apply the customer's price list before totaling, if one exists.
	var existing models.Customer
	if err := config.DB.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		products = overlayPrices(products, existing.PriceListID)
	}

	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, item := range req.Items {
		if _, ok := byID[item.ProductID]; !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product not found or unavailable"})
			return
		}
	}

	summary := cart.BuildSummary(sel, products)
	if len(summary.Lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order has no items"})
		return
	}

	var order models.Order
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		customer, err := resolveCustomer(tx, &user)
		if err != nil {
			return err
		}

		order = models.Order{
			OrderNumber: uuid.NewString(),
			CustomerID:  customer.ID,
			Status:      models.StatusPending,
			Total:       summary.Total,
			TargetDate:  req.TargetDate,
			Notes:       req.Notes,
		}
		for _, line := range summary.Lines {
			var date *time.Time
			if dates := lineDates[line.ProductID]; dates != nil {
				date = dates[line.DeliveryDay]
			}
			order.Items = append(order.Items, models.OrderItem{
				ProductID:    line.ProductID,
				Quantity:     line.Quantity,
				Price:        line.UnitPrice,
				Name:         line.ProductName,
				DeliveryDay:  line.DeliveryDay,
				DeliveryDate: date,
			})
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		history := models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusPending,
			ChangedBy: userID,
			Note:      "Order placed by customer",
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	// A successful submission clears the saved draft.
	config.DB.Where("user_id = ?", userID).Delete(&models.CartDraft{})

	config.DB.Preload("Items.Product").First(&order, order.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message":      "Order placed successfully",
		"order":        order,
		"order_number": order.OrderNumber,
	})
}

// resolveCustomer finds the caller's customer row or creates it. The
// unique index on user_id means a racing duplicate insert fails and the
// existing row is re-read, so two tabs can never mint two customers.
func resolveCustomer(tx *gorm.DB, user *models.User) (*models.Customer, error) {
	var customer models.Customer
	err := tx.Where("user_id = ?", user.ID).First(&customer).Error
	if err == nil {
		return &customer, nil
	}

	customer = models.Customer{
		UserID: user.ID,
		Name:   user.Name,
		Phone:  user.Phone,
	}
	if err := tx.Create(&customer).Error; err != nil {
		// Lost the race — the row exists now.
		if err2 := tx.Where("user_id = ?", user.ID).First(&customer).Error; err2 == nil {
			return &customer, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetMyOrders returns the caller's order history, newest first, with
// optional status and date-window filters.
func GetMyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var customer models.Customer
	if err := config.DB.Where("user_id = ?", userID).First(&customer).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"count": 0, "orders": []models.Order{}})
		return
	}

	var orders []models.Order
	query := config.DB.Preload("Items.Product").
		Where("customer_id = ?", customer.ID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("created_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("created_at <= ?", to)
	}

	query.Order("created_at desc").Find(&orders)

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}

	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

// GetOrderDetail returns a single order with items and history
func GetOrderDetail(c *gin.Context) {
	userID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.
		Preload("Items.Product").
		Preload("StatusHistory").
		First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if !orderBelongsToUser(&order, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder cancels a pending order. Cancellation is always a status
// transition — the row is never deleted.
func CancelOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	orderID := c.Param("id")

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if !orderBelongsToUser(&order, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, "customer"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":         "Cannot cancel order",
			"reason":        err.Error(),
			"current_state": order.Status,
		})
		return
	}

	// Status change and its audit row land together or not at all.
	prevStatus := order.Status
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Update("status", models.StatusCancelled).Error; err != nil {
			return err
		}
		history := models.OrderStatusHistory{
			OrderID:    order.ID,
			FromStatus: prevStatus,
			ToStatus:   models.StatusCancelled,
			ChangedBy:  userID,
			Note:       "Order cancelled by customer",
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}

type UpdateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// UpdateOrderItem edits a line's quantity on a pending order. Zero
// deletes the line; the order total is recomputed in the same
// transaction so it always matches the items.
func UpdateOrderItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	orderID := c.Param("id")
	itemID := c.Param("itemId")

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := config.DB.Preload("Items").First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if !orderBelongsToUser(&order, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "This order does not belong to you"})
		return
	}
	if order.Status != models.StatusPending {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Only pending orders can be edited"})
		return
	}

	var item models.OrderItem
	if err := config.DB.Where("order_id = ?", order.ID).First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
		return
	}

	if *req.Quantity == 0 && len(order.Items) == 1 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Cannot remove the last item — cancel the order instead",
		})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if *req.Quantity == 0 {
			if err := tx.Delete(&item).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Model(&item).Update("quantity", *req.Quantity).Error; err != nil {
				return err
			}
		}

		var items []models.OrderItem
		if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
			return err
		}
		total := 0.0
		for _, it := range items {
			total += it.Price * float64(it.Quantity)
		}
		return tx.Model(&order).Update("total", total).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order item"})
		return
	}

	config.DB.Preload("Items.Product").First(&order, order.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Order item updated", "order": order})
}

// orderBelongsToUser checks order ownership through the customer row.
func orderBelongsToUser(order *models.Order, userID uint) bool {
	var customer models.Customer
	if err := config.DB.First(&customer, order.CustomerID).Error; err != nil {
		return false
	}
	return customer.UserID == userID
}

// GetCartDraft returns the caller's saved in-progress cart, or an
// empty draft when none exists.
func GetCartDraft(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var draft models.CartDraft
	if err := config.DB.Where("user_id = ?", userID).First(&draft).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"draft": cart.Draft{Quantities: map[uint]map[string]int{}}})
		return
	}

	var payload cart.Draft
	if err := json.Unmarshal([]byte(draft.Payload), &payload); err != nil {
		c.JSON(http.StatusOK, gin.H{"draft": cart.Draft{Quantities: map[uint]map[string]int{}}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": payload, "updated_at": draft.UpdatedAt})
}

// SaveCartDraft upserts the caller's in-progress cart. The draft is
// normalized first so non-positive quantities and orphaned preferences
// never persist.
func SaveCartDraft(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var payload cart.Draft
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	normalized := cart.FromDraft(payload).Snapshot()
	raw, err := json.Marshal(normalized)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode draft"})
		return
	}

	draft := models.CartDraft{UserID: userID, Payload: string(raw)}
	err = config.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&draft).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save draft"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Draft saved", "draft": normalized})
}
