package models

import "time"

// OrderStatus represents all possible states of a delivery order.
// One vocabulary everywhere — handlers must never compare raw strings.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// DeliveryDayASAP marks a line with no explicit delivery day.
const DeliveryDayASAP = "asap"

type Order struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	OrderNumber   string               `json:"order_number" gorm:"uniqueIndex;not null"`
	CustomerID    uint                 `json:"customer_id" gorm:"not null;index"`
	Customer      Customer             `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Status        OrderStatus          `json:"status" gorm:"not null;default:'pending'"`
	Total         float64              `json:"total"`
	TargetDate    *time.Time           `json:"target_date"`
	Notes         string               `json:"notes"`
	Items         []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type OrderItem struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	OrderID      uint       `json:"order_id" gorm:"not null;index"`
	ProductID    uint       `json:"product_id" gorm:"not null"`
	Product      Product    `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity     int        `json:"quantity" gorm:"not null;check:quantity > 0"`
	Price        float64    `json:"price" gorm:"not null"` // snapshot price at time of order
	Name         string     `json:"name"`                  // snapshot name
	DeliveryDay  string     `json:"delivery_day"`          // "sunday".."friday" or "asap"
	DeliveryDate *time.Time `json:"delivery_date"`
}

// OrderStatusHistory tracks every status change — audit trail
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"` // user ID who triggered the transition
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
