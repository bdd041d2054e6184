package routes

import (
	"github.com/dolevhayut/mineral-gas-sub001/handlers"
	"github.com/dolevhayut/mineral-gas-sub001/middleware"
	"github.com/dolevhayut/mineral-gas-sub001/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/send-code", handlers.SendVerificationCode)
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		// Catalog & site content (no auth needed)
		public.GET("/products", handlers.ListProducts)
		public.GET("/updates", handlers.ListSystemUpdates)
		public.GET("/delivery-days", handlers.GetDeliveryDays)
		public.GET("/cities", handlers.GetCities)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", handlers.GetStateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/profile", handlers.GetProfile)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.GET("/products", handlers.GetCustomerProducts)
		customer.GET("/cart", handlers.GetCartDraft)
		customer.PUT("/cart", handlers.SaveCartDraft)
		customer.POST("/orders", handlers.PlaceOrder)
		customer.GET("/orders", handlers.GetMyOrders)
		customer.GET("/orders/:id", handlers.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", handlers.CancelOrder)
		customer.PUT("/orders/:id/items/:itemId", handlers.UpdateOrderItem)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.RoleAdmin))
	{
		// Orders
		admin.GET("/orders", handlers.AdminGetAllOrders)
		admin.PUT("/orders/:id/status", handlers.AdminUpdateOrderStatus)

		// People
		admin.GET("/users", handlers.AdminGetAllUsers)
		admin.GET("/customers", handlers.AdminGetAllCustomers)
		admin.PUT("/customers/:id/price-list", handlers.AdminAssignPriceList)

		// Catalog
		admin.POST("/products", handlers.AdminCreateProduct)
		admin.PUT("/products/:id", handlers.AdminUpdateProduct)
		admin.DELETE("/products/:id", handlers.AdminDeleteProduct)
		admin.GET("/price-lists", handlers.AdminGetPriceLists)
		admin.POST("/price-lists", handlers.AdminCreatePriceList)
		admin.PUT("/price-lists/:id/prices", handlers.AdminSetCustomPrice)

		// Announcements
		admin.POST("/updates", handlers.AdminCreateSystemUpdate)
		admin.PUT("/updates/:id", handlers.AdminEditSystemUpdate)
		admin.DELETE("/updates/:id", handlers.AdminDeleteSystemUpdate)

		// Delivery scheduling
		admin.PUT("/delivery-days", handlers.AdminSaveDeliveryDays)
	}
}
