package httpapi

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/techsanasilver/SanaSilver/internal/repository"
	"github.com/techsanasilver/SanaSilver/internal/service"
)

const (
	accessCookie  = "access_token"
	refreshCookie = "refresh_token"
)

type Server struct {
	engine     *gin.Engine
	admins     *service.AdminService
	products   *service.ProductService
	orders     *service.OrderService
	inventory  *service.InventoryService
	categories *service.CategoryService
	customers  *service.CustomerService
	coupons    *service.CouponService
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// Deps сервисы и настройки, которые нужны HTTP-слою
type Deps struct {
	Admins     *service.AdminService
	Products   *service.ProductService
	Orders     *service.OrderService
	Inventory  *service.InventoryService
	Categories *service.CategoryService
	Customers  *service.CustomerService
	Coupons    *service.CouponService
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewServer(d Deps) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	s := &Server{
		engine:     r,
		admins:     d.Admins,
		products:   d.Products,
		orders:     d.Orders,
		inventory:  d.Inventory,
		categories: d.Categories,
		customers:  d.Customers,
		coupons:    d.Coupons,
		accessTTL:  d.AccessTTL,
		refreshTTL: d.RefreshTTL,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/login", s.login)
		authGroup.POST("/refresh", s.refresh)
		authGroup.POST("/logout", s.requireAuth, s.logout)
		authGroup.GET("/me", s.requireAuth, s.me)
		authGroup.POST("/change-password", s.requireAuth, s.changePassword)
		authGroup.PATCH("/profile", s.requireAuth, s.updateProfile)
	}

	admins := v1.Group("/admins", s.requireAuth)
	{
		admins.POST("", s.requirePermission("users.edit"), s.registerAdmin)
		admins.GET("", s.requirePermission("users.view"), s.listAdmins)
		admins.GET(":id", s.requirePermission("users.view"), s.getAdmin)
	}

	products := v1.Group("/products", s.requireAuth)
	{
		products.POST("", s.requirePermission("products.edit"), s.createProduct)
		products.GET(":id", s.requirePermission("products.view"), s.getProduct)
		products.PUT(":id", s.requirePermission("products.edit"), s.updateProduct)
		products.DELETE(":id", s.requirePermission("products.edit"), s.deleteProduct)
		products.GET("", s.requirePermission("products.view"), s.listProducts)
		products.POST(":id/variants", s.requirePermission("products.edit"), s.addVariant)
		products.POST("/bulk-delete", s.requirePermission("products.edit"), s.bulkDeleteProducts)
	}

	orders := v1.Group("/orders", s.requireAuth)
	{
		orders.POST("", s.requirePermission("orders.edit"), s.createOrder)
		orders.GET(":id", s.requirePermission("orders.view"), s.getOrder)
		orders.GET("/number/:number", s.requirePermission("orders.view"), s.getOrderByNumber)
		orders.GET("", s.requirePermission("orders.view"), s.listOrders)
		orders.POST(":id/status", s.requirePermission("orders.edit"), s.setOrderStatus)
		orders.POST(":id/payment", s.requirePermission("orders.edit"), s.recordPayment)
	}

	inventory := v1.Group("/inventory", s.requireAuth)
	{
		inventory.GET("", s.requirePermission("products.view"), s.listInventory)
		inventory.POST("/movements", s.requirePermission("products.edit"), s.recordMovement)
		inventory.POST("/reserve", s.requirePermission("products.edit"), s.reserveStock)
		inventory.POST("/release", s.requirePermission("products.edit"), s.releaseStock)
	}

	categories := v1.Group("/categories", s.requireAuth)
	{
		categories.POST("", s.requirePermission("categories.edit"), s.createCategory)
		categories.GET("", s.requirePermission("categories.view"), s.listCategories)
		categories.GET(":id", s.requirePermission("categories.view"), s.getCategory)
		categories.PUT(":id", s.requirePermission("categories.edit"), s.updateCategory)
	}

	customers := v1.Group("/customers", s.requireAuth)
	{
		customers.POST("", s.requirePermission("users.edit"), s.createCustomer)
		customers.GET("", s.requirePermission("users.view"), s.listCustomers)
		customers.GET(":id", s.requirePermission("users.view"), s.getCustomer)
		customers.PUT(":id", s.requirePermission("users.edit"), s.updateCustomer)
	}

	coupons := v1.Group("/coupons", s.requireAuth)
	{
		coupons.POST("", s.requirePermission("coupons.edit"), s.createCoupon)
		coupons.GET("", s.requirePermission("coupons.view"), s.listCoupons)
		coupons.GET(":code", s.requirePermission("coupons.view"), s.getCoupon)
		coupons.PUT(":id", s.requirePermission("coupons.edit"), s.updateCoupon)
	}
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrNotEnoughStock):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrConflict), errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// fail пишет ошибку клиенту; внутренние детали наружу не уходят
func fail(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
