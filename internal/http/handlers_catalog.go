package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/techsanasilver/SanaSilver/internal/domain"
)

type categoryReq struct {
	Name   string `json:"name" binding:"required"`
	Slug   string `json:"slug" binding:"required"`
	Active *bool  `json:"active"`
}

// @Summary Create category
// @Tags categories
// @Accept json
// @Produce json
// @Param input body categoryReq true "Category"
// @Success 201 {object} domain.Category
// @Failure 400 {object} map[string]string
// @Router /categories [post]
func (s *Server) createCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cat := domain.Category{Name: req.Name, Slug: req.Slug, Active: true}
	if req.Active != nil {
		cat.Active = *req.Active
	}
	out, err := s.categories.Create(c, cat)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {array} domain.Category
// @Router /categories [get]
func (s *Server) listCategories(c *gin.Context) {
	list, err := s.categories.List(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get category by id
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} domain.Category
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [get]
func (s *Server) getCategory(c *gin.Context) {
	cat, err := s.categories.GetByID(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// @Summary Update category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param input body categoryReq true "Category"
// @Success 200 {object} domain.Category
// @Failure 404 {object} map[string]string
// @Router /categories/{id} [put]
func (s *Server) updateCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cat := domain.Category{ID: c.Param("id"), Name: req.Name, Slug: req.Slug, Active: true}
	if req.Active != nil {
		cat.Active = *req.Active
	}
	out, err := s.categories.Update(c, cat)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type customerReq struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone"`
}

// @Summary Create customer
// @Tags customers
// @Accept json
// @Produce json
// @Param input body customerReq true "Customer"
// @Success 201 {object} domain.Customer
// @Failure 409 {object} map[string]string
// @Router /customers [post]
func (s *Server) createCustomer(c *gin.Context) {
	var req customerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	out, err := s.customers.Create(c, domain.Customer{Name: req.Name, Email: req.Email, Phone: req.Phone})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// @Summary List customers
// @Tags customers
// @Produce json
// @Success 200 {array} domain.Customer
// @Router /customers [get]
func (s *Server) listCustomers(c *gin.Context) {
	list, err := s.customers.List(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get customer by id
// @Tags customers
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} map[string]string
// @Router /customers/{id} [get]
func (s *Server) getCustomer(c *gin.Context) {
	out, err := s.customers.GetByID(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type updateCustomerReq struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Phone  string `json:"phone"`
	Active *bool  `json:"active"`
}

// @Summary Update customer
// @Tags customers
// @Accept json
// @Produce json
// @Param id path string true "Customer ID"
// @Param input body updateCustomerReq true "Customer"
// @Success 200 {object} domain.Customer
// @Failure 404 {object} map[string]string
// @Router /customers/{id} [put]
func (s *Server) updateCustomer(c *gin.Context) {
	var req updateCustomerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cur, err := s.customers.GetByID(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	cur.Name = req.Name
	cur.Email = req.Email
	cur.Phone = req.Phone
	if req.Active != nil {
		cur.Active = *req.Active
	}
	out, err := s.customers.Update(c, *cur)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type couponReq struct {
	Code           string  `json:"code" binding:"required"`
	Type           string  `json:"type" binding:"required,oneof=percent fixed"`
	Value          float64 `json:"value" binding:"required,gt=0"`
	MinOrderAmount float64 `json:"min_order_amount"`
	MaxDiscount    float64 `json:"max_discount"`
	UsageLimit     int64   `json:"usage_limit"`
	ValidFrom      string  `json:"valid_from" binding:"required"`
	ValidUntil     string  `json:"valid_until" binding:"required"`
}

// @Summary Create coupon
// @Tags coupons
// @Accept json
// @Produce json
// @Param input body couponReq true "Coupon"
// @Success 201 {object} domain.Coupon
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /coupons [post]
func (s *Server) createCoupon(c *gin.Context) {
	var req couponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	from, err := time.Parse(time.RFC3339, req.ValidFrom)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid valid_from"})
		return
	}
	until, err := time.Parse(time.RFC3339, req.ValidUntil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid valid_until"})
		return
	}
	out, err := s.coupons.Create(c, domain.Coupon{
		Code:           req.Code,
		Type:           domain.CouponType(req.Type),
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		MaxDiscount:    req.MaxDiscount,
		UsageLimit:     req.UsageLimit,
		ValidFrom:      from,
		ValidUntil:     until,
		Active:         true,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// @Summary List coupons
// @Tags coupons
// @Produce json
// @Success 200 {array} domain.Coupon
// @Router /coupons [get]
func (s *Server) listCoupons(c *gin.Context) {
	list, err := s.coupons.List(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get coupon by code
// @Tags coupons
// @Produce json
// @Param code path string true "Coupon code"
// @Success 200 {object} domain.Coupon
// @Failure 404 {object} map[string]string
// @Router /coupons/{code} [get]
func (s *Server) getCoupon(c *gin.Context) {
	out, err := s.coupons.GetByCode(c, c.Param("code"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type updateCouponReq struct {
	Value          float64 `json:"value" binding:"required,gt=0"`
	MinOrderAmount float64 `json:"min_order_amount"`
	MaxDiscount    float64 `json:"max_discount"`
	UsageLimit     int64   `json:"usage_limit"`
	ValidUntil     string  `json:"valid_until"`
	Active         *bool   `json:"active"`
}

// @Summary Update coupon
// @Tags coupons
// @Accept json
// @Produce json
// @Param id path string true "Coupon ID"
// @Param input body updateCouponReq true "Coupon"
// @Success 200 {object} domain.Coupon
// @Failure 404 {object} map[string]string
// @Router /coupons/{id} [put]
func (s *Server) updateCoupon(c *gin.Context) {
	var req updateCouponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cur, err := s.coupons.GetByID(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	cur.Value = req.Value
	cur.MinOrderAmount = req.MinOrderAmount
	cur.MaxDiscount = req.MaxDiscount
	cur.UsageLimit = req.UsageLimit
	if req.ValidUntil != "" {
		until, err := time.Parse(time.RFC3339, req.ValidUntil)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid valid_until"})
			return
		}
		cur.ValidUntil = until
	}
	if req.Active != nil {
		cur.Active = *req.Active
	}
	out, err := s.coupons.Update(c, *cur)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
