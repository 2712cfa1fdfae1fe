package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techsanasilver/SanaSilver/internal/domain"
	"github.com/techsanasilver/SanaSilver/internal/service"
)

type orderItemReq struct {
	ProductID    string  `json:"product_id" binding:"required"`
	VariantID    string  `json:"variant_id"`
	Quantity     int64   `json:"quantity" binding:"required,min=1"`
	MakingCharge float64 `json:"making_charge"`
	Tax          float64 `json:"tax"`
}

type createOrderReq struct {
	CustomerID      string         `json:"customer_id" binding:"required"`
	Items           []orderItemReq `json:"items" binding:"required,min=1,dive"`
	ShippingAddress domain.Address `json:"shipping_address"`
	BillingAddress  domain.Address `json:"billing_address"`
	CouponCode      string         `json:"coupon_code"`
	Shipping        float64        `json:"shipping"`
	PaymentMethod   string         `json:"payment_method"`
}

// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param input body createOrderReq true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders [post]
func (s *Server) createOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	in := service.CreateOrderInput{
		CustomerID:      req.CustomerID,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		CouponCode:      req.CouponCode,
		Shipping:        req.Shipping,
		PaymentMethod:   req.PaymentMethod,
	}
	if a := currentAdmin(c); a != nil {
		in.CreatedBy = a.ID
	}
	for _, it := range req.Items {
		in.Items = append(in.Items, service.OrderItemInput{
			ProductID:    it.ProductID,
			VariantID:    it.VariantID,
			Quantity:     it.Quantity,
			MakingCharge: it.MakingCharge,
			Tax:          it.Tax,
		})
	}
	o, err := s.orders.CreateOrder(c, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	o, err := s.orders.GetOrder(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary Get order by number
// @Tags orders
// @Produce json
// @Param number path string true "Order number"
// @Success 200 {object} domain.Order
// @Failure 404 {object} map[string]string
// @Router /orders/number/{number} [get]
func (s *Server) getOrderByNumber(c *gin.Context) {
	o, err := s.orders.GetOrderByNumber(c, c.Param("number"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

// @Summary List orders
// @Tags orders
// @Produce json
// @Success 200 {array} domain.Order
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	list, err := s.orders.ListOrders(c)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type setStatusReq struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// @Summary Set order status; appends one history entry per actual change
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body setStatusReq true "New status"
// @Success 200 {object} domain.Order
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/status [post]
func (s *Server) setOrderStatus(c *gin.Context) {
	var req setStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	var actorID string
	if a := currentAdmin(c); a != nil {
		actorID = a.ID
	}
	o, err := s.orders.SetStatus(c, c.Param("id"), domain.OrderStatus(req.Status), req.Note, actorID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

type recordPaymentReq struct {
	Status         string `json:"status" binding:"required"`
	TransactionID  string `json:"transaction_id"`
	GatewayOrderID string `json:"gateway_order_id"`
}

// @Summary Record payment outcome
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body recordPaymentReq true "Payment"
// @Success 200 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id}/payment [post]
func (s *Server) recordPayment(c *gin.Context) {
	var req recordPaymentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.orders.RecordPayment(c, c.Param("id"), domain.PaymentStatus(req.Status), req.TransactionID, req.GatewayOrderID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
