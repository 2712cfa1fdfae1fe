package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/techsanasilver/SanaSilver/internal/domain"
	"github.com/techsanasilver/SanaSilver/internal/service"
)

// inventoryView складская запись с вычисленным доступным остатком
type inventoryView struct {
	domain.Inventory
	Available int64 `json:"available"`
}

func toView(inv domain.Inventory) inventoryView {
	return inventoryView{Inventory: inv, Available: inv.Available()}
}

// @Summary List inventory records
// @Tags inventory
// @Produce json
// @Success 200 {array} inventoryView
// @Router /inventory [get]
func (s *Server) listInventory(c *gin.Context) {
	list, err := s.inventory.List(c)
	if err != nil {
		fail(c, err)
		return
	}
	out := make([]inventoryView, 0, len(list))
	for _, inv := range list {
		out = append(out, toView(inv))
	}
	c.JSON(http.StatusOK, out)
}

type movementReq struct {
	ProductID string `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id"`
	Warehouse string `json:"warehouse" binding:"required"`
	Type      string `json:"type" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
	Reference string `json:"reference"`
}

// @Summary Record a stock movement
// @Tags inventory
// @Accept json
// @Produce json
// @Param input body movementReq true "Movement"
// @Success 200 {object} inventoryView
// @Failure 400 {object} map[string]string
// @Router /inventory/movements [post]
func (s *Server) recordMovement(c *gin.Context) {
	var req movementReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	in := service.MovementInput{
		Key:       domain.InventoryKey{ProductID: req.ProductID, VariantID: req.VariantID, Warehouse: req.Warehouse},
		Type:      domain.MovementType(req.Type),
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		Reference: req.Reference,
	}
	if a := currentAdmin(c); a != nil {
		in.PerformedBy = a.ID
	}
	inv, err := s.inventory.RecordMovement(c, in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toView(*inv))
}

type reservationReq struct {
	ProductID string `json:"product_id" binding:"required"`
	VariantID string `json:"variant_id"`
	Warehouse string `json:"warehouse" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,min=1"`
}

// @Summary Reserve stock
// @Tags inventory
// @Accept json
// @Produce json
// @Param input body reservationReq true "Reservation"
// @Success 200 {object} inventoryView
// @Failure 400 {object} map[string]string
// @Router /inventory/reserve [post]
func (s *Server) reserveStock(c *gin.Context) {
	var req reservationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	key := domain.InventoryKey{ProductID: req.ProductID, VariantID: req.VariantID, Warehouse: req.Warehouse}
	inv, err := s.inventory.Reserve(c, key, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toView(*inv))
}

// @Summary Release reserved stock
// @Tags inventory
// @Accept json
// @Produce json
// @Param input body reservationReq true "Reservation"
// @Success 200 {object} inventoryView
// @Failure 400 {object} map[string]string
// @Router /inventory/release [post]
func (s *Server) releaseStock(c *gin.Context) {
	var req reservationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	key := domain.InventoryKey{ProductID: req.ProductID, VariantID: req.VariantID, Warehouse: req.Warehouse}
	inv, err := s.inventory.Release(c, key, req.Quantity)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toView(*inv))
}
