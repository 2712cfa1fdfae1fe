package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/techsanasilver/SanaSilver/internal/domain"
	"github.com/techsanasilver/SanaSilver/internal/repository"
)

type variantReq struct {
	SKU    string  `json:"sku" binding:"required"`
	Size   string  `json:"size"`
	Weight float64 `json:"weight"`
	Price  float64 `json:"price"`
}

type createProductReq struct {
	Name         string       `json:"name" binding:"required"`
	SKU          string       `json:"sku" binding:"required"`
	CategoryID   string       `json:"category_id"`
	Price        float64      `json:"price"`
	MakingCharge float64      `json:"making_charge"`
	Variants     []variantReq `json:"variants"`
}

// @Summary Create product
// @Tags products
// @Accept json
// @Produce json
// @Param input body createProductReq true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p := domain.Product{
		Name:         req.Name,
		SKU:          req.SKU,
		CategoryID:   req.CategoryID,
		Price:        req.Price,
		MakingCharge: req.MakingCharge,
		Active:       true,
	}
	for _, v := range req.Variants {
		p.Variants = append(p.Variants, domain.Variant{SKU: v.SKU, Size: v.Size, Weight: v.Weight, Price: v.Price})
	}
	out, err := s.products.Create(c, p)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// @Summary Get product by id
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.products.GetByID(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type updateProductReq struct {
	Name         string  `json:"name" binding:"required"`
	SKU          string  `json:"sku" binding:"required"`
	CategoryID   string  `json:"category_id"`
	Price        float64 `json:"price"`
	MakingCharge float64 `json:"making_charge"`
	Active       *bool   `json:"active"`
}

// @Summary Update product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body updateProductReq true "Update"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	var req updateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cur, err := s.products.GetByID(c, c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	cur.Name = req.Name
	cur.SKU = req.SKU
	cur.CategoryID = req.CategoryID
	cur.Price = req.Price
	cur.MakingCharge = req.MakingCharge
	if req.Active != nil {
		cur.Active = *req.Active
	}
	out, err := s.products.Update(c, *cur)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary Delete product
// @Tags products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.products.Delete(c, c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List products
// @Tags products
// @Produce json
// @Param q query string false "Name contains"
// @Param category_id query string false "Category"
// @Param min_price query number false "Min price"
// @Param max_price query number false "Max price"
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	var f repository.ProductFilter
	f.NameSubstring = c.Query("q")
	f.CategoryID = c.Query("category_id")
	if v := c.Query("min_price"); v != "" {
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &x
		}
	}
	if v := c.Query("max_price"); v != "" {
		if x, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &x
		}
	}
	list, err := s.products.List(c, f)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Add product variant
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body variantReq true "Variant"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /products/{id}/variants [post]
func (s *Server) addVariant(c *gin.Context) {
	var req variantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	out, err := s.products.AddVariant(c, c.Param("id"), domain.Variant{
		SKU: req.SKU, Size: req.Size, Weight: req.Weight, Price: req.Price,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type bulkDeleteReq struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// @Summary Bulk delete products; per-item failures are reported, not fatal
// @Tags products
// @Accept json
// @Produce json
// @Param input body bulkDeleteReq true "Product IDs"
// @Success 200 {array} service.BulkDeleteResult
// @Failure 400 {object} map[string]string
// @Router /products/bulk-delete [post]
func (s *Server) bulkDeleteProducts(c *gin.Context) {
	var req bulkDeleteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	c.JSON(http.StatusOK, s.products.BulkDelete(c, req.IDs))
}
