package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/techsanasilver/SanaSilver/internal/auth"
	"github.com/techsanasilver/SanaSilver/internal/domain"
	"github.com/techsanasilver/SanaSilver/internal/repository"
	"github.com/techsanasilver/SanaSilver/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupServer(t *testing.T) *Server {
	t.Helper()
	store := repository.NewMemoryStore("SS")
	adminsRepo := repository.NewMemoryAdmins(store)
	customersRepo := repository.NewMemoryCustomers(store)
	couponsRepo := repository.NewMemoryCoupons(store)
	tx := repository.NewMemoryTx(store)
	issuer := auth.TokenIssuer{
		AccessKey:  []byte("test-access-secret"),
		RefreshKey: []byte("test-refresh-secret"),
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
	adminsSvc := service.NewAdminService(adminsRepo, tx, issuer, bcrypt.MinCost)
	inventorySvc := service.NewInventoryService(repository.NewMemoryInventory(store), tx)
	return NewServer(Deps{
		Admins:     adminsSvc,
		Products:   service.NewProductService(store),
		Orders:     service.NewOrderService(repository.NewMemoryOrders(store), customersRepo, store, couponsRepo, inventorySvc, tx, "main"),
		Inventory:  inventorySvc,
		Categories: service.NewCategoryService(repository.NewMemoryCategories(store)),
		Customers:  service.NewCustomerService(customersRepo),
		Coupons:    service.NewCouponService(couponsRepo),
		AccessTTL:  issuer.AccessTTL,
		RefreshTTL: issuer.RefreshTTL,
	})
}

// client держит auth-cookie между запросами, как это делает браузер
type client struct {
	s       *Server
	cookies []*http.Cookie
}

func (cl *client) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	cl.s.Engine().ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		cl.setCookie(c)
	}
	return w
}

func (cl *client) setCookie(c *http.Cookie) {
	for i, old := range cl.cookies {
		if old.Name == c.Name {
			cl.cookies[i] = c
			return
		}
	}
	cl.cookies = append(cl.cookies, c)
}

// register посадит администратора напрямую через сервис и залогинит клиента
func loginAs(t *testing.T, s *Server, role domain.Role) *client {
	t.Helper()
	email := string(role) + "@sanasilver.local"
	_, err := s.admins.Register(context.Background(), service.RegisterInput{
		Name:     "Test " + string(role),
		Email:    email,
		Password: "password123",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("register %v: %v", role, err)
	}
	cl := &client{s: s}
	w := cl.do(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email": email, "password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %v: code %v body %v", role, w.Code, w.Body.String())
	}
	return cl
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v (%s)", err, w.Body.String())
	}
	return out
}

func TestAuth_LoginSetsCookies(t *testing.T) {
	s := setupServer(t)
	cl := loginAs(t, s, domain.RoleAdmin)

	var access, refresh bool
	for _, c := range cl.cookies {
		switch c.Name {
		case accessCookie:
			access = c.Value != ""
		case refreshCookie:
			refresh = c.Value != ""
		}
	}
	if !access || !refresh {
		t.Fatalf("auth cookies not set: %+v", cl.cookies)
	}

	w := cl.do(t, http.MethodGet, "/api/v1/auth/me", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: %v", w.Code)
	}
	a := decode[domain.Admin](t, w)
	if a.Role != domain.RoleAdmin {
		t.Fatalf("role %v", a.Role)
	}
	if a.PasswordHash != "" {
		t.Fatal("password hash leaked")
	}
}

func TestAuth_Unauthenticated(t *testing.T) {
	s := setupServer(t)
	cl := &client{s: s}

	for _, path := range []string{"/api/v1/products", "/api/v1/orders", "/api/v1/auth/me"} {
		w := cl.do(t, http.MethodGet, path, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%v: expected 401, got %v", path, w.Code)
		}
	}
}

func TestAuth_BearerFallback(t *testing.T) {
	s := setupServer(t)
	cl := loginAs(t, s, domain.RoleAdmin)

	var token string
	for _, c := range cl.cookies {
		if c.Name == accessCookie {
			token = c.Value
		}
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("bearer auth: %v", w.Code)
	}
}

func TestAuth_RefreshAndLogout(t *testing.T) {
	s := setupServer(t)
	cl := loginAs(t, s, domain.RoleAdmin)

	w := cl.do(t, http.MethodPost, "/api/v1/auth/refresh", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("refresh: %v", w.Code)
	}

	w = cl.do(t, http.MethodPost, "/api/v1/auth/logout", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout: %v", w.Code)
	}

	// refresh token is now stale
	w = cl.do(t, http.MethodPost, "/api/v1/auth/refresh", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("stale refresh: expected 401, got %v", w.Code)
	}
}

func TestPermissions_StaffReadOnly(t *testing.T) {
	s := setupServer(t)
	cl := loginAs(t, s, domain.RoleStaff)

	w := cl.do(t, http.MethodGet, "/api/v1/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("staff list products: %v", w.Code)
	}
	w = cl.do(t, http.MethodPost, "/api/v1/products", map[string]any{
		"name": "Ring", "sku": "R1", "price": 100,
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("staff create product: expected 403, got %v", w.Code)
	}
	w = cl.do(t, http.MethodPost, "/api/v1/admins", map[string]any{
		"name": "X", "email": "x@sanasilver.local", "password": "password123",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("staff register admin: expected 403, got %v", w.Code)
	}
	w = cl.do(t, http.MethodGet, "/api/v1/admins", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("staff list admins: expected 403, got %v", w.Code)
	}
}

func TestAdminList(t *testing.T) {
	s := setupServer(t)
	cl := loginAs(t, s, domain.RoleAdmin)

	w := cl.do(t, http.MethodGet, "/api/v1/admins", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list admins: %v", w.Code)
	}
	list := decode[[]domain.Admin](t, w)
	if len(list) != 1 {
		t.Fatalf("list length %v, want 1", len(list))
	}
	if list[0].PasswordHash != "" {
		t.Fatal("password hash leaked")
	}
}

func TestProductFlow(t *testing.T) {
	s := setupServer(t)
	cl := loginAs(t, s, domain.RoleAdmin)

	w := cl.do(t, http.MethodPost, "/api/v1/products", map[string]any{
		"name": "Silver Ring", "sku": "RNG-1", "price": 500, "making_charge": 50,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %v %v", w.Code, w.Body.String())
	}
	p := decode[domain.Product](t, w)

	w = cl.do(t, http.MethodGet, "/api/v1/products/"+p.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: %v", w.Code)
	}

	w = cl.do(t, http.MethodPut, "/api/v1/products/"+p.ID, map[string]any{
		"name": "Silver Ring", "sku": "RNG-1", "price": 550, "making_charge": 50,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: %v", w.Code)
	}

	w = cl.do(t, http.MethodPost, "/api/v1/products/"+p.ID+"/variants", map[string]any{
		"sku": "RNG-1-S", "size": "S", "price": 520,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add variant: %v %v", w.Code, w.Body.String())
	}

	w = cl.do(t, http.MethodGet, "/api/v1/products?q=silver", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %v", w.Code)
	}
	list := decode[[]domain.Product](t, w)
	if len(list) != 1 {
		t.Fatalf("list length %v", len(list))
	}

	w = cl.do(t, http.MethodDelete, "/api/v1/products/"+p.ID, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete: %v", w.Code)
	}
	w = cl.do(t, http.MethodGet, "/api/v1/products/"+p.ID, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get deleted: %v", w.Code)
	}
}

func TestOrderFlow(t *testing.T) {
	s := setupServer(t)
	cl := loginAs(t, s, domain.RoleAdmin)

	// customer, product, stock
	w := cl.do(t, http.MethodPost, "/api/v1/customers", map[string]any{
		"name": "Jane", "email": "jane@example.com",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create customer: %v %v", w.Code, w.Body.String())
	}
	cust := decode[domain.Customer](t, w)

	w = cl.do(t, http.MethodPost, "/api/v1/products", map[string]any{
		"name": "Silver Ring", "sku": "RNG-1", "price": 500,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: %v", w.Code)
	}
	p := decode[domain.Product](t, w)

	w = cl.do(t, http.MethodPost, "/api/v1/inventory/movements", map[string]any{
		"product_id": p.ID, "warehouse": "main", "type": "in", "quantity": 10, "reason": "initial stock",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("stock in: %v %v", w.Code, w.Body.String())
	}

	// order
	w = cl.do(t, http.MethodPost, "/api/v1/orders", map[string]any{
		"customer_id": cust.ID,
		"items":       []map[string]any{{"product_id": p.ID, "quantity": 2, "tax": 33}},
		"shipping":    100,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: %v %v", w.Code, w.Body.String())
	}
	o := decode[domain.Order](t, w)
	if o.Pricing.Total != 1133 {
		t.Fatalf("total %v", o.Pricing.Total)
	}
	if o.OrderNumber == "" {
		t.Fatal("order number missing")
	}

	w = cl.do(t, http.MethodGet, "/api/v1/orders/number/"+o.OrderNumber, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get by number: %v", w.Code)
	}

	// status chain
	w = cl.do(t, http.MethodPost, "/api/v1/orders/"+o.ID+"/status", map[string]any{
		"status": "confirmed", "note": "checked",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm: %v %v", w.Code, w.Body.String())
	}

	// illegal jump
	w = cl.do(t, http.MethodPost, "/api/v1/orders/"+o.ID+"/status", map[string]any{
		"status": "delivered",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("illegal transition: expected 409, got %v", w.Code)
	}

	// payment
	w = cl.do(t, http.MethodPost, "/api/v1/orders/"+o.ID+"/payment", map[string]any{
		"status": "paid", "transaction_id": "txn-1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("payment: %v", w.Code)
	}
	o = decode[domain.Order](t, w)
	if o.Payment.Status != domain.PaymentPaid || o.Payment.PaidAt.IsZero() {
		t.Fatalf("payment not recorded: %+v", o.Payment)
	}
}

func TestOrder_InsufficientStock(t *testing.T) {
	s := setupServer(t)
	cl := loginAs(t, s, domain.RoleAdmin)

	w := cl.do(t, http.MethodPost, "/api/v1/customers", map[string]any{"name": "Jane", "email": "jane@example.com"})
	cust := decode[domain.Customer](t, w)
	w = cl.do(t, http.MethodPost, "/api/v1/products", map[string]any{"name": "Ring", "sku": "R1", "price": 500})
	p := decode[domain.Product](t, w)

	// no stock at all
	w = cl.do(t, http.MethodPost, "/api/v1/orders", map[string]any{
		"customer_id": cust.ID,
		"items":       []map[string]any{{"product_id": p.ID, "quantity": 1}},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v %v", w.Code, w.Body.String())
	}
}

func TestInventoryEndpoints(t *testing.T) {
	s := setupServer(t)
	cl := loginAs(t, s, domain.RoleAdmin)

	w := cl.do(t, http.MethodPost, "/api/v1/products", map[string]any{"name": "Ring", "sku": "R1", "price": 500})
	p := decode[domain.Product](t, w)

	w = cl.do(t, http.MethodPost, "/api/v1/inventory/movements", map[string]any{
		"product_id": p.ID, "warehouse": "main", "type": "in", "quantity": 5, "reason": "initial stock",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("movement: %v %v", w.Code, w.Body.String())
	}

	w = cl.do(t, http.MethodPost, "/api/v1/inventory/reserve", map[string]any{
		"product_id": p.ID, "warehouse": "main", "quantity": 3,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("reserve: %v %v", w.Code, w.Body.String())
	}

	// reserving beyond availability
	w = cl.do(t, http.MethodPost, "/api/v1/inventory/reserve", map[string]any{
		"product_id": p.ID, "warehouse": "main", "quantity": 3,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("over-reserve: expected 400, got %v", w.Code)
	}

	w = cl.do(t, http.MethodPost, "/api/v1/inventory/release", map[string]any{
		"product_id": p.ID, "warehouse": "main", "quantity": 3,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("release: %v", w.Code)
	}

	w = cl.do(t, http.MethodGet, "/api/v1/inventory", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %v", w.Code)
	}
}

func TestCouponEndpoints(t *testing.T) {
	s := setupServer(t)
	cl := loginAs(t, s, domain.RoleAdmin)

	now := time.Now().UTC()
	w := cl.do(t, http.MethodPost, "/api/v1/coupons", map[string]any{
		"code":        "silver10",
		"type":        "percent",
		"value":       10,
		"valid_from":  now.Add(-time.Hour).Format(time.RFC3339),
		"valid_until": now.Add(time.Hour).Format(time.RFC3339),
		"active":      true,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create coupon: %v %v", w.Code, w.Body.String())
	}
	cp := decode[domain.Coupon](t, w)
	if cp.Code != "SILVER10" {
		t.Fatalf("code not uppercased: %v", cp.Code)
	}

	w = cl.do(t, http.MethodGet, "/api/v1/coupons/silver10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get by code: %v", w.Code)
	}

	// duplicate code
	w = cl.do(t, http.MethodPost, "/api/v1/coupons", map[string]any{
		"code":        "SILVER10",
		"type":        "percent",
		"value":       5,
		"valid_from":  now.Add(-time.Hour).Format(time.RFC3339),
		"valid_until": now.Add(time.Hour).Format(time.RFC3339),
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate coupon: expected 409, got %v", w.Code)
	}
}

func TestHTTP_BadRequests(t *testing.T) {
	s := setupServer(t)
	cl := loginAs(t, s, domain.RoleAdmin)

	w := cl.do(t, http.MethodPost, "/api/v1/products", map[string]any{"name": ""})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}
	w = cl.do(t, http.MethodPost, "/api/v1/orders", map[string]any{"customer_id": "x"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}
}
