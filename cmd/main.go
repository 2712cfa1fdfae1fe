package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/techsanasilver/SanaSilver/internal/auth"
	"github.com/techsanasilver/SanaSilver/internal/config"
	"github.com/techsanasilver/SanaSilver/internal/domain"
	httpapi "github.com/techsanasilver/SanaSilver/internal/http"
	"github.com/techsanasilver/SanaSilver/internal/repository"
	"github.com/techsanasilver/SanaSilver/internal/service"

	_ "github.com/techsanasilver/SanaSilver/docs"
)

func main() {
	cfg := config.Load()

	store := repository.NewMemoryStore(cfg.OrderPrefix)
	adminsRepo := repository.NewMemoryAdmins(store)
	customersRepo := repository.NewMemoryCustomers(store)
	categoriesRepo := repository.NewMemoryCategories(store)
	couponsRepo := repository.NewMemoryCoupons(store)
	inventoryRepo := repository.NewMemoryInventory(store)
	ordersRepo := repository.NewMemoryOrders(store)
	tx := repository.NewMemoryTx(store)

	issuer := auth.TokenIssuer{
		AccessKey:  []byte(cfg.AccessSecret),
		RefreshKey: []byte(cfg.RefreshSecret),
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	}

	adminsSvc := service.NewAdminService(adminsRepo, tx, issuer, cfg.BcryptCost)
	productsSvc := service.NewProductService(store)
	inventorySvc := service.NewInventoryService(inventoryRepo, tx)
	ordersSvc := service.NewOrderService(ordersRepo, customersRepo, store, couponsRepo, inventorySvc, tx, cfg.DefaultWarehouse)
	categoriesSvc := service.NewCategoryService(categoriesRepo)
	customersSvc := service.NewCustomerService(customersRepo)
	couponsSvc := service.NewCouponService(couponsRepo)

	seedSuperAdmin(adminsSvc, cfg)

	srv := httpapi.NewServer(httpapi.Deps{
		Admins:     adminsSvc,
		Products:   productsSvc,
		Orders:     ordersSvc,
		Inventory:  inventorySvc,
		Categories: categoriesSvc,
		Customers:  customersSvc,
		Coupons:    couponsSvc,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	})

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// seedSuperAdmin создаёт стартовую учётку, если её ещё нет
func seedSuperAdmin(admins *service.AdminService, cfg config.Config) {
	_, err := admins.Register(context.Background(), service.RegisterInput{
		Name:     "Root",
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPass,
		Role:     domain.RoleSuperAdmin,
	})
	if err != nil && !errors.Is(err, repository.ErrConflict) {
		log.Fatalf("seed admin: %v", err)
	}
}
