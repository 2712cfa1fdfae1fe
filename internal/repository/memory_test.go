package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/techsanasilver/SanaSilver/internal/domain"
)

func TestMemoryStore_ProductCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("SS")

	p := domain.Product{Name: "Ring", SKU: "RNG-1", Price: 500, MakingCharge: 50}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("no id")
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("get: %v", err)
	}

	p.Price = 520
	if err := store.Update(ctx, &p); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := store.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, p.ID); err == nil {
		t.Fatalf("expected not found")
	}
}

func TestMemoryStore_SKUConflict(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("SS")

	p := domain.Product{Name: "Ring", SKU: "RNG-1", Price: 500}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}
	dup := domain.Product{Name: "Other", SKU: "RNG-1", Price: 100}
	if err := store.Create(ctx, &dup); err != ErrConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestMemoryAdmins_EmailCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("SS")
	admins := NewMemoryAdmins(store)

	a := domain.Admin{Name: "A", Email: "Admin@Example.com", Role: domain.RoleStaff}
	if err := admins.Create(ctx, &a); err != nil {
		t.Fatalf("create: %v", err)
	}
	if a.Email != "admin@example.com" {
		t.Fatalf("email not lowercased: %v", a.Email)
	}

	dup := domain.Admin{Name: "B", Email: "ADMIN@example.COM", Role: domain.RoleStaff}
	if err := admins.Create(ctx, &dup); err != ErrConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	got, err := admins.GetByEmail(ctx, "ADMIN@EXAMPLE.COM")
	if err != nil || got.ID != a.ID {
		t.Fatalf("lookup by mixed case: %v", err)
	}
}

func TestMemoryOrders_NumberFormatAndSequence(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("SS")
	orders := NewMemoryOrders(store)

	o1 := domain.Order{CustomerID: "c1", Items: []domain.OrderItem{{ProductID: "p1", Quantity: 1}}}
	o2 := domain.Order{CustomerID: "c1", Items: []domain.OrderItem{{ProductID: "p1", Quantity: 1}}}
	if err := orders.Create(ctx, &o1); err != nil {
		t.Fatal(err)
	}
	if err := orders.Create(ctx, &o2); err != nil {
		t.Fatal(err)
	}

	day := time.Now().UTC().Format("20060102")
	want1 := fmt.Sprintf("SS%s0001", day)
	want2 := fmt.Sprintf("SS%s0002", day)
	if o1.OrderNumber != want1 || o2.OrderNumber != want2 {
		t.Fatalf("numbers %v %v, want %v %v", o1.OrderNumber, o2.OrderNumber, want1, want2)
	}

	// number is immutable on update
	o1.OrderNumber = "HACKED"
	if err := orders.Update(ctx, &o1); err != nil {
		t.Fatal(err)
	}
	got, _ := orders.GetByID(ctx, o1.ID)
	if got.OrderNumber != want1 {
		t.Fatalf("number mutated: %v", got.OrderNumber)
	}
}

func TestMemoryOrders_ConcurrentNumbering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("SS")
	orders := NewMemoryOrders(store)

	const n = 50
	var wg sync.WaitGroup
	nums := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			o := domain.Order{CustomerID: "c1", Items: []domain.OrderItem{{ProductID: "p1", Quantity: 1}}}
			if err := orders.Create(ctx, &o); err != nil {
				t.Errorf("create: %v", err)
				return
			}
			nums[i] = o.OrderNumber
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, n)
	for _, num := range nums {
		if num == "" || !strings.HasPrefix(num, "SS") {
			t.Fatalf("bad number %q", num)
		}
		if seen[num] {
			t.Fatalf("duplicate number %v", num)
		}
		seen[num] = true
	}
}

func TestMemoryTx_TransactionalUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("SS")
	tx := NewMemoryTx(store)
	inv := NewMemoryInventory(store)

	rec := domain.Inventory{Key: domain.InventoryKey{ProductID: "p1", Warehouse: "main"}, Stock: 5}
	if err := inv.Create(ctx, &rec); err != nil {
		t.Fatal(err)
	}

	// emulate atomic stock decrease
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		r, err := inv.GetByKey(ctx, rec.Key)
		if err != nil {
			return err
		}
		r.Stock -= 3
		return inv.Update(ctx, r)
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	r, _ := inv.GetByKey(context.Background(), rec.Key)
	if r.Stock != 2 {
		t.Fatalf("stock expected 2, got %v", r.Stock)
	}
}

func TestMemoryTx_Nested(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("SS")
	tx := NewMemoryTx(store)

	// nested transaction must not deadlock
	done := make(chan error, 1)
	go func() {
		done <- tx.WithTransaction(ctx, func(ctx context.Context) error {
			return tx.WithTransaction(ctx, func(ctx context.Context) error { return nil })
		})
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("nested tx: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("nested tx deadlocked")
	}
}

func TestList_Filtering(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("SS")
	add := func(n string, price float64) {
		p := domain.Product{Name: n, SKU: n, Price: price}
		if err := store.Create(ctx, &p); err != nil {
			t.Fatal(err)
		}
	}
	add("Silver Ring", 100)
	add("Silver Chain", 50)
	add("Gold Plated Ring", 150)

	// name contains
	list, _ := store.List(ctx, ProductFilter{NameSubstring: "ring"})
	if len(list) != 2 {
		t.Fatalf("name filter: got %d", len(list))
	}

	// min
	min := 100.0
	list, _ = store.List(ctx, ProductFilter{MinPrice: &min})
	for _, p := range list {
		if p.Price < min {
			t.Fatalf("min filter fail")
		}
	}

	// max
	max := 100.0
	list, _ = store.List(ctx, ProductFilter{MaxPrice: &max})
	for _, p := range list {
		if p.Price > max {
			t.Fatalf("max filter fail")
		}
	}
}
