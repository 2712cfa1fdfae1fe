package service

import (
	"context"
	"errors"
	"testing"

	"github.com/techsanasilver/SanaSilver/internal/domain"
	"github.com/techsanasilver/SanaSilver/internal/repository"
)

func setupProducts(t *testing.T) *ProductService {
	t.Helper()
	return NewProductService(repository.NewMemoryStore("SS"))
}

func TestProductCRUD(t *testing.T) {
	ctx := context.Background()
	s := setupProducts(t)

	p, err := s.Create(ctx, domain.Product{
		Name:         "Silver Chain",
		SKU:          "CHN-1",
		Price:        1200,
		MakingCharge: 150,
		Active:       true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == "" {
		t.Fatal("id not assigned")
	}

	got, err := s.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Silver Chain" || got.Price != 1200 {
		t.Fatalf("got %+v", got)
	}

	got.Price = 1300
	if _, err := s.Update(ctx, *got); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = s.GetByID(ctx, p.ID)
	if got.Price != 1300 {
		t.Fatalf("price not updated: %v", got.Price)
	}

	if err := s.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetByID(ctx, p.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProductCreate_Validation(t *testing.T) {
	ctx := context.Background()
	s := setupProducts(t)

	cases := []domain.Product{
		{SKU: "X", Price: 1},                       // no name
		{Name: "X", Price: 1},                      // no sku
		{Name: "X", SKU: "X", Price: -1},           // negative price
		{Name: "X", SKU: "X", MakingCharge: -1},    // negative making charge
		{Name: "X", SKU: "X", Variants: []domain.Variant{{Price: 1}}}, // variant without sku
	}
	for i, c := range cases {
		if _, err := s.Create(ctx, c); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: expected invalid input, got %v", i, err)
		}
	}
}

func TestProductCreate_SKUConflict(t *testing.T) {
	ctx := context.Background()
	s := setupProducts(t)

	if _, err := s.Create(ctx, domain.Product{Name: "A", SKU: "DUP"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Create(ctx, domain.Product{Name: "B", SKU: "DUP"}); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestAddVariant(t *testing.T) {
	ctx := context.Background()
	s := setupProducts(t)

	p, err := s.Create(ctx, domain.Product{Name: "Ring", SKU: "RNG-9", Price: 700})
	if err != nil {
		t.Fatal(err)
	}

	p, err = s.AddVariant(ctx, p.ID, domain.Variant{SKU: "RNG-9-S", Size: "S", Price: 650})
	if err != nil {
		t.Fatalf("add variant: %v", err)
	}
	if len(p.Variants) != 1 || p.Variants[0].ID == "" {
		t.Fatalf("variant not added: %+v", p.Variants)
	}
	if p.UnitPrice(p.Variants[0].ID) != 650 {
		t.Fatalf("variant price not used: %v", p.UnitPrice(p.Variants[0].ID))
	}

	// duplicate variant sku within the product
	if _, err := s.AddVariant(ctx, p.ID, domain.Variant{SKU: "RNG-9-S", Price: 600}); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestProductList_Filter(t *testing.T) {
	ctx := context.Background()
	s := setupProducts(t)

	seed := []domain.Product{
		{Name: "Silver Ring", SKU: "R1", Price: 500, CategoryID: "rings"},
		{Name: "Gold Ring", SKU: "R2", Price: 5000, CategoryID: "rings"},
		{Name: "Silver Chain", SKU: "C1", Price: 900, CategoryID: "chains"},
	}
	for _, p := range seed {
		if _, err := s.Create(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	list, err := s.List(ctx, repository.ProductFilter{NameSubstring: "silver"})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("name filter: got %d, want 2", len(list))
	}

	max := 1000.0
	list, _ = s.List(ctx, repository.ProductFilter{CategoryID: "rings", MaxPrice: &max})
	if len(list) != 1 || list[0].SKU != "R1" {
		t.Fatalf("combined filter: %+v", list)
	}
}

func TestBulkDelete_PartialFailure(t *testing.T) {
	ctx := context.Background()
	s := setupProducts(t)

	p1, _ := s.Create(ctx, domain.Product{Name: "A", SKU: "A1"})
	p2, _ := s.Create(ctx, domain.Product{Name: "B", SKU: "B1"})

	results := s.BulkDelete(ctx, []string{p1.ID, "missing", p2.ID})
	if len(results) != 3 {
		t.Fatalf("got %d results", len(results))
	}
	byID := make(map[string]BulkDeleteResult, len(results))
	for _, r := range results {
		byID[r.ID] = r
	}
	if byID[p1.ID].Error != "" || byID[p2.ID].Error != "" {
		t.Fatalf("existing products should delete cleanly: %+v", results)
	}
	if byID["missing"].Error == "" {
		t.Fatal("missing product should carry an error")
	}

	if _, err := s.GetByID(ctx, p1.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("p1 not deleted: %v", err)
	}
}
