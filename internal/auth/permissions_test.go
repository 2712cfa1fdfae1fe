package auth

import (
	"reflect"
	"testing"

	"github.com/techsanasilver/SanaSilver/internal/domain"
)

func TestPermissionsFor_Deterministic(t *testing.T) {
	roles := []domain.Role{domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleManager, domain.RoleStaff}
	for _, r := range roles {
		first := PermissionsFor(r)
		if len(first) == 0 {
			t.Fatalf("role %v: empty permissions", r)
		}
		second := PermissionsFor(r)
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("role %v: permissions differ between calls", r)
		}
	}
}

func TestPermissionsFor_Manager(t *testing.T) {
	want := []string{"products.view", "products.edit", "orders.view", "orders.edit", "categories.view"}
	if got := PermissionsFor(domain.RoleManager); !reflect.DeepEqual(got, want) {
		t.Fatalf("manager permissions = %v, want %v", got, want)
	}
}

func TestPermissionsFor_ReturnsCopy(t *testing.T) {
	got := PermissionsFor(domain.RoleStaff)
	got[0] = "tampered"
	if clean := PermissionsFor(domain.RoleStaff); clean[0] == "tampered" {
		t.Fatalf("table mutated through returned slice")
	}
}

func TestSatisfies(t *testing.T) {
	cases := []struct {
		held     []string
		required string
		want     bool
	}{
		{[]string{"products.*"}, "products.edit", true},
		{[]string{"orders.view"}, "orders.edit", false},
		{[]string{"*"}, "anything.at.all", true},
		{[]string{"products.view"}, "products.view", true},
		{[]string{"products.*"}, "orders.edit", false},
		{[]string{"Products.*"}, "products.edit", false}, // case-sensitive
		{nil, "products.view", false},
	}
	for _, tc := range cases {
		if got := Satisfies(tc.held, tc.required); got != tc.want {
			t.Fatalf("Satisfies(%v, %q) = %v, want %v", tc.held, tc.required, got, tc.want)
		}
	}
}
