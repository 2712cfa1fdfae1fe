package auth

import (
	"strings"

	"github.com/techsanasilver/SanaSilver/internal/domain"
)

// PermissionAll глобальный wildcard, покрывающий любое требование
const PermissionAll = "*"

// rolePermissions статичная таблица роль → права. Строится один раз,
// наружу отдаются только копии.
var rolePermissions = map[domain.Role][]string{
	domain.RoleSuperAdmin: {PermissionAll},
	domain.RoleAdmin: {
		"products.*", "orders.*", "coupons.*", "categories.*",
		"users.view", "users.edit",
	},
	domain.RoleManager: {
		"products.view", "products.edit",
		"orders.view", "orders.edit",
		"categories.view",
	},
	domain.RoleStaff: {
		"products.view", "orders.view",
	},
}

// PermissionsFor возвращает набор прав роли; неизвестная роль получает права staff
func PermissionsFor(role domain.Role) []string {
	perms, ok := rolePermissions[role]
	if !ok {
		perms = rolePermissions[domain.RoleStaff]
	}
	return append([]string(nil), perms...)
}

// Satisfies проверяет, покрывает ли набор held требуемое право required.
// Совпадение точное либо по wildcard вида "resource.*"; регистр учитывается.
func Satisfies(held []string, required string) bool {
	resource, _, _ := strings.Cut(required, ".")
	wildcard := resource + ".*"
	for _, p := range held {
		if p == PermissionAll || p == required || p == wildcard {
			return true
		}
	}
	return false
}
