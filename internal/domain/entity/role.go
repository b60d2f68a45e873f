package entity

import (
	"slices"
	"time"
)

// Permisos (capability tags) asignables a un rol.
const (
	PermAll            = "*"
	PermItemsRead      = "items:read"
	PermItemsWrite     = "items:write"
	PermCustomersRead  = "customers:read"
	PermCustomersWrite = "customers:write"
	PermSuppliersRead  = "suppliers:read"
	PermSuppliersWrite = "suppliers:write"
	PermSalesRead      = "sales:read"
	PermSalesWrite     = "sales:write"
	PermPurchasesRead  = "purchases:read"
	PermPurchasesWrite = "purchases:write"
	PermPaymentsWrite  = "payments:write"
	PermExpensesRead   = "expenses:read"
	PermExpensesWrite  = "expenses:write"
	PermReportsRead    = "reports:read"
	PermPOS            = "pos:use"
	PermSettingsWrite  = "settings:write"
	PermRolesWrite     = "roles:write"
)

// AllPermissions catálogo de permisos válidos (sin el comodín).
var AllPermissions = []string{
	PermItemsRead, PermItemsWrite,
	PermCustomersRead, PermCustomersWrite,
	PermSuppliersRead, PermSuppliersWrite,
	PermSalesRead, PermSalesWrite,
	PermPurchasesRead, PermPurchasesWrite,
	PermPaymentsWrite,
	PermExpensesRead, PermExpensesWrite,
	PermReportsRead, PermPOS,
	PermSettingsWrite, PermRolesWrite,
}

// Role agrupa permisos; los usuarios referencian un rol de su empresa.
type Role struct {
	ID          string
	CompanyID   string
	Name        string
	Permissions []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Can indica si el rol concede el permiso (el comodín "*" concede todos).
func (r *Role) Can(permission string) bool {
	return slices.Contains(r.Permissions, PermAll) || slices.Contains(r.Permissions, permission)
}

// IsValidPermission valida un tag contra el catálogo.
func IsValidPermission(p string) bool {
	return p == PermAll || slices.Contains(AllPermissions, p)
}
