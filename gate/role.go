package gate

// Permissions used across the application. Catalog browsing itself is
// open to every session including guests; filter/sort/vendor controls and
// all mutations are gated.
const (
	PermCatalogView   Permission = "catalog:view"
	PermCatalogFilter Permission = "catalog:filter"
	PermItemCreate    Permission = "item:create"
	PermItemUpdate    Permission = "item:update"
	PermItemDelete    Permission = "item:delete"
	PermVendorCreate  Permission = "vendor:create"
	PermOrderView     Permission = "order:view"
	PermOrderCreate   Permission = "order:create"
	PermOrderUpdate   Permission = "order:update"
	PermOrderDelete   Permission = "order:delete"
)

// ForRole resolves a role code into its permission set. Unknown role
// codes resolve to the guest set.
func ForRole(roleCode string) Set {
	switch roleCode {
	case "admin":
		return Set{role: roleCode, perms: []Permission{PermissionSuperAdmin}}
	case "manager":
		return Set{role: roleCode, perms: []Permission{
			PermCatalogView,
			PermCatalogFilter,
			PermOrderView,
		}}
	case "client", "guest":
		return Set{role: roleCode, perms: []Permission{PermCatalogView}}
	default:
		return Set{role: "guest", perms: []Permission{PermCatalogView}}
	}
}
