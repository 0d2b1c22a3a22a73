// Package gate resolves a session role into an explicit permission set.
// Screens and handlers ask the set instead of comparing role strings, so
// capability differences live in one place and sessions carry their
// permissions from login onwards.
package gate

import "strings"

// Permission is an allowed action on a resource type.
// Format: "resource:action" (e.g. "item:create", "catalog:filter").
type Permission string

// NewPermission creates a permission from resource type and action.
func NewPermission(resourceType, action string) Permission {
	return Permission(resourceType + ":" + action)
}

// Parse splits a permission into resource type and action.
func (p Permission) Parse() (resourceType, action string) {
	parts := strings.SplitN(string(p), ":", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}

// Wildcards for super permissions
const (
	WildcardAll                     = "*"
	PermissionSuperAdmin Permission = "*:*"
)

// Matches checks if this permission matches a requested permission.
// Supports wildcards: "*:*" matches all, "order:*" matches all order actions.
func (p Permission) Matches(requested Permission) bool {
	if p == PermissionSuperAdmin {
		return true
	}
	if p == requested {
		return true
	}
	// Resource wildcard: "order:*" matches "order:create"
	res, act := p.Parse()
	reqRes, _ := requested.Parse()
	if res == reqRes && act == WildcardAll {
		return true
	}
	return false
}

// Set is an immutable permission set resolved once at session start.
type Set struct {
	role  string
	perms []Permission
}

// Role returns the role code the set was resolved from.
func (s Set) Role() string { return s.role }

// Permissions returns all permissions in this set.
func (s Set) Permissions() []Permission {
	out := make([]Permission, len(s.perms))
	copy(out, s.perms)
	return out
}

// Has checks if the set grants the requested permission, honoring
// wildcard entries.
func (s Set) Has(requested Permission) bool {
	for _, p := range s.perms {
		if p.Matches(requested) {
			return true
		}
	}
	return false
}
