// Package guard is the single authorization policy for the service.
// Every order- or catalog-scoped operation resolves its decision here,
// with the caller identity passed in explicitly.
package guard

import "github.com/KingDev1404/freshbulk/internal/models"

// Identity is the resolved caller of a request: the session layer turns a
// token into one of these, and services never look at anything else.
type Identity struct {
	UserID uint
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// AdminOnly gates catalog mutations and order status changes.
func AdminOnly(id Identity) bool {
	return id.IsAdmin()
}

// OwnerOrAdmin gates single-order reads: the owner may look at their own
// order, an admin at any.
func OwnerOrAdmin(id Identity, ownerID uint) bool {
	return id.IsAdmin() || id.UserID == ownerID
}
