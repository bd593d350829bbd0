// Package authz holds the single authorization rule set: role checks for
// route groups and ownership checks for bookings.
package authz

import (
	"coworkspace/internal/domain"
	"coworkspace/internal/pkg/apperror"
)

var (
	ErrUnauthenticated = apperror.New(apperror.KindUnauthenticated, "Not authorized to access this route")
	ErrForbidden       = apperror.New(apperror.KindForbidden, "Not allowed to access this resource")
)

// AnyRole is the role set for operations open to every authenticated caller.
var AnyRole = []domain.UserRole{domain.RoleUser, domain.RoleAdmin}

// NoOwner marks a check that has no owning user, such as catalog routes.
const NoOwner int64 = 0

type Guard struct{}

func NewGuard() *Guard { return &Guard{} }

// CanAccess allows the identity when its role is in roles (any role if
// roles is empty) and, for owned resources, when it owns the resource or
// is an admin.
func (g *Guard) CanAccess(identity domain.Identity, ownerID int64, roles ...domain.UserRole) error {
	if !identity.Authenticated() {
		return ErrUnauthenticated
	}
	if len(roles) > 0 && !hasRole(identity.Role, roles) {
		return ErrForbidden.WithMessage("User role " + string(identity.Role) + " is not authorized to access this route")
	}
	if ownerID == NoOwner || identity.IsAdmin() {
		return nil
	}
	if ownerID != identity.UserID {
		return ErrForbidden.WithMessage("Not authorized to access this booking")
	}
	return nil
}

// RequireAdmin is the catalog mutation policy.
func (g *Guard) RequireAdmin(identity domain.Identity) error {
	return g.CanAccess(identity, NoOwner, domain.RoleAdmin)
}

func hasRole(role domain.UserRole, roles []domain.UserRole) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
