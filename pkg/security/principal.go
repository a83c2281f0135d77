package security

import (
	"github.com/gin-gonic/gin"

	"github.com/SeanMWG/inventory-app/pkg/roles"
)

const principalKey = "principal"

// Principal is the authenticated actor attached to every request by
// the JWT middleware. Name feeds the audit trail's changed_by column.
type Principal struct {
	Name  string
	Roles []roles.Role
}

// HasPermission reports whether any of the principal's roles grants
// the permission.
func (p Principal) HasPermission(perm roles.Permission) bool {
	for _, role := range p.Roles {
		if roles.HasPermission(role, perm) {
			return true
		}
	}
	return false
}

// PrincipalFromContext returns the principal set by JWTMiddleware.
func PrincipalFromContext(c *gin.Context) (Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	principal, ok := value.(Principal)
	return principal, ok
}

func setPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

// ActorName returns the authenticated actor for audit attribution, or
// "system" on unauthenticated internal paths.
func ActorName(c *gin.Context) string {
	if principal, ok := PrincipalFromContext(c); ok {
		return principal.Name
	}
	return "system"
}
