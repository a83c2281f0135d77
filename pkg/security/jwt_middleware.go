package security

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/SeanMWG/inventory-app/pkg/models"
	"github.com/SeanMWG/inventory-app/pkg/roles"
)

const tokenLifetime = 12 * time.Hour

// TokenService issues and validates the application's own JWTs. Both
// local login and the Azure AD callback end in one of these tokens.
type TokenService struct {
	secret []byte
}

func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

func (s *TokenService) GenerateToken(name string, userRoles []roles.Role) (string, error) {
	roleNames := make([]string, 0, len(userRoles))
	for _, r := range userRoles {
		roleNames = append(roleNames, r.String())
	}

	claims := jwt.MapClaims{
		"name":  name,
		"roles": roleNames,
		"exp":   time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) GenerateTokenForUser(user *models.User) (string, error) {
	role := roles.Role(user.Role)
	if !role.IsValid() {
		role = roles.DefaultRole
	}
	return s.GenerateToken(user.Username, []roles.Role{role})
}

// JWTMiddleware validates the bearer token and attaches a typed
// Principal to the request context.
func (s *TokenService) JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return s.secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		setPrincipal(c, principalFromClaims(claims))
		c.Next()
	}
}

// RequirePermission guards a route group with a capability check
// against the static role→permission table.
func RequirePermission(perm roles.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFromContext(c)
		if !ok || !principal.HasPermission(perm) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			return
		}
		c.Next()
	}
}

func principalFromClaims(claims jwt.MapClaims) Principal {
	principal := Principal{Name: "Unknown User"}

	if name, ok := claims["name"].(string); ok && name != "" {
		principal.Name = name
	}

	if rawRoles, ok := claims["roles"].([]interface{}); ok {
		for _, raw := range rawRoles {
			if name, ok := raw.(string); ok {
				role := roles.Role(name)
				if role.IsValid() {
					principal.Roles = append(principal.Roles, role)
				}
			}
		}
	}
	if len(principal.Roles) == 0 {
		principal.Roles = []roles.Role{roles.DefaultRole}
	}

	return principal
}
