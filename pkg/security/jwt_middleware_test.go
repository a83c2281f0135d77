package security

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/SeanMWG/inventory-app/pkg/models"
	"github.com/SeanMWG/inventory-app/pkg/roles"
)

func setupAuthRouter(tokens *TokenService, perm roles.Permission) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", tokens.JWTMiddleware(), RequirePermission(perm), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"actor": ActorName(c)})
	})
	return router
}

func requestWithToken(router *gin.Engine, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

// A generated token passes the middleware and yields the principal it
// was issued for.
func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("test-secret")
	router := setupAuthRouter(tokens, roles.PermissionEdit)

	token, err := tokens.GenerateToken("alice", []roles.Role{roles.Editor})
	assert.NoError(t, err)

	w := requestWithToken(router, token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"actor":"alice"`)
}

func TestMissingAuthorizationHeader(t *testing.T) {
	tokens := NewTokenService("test-secret")
	router := setupAuthRouter(tokens, roles.PermissionView)

	w := requestWithToken(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTokenSignedWithWrongSecret(t *testing.T) {
	tokens := NewTokenService("test-secret")
	router := setupAuthRouter(tokens, roles.PermissionView)

	other := NewTokenService("other-secret")
	token, err := other.GenerateToken("alice", []roles.Role{roles.Admin})
	assert.NoError(t, err)

	w := requestWithToken(router, token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGarbageToken(t *testing.T) {
	tokens := NewTokenService("test-secret")
	router := setupAuthRouter(tokens, roles.PermissionView)

	w := requestWithToken(router, "not-a-jwt")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequirePermissionDenied(t *testing.T) {
	tokens := NewTokenService("test-secret")
	router := setupAuthRouter(tokens, roles.PermissionAdmin)

	token, err := tokens.GenerateToken("bob", []roles.Role{roles.Viewer})
	assert.NoError(t, err)

	w := requestWithToken(router, token)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequirePermissionWithoutPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// Route guard with no middleware in front of it.
	router.GET("/protected", RequirePermission(roles.PermissionView), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGenerateTokenForUser(t *testing.T) {
	tokens := NewTokenService("test-secret")
	router := setupAuthRouter(tokens, roles.PermissionAdmin)

	token, err := tokens.GenerateTokenForUser(&models.User{Username: "carol", Role: "admin"})
	assert.NoError(t, err)

	w := requestWithToken(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

// An unrecognized role claim falls back to viewer.
func TestGenerateTokenForUserUnknownRole(t *testing.T) {
	tokens := NewTokenService("test-secret")

	token, err := tokens.GenerateTokenForUser(&models.User{Username: "dave", Role: "superuser"})
	assert.NoError(t, err)

	viewRouter := setupAuthRouter(tokens, roles.PermissionView)
	assert.Equal(t, http.StatusOK, requestWithToken(viewRouter, token).Code)

	editRouter := setupAuthRouter(tokens, roles.PermissionEdit)
	assert.Equal(t, http.StatusForbidden, requestWithToken(editRouter, token).Code)
}

func TestPrincipalFromClaims(t *testing.T) {
	tests := []struct {
		name          string
		claims        jwt.MapClaims
		expectedName  string
		expectedRoles []roles.Role
	}{
		{
			name:          "full claims",
			claims:        jwt.MapClaims{"name": "alice", "roles": []interface{}{"editor"}},
			expectedName:  "alice",
			expectedRoles: []roles.Role{roles.Editor},
		},
		{
			name:          "missing name",
			claims:        jwt.MapClaims{"roles": []interface{}{"admin"}},
			expectedName:  "Unknown User",
			expectedRoles: []roles.Role{roles.Admin},
		},
		{
			name:          "unknown roles filtered out",
			claims:        jwt.MapClaims{"name": "bob", "roles": []interface{}{"superuser", "viewer"}},
			expectedName:  "bob",
			expectedRoles: []roles.Role{roles.Viewer},
		},
		{
			name:          "no roles falls back to viewer",
			claims:        jwt.MapClaims{"name": "carol"},
			expectedName:  "carol",
			expectedRoles: []roles.Role{roles.DefaultRole},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			principal := principalFromClaims(tt.claims)
			assert.Equal(t, tt.expectedName, principal.Name)
			assert.Equal(t, tt.expectedRoles, principal.Roles)
		})
	}
}

func TestActorNameFallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Equal(t, "system", ActorName(c))

	setPrincipal(c, Principal{Name: "alice", Roles: []roles.Role{roles.Viewer}})
	assert.Equal(t, "alice", ActorName(c))
}
