package security

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/SeanMWG/inventory-app/internal/config"
	"github.com/SeanMWG/inventory-app/pkg/roles"
)

// azureRoleMap translates Azure AD app roles to local ones. Claims not
// listed here fall back to the default role.
var azureRoleMap = map[string]roles.Role{
	"admin":  roles.Admin,
	"edit":   roles.Editor,
	"editor": roles.Editor,
	"view":   roles.Viewer,
	"viewer": roles.Viewer,
}

// AzureLoginHandler implements the authorization-code login against
// Azure AD and exchanges the resulting identity for a local JWT.
type AzureLoginHandler struct {
	oauth  *oauth2.Config
	tokens *TokenService
}

func NewAzureLoginHandler(cfg config.AzureConfig, tokens *TokenService) *AzureLoginHandler {
	authority := fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0", cfg.TenantID)

	return &AzureLoginHandler{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{"openid", "profile", "email"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  authority + "/authorize",
				TokenURL: authority + "/token",
			},
		},
		tokens: tokens,
	}
}

func (h *AzureLoginHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/api/auth/azure/login", h.Login)
	router.GET("/api/auth/azure/callback", h.Callback)
}

// stateCookieName holds the per-request OAuth state between the
// redirect and the callback.
const stateCookieName = "azure_oauth_state"

func (h *AzureLoginHandler) Login(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to start login"})
		return
	}

	c.SetCookie(stateCookieName, state, 300, "/", "", true, true)
	c.Redirect(http.StatusFound, h.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

func (h *AzureLoginHandler) Callback(c *gin.Context) {
	expectedState, err := c.Cookie(stateCookieName)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid state parameter"})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing authorization code"})
		return
	}

	token, err := h.oauth.Exchange(c.Request.Context(), code)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Code exchange failed"})
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No identity token in response"})
		return
	}

	name, userRoles, err := identityFromIDToken(rawIDToken)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unable to read identity token"})
		return
	}

	localToken, err := h.tokens.GenerateToken(name, userRoles)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": localToken, "username": name})
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// identityFromIDToken extracts the display name and app roles from the
// Azure AD ID token. The token arrived over TLS straight from the
// token endpoint, so claims are read without a second signature check.
func identityFromIDToken(rawToken string) (string, []roles.Role, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(rawToken, claims); err != nil {
		return "", nil, err
	}

	name := "Unknown User"
	for _, claim := range []string{"name", "preferred_username", "email"} {
		if value, ok := claims[claim].(string); ok && value != "" {
			name = value
			break
		}
	}

	var userRoles []roles.Role
	if rawRoles, ok := claims["roles"].([]interface{}); ok {
		for _, raw := range rawRoles {
			claimRole, ok := raw.(string)
			if !ok {
				continue
			}
			if mapped, ok := azureRoleMap[strings.ToLower(claimRole)]; ok {
				userRoles = append(userRoles, mapped)
			}
		}
	}
	if len(userRoles) == 0 {
		userRoles = []roles.Role{roles.DefaultRole}
	}

	return name, userRoles, nil
}
