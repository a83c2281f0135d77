package auditlog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SeanMWG/inventory-app/pkg/apperrors"
	"github.com/SeanMWG/inventory-app/pkg/models"
	"github.com/SeanMWG/inventory-app/pkg/roles"
	"github.com/SeanMWG/inventory-app/pkg/security"
)

// AuditReader is the read surface for change history.
type AuditReader interface {
	GetByAssetTag(assetTag string) ([]models.AuditEntry, error)
}

type AuditLogHandler struct {
	repo AuditReader
}

func NewHandler(repo AuditReader) *AuditLogHandler {
	return &AuditLogHandler{repo: repo}
}

func (h *AuditLogHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/api/audit/:asset_tag", security.RequirePermission(roles.PermissionView), h.GetAuditLog)
}

func (h *AuditLogHandler) GetAuditLog(c *gin.Context) {
	assetTag := c.Param("asset_tag")
	if assetTag == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing asset tag"})
		return
	}

	entries, err := h.repo.GetByAssetTag(assetTag)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.ClientMessage(err)})
		return
	}

	c.JSON(http.StatusOK, entries)
}
