package hardware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SeanMWG/inventory-app/pkg/apperrors"
	"github.com/SeanMWG/inventory-app/pkg/models"
	"github.com/SeanMWG/inventory-app/pkg/roles"
	"github.com/SeanMWG/inventory-app/pkg/security"
)

// HardwareStore is the inventory surface the handler talks to.
type HardwareStore interface {
	Search(filters SearchFilters) (*models.PaginatedInventory, error)
	GetByAssetTag(assetTag string) (*models.InventoryItem, error)
	PersistItem(ctx context.Context, req models.HardwareRequest, changedBy string) (*models.InventoryItem, error)
	BulkPersist(ctx context.Context, reqs []models.HardwareRequest, changedBy string) ([]models.InventoryItem, []string, error)
	UpdateItem(ctx context.Context, inventoryID int, patch models.HardwarePatch, changedBy string) (*models.InventoryItem, error)
}

type HardwareHandler struct {
	repo HardwareStore
}

func NewHardwareHandler(repo HardwareStore) *HardwareHandler {
	return &HardwareHandler{repo: repo}
}

func (h *HardwareHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/api/hardware", security.RequirePermission(roles.PermissionView), h.GetHardware)
	router.GET("/api/hardware/tag/:asset_tag", security.RequirePermission(roles.PermissionView), h.GetHardwareByTag)
	router.POST("/api/hardware", security.RequirePermission(roles.PermissionEdit), h.CreateHardware)
	router.POST("/api/hardware/bulk", security.RequirePermission(roles.PermissionEdit), h.BulkCreateHardware)
	router.PUT("/api/hardware/:id", security.RequirePermission(roles.PermissionEdit), h.UpdateHardware)
}

func (h *HardwareHandler) GetHardwareByTag(c *gin.Context) {
	item, err := h.repo.GetByAssetTag(c.Param("asset_tag"))
	if err != nil {
		c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.ClientMessage(err)})
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *HardwareHandler) GetHardware(c *gin.Context) {
	filters, err := filtersFromQuery(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters", "details": err.Error()})
		return
	}

	result, err := h.repo.Search(filters)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.ClientMessage(err)})
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *HardwareHandler) CreateHardware(c *gin.Context) {
	var req models.HardwareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	item, err := h.repo.PersistItem(c.Request.Context(), req, security.ActorName(c))
	if err != nil {
		c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.ClientMessage(err)})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Hardware added successfully",
		"inventory_id": item.ID,
	})
}

func (h *HardwareHandler) BulkCreateHardware(c *gin.Context) {
	var req models.BulkHardwareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	created, rowErrors, err := h.repo.BulkPersist(c.Request.Context(), req.Items, security.ActorName(c))
	if err != nil {
		c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.ClientMessage(err)})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Bulk import completed",
		"created": len(created),
		"errors":  rowErrors,
	})
}

func (h *HardwareHandler) UpdateHardware(c *gin.Context) {
	inventoryID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory id"})
		return
	}

	var patch models.HardwarePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if _, err := h.repo.UpdateItem(c.Request.Context(), inventoryID, patch, security.ActorName(c)); err != nil {
		c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.ClientMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Hardware updated successfully"})
}

func filtersFromQuery(c *gin.Context) (SearchFilters, error) {
	filters := SearchFilters{
		SiteName:     c.Query("site_name"),
		RoomNumber:   c.Query("room_number"),
		RoomName:     c.Query("room_name"),
		AssetTag:     c.Query("asset_tag"),
		AssetType:    c.Query("asset_type"),
		Model:        c.Query("model"),
		SerialNumber: c.Query("serial_number"),
		Notes:        c.Query("notes"),
		AssignedTo:   c.Query("assigned_to"),
		Search:       c.Query("search"),
		Page:         1,
		PageSize:     DefaultPageSize,
	}

	var err error
	if raw := c.Query("page"); raw != "" {
		if filters.Page, err = strconv.Atoi(raw); err != nil {
			return filters, err
		}
	}
	if raw := c.Query("page_size"); raw != "" {
		if filters.PageSize, err = strconv.Atoi(raw); err != nil {
			return filters, err
		}
	}

	dateFields := []struct {
		param  string
		target **time.Time
	}{
		{"date_assigned_from", &filters.DateAssignedFrom},
		{"date_assigned_to", &filters.DateAssignedTo},
		{"date_decommissioned_from", &filters.DateDecommissionedFrom},
		{"date_decommissioned_to", &filters.DateDecommissionedTo},
	}
	for _, field := range dateFields {
		raw := c.Query(field.param)
		if raw == "" {
			continue
		}
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filters, err
		}
		*field.target = &parsed
	}

	return filters, nil
}
