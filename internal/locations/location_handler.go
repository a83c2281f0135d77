package locations

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SeanMWG/inventory-app/pkg/apperrors"
	"github.com/SeanMWG/inventory-app/pkg/models"
	"github.com/SeanMWG/inventory-app/pkg/roles"
	"github.com/SeanMWG/inventory-app/pkg/security"
)

// LocationStore is the directory surface the handler talks to.
type LocationStore interface {
	GetLocations() ([]models.Location, error)
	Validate(siteName, roomNumber string) (models.ValidateLocationResponse, error)
	PersistLocation(ctx context.Context, req models.LocationRequest, changedBy string) (*models.Location, error)
	UpdateLocation(ctx context.Context, locationID int, patch models.LocationPatch, changedBy string) (*models.Location, error)
	RemoveLocation(ctx context.Context, locationID int, changedBy string) error
}

type LocationHandler struct {
	repo LocationStore
}

func NewLocationHandler(repo LocationStore) *LocationHandler {
	return &LocationHandler{repo: repo}
}

func (h *LocationHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/api/locations", security.RequirePermission(roles.PermissionView), h.GetLocations)
	router.POST("/api/locations/validate", security.RequirePermission(roles.PermissionView), h.ValidateLocation)
	router.POST("/api/locations", security.RequirePermission(roles.PermissionEdit), h.CreateLocation)
	router.PUT("/api/locations/:id", security.RequirePermission(roles.PermissionEdit), h.UpdateLocation)
	router.DELETE("/api/locations/:id", security.RequirePermission(roles.PermissionAdmin), h.DeleteLocation)
}

func (h *LocationHandler) GetLocations(c *gin.Context) {
	locations, err := h.repo.GetLocations()
	if err != nil {
		c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.ClientMessage(err)})
		return
	}

	c.JSON(http.StatusOK, locations)
}

func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req models.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	location, err := h.repo.PersistLocation(c.Request.Context(), req, security.ActorName(c))
	if err != nil {
		c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.ClientMessage(err)})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Location created successfully",
		"location_id": location.ID,
	})
}

func (h *LocationHandler) UpdateLocation(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid location id"})
		return
	}

	var patch models.LocationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if _, err := h.repo.UpdateLocation(c.Request.Context(), locationID, patch, security.ActorName(c)); err != nil {
		c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.ClientMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location updated successfully"})
}

func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid location id"})
		return
	}

	if err := h.repo.RemoveLocation(c.Request.Context(), locationID, security.ActorName(c)); err != nil {
		c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.ClientMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Location deleted successfully"})
}

func (h *LocationHandler) ValidateLocation(c *gin.Context) {
	var req models.ValidateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	result, err := h.repo.Validate(req.SiteName, req.RoomNumber)
	if err != nil {
		c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.ClientMessage(err)})
		return
	}

	c.JSON(http.StatusOK, result)
}
