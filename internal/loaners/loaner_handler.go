package loaners

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SeanMWG/inventory-app/pkg/apperrors"
	"github.com/SeanMWG/inventory-app/pkg/models"
	"github.com/SeanMWG/inventory-app/pkg/roles"
	"github.com/SeanMWG/inventory-app/pkg/security"
)

// LoanerManager is the state-machine surface the handler talks to.
type LoanerManager interface {
	MarkAsLoaner(ctx context.Context, inventoryID int, changedBy string) error
	Checkout(ctx context.Context, req models.CheckoutRequest, changedBy string) (int, error)
	Checkin(ctx context.Context, checkoutID int, changedBy string) error
	ListAvailable() ([]models.InventoryRow, error)
	ListCheckedOut() ([]models.CheckedOutLoaner, error)
}

type LoanerHandler struct {
	service LoanerManager
}

func NewLoanerHandler(service LoanerManager) *LoanerHandler {
	return &LoanerHandler{service: service}
}

func (h *LoanerHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/api/loaners/available", security.RequirePermission(roles.PermissionView), h.GetAvailable)
	router.GET("/api/loaners/checked-out", security.RequirePermission(roles.PermissionView), h.GetCheckedOut)
	router.POST("/api/loaners/checkout", security.RequirePermission(roles.PermissionEdit), h.Checkout)
	router.POST("/api/loaners/checkin", security.RequirePermission(roles.PermissionEdit), h.Checkin)
	router.POST("/api/loaners/mark-as-loaner", security.RequirePermission(roles.PermissionEdit), h.MarkAsLoaner)
}

func (h *LoanerHandler) GetAvailable(c *gin.Context) {
	items, err := h.service.ListAvailable()
	if err != nil {
		c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.ClientMessage(err)})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *LoanerHandler) GetCheckedOut(c *gin.Context) {
	items, err := h.service.ListCheckedOut()
	if err != nil {
		c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.ClientMessage(err)})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *LoanerHandler) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	checkoutID, err := h.service.Checkout(c.Request.Context(), req, security.ActorName(c))
	if err != nil {
		c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.ClientMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Item checked out successfully",
		"checkout_id": checkoutID,
	})
}

func (h *LoanerHandler) Checkin(c *gin.Context) {
	var req models.CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.service.Checkin(c.Request.Context(), req.CheckoutID, security.ActorName(c)); err != nil {
		c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.ClientMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item checked in successfully"})
}

func (h *LoanerHandler) MarkAsLoaner(c *gin.Context) {
	var req models.MarkAsLoanerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.service.MarkAsLoaner(c.Request.Context(), req.InventoryID, security.ActorName(c)); err != nil {
		c.AbortWithStatusJSON(apperrors.StatusFor(err), gin.H{"error": apperrors.ClientMessage(err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item marked as loaner successfully"})
}
