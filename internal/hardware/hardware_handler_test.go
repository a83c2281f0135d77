package hardware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SeanMWG/inventory-app/pkg/apperrors"
	"github.com/SeanMWG/inventory-app/pkg/models"
)

type MockHardwareStore struct {
	mock.Mock
}

func (m *MockHardwareStore) Search(filters SearchFilters) (*models.PaginatedInventory, error) {
	args := m.Called(filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PaginatedInventory), args.Error(1)
}

func (m *MockHardwareStore) GetByAssetTag(assetTag string) (*models.InventoryItem, error) {
	args := m.Called(assetTag)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockHardwareStore) PersistItem(ctx context.Context, req models.HardwareRequest, changedBy string) (*models.InventoryItem, error) {
	args := m.Called(ctx, req, changedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func (m *MockHardwareStore) BulkPersist(ctx context.Context, reqs []models.HardwareRequest, changedBy string) ([]models.InventoryItem, []string, error) {
	args := m.Called(ctx, reqs, changedBy)
	if args.Get(0) == nil {
		return nil, args.Get(1).([]string), args.Error(2)
	}
	return args.Get(0).([]models.InventoryItem), args.Get(1).([]string), args.Error(2)
}

func (m *MockHardwareStore) UpdateItem(ctx context.Context, inventoryID int, patch models.HardwarePatch, changedBy string) (*models.InventoryItem, error) {
	args := m.Called(ctx, inventoryID, patch, changedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InventoryItem), args.Error(1)
}

func setupHardwareRouter(store *MockHardwareStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHardwareHandler(store)

	router.GET("/api/hardware", handler.GetHardware)
	router.GET("/api/hardware/tag/:asset_tag", handler.GetHardwareByTag)
	router.POST("/api/hardware", handler.CreateHardware)
	router.POST("/api/hardware/bulk", handler.BulkCreateHardware)
	router.PUT("/api/hardware/:id", handler.UpdateHardware)
	return router
}

func TestGetHardware(t *testing.T) {
	store := new(MockHardwareStore)
	router := setupHardwareRouter(store)

	store.On("Search", mock.MatchedBy(func(f SearchFilters) bool {
		return f.SiteName == "Main" && f.Page == 2 && f.PageSize == DefaultPageSize
	})).Return(&models.PaginatedInventory{
		Items:       []models.InventoryRow{{ID: 1, AssetTag: "IT-0001"}},
		TotalItems:  40,
		TotalPages:  2,
		CurrentPage: 2,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/hardware?site_name=Main&page=2", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.PaginatedInventory
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 40, resp.TotalItems)
	assert.Len(t, resp.Items, 1)
	store.AssertExpectations(t)
}

func TestGetHardwareBadPageParam(t *testing.T) {
	store := new(MockHardwareStore)
	router := setupHardwareRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/hardware?page=abc", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertNotCalled(t, "Search", mock.Anything)
}

func TestGetHardwarePageOutOfRange(t *testing.T) {
	store := new(MockHardwareStore)
	router := setupHardwareRouter(store)

	store.On("Search", mock.Anything).Return(nil, apperrors.NewValidation("page must be >= 1"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/hardware?page=0", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "page must be >= 1")
}

func TestGetHardwareByTag(t *testing.T) {
	store := new(MockHardwareStore)
	router := setupHardwareRouter(store)

	store.On("GetByAssetTag", "IT-0001").Return(&models.InventoryItem{ID: 1, AssetTag: "IT-0001"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/hardware/tag/IT-0001", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"asset_tag":"IT-0001"`)
}

func TestGetHardwareByTagNotFound(t *testing.T) {
	store := new(MockHardwareStore)
	router := setupHardwareRouter(store)

	store.On("GetByAssetTag", "NOPE").Return(nil, apperrors.NewNotFound("inventory item NOPE not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/hardware/tag/NOPE", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateHardware(t *testing.T) {
	store := new(MockHardwareStore)
	router := setupHardwareRouter(store)

	store.On("PersistItem", mock.Anything, mock.MatchedBy(func(r models.HardwareRequest) bool {
		return r.AssetTag == "IT-0002"
	}), "system").Return(&models.InventoryItem{ID: 7, AssetTag: "IT-0002"}, nil)

	body, _ := json.Marshal(models.HardwareRequest{
		AssetTag:     "IT-0002",
		AssetType:    "Monitor",
		Model:        "U2723QE",
		SerialNumber: "SN-2",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/hardware", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"inventory_id":7`)
	store.AssertExpectations(t)
}

func TestCreateHardwareMissingFields(t *testing.T) {
	store := new(MockHardwareStore)
	router := setupHardwareRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/hardware", bytes.NewBufferString(`{"asset_tag":"IT-0002"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertNotCalled(t, "PersistItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateHardwareDuplicateTag(t *testing.T) {
	store := new(MockHardwareStore)
	router := setupHardwareRouter(store)

	store.On("PersistItem", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.NewConflict("asset tag already exists"))

	body, _ := json.Marshal(models.HardwareRequest{
		AssetTag:     "IT-0001",
		AssetType:    "Laptop",
		Model:        "Latitude 5440",
		SerialNumber: "SN-1",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/hardware", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBulkCreateHardware(t *testing.T) {
	store := new(MockHardwareStore)
	router := setupHardwareRouter(store)

	store.On("BulkPersist", mock.Anything, mock.Anything, "system").
		Return([]models.InventoryItem{{ID: 1}, {ID: 2}}, []string{"row 3: asset_tag is required"}, nil)

	payload := models.BulkHardwareRequest{Items: []models.HardwareRequest{
		{AssetTag: "IT-0001", AssetType: "Laptop", Model: "A", SerialNumber: "S1"},
		{AssetTag: "IT-0002", AssetType: "Laptop", Model: "B", SerialNumber: "S2"},
	}}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/hardware/bulk", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"created":2`)
	assert.Contains(t, w.Body.String(), "row 3")
}

func TestUpdateHardware(t *testing.T) {
	store := new(MockHardwareStore)
	router := setupHardwareRouter(store)

	store.On("UpdateItem", mock.Anything, 5, mock.MatchedBy(func(p models.HardwarePatch) bool {
		return p.Notes != nil && *p.Notes == "reimaged"
	}), "system").Return(&models.InventoryItem{ID: 5}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/api/hardware/5", bytes.NewBufferString(`{"notes":"reimaged"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	store.AssertExpectations(t)
}

func TestUpdateHardwareBadID(t *testing.T) {
	store := new(MockHardwareStore)
	router := setupHardwareRouter(store)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/api/hardware/abc", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	store.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateHardwareNotFound(t *testing.T) {
	store := new(MockHardwareStore)
	router := setupHardwareRouter(store)

	store.On("UpdateItem", mock.Anything, 99, mock.Anything, mock.Anything).
		Return(nil, apperrors.NewNotFound("inventory item 99 not found"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "/api/hardware/99", bytes.NewBufferString(`{"notes":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
