package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/franciscosanchezn/gin-pizza-orders/internal/models"
	"github.com/franciscosanchezn/gin-pizza-orders/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDoughRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Dough{}))

	controller := NewDoughController(services.NewDoughService(db))
	router := gin.New()
	router.GET("/api/v1/doughs/:id", controller.GetDough)
	router.POST("/api/v1/doughs", controller.CreateDough)
	router.PUT("/api/v1/doughs/:id", controller.UpdateDough)
	router.DELETE("/api/v1/doughs/:id", controller.DeleteDough)
	return router, db
}

func TestCreateDoughEndpoint(t *testing.T) {
	router, db := setupDoughRouter(t)

	body := `{"name":"Classic","price":"2.50","stock":10}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/doughs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var stored models.Dough
	require.NoError(t, db.First(&stored, "name = ?", "Classic").Error)

	// Posting the same name again redirects to the stored dough
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/doughs", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/api/v1/doughs/"+stored.ID.String(), rec.Header().Get("Location"))

	// A malformed body is a bad request
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/doughs", strings.NewReader(`{"price":"2.50"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDoughEndpoint(t *testing.T) {
	router, db := setupDoughRouter(t)

	dough := models.Dough{Name: "Classic", Stock: 5}
	require.NoError(t, db.Create(&dough).Error)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/doughs/"+dough.ID.String(), nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/doughs/"+uuid.NewString(), nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/doughs/not-a-uuid", nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateDoughEndpoint(t *testing.T) {
	router, db := setupDoughRouter(t)

	dough := models.Dough{Name: "Classic", Stock: 5}
	require.NoError(t, db.Create(&dough).Error)

	// Same name: updated in place
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/doughs/"+dough.ID.String(),
		strings.NewReader(`{"name":"Classic","price":"2.80","stock":8}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// New name: re-created under a fresh id
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/v1/doughs/"+dough.ID.String(),
		strings.NewReader(`{"name":"Sourdough","price":"3.20","stock":4}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// The original id still answers under its old name
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/doughs/"+dough.ID.String(), nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteDoughEndpoint(t *testing.T) {
	router, db := setupDoughRouter(t)

	dough := models.Dough{Name: "Classic"}
	require.NoError(t, db.Create(&dough).Error)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/doughs/"+dough.ID.String(), nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/doughs/"+dough.ID.String(), nil)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
