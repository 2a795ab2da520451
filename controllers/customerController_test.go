package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warungku/warungku-api/initializers"
	"github.com/warungku/warungku-api/models"
	"github.com/warungku/warungku-api/routes"
	"github.com/warungku/warungku-api/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.UserOutlet{}, &models.Store{}, &models.Outlet{},
		&models.Category{}, &models.MenuItem{}, &models.OutletMenuSetting{},
		&models.Table{}, &models.Order{}, &models.OrderItem{}, &models.Payment{},
	))
	initializers.DB = db

	router := gin.New()
	routes.AuthRoutes(router)
	routes.AdminRoutes(router)
	routes.CustomerRoutes(router)
	return router
}

func seed(t *testing.T) (models.Store, models.Outlet, models.MenuItem) {
	t.Helper()
	db := initializers.DB

	store := models.Store{Name: "Warung Budi", Slug: "warung-budi", IsActive: true}
	require.NoError(t, db.Create(&store).Error)

	outlet := models.Outlet{
		StoreID: store.ID, Name: "Outlet Utama", Slug: "outlet-utama",
		IsMain: true, IsActive: true, TaxPercent: 10,
	}
	require.NoError(t, db.Create(&outlet).Error)

	category := models.Category{StoreID: store.ID, Name: "Makanan", SortOrder: 1, IsActive: true}
	require.NoError(t, db.Create(&category).Error)

	item := models.MenuItem{
		StoreID: store.ID, CategoryID: category.ID,
		Name: "Nasi Goreng", Slug: "nasi-goreng", Price: 25000, IsAvailable: true,
	}
	require.NoError(t, db.Create(&item).Error)

	return store, outlet, item
}

func TestStorefrontMenuEndpoint(t *testing.T) {
	router := setupRouter(t)
	_, _, _ = seed(t)

	t.Run("serves the effective menu", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/warung-budi/outlet-utama/menu", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Nasi Goreng")
		assert.Contains(t, w.Body.String(), "25000")
	})

	t.Run("unknown outlet is 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/warung-budi/cabang-dua/menu", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCheckoutEndpoint(t *testing.T) {
	router := setupRouter(t)
	_, _, item := seed(t)

	t.Run("valid cart creates an order", func(t *testing.T) {
		body := `{"customerName":"Budi","items":[{"menuItemId":` + itoa(item.ID) + `,"quantity":2}]}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/warung-budi/outlet-utama/checkout", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "ORD-")

		var count int64
		require.NoError(t, initializers.DB.Model(&models.Order{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unknown menu item is 400 and writes nothing", func(t *testing.T) {
		var before int64
		require.NoError(t, initializers.DB.Model(&models.Order{}).Count(&before).Error)

		body := `{"customerName":"Budi","items":[{"menuItemId":` + itoa(item.ID) + `,"quantity":1},{"menuItemId":99999,"quantity":1}]}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/warung-budi/outlet-utama/checkout", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var after int64
		require.NoError(t, initializers.DB.Model(&models.Order{}).Count(&after).Error)
		assert.Equal(t, before, after)
	})

	t.Run("empty cart is rejected by validation", func(t *testing.T) {
		body := `{"customerName":"Budi","items":[]}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/warung-budi/outlet-utama/checkout", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminTenantBoundary(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := setupRouter(t)
	store, outlet, item := seed(t)

	otherStore := models.Store{Name: "Warung Lain", Slug: "warung-lain", IsActive: true}
	require.NoError(t, initializers.DB.Create(&otherStore).Error)

	sessionFor := func(t *testing.T, user models.User) *http.Cookie {
		token, err := utils.GenerateToken(user.ID, user.Email, user.Role, user.StoreID)
		require.NoError(t, err)
		return &http.Cookie{Name: utils.SessionCookieName, Value: token}
	}

	admin := models.User{StoreID: store.ID, Email: "admin@warung-budi.id", Role: models.RoleTenantAdmin}
	require.NoError(t, initializers.DB.Create(&admin).Error)

	intruder := models.User{StoreID: otherStore.ID, Email: "admin@warung-lain.id", Role: models.RoleTenantAdmin}
	require.NoError(t, initializers.DB.Create(&intruder).Error)

	outletAdmin := models.User{StoreID: store.ID, Email: "outlet@warung-budi.id", Role: models.RoleOutletAdmin}
	require.NoError(t, initializers.DB.Create(&outletAdmin).Error)

	t.Run("no cookie is 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("tenant admin sees their own outlet menu", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/outlets/"+itoa(outlet.ID)+"/menu", nil)
		req.AddCookie(sessionFor(t, admin))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Nasi Goreng")
	})

	t.Run("another tenant cannot reach the outlet", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/outlets/"+itoa(outlet.ID)+"/menu", nil)
		req.AddCookie(sessionFor(t, intruder))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("outlet admin without assignment is forbidden", func(t *testing.T) {
		body := `{"isAvailable":true,"priceOverride":20000}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut,
			"/api/admin/outlets/"+itoa(outlet.ID)+"/menu/"+itoa(item.ID),
			strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(sessionFor(t, outletAdmin))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("assigned outlet admin can set an override", func(t *testing.T) {
		require.NoError(t, initializers.DB.Create(&models.UserOutlet{UserID: outletAdmin.ID, OutletID: outlet.ID}).Error)

		body := `{"isAvailable":true,"priceOverride":20000}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut,
			"/api/admin/outlets/"+itoa(outlet.ID)+"/menu/"+itoa(item.ID),
			strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(sessionFor(t, outletAdmin))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		// The storefront now shows the overridden price.
		w = httptest.NewRecorder()
		menuReq := httptest.NewRequest(http.MethodGet, "/warung-budi/outlet-utama/menu", nil)
		router.ServeHTTP(w, menuReq)
		assert.Contains(t, w.Body.String(), "20000")
	})
}

func itoa(v uint) string {
	return strconv.Itoa(int(v))
}
