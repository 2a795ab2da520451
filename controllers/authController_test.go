package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warungku/warungku-api/initializers"
	"github.com/warungku/warungku-api/models"
)

func TestRegisterStoreSlug(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	router := setupRouter(t)

	register := func(t *testing.T, email, slug string) *httptest.ResponseRecorder {
		body := `{"fullname":"Budi Santoso","email":"` + email + `",` +
			`"password":"rahasia-123","storeName":"Warung Budi","storeSlug":"` + slug + `"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("slug is lowercased and hyphenated", func(t *testing.T) {
		w := register(t, "budi@warung.id", "Warung Baru")
		require.Equal(t, http.StatusCreated, w.Code)

		var store models.Store
		require.NoError(t, initializers.DB.Where("slug = ?", "warung-baru").First(&store).Error)
		assert.Equal(t, "Warung Budi", store.Name)
	})

	t.Run("slug with unsafe characters is rejected", func(t *testing.T) {
		w := register(t, "siti@warung.id", "warung/baru!")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("normalized slug collision is rejected", func(t *testing.T) {
		w := register(t, "agus@warung.id", "WARUNG BARU")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "taken")
	})
}
