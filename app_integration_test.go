package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yeremiapane/user-admin/config"
	"github.com/yeremiapane/user-admin/database"
	"github.com/yeremiapane/user-admin/models"
	"github.com/yeremiapane/user-admin/router"
	"github.com/yeremiapane/user-admin/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := config.InitDB(config.Config{DBDriver: "sqlite", DBDSN: "file:" + t.Name() + "?mode=memory&cache=shared"})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	r, err := router.SetupRouter(db, router.Options{})
	require.NoError(t, err)
	return r, db
}

// browser keeps the flash cookie between requests, like a real client.
type browser struct {
	r     *gin.Engine
	flash *http.Cookie
}

func (b *browser) do(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if b.flash != nil {
		req.AddCookie(b.flash)
	}

	w := httptest.NewRecorder()
	b.r.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == "flash" {
			if c.MaxAge < 0 {
				b.flash = nil
			} else {
				b.flash = c
			}
		}
	}
	return w
}

func listUsers(t *testing.T, db *gorm.DB) []models.User {
	t.Helper()
	var users []models.User
	require.NoError(t, db.Order("id").Find(&users).Error)
	return users
}

func TestEndToEndUserLifecycle(t *testing.T) {
	r, db := setupTestApp(t)
	b := &browser{r: r}

	// 1. create Ana
	w := b.do(t, http.MethodPost, "/create", url.Values{"name": {"Ana"}, "email": {"ana@x.com"}, "role": {"admin"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = b.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User created successfully")
	assert.Contains(t, w.Body.String(), "ana@x.com")

	// flash is shown only once
	w = b.do(t, http.MethodGet, "/", nil)
	assert.NotContains(t, w.Body.String(), "User created successfully")

	// 2. Bob with Ana's email is rejected
	w = b.do(t, http.MethodPost, "/create", url.Values{"name": {"Bob"}, "email": {"ana@x.com"}, "role": {"user"}})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exists")
	assert.Len(t, listUsers(t, db), 1)

	// 3. missing field
	w = b.do(t, http.MethodPost, "/create", url.Values{"name": {"Bob"}, "email": {"bob@x.com"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "All fields are required")
	assert.Len(t, listUsers(t, db), 1)

	// 4. update Ana
	w = b.do(t, http.MethodGet, "/update/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Ana"`)

	w = b.do(t, http.MethodPost, "/update/1", url.Values{"name": {"Ana B."}, "email": {"ana@x.com"}, "role": {"editor"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, []models.User{{ID: 1, Name: "Ana B.", Email: "ana@x.com", Role: "editor"}}, listUsers(t, db))

	// 5. unknown id
	w = b.do(t, http.MethodGet, "/update/99", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	w = b.do(t, http.MethodGet, "/", nil)
	assert.Contains(t, w.Body.String(), "User not found")

	// 6. delete twice, both succeed
	w = b.do(t, http.MethodPost, "/delete/1", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, listUsers(t, db))

	w = b.do(t, http.MethodPost, "/delete/1", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	w = b.do(t, http.MethodGet, "/", nil)
	assert.Contains(t, w.Body.String(), "User deleted successfully")
	assert.Contains(t, w.Body.String(), "No users yet.")
}

func TestHealthz(t *testing.T) {
	r, _ := setupTestApp(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
