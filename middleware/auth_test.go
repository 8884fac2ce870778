package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dar_almal_go/db"
	"dar_almal_go/models"
	"dar_almal_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMiddlewareTestDB(t *testing.T) *gorm.DB {
	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, testDB.AutoMigrate(&models.User{}, &models.Session{}))
	db.DB = testDB
	return testDB
}

func runRequireAdmin(t *testing.T, cookie *http.Cookie) (echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/branches", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireAdmin()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return c, handler(c)
}

func TestRequireAdminValidSession(t *testing.T) {
	testDB := setupMiddlewareTestDB(t)

	user := &models.User{Name: "Admin", Email: "admin@example.com", Password: "x", IsActive: true}
	assert.NoError(t, testDB.Create(user).Error)
	session, err := services.CreateSession(testDB, user.ID, "127.0.0.1", "TestAgent")
	assert.NoError(t, err)

	c, err := runRequireAdmin(t, &http.Cookie{Name: SessionCookieName, Value: session.Token})
	assert.NoError(t, err)

	authz := GetAuthContext(c)
	assert.True(t, authz.CanManageBranches())
	assert.Equal(t, user.ID, authz.UserID)
	assert.Equal(t, session.ID, authz.SessionID)
	assert.Equal(t, session.Token, GetSessionToken(c))
}

func TestRequireAdminMissingCookie(t *testing.T) {
	setupMiddlewareTestDB(t)

	_, err := runRequireAdmin(t, nil)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireAdminInvalidToken(t *testing.T) {
	setupMiddlewareTestDB(t)

	_, err := runRequireAdmin(t, &http.Cookie{Name: SessionCookieName, Value: "bogus"})
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireAdminExpiredSession(t *testing.T) {
	testDB := setupMiddlewareTestDB(t)

	user := &models.User{Name: "Admin", Email: "admin@example.com", Password: "x", IsActive: true}
	assert.NoError(t, testDB.Create(user).Error)
	session := &models.Session{
		ID:        "expired",
		UserID:    user.ID,
		Token:     "expired-token",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	assert.NoError(t, testDB.Create(session).Error)

	_, err := runRequireAdmin(t, &http.Cookie{Name: SessionCookieName, Value: "expired-token"})
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestRequireAdminDisabledAccount(t *testing.T) {
	testDB := setupMiddlewareTestDB(t)

	user := &models.User{Name: "Admin", Email: "admin@example.com", Password: "x", IsActive: false}
	assert.NoError(t, testDB.Create(user).Error)
	session, err := services.CreateSession(testDB, user.ID, "127.0.0.1", "TestAgent")
	assert.NoError(t, err)

	// A valid cookie for a disabled account is still rejected
	_, err = runRequireAdmin(t, &http.Cookie{Name: SessionCookieName, Value: session.Token})
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
}

func TestGetAuthContextOutsideMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	// The zero capability carries no permissions
	assert.False(t, GetAuthContext(c).CanManageBranches())
}
