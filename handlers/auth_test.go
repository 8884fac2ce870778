package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"dar_almal_go/middleware"
	"dar_almal_go/models"
	"dar_almal_go/services"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func createTestAdmin(t *testing.T, testDB *gorm.DB, email, password string, active bool) *models.User {
	hash, err := services.HashPassword(password)
	assert.NoError(t, err)

	user := &models.User{Name: "Admin", Email: email, Password: hash, IsActive: active}
	assert.NoError(t, testDB.Create(user).Error)
	return user
}

func TestLoginHandler(t *testing.T) {
	testDB := setupTestDB(t)
	createTestAdmin(t, testDB, "admin@dar-almal.com", "CorrectPass1!", true)

	body := `{"email": "admin@dar-almal.com", "password": "CorrectPass1!"}`
	_, c, rec := setupEcho(http.MethodPost, "/admin/login", strings.NewReader(body))
	c.Request().Header.Set("Content-Type", "application/json")

	assert.NoError(t, LoginHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Session cookie issued
	cookies := rec.Result().Cookies()
	var sessionCookie string
	for _, cookie := range cookies {
		if cookie.Name == middleware.SessionCookieName {
			sessionCookie = cookie.Value
		}
	}
	assert.NotEmpty(t, sessionCookie)

	// Session persisted and valid
	session, err := services.ValidateSession(testDB, sessionCookie)
	assert.NoError(t, err)
	assert.Equal(t, "admin@dar-almal.com", session.User.Email)

	// Last login recorded
	var user models.User
	assert.NoError(t, testDB.First(&user, "email = ?", "admin@dar-almal.com").Error)
	assert.NotNil(t, user.LastLoginAt)
}

func TestLoginHandlerUniformFailures(t *testing.T) {
	testDB := setupTestDB(t)
	createTestAdmin(t, testDB, "admin@dar-almal.com", "CorrectPass1!", true)
	createTestAdmin(t, testDB, "inactive@dar-almal.com", "CorrectPass1!", false)

	cases := []string{
		`{"email": "admin@dar-almal.com", "password": "wrong"}`,
		`{"email": "nobody@dar-almal.com", "password": "CorrectPass1!"}`,
		`{"email": "inactive@dar-almal.com", "password": "CorrectPass1!"}`,
	}

	for _, body := range cases {
		_, c, rec := setupEcho(http.MethodPost, "/admin/login", strings.NewReader(body))
		c.Request().Header.Set("Content-Type", "application/json")

		assert.NoError(t, LoginHandler(c))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		// Wrong password, unknown account and disabled account are
		// indistinguishable from outside
		var resp map[string]string
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid credentials", resp["error"])
	}
}

func TestLogoutHandler(t *testing.T) {
	testDB := setupTestDB(t)
	user := createTestAdmin(t, testDB, "admin@dar-almal.com", "CorrectPass1!", true)

	session, err := services.CreateSession(testDB, user.ID, "127.0.0.1", "TestAgent")
	assert.NoError(t, err)

	// The session's console exists before logout
	Consoles.Get(session.ID)

	_, c, rec := setupEcho(http.MethodPost, "/admin/logout", nil)
	c.Set(middleware.ContextKeyAuth, services.NewAdminAuthContext(user.ID, session.ID))
	c.Set(middleware.ContextKeySessionToken, session.Token)

	assert.NoError(t, LogoutHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Session gone
	_, err = services.ValidateSession(testDB, session.Token)
	assert.Error(t, err)

	// Cookie cleared
	var cleared bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == middleware.SessionCookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
