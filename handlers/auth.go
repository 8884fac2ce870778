package handlers

import (
	"net/http"
	"time"

	"dar_almal_go/config"
	"dar_almal_go/db"
	"dar_almal_go/middleware"
	"dar_almal_go/models"
	"dar_almal_go/services"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginHandler authenticates an administrator and issues the session cookie
func LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	if !user.IsActive || !services.CheckPassword(req.Password, user.Password) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		c.Logger().Errorf("failed to create session: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	now := time.Now()
	user.LastLoginAt = &now
	db.DB.Save(&user)

	cfg, _ := c.Get("config").(*config.Config)
	secure := cfg != nil && cfg.Environment == "production"
	middleware.SetSessionCookie(c, session.Token, secure)

	return c.JSON(http.StatusOK, map[string]string{"name": user.Name, "email": user.Email})
}

// LogoutHandler ends the admin session and drops its console state
func LogoutHandler(c echo.Context) error {
	token := middleware.GetSessionToken(c)
	if token != "" {
		if err := services.DeleteSession(db.DB, token); err != nil {
			c.Logger().Errorf("failed to delete session: %v", err)
		}
	}

	authz := middleware.GetAuthContext(c)
	if Consoles != nil && authz.SessionID != "" {
		Consoles.Drop(authz.SessionID)
	}

	middleware.ClearSessionCookie(c)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
