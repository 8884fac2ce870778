package middleware

import (
	"net/http"

	"dar_almal_go/db"
	"dar_almal_go/services"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the name of the admin session cookie
	SessionCookieName = "admin_session"
	// ContextKeyAuth is the context key for the request's AuthContext
	ContextKeyAuth = "auth"
	// ContextKeySessionToken is the context key for the raw session token
	ContextKeySessionToken = "session_token"
)

// RequireAdmin validates the session cookie and stores the resulting
// AuthContext for handlers to pass into the services. Unauthorized requests
// fail uniformly with 401 before any handler runs.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			session, err := services.ValidateSession(db.DB, cookie.Value)
			if err != nil {
				clearSessionCookie(c)
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			if !session.User.IsActive {
				clearSessionCookie(c)
				return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
			}

			c.Set(ContextKeyAuth, services.NewAdminAuthContext(session.UserID, session.ID))
			c.Set(ContextKeySessionToken, cookie.Value)

			return next(c)
		}
	}
}

// GetAuthContext retrieves the request's AuthContext. Outside RequireAdmin it
// returns the zero capability, which every service rejects.
func GetAuthContext(c echo.Context) services.AuthContext {
	authz, ok := c.Get(ContextKeyAuth).(services.AuthContext)
	if !ok {
		return services.AuthContext{}
	}
	return authz
}

// GetSessionToken retrieves the raw session token set by RequireAdmin
func GetSessionToken(c echo.Context) string {
	token, ok := c.Get(ContextKeySessionToken).(string)
	if !ok {
		return ""
	}
	return token
}

// SetSessionCookie writes the admin session cookie
func SetSessionCookie(c echo.Context, token string, secure bool) {
	cookie := new(http.Cookie)
	cookie.Name = SessionCookieName
	cookie.Value = token
	cookie.Path = "/"
	cookie.HttpOnly = true
	cookie.SameSite = http.SameSiteLaxMode
	cookie.Secure = secure
	c.SetCookie(cookie)
}

func clearSessionCookie(c echo.Context) {
	cookie := new(http.Cookie)
	cookie.Name = SessionCookieName
	cookie.Value = ""
	cookie.Path = "/"
	cookie.MaxAge = -1
	cookie.HttpOnly = true
	c.SetCookie(cookie)
}

// ClearSessionCookie removes the admin session cookie (logout)
func ClearSessionCookie(c echo.Context) {
	clearSessionCookie(c)
}
