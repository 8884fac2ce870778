package middleware

import (
	"net/http"
	"strings"
	"time"

	"dar_almal_go/config"

	"github.com/labstack/echo/v4"
)

// Locale middleware handles language detection and persistence.
// Priority:
// 1. Query param "lang" (sets cookie)
// 2. Cookie "lang"
// 3. Accept-Language header
// 4. Default ("ar" - the site's primary language)
func Locale(cfg *config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Check query param
			lang := c.QueryParam("lang")
			if lang != "" {
				if lang != "ar" && lang != "en" {
					lang = "ar"
				}

				// Set cookie
				cookie := new(http.Cookie)
				cookie.Name = "lang"
				cookie.Value = lang
				cookie.Expires = time.Now().Add(24 * 365 * time.Hour) // 1 year
				cookie.Path = "/"
				cookie.HttpOnly = true
				cookie.SameSite = http.SameSiteLaxMode
				if cfg.Environment == "production" {
					cookie.Secure = true
				}
				c.SetCookie(cookie)
			} else {
				// Check cookie
				cookie, err := c.Cookie("lang")
				if err == nil {
					lang = cookie.Value
				}
			}

			// Check header if still empty
			if lang == "" {
				accept := c.Request().Header.Get("Accept-Language")
				if strings.Contains(accept, "en") && !strings.HasPrefix(accept, "ar") {
					lang = "en"
				} else {
					lang = "ar"
				}
			}

			c.Set("locale", lang)
			return next(c)
		}
	}
}

// GetLocale returns the current locale from context
func GetLocale(c echo.Context) string {
	val := c.Get("locale")
	if lang, ok := val.(string); ok {
		return lang
	}
	return "ar"
}
