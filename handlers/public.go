package handlers

import (
	"net/http"

	"dar_almal_go/db"
	"dar_almal_go/middleware"
	"dar_almal_go/services"

	"github.com/labstack/echo/v4"
)

// GetPublicBranchesHandler serves the public directory: every ACTIVE branch
// projected into the visitor's locale, plus the governorate facets the
// client-side filter renders. The client narrows this set in memory; an
// optional governorate query param pre-applies the same filter for
// non-JS consumers.
func GetPublicBranchesHandler(c echo.Context) error {
	locale := middleware.GetLocale(c)

	branches, err := services.ListPublicBranches(db.DB, locale)
	if err != nil {
		return serviceError(c, err)
	}

	directory := services.LoadDirectory(branches)
	selected := c.QueryParam("governorate")

	return c.JSON(http.StatusOK, map[string]interface{}{
		"branches":     directory.Filter(selected),
		"governorates": directory.Facets(locale),
		"total":        directory.Total(),
	})
}
