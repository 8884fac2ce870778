package handlers

import (
	"fmt"
	"net/http"
	"time"

	"dar_almal_go/db"
	"dar_almal_go/middleware"
	"dar_almal_go/services"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportBranchesHandler serves the full branch directory as an xlsx attachment
func ExportBranchesHandler(c echo.Context) error {
	authz := middleware.GetAuthContext(c)

	buf, err := services.GenerateBranchExport(db.DB, authz)
	if err != nil {
		return serviceError(c, err)
	}

	filename := fmt.Sprintf("dar-almal-branches-%d.xlsx", time.Now().UnixMilli())
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))

	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}
