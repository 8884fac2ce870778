package handlers

import (
	"net/http"

	"dar_almal_go/db"
	"dar_almal_go/middleware"
	"dar_almal_go/services"

	"github.com/labstack/echo/v4"
)

// GetBranchesHandler returns the filtered admin listing, newest first
func GetBranchesHandler(c echo.Context) error {
	authz := middleware.GetAuthContext(c)

	filter := services.BranchFilter{
		Governorate: c.QueryParam("governorate"),
		Status:      c.QueryParam("status"),
	}

	branches, err := services.ListAdminBranches(db.DB, authz, filter)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, branches)
}

// GetBranchHandler returns a single branch by id
func GetBranchHandler(c echo.Context) error {
	authz := middleware.GetAuthContext(c)

	branch, err := services.GetBranch(db.DB, authz, c.Param("id"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, branch)
}

// CreateBranchHandler creates a branch from the posted draft
func CreateBranchHandler(c echo.Context) error {
	authz := middleware.GetAuthContext(c)

	var draft services.BranchDraft
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	branch, err := services.CreateBranch(db.DB, authz, draft)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusCreated, branch)
}

// UpdateBranchHandler applies a partial update, including status transitions
func UpdateBranchHandler(c echo.Context) error {
	authz := middleware.GetAuthContext(c)

	var patch services.BranchPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	branch, err := services.UpdateBranch(db.DB, authz, c.Param("id"), patch)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, branch)
}

// DeleteBranchHandler permanently removes one branch
func DeleteBranchHandler(c echo.Context) error {
	authz := middleware.GetAuthContext(c)

	if err := services.DeleteBranch(db.DB, authz, c.Param("id")); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// DeleteAllBranchesHandler permanently removes every branch. The console is
// responsible for confirming destructive intent before calling this.
func DeleteAllBranchesHandler(c echo.Context) error {
	authz := middleware.GetAuthContext(c)

	if err := services.DeleteAllBranches(db.DB, authz); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
