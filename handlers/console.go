package handlers

import (
	"net/http"

	"dar_almal_go/console"
	"dar_almal_go/middleware"
	"dar_almal_go/services"

	"github.com/labstack/echo/v4"
)

// Consoles is the per-session console registry, set during startup
var Consoles *console.Manager

// InitConsoles wires the console registry used by the workflow endpoints
func InitConsoles(m *console.Manager) {
	Consoles = m
}

func sessionConsole(c echo.Context) (*console.Console, services.AuthContext) {
	authz := middleware.GetAuthContext(c)
	return Consoles.Get(authz.SessionID), authz
}

// ConsoleViewHandler returns the console snapshot, fetching the listing on
// first use
func ConsoleViewHandler(c echo.Context) error {
	con, authz := sessionConsole(c)

	if !con.View().Loaded {
		if err := con.Refresh(authz); err != nil {
			return serviceError(c, err)
		}
	}
	return c.JSON(http.StatusOK, con.View())
}

// ConsoleFilterHandler changes the listing filter and re-fetches
func ConsoleFilterHandler(c echo.Context) error {
	con, authz := sessionConsole(c)

	filter := services.BranchFilter{
		Governorate: c.QueryParam("governorate"),
		Status:      c.QueryParam("status"),
	}
	if err := con.SetFilter(authz, filter); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, con.View())
}

// ConsoleOpenCreateHandler opens an empty edit buffer
func ConsoleOpenCreateHandler(c echo.Context) error {
	con, _ := sessionConsole(c)
	con.OpenCreate()
	return c.JSON(http.StatusOK, con.View())
}

// ConsoleOpenEditHandler loads an existing branch into the edit buffer
func ConsoleOpenEditHandler(c echo.Context) error {
	con, authz := sessionConsole(c)

	if err := con.OpenEdit(authz, c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, con.View())
}

// ConsoleCloseHandler discards the edit buffer
func ConsoleCloseHandler(c echo.Context) error {
	con, _ := sessionConsole(c)
	con.CloseEditor()
	return c.JSON(http.StatusOK, con.View())
}

// ConsoleDraftHandler replaces the edit buffer's form state
func ConsoleDraftHandler(c echo.Context) error {
	con, _ := sessionConsole(c)

	var draft services.BranchDraft
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := con.UpdateDraft(draft); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, con.View())
}

// ConsoleGeocodeHandler runs the geocode assist against the buffered address.
// Three outcomes reach the admin: coordinates filled in, no match (try a more
// precise address), or lookup failure (try again). Saving never depends on
// any of them.
func ConsoleGeocodeHandler(c echo.Context) error {
	con, _ := sessionConsole(c)

	outcome, err := con.GeocodeAssist(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"outcome": outcome,
		"view":    con.View(),
	})
}

// ConsoleUploadHandler stores a photo and attaches its reference to the buffer
func ConsoleUploadHandler(c echo.Context) error {
	con, _ := sessionConsole(c)

	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No file uploaded"})
	}
	if err := services.ValidateBranchImage(file); err != nil {
		return serviceError(c, err)
	}

	key := services.GenerateBranchImageKey(file.Filename)
	result, err := services.Storage.Upload(c.Request().Context(), file, key)
	if err != nil {
		c.Logger().Errorf("branch image upload failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to upload file"})
	}

	if err := con.AttachImage(result.URL); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, con.View())
}

// ConsoleSaveHandler persists the edit buffer
func ConsoleSaveHandler(c echo.Context) error {
	con, authz := sessionConsole(c)

	branch, err := con.Save(authz)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"branch": branch,
		"view":   con.View(),
	})
}

// ConsoleStatusHandler applies a status transition from a row action
func ConsoleStatusHandler(c echo.Context) error {
	con, authz := sessionConsole(c)

	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := con.SetStatus(authz, c.Param("id"), body.Status); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, con.View())
}

// ConsoleArmDeleteHandler arms the two-step confirmation for one row
func ConsoleArmDeleteHandler(c echo.Context) error {
	con, _ := sessionConsole(c)
	con.ArmDelete(c.Param("id"))
	return c.JSON(http.StatusOK, con.View())
}

// ConsoleConfirmDeleteHandler executes an armed single-row deletion
func ConsoleConfirmDeleteHandler(c echo.Context) error {
	con, authz := sessionConsole(c)

	if err := con.ConfirmDelete(authz, c.Param("id")); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, con.View())
}

// ConsoleArmDeleteAllHandler arms the directory wipe confirmation
func ConsoleArmDeleteAllHandler(c echo.Context) error {
	con, _ := sessionConsole(c)
	con.ArmDeleteAll()
	return c.JSON(http.StatusOK, con.View())
}

// ConsoleConfirmDeleteAllHandler executes an armed directory wipe
func ConsoleConfirmDeleteAllHandler(c echo.Context) error {
	con, authz := sessionConsole(c)

	if err := con.ConfirmDeleteAll(authz); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, con.View())
}

// ConsoleDisarmHandler cancels any pending confirmation
func ConsoleDisarmHandler(c echo.Context) error {
	con, _ := sessionConsole(c)
	con.Disarm()
	return c.JSON(http.StatusOK, con.View())
}
