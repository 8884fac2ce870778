package handlers

import (
	"net/http"

	"dar_almal_go/services"

	"github.com/labstack/echo/v4"
)

// UploadBranchImageHandler stores a branch photograph and returns the stable
// reference the edit buffer keeps in place of the bytes
func UploadBranchImageHandler(c echo.Context) error {
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

	return c.JSON(http.StatusOK, map[string]string{"url": result.URL})
}
