package handlers

import (
	"net/http"

	"dar_almal_go/config"
	"dar_almal_go/services"

	"github.com/labstack/echo/v4"
)

// ContactHandler forwards a contact-form submission to the site mailbox
func ContactHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)

	var msg services.ContactMessage
	if err := c.Bind(&msg); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	email, err := services.BuildContactEmail(cfg, msg)
	if err != nil {
		return serviceError(c, err)
	}

	services.SendEmailAsync(cfg, email)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// AgentApplicationHandler forwards an agency application to the site mailbox
func AgentApplicationHandler(c echo.Context) error {
	cfg := c.Get("config").(*config.Config)

	var app services.AgentApplication
	if err := c.Bind(&app); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	email, err := services.BuildAgentApplicationEmail(cfg, app)
	if err != nil {
		return serviceError(c, err)
	}

	services.SendEmailAsync(cfg, email)
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
