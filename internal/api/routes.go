// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all API routes with the Echo instance.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/api/health", h.HandleHealth)

	e.POST("/api/convert", h.HandleConvert)

	pluginGroup := e.Group("/api/plugins")
	pluginGroup.GET("", h.HandleListPlugins)
	pluginGroup.GET("/:id", h.HandleGetPlugin)
	pluginGroup.DELETE("/:id", h.HandleDeletePlugin)
}
