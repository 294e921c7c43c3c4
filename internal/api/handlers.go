// Package api exposes the converter over HTTP: upload a QMK info.json,
// receive the generated SignalRGB plugin.
package api

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Polyhaze/qmk2srgb/internal/generator"
	"github.com/Polyhaze/qmk2srgb/internal/parser"
	"github.com/Polyhaze/qmk2srgb/internal/plugin"
	"github.com/Polyhaze/qmk2srgb/internal/storage"
)

// Handler holds the dependencies of all API endpoints.
type Handler struct {
	store        storage.Store
	matrixSizing bool
	version      string
}

// NewHandler creates a new API handler. matrixSizing is the default
// normalization mode; requests can override it per conversion.
func NewHandler(store storage.Store, matrixSizing bool, version string) *Handler {
	return &Handler{
		store:        store,
		matrixSizing: matrixSizing,
		version:      version,
	}
}

// HandleConvert converts an uploaded info.json into a plugin. The document
// arrives either as multipart field "file" or as the raw request body. The
// optional "matrixSizing" query parameter overrides the configured default.
func (h *Handler) HandleConvert(c echo.Context) error {
	var body io.Reader = c.Request().Body
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return NewBadRequestError("cannot open uploaded file", err)
		}
		defer f.Close()
		body = f
	}

	doc, err := parser.ParseInfoFromReader(body)
	if err != nil {
		return NewBadRequestError("invalid keyboard description", err)
	}

	opts := generator.Options{MatrixSizing: h.matrixSizing}
	if v := c.QueryParam("matrixSizing"); v != "" {
		ms, err := strconv.ParseBool(v)
		if err != nil {
			return NewBadRequestError("invalid matrixSizing parameter", err)
		}
		opts.MatrixSizing = ms
	}

	data, err := generator.Generate(doc, opts)
	if err != nil {
		return NewInternalError("plugin generation failed", err)
	}

	content := []byte(plugin.Render(data))
	fileName := plugin.FileName(data.BoardName)

	info, err := h.store.Save(fileName, data.BoardName, content)
	if err != nil {
		return NewInternalError("storing plugin failed", err)
	}

	c.Response().Header().Set("X-Plugin-Id", info.ID)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Blob(http.StatusCreated, "application/javascript", content)
}

// HandleListPlugins returns metadata for recently generated plugins.
func (h *Handler) HandleListPlugins(c echo.Context) error {
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	list, err := h.store.List(limit)
	if err != nil {
		return NewInternalError("listing plugins failed", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"plugins": list,
		"count":   len(list),
	})
}

// HandleGetPlugin serves a previously generated plugin file by ID.
func (h *Handler) HandleGetPlugin(c echo.Context) error {
	id := c.Param("id")

	info, err := h.store.Get(id)
	if err != nil {
		return NewNotFoundError("plugin", id)
	}

	path, err := h.store.GetFilePath(id)
	if err != nil {
		return NewNotFoundError("plugin", id)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+info.FileName+`"`)
	return c.File(path)
}

// HandleDeletePlugin removes a generated plugin.
func (h *Handler) HandleDeletePlugin(c echo.Context) error {
	id := c.Param("id")

	if err := h.store.Delete(id); err != nil {
		return NewNotFoundError("plugin", id)
	}

	return c.NoContent(http.StatusNoContent)
}

// HandleHealth returns server health status.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": h.version,
	})
}
