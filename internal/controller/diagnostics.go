package controller

import (
	"net/http"

	"github.com/SinghAnsh07/ServiceHive-intern-assignment/internal/service"

	"github.com/labstack/echo"
)

type diagnosticRoutesHandler struct {
	diagnosticService service.Diagnostics
}

func newDiagnosticRoutesHandler(root *echo.Echo, outer *echo.Group, services *service.Services) *diagnosticRoutesHandler {
	h := &diagnosticRoutesHandler{services.Diagnostics}
	root.GET("/", h.Root)
	outer.GET("/ping", h.Ping)

	return h
}

func (h *diagnosticRoutesHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "GigFlow API is running"})
}

func (h *diagnosticRoutesHandler) Ping(c echo.Context) error {
	if err := h.diagnosticService.Ping(c.Request().Context()); err != nil {
		return writeError(c, err, "Storage is unreachable")
	}

	return c.JSON(http.StatusOK, "ok")
}
