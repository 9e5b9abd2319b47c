package handler

import (
	"net/http"

	"github.com/eventhub/eventhub/internal/middleware"
	"github.com/eventhub/eventhub/internal/service"
	"github.com/labstack/echo/v4"
)

type DashboardHandler struct {
	svc service.DashboardService
}

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo, auth *middleware.Auth) {
	e.GET("/api/v1/dashboard", h.Dashboard, auth.Required)
}

func (h *DashboardHandler) Dashboard(c echo.Context) error {
	filter := service.ParseDashboardFilter(c.QueryParam("filter"))

	dash, err := h.svc.Dashboard(c.Request().Context(), middleware.Requester(c), filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, dash)
}
