package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/eventhub/eventhub/internal/dto"
	"github.com/eventhub/eventhub/internal/middleware"
	"github.com/eventhub/eventhub/internal/models"
	"github.com/eventhub/eventhub/internal/service"
	"github.com/labstack/echo/v4"
)

// AdminHandler serves user and role management, admins only.
type AdminHandler struct {
	svc service.AccountService
}

func NewAdminHandler(svc service.AccountService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) RegisterRoutes(e *echo.Echo, auth *middleware.Auth) {
	g := e.Group("/api/v1/admin", auth.Required, requireAdmin)
	g.GET("/users", h.ListUsers)
	g.PUT("/users/:id/role", h.AssignRole)
	g.DELETE("/users/:id", h.DeleteUser)
}

func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requester := middleware.Requester(c)
		if requester == nil || (requester.Role != models.RoleAdmin && !requester.IsSuperuser) {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return next(c)
	}
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListUsers(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.UserResponse, len(users))
	for i, u := range users {
		resp[i] = dto.ToUserResponse(&u)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) AssignRole(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req dto.AssignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.svc.AssignRole(c.Request().Context(), uint(id), models.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownRole):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"message": fmt.Sprintf("User '%s' has been assigned to '%s' role.", user.Username, user.Role),
		"user":    dto.ToUserResponse(user),
	})
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	if err := h.svc.DeleteUser(c.Request().Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrSuperuserDelete):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted successfully."})
}
