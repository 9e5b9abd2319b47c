package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/eventhub/eventhub/internal/dto"
	"github.com/eventhub/eventhub/internal/service"
	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	svc service.AccountService
}

func NewAuthHandler(svc service.AccountService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/sign-up", h.SignUp)
	g.POST("/sign-in", h.SignIn)
	g.GET("/activate/:id/:token", h.Activate)
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	var req dto.SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.svc.Register(c.Request().Context(), service.RegisterInput{
		Username:        req.Username,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeakPassword),
			errors.Is(err, service.ErrPasswordMismatch):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUsernameTaken),
			errors.Is(err, service.ErrEmailTaken):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Registration successful! Please check your email to activate your account.",
		"user":    dto.ToUserResponse(user),
	})
}

func (h *AuthHandler) SignIn(c echo.Context) error {
	var req dto.SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	signed, user, err := h.svc.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		case errors.Is(err, service.ErrAccountInactive):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{
		Token: signed,
		User:  dto.ToUserResponse(user),
	})
}

func (h *AuthHandler) Activate(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	_, alreadyActive, err := h.svc.Activate(c.Request().Context(), uint(id), c.Param("token"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidActivationToken):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	msg := "Your account has been activated! Please log in."
	if alreadyActive {
		msg = "Your account is already active."
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: msg})
}
