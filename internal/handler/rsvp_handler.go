package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/eventhub/eventhub/internal/dto"
	"github.com/eventhub/eventhub/internal/middleware"
	"github.com/eventhub/eventhub/internal/service"
	"github.com/labstack/echo/v4"
)

type RSVPHandler struct {
	svc service.RSVPService
}

func NewRSVPHandler(svc service.RSVPService) *RSVPHandler {
	return &RSVPHandler{svc: svc}
}

func (h *RSVPHandler) RegisterRoutes(e *echo.Echo, auth *middleware.Auth) {
	e.POST("/api/v1/events/:id/rsvp", h.RequestRSVP, auth.Required)
	e.GET("/api/v1/rsvp/confirm/:token", h.Confirm)
}

func (h *RSVPHandler) RequestRSVP(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	requester := middleware.Requester(c)

	rsvp, err := h.svc.RequestRSVP(c.Request().Context(), requester.ID, uint(eventID))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrRSVPForbidden):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrAlreadyRSVPd),
			errors.Is(err, service.ErrRSVPAwaitingConfirmation):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"message": "A confirmation email has been sent. Please check your inbox to complete RSVP.",
		"rsvp":    dto.ToRSVPResponse(rsvp),
	})
}

func (h *RSVPHandler) Confirm(c echo.Context) error {
	rsvp, alreadyConfirmed, err := h.svc.Confirm(c.Request().Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	msg := "Your RSVP is confirmed!"
	if rsvp.Event != nil {
		msg = fmt.Sprintf("Your RSVP for '%s' is confirmed!", rsvp.Event.Name)
	}
	if alreadyConfirmed {
		msg = "Your RSVP was already confirmed."
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": msg,
		"rsvp":    dto.ToRSVPResponse(rsvp),
	})
}
