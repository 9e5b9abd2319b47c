package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/eventhub/eventhub/internal/dto"
	"github.com/eventhub/eventhub/internal/middleware"
	"github.com/eventhub/eventhub/internal/models"
	"github.com/eventhub/eventhub/internal/repository"
	"github.com/eventhub/eventhub/internal/service"
	"github.com/labstack/echo/v4"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo, auth *middleware.Auth) {
	events := e.Group("/api/v1/events")
	events.GET("", h.ListEvents, auth.Optional)
	events.GET("/:id", h.GetEvent, auth.Optional)
	events.POST("", h.CreateEvent, auth.Required)
	events.PUT("/:id", h.UpdateEvent, auth.Required)
	events.DELETE("/:id", h.DeleteEvent, auth.Required)

	e.GET("/api/v1/categories", h.ListCategories)
	e.DELETE("/api/v1/categories/:id", h.DeleteCategory, auth.Required)
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	filter := repository.EventFilter{
		Search:   c.QueryParam("search"),
		Location: models.Location(c.QueryParam("location")),
	}

	var requesterID *uint
	if requester := middleware.Requester(c); requester != nil {
		requesterID = &requester.ID
	}

	listing, err := h.svc.ListEvents(c.Request().Context(), filter, requesterID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := dto.EventListResponse{
		Events:           make([]dto.EventResponse, len(listing.Events)),
		UserRSVPEventIDs: listing.RequesterRSVPIDs,
	}
	for i, e := range listing.Events {
		resp.Events[i] = dto.ToEventResponse(&e)
		resp.Events[i].ConfirmedCount = listing.ConfirmedCounts[e.ID]
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	detail, err := h.svc.GetEventDetail(c.Request().Context(), uint(id), middleware.Requester(c))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := dto.EventDetailResponse{
		Event:         dto.ToEventResponse(detail.Event),
		Visibility:    detail.Visibility,
		UserHasRSVPd:  detail.HasRSVPd,
		RSVPConfirmed: detail.RSVPConfirmed,
	}
	resp.Event.ConfirmedCount = detail.ConfirmedCount
	for _, r := range detail.ConfirmedRSVPs {
		resp.ConfirmedRSVPs = append(resp.ConfirmedRSVPs, dto.ToRSVPResponse(&r))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	input, err := bindEventInput(c)
	if err != nil {
		return err
	}

	event, err := h.svc.CreateEvent(c.Request().Context(), middleware.Requester(c), *input)
	if err != nil {
		return eventError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	input, err := bindEventInput(c)
	if err != nil {
		return err
	}

	event, err := h.svc.UpdateEvent(c.Request().Context(), middleware.Requester(c), uint(id), *input)
	if err != nil {
		return eventError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	if err := h.svc.DeleteEvent(c.Request().Context(), middleware.Requester(c), uint(id)); err != nil {
		return eventError(err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Event deleted successfully!"})
}

func (h *EventHandler) ListCategories(c echo.Context) error {
	categories, err := h.svc.ListCategories(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.CategoryResponse, len(categories))
	for i, cat := range categories {
		resp[i] = dto.ToCategoryResponse(&cat)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) DeleteCategory(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	if err := h.svc.DeleteCategory(c.Request().Context(), middleware.Requester(c), uint(id)); err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrCategoryNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: "Category deleted successfully!"})
}

func bindEventInput(c echo.Context) (*service.EventInput, error) {
	var req dto.EventRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	input := &service.EventInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        date,
		Time:        req.Time,
		Location:    models.Location(req.Location),
		ImagePath:   req.ImagePath,
		Category: service.CategorySelection{
			ExistingID: req.CategoryID,
		},
	}
	if req.NewCategory != nil {
		input.Category.New = &service.NewCategory{
			Name:        req.NewCategory.Name,
			Description: req.NewCategory.Description,
		}
	}
	return input, nil
}

func eventError(err error) error {
	switch {
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrCategoryNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCategorySelection),
		errors.Is(err, service.ErrInvalidLocation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
