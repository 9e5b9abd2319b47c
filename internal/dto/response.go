package dto

import (
	"time"

	"github.com/eventhub/eventhub/internal/models"
	"github.com/eventhub/eventhub/internal/service"
)

type UserResponse struct {
	ID        uint        `json:"id"`
	Username  string      `json:"username"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Email     string      `json:"email"`
	IsActive  bool        `json:"is_active"`
	Role      models.Role `json:"role"`
}

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type EventResponse struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Location    models.Location   `json:"location"`
	ImagePath   string            `json:"image_path"`
	OrganizerID *uint             `json:"organizer_id,omitempty"`
	Category    *CategoryResponse `json:"category,omitempty"`
	// Count of confirmed RSVPs; filled in by the handler, not the mapper.
	ConfirmedCount int64 `json:"confirmed_count"`
}

type EventListResponse struct {
	Events           []EventResponse `json:"events"`
	UserRSVPEventIDs []uint          `json:"user_rsvp_event_ids,omitempty"`
}

type RSVPResponse struct {
	ID          uint          `json:"id"`
	EventID     uint          `json:"event_id"`
	IsConfirmed bool          `json:"is_confirmed"`
	CreatedAt   time.Time     `json:"created_at"`
	User        *UserResponse `json:"user,omitempty"`
}

type EventDetailResponse struct {
	Event          EventResponse      `json:"event"`
	ConfirmedRSVPs []RSVPResponse     `json:"confirmed_rsvps,omitempty"`
	Visibility     service.Visibility `json:"visibility"`
	UserHasRSVPd   bool               `json:"user_has_rsvpd"`
	RSVPConfirmed  bool               `json:"rsvp_confirmed"`
}

type TokenResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		IsActive:  u.IsActive,
		Role:      u.Role,
	}
}

func ToCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

func ToEventResponse(e *models.Event) EventResponse {
	resp := EventResponse{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Date:        e.Date.Format("2006-01-02"),
		Time:        e.Time,
		Location:    e.Location,
		ImagePath:   e.ImagePath,
		OrganizerID: e.OrganizerID,
	}
	if e.Category != nil {
		category := ToCategoryResponse(e.Category)
		resp.Category = &category
	}
	return resp
}

func ToRSVPResponse(r *models.RSVP) RSVPResponse {
	resp := RSVPResponse{
		ID:          r.ID,
		EventID:     r.EventID,
		IsConfirmed: r.IsConfirmed,
		CreatedAt:   r.CreatedAt,
	}
	if r.User != nil {
		user := ToUserResponse(r.User)
		resp.User = &user
	}
	return resp
}
