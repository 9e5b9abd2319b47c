package service

import (
	"context"
	"time"

	"github.com/eventhub/eventhub/internal/models"
	"github.com/eventhub/eventhub/internal/repository"
)

type DashboardFilter string

const (
	FilterToday    DashboardFilter = "today"
	FilterUpcoming DashboardFilter = "upcoming"
	FilterPast     DashboardFilter = "past"
	FilterAll      DashboardFilter = "all"
)

// ParseDashboardFilter maps a query value to a filter, defaulting to today.
func ParseDashboardFilter(raw string) DashboardFilter {
	switch DashboardFilter(raw) {
	case FilterUpcoming, FilterPast, FilterAll:
		return DashboardFilter(raw)
	default:
		return FilterToday
	}
}

type DashboardStats struct {
	TotalEvents    int64 `json:"total_events"`
	TotalConfirmed int64 `json:"total_confirmed_rsvps"`
	UpcomingCount  int64 `json:"upcoming_events_count"`
	PastCount      int64 `json:"past_events_count"`
}

type Dashboard struct {
	Role   models.Role     `json:"role"`
	Filter DashboardFilter `json:"filter"`
	Stats  DashboardStats  `json:"stats"`
	Events []models.Event  `json:"events,omitempty"`
	RSVPs  []models.RSVP   `json:"rsvps,omitempty"`
}

type DashboardService interface {
	Dashboard(ctx context.Context, requester *models.User, filter DashboardFilter) (*Dashboard, error)
}

type dashboardService struct {
	eventRepo repository.EventRepository
	rsvpRepo  repository.RSVPRepository
	now       func() time.Time
}

func NewDashboardService(eventRepo repository.EventRepository, rsvpRepo repository.RSVPRepository) DashboardService {
	return &dashboardService{
		eventRepo: eventRepo,
		rsvpRepo:  rsvpRepo,
		now:       time.Now,
	}
}

// Dashboard builds the role-scoped view: all events for an admin, owned
// events for an organizer, confirmed RSVPs for everyone else.
func (s *dashboardService) Dashboard(ctx context.Context, requester *models.User, filter DashboardFilter) (*Dashboard, error) {
	dash := &Dashboard{Role: requester.Role, Filter: filter}

	var scope *uint
	switch requester.Role {
	case models.RoleAdmin:
		scope = nil
	case models.RoleOrganizer:
		scope = &requester.ID
	default:
		rsvps, err := s.rsvpRepo.FindConfirmedByUser(ctx, requester.ID)
		if err != nil {
			return nil, err
		}
		dash.RSVPs = rsvps
		return dash, nil
	}

	today := truncateToDay(s.now())
	from, to := dateWindow(filter, today)

	events, err := s.eventRepo.FindForDashboard(ctx, scope, from, to)
	if err != nil {
		return nil, err
	}
	dash.Events = events

	if dash.Stats.TotalEvents, err = s.eventRepo.Count(ctx, scope); err != nil {
		return nil, err
	}
	if dash.Stats.TotalConfirmed, err = s.rsvpRepo.CountConfirmedTotal(ctx, scope); err != nil {
		return nil, err
	}
	if dash.Stats.UpcomingCount, err = s.eventRepo.CountUpcoming(ctx, scope, today); err != nil {
		return nil, err
	}
	if dash.Stats.PastCount, err = s.eventRepo.CountPast(ctx, scope, today); err != nil {
		return nil, err
	}

	return dash, nil
}

// dateWindow turns a filter into [from, to) date bounds; nil leaves a side
// open. An event dated today is upcoming, never past.
func dateWindow(filter DashboardFilter, today time.Time) (from, to *time.Time) {
	switch filter {
	case FilterUpcoming:
		return &today, nil
	case FilterPast:
		return nil, &today
	case FilterAll:
		return nil, nil
	default:
		tomorrow := today.AddDate(0, 0, 1)
		return &today, &tomorrow
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
