package service

import (
	"context"
	"errors"
	"time"

	"github.com/eventhub/eventhub/internal/models"
	"github.com/eventhub/eventhub/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrForbidden                = errors.New("you don't have permission to do this")
	ErrCategoryNotFound         = errors.New("category not found")
	ErrInvalidLocation          = errors.New("unknown event location")
	ErrInvalidCategorySelection = errors.New("select an existing category or provide a new one, not both")
)

// NewCategory describes a category created alongside an event.
type NewCategory struct {
	Name        string
	Description string
}

// CategorySelection is a tagged variant: exactly one of ExistingID or New must
// be set.
type CategorySelection struct {
	ExistingID *uint
	New        *NewCategory
}

func (cs CategorySelection) validate() error {
	if (cs.ExistingID == nil) == (cs.New == nil) {
		return ErrInvalidCategorySelection
	}
	if cs.New != nil && cs.New.Name == "" {
		return ErrInvalidCategorySelection
	}
	return nil
}

type EventInput struct {
	Name        string
	Description string
	Date        time.Time
	Time        string
	Location    models.Location
	ImagePath   string
	Category    CategorySelection
}

// EventListing is the home-page payload: events with their confirmed RSVP
// counts, and the requester's own confirmed event ids when authenticated.
type EventListing struct {
	Events           []models.Event
	ConfirmedCounts  map[uint]int64
	RequesterRSVPIDs []uint
}

// EventDetail bundles what the event page needs for a given requester.
type EventDetail struct {
	Event          *models.Event
	ConfirmedCount int64
	ConfirmedRSVPs []models.RSVP
	Visibility     Visibility
	HasRSVPd       bool
	RSVPConfirmed  bool
}

type EventService interface {
	CreateEvent(ctx context.Context, requester *models.User, input EventInput) (*models.Event, error)
	UpdateEvent(ctx context.Context, requester *models.User, eventID uint, input EventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, requester *models.User, eventID uint) error
	ListEvents(ctx context.Context, filter repository.EventFilter, requesterID *uint) (*EventListing, error)
	GetEventDetail(ctx context.Context, eventID uint, requester *models.User) (*EventDetail, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	DeleteCategory(ctx context.Context, requester *models.User, categoryID uint) error
}

type eventService struct {
	eventRepo    repository.EventRepository
	categoryRepo repository.CategoryRepository
	rsvpRepo     repository.RSVPRepository
}

func NewEventService(
	eventRepo repository.EventRepository,
	categoryRepo repository.CategoryRepository,
	rsvpRepo repository.RSVPRepository,
) EventService {
	return &eventService{
		eventRepo:    eventRepo,
		categoryRepo: categoryRepo,
		rsvpRepo:     rsvpRepo,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, requester *models.User, input EventInput) (*models.Event, error) {
	if requester.Role != models.RoleAdmin && requester.Role != models.RoleOrganizer {
		return nil, ErrForbidden
	}
	if err := input.Category.validate(); err != nil {
		return nil, err
	}
	if !models.ValidLocation(input.Location) {
		return nil, ErrInvalidLocation
	}

	event := &models.Event{
		Name:        input.Name,
		Description: input.Description,
		Date:        input.Date,
		Time:        input.Time,
		Location:    input.Location,
		ImagePath:   input.ImagePath,
		OrganizerID: &requester.ID,
	}

	err := s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryID, err := s.resolveCategory(ctx, tx, input.Category)
		if err != nil {
			return err
		}
		event.CategoryID = categoryID
		return s.eventRepo.Create(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, requester *models.User, eventID uint, input EventInput) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}
	if !canManageEvent(requester, event) {
		return nil, ErrForbidden
	}
	if err := input.Category.validate(); err != nil {
		return nil, err
	}
	if !models.ValidLocation(input.Location) {
		return nil, ErrInvalidLocation
	}

	event.Name = input.Name
	event.Description = input.Description
	event.Date = input.Date
	event.Time = input.Time
	event.Location = input.Location
	if input.ImagePath != "" {
		event.ImagePath = input.ImagePath
	}
	// Organizer is set at creation only; updates never reassign ownership.
	event.Category = nil
	event.Organizer = nil

	err = s.eventRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryID, err := s.resolveCategory(ctx, tx, input.Category)
		if err != nil {
			return err
		}
		event.CategoryID = categoryID
		return s.eventRepo.Update(ctx, tx, event)
	})
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (s *eventService) resolveCategory(ctx context.Context, tx *gorm.DB, sel CategorySelection) (uint, error) {
	if sel.ExistingID != nil {
		category, err := s.categoryRepo.FindByID(ctx, *sel.ExistingID)
		if err != nil {
			return 0, ErrCategoryNotFound
		}
		return category.ID, nil
	}
	category := &models.Category{Name: sel.New.Name, Description: sel.New.Description}
	if err := s.categoryRepo.Create(ctx, tx, category); err != nil {
		return 0, err
	}
	return category.ID, nil
}

// DeleteEvent removes an event; its RSVPs go with it.
func (s *eventService) DeleteEvent(ctx context.Context, requester *models.User, eventID uint) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return ErrEventNotFound
	}
	if !canManageEvent(requester, event) {
		return ErrForbidden
	}
	return s.eventRepo.Delete(ctx, s.eventRepo.GetDB(), eventID)
}

func canManageEvent(requester *models.User, event *models.Event) bool {
	if requester.Role == models.RoleAdmin {
		return true
	}
	return requester.Role == models.RoleOrganizer && event.OwnedBy(requester.ID)
}

// ListEvents returns the public listing with per-event confirmed counts plus,
// for an authenticated requester, the ids of events they have a confirmed
// RSVP for.
func (s *eventService) ListEvents(ctx context.Context, filter repository.EventFilter, requesterID *uint) (*EventListing, error) {
	events, err := s.eventRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(events))
	for i, e := range events {
		ids[i] = e.ID
	}
	counts, err := s.rsvpRepo.CountConfirmedByEvents(ctx, ids)
	if err != nil {
		return nil, err
	}

	listing := &EventListing{Events: events, ConfirmedCounts: counts}
	if requesterID != nil {
		listing.RequesterRSVPIDs, err = s.rsvpRepo.ConfirmedEventIDs(ctx, *requesterID)
		if err != nil {
			return nil, err
		}
	}

	return listing, nil
}

func (s *eventService) GetEventDetail(ctx context.Context, eventID uint, requester *models.User) (*EventDetail, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	detail := &EventDetail{Event: event}

	detail.ConfirmedCount, err = s.rsvpRepo.CountConfirmed(ctx, eventID)
	if err != nil {
		return nil, err
	}

	anonymous := requester == nil
	var role models.Role
	var ownsEvent bool
	if !anonymous {
		role = requester.Role
		ownsEvent = event.OwnedBy(requester.ID)

		if existing, err := s.rsvpRepo.FindByUserAndEvent(ctx, requester.ID, eventID); err == nil {
			detail.HasRSVPd = true
			detail.RSVPConfirmed = existing.IsConfirmed
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	detail.Visibility = EventVisibility(role, anonymous, ownsEvent, detail.HasRSVPd)

	if detail.Visibility.ShowRSVPList {
		detail.ConfirmedRSVPs, err = s.rsvpRepo.FindConfirmedByEvent(ctx, eventID)
		if err != nil {
			return nil, err
		}
	}

	return detail, nil
}

func (s *eventService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

// DeleteCategory removes a category and every event in it, RSVPs included.
func (s *eventService) DeleteCategory(ctx context.Context, requester *models.User, categoryID uint) error {
	if requester.Role != models.RoleAdmin {
		return ErrForbidden
	}
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return ErrCategoryNotFound
	}
	return s.categoryRepo.Delete(ctx, s.eventRepo.GetDB(), categoryID)
}
