package service

import (
	"context"
	"errors"

	"github.com/eventhub/eventhub/internal/mailer"
	"github.com/eventhub/eventhub/internal/models"
	"github.com/eventhub/eventhub/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrTokenNotFound = errors.New("no RSVP matches this confirmation token")

	ErrRSVPForbidden            = errors.New("organizers and admins cannot RSVP for events")
	ErrAlreadyRSVPd             = errors.New("you have already RSVP'd for this event")
	ErrRSVPAwaitingConfirmation = errors.New("please confirm your RSVP via the email we sent you")
)

type RSVPService interface {
	RequestRSVP(ctx context.Context, userID, eventID uint) (*models.RSVP, error)
	Confirm(ctx context.Context, token string) (*models.RSVP, bool, error)
	ListConfirmed(ctx context.Context, eventID uint) ([]models.RSVP, error)
}

type rsvpService struct {
	rsvpRepo  repository.RSVPRepository
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	mail      *mailer.Mailer
}

func NewRSVPService(
	rsvpRepo repository.RSVPRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	mail *mailer.Mailer,
) RSVPService {
	return &rsvpService{
		rsvpRepo:  rsvpRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		mail:      mail,
	}
}

func (s *rsvpService) RequestRSVP(ctx context.Context, userID, eventID uint) (*models.RSVP, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if user.Role == models.RoleAdmin || user.Role == models.RoleOrganizer {
		return nil, ErrRSVPForbidden
	}

	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, ErrEventNotFound
	}

	if existing, err := s.rsvpRepo.FindByUserAndEvent(ctx, userID, eventID); err == nil {
		return nil, alreadyRSVPdError(existing)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rsvp := &models.RSVP{
		UserID:  userID,
		EventID: eventID,
		Token:   uuid.NewString(),
	}
	if err := s.rsvpRepo.Create(ctx, rsvp); err != nil {
		// Lost the race against a concurrent request for the same pair; the
		// unique index is the final arbiter.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if existing, ferr := s.rsvpRepo.FindByUserAndEvent(ctx, userID, eventID); ferr == nil {
				return nil, alreadyRSVPdError(existing)
			}
			return nil, ErrAlreadyRSVPd
		}
		return nil, err
	}

	if s.mail != nil {
		s.mail.SendRSVPConfirmation(user, event, rsvp.Token)
	}

	return rsvp, nil
}

func alreadyRSVPdError(rsvp *models.RSVP) error {
	if rsvp.IsConfirmed {
		return ErrAlreadyRSVPd
	}
	return ErrRSVPAwaitingConfirmation
}

// Confirm redeems a confirmation token. The second return reports whether the
// RSVP was already confirmed; replaying a link is a no-op, not an error.
func (s *rsvpService) Confirm(ctx context.Context, token string) (*models.RSVP, bool, error) {
	rsvp, err := s.rsvpRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrTokenNotFound
		}
		return nil, false, err
	}

	if rsvp.IsConfirmed {
		return rsvp, true, nil
	}

	if err := s.rsvpRepo.Confirm(ctx, rsvp.ID); err != nil {
		return nil, false, err
	}
	rsvp.IsConfirmed = true

	return rsvp, false, nil
}

func (s *rsvpService) ListConfirmed(ctx context.Context, eventID uint) ([]models.RSVP, error) {
	return s.rsvpRepo.FindConfirmedByEvent(ctx, eventID)
}
