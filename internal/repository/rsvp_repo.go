package repository

import (
	"context"

	"github.com/eventhub/eventhub/internal/models"
	"gorm.io/gorm"
)

type RSVPRepository interface {
	Create(ctx context.Context, rsvp *models.RSVP) error
	FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*models.RSVP, error)
	FindByToken(ctx context.Context, token string) (*models.RSVP, error)
	FindConfirmedByEvent(ctx context.Context, eventID uint) ([]models.RSVP, error)
	FindConfirmedByUser(ctx context.Context, userID uint) ([]models.RSVP, error)
	ConfirmedEventIDs(ctx context.Context, userID uint) ([]uint, error)
	Confirm(ctx context.Context, id uint) error
	CountConfirmed(ctx context.Context, eventID uint) (int64, error)
	CountConfirmedByEvents(ctx context.Context, eventIDs []uint) (map[uint]int64, error)
	CountConfirmedTotal(ctx context.Context, organizerID *uint) (int64, error)
}

type rsvpRepository struct {
	db *gorm.DB
}

func NewRSVPRepository(db *gorm.DB) RSVPRepository {
	return &rsvpRepository{db: db}
}

func (r *rsvpRepository) Create(ctx context.Context, rsvp *models.RSVP) error {
	return r.db.WithContext(ctx).Create(rsvp).Error
}

func (r *rsvpRepository) FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*models.RSVP, error) {
	var rsvp models.RSVP
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&rsvp).Error
	if err != nil {
		return nil, err
	}
	return &rsvp, nil
}

func (r *rsvpRepository) FindByToken(ctx context.Context, token string) (*models.RSVP, error) {
	var rsvp models.RSVP
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("token = ?", token).
		First(&rsvp).Error
	if err != nil {
		return nil, err
	}
	return &rsvp, nil
}

func (r *rsvpRepository) FindConfirmedByEvent(ctx context.Context, eventID uint) ([]models.RSVP, error) {
	var rsvps []models.RSVP
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ? AND is_confirmed = ?", eventID, true).
		Find(&rsvps).Error
	if err != nil {
		return nil, err
	}
	return rsvps, nil
}

func (r *rsvpRepository) FindConfirmedByUser(ctx context.Context, userID uint) ([]models.RSVP, error) {
	var rsvps []models.RSVP
	err := r.db.WithContext(ctx).
		Preload("Event").
		Preload("Event.Category").
		Where("user_id = ? AND is_confirmed = ?", userID, true).
		Order("created_at DESC").
		Find(&rsvps).Error
	if err != nil {
		return nil, err
	}
	return rsvps, nil
}

func (r *rsvpRepository) ConfirmedEventIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.RSVP{}).
		Where("user_id = ? AND is_confirmed = ?", userID, true).
		Pluck("event_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *rsvpRepository) Confirm(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.RSVP{}).
		Where("id = ?", id).
		Update("is_confirmed", true).Error
}

func (r *rsvpRepository) CountConfirmed(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RSVP{}).
		Where("event_id = ? AND is_confirmed = ?", eventID, true).
		Count(&count).Error
	return count, err
}

// CountConfirmedByEvents returns confirmed RSVP counts keyed by event id.
// Events with no confirmed RSVPs are absent from the map.
func (r *rsvpRepository) CountConfirmedByEvents(ctx context.Context, eventIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		EventID uint
		Total   int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.RSVP{}).
		Select("event_id, COUNT(*) AS total").
		Where("event_id IN ? AND is_confirmed = ?", eventIDs, true).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.EventID] = row.Total
	}
	return counts, nil
}

// CountConfirmedTotal counts confirmed RSVPs across all events, or across one
// organizer's events when organizerID is set.
func (r *rsvpRepository) CountConfirmedTotal(ctx context.Context, organizerID *uint) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&models.RSVP{}).
		Where("rsvps.is_confirmed = ?", true)
	if organizerID != nil {
		q = q.Joins("JOIN events ON events.id = rsvps.event_id").
			Where("events.organizer_id = ?", *organizerID)
	}
	err := q.Count(&count).Error
	return count, err
}
