package repository

import (
	"context"
	"time"

	"github.com/eventhub/eventhub/internal/models"
	"gorm.io/gorm"
)

// EventFilter narrows the public event listing.
type EventFilter struct {
	Search   string
	Location models.Location
}

type EventRepository interface {
	Create(ctx context.Context, tx *gorm.DB, event *models.Event) error
	Update(ctx context.Context, tx *gorm.DB, event *models.Event) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindAll(ctx context.Context, filter EventFilter) ([]models.Event, error)
	FindForDashboard(ctx context.Context, organizerID *uint, from, to *time.Time) ([]models.Event, error)
	Count(ctx context.Context, organizerID *uint) (int64, error)
	CountUpcoming(ctx context.Context, organizerID *uint, today time.Time) (int64, error)
	CountPast(ctx context.Context, organizerID *uint, today time.Time) (int64, error)
	GetDB() *gorm.DB
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *eventRepository) Create(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return tx.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) Update(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return tx.WithContext(ctx).Save(event).Error
}

func (r *eventRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return tx.WithContext(ctx).Delete(&models.Event{}, id).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Organizer").
		First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	var events []models.Event
	q := r.db.WithContext(ctx).Preload("Category")
	if filter.Search != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Location != "" {
		q = q.Where("location = ?", filter.Location)
	}
	if err := q.Order("date DESC, time DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindForDashboard lists events scoped to an organizer (nil = all) within an
// optional date window. A nil bound leaves that side open.
func (r *eventRepository) FindForDashboard(ctx context.Context, organizerID *uint, from, to *time.Time) ([]models.Event, error) {
	var events []models.Event
	q := r.db.WithContext(ctx).Preload("Category")
	if organizerID != nil {
		q = q.Where("organizer_id = ?", *organizerID)
	}
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date < ?", *to)
	}
	if err := q.Order("date DESC, time DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) Count(ctx context.Context, organizerID *uint) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Event{})
	if organizerID != nil {
		q = q.Where("organizer_id = ?", *organizerID)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *eventRepository) CountUpcoming(ctx context.Context, organizerID *uint, today time.Time) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Event{}).Where("date >= ?", today)
	if organizerID != nil {
		q = q.Where("organizer_id = ?", *organizerID)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *eventRepository) CountPast(ctx context.Context, organizerID *uint, today time.Time) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Event{}).Where("date < ?", today)
	if organizerID != nil {
		q = q.Where("organizer_id = ?", *organizerID)
	}
	err := q.Count(&count).Error
	return count, err
}
