package service

import (
	"context"
	"time"

	"github.com/eventhub/eventhub/internal/models"
	"github.com/eventhub/eventhub/internal/repository"
	"gorm.io/gorm"
)

// --- Mock UserRepository ---

type mockUserRepo struct {
	createFn         func(ctx context.Context, user *models.User) error
	findByIDFn       func(ctx context.Context, id uint) (*models.User, error)
	findByUsernameFn func(ctx context.Context, username string) (*models.User, error)
	findByEmailFn    func(ctx context.Context, email string) (*models.User, error)
	findAllFn        func(ctx context.Context) ([]models.User, error)
	updateActiveFn   func(ctx context.Context, id uint, active bool) error
	updateRoleFn     func(ctx context.Context, id uint, role models.Role) error
	deleteFn         func(ctx context.Context, id uint) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.createFn(ctx, user)
}
func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.findByUsernameFn != nil {
		return m.findByUsernameFn(ctx, username)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockUserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	return m.findAllFn(ctx)
}
func (m *mockUserRepo) UpdateActive(ctx context.Context, id uint, active bool) error {
	if m.updateActiveFn != nil {
		return m.updateActiveFn(ctx, id, active)
	}
	return nil
}
func (m *mockUserRepo) UpdateRole(ctx context.Context, id uint, role models.Role) error {
	if m.updateRoleFn != nil {
		return m.updateRoleFn(ctx, id, role)
	}
	return nil
}
func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// --- Mock EventRepository ---

type mockEventRepo struct {
	createFn           func(ctx context.Context, tx *gorm.DB, event *models.Event) error
	updateFn           func(ctx context.Context, tx *gorm.DB, event *models.Event) error
	deleteFn           func(ctx context.Context, tx *gorm.DB, id uint) error
	findByIDFn         func(ctx context.Context, id uint) (*models.Event, error)
	findAllFn          func(ctx context.Context, filter repository.EventFilter) ([]models.Event, error)
	findForDashboardFn func(ctx context.Context, organizerID *uint, from, to *time.Time) ([]models.Event, error)
	countFn            func(ctx context.Context, organizerID *uint) (int64, error)
	countUpcomingFn    func(ctx context.Context, organizerID *uint, today time.Time) (int64, error)
	countPastFn        func(ctx context.Context, organizerID *uint, today time.Time) (int64, error)
}

func (m *mockEventRepo) Create(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return m.createFn(ctx, tx, event)
}
func (m *mockEventRepo) Update(ctx context.Context, tx *gorm.DB, event *models.Event) error {
	return m.updateFn(ctx, tx, event)
}
func (m *mockEventRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return m.deleteFn(ctx, tx, id)
}
func (m *mockEventRepo) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockEventRepo) FindAll(ctx context.Context, filter repository.EventFilter) ([]models.Event, error) {
	return m.findAllFn(ctx, filter)
}
func (m *mockEventRepo) FindForDashboard(ctx context.Context, organizerID *uint, from, to *time.Time) ([]models.Event, error) {
	return m.findForDashboardFn(ctx, organizerID, from, to)
}
func (m *mockEventRepo) Count(ctx context.Context, organizerID *uint) (int64, error) {
	return m.countFn(ctx, organizerID)
}
func (m *mockEventRepo) CountUpcoming(ctx context.Context, organizerID *uint, today time.Time) (int64, error) {
	return m.countUpcomingFn(ctx, organizerID, today)
}
func (m *mockEventRepo) CountPast(ctx context.Context, organizerID *uint, today time.Time) (int64, error) {
	return m.countPastFn(ctx, organizerID, today)
}
func (m *mockEventRepo) GetDB() *gorm.DB { return nil }

// --- Mock CategoryRepository ---

type mockCategoryRepo struct {
	createFn   func(ctx context.Context, tx *gorm.DB, category *models.Category) error
	findByIDFn func(ctx context.Context, id uint) (*models.Category, error)
	findAllFn  func(ctx context.Context) ([]models.Category, error)
	deleteFn   func(ctx context.Context, tx *gorm.DB, id uint) error
}

func (m *mockCategoryRepo) Create(ctx context.Context, tx *gorm.DB, category *models.Category) error {
	return m.createFn(ctx, tx, category)
}
func (m *mockCategoryRepo) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockCategoryRepo) FindAll(ctx context.Context) ([]models.Category, error) {
	return m.findAllFn(ctx)
}
func (m *mockCategoryRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return m.deleteFn(ctx, tx, id)
}

// --- Mock RSVPRepository ---

type mockRSVPRepo struct {
	createFn              func(ctx context.Context, rsvp *models.RSVP) error
	findByUserAndEventFn  func(ctx context.Context, userID, eventID uint) (*models.RSVP, error)
	findByTokenFn         func(ctx context.Context, token string) (*models.RSVP, error)
	findConfirmedByEvtFn  func(ctx context.Context, eventID uint) ([]models.RSVP, error)
	findConfirmedByUserFn func(ctx context.Context, userID uint) ([]models.RSVP, error)
	confirmedEventIDsFn   func(ctx context.Context, userID uint) ([]uint, error)
	confirmFn             func(ctx context.Context, id uint) error
	countConfirmedFn      func(ctx context.Context, eventID uint) (int64, error)
	countByEventsFn       func(ctx context.Context, eventIDs []uint) (map[uint]int64, error)
	countConfirmedTotalFn func(ctx context.Context, organizerID *uint) (int64, error)
}

func (m *mockRSVPRepo) Create(ctx context.Context, rsvp *models.RSVP) error {
	return m.createFn(ctx, rsvp)
}
func (m *mockRSVPRepo) FindByUserAndEvent(ctx context.Context, userID, eventID uint) (*models.RSVP, error) {
	if m.findByUserAndEventFn != nil {
		return m.findByUserAndEventFn(ctx, userID, eventID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockRSVPRepo) FindByToken(ctx context.Context, token string) (*models.RSVP, error) {
	return m.findByTokenFn(ctx, token)
}
func (m *mockRSVPRepo) FindConfirmedByEvent(ctx context.Context, eventID uint) ([]models.RSVP, error) {
	return m.findConfirmedByEvtFn(ctx, eventID)
}
func (m *mockRSVPRepo) FindConfirmedByUser(ctx context.Context, userID uint) ([]models.RSVP, error) {
	return m.findConfirmedByUserFn(ctx, userID)
}
func (m *mockRSVPRepo) ConfirmedEventIDs(ctx context.Context, userID uint) ([]uint, error) {
	return m.confirmedEventIDsFn(ctx, userID)
}
func (m *mockRSVPRepo) Confirm(ctx context.Context, id uint) error {
	if m.confirmFn != nil {
		return m.confirmFn(ctx, id)
	}
	return nil
}
func (m *mockRSVPRepo) CountConfirmed(ctx context.Context, eventID uint) (int64, error) {
	if m.countConfirmedFn != nil {
		return m.countConfirmedFn(ctx, eventID)
	}
	return 0, nil
}
func (m *mockRSVPRepo) CountConfirmedByEvents(ctx context.Context, eventIDs []uint) (map[uint]int64, error) {
	if m.countByEventsFn != nil {
		return m.countByEventsFn(ctx, eventIDs)
	}
	return map[uint]int64{}, nil
}
func (m *mockRSVPRepo) CountConfirmedTotal(ctx context.Context, organizerID *uint) (int64, error) {
	return m.countConfirmedTotalFn(ctx, organizerID)
}

// --- Recording mail queue ---

type recordedMail struct {
	Route   string
	Payload any
}

type recordingQueue struct {
	sent []recordedMail
	err  error
}

func (q *recordingQueue) Publish(routingKey string, payload any) error {
	if q.err != nil {
		return q.err
	}
	q.sent = append(q.sent, recordedMail{Route: routingKey, Payload: payload})
	return nil
}
