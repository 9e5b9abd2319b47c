package database

import (
	"log"

	"github.com/eventhub/eventhub/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Event{},
		&models.RSVP{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// One RSVP per (user, event); the constraint is the final arbiter under
	// concurrent duplicate requests.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_rsvp_user_event
		ON rsvps (user_id, event_id)
	`)

	return db
}
