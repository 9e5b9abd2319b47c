package models

import "time"

type RSVP struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_rsvp_user_event" json:"user_id"`
	EventID uint `gorm:"not null;uniqueIndex:idx_rsvp_user_event" json:"event_id"`
	// One-time confirmation token, set at creation and never changed.
	Token       string    `gorm:"uniqueIndex;not null" json:"-"`
	IsConfirmed bool      `gorm:"not null;default:false" json:"is_confirmed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Event *Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"event,omitempty"`
}
