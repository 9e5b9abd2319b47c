package models

import "time"

type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	Events []Event `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

type Location string

const (
	LocationDhaka      Location = "DHAKA"
	LocationSylhet     Location = "SYLHET"
	LocationChottogram Location = "CHOTTOGRAM"
	LocationRajshahi   Location = "RAJSHAHI"
	LocationMymensingh Location = "MYMENSINGH"
	LocationRangpur    Location = "RANGPUR"
	LocationKhulna     Location = "KHULNA"
	LocationBarishal   Location = "BARISHAL"
)

var Locations = []Location{
	LocationDhaka, LocationSylhet, LocationChottogram, LocationRajshahi,
	LocationMymensingh, LocationRangpur, LocationKhulna, LocationBarishal,
}

func ValidLocation(l Location) bool {
	for _, known := range Locations {
		if l == known {
			return true
		}
	}
	return false
}

type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Date        time.Time `gorm:"type:date;not null" json:"date"`
	Time        string    `gorm:"not null" json:"time"`
	Location    Location  `gorm:"type:varchar(20);not null;default:'DHAKA'" json:"location"`
	ImagePath   string    `gorm:"default:'image/events.jpeg'" json:"image_path"`
	CategoryID  uint      `gorm:"not null" json:"category_id"`
	// Nullable: events outlive their organizer.
	OrganizerID *uint     `json:"organizer_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Category  *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Organizer *User     `gorm:"foreignKey:OrganizerID;constraint:OnDelete:SET NULL" json:"organizer,omitempty"`
	RSVPs     []RSVP    `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"-"`
}

// OwnedBy reports whether the event is organized by the given user.
func (e *Event) OwnedBy(userID uint) bool {
	return e.OrganizerID != nil && *e.OrganizerID == userID
}
