package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is embedded in events and spaces. Lat/Lng are pointers so
// records without coordinates can be told apart from (0, 0).
type Location struct {
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
	Address    string   `gorm:"size:255" json:"address"`
	City       string   `gorm:"size:100" json:"city"`
	State      string   `gorm:"size:50" json:"state"`
	PostalCode string   `gorm:"size:20" json:"postal_code"`
}

type Event struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Description string `gorm:"size:1000" json:"description"`
	SportType   string `gorm:"size:50;index" json:"sport_type"`
	SkillLevel  string `gorm:"size:50" json:"skill_level"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `gorm:"index" json:"end_time"`

	Location Location `gorm:"embedded;embeddedPrefix:location_" json:"location"`

	MaxParticipants int `json:"max_participants"`

	OrganizerID   string `gorm:"size:36;index" json:"organizer_id"`
	OrganizerName string `gorm:"size:100" json:"organizer_name"`

	// SpaceID is a weak reference; SpaceName is a snapshot taken at
	// create/update time and not kept in sync afterwards.
	SpaceID   *string `gorm:"size:36" json:"space_id"`
	SpaceName string  `gorm:"size:100" json:"space_name"`

	PricePerPerson float64 `json:"price_per_person"`
	IsPrivate      bool    `gorm:"default:false" json:"is_private"`

	Positions    []EventPosition    `gorm:"constraint:OnDelete:CASCADE" json:"positions"`
	Participants []EventParticipant `gorm:"constraint:OnDelete:CASCADE" json:"participants"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *Event) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

type EventPosition struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	EventID string `gorm:"size:36;index" json:"event_id"`

	Name        string `gorm:"size:50;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Quantity    int    `gorm:"default:1" json:"quantity"`
}

func (p *EventPosition) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type EventParticipant struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	EventID string `gorm:"size:36;index:idx_event_user,unique" json:"event_id"`
	UserID  string `gorm:"size:36;index:idx_event_user,unique" json:"user_id"`

	UserName  string `gorm:"size:100" json:"user_name"`
	UserEmail string `gorm:"size:100" json:"user_email"`

	PositionID   *string `gorm:"size:36" json:"position_id"`
	PositionName string  `gorm:"size:50" json:"position_name"`

	Confirmed bool      `gorm:"default:true" json:"confirmed"`
	JoinedAt  time.Time `json:"joined_at"`
}

func (p *EventParticipant) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
