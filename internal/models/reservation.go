package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Reservation struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	SpaceID   string `gorm:"size:36;index" json:"space_id"`
	SpaceName string `gorm:"size:100" json:"space_name"`

	// EventID is optional; when set, the reservation was made for an
	// event owned by the same organizer.
	EventID *string `gorm:"size:36" json:"event_id"`

	OrganizerID    string `gorm:"size:36;index" json:"organizer_id"`
	OrganizerName  string `gorm:"size:100" json:"organizer_name"`
	OrganizerEmail string `gorm:"size:100" json:"organizer_email"`
	OrganizerPhone string `gorm:"size:20" json:"organizer_phone"`

	SportType string `gorm:"size:50" json:"sport_type"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `gorm:"index" json:"end_time"`

	ParticipantsCount int     `json:"participants_count"`
	TotalPrice        float64 `json:"total_price"`

	Status          string `gorm:"size:20;index;default:'pending'" json:"status"`
	Notes           string `gorm:"size:500" json:"notes"`
	RejectionReason string `gorm:"size:500" json:"rejection_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Reservation) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
