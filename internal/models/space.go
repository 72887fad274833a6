package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Space struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	ManagerID string `gorm:"size:36;index" json:"manager_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:1000" json:"description"`

	Location Location `gorm:"embedded;embeddedPrefix:location_" json:"location"`

	Amenities []string `gorm:"serializer:json" json:"amenities"`

	AvailableSports []SpaceSport `gorm:"constraint:OnDelete:CASCADE" json:"available_sports"`
	Photos          []SpacePhoto `gorm:"constraint:OnDelete:CASCADE" json:"photos"`
	OpeningHours    []SpaceHours `gorm:"constraint:OnDelete:CASCADE" json:"opening_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Space) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type SpaceSport struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	SpaceID string `gorm:"size:36;index" json:"space_id"`

	SportType       string  `gorm:"size:50;not null" json:"sport_type"`
	PricePerHour    float64 `json:"price_per_hour"`
	MaxParticipants *int    `json:"max_participants"`
	Description     string  `gorm:"size:255" json:"description"`
}

func (s *SpaceSport) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

type SpacePhoto struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	SpaceID string `gorm:"size:36;index" json:"space_id"`

	URL       string `gorm:"size:500;not null" json:"url"`
	ObjectKey string `gorm:"size:255" json:"-"`
	IsPrimary bool   `gorm:"default:false" json:"is_primary"`

	AddedAt time.Time `json:"added_at"`
}

func (p *SpacePhoto) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// SpaceHours declares the opening window for one weekday.
// Weekday follows time.Weekday (0 = Sunday). Times are "15:04" wall clock.
type SpaceHours struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	SpaceID string `gorm:"size:36;index:idx_space_weekday,unique" json:"space_id"`

	Weekday  int    `gorm:"index:idx_space_weekday,unique" json:"weekday"`
	OpensAt  string `gorm:"size:5" json:"opens_at"`
	ClosesAt string `gorm:"size:5" json:"closes_at"`
}

func (h *SpaceHours) BeforeCreate(_ *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
