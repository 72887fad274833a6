package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UserTypePlayer  = "player"
	UserTypeManager = "manager"
)

type User struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	UserType     string `gorm:"size:20;not null" json:"user_type"`

	FullName     string     `gorm:"size:100" json:"full_name"`
	Phone        string     `gorm:"size:20" json:"phone"`
	Address      string     `gorm:"size:255" json:"address"`
	BirthDate    *time.Time `json:"birth_date"`
	ProfileImage string     `gorm:"size:500" json:"profile_image"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// PlayerSport is one sport a player lists on their profile, with a
// self-declared skill level.
type PlayerSport struct {
	SportType  string `json:"sport_type"`
	SkillLevel string `json:"skill_level"`
}

// PlayerProfile holds player-only data. EventsParticipated is bumped
// best-effort when a reservation completes.
type PlayerProfile struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;uniqueIndex" json:"user_id"`

	Sports             []PlayerSport `gorm:"serializer:json" json:"sports"`
	EventsParticipated int           `gorm:"default:0" json:"events_participated"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *PlayerProfile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type ManagerProfile struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID string `gorm:"size:36;uniqueIndex" json:"user_id"`

	CompanyName     string `gorm:"size:100" json:"company_name"`
	CompanyDocument string `gorm:"size:50" json:"company_document"`
	CompanyAddress  string `gorm:"size:255" json:"company_address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *ManagerProfile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
