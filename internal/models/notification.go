package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationEventCreated         = "event_created"
	NotificationEventUpdated         = "event_updated"
	NotificationEventCanceled        = "event_canceled"
	NotificationEventNewParticipant  = "event_new_participant"
	NotificationEventParticipantLeft = "event_participant_left"
	NotificationReservationRequest   = "reservation_request"
	NotificationReservationApproved  = "reservation_approved"
	NotificationReservationRejected  = "reservation_rejected"
	NotificationReservationCanceled  = "reservation_canceled"
)

type Notification struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	UserID string `gorm:"size:36;index" json:"user_id"`
	Type   string `gorm:"size:50;not null" json:"type"`

	Title   string `gorm:"size:100" json:"title"`
	Message string `gorm:"size:500" json:"message"`

	// RelatedID is a weak reference to the event or reservation that
	// triggered the notification.
	RelatedID *string `gorm:"size:36" json:"related_id"`
	ActionURL string  `gorm:"size:500" json:"action_url"`

	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
