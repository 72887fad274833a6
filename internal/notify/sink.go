package notify

import (
	"gorm.io/gorm"

	"github.com/whatsport/whatsport-api/internal/models"
)

// Sink persists notifications. Delivery beyond storage (push, email) is
// out of scope; readers poll via the notifications API.
type Sink struct {
	db *gorm.DB
}

func NewSink(db *gorm.DB) *Sink {
	return &Sink{db: db}
}

func (s *Sink) Store(n Notification) error {
	if s == nil || s.db == nil {
		return nil
	}

	row := models.Notification{
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		ActionURL: n.ActionURL,
	}
	if n.RelatedID != "" {
		related := n.RelatedID
		row.RelatedID = &related
	}

	return s.db.Create(&row).Error
}
