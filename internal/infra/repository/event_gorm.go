package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/whatsport/whatsport-api/internal/cache"
	domain "github.com/whatsport/whatsport-api/internal/domain/event"
	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/models"
)

type EventGormRepository struct {
	db     *gorm.DB
	spaces *cache.SpaceCache
}

func NewEventGormRepository(db *gorm.DB, spaces *cache.SpaceCache) *EventGormRepository {
	return &EventGormRepository{db: db, spaces: spaces}
}

// --------------------------------------------------
// Space (weak-ref resolution)
// --------------------------------------------------

func (r *EventGormRepository) GetSpace(
	ctx context.Context,
	id string,
) (*models.Space, error) {

	if space, ok := r.spaces.Get(ctx, id); ok {
		return space, nil
	}

	var space models.Space
	if err := r.db.WithContext(ctx).
		Preload("AvailableSports").
		Preload("Photos").
		Preload("OpeningHours").
		First(&space, "id = ?", id).Error; err != nil {
		return nil, err
	}

	r.spaces.Set(ctx, &space)
	return &space, nil
}

// --------------------------------------------------
// Event (create / update, organizer conflict scope)
// --------------------------------------------------

func (r *EventGormRepository) CreateEventNoConflict(
	ctx context.Context,
	ev *models.Event,
) error {

	return withSerializableScope(ctx, r.db, func(tx *gorm.DB) error {
		var existing models.Event
		res := lockOverlapping(tx, &existing,
			"organizer_id = ? AND start_time < ? AND end_time > ?",
			ev.OrganizerID, ev.EndTime, ev.StartTime,
		)
		if res.Error == nil {
			return httperr.ErrConflict(
				"event_time_conflict",
				"You already have an event scheduled in this time slot.",
			)
		}
		if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return res.Error
		}

		return tx.Create(ev).Error
	})
}

func (r *EventGormRepository) UpdateEventNoConflict(
	ctx context.Context,
	ev *models.Event,
	fields map[string]any,
	start time.Time,
	end time.Time,
) error {

	return withSerializableScope(ctx, r.db, func(tx *gorm.DB) error {
		var existing models.Event
		res := lockOverlapping(tx, &existing,
			"id <> ? AND organizer_id = ? AND start_time < ? AND end_time > ?",
			ev.ID, ev.OrganizerID, end, start,
		)
		if res.Error == nil {
			return httperr.ErrConflict(
				"event_time_conflict",
				"You already have an event scheduled in this time slot.",
			)
		}
		if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return res.Error
		}

		return tx.Model(&models.Event{}).
			Where("id = ?", ev.ID).
			Updates(fields).Error
	})
}

func (r *EventGormRepository) UpdateEventFields(
	ctx context.Context,
	eventID string,
	fields map[string]any,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", eventID).
		Updates(fields).Error
}

func (r *EventGormRepository) GetEvent(
	ctx context.Context,
	id string,
) (*models.Event, error) {

	var ev models.Event
	if err := r.db.WithContext(ctx).
		Preload("Positions").
		Preload("Participants").
		First(&ev, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &ev, nil
}

func (r *EventGormRepository) DeleteEvent(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&models.EventParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.EventPosition{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Event{}, "id = ?", id).Error
	})
}

// --------------------------------------------------
// Roster
// --------------------------------------------------

func (r *EventGormRepository) AddParticipant(
	ctx context.Context,
	p *models.EventParticipant,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return err
		}
		return touchEvent(tx, p.EventID)
	})
}

func (r *EventGormRepository) RemoveParticipant(
	ctx context.Context,
	eventID string,
	userID string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("event_id = ? AND user_id = ?", eventID, userID).
			Delete(&models.EventParticipant{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrValidation("not_participant", "You are not participating in this event.")
		}
		return touchEvent(tx, eventID)
	})
}

func touchEvent(tx *gorm.DB, eventID string) error {
	return tx.Model(&models.Event{}).
		Where("id = ?", eventID).
		Update("updated_at", time.Now().UTC()).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func visibleScope(viewerID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"is_private = ? OR organizer_id = ? OR EXISTS (SELECT 1 FROM event_participants WHERE event_participants.event_id = events.id AND event_participants.user_id = ?)",
			false, viewerID, viewerID,
		)
	}
}

func (r *EventGormRepository) ListEvents(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Event, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Scopes(visibleScope(f.ViewerID))

	if f.Participant {
		q = q.Where(
			"EXISTS (SELECT 1 FROM event_participants WHERE event_participants.event_id = events.id AND event_participants.user_id = ?)",
			f.ViewerID,
		)
	}
	if f.Upcoming {
		q = q.Where("end_time >= ?", f.Now)
	}
	if f.SportType != "" {
		q = q.Where("sport_type = ?", f.SportType)
	}
	if f.SkillLevel != "" {
		q = q.Where("skill_level = ?", f.SkillLevel)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []models.Event
	if err := q.
		Preload("Positions").
		Preload("Participants").
		Order("start_time ASC").
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *EventGormRepository) ListUpcomingVisible(
	ctx context.Context,
	viewerID string,
	now time.Time,
) ([]models.Event, error) {

	var events []models.Event
	if err := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Scopes(visibleScope(viewerID)).
		Where("end_time >= ?", now).
		Preload("Positions").
		Preload("Participants").
		Order("start_time ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

// Compile-time check
var _ domain.Repository = (*EventGormRepository)(nil)
