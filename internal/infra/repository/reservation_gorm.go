package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/whatsport/whatsport-api/internal/cache"
	domain "github.com/whatsport/whatsport-api/internal/domain/reservation"
	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/models"
)

type ReservationGormRepository struct {
	db     *gorm.DB
	spaces *cache.SpaceCache
}

func NewReservationGormRepository(db *gorm.DB, spaces *cache.SpaceCache) *ReservationGormRepository {
	return &ReservationGormRepository{db: db, spaces: spaces}
}

// --------------------------------------------------
// Weak-ref resolution
// --------------------------------------------------

func (r *ReservationGormRepository) GetSpace(
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

func (r *ReservationGormRepository) GetEvent(
	ctx context.Context,
	id string,
) (*models.Event, error) {

	var ev models.Event
	if err := r.db.WithContext(ctx).
		First(&ev, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &ev, nil
}

// --------------------------------------------------
// Reservation (create, space conflict scope)
// --------------------------------------------------

func (r *ReservationGormRepository) CreateReservationNoConflict(
	ctx context.Context,
	res *models.Reservation,
) error {

	return withSerializableScope(ctx, r.db, func(tx *gorm.DB) error {
		var existing models.Reservation
		out := lockOverlapping(tx, &existing,
			"space_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			res.SpaceID, domain.ActiveStatuses(), res.EndTime, res.StartTime,
		)
		if out.Error == nil {
			return httperr.ErrConflict(
				"reservation_time_conflict",
				"The space is already reserved in this time slot.",
			)
		}
		if !errors.Is(out.Error, gorm.ErrRecordNotFound) {
			return out.Error
		}

		return tx.Create(res).Error
	})
}

func (r *ReservationGormRepository) GetReservation(
	ctx context.Context,
	id string,
) (*models.Reservation, error) {

	var res models.Reservation
	if err := r.db.WithContext(ctx).
		First(&res, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &res, nil
}

func (r *ReservationGormRepository) UpdateReservation(
	ctx context.Context,
	res *models.Reservation,
) error {
	return r.db.WithContext(ctx).Save(res).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func applyReservationFilter(q *gorm.DB, f domain.ListFilter) *gorm.DB {
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Upcoming {
		q = q.Where("end_time >= ?", f.Now)
	}
	return q
}

func (r *ReservationGormRepository) ListForOrganizer(
	ctx context.Context,
	organizerID string,
	f domain.ListFilter,
) ([]models.Reservation, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("organizer_id = ?", organizerID)
	q = applyReservationFilter(q, f)

	return pageReservations(q, f)
}

func (r *ReservationGormRepository) ListForSpace(
	ctx context.Context,
	spaceID string,
	f domain.ListFilter,
) ([]models.Reservation, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Reservation{}).
		Where("space_id = ?", spaceID)
	q = applyReservationFilter(q, f)

	return pageReservations(q, f)
}

func pageReservations(q *gorm.DB, f domain.ListFilter) ([]models.Reservation, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Reservation
	if err := q.
		Order("start_time ASC").
		Offset((f.Page - 1) * f.PerPage).
		Limit(f.PerPage).
		Find(&out).Error; err != nil {
		return nil, 0, err
	}

	return out, total, nil
}

// --------------------------------------------------
// Player profile bookkeeping
// --------------------------------------------------

func (r *ReservationGormRepository) IncrementEventsParticipated(
	ctx context.Context,
	userID string,
) error {

	return r.db.WithContext(ctx).
		Model(&models.PlayerProfile{}).
		Where("user_id = ?", userID).
		UpdateColumn("events_participated", gorm.Expr("events_participated + 1")).Error
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
