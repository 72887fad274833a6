package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whatsport/whatsport-api/internal/cache"
	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/httpresp"
	"github.com/whatsport/whatsport-api/internal/middleware"
	"github.com/whatsport/whatsport-api/internal/models"
)

type SpaceHandler struct {
	db     *gorm.DB
	spaces *cache.SpaceCache
}

func NewSpaceHandler(db *gorm.DB, spaces *cache.SpaceCache) *SpaceHandler {
	return &SpaceHandler{db: db, spaces: spaces}
}

// --------- Requests ---------

type SportInput struct {
	SportType       string  `json:"sport_type" binding:"required"`
	PricePerHour    float64 `json:"price_per_hour" binding:"min=0"`
	MaxParticipants *int    `json:"max_participants"`
	Description     string  `json:"description"`
}

type HoursInput struct {
	Weekday  int    `json:"weekday" binding:"min=0,max=6"`
	OpensAt  string `json:"opens_at" binding:"required"`
	ClosesAt string `json:"closes_at" binding:"required"`
}

type CreateSpaceRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Location    models.Location `json:"location"`
	Amenities   []string        `json:"amenities"`

	AvailableSports []SportInput `json:"available_sports" binding:"required,min=1,dive"`
	OpeningHours    []HoursInput `json:"opening_hours" binding:"dive"`
}

type UpdateSpaceRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Location    *models.Location `json:"location"`
	Amenities   *[]string        `json:"amenities"`

	AvailableSports *[]SportInput `json:"available_sports"`
	OpeningHours    *[]HoursInput `json:"opening_hours"`
}

func validateHours(hours []HoursInput) (string, bool) {
	seen := map[int]bool{}
	for _, h := range hours {
		if seen[h.Weekday] {
			return "duplicate_weekday", false
		}
		seen[h.Weekday] = true

		opens, err1 := time.Parse("15:04", h.OpensAt)
		closes, err2 := time.Parse("15:04", h.ClosesAt)
		if err1 != nil || err2 != nil {
			return "invalid_time_format", false
		}
		if !opens.Before(closes) {
			return "opens_after_closes", false
		}
	}
	return "", true
}

// --------- Manager CRUD ---------

func (h *SpaceHandler) Create(c *gin.Context) {
	managerID := c.GetString(middleware.ContextUserID)

	var req CreateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if code, ok := validateHours(req.OpeningHours); !ok {
		httperr.BadRequest(c, code, "Opening hours are invalid.")
		return
	}

	space := models.Space{
		ManagerID:   managerID,
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		Amenities:   req.Amenities,
	}
	for _, s := range req.AvailableSports {
		space.AvailableSports = append(space.AvailableSports, models.SpaceSport{
			SportType:       s.SportType,
			PricePerHour:    s.PricePerHour,
			MaxParticipants: s.MaxParticipants,
			Description:     s.Description,
		})
	}
	for _, oh := range req.OpeningHours {
		space.OpeningHours = append(space.OpeningHours, models.SpaceHours{
			Weekday:  oh.Weekday,
			OpensAt:  oh.OpensAt,
			ClosesAt: oh.ClosesAt,
		})
	}

	if err := h.db.Create(&space).Error; err != nil {
		httperr.Internal(c, "failed_to_create_space", "Could not create the space.")
		return
	}

	httpresp.Created(c, space)
}

func (h *SpaceHandler) ListMine(c *gin.Context) {
	managerID := c.GetString(middleware.ContextUserID)
	page, perPage := pagination(c)

	q := h.db.Model(&models.Space{}).Where("manager_id = ?", managerID)

	var total int64
	q.Count(&total)

	var spaces []models.Space
	err := q.Preload("AvailableSports").
		Preload("Photos").
		Preload("OpeningHours").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&spaces).Error
	if err != nil {
		httperr.Internal(c, "failed_to_list_spaces", "Could not list spaces.")
		return
	}

	httpresp.Page(c, spaces, total, page, perPage)
}

func (h *SpaceHandler) Get(c *gin.Context) {
	space, ok := h.loadOwnedSpace(c)
	if !ok {
		return
	}
	httpresp.OK(c, space)
}

func (h *SpaceHandler) Update(c *gin.Context) {
	space, ok := h.loadOwnedSpace(c)
	if !ok {
		return
	}

	var req UpdateSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.OpeningHours != nil {
		if code, ok := validateHours(*req.OpeningHours); !ok {
			httperr.BadRequest(c, code, "Opening hours are invalid.")
			return
		}
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		fields := map[string]any{"updated_at": time.Now().UTC()}
		if req.Name != nil {
			fields["name"] = *req.Name
		}
		if req.Description != nil {
			fields["description"] = *req.Description
		}
		if req.Location != nil {
			fields["location_lat"] = req.Location.Lat
			fields["location_lng"] = req.Location.Lng
			fields["location_address"] = req.Location.Address
			fields["location_city"] = req.Location.City
			fields["location_state"] = req.Location.State
			fields["location_postal_code"] = req.Location.PostalCode
		}
		if req.Amenities != nil {
			fields["amenities"] = *req.Amenities
		}
		if err := tx.Model(&models.Space{}).Where("id = ?", space.ID).Updates(fields).Error; err != nil {
			return err
		}

		if req.AvailableSports != nil {
			if err := tx.Where("space_id = ?", space.ID).Delete(&models.SpaceSport{}).Error; err != nil {
				return err
			}
			for _, s := range *req.AvailableSports {
				sport := models.SpaceSport{
					SpaceID:         space.ID,
					SportType:       s.SportType,
					PricePerHour:    s.PricePerHour,
					MaxParticipants: s.MaxParticipants,
					Description:     s.Description,
				}
				if err := tx.Create(&sport).Error; err != nil {
					return err
				}
			}
		}

		if req.OpeningHours != nil {
			if err := tx.Where("space_id = ?", space.ID).Delete(&models.SpaceHours{}).Error; err != nil {
				return err
			}
			for _, oh := range *req.OpeningHours {
				hours := models.SpaceHours{
					SpaceID:  space.ID,
					Weekday:  oh.Weekday,
					OpensAt:  oh.OpensAt,
					ClosesAt: oh.ClosesAt,
				}
				if err := tx.Create(&hours).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_space", "Could not update the space.")
		return
	}

	h.spaces.Invalidate(c.Request.Context(), space.ID)

	var updated models.Space
	h.db.Preload("AvailableSports").Preload("Photos").Preload("OpeningHours").
		First(&updated, "id = ?", space.ID)
	httpresp.OK(c, updated)
}

// Delete refuses while future reservations or events still point at the
// space.
func (h *SpaceHandler) Delete(c *gin.Context) {
	space, ok := h.loadOwnedSpace(c)
	if !ok {
		return
	}

	now := time.Now().UTC()

	var pending int64
	h.db.Model(&models.Reservation{}).
		Where("space_id = ? AND status IN ? AND end_time > ?",
			space.ID, []string{"pending", "approved"}, now).
		Count(&pending)
	if pending > 0 {
		httperr.Conflict(c, "space_has_reservations", "The space still has upcoming reservations.")
		return
	}

	var events int64
	h.db.Model(&models.Event{}).
		Where("space_id = ? AND end_time > ?", space.ID, now).
		Count(&events)
	if events > 0 {
		httperr.Conflict(c, "space_has_events", "The space still has upcoming events.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("space_id = ?", space.ID).Delete(&models.SpaceSport{}).Error; err != nil {
			return err
		}
		if err := tx.Where("space_id = ?", space.ID).Delete(&models.SpacePhoto{}).Error; err != nil {
			return err
		}
		if err := tx.Where("space_id = ?", space.ID).Delete(&models.SpaceHours{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Space{}, "id = ?", space.ID).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_space", "Could not delete the space.")
		return
	}

	h.spaces.Invalidate(c.Request.Context(), space.ID)

	c.Status(http.StatusNoContent)
}

// --------- Public search ---------

func (h *SpaceHandler) Search(c *gin.Context) {
	page, perPage := pagination(c)

	q := h.db.Model(&models.Space{})

	// Filtros opcionais
	if term := c.Query("q"); term != "" {
		like := "%" + term + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if city := c.Query("city"); city != "" {
		q = q.Where("location_city ILIKE ?", city)
	}
	if sport := c.Query("sport_type"); sport != "" {
		q = q.Where("EXISTS (SELECT 1 FROM space_sports ss WHERE ss.space_id = spaces.id AND ss.sport_type = ?)", sport)
	}

	// Total
	var total int64
	q.Count(&total)

	// Listagem
	var spaces []models.Space
	err := q.Preload("AvailableSports").
		Preload("Photos").
		Preload("OpeningHours").
		Order("name ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&spaces).Error
	if err != nil {
		httperr.Internal(c, "failed_to_search_spaces", "Could not search spaces.")
		return
	}

	httpresp.Page(c, spaces, total, page, perPage)
}

func (h *SpaceHandler) GetPublic(c *gin.Context) {
	var space models.Space
	err := h.db.Preload("AvailableSports").Preload("Photos").Preload("OpeningHours").
		First(&space, "id = ?", c.Param("id")).Error
	if err != nil {
		httperr.NotFound(c, "space_not_found", "Space not found.")
		return
	}
	httpresp.OK(c, space)
}

// --------- Helpers ---------

func (h *SpaceHandler) loadOwnedSpace(c *gin.Context) (*models.Space, bool) {
	managerID := c.GetString(middleware.ContextUserID)

	var space models.Space
	err := h.db.Preload("AvailableSports").Preload("Photos").Preload("OpeningHours").
		First(&space, "id = ?", c.Param("id")).Error
	if err != nil {
		httperr.NotFound(c, "space_not_found", "Space not found.")
		return nil, false
	}
	if space.ManagerID != managerID {
		httperr.Forbidden(c, "not_space_manager", "You do not manage this space.")
		return nil, false
	}
	return &space, true
}
