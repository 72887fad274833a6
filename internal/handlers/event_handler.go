package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/httpresp"
	"github.com/whatsport/whatsport-api/internal/middleware"
	"github.com/whatsport/whatsport-api/internal/models"
	eventuc "github.com/whatsport/whatsport-api/internal/usecase/event"
)

type EventHandler struct {
	db *gorm.DB

	create *eventuc.CreateEvent
	update *eventuc.UpdateEvent
	delete *eventuc.DeleteEvent
	get    *eventuc.GetEvent
	list   *eventuc.ListEvents
	nearby *eventuc.ListNearbyEvents
	join   *eventuc.JoinEvent
	leave  *eventuc.LeaveEvent
}

func NewEventHandler(
	db *gorm.DB,
	create *eventuc.CreateEvent,
	update *eventuc.UpdateEvent,
	del *eventuc.DeleteEvent,
	get *eventuc.GetEvent,
	list *eventuc.ListEvents,
	nearby *eventuc.ListNearbyEvents,
	join *eventuc.JoinEvent,
	leave *eventuc.LeaveEvent,
) *EventHandler {
	return &EventHandler{
		db:     db,
		create: create,
		update: update,
		delete: del,
		get:    get,
		list:   list,
		nearby: nearby,
		join:   join,
		leave:  leave,
	}
}

// --------- Requests ---------

type PositionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	SportType   string `json:"sport_type" binding:"required"`
	SkillLevel  string `json:"skill_level"`

	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`

	Location        models.Location `json:"location"`
	MaxParticipants int             `json:"max_participants" binding:"required,min=1"`

	SpaceID        *string `json:"space_id"`
	PricePerPerson float64 `json:"price_per_person"`
	IsPrivate      bool    `json:"is_private"`

	Positions []PositionRequest `json:"positions" binding:"dive"`
}

type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	SportType   *string `json:"sport_type"`
	SkillLevel  *string `json:"skill_level"`

	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`

	Location        *models.Location `json:"location"`
	MaxParticipants *int             `json:"max_participants"`

	SpaceID        *string  `json:"space_id"`
	PricePerPerson *float64 `json:"price_per_person"`
	IsPrivate      *bool    `json:"is_private"`
}

type JoinEventRequest struct {
	PositionID string `json:"position_id"`
}

// --------- Handlers ---------

func (h *EventHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	in := eventuc.CreateEventInput{
		Title:           req.Title,
		Description:     req.Description,
		SportType:       req.SportType,
		SkillLevel:      req.SkillLevel,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
		SpaceID:         req.SpaceID,
		PricePerPerson:  req.PricePerPerson,
		IsPrivate:       req.IsPrivate,
	}
	for _, p := range req.Positions {
		in.Positions = append(in.Positions, eventuc.PositionInput{
			Name:        p.Name,
			Description: p.Description,
			Quantity:    p.Quantity,
		})
	}

	ev, err := h.create.Execute(c.Request.Context(), actor, in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, ev)
}

func (h *EventHandler) List(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	page, perPage := pagination(c)
	in := eventuc.ListEventsInput{
		Participant: c.Query("participant") == "true",
		Upcoming:    c.Query("upcoming") == "true",
		SportType:   c.Query("sport_type"),
		SkillLevel:  c.Query("skill_level"),
		Page:        page,
		PerPage:     perPage,
	}

	events, total, err := h.list.Execute(c.Request.Context(), actor, in)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Page(c, events, total, page, perPage)
}

func (h *EventHandler) Nearby(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	lat, err1 := strconv.ParseFloat(c.Query("lat"), 64)
	lng, err2 := strconv.ParseFloat(c.Query("lng"), 64)
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_coordinates", "lat and lng query parameters are required.")
		return
	}
	radius, err := strconv.ParseFloat(c.DefaultQuery("radius_km", "10"), 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_radius", "radius_km must be a number.")
		return
	}

	page, perPage := pagination(c)
	events, total, err := h.nearby.Execute(c.Request.Context(), actor, eventuc.NearbyInput{
		Lat:      lat,
		Lng:      lng,
		RadiusKm: radius,
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Page(c, events, total, page, perPage)
}

func (h *EventHandler) Get(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	ev, err := h.get.Execute(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ev)
}

func (h *EventHandler) Update(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	ev, err := h.update.Execute(c.Request.Context(), actor, c.Param("id"), eventuc.UpdateEventInput{
		Title:           req.Title,
		Description:     req.Description,
		SportType:       req.SportType,
		SkillLevel:      req.SkillLevel,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
		SpaceID:         req.SpaceID,
		PricePerPerson:  req.PricePerPerson,
		IsPrivate:       req.IsPrivate,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, ev)
}

func (h *EventHandler) Delete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), actor, c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *EventHandler) Join(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req JoinEventRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", err.Error())
			return
		}
	}

	participant, err := h.join.Execute(c.Request.Context(), actor, c.Param("id"), req.PositionID)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, participant)
}

func (h *EventHandler) Leave(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.leave.Execute(c.Request.Context(), actor, c.Param("id")); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// --------- Helpers ---------

func (h *EventHandler) actor(c *gin.Context) (eventuc.Actor, bool) {
	userID := c.GetString(middleware.ContextUserID)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.Unauthorized(c, "user_not_found", "The authenticated user no longer exists.")
		return eventuc.Actor{}, false
	}

	return eventuc.Actor{
		ID:    user.ID,
		Name:  user.FullName,
		Email: user.Email,
	}, true
}
