package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/httpresp"
	"github.com/whatsport/whatsport-api/internal/middleware"
	"github.com/whatsport/whatsport-api/internal/models"
	resuc "github.com/whatsport/whatsport-api/internal/usecase/reservation"
)

type ReservationHandler struct {
	db *gorm.DB

	create    *resuc.CreateReservation
	approve   *resuc.ApproveReservation
	reject    *resuc.RejectReservation
	cancel    *resuc.CancelReservation
	complete  *resuc.CompleteReservation
	listMine  *resuc.ListMyReservations
	listSpace *resuc.ListSpaceReservations
	get       *resuc.GetReservation
}

func NewReservationHandler(
	db *gorm.DB,
	create *resuc.CreateReservation,
	approve *resuc.ApproveReservation,
	reject *resuc.RejectReservation,
	cancel *resuc.CancelReservation,
	complete *resuc.CompleteReservation,
	listMine *resuc.ListMyReservations,
	listSpace *resuc.ListSpaceReservations,
	get *resuc.GetReservation,
) *ReservationHandler {
	return &ReservationHandler{
		db:        db,
		create:    create,
		approve:   approve,
		reject:    reject,
		cancel:    cancel,
		complete:  complete,
		listMine:  listMine,
		listSpace: listSpace,
		get:       get,
	}
}

// --------- Requests ---------

type CreateReservationRequest struct {
	SpaceID string  `json:"space_id" binding:"required"`
	EventID *string `json:"event_id"`

	SportType string `json:"sport_type" binding:"required"`

	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`

	ParticipantsCount int    `json:"participants_count" binding:"required,min=1"`
	Notes             string `json:"notes"`
}

type RejectReservationRequest struct {
	Reason string `json:"reason"`
}

// --------- Player side ---------

func (h *ReservationHandler) Create(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res, err := h.create.Execute(c.Request.Context(), actor, resuc.CreateReservationInput{
		SpaceID:           req.SpaceID,
		EventID:           req.EventID,
		SportType:         req.SportType,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		ParticipantsCount: req.ParticipantsCount,
		Notes:             req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Created(c, res)
}

func (h *ReservationHandler) ListMine(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	page, perPage := pagination(c)
	items, total, err := h.listMine.Execute(c.Request.Context(), actor.ID, resuc.ListReservationsInput{
		Status:   c.Query("status"),
		Upcoming: c.Query("upcoming") == "true",
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Page(c, items, total, page, perPage)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	res, err := h.cancel.Execute(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, res)
}

// --------- Manager side ---------

func (h *ReservationHandler) ListForSpace(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	page, perPage := pagination(c)
	items, total, err := h.listSpace.Execute(c.Request.Context(), actor, c.Param("id"), resuc.ListReservationsInput{
		Status:   c.Query("status"),
		Upcoming: c.Query("upcoming") == "true",
		Page:     page,
		PerPage:  perPage,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.Page(c, items, total, page, perPage)
}

func (h *ReservationHandler) Approve(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	res, err := h.approve.Execute(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) Reject(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req RejectReservationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.BadRequest(c, "invalid_request", err.Error())
			return
		}
	}

	res, err := h.reject.Execute(c.Request.Context(), actor, c.Param("id"), req.Reason)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) Complete(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	res, err := h.complete.Execute(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, res)
}

// --------- Shared ---------

func (h *ReservationHandler) Get(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	res, err := h.get.Execute(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *ReservationHandler) actor(c *gin.Context) (resuc.Actor, bool) {
	userID := c.GetString(middleware.ContextUserID)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.Unauthorized(c, "user_not_found", "The authenticated user no longer exists.")
		return resuc.Actor{}, false
	}

	return resuc.Actor{
		ID:    user.ID,
		Name:  user.FullName,
		Email: user.Email,
		Phone: user.Phone,
	}, true
}
