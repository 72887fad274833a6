package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/middleware"
	"github.com/whatsport/whatsport-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type UpdateProfileRequest struct {
	FullName     *string    `json:"full_name"`
	Phone        *string    `json:"phone"`
	Address      *string    `json:"address"`
	BirthDate    *time.Time `json:"birth_date"`
	ProfileImage *string    `json:"profile_image"`

	// Player sub-profile
	Sports *[]models.PlayerSport `json:"sports"`

	// Manager sub-profile
	CompanyName     *string `json:"company_name"`
	CompanyDocument *string `json:"company_document"`
	CompanyAddress  *string `json:"company_address"`
}

// Only fields present in the request body are patched.

func userFields(req UpdateProfileRequest) map[string]any {
	fields := map[string]any{}
	if req.FullName != nil {
		fields["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.Address != nil {
		fields["address"] = *req.Address
	}
	if req.BirthDate != nil {
		fields["birth_date"] = *req.BirthDate
	}
	if req.ProfileImage != nil {
		fields["profile_image"] = *req.ProfileImage
	}
	return fields
}

func playerProfileFields(req UpdateProfileRequest) map[string]any {
	fields := map[string]any{}
	if req.Sports != nil {
		fields["sports"] = *req.Sports
	}
	return fields
}

func managerProfileFields(req UpdateProfileRequest) map[string]any {
	fields := map[string]any{}
	if req.CompanyName != nil {
		fields["company_name"] = *req.CompanyName
	}
	if req.CompanyDocument != nil {
		fields["company_document"] = *req.CompanyDocument
	}
	if req.CompanyAddress != nil {
		fields["company_address"] = *req.CompanyAddress
	}
	return fields
}

func (h *MeHandler) Get(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	resp := gin.H{"user": user}

	switch user.UserType {
	case models.UserTypePlayer:
		var profile models.PlayerProfile
		if err := h.db.First(&profile, "user_id = ?", userID).Error; err == nil {
			resp["player_profile"] = profile
		}
	case models.UserTypeManager:
		var profile models.ManagerProfile
		if err := h.db.First(&profile, "user_id = ?", userID).Error; err == nil {
			resp["manager_profile"] = profile
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *MeHandler) Update(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if fields := userFields(req); len(fields) > 0 {
		if err := h.db.Model(&user).Updates(fields).Error; err != nil {
			httperr.Internal(c, "failed_to_update_profile", "Could not update the profile.")
			return
		}
	}

	switch user.UserType {
	case models.UserTypePlayer:
		if fields := playerProfileFields(req); len(fields) > 0 {
			err := h.db.Model(&models.PlayerProfile{}).
				Where("user_id = ?", userID).
				Updates(fields).Error
			if err != nil {
				httperr.Internal(c, "failed_to_update_profile", "Could not update the player profile.")
				return
			}
		}
	case models.UserTypeManager:
		if fields := managerProfileFields(req); len(fields) > 0 {
			err := h.db.Model(&models.ManagerProfile{}).
				Where("user_id = ?", userID).
				Updates(fields).Error
			if err != nil {
				httperr.Internal(c, "failed_to_update_profile", "Could not update the company profile.")
				return
			}
		}
	}

	h.Get(c)
}
