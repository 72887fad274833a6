package handlers

import (
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/whatsport/whatsport-api/internal/cache"
	"github.com/whatsport/whatsport-api/internal/httperr"
	"github.com/whatsport/whatsport-api/internal/httpresp"
	"github.com/whatsport/whatsport-api/internal/middleware"
	"github.com/whatsport/whatsport-api/internal/models"
	"github.com/whatsport/whatsport-api/internal/storage"
)

const maxPhotoUploadBytes = 5 << 20

type SpacePhotoHandler struct {
	db     *gorm.DB
	spaces *cache.SpaceCache
	store  *storage.PhotoStore
}

func NewSpacePhotoHandler(db *gorm.DB, spaces *cache.SpaceCache, store *storage.PhotoStore) *SpacePhotoHandler {
	return &SpacePhotoHandler{db: db, spaces: spaces, store: store}
}

type AddPhotoRequest struct {
	URL       string `json:"url" binding:"required,url"`
	IsPrimary bool   `json:"is_primary"`
}

// Add registers an externally hosted photo by URL.
func (h *SpacePhotoHandler) Add(c *gin.Context) {
	space, ok := h.ownedSpace(c)
	if !ok {
		return
	}

	var req AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	photo := models.SpacePhoto{
		SpaceID:   space.ID,
		URL:       req.URL,
		IsPrimary: req.IsPrimary,
		AddedAt:   time.Now().UTC(),
	}
	if err := h.savePhoto(c, &photo); err != nil {
		httperr.Internal(c, "failed_to_add_photo", "Could not add the photo.")
		return
	}

	h.spaces.Invalidate(c.Request.Context(), space.ID)
	httpresp.Created(c, photo)
}

// Upload accepts a multipart image, re-encodes it as webp and stores it
// in the configured bucket.
func (h *SpacePhotoHandler) Upload(c *gin.Context) {
	space, ok := h.ownedSpace(c)
	if !ok {
		return
	}

	if !h.store.Enabled() {
		httperr.Write(c, http.StatusBadGateway, "photo_storage_unavailable", "Photo storage is not configured.")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo_file", "A photo file is required.")
		return
	}
	if fileHeader.Size > maxPhotoUploadBytes {
		httperr.BadRequest(c, "photo_too_large", "Photos are limited to 5MB.")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_photo_file", "Could not read the photo file.")
		return
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		httperr.BadRequest(c, "invalid_photo_file", "Could not read the photo file.")
		return
	}

	encoded, err := storage.ProcessPhoto(raw)
	if err != nil {
		httperr.BadRequest(c, "unsupported_photo_format", "Only jpeg, png and webp photos are accepted.")
		return
	}

	url, key, err := h.store.Put(c.Request.Context(), space.ID, encoded)
	if err != nil {
		log.Println("photo upload error:", err)
		httperr.Write(c, http.StatusBadGateway, "photo_upload_failed", "Could not store the photo.")
		return
	}

	photo := models.SpacePhoto{
		SpaceID:   space.ID,
		URL:       url,
		ObjectKey: key,
		IsPrimary: c.PostForm("is_primary") == "true",
		AddedAt:   time.Now().UTC(),
	}
	if err := h.savePhoto(c, &photo); err != nil {
		httperr.Internal(c, "failed_to_add_photo", "Could not add the photo.")
		return
	}

	h.spaces.Invalidate(c.Request.Context(), space.ID)
	httpresp.Created(c, photo)
}

func (h *SpacePhotoHandler) SetPrimary(c *gin.Context) {
	space, ok := h.ownedSpace(c)
	if !ok {
		return
	}

	photoID := c.Param("photoID")

	err := h.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SpacePhoto{}).
			Where("id = ? AND space_id = ?", photoID, space.ID).
			Update("is_primary", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.SpacePhoto{}).
			Where("space_id = ? AND id <> ?", space.ID, photoID).
			Update("is_primary", false).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "photo_not_found", "Photo not found.")
			return
		}
		httperr.Internal(c, "failed_to_update_photo", "Could not update the photo.")
		return
	}

	h.spaces.Invalidate(c.Request.Context(), space.ID)
	httpresp.OK(c, gin.H{"message": "primary photo updated"})
}

func (h *SpacePhotoHandler) Remove(c *gin.Context) {
	space, ok := h.ownedSpace(c)
	if !ok {
		return
	}

	photoID := c.Param("photoID")

	var photo models.SpacePhoto
	err := h.db.First(&photo, "id = ? AND space_id = ?", photoID, space.ID).Error
	if err != nil {
		httperr.NotFound(c, "photo_not_found", "Photo not found.")
		return
	}

	if err := h.db.Delete(&photo).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_photo", "Could not delete the photo.")
		return
	}

	// Bucket cleanup is best-effort; the row is already gone.
	if photo.ObjectKey != "" && h.store.Enabled() {
		if err := h.store.Delete(c.Request.Context(), photo.ObjectKey); err != nil {
			log.Println("photo object delete error:", err)
		}
	}

	h.spaces.Invalidate(c.Request.Context(), space.ID)
	c.Status(http.StatusNoContent)
}

// savePhoto keeps the at-most-one-primary invariant when inserting.
func (h *SpacePhotoHandler) savePhoto(c *gin.Context, photo *models.SpacePhoto) error {
	return h.db.Transaction(func(tx *gorm.DB) error {
		if photo.IsPrimary {
			err := tx.Model(&models.SpacePhoto{}).
				Where("space_id = ?", photo.SpaceID).
				Update("is_primary", false).Error
			if err != nil {
				return err
			}
		}
		return tx.Create(photo).Error
	})
}

func (h *SpacePhotoHandler) ownedSpace(c *gin.Context) (*models.Space, bool) {
	managerID := c.GetString(middleware.ContextUserID)

	var space models.Space
	if err := h.db.First(&space, "id = ?", c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "space_not_found", "Space not found.")
		return nil, false
	}
	if space.ManagerID != managerID {
		httperr.Forbidden(c, "not_space_manager", "You do not manage this space.")
		return nil, false
	}
	return &space, true
}
