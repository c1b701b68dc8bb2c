package controller

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"strings"

	mediadto "onboardku_backend/internals/features/media/dto"
	mediamodel "onboardku_backend/internals/features/media/model"
	helper "onboardku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var allowedCategories = map[string]bool{
	"session_proof": true,
	"document":      true,
	"avatar":        true,
	"other":         true,
}

type MediaController struct {
	DB *gorm.DB
}

func NewMediaController(db *gorm.DB) *MediaController {
	return &MediaController{DB: db}
}

// =============================
// POST /api/media  (multipart: file, media_category)
// =============================
func (ctrl *MediaController) Upload(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Missing file")
	}

	category := strings.TrimSpace(c.FormValue("media_category"))
	if category == "" {
		category = "other"
	}
	if !allowedCategories[category] {
		return helper.Error(c, fiber.StatusBadRequest, "Unknown media category")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	isImage := strings.HasPrefix(contentType, "image/")

	var (
		buf      *bytes.Buffer
		filename string
		mime     string
	)
	if isImage {
		// Images get normalized to webp so session proof photos stay small.
		buf, err = helper.ConvertImageToWebP(fileHeader)
		if err != nil {
			return helper.Error(c, fiber.StatusUnprocessableEntity, "Unsupported or corrupt image")
		}
		filename = helper.GenerateUniqueFilename(fileHeader.Filename, ".webp")
		mime = "image/webp"
	} else {
		src, err := fileHeader.Open()
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Failed to read file")
		}
		defer src.Close()
		buf = new(bytes.Buffer)
		if _, err := io.Copy(buf, src); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Failed to read file")
		}
		filename = helper.GenerateUniqueFilename(fileHeader.Filename, "")
		mime = contentType
	}

	relPath, err := helper.SaveUploadBuffer(category, filename, buf)
	if err != nil {
		log.Printf("[MEDIA] save failed: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to store file")
	}

	size := int64(buf.Len())
	row := mediamodel.MediaModel{
		Filename:         filename,
		OriginalFilename: fileHeader.Filename,
		FilePath:         relPath,
		FileURL:          fmt.Sprintf("/uploads/%s", relPath),
		FileSize:         &size,
		MimeType:         &mime,
		MediaCategory:    category,
		UploadedByUserID: &userID,
	}
	if err := ctrl.DB.Create(&row).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to record upload")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "File uploaded", toMediaResponse(&row))
}

// =============================
// GET /api/media/:id
// =============================
func (ctrl *MediaController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid media ID")
	}
	var row mediamodel.MediaModel
	if err := ctrl.DB.First(&row, "id = ?", id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Media not found")
	}
	return helper.Success(c, "OK", toMediaResponse(&row))
}

// =============================
// DELETE /api/media/:id
// =============================
func (ctrl *MediaController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid media ID")
	}

	var row mediamodel.MediaModel
	if err := ctrl.DB.First(&row, "id = ?", id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Media not found")
	}

	role := helper.GetUserRoleFromToken(c)
	isOwner := row.UploadedByUserID != nil && *row.UploadedByUserID == userID
	if !isOwner && role != "admin" && role != "superadmin" {
		return helper.Error(c, fiber.StatusForbidden, "You may only delete your own uploads")
	}

	if err := ctrl.DB.Delete(&row).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete media")
	}
	if err := helper.DeleteUploadedFile(row.FilePath); err != nil {
		log.Printf("[MEDIA] file cleanup failed: %v", err)
	}
	return helper.Success(c, "Media deleted", nil)
}

func toMediaResponse(m *mediamodel.MediaModel) mediadto.MediaResponse {
	return mediadto.MediaResponse{
		ID:               m.ID,
		Filename:         m.Filename,
		OriginalFilename: m.OriginalFilename,
		FileURL:          m.FileURL,
		FileSize:         m.FileSize,
		MimeType:         m.MimeType,
		MediaCategory:    m.MediaCategory,
		CreatedAt:        m.CreatedAt,
	}
}
