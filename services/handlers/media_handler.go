package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/lingo-leap/lingo_api/shared"
)

type MediaHandler struct {
	mediaSvc MediaServiceInterface
}

func NewMediaHandler(mediaSvc MediaServiceInterface) *MediaHandler {
	return &MediaHandler{
		mediaSvc: mediaSvc,
	}
}

// @Summary Upload lesson audio
// @Description Admin-only audio upload for a lesson
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param lessonId path string true "Lesson ID"
// @Param file formData file true "Audio file"
// @Success 201 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/lessons/{lessonId}/audio [post]
func (h *MediaHandler) UploadAudio(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")

	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "Missing file upload")
	}

	resp, err := h.mediaSvc.UploadLessonAudio(lessonID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Audio uploaded", resp)
}

// @Summary Upload lesson thumbnail
// @Description Admin-only thumbnail upload for a lesson
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param lessonId path string true "Lesson ID"
// @Param file formData file true "Image file"
// @Success 201 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/lessons/{lessonId}/thumbnail [post]
func (h *MediaHandler) UploadThumbnail(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")

	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "Missing file upload")
	}

	resp, err := h.mediaSvc.UploadThumbnail(lessonID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Thumbnail uploaded", resp)
}

// @Summary List lesson media
// @Description Media assets uploaded for a lesson
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=[]dto.MediaUploadResponse}
// @Router /api/v1/admin/lessons/{lessonId}/media [get]
func (h *MediaHandler) GetLessonMedia(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")

	resp, err := h.mediaSvc.GetLessonMedia(lessonID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Delete media asset
// @Description Remove a media asset and its stored object
// @Tags admin
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param assetId path string true "Asset ID"
// @Success 200 {object} shared.Response{data=nil}
// @Router /api/v1/admin/media/{assetId} [delete]
func (h *MediaHandler) DeleteMediaAsset(c *fiber.Ctx) error {
	assetID := c.Params("assetId")

	if err := h.mediaSvc.DeleteMediaAsset(assetID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Media asset deleted", nil)
}
