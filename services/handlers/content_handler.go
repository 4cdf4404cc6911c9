package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/lingo-leap/lingo_api/dto"
	"github.com/lingo-leap/lingo_api/shared"
)

type ContentHandler struct {
	contentSvc ContentServiceInterface
}

func NewContentHandler(contentSvc ContentServiceInterface) *ContentHandler {
	return &ContentHandler{
		contentSvc: contentSvc,
	}
}

// @Summary List lessons
// @Description List active lessons, optionally filtered by unit and difficulty
// @Tags content
// @Produce json
// @Param unit query string false "Unit filter"
// @Param difficulty query string false "Difficulty filter"
// @Success 200 {object} shared.Response{data=dto.LessonCollectionResponse}
// @Router /api/v1/lessons [get]
func (h *ContentHandler) GetLessons(c *fiber.Ctx) error {
	unit := c.Query("unit")
	difficulty := c.Query("difficulty")

	resp, err := h.contentSvc.GetLessons(unit, difficulty)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Get lesson
// @Description Fetch a single lesson; correct answers are never included
// @Tags content
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/lessons/{lessonId} [get]
func (h *ContentHandler) GetLesson(c *fiber.Ctx) error {
	lessonID := c.Params("lessonId")

	resp, err := h.contentSvc.GetLesson(lessonID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Create lesson
// @Description Admin-only lesson creation
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param createLessonRequest body dto.CreateLessonRequest true "Lesson definition"
// @Success 201 {object} shared.Response{data=dto.LessonResponse}
// @Router /api/v1/admin/lessons [post]
func (h *ContentHandler) CreateLesson(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.contentSvc.CreateLesson(&req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Lesson created", resp)
}
