package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/lingo-leap/lingo_api/dto"
	"github.com/lingo-leap/lingo_api/shared"
)

type ProgressionHandler struct {
	progressionSvc ProgressionServiceInterface
}

func NewProgressionHandler(progressionSvc ProgressionServiceInterface) *ProgressionHandler {
	return &ProgressionHandler{
		progressionSvc: progressionSvc,
	}
}

// @Summary Complete a lesson
// @Description Record a lesson completion attempt, keep the best score and grant XP
// @Tags progression
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param completeLessonRequest body dto.CompleteLessonRequest true "Completion attempt"
// @Success 200 {object} shared.Response{data=dto.LessonProgressResponse}
// @Router /api/v1/lessons/complete [post]
func (h *ProgressionHandler) CompleteLesson(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CompleteLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.progressionSvc.CompleteLesson(userID, req.LessonID, req.Score, req.Answers)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Get user progress
// @Description Current XP, level, streak and completed lessons
// @Tags progression
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.UserProgressResponse}
// @Router /api/v1/progress [get]
func (h *ProgressionHandler) GetProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.progressionSvc.GetUserProgress(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Get XP ledger
// @Description Recent XP grant events for the authenticated user
// @Tags progression
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param limit query int false "Max events to return" default(50)
// @Success 200 {object} shared.Response{data=dto.XPLedgerResponse}
// @Router /api/v1/progress/xp [get]
func (h *ProgressionHandler) GetXPLedger(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	resp, err := h.progressionSvc.GetXPLedger(userID, limit)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}
