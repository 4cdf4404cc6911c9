package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/lingo-leap/lingo_api/dto"
	"github.com/lingo-leap/lingo_api/shared"
)

type QuizHandler struct {
	quizSvc QuizServiceInterface
}

func NewQuizHandler(quizSvc QuizServiceInterface) *QuizHandler {
	return &QuizHandler{
		quizSvc: quizSvc,
	}
}

// @Summary Get daily quiz
// @Description Quiz for the given date and difficulty; difficulty defaults to the caller's skill level. Answers are stripped until the quiz is completed.
// @Tags quiz
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param date query string false "Quiz date (YYYY-MM-DD), defaults to today"
// @Param difficulty query string false "Difficulty override"
// @Success 200 {object} shared.Response{data=dto.DailyQuizResponse}
// @Router /api/v1/quiz/daily [get]
func (h *QuizHandler) GetDailyQuiz(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	quizDate := c.Query("date")
	difficulty := c.Query("difficulty")

	resp, err := h.quizSvc.GetDailyQuiz(userID, quizDate, difficulty)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Submit daily quiz
// @Description Score an answer sheet server-side; each quiz completes at most once per user
// @Tags quiz
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param submitQuizRequest body dto.SubmitQuizRequest true "Ordered option indices"
// @Success 200 {object} shared.Response{data=dto.SubmitQuizResponse}
// @Router /api/v1/quiz/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.quizSvc.SubmitQuiz(userID, &req)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Create daily quiz
// @Description Admin-only quiz creation for a (date, difficulty) slot
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param createDailyQuizRequest body dto.CreateDailyQuizRequest true "Quiz definition"
// @Success 201 {object} shared.Response{data=dto.DailyQuizResponse}
// @Router /api/v1/admin/quiz [post]
func (h *QuizHandler) CreateDailyQuiz(c *fiber.Ctx) error {
	var req dto.CreateDailyQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.quizSvc.CreateDailyQuiz(&req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Quiz created", resp)
}
