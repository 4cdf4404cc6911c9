package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/lingo-leap/lingo_api/dto"
	"github.com/lingo-leap/lingo_api/shared"
)

type QuestHandler struct {
	questSvc QuestServiceInterface
}

func NewQuestHandler(questSvc QuestServiceInterface) *QuestHandler {
	return &QuestHandler{
		questSvc: questSvc,
	}
}

// @Summary List active quests
// @Description Active quests joined with the caller's progress and claim state
// @Tags quests
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.QuestCollectionResponse}
// @Router /api/v1/quests [get]
func (h *QuestHandler) GetQuests(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	quests, err := h.questSvc.GetActiveQuests(userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, dto.QuestCollectionResponse{
		Quests: quests,
		Total:  len(quests),
	})
}

// @Summary Set quest progress
// @Description Admin-only criteria signal injection: move a user's counter toward a quest target; progress never decreases
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param userId path string true "User ID"
// @Param questId path string true "Quest ID"
// @Param updateProgressRequest body dto.UpdateQuestProgressRequest true "New absolute progress"
// @Success 200 {object} shared.Response{data=dto.UserQuestResponse}
// @Router /api/v1/admin/users/{userId}/quests/{questId}/progress [post]
func (h *QuestHandler) UpdateProgress(c *fiber.Ctx) error {
	userID := c.Params("userId")
	questID := c.Params("questId")

	var req dto.UpdateQuestProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.questSvc.UpdateProgress(userID, questID, req.Progress)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Claim quest reward
// @Description Pay out a completed quest's XP; succeeds at most once per quest
// @Tags quests
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param questId path string true "Quest ID"
// @Success 200 {object} shared.Response{data=dto.UserQuestResponse}
// @Router /api/v1/quests/{questId}/claim [post]
func (h *QuestHandler) ClaimReward(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	questID := c.Params("questId")

	resp, err := h.questSvc.ClaimReward(userID, questID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Create quest
// @Description Admin-only quest creation
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param createQuestRequest body dto.CreateQuestRequest true "Quest definition"
// @Success 201 {object} shared.Response{data=dto.QuestResponse}
// @Router /api/v1/admin/quests [post]
func (h *QuestHandler) CreateQuest(c *fiber.Ctx) error {
	var req dto.CreateQuestRequest
	if err := c.BodyParser(&req); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.questSvc.CreateQuest(&req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Quest created", resp)
}
