package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/lingo-leap/lingo_api/shared"
)

type LeaderboardHandler struct {
	progressionSvc ProgressionServiceInterface
}

func NewLeaderboardHandler(progressionSvc ProgressionServiceInterface) *LeaderboardHandler {
	return &LeaderboardHandler{
		progressionSvc: progressionSvc,
	}
}

// @Summary All-time leaderboard
// @Description Top users by total XP
// @Tags leaderboard
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param limit query int false "Number of entries" default(10)
// @Success 200 {object} shared.Response{data=dto.LeaderboardResponse}
// @Router /api/v1/leaderboard/all-time [get]
func (h *LeaderboardHandler) GetAllTime(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	limit := h.parseLimit(c)

	resp, err := h.progressionSvc.GetAllTimeLeaderboard(limit, userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

// @Summary Weekly leaderboard
// @Description Top users by XP earned in the last 7 days
// @Tags leaderboard
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param limit query int false "Number of entries" default(10)
// @Success 200 {object} shared.Response{data=dto.LeaderboardResponse}
// @Router /api/v1/leaderboard/weekly [get]
func (h *LeaderboardHandler) GetWeekly(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	limit := h.parseLimit(c)

	resp, err := h.progressionSvc.GetWeeklyLeaderboard(limit, userID)
	if err != nil {
		return err
	}

	return shared.ResponseOK(c, resp)
}

func (h *LeaderboardHandler) parseLimit(c *fiber.Ctx) int {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit <= 0 || limit > 100 {
		return 10
	}
	return limit
}
