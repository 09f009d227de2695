package dto

// ── 排行榜模块 DTO ──

// LeaderboardRequest 排行榜查询参数
// Season 为空或等于当前赛季名时走实时榜；为历史赛季名时走只读投影
type LeaderboardRequest struct {
	Season string `form:"season" binding:"omitempty,max=100"`
}

// LeaderboardEntry 排行榜单行
type LeaderboardEntry struct {
	Rank       int            `json:"rank"` // 同分同名次（密集排名）
	UserID     string         `json:"user_id"`
	Username   string         `json:"username"`
	Roles      []RoleResponse `json:"roles"`
	Points     int            `json:"points"`
	BasePoints int            `json:"base_points"`
}

// LeaderboardResponse 排行榜响应
type LeaderboardResponse struct {
	Season      string             `json:"season"`
	HistoryMode bool               `json:"history_mode"`
	GoalPoints  int                `json:"goal_points"`
	GoalTitle   string             `json:"goal_title"`
	TotalPoints int                `json:"total_points"` // 全员总分（目标进度分子）
	Entries     []LeaderboardEntry `json:"entries"`
}
