package dto

// ── 赛季模块 DTO ──

// ArchiveSeasonRequest 归档赛季请求（结束当前赛季并开启新赛季）
type ArchiveSeasonRequest struct {
	NewSeasonName string `json:"new_season_name" binding:"required,min=1,max=100"`
}

// UpdateSeasonGoalRequest 更新赛季目标请求
type UpdateSeasonGoalRequest struct {
	GoalPoints int    `json:"goal_points" binding:"required,min=1"`
	GoalTitle  string `json:"goal_title"  binding:"required,min=1,max=100"`
}

// SeasonResponse 赛季信息响应
type SeasonResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	GoalPoints int    `json:"goal_points"`
	GoalTitle  string `json:"goal_title"`
	IsActive   bool   `json:"is_active"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

// SeasonListResponse 赛季总览：当前赛季 + 历史赛季名列表
type SeasonListResponse struct {
	CurrentSeason    string           `json:"current_season"`
	AvailableSeasons []string         `json:"available_seasons"`
	Seasons          []SeasonResponse `json:"seasons"`
}
