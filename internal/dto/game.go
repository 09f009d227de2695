package dto

// ── 游戏模块 DTO ──

// CreateGameRequest 新增游戏请求
type CreateGameRequest struct {
	Title string `json:"title" binding:"required,min=1,max=100"`
	URL   string `json:"url"   binding:"required,url,max=500"`
	Icon  string `json:"icon"  binding:"omitempty,max=20"`
}

// UpdateGameRequest 更新游戏请求
type UpdateGameRequest struct {
	Title *string `json:"title" binding:"omitempty,min=1,max=100"`
	URL   *string `json:"url"   binding:"omitempty,url,max=500"`
	Icon  *string `json:"icon"  binding:"omitempty,max=20"`
}

// GameResponse 游戏响应
type GameResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
}
