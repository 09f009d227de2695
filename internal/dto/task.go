package dto

// ── 任务模块 DTO ──

// CreateTaskRequest 创建任务请求
type CreateTaskRequest struct {
	Title       string  `json:"title"       binding:"required,min=1,max=200"`
	Points      int     `json:"points"      binding:"omitempty,min=0"`
	Type        string  `json:"type"        binding:"required,oneof=fixed variable"`
	Week        string  `json:"week"        binding:"required,max=20"`
	CategoryID  *string `json:"category_id" binding:"omitempty,uuid"`
	IsPinned    bool    `json:"is_pinned"`
	Season      *string `json:"season"      binding:"omitempty,max=100"`
	Icon        string  `json:"icon"        binding:"omitempty,max=20"`
	Description string  `json:"description" binding:"omitempty,max=2000"`
}

// UpdateTaskRequest 更新任务请求
// 固定分任务改分只影响之后的审核通过，已通过的提交不受影响
type UpdateTaskRequest struct {
	Title       *string `json:"title"       binding:"omitempty,min=1,max=200"`
	Points      *int    `json:"points"      binding:"omitempty,min=0"`
	Week        *string `json:"week"        binding:"omitempty,max=20"`
	CategoryID  *string `json:"category_id" binding:"omitempty,uuid"`
	IsPinned    *bool   `json:"is_pinned"`
	Icon        *string `json:"icon"        binding:"omitempty,max=20"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// TaskResponse 任务信息响应
type TaskResponse struct {
	ID          string  `json:"id"` // 业务 ID（t_ 前缀）
	Title       string  `json:"title"`
	Points      int     `json:"points"`
	Type        string  `json:"type"`
	Week        string  `json:"week"`
	CategoryID  *string `json:"category_id,omitempty"`
	IsPinned    bool    `json:"is_pinned"`
	Season      *string `json:"season,omitempty"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

// TaskWeekGroup 按周分组的任务列表（Pinned 组恒在最前）
type TaskWeekGroup struct {
	Week  string         `json:"week"`
	Tasks []TaskResponse `json:"tasks"`
}
