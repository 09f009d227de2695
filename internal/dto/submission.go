package dto

// ── 提交模块 DTO ──

// SubmitTaskRequest 提交任务凭证请求
type SubmitTaskRequest struct {
	TaskID string   `json:"task_id" binding:"required,max=50"`
	Proof  string   `json:"proof"   binding:"omitempty,max=2000"`
	Images []string `json:"images"  binding:"omitempty,max=9,dive,url"`
}

// ReviewRequest 审核/修正提交请求
//
// Action 为常规审核动作；StatusOverride 允许管理员把已审记录直接
// 修正到任一终态（修正模式下 Action 填 update）。
// Points 为浮动分任务的录入分或修正后的原始分；固定分任务审核通过时
// 若不传则由服务端读取任务当前分值。
type ReviewRequest struct {
	Action         string `json:"action"          binding:"required,oneof=approve reject update"`
	Points         *int   `json:"points"          binding:"omitempty,min=0"`
	StatusOverride string `json:"status_override" binding:"omitempty,oneof=approved rejected"`
}

// SubmissionListRequest 提交列表查询参数
type SubmissionListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	Season string `form:"season" binding:"omitempty,max=100"`
	UserID string `form:"user_id" binding:"omitempty,uuid"`
}

// SubmissionResponse 提交记录响应
type SubmissionResponse struct {
	ID         string   `json:"id"`
	UserID     *string  `json:"user_id,omitempty"`
	Username   string   `json:"username"` // 归属解析后的当前用户名，解析失败时为快照
	TaskID     string   `json:"task_id"`
	TaskTitle  string   `json:"task_title"`
	Status     string   `json:"status"`
	BasePoints int      `json:"base_points"`
	Points     int      `json:"points"`
	Proof      string   `json:"proof"`
	Images     []string `json:"images"`
	Week       string   `json:"week"`
	Season     string   `json:"season"`
	CreatedAt  string   `json:"created_at"`
}
