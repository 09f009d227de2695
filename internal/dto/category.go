package dto

// ── 分类模块 DTO ──

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Label     string  `json:"label"      binding:"required,min=1,max=100"`
	Color     string  `json:"color"      binding:"omitempty,max=20"`
	Type      string  `json:"type"       binding:"required,oneof=task announcement"`
	SystemTag *string `json:"system_tag" binding:"omitempty,oneof=pinned daily"`
}

// UpdateCategoryRequest 更新分类请求
type UpdateCategoryRequest struct {
	Label *string `json:"label" binding:"omitempty,min=1,max=100"`
	Color *string `json:"color" binding:"omitempty,max=20"`
}

// CategoryResponse 分类信息响应
type CategoryResponse struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	Color     string  `json:"color"`
	Type      string  `json:"type"`
	SystemTag *string `json:"system_tag,omitempty"`
}
