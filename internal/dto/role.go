package dto

// ── 角色模块 DTO ──

// CreateRoleRequest 创建角色请求
type CreateRoleRequest struct {
	Code       string  `json:"code"       binding:"required,min=1,max=50"`
	Label      string  `json:"label"      binding:"required,min=1,max=100"`
	Multiplier float64 `json:"multiplier" binding:"required,min=0"`
	Color      string  `json:"color"      binding:"omitempty,max=20"`
}

// UpdateRoleRequest 更新角色请求
type UpdateRoleRequest struct {
	Label      *string  `json:"label"      binding:"omitempty,min=1,max=100"`
	Multiplier *float64 `json:"multiplier" binding:"omitempty,min=0"`
	Color      *string  `json:"color"      binding:"omitempty,max=20"`
}

// RoleResponse 角色信息响应
type RoleResponse struct {
	Code       string  `json:"code"`
	Label      string  `json:"label"`
	Multiplier float64 `json:"multiplier"`
	Color      string  `json:"color"`
}
