package dto

// ── 用户模块 DTO ──

// CreateUserRequest 管理员建档请求（白名单：仅建档用户可登录）
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=2,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	IsAdmin  bool   `json:"is_admin"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Keyword string `form:"keyword" binding:"omitempty,max=50"`
}

// AssignRolesRequest 设置用户角色集合请求
// 整体替换用户的角色代码集合，服务端随后触发全量重算
type AssignRolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}
