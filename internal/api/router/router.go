package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"teamaura/backend/config"
	"teamaura/backend/internal/api/handler"
	"teamaura/backend/internal/api/middleware"
	"teamaura/backend/pkg/jwt"
	"teamaura/backend/pkg/redis"
)

// 请求体上限 1MB，任务附件走外链不走本服务
const maxBodyBytes = 1 << 20

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	if cfg.Server.RateLimit.Enabled {
		r.Use(middleware.RateLimit(rdb, cfg.Server.RateLimit.Limit, cfg.Server.RateLimit.Window))
	}

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("", h.User.ListUsers)
				users.GET("/:id", h.User.GetUser)
				users.POST("", middleware.AdminAuth(), h.User.CreateUser)
				users.PUT("/:id/roles", middleware.AdminAuth(), h.User.AssignRoles)
			}

			// 角色注册表模块
			roles := authorized.Group("/roles")
			{
				roles.GET("", h.Role.ListRoles)
				roles.POST("", middleware.AdminAuth(), h.Role.CreateRole)
				roles.PUT("/:code", middleware.AdminAuth(), h.Role.UpdateRole)
				roles.DELETE("/:code", middleware.AdminAuth(), h.Role.DeleteRole)
			}

			// 分类模块
			categories := authorized.Group("/categories")
			{
				categories.GET("", h.Category.ListCategories)
				categories.POST("", middleware.AdminAuth(), h.Category.CreateCategory)
				categories.PUT("/:id", middleware.AdminAuth(), h.Category.UpdateCategory)
				categories.DELETE("/:id", middleware.AdminAuth(), h.Category.DeleteCategory)
				categories.POST("/restore-defaults", middleware.AdminAuth(), h.Category.RestoreDefaultCategories)
			}

			// 任务模块
			tasks := authorized.Group("/tasks")
			{
				tasks.GET("", h.Task.ListTasks)
				tasks.GET("/:id", h.Task.GetTask)
				tasks.POST("", middleware.AdminAuth(), h.Task.CreateTask)
				tasks.PUT("/:id", middleware.AdminAuth(), h.Task.UpdateTask)
				tasks.DELETE("/:id", middleware.AdminAuth(), h.Task.DeleteTask)
			}

			// 提交与审核模块
			submissions := authorized.Group("/submissions")
			{
				submissions.POST("", h.Submission.Submit)
				submissions.GET("/mine", h.Submission.ListMySubmissions)
				submissions.GET("", middleware.AdminAuth(), h.Submission.ListSubmissions)
				submissions.GET("/:id", h.Submission.GetSubmission)
				submissions.DELETE("/:id", h.Submission.Withdraw) // 本人撤回；管理员可代操作
				submissions.PUT("/:id/review", middleware.AdminAuth(), h.Submission.Review)
			}

			// 赛季模块
			seasons := authorized.Group("/seasons")
			{
				seasons.GET("", h.Season.ListSeasons)
				seasons.GET("/current", h.Season.CurrentSeason)
				seasons.POST("/archive", middleware.AdminAuth(), h.Season.ArchiveSeason)
				seasons.PUT("/goal", middleware.AdminAuth(), h.Season.UpdateSeasonGoal)
			}

			// 排行榜模块
			authorized.GET("/leaderboard", h.Leaderboard.GetLeaderboard)

			// 报表导出模块
			authorized.GET("/export", middleware.AdminAuth(), h.Export.ExportReport)

			// 数据体检与修复模块
			repair := authorized.Group("/repair", middleware.AdminAuth())
			{
				repair.GET("/scan", h.Repair.Scan)
				repair.POST("/relink-submissions", h.Repair.RelinkSubmissions)
				repair.POST("/backfill-categories", h.Repair.BackfillCategories)
			}

			// 公告模块
			announcements := authorized.Group("/announcements")
			{
				announcements.GET("", h.Announcement.ListAnnouncements)
				announcements.GET("/:id", h.Announcement.GetAnnouncement)
				announcements.POST("", middleware.AdminAuth(), h.Announcement.CreateAnnouncement)
				announcements.PUT("/:id", middleware.AdminAuth(), h.Announcement.UpdateAnnouncement)
				announcements.DELETE("/:id", middleware.AdminAuth(), h.Announcement.DeleteAnnouncement)
			}

			// 团队游戏链接模块
			games := authorized.Group("/games")
			{
				games.GET("", h.Game.ListGames)
				games.POST("", middleware.AdminAuth(), h.Game.CreateGame)
				games.PUT("/:id", middleware.AdminAuth(), h.Game.UpdateGame)
				games.DELETE("/:id", middleware.AdminAuth(), h.Game.DeleteGame)
			}

			// 系统初始化模块
			authorized.POST("/system/initialize", middleware.AdminAuth(), h.System.Initialize)
		}
	}

	return r
}
