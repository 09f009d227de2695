package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"teamaura/backend/config"
)

func setupSystemTest(adminPassword string) (SystemService, *mockRepos) {
	repo, mocks := newMockRepository()
	cfg := &config.Config{
		Season: config.SeasonConfig{
			DefaultName:       "Season 1",
			DefaultGoalPoints: 10000,
			DefaultGoalTitle:  "Season Goal",
		},
		Admin: config.AdminConfig{
			Username: "admin",
			Email:    "admin@team-aura.local",
			Password: adminPassword,
		},
	}
	category := NewCategoryService(repo, zap.NewNop())
	svc := NewSystemService(cfg, repo, category, zap.NewNop())
	return svc, mocks
}

func TestInitialize_EmptyDatabase(t *testing.T) {
	svc, mocks := setupSystemTest("bootstrap-pass")

	resp, err := svc.Initialize(context.Background(), "system")
	if err != nil {
		t.Fatalf("Initialize 应成功: %v", err)
	}
	if !resp.CategoriesSeeded || !resp.SeasonSeeded || !resp.TaskSeeded || !resp.AdminSeeded || !resp.GamesSeeded {
		t.Errorf("空库初始化各项都应补种，实际=%+v", resp)
	}

	season, err := mocks.season.GetActive(context.Background())
	if err != nil {
		t.Fatalf("应存在活跃赛季: %v", err)
	}
	if season.Name != "Season 1" || season.GoalPoints != 10000 {
		t.Errorf("首个赛季应来自配置，实际=%+v", season)
	}

	admin, err := mocks.user.GetByUsername(context.Background(), "admin")
	if err != nil {
		t.Fatalf("应建出管理员: %v", err)
	}
	if !admin.IsAdmin {
		t.Error("初始账号应为管理员")
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	svc, mocks := setupSystemTest("bootstrap-pass")

	if _, err := svc.Initialize(context.Background(), "system"); err != nil {
		t.Fatalf("首次初始化应成功: %v", err)
	}
	resp, err := svc.Initialize(context.Background(), "system")
	if err != nil {
		t.Fatalf("重复初始化应成功: %v", err)
	}
	if resp.CategoriesSeeded || resp.SeasonSeeded || resp.TaskSeeded || resp.AdminSeeded || resp.GamesSeeded {
		t.Errorf("重复初始化不应再补种，实际=%+v", resp)
	}

	categories, _ := mocks.category.List(context.Background(), "")
	if len(categories) != len(defaultCategories) {
		t.Errorf("分类不应重复，期望=%d，实际=%d", len(defaultCategories), len(categories))
	}
}

func TestInitialize_NoAdminPasswordSkipsAdmin(t *testing.T) {
	svc, mocks := setupSystemTest("")

	resp, err := svc.Initialize(context.Background(), "system")
	if err != nil {
		t.Fatalf("Initialize 应成功: %v", err)
	}
	if resp.AdminSeeded {
		t.Error("未配置初始密码时不应建管理员")
	}
	if _, err := mocks.user.GetByUsername(context.Background(), "admin"); err == nil {
		t.Error("不应存在 admin 账号")
	}
}

func TestInitialize_KeepsExistingSeason(t *testing.T) {
	svc, mocks := setupSystemTest("")
	seedActiveSeason(mocks, "S7")

	resp, err := svc.Initialize(context.Background(), "system")
	if err != nil {
		t.Fatalf("Initialize 应成功: %v", err)
	}
	if resp.SeasonSeeded {
		t.Error("已有活跃赛季时不应再建")
	}

	season, _ := mocks.season.GetActive(context.Background())
	if season.Name != "S7" {
		t.Errorf("现有赛季不应被覆盖，实际=%s", season.Name)
	}
}
