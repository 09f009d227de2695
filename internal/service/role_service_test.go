package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"teamaura/backend/internal/dto"
	"teamaura/backend/internal/repository"
)

func setupRoleTest() (RoleService, *repository.Repository, *mockRepos) {
	repo, mocks := newMockRepository()
	ledger := NewLedgerService(repo, zap.NewNop())
	svc := NewRoleService(repo, ledger, zap.NewNop())
	return svc, repo, mocks
}

func TestRoleCreate(t *testing.T) {
	svc, _, _ := setupRoleTest()

	resp, err := svc.Create(context.Background(),
		&dto.CreateRoleRequest{Code: "vip", Label: "VIP", Multiplier: 1.1, Color: "gold"}, "admin")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Code != "vip" || resp.Multiplier != 1.1 {
		t.Errorf("期望 vip/1.1，实际 %s/%v", resp.Code, resp.Multiplier)
	}
}

func TestRoleCreate_CodeTaken(t *testing.T) {
	svc, _, mocks := setupRoleTest()
	seedRole(mocks, "vip", 1.1)

	_, err := svc.Create(context.Background(),
		&dto.CreateRoleRequest{Code: "vip", Label: "重复", Multiplier: 1.0}, "admin")
	if !errors.Is(err, ErrRoleCodeTaken) {
		t.Errorf("期望 ErrRoleCodeTaken，实际: %v", err)
	}
}

func TestRoleUpdate_PartialFields(t *testing.T) {
	svc, _, mocks := setupRoleTest()
	seedRole(mocks, "vip", 1.1)

	newMultiplier := 1.3
	resp, err := svc.Update(context.Background(), "vip",
		&dto.UpdateRoleRequest{Multiplier: &newMultiplier}, "admin")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.Multiplier != 1.3 {
		t.Errorf("期望倍率=1.3，实际=%v", resp.Multiplier)
	}
	if resp.Label != "vip" {
		t.Errorf("未传字段不应被改写，实际Label=%s", resp.Label)
	}
}

func TestRoleDelete_NotFound(t *testing.T) {
	svc, _, _ := setupRoleTest()

	if err := svc.Delete(context.Background(), "ghost"); !errors.Is(err, ErrRoleNotFound) {
		t.Errorf("期望 ErrRoleNotFound，实际: %v", err)
	}
}

func TestAssignUserRoles_TriggersRecompute(t *testing.T) {
	svc, _, mocks := setupRoleTest()
	seedActiveSeason(mocks, "S1")
	seedRole(mocks, "vip", 1.1)
	alice := seedUser(mocks, "alice")
	seedApproved(mocks, alice.UserID, "t_1", "S1", 10)

	if err := svc.AssignUserRoles(context.Background(), alice.UserID,
		&dto.AssignRolesRequest{Roles: []string{"vip"}}, "admin"); err != nil {
		t.Fatalf("AssignUserRoles 应成功: %v", err)
	}

	stored, _ := mocks.user.GetByID(context.Background(), alice.UserID)
	if len(stored.Roles) != 1 || stored.Roles[0] != "vip" {
		t.Errorf("角色集合应被整体替换，实际=%v", stored.Roles)
	}
	// 立即按新倍率重算：round(10 × 1.1) = 11
	if stored.Points != 11 {
		t.Errorf("授角后应全量重算，期望Points=11，实际=%d", stored.Points)
	}
}

func TestAssignUserRoles_NoSeasonStillAssigns(t *testing.T) {
	svc, _, mocks := setupRoleTest()
	seedRole(mocks, "vip", 1.1)
	alice := seedUser(mocks, "alice")

	if err := svc.AssignUserRoles(context.Background(), alice.UserID,
		&dto.AssignRolesRequest{Roles: []string{"vip"}}, "admin"); err != nil {
		t.Fatalf("未配置赛季时授角仍应成功: %v", err)
	}

	stored, _ := mocks.user.GetByID(context.Background(), alice.UserID)
	if len(stored.Roles) != 1 {
		t.Errorf("角色应已更新，实际=%v", stored.Roles)
	}
}

func TestAssignUserRoles_UserNotFound(t *testing.T) {
	svc, _, _ := setupRoleTest()

	err := svc.AssignUserRoles(context.Background(), "u-ghost",
		&dto.AssignRolesRequest{Roles: []string{"vip"}}, "admin")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}

func TestRoleDelete_StaleCodeIgnoredInMultiplier(t *testing.T) {
	svc, repo, mocks := setupRoleTest()
	seedRole(mocks, "vip", 1.5)
	alice := seedUser(mocks, "alice", "vip")

	if err := svc.Delete(context.Background(), "vip"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	// 用户数组中的残留代码在倍率计算时被忽略
	ledger := NewLedgerService(repo, zap.NewNop())
	m, err := ledger.Multiplier(context.Background(), alice.Roles)
	if err != nil {
		t.Fatalf("Multiplier 应成功: %v", err)
	}
	if m != 1 {
		t.Errorf("已删除角色不应再参与倍率，期望=1，实际=%v", m)
	}
}
