package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"teamaura/backend/internal/model"
	"teamaura/backend/internal/repository"
)

func setupRepairTest() (RepairService, *repository.Repository, *mockRepos) {
	repo, mocks := newMockRepository()
	svc := NewRepairService(repo, zap.NewNop())
	return svc, repo, mocks
}

// ── Scan ──

func TestScan_CleanDatabase(t *testing.T) {
	svc, _, _ := setupRepairTest()

	resp, err := svc.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	if len(resp.Warnings) != 0 {
		t.Errorf("空库不应有告警，实际=%+v", resp.Warnings)
	}
}

func TestScan_DuplicateCategory(t *testing.T) {
	svc, _, mocks := setupRepairTest()
	mocks.category.Create(context.Background(), &model.Category{Label: "日常", Type: model.CategoryTypeTask})
	mocks.category.Create(context.Background(), &model.Category{Label: "日常", Type: model.CategoryTypeTask})
	// 同名不同类型不算重复
	mocks.category.Create(context.Background(), &model.Category{Label: "日常", Type: model.CategoryTypeAnnouncement})

	resp, err := svc.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	dup := 0
	for _, w := range resp.Warnings {
		if w.Kind == "duplicate_category" {
			dup++
		}
	}
	if dup != 1 {
		t.Errorf("期望1条重复分类告警，实际=%d", dup)
	}
}

func TestScan_OrphanCategoryRef(t *testing.T) {
	svc, _, mocks := setupRepairTest()
	ghost := "cat-ghost"
	mocks.task.Create(context.Background(), &model.Task{
		TaskID: "t_1", Title: "任务", CategoryID: &ghost,
	})

	resp, err := svc.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	found := false
	for _, w := range resp.Warnings {
		if w.Kind == "orphan_category_ref" && w.Subject == "t_1" {
			found = true
		}
	}
	if !found {
		t.Errorf("应报告悬空分类引用，实际=%+v", resp.Warnings)
	}
}

func TestScan_UnresolvedOwner(t *testing.T) {
	svc, _, mocks := setupRepairTest()
	seedUser(mocks, "alice")
	// alice 的可回填不告警，departed 的才告警
	mocks.submission.Create(context.Background(), &model.Submission{
		LegacyUsername: "alice", TaskID: "t_1", Status: model.SubmissionApproved, Season: "S1",
	})
	mocks.submission.Create(context.Background(), &model.Submission{
		LegacyUsername: "departed", TaskID: "t_1", Status: model.SubmissionApproved, Season: "S1",
	})

	resp, err := svc.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan 应成功: %v", err)
	}
	unresolved := 0
	for _, w := range resp.Warnings {
		if w.Kind == "unresolved_owner" {
			unresolved++
		}
	}
	if unresolved != 1 {
		t.Errorf("期望1条归属告警，实际=%d", unresolved)
	}
}

// ── RelinkSubmissions ──

func TestRelinkSubmissions(t *testing.T) {
	svc, _, mocks := setupRepairTest()
	alice := seedUser(mocks, "alice")
	mocks.submission.Create(context.Background(), &model.Submission{
		LegacyUsername: "alice", TaskID: "t_1", Status: model.SubmissionApproved, Season: "S1",
	})
	mocks.submission.Create(context.Background(), &model.Submission{
		LegacyUsername: "departed", TaskID: "t_2", Status: model.SubmissionApproved, Season: "S1",
	})

	resp, err := svc.RelinkSubmissions(context.Background(), "admin")
	if err != nil {
		t.Fatalf("RelinkSubmissions 应成功: %v", err)
	}
	if resp.Scanned != 2 || resp.Relinked != 1 || resp.Orphaned != 1 {
		t.Errorf("期望 scanned=2 relinked=1 orphaned=1，实际=%+v", resp)
	}

	sub, _ := mocks.submission.GetByID(context.Background(), "sub-1")
	if sub.UserID == nil || *sub.UserID != alice.UserID {
		t.Errorf("回填后 user_id 应指向 alice，实际=%v", sub.UserID)
	}

	// 幂等：已回填的不再扫到
	resp, err = svc.RelinkSubmissions(context.Background(), "admin")
	if err != nil {
		t.Fatalf("第二次 RelinkSubmissions 应成功: %v", err)
	}
	if resp.Scanned != 1 || resp.Relinked != 0 {
		t.Errorf("第二次期望 scanned=1 relinked=0，实际=%+v", resp)
	}
}

// ── BackfillCategories ──

func TestBackfillCategories(t *testing.T) {
	svc, _, mocks := setupRepairTest()
	daily := &model.Category{Label: "日常", Type: model.CategoryTypeTask}
	mocks.category.Create(context.Background(), daily)

	mocks.task.Create(context.Background(), &model.Task{
		TaskID: "t_1", Title: "有旧文本", Category: "日常",
	})
	mocks.task.Create(context.Background(), &model.Task{
		TaskID: "t_2", Title: "文本无匹配", Category: "未知分类",
	})
	existing := daily.CategoryID
	mocks.task.Create(context.Background(), &model.Task{
		TaskID: "t_3", Title: "已有引用", Category: "日常", CategoryID: &existing,
	})

	resp, err := svc.BackfillCategories(context.Background(), "admin")
	if err != nil {
		t.Fatalf("BackfillCategories 应成功: %v", err)
	}
	if resp.TasksUpdated != 1 || resp.Unmatched != 1 {
		t.Errorf("期望 updated=1 unmatched=1，实际=%+v", resp)
	}

	task, _ := mocks.task.GetByTaskID(context.Background(), "t_1")
	if task.CategoryID == nil || *task.CategoryID != daily.CategoryID {
		t.Errorf("t_1 应回填到日常分类，实际=%v", task.CategoryID)
	}

	// 幂等：再跑一遍只剩无法匹配的
	resp, err = svc.BackfillCategories(context.Background(), "admin")
	if err != nil {
		t.Fatalf("第二次 BackfillCategories 应成功: %v", err)
	}
	if resp.TasksUpdated != 0 || resp.Unmatched != 1 {
		t.Errorf("第二次期望 updated=0 unmatched=1，实际=%+v", resp)
	}
}
