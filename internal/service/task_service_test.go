package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"teamaura/backend/internal/dto"
	"teamaura/backend/internal/model"
	"teamaura/backend/internal/repository"
)

func setupTaskTest() (TaskService, *repository.Repository, *mockRepos) {
	repo, mocks := newMockRepository()
	svc := NewTaskService(repo, zap.NewNop())
	return svc, repo, mocks
}

func TestTaskCreate(t *testing.T) {
	svc, _, _ := setupTaskTest()

	resp, err := svc.Create(context.Background(), &dto.CreateTaskRequest{
		Title: "周报", Points: 5, Type: model.TaskTypeFixed, Week: "3",
	}, "admin")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.ID == "" || resp.Title != "周报" || resp.Points != 5 {
		t.Errorf("返回不符: %+v", resp)
	}
}

func TestTaskCreate_PinnedForcesWeek(t *testing.T) {
	svc, _, _ := setupTaskTest()

	resp, err := svc.Create(context.Background(), &dto.CreateTaskRequest{
		Title: "长期任务", Type: model.TaskTypeVariable, Week: "3", IsPinned: true,
	}, "admin")
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if resp.Week != model.WeekPinned {
		t.Errorf("置顶任务周次应归入置顶组，实际=%s", resp.Week)
	}
}

func TestTaskUpdate_PartialPatch(t *testing.T) {
	svc, _, _ := setupTaskTest()
	created, _ := svc.Create(context.Background(), &dto.CreateTaskRequest{
		Title: "周报", Points: 5, Type: model.TaskTypeFixed, Week: "3", Icon: "📝",
	}, "admin")

	points := 8
	resp, err := svc.Update(context.Background(), created.ID,
		&dto.UpdateTaskRequest{Points: &points}, "admin")
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if resp.Points != 8 {
		t.Errorf("期望Points=8，实际=%d", resp.Points)
	}
	if resp.Title != "周报" || resp.Icon != "📝" {
		t.Errorf("未传字段不应被改写: %+v", resp)
	}
}

func TestTaskDelete_ThenNotFound(t *testing.T) {
	svc, _, _ := setupTaskTest()
	created, _ := svc.Create(context.Background(), &dto.CreateTaskRequest{
		Title: "临时", Type: model.TaskTypeFixed, Week: "1",
	}, "admin")

	if err := svc.Delete(context.Background(), created.ID, "admin"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.GetByTaskID(context.Background(), created.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("删除后期望 ErrTaskNotFound，实际: %v", err)
	}
}

func TestTaskListGroupedByWeek(t *testing.T) {
	svc, _, mocks := setupTaskTest()

	for _, tk := range []struct {
		id   string
		week string
	}{
		{"t_a", "1"}, {"t_b", "3"}, {"t_c", "3"}, {"t_d", model.WeekPinned},
	} {
		mocks.task.Create(context.Background(), &model.Task{
			TaskID: tk.id, Title: tk.id, Week: tk.week, Type: model.TaskTypeFixed,
		})
	}

	groups, err := svc.ListGroupedByWeek(context.Background(), "")
	if err != nil {
		t.Fatalf("ListGroupedByWeek 应成功: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("期望3组，实际=%d", len(groups))
	}
	// 置顶组恒在最前，数字周次降序
	if groups[0].Week != model.WeekPinned {
		t.Errorf("第一组应为置顶组，实际=%s", groups[0].Week)
	}
	if groups[1].Week != "3" || groups[2].Week != "1" {
		t.Errorf("数字周次应降序，实际=%s,%s", groups[1].Week, groups[2].Week)
	}
	if len(groups[1].Tasks) != 2 {
		t.Errorf("第3周期望2个任务，实际=%d", len(groups[1].Tasks))
	}
}
