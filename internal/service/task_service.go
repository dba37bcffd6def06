package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/funnyprom/work-management-system/internal/dto"
	"github.com/funnyprom/work-management-system/internal/model"
	"github.com/funnyprom/work-management-system/internal/repository"
	pkgerrors "github.com/funnyprom/work-management-system/pkg/errors"
	"github.com/funnyprom/work-management-system/pkg/metrics"
)

// ── 任务模块业务错误 ──

var ErrTaskNotFound = fmt.Errorf("任务%w", pkgerrors.ErrNotFound)

const entityTask = "task"

// TaskService 任务业务接口
type TaskService interface {
	Create(ctx context.Context, req *dto.TaskRequest) (*dto.TaskResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TaskResponse, error)
	List(ctx context.Context) ([]dto.TaskResponse, error)
	Update(ctx context.Context, id string, req *dto.TaskRequest) (*dto.TaskResponse, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*dto.TaskStatsResponse, error)
}

type taskService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewTaskService 创建 TaskService 实例
func NewTaskService(repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) TaskService {
	return &taskService{repo: repo, metrics: m, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *taskService) Create(ctx context.Context, req *dto.TaskRequest) (*dto.TaskResponse, error) {
	task, err := taskFromRequest(req)
	if err != nil {
		return nil, err
	}

	err = s.repo.Task.Create(ctx, task)
	s.metrics.RecordOperation(entityTask, "create", err)
	if err != nil {
		s.logger.Error("创建任务失败", zap.Error(err))
		return nil, pkgerrors.Persistence("创建任务", err)
	}

	return dto.NewTaskResponse(task), nil
}

// ────────────────────── Query ──────────────────────

func (s *taskService) GetByID(ctx context.Context, id string) (*dto.TaskResponse, error) {
	if !isUUID(id) {
		return nil, ErrTaskNotFound
	}

	task, err := s.repo.Task.GetByGUID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		s.logger.Error("查询任务失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.Persistence("查询任务", err)
	}
	return dto.NewTaskResponse(task), nil
}

func (s *taskService) List(ctx context.Context) ([]dto.TaskResponse, error) {
	tasks, err := s.repo.Task.List(ctx)
	if err != nil {
		s.logger.Error("列出任务失败", zap.Error(err))
		return nil, pkgerrors.Persistence("列出任务", err)
	}

	result := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		result = append(result, *dto.NewTaskResponse(&tasks[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *taskService) Update(ctx context.Context, id string, req *dto.TaskRequest) (*dto.TaskResponse, error) {
	task, err := taskFromRequest(req)
	if err != nil {
		return nil, err
	}
	if !isUUID(id) {
		return nil, ErrTaskNotFound
	}

	err = s.repo.Task.Update(ctx, id, task)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	s.metrics.RecordOperation(entityTask, "update", err)
	if err != nil {
		s.logger.Error("更新任务失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.Persistence("更新任务", err)
	}

	return s.GetByID(ctx, id)
}

// ────────────────────── Delete ──────────────────────

func (s *taskService) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrTaskNotFound
	}

	err := s.repo.Task.SoftDelete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTaskNotFound
	}
	s.metrics.RecordOperation(entityTask, "delete", err)
	if err != nil {
		s.logger.Error("删除任务失败", zap.String("id", id), zap.Error(err))
		return pkgerrors.Persistence("删除任务", err)
	}
	return nil
}

// ────────────────────── Stats ──────────────────────

func (s *taskService) Stats(ctx context.Context) (*dto.TaskStatsResponse, error) {
	stats, err := s.repo.Task.Stats(ctx, s.now())
	if err != nil {
		s.logger.Error("统计任务失败", zap.Error(err))
		return nil, pkgerrors.Persistence("统计任务", err)
	}
	return &dto.TaskStatsResponse{
		Total:        stats.Total,
		Todo:         stats.Todo,
		InProgress:   stats.InProgress,
		Done:         stats.Done,
		HighPriority: stats.HighPriority,
		Overdue:      stats.Overdue,
	}, nil
}

// taskFromRequest 解析截止日期并转换为模型
func taskFromRequest(req *dto.TaskRequest) (*model.Task, error) {
	task := &model.Task{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Assignee:    req.Assignee,
	}
	if task.Title == "" {
		return nil, pkgerrors.NewValidation("title", "is required")
	}
	if req.DueDate != nil && *req.DueDate != "" {
		due, ok := dto.ParseDate(*req.DueDate)
		if !ok {
			return nil, pkgerrors.NewValidation("dueDate", "must be an ISO-8601 date or timestamp")
		}
		task.DueDate = &due
	}
	return task, nil
}
