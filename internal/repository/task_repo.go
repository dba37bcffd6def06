package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/funnyprom/work-management-system/internal/model"
)

// TaskRepository 任务数据访问接口
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	GetByGUID(ctx context.Context, guid string) (*model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	Update(ctx context.Context, guid string, task *model.Task) error
	SoftDelete(ctx context.Context, guid string) error
	Stats(ctx context.Context, now time.Time) (*model.TaskStats, error)
}

type taskRepo struct {
	db *gorm.DB
}

// NewTaskRepo 创建 TaskRepository 实例
func NewTaskRepo(db *gorm.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepo) GetByGUID(ctx context.Context, guid string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("task_guid = ? AND is_deleted = ?", guid, false).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepo) List(ctx context.Context) ([]model.Task, error) {
	tasks := make([]model.Task, 0)
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// Update 全量覆盖任务字段，未命中返回 gorm.ErrRecordNotFound
func (r *taskRepo) Update(ctx context.Context, guid string, task *model.Task) error {
	result := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("task_guid = ? AND is_deleted = ?", guid, false).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"priority":    task.Priority,
			"assignee":    task.Assignee,
			"due_date":    task.DueDate,
			"updated_at":  gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *taskRepo) SoftDelete(ctx context.Context, guid string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("task_guid = ? AND is_deleted = ?", guid, false).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": gorm.Expr("NOW()"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Stats 任务统计；overdue = 截止时间早于 now 且未完成
func (r *taskRepo) Stats(ctx context.Context, now time.Time) (*model.TaskStats, error) {
	var stats model.TaskStats
	err := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS todo,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS in_progress,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS done,
			COALESCE(SUM(CASE WHEN priority = ? THEN 1 ELSE 0 END), 0) AS high_priority,
			COALESCE(SUM(CASE WHEN due_date < ? AND status <> ? THEN 1 ELSE 0 END), 0) AS overdue`,
			model.TaskStatusTodo, model.TaskStatusInProgress, model.TaskStatusDone,
			model.TaskPriorityHigh, now, model.TaskStatusDone).
		Where("is_deleted = ?", false).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
