package dto

import "github.com/funnyprom/work-management-system/internal/model"

// ── 任务模块 DTO ──

// TaskRequest 创建/更新任务请求（更新为全量覆盖，与原接口一致）
type TaskRequest struct {
	Title       string  `json:"title"       binding:"required,max=200"`
	Description string  `json:"description"`
	Status      string  `json:"status"      binding:"required,oneof=todo in-progress done"`
	Priority    string  `json:"priority"    binding:"required,oneof=low medium high"`
	Assignee    string  `json:"assignee"    binding:"omitempty,max=200"`
	DueDate     *string `json:"dueDate"`
}

// TaskResponse 任务响应
type TaskResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	Assignee    string  `json:"assignee"`
	DueDate     *string `json:"dueDate"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// TaskStatsResponse 任务统计汇总
type TaskStatsResponse struct {
	Total        int64 `json:"total"`
	Todo         int64 `json:"todo"`
	InProgress   int64 `json:"inProgress"`
	Done         int64 `json:"done"`
	HighPriority int64 `json:"highPriority"`
	Overdue      int64 `json:"overdue"`
}

// NewTaskResponse 模型转响应
func NewTaskResponse(t *model.Task) *TaskResponse {
	return &TaskResponse{
		ID:          t.TaskGuid,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Assignee:    t.Assignee,
		DueDate:     FormatTimePtr(t.DueDate),
		CreatedAt:   FormatTime(t.CreatedAt),
		UpdatedAt:   FormatTime(t.UpdatedAt),
	}
}
