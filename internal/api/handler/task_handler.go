package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/funnyprom/work-management-system/internal/dto"
	"github.com/funnyprom/work-management-system/internal/service"
	"github.com/funnyprom/work-management-system/pkg/response"
)

// TaskHandler 任务模块 HTTP 处理器
type TaskHandler struct {
	taskSvc       service.TaskService
	exposeDetails bool
}

// NewTaskHandler 创建 TaskHandler
func NewTaskHandler(taskSvc service.TaskService, exposeDetails bool) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc, exposeDetails: exposeDetails}
}

const taskRequiredMessage = "Title, status, and priority are required"

// ListTasks 获取任务列表
// GET /api/tasks
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskSvc.List(c.Request.Context())
	if err != nil {
		h.handleTaskError(c, err, "Failed to fetch tasks")
		return
	}

	response.OK(c, tasks)
}

// GetTask 获取任务详情
// GET /api/tasks/:id
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, err := h.taskSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleTaskError(c, err, "Failed to fetch task")
		return
	}

	response.OK(c, task)
}

// CreateTask 创建任务
// POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, taskRequiredMessage)
		return
	}

	task, err := h.taskSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTaskError(c, err, "Failed to create task")
		return
	}

	response.Created(c, task)
}

// UpdateTask 更新任务
// PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, taskRequiredMessage)
		return
	}

	task, err := h.taskSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleTaskError(c, err, "Failed to update task")
		return
	}

	response.OK(c, task)
}

// DeleteTask 软删除任务
// DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleTaskError(c, err, "Failed to delete task")
		return
	}

	response.Message(c, "Task deleted successfully")
}

// GetStats 任务统计汇总
// GET /api/tasks/stats/summary
func (h *TaskHandler) GetStats(c *gin.Context) {
	stats, err := h.taskSvc.Stats(c.Request.Context())
	if err != nil {
		h.handleTaskError(c, err, "Failed to fetch statistics")
		return
	}

	response.OK(c, stats)
}

func (h *TaskHandler) handleTaskError(c *gin.Context, err error, internal string) {
	errorMapping{notFound: "Task not found", internal: internal, exposeDetails: h.exposeDetails}.write(c, err)
}
