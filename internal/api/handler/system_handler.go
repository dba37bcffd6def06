package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/funnyprom/work-management-system/pkg/response"
)

// SystemHandler 健康检查与服务索引
type SystemHandler struct {
	now func() time.Time
}

// NewSystemHandler 创建 SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{now: time.Now}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Health 存活检查
// GET /api/health
func (h *SystemHandler) Health(c *gin.Context) {
	response.OK(c, HealthResponse{
		Status:    "OK",
		Message:   "Work Management API is running",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

// Index 服务索引
// GET /
func (h *SystemHandler) Index(c *gin.Context) {
	response.OK(c, gin.H{
		"message": "Work Management System API",
		"version": "1.0.0",
		"endpoints": gin.H{
			"health":           "/api/health",
			"tasks":            "/api/tasks",
			"purchaseRequests": "/api/purchase-requests",
			"departments":      "/api/departments",
			"users":            "/api/users",
			"metrics":          "/metrics",
		},
	})
}
