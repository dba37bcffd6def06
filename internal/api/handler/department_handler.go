package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/funnyprom/work-management-system/internal/dto"
	"github.com/funnyprom/work-management-system/internal/service"
	"github.com/funnyprom/work-management-system/pkg/response"
)

// DepartmentHandler 部门模块 HTTP 处理器
type DepartmentHandler struct {
	deptSvc       service.DepartmentService
	exposeDetails bool
}

// NewDepartmentHandler 创建 DepartmentHandler
func NewDepartmentHandler(deptSvc service.DepartmentService, exposeDetails bool) *DepartmentHandler {
	return &DepartmentHandler{deptSvc: deptSvc, exposeDetails: exposeDetails}
}

// ListDepartments 获取启用中的部门列表
// GET /api/departments
func (h *DepartmentHandler) ListDepartments(c *gin.Context) {
	depts, err := h.deptSvc.List(c.Request.Context())
	if err != nil {
		h.handleDepartmentError(c, err, "Failed to fetch departments")
		return
	}

	response.OK(c, depts)
}

// CreateDepartment 创建部门
// POST /api/departments
func (h *DepartmentHandler) CreateDepartment(c *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestBody(c, "Name and code are required")
		return
	}

	dept, err := h.deptSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleDepartmentError(c, err, "Failed to create department")
		return
	}

	response.Created(c, dept)
}

// handleDepartmentError 统一处理部门模块业务错误
func (h *DepartmentHandler) handleDepartmentError(c *gin.Context, err error, internal string) {
	errorMapping{notFound: "Department not found", internal: internal, exposeDetails: h.exposeDetails}.write(c, err)
}
