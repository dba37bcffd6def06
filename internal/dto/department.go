package dto

import "github.com/funnyprom/work-management-system/internal/model"

// ── 部门模块 DTO ──

// CreateDepartmentRequest 创建部门请求
type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required,max=100"`
	Code string `json:"code" binding:"required,max=20"`
}

// DepartmentResponse 部门响应
type DepartmentResponse struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

// NewDepartmentResponse 模型转响应
func NewDepartmentResponse(d *model.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:        d.DepartmentID,
		Name:      d.DepartmentName,
		Code:      d.DepartmentCode,
		IsActive:  d.IsActive,
		CreatedAt: FormatTime(d.CreatedAt),
	}
}
