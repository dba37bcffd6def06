package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/funnyprom/work-management-system/internal/model"
)

// DepartmentRepository 部门数据访问接口
type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	List(ctx context.Context) ([]model.Department, error)
}

// departmentRepo DepartmentRepository 的 GORM 实现
type departmentRepo struct {
	db *gorm.DB
}

// NewDepartmentRepo 创建 DepartmentRepository 实例
func NewDepartmentRepo(db *gorm.DB) DepartmentRepository {
	return &departmentRepo{db: db}
}

func (r *departmentRepo) Create(ctx context.Context, dept *model.Department) error {
	return r.db.WithContext(ctx).Create(dept).Error
}

// List 仅返回启用中的部门
func (r *departmentRepo) List(ctx context.Context) ([]model.Department, error) {
	depts := make([]model.Department, 0)
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("department_name ASC").
		Find(&depts).Error
	return depts, err
}
