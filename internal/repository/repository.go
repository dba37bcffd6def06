package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	PurchaseRequest PurchaseRequestRepository
	Task            TaskRepository
	Department      DepartmentRepository
	User            UserRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		PurchaseRequest: NewPurchaseRequestRepo(db),
		Task:            NewTaskRepo(db),
		Department:      NewDepartmentRepo(db),
		User:            NewUserRepo(db),
	}
}
