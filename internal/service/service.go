package service

import (
	"go.uber.org/zap"

	"github.com/funnyprom/work-management-system/config"
	"github.com/funnyprom/work-management-system/internal/repository"
	"github.com/funnyprom/work-management-system/pkg/metrics"
)

// Service 所有 Service 的聚合入口
type Service struct {
	PurchaseRequest PurchaseRequestService
	Task            TaskService
	Department      DepartmentService
	User            UserService
	Export          ExportService
}

// NewService 创建 Service 聚合
// cache 为 nil 时统计汇总直接查库；m 为 nil 时不记录业务指标
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cache StatsCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) *Service {
	return &Service{
		PurchaseRequest: NewPurchaseRequestService(repo, cache, cfg.Redis.StatsTTL, m, logger),
		Task:            NewTaskService(repo, m, logger),
		Department:      NewDepartmentService(repo, logger),
		User:            NewUserService(repo, logger),
		Export:          NewExportService(repo, logger),
	}
}
