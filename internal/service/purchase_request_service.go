package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/funnyprom/work-management-system/internal/dto"
	"github.com/funnyprom/work-management-system/internal/model"
	"github.com/funnyprom/work-management-system/internal/repository"
	pkgerrors "github.com/funnyprom/work-management-system/pkg/errors"
	"github.com/funnyprom/work-management-system/pkg/metrics"
)

// ── 采购申请模块业务错误 ──

var ErrPurchaseRequestNotFound = fmt.Errorf("采购申请%w", pkgerrors.ErrNotFound)

// purchaseRequestStatsKey 统计汇总缓存键
const purchaseRequestStatsKey = "stats:purchase_requests"

// metrics 实体标签
const entityPurchaseRequest = "purchase_request"

// StatsCache 统计汇总缓存；*redis.Client 实现该接口，未启用 Redis 时传 nil
type StatsCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// PurchaseRequestService 采购申请业务接口
//
// 约定：
//   - 参数校验在访问存储之前完成，失败返回 *errors.ValidationError
//   - 标识符格式非法或记录不存在/已软删除，统一返回 ErrPurchaseRequestNotFound
//   - 存储层失败包装为 *errors.PersistenceError
//   - 创建与更新成功后均从存储重新读取，返回落库后的值
type PurchaseRequestService interface {
	Create(ctx context.Context, req *dto.PurchaseRequestPayload) (*dto.PurchaseRequestResponse, error)
	GetByID(ctx context.Context, id string) (*dto.PurchaseRequestResponse, error)
	List(ctx context.Context, req *dto.PurchaseRequestListRequest) ([]dto.PurchaseRequestResponse, error)
	Update(ctx context.Context, id string, req *dto.PurchaseRequestPayload) (*dto.PurchaseRequestResponse, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*dto.PurchaseRequestStatsResponse, error)
}

type purchaseRequestService struct {
	repo     *repository.Repository
	cache    StatsCache
	statsTTL time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewPurchaseRequestService 创建 PurchaseRequestService 实例
// cache 与 m 均可为 nil
func NewPurchaseRequestService(repo *repository.Repository, cache StatsCache, statsTTL time.Duration, m *metrics.Metrics, logger *zap.Logger) PurchaseRequestService {
	return &purchaseRequestService{
		repo:     repo,
		cache:    cache,
		statsTTL: statsTTL,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
	}
}

// ────────────────────── Create ──────────────────────

func (s *purchaseRequestService) Create(ctx context.Context, req *dto.PurchaseRequestPayload) (*dto.PurchaseRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	pr := req.ToModel(s.now().UTC())
	err := s.repo.PurchaseRequest.Create(ctx, pr)
	s.metrics.RecordOperation(entityPurchaseRequest, "create", err)
	if err != nil {
		s.logger.Error("创建采购申请失败", zap.String("requestor", pr.Requestor), zap.Error(err))
		return nil, pkgerrors.Persistence("创建采购申请", err)
	}

	s.logger.Info("采购申请已创建", zap.String("id", pr.PRGuid), zap.Int("items", len(pr.Items)))
	s.invalidateStats(ctx)

	return s.reload(ctx, pr), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *purchaseRequestService) GetByID(ctx context.Context, id string) (*dto.PurchaseRequestResponse, error) {
	if !isUUID(id) {
		return nil, ErrPurchaseRequestNotFound
	}

	pr, err := s.repo.PurchaseRequest.GetByGUID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPurchaseRequestNotFound
		}
		s.logger.Error("查询采购申请失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.Persistence("查询采购申请", err)
	}

	return dto.NewPurchaseRequestResponse(pr), nil
}

// ────────────────────── List ──────────────────────

func (s *purchaseRequestService) List(ctx context.Context, req *dto.PurchaseRequestListRequest) ([]dto.PurchaseRequestResponse, error) {
	filter := repository.PurchaseRequestFilter{}
	if req != nil {
		filter.Status = req.Status
		filter.Department = req.Department
	}

	prs, err := s.repo.PurchaseRequest.List(ctx, filter)
	if err != nil {
		s.logger.Error("列出采购申请失败", zap.Error(err))
		return nil, pkgerrors.Persistence("列出采购申请", err)
	}

	result := make([]dto.PurchaseRequestResponse, 0, len(prs))
	for i := range prs {
		result = append(result, *dto.NewPurchaseRequestResponse(&prs[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

// Update 全量替换主表字段与明细集合；未提供 date 时保留原日期
func (s *purchaseRequestService) Update(ctx context.Context, id string, req *dto.PurchaseRequestPayload) (*dto.PurchaseRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if !isUUID(id) {
		return nil, ErrPurchaseRequestNotFound
	}

	pr := req.ToModel(time.Time{})
	err := s.repo.PurchaseRequest.Replace(ctx, id, pr)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.metrics.RecordOperation(entityPurchaseRequest, "update", nil)
		return nil, ErrPurchaseRequestNotFound
	}
	s.metrics.RecordOperation(entityPurchaseRequest, "update", err)
	if err != nil {
		s.logger.Error("更新采购申请失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.Persistence("更新采购申请", err)
	}

	s.logger.Info("采购申请已更新", zap.String("id", id), zap.Int("items", len(pr.Items)))
	s.invalidateStats(ctx)

	return s.reload(ctx, pr), nil
}

// ────────────────────── Delete ──────────────────────

func (s *purchaseRequestService) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrPurchaseRequestNotFound
	}

	err := s.repo.PurchaseRequest.SoftDelete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.metrics.RecordOperation(entityPurchaseRequest, "delete", nil)
		return ErrPurchaseRequestNotFound
	}
	s.metrics.RecordOperation(entityPurchaseRequest, "delete", err)
	if err != nil {
		s.logger.Error("删除采购申请失败", zap.String("id", id), zap.Error(err))
		return pkgerrors.Persistence("删除采购申请", err)
	}

	s.logger.Info("采购申请已删除", zap.String("id", id))
	s.invalidateStats(ctx)
	return nil
}

// ────────────────────── Stats ──────────────────────

// Stats 统计汇总，优先读取缓存；缓存异常只记录日志，不影响结果
func (s *purchaseRequestService) Stats(ctx context.Context) (*dto.PurchaseRequestStatsResponse, error) {
	if s.cache != nil {
		var cached model.PurchaseRequestStats
		if err := s.cache.GetJSON(ctx, purchaseRequestStatsKey, &cached); err == nil {
			return dto.NewPurchaseRequestStatsResponse(&cached), nil
		}
	}

	stats, err := s.repo.PurchaseRequest.Stats(ctx)
	if err != nil {
		s.logger.Error("统计采购申请失败", zap.Error(err))
		return nil, pkgerrors.Persistence("统计采购申请", err)
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, purchaseRequestStatsKey, stats, s.statsTTL); err != nil {
			s.logger.Warn("写入统计缓存失败", zap.Error(err))
		}
	}
	return dto.NewPurchaseRequestStatsResponse(stats), nil
}

// ── 辅助函数 ──

// reload 写入成功后从存储重新读取主表与明细
// 事务已提交，重新读取失败时退回写入时的值，不向调用方报错
func (s *purchaseRequestService) reload(ctx context.Context, written *model.PurchaseRequest) *dto.PurchaseRequestResponse {
	stored, err := s.repo.PurchaseRequest.GetByGUID(ctx, written.PRGuid)
	if err != nil {
		s.logger.Warn("重新读取采购申请失败，返回写入值", zap.String("id", written.PRGuid), zap.Error(err))
		return dto.NewPurchaseRequestResponse(written)
	}
	return dto.NewPurchaseRequestResponse(stored)
}

func (s *purchaseRequestService) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, purchaseRequestStatsKey); err != nil {
		s.logger.Warn("清除统计缓存失败", zap.Error(err))
	}
}

// isUUID 外部标识符均为 UUID，格式非法视为不存在
// 只接受 36 位带连字符的标准形式；uuid.Parse 还接受 urn:uuid:、花括号与无连字符形式，PostgreSQL 不认
func isUUID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
