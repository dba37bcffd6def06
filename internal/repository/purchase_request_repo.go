package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/funnyprom/work-management-system/internal/model"
)

// PurchaseRequestFilter 列表过滤条件，空值表示不过滤
type PurchaseRequestFilter struct {
	Status     string
	Department string
}

// PurchaseRequestRepository 采购申请（主表 + 明细）数据访问接口
// 所有读取只返回 is_deleted = false 的主表记录；未命中返回 gorm.ErrRecordNotFound
type PurchaseRequestRepository interface {
	Create(ctx context.Context, pr *model.PurchaseRequest) error
	Replace(ctx context.Context, guid string, pr *model.PurchaseRequest) error
	GetByGUID(ctx context.Context, guid string) (*model.PurchaseRequest, error)
	List(ctx context.Context, filter PurchaseRequestFilter) ([]model.PurchaseRequest, error)
	SoftDelete(ctx context.Context, guid string) error
	Stats(ctx context.Context) (*model.PurchaseRequestStats, error)
}

type purchaseRequestRepo struct {
	db *gorm.DB
}

// NewPurchaseRequestRepo 创建 PurchaseRequestRepository 实例
func NewPurchaseRequestRepo(db *gorm.DB) PurchaseRequestRepository {
	return &purchaseRequestRepo{db: db}
}

// ────────────────────── Create ──────────────────────

// Create 在单个事务内写入主表与全部明细
// 成功后 pr 与 pr.Items 上回填 pr_id / pr_guid / item_guid / 时间戳
// 事务一旦开始即执行到提交或回滚，客户端断开不会中止它
func (r *purchaseRequestRepo) Create(ctx context.Context, pr *model.PurchaseRequest) error {
	return r.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(pr).Error; err != nil {
			return err
		}
		return insertItems(tx, pr.PRID, pr.Items)
	})
}

// ────────────────────── Replace ──────────────────────

// Replace 全量替换：更新主表全部字段，删除旧明细后写入新明细
// pr.RequestDate 为零值时保留原日期
// 与 Create 相同，不随请求上下文取消
func (r *purchaseRequestRepo) Replace(ctx context.Context, guid string, pr *model.PurchaseRequest) error {
	return r.db.WithContext(context.WithoutCancel(ctx)).Transaction(func(tx *gorm.DB) error {
		var current model.PurchaseRequest
		if err := tx.Select("pr_id", "pr_guid").
			Where("pr_guid = ? AND is_deleted = ?", guid, false).
			First(&current).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"request_number": pr.RequestNumber,
			"requestor":      pr.Requestor,
			"department":     pr.Department,
			"total_amount":   pr.TotalAmount,
			"status":         pr.Status,
			"notes":          pr.Notes,
			"updated_at":     gorm.Expr("NOW()"),
		}
		if !pr.RequestDate.IsZero() {
			updates["request_date"] = pr.RequestDate
		}
		if err := tx.Model(&model.PurchaseRequest{}).
			Where("pr_id = ?", current.PRID).
			Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Where("pr_id = ?", current.PRID).
			Delete(&model.PurchaseRequestItem{}).Error; err != nil {
			return err
		}

		pr.PRID = current.PRID
		pr.PRGuid = current.PRGuid
		return insertItems(tx, current.PRID, pr.Items)
	})
}

// insertItems 逐条写入明细，任一失败即中止事务
func insertItems(tx *gorm.DB, prID int64, items []model.PurchaseRequestItem) error {
	for i := range items {
		items[i].PRID = prID
		if err := tx.Create(&items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// ────────────────────── Read ──────────────────────

func (r *purchaseRequestRepo) GetByGUID(ctx context.Context, guid string) (*model.PurchaseRequest, error) {
	var pr model.PurchaseRequest
	err := r.db.WithContext(ctx).
		Where("pr_guid = ? AND is_deleted = ?", guid, false).
		First(&pr).Error
	if err != nil {
		return nil, err
	}

	prs := []model.PurchaseRequest{pr}
	if err := r.attachItems(ctx, prs); err != nil {
		return nil, err
	}
	return &prs[0], nil
}

func (r *purchaseRequestRepo) List(ctx context.Context, filter PurchaseRequestFilter) ([]model.PurchaseRequest, error) {
	db := r.db.WithContext(ctx).Where("is_deleted = ?", false)
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Department != "" {
		db = db.Where("department = ?", filter.Department)
	}

	prs := make([]model.PurchaseRequest, 0)
	if err := db.Order("created_at DESC").Find(&prs).Error; err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, prs); err != nil {
		return nil, err
	}
	return prs, nil
}

// attachItems 一次查询取回所有主表记录的明细，再按 pr_id 归组（避免 N+1）
func (r *purchaseRequestRepo) attachItems(ctx context.Context, prs []model.PurchaseRequest) error {
	if len(prs) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(prs))
	for _, pr := range prs {
		ids = append(ids, pr.PRID)
	}

	var items []model.PurchaseRequestItem
	if err := r.db.WithContext(ctx).
		Where("pr_id IN ?", ids).
		Order("item_id ASC").
		Find(&items).Error; err != nil {
		return err
	}

	byPR := make(map[int64][]model.PurchaseRequestItem, len(prs))
	for _, item := range items {
		byPR[item.PRID] = append(byPR[item.PRID], item)
	}
	for i := range prs {
		prs[i].Items = byPR[prs[i].PRID]
		if prs[i].Items == nil {
			prs[i].Items = []model.PurchaseRequestItem{}
		}
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

// SoftDelete 仅标记主表 is_deleted，明细保留不动
// 已删除或不存在时返回 gorm.ErrRecordNotFound
func (r *purchaseRequestRepo) SoftDelete(ctx context.Context, guid string) error {
	result := r.db.WithContext(ctx).
		Model(&model.PurchaseRequest{}).
		Where("pr_guid = ? AND is_deleted = ?", guid, false).
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

// ────────────────────── Stats ──────────────────────

func (r *purchaseRequestRepo) Stats(ctx context.Context) (*model.PurchaseRequestStats, error) {
	var stats model.PurchaseRequestStats
	err := r.db.WithContext(ctx).
		Model(&model.PurchaseRequest{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS draft,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS approved,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS rejected,
			COALESCE(SUM(total_amount), 0) AS total_amount`,
			model.PRStatusDraft, model.PRStatusPending, model.PRStatusApproved, model.PRStatusRejected).
		Where("is_deleted = ?", false).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
