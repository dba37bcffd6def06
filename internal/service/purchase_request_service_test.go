package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/funnyprom/work-management-system/internal/dto"
	pkgerrors "github.com/funnyprom/work-management-system/pkg/errors"
	"github.com/funnyprom/work-management-system/pkg/metrics"
)

// ── 测试辅助 ──

func setupTestPurchaseRequestService() (PurchaseRequestService, *testRepos) {
	repo, mocks := newTestRepository()
	svc := NewPurchaseRequestService(repo, mocks.cache, time.Minute, metrics.New("test"), zap.NewNop())
	return svc, mocks
}

func intPtr(i int) *int { return &i }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func penPayload() *dto.PurchaseRequestPayload {
	return &dto.PurchaseRequestPayload{
		Requestor:  "Alice",
		Department: "Ops",
		Items: []dto.PurchaseRequestItemPayload{
			{ItemName: "Pen", Quantity: intPtr(10), UnitPrice: decPtr("5"), TotalPrice: decPtr("50")},
		},
	}
}

// ── Create 测试 ──

func TestPurchaseRequestService_Create_AppliesDefaults(t *testing.T) {
	svc, _ := setupTestPurchaseRequestService()

	result, err := svc.Create(context.Background(), penPayload())
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Status != "draft" {
		t.Errorf("期望默认状态 draft，实际=%s", result.Status)
	}
	if result.Notes != "" {
		t.Errorf("期望默认备注为空，实际=%q", result.Notes)
	}
	if !result.TotalAmount.IsZero() {
		t.Errorf("未提供总金额时应为 0（不重算），实际=%s", result.TotalAmount)
	}
	if result.ID == "" {
		t.Error("期望返回外部标识符")
	}
	if len(result.Items) != 1 {
		t.Fatalf("期望 1 条明细，实际=%d", len(result.Items))
	}
	item := result.Items[0]
	if item.ItemName != "Pen" || item.Quantity != 10 || !item.UnitPrice.Equal(decimal.NewFromInt(5)) {
		t.Errorf("明细字段不一致: %+v", item)
	}
	if item.ID == "" {
		t.Error("明细应带外部标识符")
	}
	if result.Date == "" {
		t.Error("未提供日期时应默认为当前时间")
	}
}

func TestPurchaseRequestService_Create_ValidationBeforeStore(t *testing.T) {
	svc, mocks := setupTestPurchaseRequestService()

	tests := []struct {
		name   string
		mutate func(p *dto.PurchaseRequestPayload)
	}{
		{"缺少申请人", func(p *dto.PurchaseRequestPayload) { p.Requestor = "" }},
		{"缺少部门", func(p *dto.PurchaseRequestPayload) { p.Department = "" }},
		{"明细为空", func(p *dto.PurchaseRequestPayload) { p.Items = nil }},
		{"数量为0", func(p *dto.PurchaseRequestPayload) { p.Items[0].Quantity = intPtr(0) }},
		{"非法状态", func(p *dto.PurchaseRequestPayload) { p.Status = "archived" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := penPayload()
			tt.mutate(p)
			_, err := svc.Create(context.Background(), p)
			if !pkgerrors.IsValidation(err) {
				t.Fatalf("期望 ValidationError，实际=%v", err)
			}
		})
	}

	if mocks.pr.calls != 0 {
		t.Errorf("校验失败时不应访问存储，实际调用 %d 次", mocks.pr.calls)
	}
}

func TestPurchaseRequestService_Create_MissingFieldsMessage(t *testing.T) {
	svc, _ := setupTestPurchaseRequestService()

	_, err := svc.Create(context.Background(), &dto.PurchaseRequestPayload{Requestor: "Alice", Department: "Ops"})
	var ve *pkgerrors.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("期望 ValidationError，实际=%v", err)
	}
	if ve.Message != "Requestor, department, and items are required" {
		t.Errorf("错误提示不符: %s", ve.Message)
	}
}

func TestPurchaseRequestService_Create_StoreFailure(t *testing.T) {
	svc, mocks := setupTestPurchaseRequestService()
	mocks.pr.createErr = errStore

	_, err := svc.Create(context.Background(), penPayload())
	if !pkgerrors.IsPersistence(err) {
		t.Fatalf("期望 PersistenceError，实际=%v", err)
	}
	if !errors.Is(err, errStore) {
		t.Error("PersistenceError 应保留原始错误")
	}
}

func TestPurchaseRequestService_Create_ReloadFailureFallsBack(t *testing.T) {
	svc, mocks := setupTestPurchaseRequestService()
	mocks.pr.getErr = errStore

	result, err := svc.Create(context.Background(), penPayload())
	if err != nil {
		t.Fatalf("写入已提交，重新读取失败不应报错: %v", err)
	}
	if result.ID == "" || len(result.Items) != 1 {
		t.Errorf("应返回写入时的值: %+v", result)
	}
}

// ── GetByID 测试 ──

func TestPurchaseRequestService_GetByID(t *testing.T) {
	svc, _ := setupTestPurchaseRequestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, penPayload())

	found, err := svc.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if found.Requestor != "Alice" || len(found.Items) != 1 {
		t.Errorf("返回数据不一致: %+v", found)
	}
}

func TestPurchaseRequestService_GetByID_NotFound(t *testing.T) {
	svc, mocks := setupTestPurchaseRequestService()

	_, err := svc.GetByID(context.Background(), "00000000-0000-0000-0000-000000000999")
	if !errors.Is(err, ErrPurchaseRequestNotFound) {
		t.Errorf("期望 ErrPurchaseRequestNotFound，实际=%v", err)
	}
	if !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Error("应可被识别为通用 ErrNotFound")
	}

	calls := mocks.pr.calls
	if _, err := svc.GetByID(context.Background(), "not-a-uuid"); !errors.Is(err, ErrPurchaseRequestNotFound) {
		t.Errorf("非法标识符期望 NotFound，实际=%v", err)
	}
	if mocks.pr.calls != calls {
		t.Error("非法标识符不应访问存储")
	}
}

func TestIsUUID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"6ba7b810-9dad-11d1-80b4-00c04fd430c8", true},
		{"6BA7B810-9DAD-11D1-80B4-00C04FD430C8", true},
		{"urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8", false},
		{"{6ba7b810-9dad-11d1-80b4-00c04fd430c8}", false},
		{"6ba7b8109dad11d180b400c04fd430c8", false},
		{"not-a-uuid", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isUUID(tt.id); got != tt.want {
			t.Errorf("isUUID(%q)=%v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestPurchaseRequestService_NonCanonicalIDIsNotFound(t *testing.T) {
	svc, mocks := setupTestPurchaseRequestService()
	ctx := context.Background()

	calls := mocks.pr.calls
	for _, id := range []string{
		"urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"{6ba7b810-9dad-11d1-80b4-00c04fd430c8}",
		"6ba7b8109dad11d180b400c04fd430c8",
	} {
		if _, err := svc.GetByID(ctx, id); !errors.Is(err, ErrPurchaseRequestNotFound) {
			t.Errorf("GetByID(%q) 期望 NotFound，实际=%v", id, err)
		}
		if err := svc.Delete(ctx, id); !errors.Is(err, ErrPurchaseRequestNotFound) {
			t.Errorf("Delete(%q) 期望 NotFound，实际=%v", id, err)
		}
	}
	if mocks.pr.calls != calls {
		t.Error("非标准格式标识符不应访问存储")
	}
}

// ── Update 测试 ──

func TestPurchaseRequestService_Update_ReplacesAndRereads(t *testing.T) {
	svc, _ := setupTestPurchaseRequestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, penPayload())

	update := penPayload()
	update.Status = "approved"
	update.TotalAmount = decPtr("80")
	update.Items = []dto.PurchaseRequestItemPayload{
		{ItemName: "Stapler", Quantity: intPtr(2), UnitPrice: decPtr("15"), TotalPrice: decPtr("30")},
		{ItemName: "Tape", Quantity: intPtr(5), UnitPrice: decPtr("10"), TotalPrice: decPtr("50")},
	}

	result, err := svc.Update(ctx, created.ID, update)
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.ID != created.ID {
		t.Errorf("更新不应改变标识符: %s vs %s", result.ID, created.ID)
	}
	if result.Status != "approved" || !result.TotalAmount.Equal(decimal.NewFromInt(80)) {
		t.Errorf("主表字段未更新: %+v", result)
	}
	if len(result.Items) != 2 || result.Items[0].ItemName != "Stapler" {
		t.Errorf("明细应整体替换: %+v", result.Items)
	}
	if result.Date != created.Date {
		t.Errorf("未提供日期时应保留原日期: %s vs %s", result.Date, created.Date)
	}
	if result.CreatedAt != created.CreatedAt {
		t.Error("更新响应应来自存储（保留 createdAt）")
	}
}

func TestPurchaseRequestService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestPurchaseRequestService()

	_, err := svc.Update(context.Background(), "00000000-0000-0000-0000-000000000999", penPayload())
	if !errors.Is(err, ErrPurchaseRequestNotFound) {
		t.Errorf("期望 ErrPurchaseRequestNotFound，实际=%v", err)
	}
}

func TestPurchaseRequestService_Update_ValidationBeforeStore(t *testing.T) {
	svc, mocks := setupTestPurchaseRequestService()

	p := penPayload()
	p.Items = []dto.PurchaseRequestItemPayload{}
	_, err := svc.Update(context.Background(), "00000000-0000-0000-0000-000000000001", p)
	if !pkgerrors.IsValidation(err) {
		t.Fatalf("期望 ValidationError，实际=%v", err)
	}
	if mocks.pr.calls != 0 {
		t.Error("校验失败时不应访问存储")
	}
}

// ── Delete 测试 ──

func TestPurchaseRequestService_Delete(t *testing.T) {
	svc, _ := setupTestPurchaseRequestService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, penPayload())

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrPurchaseRequestNotFound) {
		t.Errorf("删除后应不可查，实际=%v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrPurchaseRequestNotFound) {
		t.Errorf("重复删除期望 NotFound，实际=%v", err)
	}
	if _, err := svc.Update(ctx, created.ID, penPayload()); !errors.Is(err, ErrPurchaseRequestNotFound) {
		t.Errorf("已删除记录不可更新，实际=%v", err)
	}

	list, _ := svc.List(ctx, nil)
	if len(list) != 0 {
		t.Errorf("列表不应包含已删除记录，实际=%d", len(list))
	}
}

// ── List 测试 ──

func TestPurchaseRequestService_List_Filter(t *testing.T) {
	svc, _ := setupTestPurchaseRequestService()
	ctx := context.Background()

	svc.Create(ctx, penPayload())
	pending := penPayload()
	pending.Status = "pending"
	svc.Create(ctx, pending)

	all, err := svc.List(ctx, &dto.PurchaseRequestListRequest{})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("期望 2 条，实际=%d", len(all))
	}

	filtered, _ := svc.List(ctx, &dto.PurchaseRequestListRequest{Status: "pending"})
	if len(filtered) != 1 || filtered[0].Status != "pending" {
		t.Errorf("状态过滤错误: %+v", filtered)
	}
}

func TestPurchaseRequestService_List_EmptyIsNonNil(t *testing.T) {
	svc, _ := setupTestPurchaseRequestService()

	list, err := svc.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if list == nil {
		t.Error("空列表应为 [] 而非 null")
	}
}

// ── Stats 测试 ──

func TestPurchaseRequestService_Stats_ZeroFilled(t *testing.T) {
	svc, _ := setupTestPurchaseRequestService()

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats 应成功: %v", err)
	}
	if stats.Total != 0 || stats.Draft != 0 || stats.Pending != 0 || stats.Approved != 0 || stats.Rejected != 0 {
		t.Errorf("空库统计应全部为 0: %+v", stats)
	}
	if !stats.TotalAmount.IsZero() {
		t.Errorf("空库总金额应为 0，实际=%s", stats.TotalAmount)
	}
}

func TestPurchaseRequestService_Stats_CachedAndInvalidated(t *testing.T) {
	svc, mocks := setupTestPurchaseRequestService()
	ctx := context.Background()

	p := penPayload()
	p.TotalAmount = decPtr("50")
	created, _ := svc.Create(ctx, p)

	first, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats 应成功: %v", err)
	}
	if first.Total != 1 || first.Draft != 1 || !first.TotalAmount.Equal(decimal.NewFromInt(50)) {
		t.Errorf("统计错误: %+v", first)
	}

	// 第二次读取命中缓存
	calls := mocks.pr.calls
	second, _ := svc.Stats(ctx)
	if mocks.pr.calls != calls {
		t.Error("第二次读取应命中缓存")
	}
	if second.Total != first.Total || !second.TotalAmount.Equal(first.TotalAmount.Decimal) {
		t.Errorf("缓存结果不一致: %+v vs %+v", second, first)
	}

	// 删除后缓存失效
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	third, _ := svc.Stats(ctx)
	if third.Total != 0 {
		t.Errorf("删除后统计应刷新，实际 total=%d", third.Total)
	}
}

func TestPurchaseRequestService_Stats_NoCache(t *testing.T) {
	repo, _ := newTestRepository()
	svc := NewPurchaseRequestService(repo, nil, time.Minute, nil, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, penPayload()); err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats 应成功: %v", err)
	}
	if stats.Total != 1 {
		t.Errorf("期望 total=1，实际=%d", stats.Total)
	}
}

func TestPurchaseRequestService_Stats_StoreFailure(t *testing.T) {
	svc, mocks := setupTestPurchaseRequestService()
	mocks.pr.statsErr = errStore

	_, err := svc.Stats(context.Background())
	if !pkgerrors.IsPersistence(err) {
		t.Errorf("期望 PersistenceError，实际=%v", err)
	}
}
