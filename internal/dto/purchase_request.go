package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/funnyprom/work-management-system/internal/model"
	pkgerrors "github.com/funnyprom/work-management-system/pkg/errors"
)

// ── 采购申请字段默认值 ──
//
// 调用方省略对应字段时使用：
//   - status      → DefaultPRStatus
//   - notes       → DefaultPRNotes
//   - totalAmount → DefaultPRTotalAmount（不根据明细重新计算）
//   - date        → 创建时取当前时间；更新时保持原值
//   - description → 明细描述默认为空串
const (
	DefaultPRStatus = model.PRStatusDraft
	DefaultPRNotes  = ""
)

// DefaultPRTotalAmount 总金额默认值
var DefaultPRTotalAmount = decimal.Zero

// PurchaseRequestItemPayload 采购明细请求
type PurchaseRequestItemPayload struct {
	ItemName    string           `json:"itemName"`
	Description string           `json:"description"`
	Quantity    *int             `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	TotalPrice  *decimal.Decimal `json:"totalPrice"`
}

// PurchaseRequestPayload 创建/更新采购申请请求（更新时 items 为全量替换集合）
type PurchaseRequestPayload struct {
	RequestNumber string                       `json:"requestNumber"`
	Requestor     string                       `json:"requestor"`
	Department    string                       `json:"department"`
	Date          string                       `json:"date"`
	Items         []PurchaseRequestItemPayload `json:"items"`
	TotalAmount   *decimal.Decimal             `json:"totalAmount"`
	Status        string                       `json:"status"`
	Notes         *string                      `json:"notes"`
}

// PurchaseRequestListRequest 采购申请列表过滤条件
type PurchaseRequestListRequest struct {
	Status     string `form:"status"     binding:"omitempty,oneof=draft pending approved rejected"`
	Department string `form:"department" binding:"omitempty,max=100"`
}

// Validate 校验必填字段与取值范围，在访问存储之前调用
func (p *PurchaseRequestPayload) Validate() error {
	if strings.TrimSpace(p.Requestor) == "" || strings.TrimSpace(p.Department) == "" || len(p.Items) == 0 {
		return pkgerrors.NewValidation("", "Requestor, department, and items are required")
	}
	if len(p.RequestNumber) > 50 {
		return pkgerrors.NewValidation("requestNumber", "must be at most 50 characters")
	}
	if len(p.Requestor) > 200 {
		return pkgerrors.NewValidation("requestor", "must be at most 200 characters")
	}
	if len(p.Department) > 100 {
		return pkgerrors.NewValidation("department", "must be at most 100 characters")
	}
	if p.Status != "" && !model.IsValidPRStatus(p.Status) {
		return pkgerrors.NewValidation("status", "must be one of draft, pending, approved, rejected")
	}
	if p.Date != "" {
		if _, ok := ParseDate(p.Date); !ok {
			return pkgerrors.NewValidation("date", "must be an ISO-8601 date or timestamp")
		}
	}
	if p.TotalAmount != nil && p.TotalAmount.IsNegative() {
		return pkgerrors.NewValidation("totalAmount", "must not be negative")
	}

	for i := range p.Items {
		item := &p.Items[i]
		if strings.TrimSpace(item.ItemName) == "" || item.Quantity == nil || item.UnitPrice == nil || item.TotalPrice == nil {
			return pkgerrors.NewValidation(itemField(i, ""), "itemName, quantity, unitPrice, and totalPrice are required")
		}
		if *item.Quantity <= 0 {
			return pkgerrors.NewValidation(itemField(i, "quantity"), "must be greater than 0")
		}
		if item.UnitPrice.IsNegative() || item.TotalPrice.IsNegative() {
			return pkgerrors.NewValidation(itemField(i, "unitPrice"), "prices must not be negative")
		}
	}
	return nil
}

// ToModel 应用默认值并转换为持久化模型
// defaultDate 为零值时表示“未提供日期则不修改”（更新场景）
func (p *PurchaseRequestPayload) ToModel(defaultDate time.Time) *model.PurchaseRequest {
	pr := &model.PurchaseRequest{
		RequestNumber: p.RequestNumber,
		Requestor:     strings.TrimSpace(p.Requestor),
		Department:    strings.TrimSpace(p.Department),
		RequestDate:   defaultDate,
		TotalAmount:   DefaultPRTotalAmount,
		Status:        DefaultPRStatus,
		Notes:         DefaultPRNotes,
	}
	if d, ok := ParseDate(p.Date); ok {
		pr.RequestDate = d
	}
	if p.TotalAmount != nil {
		pr.TotalAmount = p.TotalAmount.Round(2)
	}
	if p.Status != "" {
		pr.Status = p.Status
	}
	if p.Notes != nil {
		pr.Notes = *p.Notes
	}

	pr.Items = make([]model.PurchaseRequestItem, 0, len(p.Items))
	for _, item := range p.Items {
		pr.Items = append(pr.Items, model.PurchaseRequestItem{
			ItemName:    strings.TrimSpace(item.ItemName),
			Description: item.Description,
			Quantity:    *item.Quantity,
			UnitPrice:   item.UnitPrice.Round(2),
			TotalPrice:  item.TotalPrice.Round(2),
		})
	}
	return pr
}

func itemField(i int, name string) string {
	field := "items[" + strconv.Itoa(i) + "]"
	if name != "" {
		field += "." + name
	}
	return field
}

// ── 响应 ──

// PurchaseRequestItemResponse 采购明细响应
type PurchaseRequestItemResponse struct {
	ID          string `json:"id"`
	ItemName    string `json:"itemName"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UnitPrice   Money  `json:"unitPrice"`
	TotalPrice  Money  `json:"totalPrice"`
}

// PurchaseRequestResponse 采购申请响应（含明细）
type PurchaseRequestResponse struct {
	ID            string                        `json:"id"`
	RequestNumber string                        `json:"requestNumber"`
	Requestor     string                        `json:"requestor"`
	Department    string                        `json:"department"`
	Date          string                        `json:"date"`
	TotalAmount   Money                         `json:"totalAmount"`
	Status        string                        `json:"status"`
	Notes         string                        `json:"notes"`
	Items         []PurchaseRequestItemResponse `json:"items"`
	CreatedAt     string                        `json:"createdAt"`
	UpdatedAt     string                        `json:"updatedAt"`
}

// PurchaseRequestStatsResponse 采购申请统计汇总，所有字段恒存在
type PurchaseRequestStatsResponse struct {
	Total       int64 `json:"total"`
	Draft       int64 `json:"draft"`
	Pending     int64 `json:"pending"`
	Approved    int64 `json:"approved"`
	Rejected    int64 `json:"rejected"`
	TotalAmount Money `json:"totalAmount"`
}

// NewPurchaseRequestResponse 模型转响应
func NewPurchaseRequestResponse(pr *model.PurchaseRequest) *PurchaseRequestResponse {
	items := make([]PurchaseRequestItemResponse, 0, len(pr.Items))
	for _, item := range pr.Items {
		items = append(items, PurchaseRequestItemResponse{
			ID:          item.ItemGuid,
			ItemName:    item.ItemName,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   NewMoney(item.UnitPrice),
			TotalPrice:  NewMoney(item.TotalPrice),
		})
	}
	return &PurchaseRequestResponse{
		ID:            pr.PRGuid,
		RequestNumber: pr.RequestNumber,
		Requestor:     pr.Requestor,
		Department:    pr.Department,
		Date:          FormatTime(pr.RequestDate),
		TotalAmount:   NewMoney(pr.TotalAmount),
		Status:        pr.Status,
		Notes:         pr.Notes,
		Items:         items,
		CreatedAt:     FormatTime(pr.CreatedAt),
		UpdatedAt:     FormatTime(pr.UpdatedAt),
	}
}

// NewPurchaseRequestStatsResponse 统计模型转响应
func NewPurchaseRequestStatsResponse(s *model.PurchaseRequestStats) *PurchaseRequestStatsResponse {
	return &PurchaseRequestStatsResponse{
		Total:       s.Total,
		Draft:       s.Draft,
		Pending:     s.Pending,
		Approved:    s.Approved,
		Rejected:    s.Rejected,
		TotalAmount: NewMoney(s.TotalAmount),
	}
}
