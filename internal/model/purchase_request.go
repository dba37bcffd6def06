package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 采购申请状态（自由字段，不做状态机约束）
const (
	PRStatusDraft    = "draft"
	PRStatusPending  = "pending"
	PRStatusApproved = "approved"
	PRStatusRejected = "rejected"
)

// PRStatuses 全部合法状态
var PRStatuses = []string{PRStatusDraft, PRStatusPending, PRStatusApproved, PRStatusRejected}

// IsValidPRStatus 判断状态值是否合法
func IsValidPRStatus(s string) bool {
	for _, v := range PRStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// PurchaseRequest 采购申请主表 对应 purchase_requests
// PRID 仅用于内部关联，对外只暴露 PRGuid
type PurchaseRequest struct {
	PRID          int64           `gorm:"column:pr_id;primaryKey;autoIncrement"              json:"-"`
	PRGuid        string          `gorm:"column:pr_guid;type:uuid;default:gen_random_uuid()" json:"id"`
	RequestNumber string          `gorm:"type:varchar(50);not null;default:''"               json:"request_number"`
	Requestor     string          `gorm:"type:varchar(200);not null"                         json:"requestor"`
	Department    string          `gorm:"type:varchar(100);not null"                         json:"department"`
	RequestDate   time.Time       `gorm:"not null"                                           json:"request_date"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"              json:"total_amount"`
	Status        string          `gorm:"type:varchar(20);not null;default:'draft'"          json:"status"` // draft | pending | approved | rejected
	Notes         string          `gorm:"type:text;not null;default:''"                      json:"notes"`
	SoftDeleteFlag
	Timestamps

	// 关联（按内部主键关联）
	Items []PurchaseRequestItem `gorm:"foreignKey:PRID;references:PRID" json:"items,omitempty"`
}

// TableName 指定表名
func (PurchaseRequest) TableName() string { return "purchase_requests" }

// PurchaseRequestItem 采购申请明细 对应 purchase_request_items
// 明细随主表整体替换，不做软删除
type PurchaseRequestItem struct {
	ItemID      int64           `gorm:"column:item_id;primaryKey;autoIncrement"              json:"-"`
	ItemGuid    string          `gorm:"column:item_guid;type:uuid;default:gen_random_uuid()" json:"id"`
	PRID        int64           `gorm:"column:pr_id;not null"                                json:"-"`
	ItemName    string          `gorm:"type:varchar(200);not null"                           json:"item_name"`
	Description string          `gorm:"type:text;not null;default:''"                        json:"description"`
	Quantity    int             `gorm:"not null"                                             json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(18,2);not null"                          json:"unit_price"`
	TotalPrice  decimal.Decimal `gorm:"type:numeric(18,2);not null"                          json:"total_price"`
}

// TableName 指定表名
func (PurchaseRequestItem) TableName() string { return "purchase_request_items" }

// PurchaseRequestStats 采购申请统计汇总（未软删除记录）
type PurchaseRequestStats struct {
	Total       int64
	Draft       int64
	Pending     int64
	Approved    int64
	Rejected    int64
	TotalAmount decimal.Decimal
}
