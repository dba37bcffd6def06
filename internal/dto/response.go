package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money 金额，序列化为保留两位小数的 JSON 数字（如 50.00）
type Money struct {
	decimal.Decimal
}

// NewMoney 按两位小数四舍五入构造金额
func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d.Round(2)}
}

// MarshalJSON 输出不带引号的定点小数
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Decimal.StringFixed(2)), nil
}

// ── 时间格式 ──

// 接口接受的日期格式：完整时间戳或仅日期（前端 <input type="date">）
var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// ParseDate 解析客户端传入的日期字符串
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTime 统一的时间输出格式
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatTimePtr 可空时间输出
func FormatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTime(*t)
	return &s
}
