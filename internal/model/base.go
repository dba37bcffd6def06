package model

import "time"

// Timestamps 通用时间戳字段
type Timestamps struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// SoftDeleteFlag 以布尔标记实现的软删除
// 与 gorm.DeletedAt 不同，查询时需显式带上 is_deleted = false 条件
type SoftDeleteFlag struct {
	IsDeleted bool `gorm:"not null;default:false" json:"-"`
}
