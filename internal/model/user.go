package model

import "time"

// User 用户表 对应 users
// 系统不含认证，用户仅作为任务负责人/申请人的目录数据
type User struct {
	UserID     int       `gorm:"column:user_id;primaryKey;autoIncrement" json:"id"`
	Username   string    `gorm:"type:varchar(100);not null"              json:"username"`
	FullName   string    `gorm:"type:varchar(200);not null"              json:"full_name"`
	Email      string    `gorm:"type:varchar(200);not null"              json:"email"`
	Department *string   `gorm:"type:varchar(100)"                       json:"department,omitempty"`
	IsActive   bool      `gorm:"not null;default:true"                   json:"is_active"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"      json:"created_at"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
