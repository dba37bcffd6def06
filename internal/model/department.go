package model

import "time"

// Department 部门表 对应 departments
type Department struct {
	DepartmentID   int       `gorm:"column:department_id;primaryKey;autoIncrement" json:"id"`
	DepartmentName string    `gorm:"type:varchar(100);not null"                    json:"name"`
	DepartmentCode string    `gorm:"type:varchar(20);not null"                     json:"code"`
	IsActive       bool      `gorm:"not null;default:true"                         json:"is_active"`
	CreatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"            json:"created_at"`
}

// TableName 指定表名
func (Department) TableName() string { return "departments" }
