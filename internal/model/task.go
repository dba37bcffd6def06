package model

import "time"

// 任务状态与优先级
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in-progress"
	TaskStatusDone       = "done"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task 任务表 对应 tasks
type Task struct {
	TaskID      int64      `gorm:"column:task_id;primaryKey;autoIncrement"              json:"-"`
	TaskGuid    string     `gorm:"column:task_guid;type:uuid;default:gen_random_uuid()" json:"id"`
	Title       string     `gorm:"type:varchar(200);not null"                           json:"title"`
	Description string     `gorm:"type:text;not null;default:''"                        json:"description"`
	Status      string     `gorm:"type:varchar(20);not null"                            json:"status"`   // todo | in-progress | done
	Priority    string     `gorm:"type:varchar(20);not null"                            json:"priority"` // low | medium | high
	Assignee    string     `gorm:"type:varchar(200);not null;default:''"                json:"assignee"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	SoftDeleteFlag
	Timestamps
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }

// TaskStats 任务统计汇总
type TaskStats struct {
	Total        int64
	Todo         int64
	InProgress   int64
	Done         int64
	HighPriority int64
	Overdue      int64
}
