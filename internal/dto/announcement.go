package dto

// ── 公告模块 DTO ──

// CreateAnnouncementRequest 发布公告请求
type CreateAnnouncementRequest struct {
	Title      string   `json:"title"       binding:"required,min=1,max=200"`
	Content    string   `json:"content"     binding:"required"`
	Images     []string `json:"images"      binding:"omitempty,max=9,dive,url"`
	CategoryID *string  `json:"category_id" binding:"omitempty,uuid"`
	IsPinned   bool     `json:"is_pinned"`
}

// UpdateAnnouncementRequest 更新公告请求
type UpdateAnnouncementRequest struct {
	Title      *string  `json:"title"       binding:"omitempty,min=1,max=200"`
	Content    *string  `json:"content"`
	Images     []string `json:"images"      binding:"omitempty,max=9,dive,url"`
	CategoryID *string  `json:"category_id" binding:"omitempty,uuid"`
	IsPinned   *bool    `json:"is_pinned"`
}

// AnnouncementResponse 公告响应
type AnnouncementResponse struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Author     string   `json:"author"`
	Images     []string `json:"images"`
	CategoryID *string  `json:"category_id,omitempty"`
	IsPinned   bool     `json:"is_pinned"`
	Season     string   `json:"season"`
	CreatedAt  string   `json:"created_at"`
}
