package dto

// ── 数据体检/修复模块 DTO ──

// IntegrityWarning 完整性告警（非致命，仅报告，不阻断业务）
type IntegrityWarning struct {
	Kind    string `json:"kind"`    // duplicate_category | orphan_category_ref | unresolved_owner
	Subject string `json:"subject"` // 相关记录 ID 或描述键
	Detail  string `json:"detail"`
}

// IntegrityScanResponse 数据体检报告
type IntegrityScanResponse struct {
	Warnings []IntegrityWarning `json:"warnings"`
	ScanAt   string             `json:"scan_at"`
}

// RelinkSubmissionsResponse 旧提交归属回填结果
type RelinkSubmissionsResponse struct {
	Scanned  int `json:"scanned"`
	Relinked int `json:"relinked"`
	Orphaned int `json:"orphaned"` // 无法解析归属的残留记录数
}

// BackfillCategoriesResponse 分类引用回填结果
type BackfillCategoriesResponse struct {
	TasksUpdated int `json:"tasks_updated"`
	Unmatched    int `json:"unmatched"` // 无法按文本匹配到分类的记录数
}

// InitializeResponse 系统初始化结果
type InitializeResponse struct {
	CategoriesSeeded bool `json:"categories_seeded"`
	SeasonSeeded     bool `json:"season_seeded"`
	TaskSeeded       bool `json:"task_seeded"`
	AdminSeeded      bool `json:"admin_seeded"`
	GamesSeeded      bool `json:"games_seeded"`
}
