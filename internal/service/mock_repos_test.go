package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"teamaura/backend/internal/model"
	"teamaura/backend/internal/repository"
	pkgerrors "teamaura/backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "u-" + user.Username
	}
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int, keyword string) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if keyword != "" && !strings.Contains(u.Username, keyword) && !strings.Contains(u.Email, keyword) {
			continue
		}
		result = append(result, *u)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return []model.User{}, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Points != result[j].Points {
			return result[i].Points > result[j].Points
		}
		return result[i].Username < result[j].Username
	})
	return result, nil
}

// ApplyPointsDelta 复刻存储层的单条原子更新语义
func (m *mockUserRepo) ApplyPointsDelta(_ context.Context, id string, baseDelta int, multiplier float64) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.BasePoints += baseDelta
	u.Points = int(math.Floor(float64(u.BasePoints)*multiplier + 0.5))
	return nil
}

func (m *mockUserRepo) SetPoints(_ context.Context, id string, basePoints, points int) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.BasePoints = basePoints
	u.Points = points
	return nil
}

func (m *mockUserRepo) ResetAllPoints(_ context.Context) error {
	for _, u := range m.users {
		u.BasePoints = 0
		u.Points = 0
	}
	return nil
}

// ── Mock RoleRepository ──

type mockRoleRepo struct {
	roles map[string]*model.Role
}

func newMockRoleRepo() *mockRoleRepo {
	return &mockRoleRepo{roles: make(map[string]*model.Role)}
}

func (m *mockRoleRepo) Create(_ context.Context, role *model.Role) error {
	m.roles[role.Code] = role
	return nil
}

func (m *mockRoleRepo) GetByCode(_ context.Context, code string) (*model.Role, error) {
	if r, ok := m.roles[code]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoleRepo) List(_ context.Context) ([]model.Role, error) {
	var result []model.Role
	for _, r := range m.roles {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result, nil
}

func (m *mockRoleRepo) Update(_ context.Context, role *model.Role) error {
	m.roles[role.Code] = role
	return nil
}

func (m *mockRoleRepo) Delete(_ context.Context, code string) error {
	delete(m.roles, code)
	return nil
}

// ── Mock CategoryRepository ──

type mockCategoryRepo struct {
	categories map[string]*model.Category
	seq        int
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[string]*model.Category)}
}

func (m *mockCategoryRepo) Create(_ context.Context, category *model.Category) error {
	if category.CategoryID == "" {
		m.seq++
		category.CategoryID = fmt.Sprintf("cat-%d", m.seq)
	}
	category.CreatedAt = time.Now()
	m.categories[category.CategoryID] = category
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id string) (*model.Category, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoryRepo) List(_ context.Context, categoryType string) ([]model.Category, error) {
	var result []model.Category
	for _, c := range m.categories {
		if categoryType != "" && c.Type != categoryType {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CategoryID < result[j].CategoryID })
	return result, nil
}

func (m *mockCategoryRepo) Update(_ context.Context, category *model.Category) error {
	m.categories[category.CategoryID] = category
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id string) error {
	delete(m.categories, id)
	return nil
}

// ── Mock TaskRepository ──

type mockTaskRepo struct {
	tasks map[string]*model.Task
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, task *model.Task) error {
	if task.TaskUID == "" {
		task.TaskUID = "uid-" + task.TaskID
	}
	task.CreatedAt = time.Now()
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) GetByTaskID(_ context.Context, taskID string) (*model.Task, error) {
	if t, ok := m.tasks[taskID]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) List(_ context.Context, season string) ([]model.Task, error) {
	var result []model.Task
	for _, t := range m.tasks {
		if season != "" && t.Season != nil && *t.Season != season {
			continue
		}
		result = append(result, *t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TaskID > result[j].TaskID })
	return result, nil
}

func (m *mockTaskRepo) Update(_ context.Context, task *model.Task) error {
	m.tasks[task.TaskID] = task
	return nil
}

func (m *mockTaskRepo) Delete(_ context.Context, taskID string, _ string) error {
	delete(m.tasks, taskID)
	return nil
}

// ── Mock SubmissionRepository ──

type mockSubmissionRepo struct {
	subs map[string]*model.Submission
	seq  int
}

func newMockSubmissionRepo() *mockSubmissionRepo {
	return &mockSubmissionRepo{subs: make(map[string]*model.Submission)}
}

func (m *mockSubmissionRepo) Create(_ context.Context, sub *model.Submission) error {
	if sub.SubmissionID == "" {
		m.seq++
		sub.SubmissionID = fmt.Sprintf("sub-%d", m.seq)
	}
	if sub.Version == 0 {
		sub.Version = 1
	}
	sub.CreatedAt = time.Now()
	stored := *sub
	m.subs[sub.SubmissionID] = &stored
	return nil
}

// GetByID 返回副本：乐观锁语义要求读写分离
func (m *mockSubmissionRepo) GetByID(_ context.Context, id string) (*model.Submission, error) {
	if s, ok := m.subs[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// Update 复刻存储层的乐观锁语义：版本不匹配返回 ErrOptimisticLock
func (m *mockSubmissionRepo) Update(_ context.Context, sub *model.Submission) error {
	stored, ok := m.subs[sub.SubmissionID]
	if !ok || stored.Version != sub.Version {
		return pkgerrors.ErrOptimisticLock
	}
	sub.Version++
	copied := *sub
	m.subs[sub.SubmissionID] = &copied
	return nil
}

func (m *mockSubmissionRepo) Delete(_ context.Context, id string) error {
	delete(m.subs, id)
	return nil
}

func (m *mockSubmissionRepo) List(_ context.Context, filter repository.SubmissionFilter, offset, limit int) ([]model.Submission, int64, error) {
	var result []model.Submission
	for _, s := range m.subs {
		if filter.UserID != "" && (s.UserID == nil || *s.UserID != filter.UserID) {
			continue
		}
		if filter.TaskID != "" && s.TaskID != filter.TaskID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		if filter.Season != "" && s.Season != filter.Season {
			continue
		}
		if filter.Week != "" && s.Week != filter.Week {
			continue
		}
		result = append(result, *s)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return []model.Submission{}, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockSubmissionRepo) ListApprovedByUserAndSeason(_ context.Context, userID, season string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.subs {
		if s.Status != model.SubmissionApproved || s.Season != season {
			continue
		}
		if s.UserID == nil || *s.UserID != userID {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSubmissionRepo) ListApprovedBySeason(_ context.Context, season string) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.subs {
		if s.Status == model.SubmissionApproved && s.Season == season {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSubmissionRepo) ExistsPendingByUserAndTask(_ context.Context, userID, taskID string) (bool, error) {
	for _, s := range m.subs {
		if s.Status == model.SubmissionPending && s.TaskID == taskID &&
			s.UserID != nil && *s.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockSubmissionRepo) ListUnresolved(_ context.Context) ([]model.Submission, error) {
	var result []model.Submission
	for _, s := range m.subs {
		if s.UserID == nil && s.LegacyUsername != "" {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock SeasonRepository ──

type mockSeasonRepo struct {
	seasons map[string]*model.Season
	seq     int
}

func newMockSeasonRepo() *mockSeasonRepo {
	return &mockSeasonRepo{seasons: make(map[string]*model.Season)}
}

func (m *mockSeasonRepo) Create(_ context.Context, season *model.Season) error {
	if season.SeasonID == "" {
		m.seq++
		season.SeasonID = fmt.Sprintf("season-%d", m.seq)
	}
	if season.Version == 0 {
		season.Version = 1
	}
	season.CreatedAt = time.Now()
	stored := *season
	m.seasons[season.SeasonID] = &stored
	return nil
}

func (m *mockSeasonRepo) GetByID(_ context.Context, id string) (*model.Season, error) {
	if s, ok := m.seasons[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSeasonRepo) GetByName(_ context.Context, name string) (*model.Season, error) {
	for _, s := range m.seasons {
		if s.Name == name {
			copied := *s
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSeasonRepo) GetActive(_ context.Context) (*model.Season, error) {
	for _, s := range m.seasons {
		if s.IsActive {
			copied := *s
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSeasonRepo) List(_ context.Context) ([]model.Season, error) {
	var result []model.Season
	for _, s := range m.seasons {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *mockSeasonRepo) Update(_ context.Context, season *model.Season) error {
	stored, ok := m.seasons[season.SeasonID]
	if !ok || stored.Version != season.Version {
		return pkgerrors.ErrOptimisticLock
	}
	season.Version++
	copied := *season
	m.seasons[season.SeasonID] = &copied
	return nil
}

// ── Mock AnnouncementRepository ──

type mockAnnouncementRepo struct {
	announcements map[string]*model.Announcement
	seq           int
}

func newMockAnnouncementRepo() *mockAnnouncementRepo {
	return &mockAnnouncementRepo{announcements: make(map[string]*model.Announcement)}
}

func (m *mockAnnouncementRepo) Create(_ context.Context, a *model.Announcement) error {
	if a.AnnouncementID == "" {
		m.seq++
		a.AnnouncementID = fmt.Sprintf("ann-%d", m.seq)
	}
	a.CreatedAt = time.Now()
	m.announcements[a.AnnouncementID] = a
	return nil
}

func (m *mockAnnouncementRepo) GetByID(_ context.Context, id string) (*model.Announcement, error) {
	if a, ok := m.announcements[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAnnouncementRepo) List(_ context.Context, categoryID string, offset, limit int) ([]model.Announcement, int64, error) {
	var result []model.Announcement
	for _, a := range m.announcements {
		if categoryID != "" && (a.CategoryID == nil || *a.CategoryID != categoryID) {
			continue
		}
		result = append(result, *a)
	}
	total := int64(len(result))
	if offset >= len(result) {
		return []model.Announcement{}, total, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], total, nil
}

func (m *mockAnnouncementRepo) Update(_ context.Context, a *model.Announcement) error {
	m.announcements[a.AnnouncementID] = a
	return nil
}

func (m *mockAnnouncementRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.announcements, id)
	return nil
}

// ── Mock GameRepository ──

type mockGameRepo struct {
	games map[string]*model.Game
	seq   int
}

func newMockGameRepo() *mockGameRepo {
	return &mockGameRepo{games: make(map[string]*model.Game)}
}

func (m *mockGameRepo) Create(_ context.Context, game *model.Game) error {
	if game.GameID == "" {
		m.seq++
		game.GameID = fmt.Sprintf("game-%d", m.seq)
	}
	game.CreatedAt = time.Now()
	m.games[game.GameID] = game
	return nil
}

func (m *mockGameRepo) GetByID(_ context.Context, id string) (*model.Game, error) {
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGameRepo) List(_ context.Context) ([]model.Game, error) {
	var result []model.Game
	for _, g := range m.games {
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GameID < result[j].GameID })
	return result, nil
}

func (m *mockGameRepo) Update(_ context.Context, game *model.Game) error {
	m.games[game.GameID] = game
	return nil
}

func (m *mockGameRepo) Delete(_ context.Context, id string) error {
	delete(m.games, id)
	return nil
}

// ── 聚合构造 ──

// mockRepos 便于测试用例直接操作底层数据
type mockRepos struct {
	user         *mockUserRepo
	role         *mockRoleRepo
	category     *mockCategoryRepo
	task         *mockTaskRepo
	submission   *mockSubmissionRepo
	season       *mockSeasonRepo
	announcement *mockAnnouncementRepo
	game         *mockGameRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	mocks := &mockRepos{
		user:         newMockUserRepo(),
		role:         newMockRoleRepo(),
		category:     newMockCategoryRepo(),
		task:         newMockTaskRepo(),
		submission:   newMockSubmissionRepo(),
		season:       newMockSeasonRepo(),
		announcement: newMockAnnouncementRepo(),
		game:         newMockGameRepo(),
	}
	repo := &repository.Repository{
		User:         mocks.user,
		Role:         mocks.role,
		Category:     mocks.category,
		Task:         mocks.task,
		Submission:   mocks.submission,
		Season:       mocks.season,
		Announcement: mocks.announcement,
		Game:         mocks.game,
	}
	return repo, mocks
}
