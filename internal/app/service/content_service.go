package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/pkg/logger"
	"github.com/aionlab/aion-backend/pkg/redis"
	"gorm.io/gorm"
)

var (
	ErrContentNotFound     = errors.New("콘텐츠를 찾을 수 없습니다")
	ErrContentTypeMismatch = errors.New("콘텐츠 유형이 일치하지 않습니다")
	ErrContentTitleEmpty   = errors.New("콘텐츠 제목을 입력해주세요")
	ErrContentItemsEmpty   = errors.New("콘텐츠 항목을 1개 이상 등록해주세요")
	ErrContentKindRequired = errors.New("컬렉션 구분을 지정해주세요")
)

// 기본 배너: 활성 버전이 하나도 없을 때 공개 화면에 노출
const (
	DefaultBannerText = "회원가입 시 10% 할인 쿠폰 지급"
	DefaultBannerIcon = "🎁"
)

const activeContentCacheTTL = 5 * time.Minute

type ContentItemInput struct {
	ItemType  model.ContentItemType
	Text      string
	Icon      string
	ImageURL  string
	LinkURL   string
	PerfumeID *uint
}

type ContentVersionInput struct {
	Title       string
	Description string
	ThemeColor  string
	Published   *bool
	Items       []ContentItemInput
}

// ActiveContent is the public-facing payload. Fallback versions carry ID 0
// and are never persisted.
type ActiveContent struct {
	ID          uint                 `json:"id"`
	Type        model.ContentType    `json:"type"`
	Kind        model.CollectionKind `json:"kind,omitempty"`
	Title       string               `json:"title"`
	Description string               `json:"description,omitempty"`
	ThemeColor  string               `json:"theme_color,omitempty"`
	Fallback    bool                 `json:"fallback"`
	Items       []model.ContentItem  `json:"items"`
}

type ContentService interface {
	PublishVersion(contentType model.ContentType, kind model.CollectionKind, input ContentVersionInput) (*model.ContentVersion, error)
	ActivateVersion(contentType model.ContentType, kind model.CollectionKind, versionID uint) (*model.ContentVersion, error)
	GetVersion(versionID uint) (*model.ContentVersion, error)
	ListHistory(contentType model.ContentType, kind model.CollectionKind) ([]model.ContentVersion, error)
	GetActiveContent(ctx context.Context, contentType model.ContentType, kind model.CollectionKind) (*ActiveContent, error)
	UpdateVersion(versionID uint, input ContentVersionInput) (*model.ContentVersion, error)
	DeleteVersion(versionID uint) error
}

type contentService struct {
	contentRepo repository.ContentRepository
}

func NewContentService(contentRepo repository.ContentRepository) ContentService {
	return &contentService{contentRepo: contentRepo}
}

func validateContentType(contentType model.ContentType, kind model.CollectionKind) error {
	if contentType == model.ContentTypeCollection && kind == model.KindNone {
		return ErrContentKindRequired
	}
	return nil
}

func (s *contentService) validateInput(contentType model.ContentType, input ContentVersionInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrContentTitleEmpty
	}
	if contentType == model.ContentTypeCollection {
		hasMedia := false
		for _, item := range input.Items {
			if item.ItemType == model.ItemTypeMedia || item.ItemType == model.ItemTypePerfume {
				hasMedia = true
				break
			}
		}
		if !hasMedia {
			return ErrContentItemsEmpty
		}
	}
	return nil
}

func buildItems(versionID uint, inputs []ContentItemInput) []model.ContentItem {
	items := make([]model.ContentItem, 0, len(inputs))
	for i, in := range inputs {
		items = append(items, model.ContentItem{
			VersionID: versionID,
			ItemType:  in.ItemType,
			Position:  i,
			Text:      in.Text,
			Icon:      in.Icon,
			ImageURL:  in.ImageURL,
			LinkURL:   in.LinkURL,
			PerfumeID: in.PerfumeID,
		})
	}
	return items
}

func (s *contentService) PublishVersion(contentType model.ContentType, kind model.CollectionKind, input ContentVersionInput) (*model.ContentVersion, error) {
	logger.Debug("Publishing content version", map[string]interface{}{
		"type":       contentType,
		"kind":       kind,
		"title":      input.Title,
		"item_count": len(input.Items),
	})

	if err := validateContentType(contentType, kind); err != nil {
		return nil, err
	}
	if err := s.validateInput(contentType, input); err != nil {
		return nil, err
	}

	published := true
	if input.Published != nil {
		published = *input.Published
	}

	version := &model.ContentVersion{
		Type:        contentType,
		Kind:        kind,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		ThemeColor:  input.ThemeColor,
		Published:   published,
		Items:       buildItems(0, input.Items),
	}

	if err := s.contentRepo.CreateActiveVersion(version); err != nil {
		logger.Error("Failed to publish content version", err, map[string]interface{}{
			"type": contentType,
			"kind": kind,
		})
		return nil, err
	}

	// 저장 즉시 노출되므로 이전 활성 버전 캐시를 비운다
	s.invalidateCache(contentType, kind)

	logger.Info("Content version published", map[string]interface{}{
		"version_id": version.ID,
		"type":       contentType,
		"kind":       kind,
	})
	return version, nil
}

func (s *contentService) ActivateVersion(contentType model.ContentType, kind model.CollectionKind, versionID uint) (*model.ContentVersion, error) {
	logger.Debug("Activating content version", map[string]interface{}{
		"version_id": versionID,
		"type":       contentType,
		"kind":       kind,
	})

	if err := validateContentType(contentType, kind); err != nil {
		return nil, err
	}

	if err := s.contentRepo.Activate(contentType, kind, versionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 버전이 있으나 유형이 다른 경우와 아예 없는 경우를 구분
			if existing, findErr := s.contentRepo.FindByID(versionID); findErr == nil {
				if existing.Type != contentType || existing.Kind != kind {
					return nil, ErrContentTypeMismatch
				}
			}
			return nil, ErrContentNotFound
		}
		logger.Error("Failed to activate content version", err, map[string]interface{}{
			"version_id": versionID,
			"type":       contentType,
		})
		return nil, err
	}

	s.invalidateCache(contentType, kind)

	version, err := s.contentRepo.FindByID(versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}

	logger.Info("Content version activated", map[string]interface{}{
		"version_id": versionID,
		"type":       contentType,
		"kind":       kind,
	})
	return version, nil
}

func (s *contentService) GetVersion(versionID uint) (*model.ContentVersion, error) {
	version, err := s.contentRepo.FindByID(versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		logger.Error("Failed to get content version", err, map[string]interface{}{
			"version_id": versionID,
		})
		return nil, err
	}
	return version, nil
}

func (s *contentService) ListHistory(contentType model.ContentType, kind model.CollectionKind) ([]model.ContentVersion, error) {
	if err := validateContentType(contentType, kind); err != nil {
		return nil, err
	}

	versions, err := s.contentRepo.FindAllByType(contentType, kind)
	if err != nil {
		logger.Error("Failed to list content history", err, map[string]interface{}{
			"type": contentType,
			"kind": kind,
		})
		return nil, err
	}
	return versions, nil
}

func (s *contentService) GetActiveContent(ctx context.Context, contentType model.ContentType, kind model.CollectionKind) (*ActiveContent, error) {
	if err := validateContentType(contentType, kind); err != nil {
		return nil, err
	}

	if cached, ok, err := redis.GetActiveContent(ctx, string(contentType), string(kind)); err == nil && ok {
		var content ActiveContent
		if err := json.Unmarshal([]byte(cached), &content); err == nil {
			return &content, nil
		}
		logger.Warn("Failed to decode cached active content", map[string]interface{}{
			"type": contentType,
			"kind": kind,
		})
	}

	version, err := s.contentRepo.FindActive(contentType, kind)
	if err != nil {
		// 공개 화면은 조회 실패 사유와 무관하게 기본 콘텐츠로 폴백한다.
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to get active content", err, map[string]interface{}{
				"type": contentType,
				"kind": kind,
			})
		}
		return s.fallbackContent(contentType, kind), nil
	}

	content := &ActiveContent{
		ID:          version.ID,
		Type:        version.Type,
		Kind:        version.Kind,
		Title:       version.Title,
		Description: version.Description,
		ThemeColor:  version.ThemeColor,
		Items:       version.Items,
	}

	if payload, err := json.Marshal(content); err == nil {
		if err := redis.SetActiveContent(ctx, string(contentType), string(kind), string(payload), activeContentCacheTTL); err != nil {
			logger.Warn("Failed to cache active content", map[string]interface{}{
				"type": contentType,
				"kind": kind,
			})
		}
	}

	return content, nil
}

func (s *contentService) fallbackContent(contentType model.ContentType, kind model.CollectionKind) *ActiveContent {
	content := &ActiveContent{
		Type:     contentType,
		Kind:     kind,
		Fallback: true,
		Items:    []model.ContentItem{},
	}
	if contentType == model.ContentTypeBanner {
		content.Items = []model.ContentItem{
			{
				ItemType: model.ItemTypeMessage,
				Position: 0,
				Text:     DefaultBannerText,
				Icon:     DefaultBannerIcon,
			},
		}
	}
	return content
}

func (s *contentService) UpdateVersion(versionID uint, input ContentVersionInput) (*model.ContentVersion, error) {
	logger.Debug("Updating content version", map[string]interface{}{
		"version_id": versionID,
		"item_count": len(input.Items),
	})

	version, err := s.contentRepo.FindByID(versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}

	if err := s.validateInput(version.Type, input); err != nil {
		return nil, err
	}

	version.Title = strings.TrimSpace(input.Title)
	version.Description = input.Description
	version.ThemeColor = input.ThemeColor
	if input.Published != nil {
		version.Published = *input.Published
	}

	if err := s.contentRepo.UpdateVersionWithItems(version, buildItems(versionID, input.Items)); err != nil {
		logger.Error("Failed to update content version", err, map[string]interface{}{
			"version_id": versionID,
		})
		return nil, err
	}

	if version.IsActive {
		s.invalidateCache(version.Type, version.Kind)
	}

	return s.contentRepo.FindByID(versionID)
}

func (s *contentService) DeleteVersion(versionID uint) error {
	version, err := s.contentRepo.FindByID(versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContentNotFound
		}
		return err
	}

	// 활성 버전도 삭제 가능. 공개 화면은 기본 콘텐츠로 폴백된다.
	if err := s.contentRepo.Delete(versionID); err != nil {
		logger.Error("Failed to delete content version", err, map[string]interface{}{
			"version_id": versionID,
		})
		return err
	}

	if version.IsActive {
		s.invalidateCache(version.Type, version.Kind)
	}

	logger.Info("Content version deleted", map[string]interface{}{
		"version_id": versionID,
		"type":       version.Type,
		"was_active": version.IsActive,
	})
	return nil
}

func (s *contentService) invalidateCache(contentType model.ContentType, kind model.CollectionKind) {
	if err := redis.InvalidateActiveContent(context.Background(), string(contentType), string(kind)); err != nil {
		logger.Warn("Failed to invalidate active content cache", map[string]interface{}{
			"type": contentType,
			"kind": kind,
		})
	}
}
