package service

import (
	"context"
	"testing"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContentServiceTest(t *testing.T) ContentService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewContentService(repository.NewContentRepository(testDB))
}

func bannerInput(title string, texts ...string) ContentVersionInput {
	input := ContentVersionInput{Title: title}
	for _, text := range texts {
		input.Items = append(input.Items, ContentItemInput{
			ItemType: model.ItemTypeMessage,
			Text:     text,
		})
	}
	return input
}

func TestContentService_PublishVersion_Success(t *testing.T) {
	svc := setupContentServiceTest(t)

	version, err := svc.PublishVersion(model.ContentTypeBanner, model.KindNone, bannerInput("  여름 배너  ", "무료 배송"))
	require.NoError(t, err)
	assert.NotZero(t, version.ID)
	assert.Equal(t, "여름 배너", version.Title)
	assert.True(t, version.IsActive)
	require.Len(t, version.Items, 1)
	assert.Equal(t, 0, version.Items[0].Position)
}

func TestContentService_PublishVersion_TitleRequired(t *testing.T) {
	svc := setupContentServiceTest(t)

	_, err := svc.PublishVersion(model.ContentTypeBanner, model.KindNone, bannerInput("   "))
	assert.ErrorIs(t, err, ErrContentTitleEmpty)
}

func TestContentService_PublishVersion_CollectionNeedsKind(t *testing.T) {
	svc := setupContentServiceTest(t)

	_, err := svc.PublishVersion(model.ContentTypeCollection, model.KindNone, ContentVersionInput{
		Title: "컬렉션",
		Items: []ContentItemInput{{ItemType: model.ItemTypeMedia, ImageURL: "a.jpg"}},
	})
	assert.ErrorIs(t, err, ErrContentKindRequired)
}

func TestContentService_PublishVersion_CollectionNeedsMedia(t *testing.T) {
	svc := setupContentServiceTest(t)

	_, err := svc.PublishVersion(model.ContentTypeCollection, model.KindCollection, ContentVersionInput{
		Title: "컬렉션",
		Items: []ContentItemInput{{ItemType: model.ItemTypeText, Text: "텍스트만"}},
	})
	assert.ErrorIs(t, err, ErrContentItemsEmpty)
}

func TestContentService_ActivateVersion_RollbackFlow(t *testing.T) {
	svc := setupContentServiceTest(t)

	// 새 버전 발행은 곧바로 활성 버전이 된다
	a, err := svc.PublishVersion(model.ContentTypeBanner, model.KindNone, bannerInput("A", "a1", "a2"))
	require.NoError(t, err)
	b, err := svc.PublishVersion(model.ContentTypeBanner, model.KindNone, bannerInput("B", "b1"))
	require.NoError(t, err)
	assert.True(t, b.IsActive)

	previous, err := svc.GetVersion(a.ID)
	require.NoError(t, err)
	assert.False(t, previous.IsActive)

	// 이전 버전으로 롤백은 다시 activate 하는 것
	rolledBack, err := svc.ActivateVersion(model.ContentTypeBanner, model.KindNone, a.ID)
	require.NoError(t, err)
	assert.True(t, rolledBack.IsActive)

	history, err := svc.ListHistory(model.ContentTypeBanner, model.KindNone)
	require.NoError(t, err)
	require.Len(t, history, 2)

	activeCount := 0
	for _, v := range history {
		if v.IsActive {
			activeCount++
			assert.Equal(t, a.ID, v.ID)
		}
	}
	assert.Equal(t, 1, activeCount)
}

func TestContentService_ActivateVersion_NotFound(t *testing.T) {
	svc := setupContentServiceTest(t)

	_, err := svc.ActivateVersion(model.ContentTypeBanner, model.KindNone, 9999)
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestContentService_ActivateVersion_TypeMismatch(t *testing.T) {
	svc := setupContentServiceTest(t)

	banner, err := svc.PublishVersion(model.ContentTypeBanner, model.KindNone, bannerInput("배너", "x"))
	require.NoError(t, err)

	_, err = svc.ActivateVersion(model.ContentTypeHero, model.KindNone, banner.ID)
	assert.ErrorIs(t, err, ErrContentTypeMismatch)
}

func TestContentService_GetActiveContent_Fallback(t *testing.T) {
	svc := setupContentServiceTest(t)
	ctx := context.Background()

	// 활성 배너가 없으면 기본 배너로 폴백
	content, err := svc.GetActiveContent(ctx, model.ContentTypeBanner, model.KindNone)
	require.NoError(t, err)
	assert.True(t, content.Fallback)
	assert.Zero(t, content.ID)
	require.Len(t, content.Items, 1)
	assert.Equal(t, DefaultBannerText, content.Items[0].Text)
	assert.Equal(t, DefaultBannerIcon, content.Items[0].Icon)

	// 배너 외 유형은 빈 항목으로 폴백
	hero, err := svc.GetActiveContent(ctx, model.ContentTypeHero, model.KindNone)
	require.NoError(t, err)
	assert.True(t, hero.Fallback)
	assert.Len(t, hero.Items, 0)
}

func TestContentService_GetActiveContent_StoreFailureFallsBack(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	svc := NewContentService(repository.NewContentRepository(testDB))

	_, err = svc.PublishVersion(model.ContentTypeBanner, model.KindNone, bannerInput("배너", "무료 배송"))
	require.NoError(t, err)

	// 저장소 장애 중에도 공개 화면은 오류 대신 기본 배너를 받는다
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	content, err := svc.GetActiveContent(context.Background(), model.ContentTypeBanner, model.KindNone)
	require.NoError(t, err)
	assert.True(t, content.Fallback)
	require.Len(t, content.Items, 1)
	assert.Equal(t, DefaultBannerText, content.Items[0].Text)
	assert.Equal(t, DefaultBannerIcon, content.Items[0].Icon)
}

func TestContentService_GetActiveContent_AfterActivation(t *testing.T) {
	svc := setupContentServiceTest(t)
	ctx := context.Background()

	version, err := svc.PublishVersion(model.ContentTypeBanner, model.KindNone, bannerInput("배너", "첫 문구", "둘째 문구"))
	require.NoError(t, err)
	_, err = svc.ActivateVersion(model.ContentTypeBanner, model.KindNone, version.ID)
	require.NoError(t, err)

	content, err := svc.GetActiveContent(ctx, model.ContentTypeBanner, model.KindNone)
	require.NoError(t, err)
	assert.False(t, content.Fallback)
	assert.Equal(t, version.ID, content.ID)
	require.Len(t, content.Items, 2)
	assert.Equal(t, "첫 문구", content.Items[0].Text)
}

func TestContentService_GetActiveContent_SingleItemSet(t *testing.T) {
	svc := setupContentServiceTest(t)
	ctx := context.Background()

	// 2개짜리 A를 활성화한 뒤 1개짜리 B를 활성화하면 B의 항목만 보인다
	a, err := svc.PublishVersion(model.ContentTypeBanner, model.KindNone, bannerInput("A", "a1", "a2"))
	require.NoError(t, err)
	_, err = svc.ActivateVersion(model.ContentTypeBanner, model.KindNone, a.ID)
	require.NoError(t, err)

	b, err := svc.PublishVersion(model.ContentTypeBanner, model.KindNone, bannerInput("B", "b1"))
	require.NoError(t, err)
	_, err = svc.ActivateVersion(model.ContentTypeBanner, model.KindNone, b.ID)
	require.NoError(t, err)

	content, err := svc.GetActiveContent(ctx, model.ContentTypeBanner, model.KindNone)
	require.NoError(t, err)
	require.Len(t, content.Items, 1)
	assert.Equal(t, "b1", content.Items[0].Text)
}

func TestContentService_UpdateVersion_ReplacesChildren(t *testing.T) {
	svc := setupContentServiceTest(t)

	version, err := svc.PublishVersion(model.ContentTypeBanner, model.KindNone, bannerInput("배너", "x", "y", "z"))
	require.NoError(t, err)

	// z를 한 칸 위로 이동한 편집: [x, y, z] → [x, z, y]
	updated, err := svc.UpdateVersion(version.ID, bannerInput("배너 수정", "x", "z", "y"))
	require.NoError(t, err)
	assert.Equal(t, "배너 수정", updated.Title)
	require.Len(t, updated.Items, 3)
	assert.Equal(t, "x", updated.Items[0].Text)
	assert.Equal(t, "z", updated.Items[1].Text)
	assert.Equal(t, "y", updated.Items[2].Text)
	for i, item := range updated.Items {
		assert.Equal(t, i, item.Position)
	}
}

func TestContentService_DeleteVersion_ActiveFallsBack(t *testing.T) {
	svc := setupContentServiceTest(t)
	ctx := context.Background()

	version, err := svc.PublishVersion(model.ContentTypeBanner, model.KindNone, bannerInput("배너", "x"))
	require.NoError(t, err)
	_, err = svc.ActivateVersion(model.ContentTypeBanner, model.KindNone, version.ID)
	require.NoError(t, err)

	// 활성 버전 삭제도 허용되고, 공개 화면은 기본 콘텐츠로 폴백
	require.NoError(t, svc.DeleteVersion(version.ID))

	content, err := svc.GetActiveContent(ctx, model.ContentTypeBanner, model.KindNone)
	require.NoError(t, err)
	assert.True(t, content.Fallback)
	require.Len(t, content.Items, 1)
	assert.Equal(t, DefaultBannerText, content.Items[0].Text)
}

func TestContentService_DeleteVersion_NotFound(t *testing.T) {
	svc := setupContentServiceTest(t)

	err := svc.DeleteVersion(9999)
	assert.ErrorIs(t, err, ErrContentNotFound)
}
