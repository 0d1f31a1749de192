package websocket

import (
	"context"
	"testing"
	"time"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/repository"
	"github.com/aionlab/aion-backend/internal/app/service"
	"github.com/aionlab/aion-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureBroadcaster struct {
	frames []RotationFrame
}

func (b *captureBroadcaster) Broadcast(message interface{}) error {
	b.frames = append(b.frames, message.(RotationFrame))
	return nil
}

func setupRotatorTest(t *testing.T) (service.ContentService, *Rotator, *captureBroadcaster) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	contentService := service.NewContentService(repository.NewContentRepository(testDB))
	broadcaster := &captureBroadcaster{}
	rotator := NewRotator(contentService, broadcaster)
	return contentService, rotator, broadcaster
}

func publishActiveBanner(t *testing.T, svc service.ContentService, texts ...string) {
	input := service.ContentVersionInput{Title: "회전 배너"}
	for _, text := range texts {
		input.Items = append(input.Items, service.ContentItemInput{
			ItemType: model.ItemTypeMessage,
			Text:     text,
		})
	}
	_, err := svc.PublishVersion(model.ContentTypeBanner, model.KindNone, input)
	require.NoError(t, err)
}

func TestNextIndex_WrapsModulo(t *testing.T) {
	assert.Equal(t, 1, NextIndex(0, 3))
	assert.Equal(t, 2, NextIndex(1, 3))
	assert.Equal(t, 0, NextIndex(2, 3))
	assert.Equal(t, 0, NextIndex(0, 1))
	assert.Equal(t, 0, NextIndex(5, 0))
}

func TestRotator_Step_VisitsEveryIndexInOrder(t *testing.T) {
	svc, rotator, broadcaster := setupRotatorTest(t)
	publishActiveBanner(t, svc, "첫째", "둘째", "셋째")

	ctx := context.Background()

	// 3개 항목이면 한 주기 + 랩어라운드까지 0,1,2,0 순서로 방문한다
	var bannerIndices []int
	var bannerTexts []string
	for i := 0; i < 4; i++ {
		rotator.Step(ctx)
	}
	for _, frame := range broadcaster.frames {
		if frame.ContentType == model.ContentTypeBanner {
			bannerIndices = append(bannerIndices, frame.Index)
			bannerTexts = append(bannerTexts, frame.Item.Text)
			assert.Equal(t, 3, frame.Total)
			assert.Equal(t, "content_rotation", frame.Type)
		}
	}

	assert.Equal(t, []int{0, 1, 2, 0}, bannerIndices)
	assert.Equal(t, []string{"첫째", "둘째", "셋째", "첫째"}, bannerTexts)
}

func TestRotator_Step_SingleItemRepeats(t *testing.T) {
	svc, rotator, broadcaster := setupRotatorTest(t)
	publishActiveBanner(t, svc, "유일한 문구")

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		rotator.Step(ctx)
	}

	for _, frame := range broadcaster.frames {
		if frame.ContentType == model.ContentTypeBanner {
			assert.Equal(t, 0, frame.Index)
			assert.Equal(t, "유일한 문구", frame.Item.Text)
		}
	}
}

func TestRotator_Step_FallbackBannerStillRotates(t *testing.T) {
	_, rotator, broadcaster := setupRotatorTest(t)

	// 활성 배너가 없어도 기본 배너 한 건이 브로드캐스트된다
	rotator.Step(context.Background())

	var bannerFrames int
	for _, frame := range broadcaster.frames {
		if frame.ContentType == model.ContentTypeBanner {
			bannerFrames++
			assert.Equal(t, service.DefaultBannerText, frame.Item.Text)
		}
	}
	assert.Equal(t, 1, bannerFrames)
}

func TestRotator_Step_CursorResetsWhenSetShrinks(t *testing.T) {
	svc, rotator, broadcaster := setupRotatorTest(t)
	publishActiveBanner(t, svc, "a", "b", "c")

	ctx := context.Background()
	rotator.Step(ctx)
	rotator.Step(ctx) // 커서가 2를 가리키는 상태

	// 1개짜리 새 버전으로 교체
	publishActiveBanner(t, svc, "only")

	broadcaster.frames = nil
	rotator.Step(ctx)

	for _, frame := range broadcaster.frames {
		if frame.ContentType == model.ContentTypeBanner {
			assert.Equal(t, 0, frame.Index)
			assert.Equal(t, "only", frame.Item.Text)
		}
	}
}

func TestRotator_Run_ReturnsOnStop(t *testing.T) {
	_, rotator, _ := setupRotatorTest(t)

	done := make(chan struct{})
	go func() {
		rotator.Run(context.Background())
		close(done)
	}()

	rotator.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("rotator did not stop")
	}
}
