package websocket

import (
	"context"
	"time"

	"github.com/aionlab/aion-backend/internal/app/model"
	"github.com/aionlab/aion-backend/internal/app/service"
	"github.com/aionlab/aion-backend/pkg/logger"
)

// RotationInterval 콘텐츠 회전 주기
const RotationInterval = 5000 * time.Millisecond

// Broadcaster Hub 추상화 (테스트용)
type Broadcaster interface {
	Broadcast(message interface{}) error
}

// RotationFrame 회전 브로드캐스트 페이로드
type RotationFrame struct {
	Type        string               `json:"type"` // "content_rotation"
	ContentType model.ContentType    `json:"content_type"`
	Kind        model.CollectionKind `json:"kind,omitempty"`
	Index       int                  `json:"index"`
	Total       int                  `json:"total"`
	Item        model.ContentItem    `json:"item"`
}

type rotationSubject struct {
	contentType model.ContentType
	kind        model.CollectionKind
}

// defaultSubjects 회전 대상 (배너 문구, 히어로 이미지, 컬렉션 배경 미디어)
var defaultSubjects = []rotationSubject{
	{model.ContentTypeBanner, model.KindNone},
	{model.ContentTypeHero, model.KindNone},
	{model.ContentTypeCollection, model.KindCollection},
	{model.ContentTypeCollection, model.KindSignature},
}

// Rotator pushes the active content's child items to connected storefront
// clients on a fixed timer. Each subject keeps its own cursor that wraps
// modulo the item count; cursors reset when the server restarts.
type Rotator struct {
	contentService service.ContentService
	broadcaster    Broadcaster
	subjects       []rotationSubject
	cursors        map[rotationSubject]int
	stop           chan struct{}
}

func NewRotator(contentService service.ContentService, broadcaster Broadcaster) *Rotator {
	return &Rotator{
		contentService: contentService,
		broadcaster:    broadcaster,
		subjects:       defaultSubjects,
		cursors:        make(map[rotationSubject]int),
		stop:           make(chan struct{}),
	}
}

// NextIndex advances a rotation cursor, wrapping modulo the item count.
func NextIndex(current, total int) int {
	if total <= 0 {
		return 0
	}
	return (current + 1) % total
}

// Run ticks until Stop is called.
func (r *Rotator) Run(ctx context.Context) {
	ticker := time.NewTicker(RotationInterval)
	defer ticker.Stop()

	logger.Info("Content rotator started", map[string]interface{}{
		"interval_ms": RotationInterval.Milliseconds(),
		"subjects":    len(r.subjects),
	})

	for {
		select {
		case <-ticker.C:
			r.Step(ctx)
		case <-r.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop terminates the rotation loop.
func (r *Rotator) Stop() {
	close(r.stop)
}

// Step broadcasts one frame per subject and advances each cursor.
// A subject with no items is skipped and its cursor reset.
func (r *Rotator) Step(ctx context.Context) {
	for _, subject := range r.subjects {
		content, err := r.contentService.GetActiveContent(ctx, subject.contentType, subject.kind)
		if err != nil {
			logger.Warn("Rotation lookup failed", map[string]interface{}{
				"type":  subject.contentType,
				"kind":  subject.kind,
				"error": err.Error(),
			})
			continue
		}

		total := len(content.Items)
		if total == 0 {
			r.cursors[subject] = 0
			continue
		}

		// 항목 수가 줄어든 경우 커서를 범위 안으로 되돌림
		index := r.cursors[subject]
		if index >= total {
			index = 0
		}

		frame := RotationFrame{
			Type:        "content_rotation",
			ContentType: subject.contentType,
			Kind:        subject.kind,
			Index:       index,
			Total:       total,
			Item:        content.Items[index],
		}
		if err := r.broadcaster.Broadcast(frame); err != nil {
			logger.Warn("Rotation broadcast failed", map[string]interface{}{
				"type": subject.contentType,
			})
		}

		r.cursors[subject] = NextIndex(index, total)
	}
}
