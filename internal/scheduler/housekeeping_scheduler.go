package scheduler

import (
	"time"

	"github.com/aionlab/aion-backend/internal/app/service"
	"github.com/aionlab/aion-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// HousekeepingScheduler 만료 쿠폰 비활성화와 종료 이벤트 마감 스케줄러
type HousekeepingScheduler struct {
	cron          *cron.Cron
	couponService service.CouponService
	eventService  service.EventService
}

// NewHousekeepingScheduler 하우스키핑 스케줄러 생성
func NewHousekeepingScheduler(couponService service.CouponService, eventService service.EventService) *HousekeepingScheduler {
	return &HousekeepingScheduler{
		cron:          cron.New(),
		couponService: couponService,
		eventService:  eventService,
	}
}

// Start 스케줄러 시작
func (s *HousekeepingScheduler) Start() error {
	// 매시 정각에 만료된 쿠폰 비활성화
	_, err := s.cron.AddFunc("0 * * * *", func() {
		logger.Info("Starting scheduled coupon expiry sweep", nil)

		count, err := s.couponService.ExpireCoupons(time.Now())
		if err != nil {
			logger.Error("Failed to expire coupons from scheduler", err)
			return
		}

		logger.Info("Coupon expiry sweep finished", map[string]interface{}{
			"expired": count,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for coupon expiry", err)
		return err
	}

	// 매일 자정에 종료된 이벤트 마감 (KST 기준)
	_, err = s.cron.AddFunc("0 0 * * *", func() {
		logger.Info("Starting scheduled event close sweep", nil)

		count, err := s.eventService.CloseEndedEvents(time.Now())
		if err != nil {
			logger.Error("Failed to close ended events from scheduler", err)
			return
		}

		logger.Info("Event close sweep finished", map[string]interface{}{
			"closed": count,
		})
	})
	if err != nil {
		logger.Error("Failed to add cron job for event close", err)
		return err
	}

	s.cron.Start()
	logger.Info("Housekeeping scheduler started successfully", nil)

	return nil
}

// Stop 스케줄러 중지
func (s *HousekeepingScheduler) Stop() {
	logger.Info("Stopping housekeeping scheduler...", nil)
	s.cron.Stop()
	logger.Info("Housekeeping scheduler stopped", nil)
}
