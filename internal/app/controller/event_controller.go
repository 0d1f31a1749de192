package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/aionlab/aion-backend/internal/app/service"
	apperrors "github.com/aionlab/aion-backend/internal/errors"
	"github.com/aionlab/aion-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type EventController struct {
	eventService service.EventService
}

func NewEventController(eventService service.EventService) *EventController {
	return &EventController{eventService: eventService}
}

type EventRequest struct {
	Title    string    `json:"title" binding:"required"`
	Body     string    `json:"body"`
	Images   []string  `json:"images"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
	IsActive *bool     `json:"is_active"`
}

func toEventMutation(req EventRequest) service.EventMutation {
	return service.EventMutation{
		Title:    req.Title,
		Body:     req.Body,
		Images:   req.Images,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
		IsActive: req.IsActive,
	}
}

// ListEvents returns events; public callers see active ones only
// GET /api/v1/events
func (ctrl *EventController) ListEvents(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	activeOnly := !middleware.IsAdmin(c)
	if c.Query("all") == "true" && middleware.IsAdmin(c) {
		activeOnly = false
	}

	events, err := ctrl.eventService.ListEvents(activeOnly)
	if err != nil {
		log.Error("Failed to list events", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}

// GetEvent returns one event with its participant count
// GET /api/v1/events/:id
func (ctrl *EventController) GetEvent(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "이벤트 ID가 올바르지 않습니다")
		return
	}

	event, err := ctrl.eventService.GetEventByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			apperrors.NotFound(c, apperrors.EventNotFound, "이벤트를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to get event", err, map[string]interface{}{
			"event_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	participants, err := ctrl.eventService.CountParticipants(uint(id))
	if err != nil {
		participants = 0
	}

	c.JSON(http.StatusOK, gin.H{
		"event":        event,
		"participants": participants,
	})
}

// JoinEvent records the user's participation (once per event)
// POST /api/v1/events/:id/join
func (ctrl *EventController) JoinEvent(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "이벤트 ID가 올바르지 않습니다")
		return
	}

	participation, err := ctrl.eventService.JoinEvent(uint(id), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			apperrors.NotFound(c, apperrors.EventNotFound, "이벤트를 찾을 수 없습니다")
		case errors.Is(err, service.ErrEventNotActive):
			apperrors.BadRequest(c, apperrors.EventClosed, "진행 중인 이벤트가 아닙니다")
		case errors.Is(err, service.ErrEventAlreadyJoined):
			apperrors.Conflict(c, apperrors.EventAlreadyJoined, "이미 참여한 이벤트입니다")
		default:
			log.Error("Failed to join event", err, map[string]interface{}{
				"event_id": id,
				"user_id":  userID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "join event")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "이벤트에 참여했습니다",
		"participation": participation,
	})
}

// CreateEvent registers an event (admin)
// POST /api/v1/admin/events
func (ctrl *EventController) CreateEvent(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	event, err := ctrl.eventService.CreateEvent(toEventMutation(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventTitleEmpty):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "이벤트 제목을 입력해주세요")
		case errors.Is(err, service.ErrEventInvalidWindow):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "이벤트 기간이 올바르지 않습니다")
		default:
			log.Error("Failed to create event", err, map[string]interface{}{
				"title": req.Title,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create event")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "이벤트가 등록되었습니다",
		"event":   event,
	})
}

// UpdateEvent edits an event (admin)
// PUT /api/v1/admin/events/:id
func (ctrl *EventController) UpdateEvent(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "이벤트 ID가 올바르지 않습니다")
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력 정보가 올바르지 않습니다")
		return
	}

	event, err := ctrl.eventService.UpdateEvent(uint(id), toEventMutation(req))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			apperrors.NotFound(c, apperrors.EventNotFound, "이벤트를 찾을 수 없습니다")
		case errors.Is(err, service.ErrEventTitleEmpty):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "이벤트 제목을 입력해주세요")
		case errors.Is(err, service.ErrEventInvalidWindow):
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "이벤트 기간이 올바르지 않습니다")
		default:
			log.Error("Failed to update event", err, map[string]interface{}{
				"event_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update event")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "이벤트가 수정되었습니다",
		"event":   event,
	})
}

// DeleteEvent removes an event (admin)
// DELETE /api/v1/admin/events/:id
func (ctrl *EventController) DeleteEvent(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "이벤트 ID가 올바르지 않습니다")
		return
	}

	if err := ctrl.eventService.DeleteEvent(uint(id)); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			apperrors.NotFound(c, apperrors.EventNotFound, "이벤트를 찾을 수 없습니다")
			return
		}
		log.Error("Failed to delete event", err, map[string]interface{}{
			"event_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "이벤트가 삭제되었습니다"})
}
