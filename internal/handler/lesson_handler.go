package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/lessonlab-backend/internal/response"
	"github.com/stemsi/lessonlab-backend/internal/service"
)

// LessonHandler exposes lesson catalog resolution.
type LessonHandler struct {
	lessonService *service.LessonService
}

// NewLessonHandler creates a new LessonHandler.
func NewLessonHandler(lessonService *service.LessonService) *LessonHandler {
	return &LessonHandler{lessonService: lessonService}
}

// GetCurrent godoc
// GET /api/v1/lessons/current?at=RFC3339
// Returns the lesson whose window contains the reference time, or the next
// upcoming one. 404 when the catalog holds nothing at or after the time.
func (h *LessonHandler) GetCurrent(c *gin.Context) {
	at, ok := atOrNow(c)
	if !ok {
		return
	}

	lesson, err := h.lessonService.Resolve(at)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveLesson) {
			response.Fail(c, http.StatusNotFound, response.ErrNoActiveLesson)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"lesson": lesson,
		"active": lesson.Contains(at),
	})
}
