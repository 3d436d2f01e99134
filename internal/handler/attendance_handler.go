package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/lessonlab-backend/internal/model"
	"github.com/stemsi/lessonlab-backend/internal/response"
	"github.com/stemsi/lessonlab-backend/internal/service"
	"github.com/stemsi/lessonlab-backend/internal/validator"
)

// AttendanceHandler handles lesson attendance registration.
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// Register godoc
// POST /api/v1/users/:user_id/attendance
// Records attendance for the active lesson. Repeat calls return the existing
// record with already_registered set; a late arrival carries an extra
// assignment in the record.
func (h *AttendanceHandler) Register(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	outcome, err := h.attendanceService.Register(c.Request.Context(), id, req.StudentName, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveLesson):
			response.Fail(c, http.StatusNotFound, response.ErrNoActiveLesson)
		case errors.Is(err, service.ErrRegistrationPersist):
			response.Fail(c, http.StatusInternalServerError, response.ErrPersistenceFailure)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	status := http.StatusCreated
	if outcome.AlreadyRegistered {
		status = http.StatusOK
	}
	response.Success(c, status, outcome)
}
