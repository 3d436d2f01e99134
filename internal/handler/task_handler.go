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

// TaskHandler handles task assignment and solution submission.
type TaskHandler struct {
	submissionService *service.SubmissionService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(submissionService *service.SubmissionService) *TaskHandler {
	return &TaskHandler{submissionService: submissionService}
}

// AssignTask godoc
// POST /api/v1/users/:user_id/task
// Generates a practice task for the active lesson and makes it the user's
// live submission. Any unsubmitted prior task is replaced.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	result, err := h.submissionService.AssignTask(c.Request.Context(), id, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrNoActiveLesson) {
			response.Fail(c, http.StatusNotFound, response.ErrNoActiveLesson)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// SubmitSolution godoc
// POST /api/v1/users/:user_id/solution
// Attaches the solution to the live task and verifies it against every
// example. Responds with per-case verdicts and the updated cumulative grade.
func (h *TaskHandler) SubmitSolution(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req model.SubmitSolutionRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.submissionService.SubmitSolution(c.Request.Context(), id, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrNoTaskAssigned) {
			response.Fail(c, http.StatusConflict, response.ErrNoTaskAssigned)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, result)
}
