package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stemsi/lessonlab-backend/internal/model"
	"github.com/stemsi/lessonlab-backend/internal/response"
	"github.com/stemsi/lessonlab-backend/internal/service"
	"github.com/stemsi/lessonlab-backend/internal/validator"
)

// QuizHandler drives the end-of-lesson quiz session.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// Start godoc
// POST /api/v1/users/:user_id/quiz/start?at=RFC3339
// Opens a quiz for the user. Only allowed during the final minutes of the
// active lesson; a live quiz is replaced.
func (h *QuizHandler) Start(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	at, ok := atOrNow(c)
	if !ok {
		return
	}

	question, err := h.quizService.Start(c.Request.Context(), id, at)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoActiveLesson):
			response.Fail(c, http.StatusNotFound, response.ErrNoActiveLesson)
		case errors.Is(err, service.ErrQuizUnavailable):
			response.Fail(c, http.StatusConflict, response.ErrQuizUnavailable)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, question)
}

// GetQuestion godoc
// GET /api/v1/users/:user_id/quiz/question
// Returns the question at the user's current position.
func (h *QuizHandler) GetQuestion(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	question, err := h.quizService.CurrentQuestion(id)
	if err != nil {
		if errors.Is(err, service.ErrQuizNotStarted) {
			response.Fail(c, http.StatusConflict, response.ErrQuizNotStarted)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, question)
}

// Answer godoc
// POST /api/v1/users/:user_id/quiz/answer
// Records the choice for the current question and advances. On the last
// question the quiz completes and the score is returned.
func (h *QuizHandler) Answer(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req model.QuizAnswerRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	progress, err := h.quizService.Answer(id, *req.ChoiceIndex)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQuizNotStarted):
			response.Fail(c, http.StatusConflict, response.ErrQuizNotStarted)
		case errors.Is(err, service.ErrChoiceOutOfRange):
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
				"choice_index": "must index one of the question's choices",
			})
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, progress)
}
