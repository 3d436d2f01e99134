package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/stemsi/lessonlab-backend/internal/catalog"
	"github.com/stemsi/lessonlab-backend/internal/model"
	"github.com/stemsi/lessonlab-backend/internal/repository"
	"github.com/stemsi/lessonlab-backend/internal/service"
	"github.com/stemsi/lessonlab-backend/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

// stubGenerator returns fixed content without calling out anywhere.
type stubGenerator struct{}

func (stubGenerator) GenerateTask(context.Context, string) (*model.TaskSpec, error) {
	return &model.TaskSpec{
		Title:    "stub task",
		Examples: []model.TaskExample{{Input: "1", Output: "1"}},
	}, nil
}

func (stubGenerator) GenerateQuiz(context.Context, string, int) ([]model.QuizQuestion, error) {
	return []model.QuizQuestion{{Prompt: "q", Choices: []string{"a", "b"}, CorrectIndex: 0}}, nil
}

// memStore is an in-memory RegistrationStore.
type memStore struct {
	records map[string]*model.RegistrationRecord
}

func (s *memStore) Get(_ context.Context, userID, lessonDate string) (*model.RegistrationRecord, error) {
	rec, ok := s.records[userID+"|"+lessonDate]
	if !ok {
		return nil, repository.ErrRegistrationNotFound
	}
	return rec, nil
}

func (s *memStore) Put(_ context.Context, userID, lessonDate string, rec *model.RegistrationRecord) error {
	if s.records == nil {
		s.records = make(map[string]*model.RegistrationRecord)
	}
	s.records[userID+"|"+lessonDate] = rec
	return nil
}

// allDayRouter wires the handlers over a catalog whose single lesson spans
// the whole of today, so time.Now() always falls inside it.
func allDayRouter(t *testing.T) *gin.Engine {
	t.Helper()

	today := time.Now().Format("2006-01-02")
	cat, err := catalog.New([]model.LessonRecord{{
		Date:      today,
		StartTime: "00:00",
		EndTime:   "23:59",
		Topic:     "testing",
	}})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}

	log := zerolog.Nop()
	lessonSvc := service.NewLessonService(cat, log)
	attendanceSvc := service.NewAttendanceService(cat, &memStore{}, stubGenerator{}, log)
	statsSvc := service.NewStatsService()
	quizSvc := service.NewQuizService(cat, stubGenerator{}, log)

	r := gin.New()
	r.GET("/api/v1/lessons/current", NewLessonHandler(lessonSvc).GetCurrent)
	users := r.Group("/api/v1/users/:user_id")
	users.POST("/attendance", NewAttendanceHandler(attendanceSvc).Register)
	users.GET("/stats", NewStatsHandler(statsSvc).GetStats)
	quiz := NewQuizHandler(quizSvc)
	users.POST("/quiz/start", quiz.Start)
	users.GET("/quiz/question", quiz.GetQuestion)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
	Metadata struct {
		RequestID string `json:"request_id"`
	} `json:"metadata"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return env
}

func TestGetCurrentLesson(t *testing.T) {
	r := allDayRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/lessons/current", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	env := decode(t, w)
	if env.Error != nil {
		t.Fatalf("error = %+v", env.Error)
	}
}

func TestGetCurrentLessonBadAtParam(t *testing.T) {
	r := allDayRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/lessons/current?at=not-a-time", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	env := decode(t, w)
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("error = %+v", env.Error)
	}
}

func TestRegisterValidation(t *testing.T) {
	r := allDayRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/users/u1/attendance", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	env := decode(t, w)
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("error = %+v", env.Error)
	}
	if _, ok := env.Error.Fields["student_name"]; !ok {
		t.Fatalf("fields = %+v, want student_name", env.Error.Fields)
	}
}

func TestRegisterAndRepeat(t *testing.T) {
	r := allDayRouter(t)
	body := `{"student_name": "Alice"}`

	first := doJSON(t, r, http.MethodPost, "/api/v1/users/u1/attendance", body)
	if first.Code != http.StatusCreated {
		t.Fatalf("first status = %d, body %s", first.Code, first.Body.String())
	}

	second := doJSON(t, r, http.MethodPost, "/api/v1/users/u1/attendance", body)
	if second.Code != http.StatusOK {
		t.Fatalf("repeat status = %d, body %s", second.Code, second.Body.String())
	}
	var out struct {
		AlreadyRegistered bool `json:"already_registered"`
	}
	env := decode(t, second)
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !out.AlreadyRegistered {
		t.Fatal("repeat registration not reported as already registered")
	}
}

func TestStatsForUnknownUser(t *testing.T) {
	r := allDayRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/users/nobody/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var out struct {
		Attempts int `json:"attempts"`
		Band     int `json:"band"`
	}
	env := decode(t, w)
	if err := json.Unmarshal(env.Data, &out); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if out.Attempts != 0 || out.Band != 1 {
		t.Fatalf("stats = %+v, want zeros with band 1", out)
	}
}

func TestQuizStartOutsideFinalWindow(t *testing.T) {
	r := allDayRouter(t)

	// Mid-lesson reference time, far from the final minutes.
	now := time.Now()
	at := time.Date(now.Year(), now.Month(), now.Day(), 12, 0, 0, 0, time.Local)
	atParam := url.QueryEscape(at.Format(time.RFC3339))

	w := doJSON(t, r, http.MethodPost, "/api/v1/users/u1/quiz/start?at="+atParam, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	env := decode(t, w)
	if env.Error == nil || env.Error.Code != "QUIZ_UNAVAILABLE" {
		t.Fatalf("error = %+v", env.Error)
	}
}

func TestQuizQuestionWithoutStart(t *testing.T) {
	r := allDayRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/users/u1/quiz/question", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}
	env := decode(t, w)
	if env.Error == nil || env.Error.Code != "QUIZ_NOT_STARTED" {
		t.Fatalf("error = %+v", env.Error)
	}
}

func TestResponseCarriesRequestID(t *testing.T) {
	r := allDayRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/users/u1/stats", "")
	env := decode(t, w)
	if env.Metadata.RequestID == "" {
		t.Fatal("metadata.request_id missing")
	}
}
