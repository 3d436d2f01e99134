package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stemsi/lessonlab-backend/internal/catalog"
	"github.com/stemsi/lessonlab-backend/internal/model"
	"github.com/stemsi/lessonlab-backend/internal/repository"
)

// noon is the reference instant for all service tests; lessons are built
// relative to it.
var noon = time.Date(2026, 3, 10, 12, 0, 0, 0, time.Local)

// catalogWith builds a single-lesson catalog with the given wall-clock
// window on noon's date.
func catalogWith(t *testing.T, start, end, topic string) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]model.LessonRecord{{
		Date:       noon.Format("2006-01-02"),
		StartTime:  start,
		EndTime:    end,
		Topic:      topic,
		Assignment: "base assignment",
	}})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return cat
}

// fakeGenerator counts calls and serves canned content or errors.
type fakeGenerator struct {
	taskCalls int
	quizCalls int

	task    *model.TaskSpec
	taskErr error

	quiz    []model.QuizQuestion
	quizErr error
}

func (g *fakeGenerator) GenerateTask(context.Context, string) (*model.TaskSpec, error) {
	g.taskCalls++
	if g.taskErr != nil {
		return nil, g.taskErr
	}
	if g.task != nil {
		return g.task, nil
	}
	return &model.TaskSpec{
		Title:    fmt.Sprintf("generated #%d", g.taskCalls),
		Examples: []model.TaskExample{{Input: "in", Output: "out"}},
	}, nil
}

func (g *fakeGenerator) GenerateQuiz(context.Context, string, int) ([]model.QuizQuestion, error) {
	g.quizCalls++
	return g.quiz, g.quizErr
}

// fiveQuestions is a canned quiz with known correct indices [0, 2, 1, 3, 0].
func fiveQuestions() []model.QuizQuestion {
	correct := []int{0, 2, 1, 3, 0}
	qs := make([]model.QuizQuestion, len(correct))
	for i, c := range correct {
		qs[i] = model.QuizQuestion{
			Prompt:       fmt.Sprintf("question %d", i),
			Choices:      []string{"a", "b", "c", "d"},
			CorrectIndex: c,
		}
	}
	return qs
}

// fakeStore is an in-memory RegistrationStore with failure injection.
type fakeStore struct {
	putCalls int
	putErr   error
	records  map[string]*model.RegistrationRecord
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*model.RegistrationRecord)}
}

func (s *fakeStore) key(userID, lessonDate string) string {
	return userID + "|" + lessonDate
}

func (s *fakeStore) Get(_ context.Context, userID, lessonDate string) (*model.RegistrationRecord, error) {
	rec, ok := s.records[s.key(userID, lessonDate)]
	if !ok {
		return nil, repository.ErrRegistrationNotFound
	}
	return rec, nil
}

func (s *fakeStore) Put(_ context.Context, userID, lessonDate string, rec *model.RegistrationRecord) error {
	s.putCalls++
	if s.putErr != nil {
		return s.putErr
	}
	k := s.key(userID, lessonDate)
	if _, ok := s.records[k]; ok {
		return repository.ErrRegistrationExists
	}
	s.records[k] = rec
	return nil
}

// fakeRunner implements CaseRunner without spawning processes. Each example
// passes unless its index is in failAt.
type fakeRunner struct {
	runs   int
	failAt map[int]bool
}

func (r *fakeRunner) VerifyWithProgress(_ context.Context, task *model.TaskSpec, _ string, onCase func(int, model.CaseResult)) []model.CaseResult {
	r.runs++
	results := make([]model.CaseResult, 0, len(task.Examples))
	for i, ex := range task.Examples {
		res := model.CaseResult{
			Input:    ex.Input,
			Expected: ex.Output,
			Actual:   ex.Output,
			Status:   model.CaseStatusPass,
			Passed:   true,
		}
		if r.failAt[i] {
			res.Actual = "wrong"
			res.Status = model.CaseStatusFail
			res.Passed = false
		}
		if onCase != nil {
			onCase(i, res)
		}
		results = append(results, res)
	}
	return results
}

var errStoreDown = errors.New("store down")

func nopLog() zerolog.Logger { return zerolog.Nop() }
