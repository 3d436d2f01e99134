package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stemsi/lessonlab-backend/internal/catalog"
	"github.com/stemsi/lessonlab-backend/internal/config"
	"github.com/stemsi/lessonlab-backend/internal/generator"
	"github.com/stemsi/lessonlab-backend/internal/model"
)

// QuizService drives the timed multiple-choice quiz: NotStarted ->
// InProgress -> Completed, one question at a time, scored at completion.
type QuizService struct {
	catalog *catalog.Catalog
	gen     generator.Generator
	locks   *userLocks
	log     zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*model.QuizState
}

// NewQuizService creates a QuizService.
func NewQuizService(cat *catalog.Catalog, gen generator.Generator, log zerolog.Logger) *QuizService {
	return &QuizService{
		catalog:  cat,
		gen:      gen,
		locks:    newUserLocks(),
		log:      log.With().Str("component", "quiz_service").Logger(),
		sessions: make(map[string]*model.QuizState),
	}
}

// Start opens a quiz for the user. The quiz unlocks only during the final
// minutes of the active lesson; outside that window, or when the generator
// yields no questions, Start fails with ErrQuizUnavailable. A live quiz is
// replaced.
func (s *QuizService) Start(ctx context.Context, userID string, now time.Time) (*model.QuestionView, error) {
	lesson := s.catalog.Current(now)
	if lesson == nil {
		return nil, ErrNoActiveLesson
	}

	_, end, err := lesson.Window(now.Location())
	if err != nil {
		return nil, ErrQuizUnavailable
	}
	if end.Sub(now) > config.QuizWindow {
		return nil, ErrQuizUnavailable
	}

	lock := s.locks.lock(userID)
	defer lock.Unlock()

	questions, err := s.gen.GenerateQuiz(ctx, lesson.Topic, config.QuizQuestionCount)
	if err != nil {
		s.log.Warn().Err(err).Str("topic", lesson.Topic).Msg("Quiz generation failed")
		return nil, ErrQuizUnavailable
	}
	if len(questions) < 1 {
		s.log.Warn().Str("topic", lesson.Topic).Msg("Quiz generation returned no questions")
		return nil, ErrQuizUnavailable
	}

	state := &model.QuizState{Questions: questions}

	s.mu.Lock()
	s.sessions[userID] = state
	s.mu.Unlock()

	return questionView(state), nil
}

// CurrentQuestion projects the question at the user's current index.
func (s *QuizService) CurrentQuestion(userID string) (*model.QuestionView, error) {
	s.mu.Lock()
	state, ok := s.sessions[userID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrQuizNotStarted
	}
	return questionView(state), nil
}

// Answer records the choice for the current question and advances. On the
// last question the quiz completes: the score is computed, reported and the
// state removed — the session cannot be replayed. A choice index outside the
// current question's choices is rejected without consuming the question.
func (s *QuizService) Answer(userID string, choiceIndex int) (*model.QuizProgress, error) {
	lock := s.locks.lock(userID)
	defer lock.Unlock()

	s.mu.Lock()
	state, ok := s.sessions[userID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrQuizNotStarted
	}

	if choiceIndex < 0 || choiceIndex >= len(state.Questions[state.CurrentIndex].Choices) {
		return nil, ErrChoiceOutOfRange
	}

	state.Answers = append(state.Answers, choiceIndex)
	state.CurrentIndex++

	if state.CurrentIndex < len(state.Questions) {
		return &model.QuizProgress{Next: questionView(state)}, nil
	}

	correct := 0
	for i, q := range state.Questions {
		if state.Answers[i] == q.CorrectIndex {
			correct++
		}
	}

	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()

	s.log.Info().
		Str("user_id", userID).
		Int("correct", correct).
		Int("total", len(state.Questions)).
		Msg("Quiz completed")

	return &model.QuizProgress{
		Completed: true,
		Result:    &model.QuizResult{Correct: correct, Total: len(state.Questions)},
	}, nil
}

func questionView(state *model.QuizState) *model.QuestionView {
	q := state.Questions[state.CurrentIndex]
	return &model.QuestionView{
		Prompt:  q.Prompt,
		Choices: q.Choices,
		Index:   state.CurrentIndex,
		Total:   len(state.Questions),
	}
}
