package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stemsi/lessonlab-backend/internal/catalog"
	"github.com/stemsi/lessonlab-backend/internal/events"
	"github.com/stemsi/lessonlab-backend/internal/generator"
	"github.com/stemsi/lessonlab-backend/internal/model"
)

// CaseRunner executes a verification run. onCase, when non-nil, is invoked
// after each example with its verdict.
type CaseRunner interface {
	VerifyWithProgress(ctx context.Context, task *model.TaskSpec, solution string, onCase func(i int, res model.CaseResult)) []model.CaseResult
}

// AssignTaskResult is the outcome of a task assignment. Replaced reports
// that a previously assigned task with no submitted solution was discarded.
type AssignTaskResult struct {
	Task     *model.TaskSpec `json:"task"`
	Replaced bool            `json:"replaced"`
}

// SubmitResult is the outcome of a solution submission: the per-case
// verdicts plus the user's updated cumulative grade.
type SubmitResult struct {
	Results []model.CaseResult `json:"results"`
	Grade   model.GradeReport  `json:"grade"`
}

// SubmissionService owns each user's live Submission: task assignment,
// solution intake and verification. Operations for one user are serialized;
// verification runs block only that user.
type SubmissionService struct {
	catalog *catalog.Catalog
	gen     generator.Generator
	runner  CaseRunner
	stats   *StatsService
	bus     *events.Bus
	locks   *userLocks
	log     zerolog.Logger

	mu          sync.Mutex
	submissions map[string]*model.Submission
}

// NewSubmissionService creates a SubmissionService.
func NewSubmissionService(
	cat *catalog.Catalog,
	gen generator.Generator,
	runner CaseRunner,
	stats *StatsService,
	bus *events.Bus,
	log zerolog.Logger,
) *SubmissionService {
	return &SubmissionService{
		catalog:     cat,
		gen:         gen,
		runner:      runner,
		stats:       stats,
		bus:         bus,
		locks:       newUserLocks(),
		log:         log.With().Str("component", "submission_service").Logger(),
		submissions: make(map[string]*model.Submission),
	}
}

// AssignTask generates a task for the lesson active at now and makes it the
// user's live Submission, replacing any prior one wholesale. Generator
// failure degrades to the fallback task rather than failing the call.
func (s *SubmissionService) AssignTask(ctx context.Context, userID string, now time.Time) (*AssignTaskResult, error) {
	lesson := s.catalog.Current(now)
	if lesson == nil {
		return nil, ErrNoActiveLesson
	}

	lock := s.locks.lock(userID)
	defer lock.Unlock()

	task := generator.SafeTask(ctx, s.gen, lesson.Topic, s.log)

	s.mu.Lock()
	prior, had := s.submissions[userID]
	s.submissions[userID] = &model.Submission{
		Task:   task,
		Status: model.SubmissionStatusPending,
	}
	s.mu.Unlock()

	replaced := had && prior.Status == model.SubmissionStatusPending
	if replaced {
		s.log.Info().Str("user_id", userID).Msg("Unsubmitted task replaced by new assignment")
	}

	return &AssignTaskResult{Task: task, Replaced: replaced}, nil
}

// SubmitSolution attaches the solution to the user's live Submission, runs
// verification against every task example and records the run in the user's
// stats. Per-case verdicts are also published to the events bus as they
// complete. Fails with ErrNoTaskAssigned when no task is live.
//
// A run that started always completes: the caller's cancellation (a client
// disconnect, typically) is stripped before the runner is invoked, so every
// case still ends in a determinate verdict or its own timeout and the
// recorded attempt reflects the actual solution, not the disconnect.
func (s *SubmissionService) SubmitSolution(ctx context.Context, userID, content string) (*SubmitResult, error) {
	lock := s.locks.lock(userID)
	defer lock.Unlock()

	s.mu.Lock()
	sub, ok := s.submissions[userID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNoTaskAssigned
	}

	sub.Solution = content
	sub.Status = model.SubmissionStatusSubmitted

	runCtx := context.WithoutCancel(ctx)
	caseCount := len(sub.Task.Examples)
	results := s.runner.VerifyWithProgress(runCtx, sub.Task, content, func(i int, res model.CaseResult) {
		s.bus.Publish(userID, events.VerificationEvent{
			Type:      events.TypeCaseResult,
			CaseIndex: i,
			CaseCount: caseCount,
			Case:      &res,
		})
	})

	grade := s.stats.RecordRun(userID, results)
	s.bus.Publish(userID, events.VerificationEvent{
		Type:  events.TypeRunCompleted,
		Grade: &grade,
	})

	s.log.Info().
		Str("user_id", userID).
		Int("cases", len(results)).
		Bool("success", model.AllPassed(results)).
		Int("band", grade.Band).
		Msg("Verification run recorded")

	return &SubmitResult{Results: results, Grade: grade}, nil
}

// Submission returns the user's live Submission, or nil.
func (s *SubmissionService) Submission(userID string) *model.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submissions[userID]
}
