package service

import "errors"

var (
	// ErrNoActiveLesson means no lesson window contains the evaluation
	// instant. Recoverable — the caller should retry later.
	ErrNoActiveLesson = errors.New("no active lesson")

	// ErrNoTaskAssigned means a solution arrived before any task was
	// assigned to the user.
	ErrNoTaskAssigned = errors.New("no task assigned")

	// ErrQuizUnavailable means the quiz gating condition is not met or the
	// generator produced zero questions.
	ErrQuizUnavailable = errors.New("quiz unavailable")

	// ErrQuizNotStarted means an answer or question lookup arrived with no
	// live quiz for the user.
	ErrQuizNotStarted = errors.New("quiz not started")

	// ErrChoiceOutOfRange means a quiz answer named a choice index the
	// current question does not have.
	ErrChoiceOutOfRange = errors.New("choice index out of range")

	// ErrRegistrationPersist means the durable registration write failed.
	// Fatal to that register call: silent loss would break idempotence and
	// risk double credit.
	ErrRegistrationPersist = errors.New("registration persist failed")
)
