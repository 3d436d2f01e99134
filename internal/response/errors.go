package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Lesson & session flow ─────────────────────────────────────────
	ErrNoActiveLesson     ErrCode = "NO_ACTIVE_LESSON"
	ErrNoTaskAssigned     ErrCode = "NO_TASK_ASSIGNED"
	ErrQuizUnavailable    ErrCode = "QUIZ_UNAVAILABLE"
	ErrQuizNotStarted     ErrCode = "QUIZ_NOT_STARTED"
	ErrPersistenceFailure ErrCode = "PERSISTENCE_FAILURE"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidID      ErrCode = "INVALID_ID"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrNoActiveLesson:
		return "There is no active lesson right now. Try again later."
	case ErrNoTaskAssigned:
		return "Request a task before submitting a solution."
	case ErrQuizUnavailable:
		return "The quiz is not available. It unlocks during the last minutes of the lesson."
	case ErrQuizNotStarted:
		return "No quiz in progress. Start one first."
	case ErrPersistenceFailure:
		return "Your registration could not be saved. Please try again."
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidPayload:
		return "The request payload is invalid."
	case ErrInvalidID:
		return "The identifier format is invalid."
	case ErrNotFound:
		return "Resource not found."
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
