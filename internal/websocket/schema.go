package websocket

import "github.com/stemsi/lessonlab-backend/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError        Event = "error"
	EventCaseResult   Event = "case_result"
	EventRunCompleted Event = "run_completed"
	EventPong         Event = "pong"
)

// CaseResultResponse streams one example's verdict while a verification run
// is in flight.
type CaseResultResponse struct {
	Event     Event             `json:"event"`
	CaseIndex int               `json:"case_index"`
	CaseCount int               `json:"case_count"`
	Case      *model.CaseResult `json:"case"`
}

// RunCompletedResponse closes out a run with the user's updated grade.
type RunCompletedResponse struct {
	Event Event              `json:"event"`
	Grade *model.GradeReport `json:"grade"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
