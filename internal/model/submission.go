package model

// SubmissionStatus enumerates submission lifecycle states.
type SubmissionStatus string

const (
	SubmissionStatusPending   SubmissionStatus = "PENDING"
	SubmissionStatusSubmitted SubmissionStatus = "SUBMITTED"
)

// Submission is a user's currently assigned task and solution lifecycle.
// At most one live Submission exists per user; requesting a new task
// replaces it wholesale.
type Submission struct {
	Task     *TaskSpec        `json:"task"`
	Solution string           `json:"solution,omitempty"`
	Status   SubmissionStatus `json:"status"`
}

// SubmitSolutionRequest is the payload for submitting solution content.
type SubmitSolutionRequest struct {
	Content string `json:"content" binding:"required"`
}
