package model

// QuizQuestion is a single multiple-choice question with exactly one correct
// choice index. Choices keep generator-provided order; answers use positional
// indices.
type QuizQuestion struct {
	Prompt       string   `json:"prompt"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
}

// QuizState tracks one user's in-progress quiz. Created on start, removed
// when the last question is answered. At most one live QuizState per user.
type QuizState struct {
	Questions    []QuizQuestion
	CurrentIndex int
	Answers      []int
}

// QuestionView is the read-only projection of the current question exposed
// to the transport. The correct index is never included.
type QuestionView struct {
	Prompt  string   `json:"prompt"`
	Choices []string `json:"choices"`
	Index   int      `json:"index"`
	Total   int      `json:"total"`
}

// QuizProgress reports the state after answering one question. Result is set
// only when Completed is true.
type QuizProgress struct {
	Completed bool          `json:"completed"`
	Next      *QuestionView `json:"next,omitempty"`
	Result    *QuizResult   `json:"result,omitempty"`
}

// QuizResult is the terminal score of a completed quiz.
type QuizResult struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

// QuizAnswerRequest is the payload for answering the current quiz question.
type QuizAnswerRequest struct {
	ChoiceIndex *int `json:"choice_index" binding:"required,gte=0"`
}
