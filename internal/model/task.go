package model

import (
	"fmt"
	"strings"
)

// TaskExample is one sample input/output pair used for verification.
type TaskExample struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// TaskSpec is a generated programming exercise. It is immutable once created
// and owned by the Submission that requested it.
type TaskSpec struct {
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Requirements []string      `json:"requirements"`
	Examples     []TaskExample `json:"examples"`
	Steps        []string      `json:"steps"`
}

// Flatten renders the task as display text. Used for the extra-assignment
// field of a registration record, which stores the generated text verbatim.
func (t *TaskSpec) Flatten() string {
	var b strings.Builder
	b.WriteString(t.Title)
	b.WriteString("\n")
	b.WriteString(t.Description)
	b.WriteString("\nRequirements:\n")
	for _, req := range t.Requirements {
		fmt.Fprintf(&b, "- %s\n", req)
	}
	b.WriteString("Examples:\n")
	for _, ex := range t.Examples {
		fmt.Fprintf(&b, "Input: %s\nOutput: %s\n", ex.Input, ex.Output)
	}
	b.WriteString("Steps:\n")
	for i, step := range t.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	return b.String()
}
