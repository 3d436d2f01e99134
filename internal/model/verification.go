package model

// CaseStatus tags the outcome of a single verification case. Process
// failures are values here, never exceptions escaping the verifier.
type CaseStatus string

const (
	CaseStatusPass    CaseStatus = "PASS"
	CaseStatusFail    CaseStatus = "FAIL"
	CaseStatusTimeout CaseStatus = "TIMEOUT"
	CaseStatusError   CaseStatus = "ERROR"
)

// CaseResult is the verdict for one example of a verification run. A run
// produces exactly one CaseResult per task example, in task order.
type CaseResult struct {
	Input    string     `json:"input"`
	Expected string     `json:"expected"`
	Actual   string     `json:"actual"`
	Stderr   string     `json:"stderr,omitempty"`
	Status   CaseStatus `json:"status"`
	Passed   bool       `json:"passed"`
}

// AllPassed reports whether every case in a run passed. A run counts as a
// success for grading only if all cases passed.
func AllPassed(results []CaseResult) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return len(results) > 0
}
