// Package verifier runs untrusted submitted code against a task's example
// cases in isolated, time-bounded subprocesses. Process failures are
// recorded as per-case results; nothing propagates out of a run, and a run
// always yields exactly one result per example.
package verifier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stemsi/lessonlab-backend/internal/model"
)

// maxCaptureBytes bounds how much child stdout/stderr is retained per case,
// so a submission printing in a loop cannot exhaust memory.
const maxCaptureBytes = 64 * 1024

// Runner executes verification runs.
type Runner struct {
	interpreter string
	caseTimeout time.Duration
	log         zerolog.Logger
}

// NewRunner creates a Runner. interpreter is the binary that executes the
// solution file (python3 in production); caseTimeout is the hard wall-clock
// deadline per example.
func NewRunner(interpreter string, caseTimeout time.Duration, log zerolog.Logger) *Runner {
	return &Runner{
		interpreter: interpreter,
		caseTimeout: caseTimeout,
		log:         log.With().Str("component", "verifier").Logger(),
	}
}

// Verify runs the solution once per task example, in order. Every exit path
// releases the temp directory and the spawned processes; a launch failure or
// timeout becomes a failed case result, never an error.
func (r *Runner) Verify(ctx context.Context, task *model.TaskSpec, solution string) []model.CaseResult {
	return r.VerifyWithProgress(ctx, task, solution, nil)
}

// VerifyWithProgress is Verify with an optional per-case observer, invoked
// with each verdict as soon as its case finishes.
func (r *Runner) VerifyWithProgress(ctx context.Context, task *model.TaskSpec, solution string, onCase func(i int, res model.CaseResult)) []model.CaseResult {
	results := make([]model.CaseResult, 0, len(task.Examples))

	emit := func(res model.CaseResult) {
		if onCase != nil {
			onCase(len(results), res)
		}
		results = append(results, res)
	}

	dir, err := os.MkdirTemp("", "lessonlab-run-*")
	if err != nil {
		// Without a sandbox directory no case can run; report each case as an
		// execution error so the run is still complete.
		for _, ex := range task.Examples {
			emit(errorResult(ex, fmt.Sprintf("create sandbox: %v", err)))
		}
		return results
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "solution")
	if err := os.WriteFile(path, []byte(solution), 0o600); err != nil {
		for _, ex := range task.Examples {
			emit(errorResult(ex, fmt.Sprintf("write solution: %v", err)))
		}
		return results
	}

	for _, ex := range task.Examples {
		emit(r.runCase(ctx, dir, path, ex))
	}
	return results
}

func (r *Runner) runCase(ctx context.Context, dir, path string, ex model.TaskExample) model.CaseResult {
	cctx, cancel := context.WithTimeout(ctx, r.caseTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(cctx, r.interpreter, path)
	cmd.Dir = dir // the process writes nothing the host depends on
	cmd.Stdin = strings.NewReader(ex.Input)
	cmd.Stdout = limitWriter(&stdout)
	cmd.Stderr = limitWriter(&stderr)
	// If the process ignores the kill long enough for WaitDelay to fire,
	// Wait returns ErrWaitDelay instead of hanging forever.
	cmd.WaitDelay = time.Second

	runErr := cmd.Run()

	result := model.CaseResult{
		Input:    ex.Input,
		Expected: strings.TrimSpace(ex.Output),
		Actual:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
	}

	switch {
	case cctx.Err() == context.DeadlineExceeded:
		result.Status = model.CaseStatusTimeout
		result.Stderr = fmt.Sprintf("execution timed out after %s", r.caseTimeout)
	case runErr != nil:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			// Ran but exited non-zero (e.g. a syntax error); stderr already
			// carries the interpreter's diagnostics.
			result.Status = model.CaseStatusFail
		} else {
			result.Status = model.CaseStatusError
			result.Stderr = runErr.Error()
		}
	case result.Actual == result.Expected:
		result.Status = model.CaseStatusPass
		result.Passed = true
	default:
		result.Status = model.CaseStatusFail
	}

	if !result.Passed {
		r.log.Debug().
			Str("status", string(result.Status)).
			Str("expected", result.Expected).
			Str("actual", result.Actual).
			Msg("Verification case failed")
	}
	return result
}

func errorResult(ex model.TaskExample, msg string) model.CaseResult {
	return model.CaseResult{
		Input:    ex.Input,
		Expected: strings.TrimSpace(ex.Output),
		Stderr:   msg,
		Status:   model.CaseStatusError,
	}
}

// limitWriter caps captured output at maxCaptureBytes, discarding the rest.
func limitWriter(buf *bytes.Buffer) *cappedWriter {
	return &cappedWriter{buf: buf, remaining: maxCaptureBytes}
}

type cappedWriter struct {
	buf       *bytes.Buffer
	remaining int
}

func (w *cappedWriter) Write(p []byte) (int, error) {
	n := len(p)
	if w.remaining > 0 {
		keep := p
		if len(keep) > w.remaining {
			keep = keep[:w.remaining]
		}
		w.buf.Write(keep)
		w.remaining -= len(keep)
	}
	// Report the full length so the child never sees a write error.
	return n, nil
}
