package service

import (
	"testing"

	"github.com/stemsi/lessonlab-backend/internal/model"
)

func passedRun() []model.CaseResult {
	return []model.CaseResult{{Status: model.CaseStatusPass, Passed: true}}
}

func failedRun() []model.CaseResult {
	return []model.CaseResult{
		{Status: model.CaseStatusPass, Passed: true},
		{Status: model.CaseStatusFail, Passed: false},
	}
}

func TestStatsUnknownUserIsZero(t *testing.T) {
	svc := NewStatsService()
	got := svc.Get("nobody")
	if got.Attempts != 0 || got.Successes != 0 || got.Band != 1 {
		t.Fatalf("Get = %+v, want zeros with band 1", got)
	}
}

func TestStatsCountersAreMonotonic(t *testing.T) {
	svc := NewStatsService()

	svc.RecordRun("u1", passedRun())
	svc.RecordRun("u1", failedRun())
	svc.RecordRun("u1", failedRun())
	got := svc.RecordRun("u1", passedRun())

	if got.Attempts != 4 || got.Successes != 2 {
		t.Fatalf("report = %+v, want 4 attempts 2 successes", got)
	}
	if got.Percent != 50 || got.Band != 3 {
		t.Fatalf("report = %+v, want 50%% band 3", got)
	}
}

func TestStatsPartialPassIsNotSuccess(t *testing.T) {
	svc := NewStatsService()
	got := svc.RecordRun("u1", failedRun())
	if got.Successes != 0 {
		t.Fatalf("report = %+v, partially passed run counted as success", got)
	}
}

func TestStatsPerUserIsolation(t *testing.T) {
	svc := NewStatsService()
	svc.RecordRun("u1", passedRun())
	svc.RecordRun("u2", failedRun())

	if got := svc.Get("u1"); got.Successes != 1 {
		t.Fatalf("u1 = %+v", got)
	}
	if got := svc.Get("u2"); got.Successes != 0 || got.Attempts != 1 {
		t.Fatalf("u2 = %+v", got)
	}
}
