package service

import (
	"sync"

	"github.com/stemsi/lessonlab-backend/internal/model"
)

// StatsService keeps cumulative attempt/success counters per user and
// derives the grade band. Counters only ever grow; no reset is exposed.
type StatsService struct {
	mu    sync.Mutex
	stats map[string]*model.UserStats
}

// NewStatsService creates a StatsService.
func NewStatsService() *StatsService {
	return &StatsService{stats: make(map[string]*model.UserStats)}
}

// RecordRun counts one verification run for the user. The run is a success
// only if every case passed. Returns the updated grade report.
func (s *StatsService) RecordRun(userID string, results []model.CaseResult) model.GradeReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stats[userID]
	if !ok {
		st = &model.UserStats{}
		s.stats[userID] = st
	}

	st.Attempts++
	if model.AllPassed(results) {
		st.Successes++
	}
	return st.Grade()
}

// Get returns the user's current grade report (zeros for unknown users).
func (s *StatsService) Get(userID string) model.GradeReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.stats[userID]; ok {
		return st.Grade()
	}
	return model.UserStats{}.Grade()
}
