package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stemsi/lessonlab-backend/internal/catalog"
	"github.com/stemsi/lessonlab-backend/internal/config"
	"github.com/stemsi/lessonlab-backend/internal/generator"
	"github.com/stemsi/lessonlab-backend/internal/model"
	"github.com/stemsi/lessonlab-backend/internal/repository"
)

// AttendanceService records one registration per (user, lesson date),
// detects late arrivals and hands them a generated extra assignment.
type AttendanceService struct {
	mu      sync.Mutex // single critical section for check-and-create
	catalog *catalog.Catalog
	store   repository.RegistrationStore
	gen     generator.Generator
	log     zerolog.Logger
}

// NewAttendanceService creates an AttendanceService.
func NewAttendanceService(
	cat *catalog.Catalog,
	store repository.RegistrationStore,
	gen generator.Generator,
	log zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		catalog: cat,
		store:   store,
		gen:     gen,
		log:     log.With().Str("component", "attendance_service").Logger(),
	}
}

// Register records attendance for the lesson active at now. Idempotent: a
// repeat call returns the existing record unchanged, with no second
// extra-assignment generation and no second persist. The record is flushed
// to durable storage before success is returned.
func (s *AttendanceService) Register(ctx context.Context, userID, studentName string, now time.Time) (*model.RegistrationOutcome, error) {
	lesson := s.catalog.Current(now)
	if lesson == nil {
		return nil, ErrNoActiveLesson
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, err := s.store.Get(ctx, userID, lesson.Date); err == nil {
		return &model.RegistrationOutcome{
			Record:            existing,
			LessonDate:        lesson.Date,
			AlreadyRegistered: true,
			Late:              existing.ExtraAssignment != "",
		}, nil
	} else if !errors.Is(err, repository.ErrRegistrationNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrRegistrationPersist, err)
	}

	start, _, err := lesson.Window(now.Location())
	if err != nil {
		return nil, fmt.Errorf("lesson window: %w", err)
	}

	// Exactly at start+threshold is still on time.
	late := now.Sub(start) > config.LateThreshold

	rec := &model.RegistrationRecord{
		RegistrationTime: now,
		Topic:            lesson.Topic,
		Assignment:       lesson.Assignment,
		StudentName:      studentName,
	}

	if late {
		topic := "Harder follow-up assignment on the topic: " + lesson.Topic
		task := generator.SafeTask(ctx, s.gen, topic, s.log)
		rec.ExtraAssignment = task.Flatten()
		s.log.Info().
			Str("user_id", userID).
			Str("lesson_date", lesson.Date).
			Dur("late_by", now.Sub(start)).
			Msg("Late registration, extra assignment generated")
	}

	if err := s.store.Put(ctx, userID, lesson.Date, rec); err != nil {
		if errors.Is(err, repository.ErrRegistrationExists) {
			// Lost a race against a concurrent register for the same key;
			// the winner's record is the outcome.
			existing, getErr := s.store.Get(ctx, userID, lesson.Date)
			if getErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrRegistrationPersist, getErr)
			}
			return &model.RegistrationOutcome{
				Record:            existing,
				LessonDate:        lesson.Date,
				AlreadyRegistered: true,
				Late:              existing.ExtraAssignment != "",
			}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRegistrationPersist, err)
	}

	return &model.RegistrationOutcome{
		Record:     rec,
		LessonDate: lesson.Date,
		Late:       late,
	}, nil
}
