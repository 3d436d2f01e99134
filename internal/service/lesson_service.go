package service

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/stemsi/lessonlab-backend/internal/catalog"
	"github.com/stemsi/lessonlab-backend/internal/model"
)

// LessonService resolves lessons from the catalog for the transport layer.
type LessonService struct {
	catalog *catalog.Catalog
	log     zerolog.Logger
}

// NewLessonService creates a LessonService.
func NewLessonService(cat *catalog.Catalog, log zerolog.Logger) *LessonService {
	return &LessonService{
		catalog: cat,
		log:     log.With().Str("component", "lesson_service").Logger(),
	}
}

// Resolve returns the active lesson for now, or the next upcoming one.
// Returns ErrNoActiveLesson when the catalog is exhausted.
func (s *LessonService) Resolve(now time.Time) (*model.LessonRecord, error) {
	lesson := s.catalog.Resolve(now)
	if lesson == nil {
		return nil, ErrNoActiveLesson
	}
	return lesson, nil
}
