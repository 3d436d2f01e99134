package generator

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/stemsi/lessonlab-backend/internal/config"
	"github.com/stemsi/lessonlab-backend/internal/model"
)

// CachedGenerator decorates a Generator with a Redis cache for quizzes, so
// every student taking the quiz in the same lesson window sees the same
// questions and the LLM is hit once per topic. Tasks are deliberately not
// cached: each task request should produce a fresh exercise.
type CachedGenerator struct {
	inner Generator
	rdb   *redis.Client
	ttl   time.Duration
	log   zerolog.Logger
}

// NewCachedGenerator wraps inner with a quiz cache.
func NewCachedGenerator(inner Generator, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *CachedGenerator {
	return &CachedGenerator{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
		log:   log.With().Str("component", "generator_cache").Logger(),
	}
}

// GenerateTask implements Generator (passthrough).
func (g *CachedGenerator) GenerateTask(ctx context.Context, topic string) (*model.TaskSpec, error) {
	return g.inner.GenerateTask(ctx, topic)
}

// GenerateQuiz implements Generator with read-through caching. Redis errors
// degrade to a direct generator call; an empty quiz is never cached.
func (g *CachedGenerator) GenerateQuiz(ctx context.Context, topic string, count int) ([]model.QuizQuestion, error) {
	key := config.CacheKey.QuizTopicKey(topic, count)

	if raw, err := g.rdb.Get(ctx, key).Result(); err == nil {
		var questions []model.QuizQuestion
		if err := json.Unmarshal([]byte(raw), &questions); err == nil && len(questions) > 0 {
			return questions, nil
		}
		g.log.Warn().Str("key", key).Msg("Discarding unreadable cached quiz")
	} else if err != redis.Nil {
		g.log.Warn().Err(err).Msg("Quiz cache read failed")
	}

	questions, err := g.inner.GenerateQuiz(ctx, topic, count)
	if err != nil || len(questions) == 0 {
		return questions, err
	}

	if raw, err := json.Marshal(questions); err == nil {
		if err := g.rdb.Set(ctx, key, raw, g.ttl).Err(); err != nil {
			g.log.Warn().Err(err).Msg("Quiz cache write failed")
		}
	}
	return questions, nil
}
