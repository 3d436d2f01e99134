// Package generator produces exercise tasks and quizzes for a lesson topic
// through an external LLM chat API. The rest of the engine treats it as an
// opaque capability that may fail or return malformed data; helpers here
// substitute the documented defaults so callers always get usable content.
package generator

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/stemsi/lessonlab-backend/internal/model"
)

// Generator produces task and quiz content for a lesson topic.
type Generator interface {
	// GenerateTask returns a task for the topic. The result may still need
	// Normalize before use; an error means the content could not be obtained.
	GenerateTask(ctx context.Context, topic string) (*model.TaskSpec, error)

	// GenerateQuiz returns up to count multiple-choice questions for the
	// topic. It may return fewer than requested, including zero.
	GenerateQuiz(ctx context.Context, topic string, count int) ([]model.QuizQuestion, error)
}

// SafeTask obtains a task for the topic, degrading to the documented
// fallback on generator failure instead of propagating the error. The
// returned task always has at least one example.
func SafeTask(ctx context.Context, g Generator, topic string, log zerolog.Logger) *model.TaskSpec {
	task, err := g.GenerateTask(ctx, topic)
	if err != nil {
		log.Warn().Err(err).Str("topic", topic).Msg("Task generation failed, using fallback")
		task = nil
	}
	return Normalize(task, topic)
}
