package generator

import "github.com/stemsi/lessonlab-backend/internal/model"

// Normalize validates generated content against the declared schema and
// fills documented defaults: a nil task becomes the full fallback task, and
// a task with no examples gets a single neutral placeholder example so
// verification always has at least one case.
func Normalize(task *model.TaskSpec, topic string) *model.TaskSpec {
	if task == nil {
		return FallbackTask(topic)
	}
	if task.Title == "" {
		task.Title = "Task on topic: " + topic
	}
	if len(task.Examples) == 0 {
		task.Examples = []model.TaskExample{placeholderExample()}
	}
	return task
}

// FallbackTask is the safe default handed out when the content generator is
// unavailable or returns malformed data.
func FallbackTask(topic string) *model.TaskSpec {
	return &model.TaskSpec{
		Title:       "Task on topic: " + topic,
		Description: "Write a program that demonstrates your understanding of the topic.",
		Requirements: []string{
			"Put the solution in a separate file",
			"Document the code",
			"Test the program on several inputs",
			"Follow the style guide",
		},
		Examples: []model.TaskExample{placeholderExample()},
		Steps: []string{
			"Create a new source file",
			"Write the required code",
			"Run the program",
			"Check the output is correct",
		},
	}
}

func placeholderExample() model.TaskExample {
	return model.TaskExample{
		Input:  "sample input",
		Output: "sample output",
	}
}
