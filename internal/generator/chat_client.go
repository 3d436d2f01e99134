package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stemsi/lessonlab-backend/internal/model"
)

const systemPrompt = `You are a programming teaching assistant. You generate exercises for students.
Respond with JSON only, no prose. A task has the shape:
{"title": "...", "description": "...", "requirements": ["..."], "examples": [{"input": "...", "output": "..."}], "steps": ["..."]}
The task must match the lesson topic, have clear requirements, concrete example inputs and outputs, and be solvable within one lesson.`

// ChatClient talks to an OpenAI-style chat-completions endpoint and parses
// the JSON the model is instructed to emit.
type ChatClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewChatClient creates a generator client for the given endpoint.
func NewChatClient(baseURL, apiKey, modelName string, timeout time.Duration) *ChatClient {
	return &ChatClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   modelName,
		client:  &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GenerateTask implements Generator.
func (c *ChatClient) GenerateTask(ctx context.Context, topic string) (*model.TaskSpec, error) {
	prompt := fmt.Sprintf(`Generate an exercise for the topic: %s

Return JSON of the shape:
{"title": "...", "description": "...", "requirements": ["..."], "examples": [{"input": "...", "output": "..."}], "steps": ["..."]}

The examples must contain concrete input and output data.`, topic)

	content, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var task model.TaskSpec
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &task); err != nil {
		return nil, fmt.Errorf("parse task payload: %w", err)
	}
	if len(task.Examples) == 0 {
		return nil, fmt.Errorf("task payload has no examples")
	}
	return &task, nil
}

type quizPayload struct {
	Questions []struct {
		Q       string   `json:"q"`
		A       []string `json:"a"`
		Correct int      `json:"correct"`
	} `json:"questions"`
}

// GenerateQuiz implements Generator. Malformed questions are dropped, so the
// result may be shorter than requested.
func (c *ChatClient) GenerateQuiz(ctx context.Context, topic string, count int) ([]model.QuizQuestion, error) {
	prompt := fmt.Sprintf(`Generate a quiz of %d questions for the topic: %s.
Each question has 4 answer choices, exactly one of them correct.
Return JSON of the shape:
{"questions": [{"q": "Question?", "a": ["choice1", "choice2", "choice3", "choice4"], "correct": 0}]}`, count, topic)

	content, err := c.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var payload quizPayload
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &payload); err != nil {
		return nil, fmt.Errorf("parse quiz payload: %w", err)
	}

	questions := make([]model.QuizQuestion, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		if q.Q == "" || len(q.A) == 0 || q.Correct < 0 || q.Correct >= len(q.A) {
			continue
		}
		questions = append(questions, model.QuizQuestion{
			Prompt:       q.Q,
			Choices:      q.A,
			CorrectIndex: q.Correct,
		})
		if len(questions) == count {
			break
		}
	}
	return questions, nil
}

func (c *ChatClient) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generator returned status %d", resp.StatusCode)
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("generator returned no choices")
	}
	return payload.Choices[0].Message.Content, nil
}

// stripCodeFence removes a surrounding markdown code fence, which chat models
// tend to wrap JSON in despite instructions.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
