package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/models"
)

// AIService proxies an OpenAI-compatible chat completions endpoint to
// generate, validate and enhance multiple choice questions.
type AIService struct {
	Client  *http.Client
	BaseURL string
	APIKey  string
	Model   string
}

func NewAIService(baseURL, apiKey, model string) *AIService {
	return &AIService{
		Client: &http.Client{
			Timeout: 120 * time.Second, // LLM responses can be slow
		},
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   model,
	}
}

type ChatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []ChatCompletionMessage `json:"messages"`
	Stream      bool                    `json:"stream"`
	Temperature *float64                `json:"temperature,omitempty"`
	MaxTokens   *int                    `json:"max_tokens,omitempty"`
}

type ChatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message ChatCompletionMessage `json:"message"`
	} `json:"choices"`
}

type GeneratedQuestion struct {
	Question string `json:"question"`
	ChoiceA  string `json:"choice_A"`
	ChoiceB  string `json:"choice_B"`
	ChoiceC  string `json:"choice_C"`
	ChoiceD  string `json:"choice_D"`
	Answer   string `json:"answer"`
}

type ValidationResult struct {
	IsValid  bool   `json:"isValid"`
	Feedback string `json:"feedback"`
}

const questionShape = `{
  "question": "the question text",
  "choice_A": "option A",
  "choice_B": "option B",
  "choice_C": "option C",
  "choice_D": "option D",
  "answer": "the correct option (A, B, C, or D)"
}`

// GenerateQuestion asks the model for one question on a topic, optionally
// carrying context from previously generated questions so it does not
// repeat itself.
func (a *AIService) GenerateQuestion(ctx context.Context, topic, difficulty, priorContext string) (*GeneratedQuestion, error) {
	prompt := fmt.Sprintf(`Generate a multiple choice question about %s with difficulty level %s.
Context from previous questions: %s
Return the question and 4 options (A, B, C, D) in JSON format with the following structure:
%s`, topic, difficulty, priorContext, questionShape)

	var question GeneratedQuestion
	if err := a.completeJSON(ctx, prompt, &question); err != nil {
		return nil, err
	}
	modelQuestion := question.toModel()
	if err := modelQuestion.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return &question, nil
}

// GenerateQuestions produces a full question set for quiz creation.
func (a *AIService) GenerateQuestions(ctx context.Context, topic, grade string, count int) ([]models.Question, error) {
	prompt := fmt.Sprintf(`You are a teaching assistant tasked with creating %d multiple choice questions on the topic %s with 4 choices (A, B, C, D).
Keep the difficulty appropriate for a class %s student.
Return JSON in the format:
{"questions": [%s]}
Only include the questions in your answer, nothing else.`, count, topic, grade, questionShape)

	var parsed struct {
		Questions []GeneratedQuestion `json:"questions"`
	}
	if err := a.completeJSON(ctx, prompt, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Questions) != count {
		return nil, fmt.Errorf("%w: asked for %d questions, got %d", ErrGeneration, count, len(parsed.Questions))
	}

	questions := make([]models.Question, len(parsed.Questions))
	for i, gq := range parsed.Questions {
		q := gq.toModel()
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrGeneration, i, err)
		}
		questions[i] = q
	}
	return questions, nil
}

// ValidateQuestion asks the model whether a question is well-formed and
// answerable. The outbound call is the only side effect.
func (a *AIService) ValidateQuestion(ctx context.Context, question string, options []string, correctAnswer string) (*ValidationResult, error) {
	prompt := fmt.Sprintf(`Validate this multiple choice question:
Question: %s
Options: %s
Correct Answer: %s

Return a JSON response with:
{
  "isValid": boolean,
  "feedback": "feedback message if invalid, empty string if valid"
}`, question, strings.Join(options, ", "), correctAnswer)

	var result ValidationResult
	if err := a.completeJSON(ctx, prompt, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// EnhanceQuestion asks the model for a clearer rewrite of a question.
func (a *AIService) EnhanceQuestion(ctx context.Context, question string, options []string, correctAnswer string) (*GeneratedQuestion, error) {
	prompt := fmt.Sprintf(`Enhance this multiple choice question to make it clearer and more effective:
Question: %s
Options: %s
Correct Answer: %s

Return a JSON response with the enhanced question in the same format:
%s`, question, strings.Join(options, ", "), correctAnswer, questionShape)

	var enhanced GeneratedQuestion
	if err := a.completeJSON(ctx, prompt, &enhanced); err != nil {
		return nil, err
	}
	return &enhanced, nil
}

// completeJSON sends one user message and decodes the model's reply into
// out. A reply that cannot be parsed as the demanded shape surfaces as
// ErrGeneration; it is never silently defaulted.
func (a *AIService) completeJSON(ctx context.Context, prompt string, out interface{}) error {
	request := ChatCompletionRequest{
		Model: a.Model,
		Messages: []ChatCompletionMessage{
			{Role: "user", Content: prompt},
		},
		Stream: false,
	}

	body, err := json.Marshal(request)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.APIKey)
	}

	resp, err := a.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: upstream returned status %d", ErrGeneration, resp.StatusCode)
	}

	var completion ChatCompletionResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if len(completion.Choices) == 0 {
		return fmt.Errorf("%w: empty completion", ErrGeneration)
	}

	content := ExtractJSON(completion.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return nil
}

// ExtractJSON strips markdown code fences models like to wrap JSON in.
func ExtractJSON(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.Trim(strings.TrimSpace(content), "`")
}

func (gq GeneratedQuestion) toModel() models.Question {
	return models.Question{
		Text:    gq.Question,
		ChoiceA: gq.ChoiceA,
		ChoiceB: gq.ChoiceB,
		ChoiceC: gq.ChoiceC,
		ChoiceD: gq.ChoiceD,
		Answer:  strings.ToUpper(strings.TrimSpace(gq.Answer)),
	}
}
