package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func chatCompletionStub(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerateQuestion(t *testing.T) {
	srv := chatCompletionStub(t, `{
		"question": "What is the capital of France?",
		"choice_A": "Paris",
		"choice_B": "London",
		"choice_C": "Berlin",
		"choice_D": "Madrid",
		"answer": "A"
	}`)
	defer srv.Close()

	ai := NewAIService(srv.URL, "test-key", "test-model")
	question, err := ai.GenerateQuestion(context.Background(), "geography", "easy", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if question.Question != "What is the capital of France?" {
		t.Errorf("unexpected question text %q", question.Question)
	}
	if question.Answer != "A" {
		t.Errorf("unexpected answer %q", question.Answer)
	}
}

func TestGenerateQuestion_CodeFencedJSON(t *testing.T) {
	srv := chatCompletionStub(t, "```json\n{\"question\": \"Q?\", \"choice_A\": \"1\", \"choice_B\": \"2\", \"choice_C\": \"3\", \"choice_D\": \"4\", \"answer\": \"B\"}\n```")
	defer srv.Close()

	ai := NewAIService(srv.URL, "", "test-model")
	question, err := ai.GenerateQuestion(context.Background(), "math", "medium", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if question.ChoiceB != "2" {
		t.Errorf("unexpected choice B %q", question.ChoiceB)
	}
}

func TestGenerateQuestion_UnparseableResponse(t *testing.T) {
	srv := chatCompletionStub(t, "Sorry, I cannot help with that.")
	defer srv.Close()

	ai := NewAIService(srv.URL, "", "test-model")
	_, err := ai.GenerateQuestion(context.Background(), "math", "medium", "")
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("expected ErrGeneration, got %v", err)
	}
}

func TestGenerateQuestion_InvalidShape(t *testing.T) {
	// Parseable JSON, but the answer label does not match any choice.
	srv := chatCompletionStub(t, `{
		"question": "Q?",
		"choice_A": "1",
		"choice_B": "2",
		"choice_C": "3",
		"choice_D": "4",
		"answer": "Z"
	}`)
	defer srv.Close()

	ai := NewAIService(srv.URL, "", "test-model")
	_, err := ai.GenerateQuestion(context.Background(), "math", "easy", "")
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("expected ErrGeneration for invalid answer label, got %v", err)
	}
}

func TestGenerateQuestions_CountMismatch(t *testing.T) {
	srv := chatCompletionStub(t, `{"questions": [{
		"question": "Only one?",
		"choice_A": "1",
		"choice_B": "2",
		"choice_C": "3",
		"choice_D": "4",
		"answer": "A"
	}]}`)
	defer srv.Close()

	ai := NewAIService(srv.URL, "", "test-model")
	_, err := ai.GenerateQuestions(context.Background(), "math", "5", 3)
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("expected ErrGeneration on count mismatch, got %v", err)
	}
}

func TestGenerateQuestion_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ai := NewAIService(srv.URL, "", "test-model")
	_, err := ai.GenerateQuestion(context.Background(), "math", "easy", "")
	if !errors.Is(err, ErrGeneration) {
		t.Errorf("expected ErrGeneration on upstream failure, got %v", err)
	}
}

func TestValidateQuestion(t *testing.T) {
	srv := chatCompletionStub(t, `{"isValid": false, "feedback": "Two options are identical."}`)
	defer srv.Close()

	ai := NewAIService(srv.URL, "", "test-model")
	result, err := ai.ValidateQuestion(context.Background(), "Q?", []string{"1", "1", "3", "4"}, "A")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid {
		t.Error("expected isValid=false")
	}
	if result.Feedback == "" {
		t.Error("expected feedback for an invalid question")
	}
}

func TestExtractJSON(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		expected string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding space", "  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractJSON(tc.in); got != tc.expected {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tc.in, got, tc.expected)
			}
		})
	}
}
