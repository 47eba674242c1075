package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/models"
)

const timeoutRequest = 30 * time.Second

// HTTPClient talks to the quiz server's JSON API. It is the transport
// behind the player session; all methods are safe for one goroutine.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a client for a server base URL, e.g.
// "http://localhost:8080".
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeoutRequest},
	}
}

// GetQuiz fetches the player view of a quiz (no password, no answers).
func (c *HTTPClient) GetQuiz(ctx context.Context, quizID string) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := c.do(ctx, http.MethodGet, "/api/quizzes/"+quizID, nil, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// StartQuiz verifies the password server-side and registers the
// respondent. Returns nil on a match.
func (c *HTTPClient) StartQuiz(ctx context.Context, quizID, name, password string) error {
	params := map[string]interface{}{
		"name":     name,
		"password": password,
	}
	return c.do(ctx, http.MethodPost, "/api/quizzes/"+quizID+"/start", params, nil)
}

// SubmitAnswers sends the ordered answer labels for scoring. Unanswered
// questions are sent as empty labels.
func (c *HTTPClient) SubmitAnswers(ctx context.Context, quizID, name string, answers []string) (*models.ScoreResult, error) {
	params := map[string]interface{}{
		"name":    name,
		"answers": answers,
	}
	var result models.ScoreResult
	if err := c.do(ctx, http.MethodPost, "/api/quizzes/"+quizID+"/submit-answers", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetLeaderboard fetches the scored attempts for a quiz.
func (c *HTTPClient) GetLeaderboard(ctx context.Context, quizID string) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	if err := c.do(ctx, http.MethodGet, "/api/quizzes/"+quizID+"/leaderboard", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FetchContent pulls supplementary videos and articles for a topic.
// Both lookups are best-effort.
func (c *HTTPClient) FetchContent(ctx context.Context, topic string, numResults int) (*models.SupplementaryContent, error) {
	params := map[string]interface{}{
		"topics":      []string{topic},
		"num_results": numResults,
	}

	content := &models.SupplementaryContent{
		Videos:   []models.ContentItem{},
		Articles: []models.ContentItem{},
	}

	var videos map[string][]models.ContentItem
	if err := c.do(ctx, http.MethodPost, "/api/content/youtube", params, &videos); err == nil {
		if items, ok := videos[topic]; ok {
			content.Videos = items
		}
	}

	var articles map[string][]models.ContentItem
	if err := c.do(ctx, http.MethodPost, "/api/content/articles", params, &articles); err == nil {
		if items, ok := articles[topic]; ok {
			content.Articles = items
		}
	}

	return content, nil
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, params, out interface{}) error {
	var body io.Reader
	if params != nil {
		raw, err := json.Marshal(params)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if params != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
