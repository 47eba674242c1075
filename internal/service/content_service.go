package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/rajuljha/ByteClub-AMUHACKS4.0/internal/models"
)

const defaultNumResults = 5

// ContentService fetches supplementary learning content (videos and
// articles) for quiz topics. Lookups are best-effort: a failed topic
// degrades to an empty list and is never allowed to fail the response.
type ContentService struct {
	Client           *http.Client
	YouTubeAPIKey    string
	ArticleSearchURL string
}

func NewContentService(youtubeAPIKey, articleSearchURL string) *ContentService {
	return &ContentService{
		Client:           &http.Client{Timeout: 15 * time.Second},
		YouTubeAPIKey:    youtubeAPIKey,
		ArticleSearchURL: articleSearchURL,
	}
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title      string `json:"title"`
			Thumbnails struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// FetchVideos searches the YouTube Data API per topic.
func (s *ContentService) FetchVideos(ctx context.Context, topics []string, numResults int) map[string][]models.ContentItem {
	if numResults <= 0 {
		numResults = defaultNumResults
	}
	results := make(map[string][]models.ContentItem, len(topics))
	for _, topic := range topics {
		items, err := s.searchYouTube(ctx, topic, numResults)
		if err != nil {
			log.Printf("youtube lookup failed for %q: %v", topic, err)
			items = []models.ContentItem{}
		}
		results[topic] = items
	}
	return results
}

func (s *ContentService) searchYouTube(ctx context.Context, topic string, numResults int) ([]models.ContentItem, error) {
	if s.YouTubeAPIKey == "" {
		return nil, fmt.Errorf("youtube API key not configured")
	}

	params := url.Values{}
	params.Set("q", topic)
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("maxResults", fmt.Sprintf("%d", numResults))
	params.Set("key", s.YouTubeAPIKey)

	var parsed youtubeSearchResponse
	if err := s.getJSON(ctx, "https://www.googleapis.com/youtube/v3/search?"+params.Encode(), &parsed); err != nil {
		return nil, err
	}

	items := make([]models.ContentItem, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.ID.VideoID == "" {
			continue
		}
		items = append(items, models.ContentItem{
			Title:     item.Snippet.Title,
			URL:       "https://www.youtube.com/watch?v=" + item.ID.VideoID,
			Thumbnail: item.Snippet.Thumbnails.High.URL,
		})
	}
	return items, nil
}

type duckDuckGoResponse struct {
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

// FetchArticles queries the DuckDuckGo instant answer API per topic.
func (s *ContentService) FetchArticles(ctx context.Context, topics []string, numResults int) map[string][]models.ContentItem {
	if numResults <= 0 {
		numResults = defaultNumResults
	}
	results := make(map[string][]models.ContentItem, len(topics))
	for _, topic := range topics {
		items, err := s.searchArticles(ctx, topic, numResults)
		if err != nil {
			log.Printf("article lookup failed for %q: %v", topic, err)
			items = []models.ContentItem{}
		}
		results[topic] = items
	}
	return results
}

func (s *ContentService) searchArticles(ctx context.Context, topic string, numResults int) ([]models.ContentItem, error) {
	params := url.Values{}
	params.Set("q", topic)
	params.Set("format", "json")
	params.Set("no_html", "1")

	var parsed duckDuckGoResponse
	if err := s.getJSON(ctx, s.ArticleSearchURL+"?"+params.Encode(), &parsed); err != nil {
		return nil, err
	}

	items := make([]models.ContentItem, 0, numResults)
	for _, rt := range parsed.RelatedTopics {
		if rt.Text == "" || rt.FirstURL == "" {
			continue
		}
		items = append(items, models.ContentItem{Title: rt.Text, URL: rt.FirstURL})
		if len(items) == numResults {
			break
		}
	}
	return items, nil
}

func (s *ContentService) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}
