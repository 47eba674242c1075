package models

type ContentItem struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

type TopicsRequest struct {
	Topics     []string `json:"topics" binding:"required"`
	NumResults int      `json:"num_results"`
}

// SupplementaryContent enriches a result view. Either list may be empty
// when the upstream lookup failed; that never blocks the numeric result.
type SupplementaryContent struct {
	Videos   []ContentItem `json:"videos"`
	Articles []ContentItem `json:"articles"`
}
