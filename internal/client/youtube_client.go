package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// VideoMetadata holds the metadata resolved for a YouTube video
type VideoMetadata struct {
	Title        string `json:"title"`
	ChannelTitle string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// YouTubeClient resolves video metadata through the YouTube oEmbed endpoint
type YouTubeClient struct {
	oembedURL      string
	maxElapsedTime time.Duration
	httpClient     *http.Client
	logger         *zap.Logger
}

// NewYouTubeClient creates a new YouTube metadata client
func NewYouTubeClient(oembedURL string, timeout, maxElapsedTime time.Duration, logger *zap.Logger) *YouTubeClient {
	return &YouTubeClient{
		oembedURL:      oembedURL,
		maxElapsedTime: maxElapsedTime,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// GetVideoMetadata fetches metadata for a YouTube video ID, retrying
// transient failures with exponential backoff
func (c *YouTubeClient) GetVideoMetadata(ctx context.Context, youtubeID string) (*VideoMetadata, error) {
	requestURL := fmt.Sprintf("%s?url=%s&format=json",
		c.oembedURL,
		url.QueryEscape("https://www.youtube.com/watch?v="+youtubeID),
	)

	var metadata *VideoMetadata

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Warn("YouTube metadata request failed, retrying",
				zap.Error(err),
				zap.String("youtube_id", youtubeID))
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			// Fall through to decode
		case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnauthorized:
			// The video does not exist or is private; retrying won't help
			return backoff.Permanent(fmt.Errorf("video not found: %s", youtubeID))
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			c.logger.Warn("YouTube returned retryable status",
				zap.Int("status_code", resp.StatusCode),
				zap.String("youtube_id", youtubeID))
			return fmt.Errorf("youtube returned status code %d", resp.StatusCode)
		default:
			return backoff.Permanent(fmt.Errorf("youtube returned status code %d", resp.StatusCode))
		}

		var decoded VideoMetadata
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			c.logger.Error("Failed to decode oEmbed response", zap.Error(err))
			return backoff.Permanent(err)
		}

		metadata = &decoded
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = c.maxElapsedTime

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, err
	}

	return metadata, nil
}
