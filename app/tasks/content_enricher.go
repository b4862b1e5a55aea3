package tasks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lysyi3m/turbo-items/app/feed"
)

// ContentEnricher fetches every record's link and stores the readable text
// of the page in ArticleText. It runs before a generation is published.
type ContentEnricher struct {
	httpClient       *http.Client
	contentExtractor *feed.ContentExtractor
	userAgent        string
	timeout          time.Duration
	limit            int
}

func NewContentEnricher(httpClient *http.Client, contentExtractor *feed.ContentExtractor, userAgent string, timeout time.Duration, limit int) *ContentEnricher {
	return &ContentEnricher{
		httpClient:       httpClient,
		contentExtractor: contentExtractor,
		userAgent:        userAgent,
		timeout:          timeout,
		limit:            max(limit, 1),
	}
}

// Run fills ArticleText in place. Failed records keep their fallback.
func (e *ContentEnricher) Run(ctx context.Context, records []feed.Record) (int, int) {
	results := make([]error, len(records))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)

	for i := range records {
		g.Go(func() error {
			text, err := e.extractContentForRecord(gctx, records[i].Link)
			if err != nil {
				slog.Debug("Failed to extract content for record", "id", records[i].ID, "url", records[i].Link, "error", err)
				results[i] = err
				return nil
			}
			records[i].ArticleText = text
			return nil
		})
	}
	_ = g.Wait()

	success, failed := 0, 0
	for _, err := range results {
		if err != nil {
			failed++
		} else {
			success++
		}
	}
	return success, failed
}

func (e *ContentEnricher) extractContentForRecord(ctx context.Context, link string) (string, error) {
	parsed, err := url.Parse(link)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return "", fmt.Errorf("record has no fetchable link")
	}

	data, err := e.fetchArticleContent(ctx, link)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article content: %w", err)
	}

	text, err := e.contentExtractor.Run(data, link)
	if err != nil {
		return "", fmt.Errorf("failed to extract content: %w", err)
	}

	return text, nil
}

func (e *ContentEnricher) fetchArticleContent(ctx context.Context, link string) ([]byte, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", e.userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
