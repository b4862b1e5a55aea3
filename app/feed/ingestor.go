package feed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

type Ingestor struct {
	url        string
	httpClient *http.Client
	parser     *Parser
	builder    *Builder
	userAgent  string
	timeout    time.Duration
}

func NewIngestor(url string, httpClient *http.Client, parser *Parser, builder *Builder, userAgent string, timeout time.Duration) *Ingestor {
	return &Ingestor{
		url:        url,
		httpClient: httpClient,
		parser:     parser,
		builder:    builder,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

func (i *Ingestor) URL() string {
	return i.url
}

// Ingest never fails: any fetch or parse problem is logged and an empty
// collection is returned. The ingest task calls Collect instead, since an
// empty result must not replace the current generation.
func (i *Ingestor) Ingest(ctx context.Context) []Record {
	records, err := i.Collect(ctx)
	if err != nil {
		slog.Error("Feed ingestion failed", "url", i.url, "error", err)
		return []Record{}
	}
	return records
}

// Collect fetches and parses the feed, building one record per item in
// document order. Unlike Ingest it reports failures, so the caller can keep
// the previous generation.
func (i *Ingestor) Collect(ctx context.Context) ([]Record, error) {
	data, err := i.fetchFeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	entries, err := i.parser.Run(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		records = append(records, i.builder.Build(entry))
	}

	return records, nil
}

func (i *Ingestor) fetchFeed(ctx context.Context) ([]byte, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", i.userAgent)

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
