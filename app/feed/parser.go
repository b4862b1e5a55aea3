package feed

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

var (
	ErrNotRSS    = errors.New("document is not an RSS feed")
	ErrNoEntries = errors.New("feed has no items")
)

const (
	turboPrefix  = "turbo"
	turboContent = "content"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses an RSS document and returns its items in document order.
func (p *Parser) Run(data []byte) ([]RawEntry, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	if feed.FeedType != "rss" {
		return nil, fmt.Errorf("%w: got %q", ErrNotRSS, feed.FeedType)
	}

	if len(feed.Items) == 0 {
		return nil, ErrNoEntries
	}

	entries := make([]RawEntry, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entries = append(entries, p.toRawEntry(item))
	}

	return entries, nil
}

func (p *Parser) toRawEntry(item *gofeed.Item) RawEntry {
	return RawEntry{
		Title:   optional(item.Title),
		Link:    optional(item.Link),
		PubDate: optional(item.Published),
		Content: optional(p.turboContent(item.Extensions)),
	}
}

func (p *Parser) turboContent(extensions ext.Extensions) string {
	values := extensions[turboPrefix][turboContent]
	if len(values) == 0 {
		return ""
	}
	return values[0].Value
}

func optional(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
