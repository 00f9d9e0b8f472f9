package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"

	"aquaeco/internal/logger"
)

// Item is one news entry shown on the dashboard
type Item struct {
	Title     string
	Link      string
	Published time.Time
}

// Fetcher retrieves the community news feed
type Fetcher struct {
	client *resty.Client
	parser *gofeed.Parser
	log    *logger.Logger
}

// NewFetcher creates a news feed fetcher
func NewFetcher(timeout time.Duration) *Fetcher {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	client.SetRetryCount(0)

	return &Fetcher{
		client: client,
		parser: gofeed.NewParser(),
		log:    logger.WithComponent("feed"),
	}
}

// Fetch retrieves and parses the feed, returning at most limit items,
// newest first as published by the feed
func (f *Fetcher) Fetch(ctx context.Context, url string, limit int) ([]Item, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		Get(url)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch news feed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("news feed returned status %d", resp.StatusCode())
	}

	parsed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	items := make([]Item, 0, limit)
	for _, entry := range parsed.Items {
		if len(items) >= limit {
			break
		}
		item := Item{
			Title: entry.Title,
			Link:  entry.Link,
		}
		if entry.PublishedParsed != nil {
			item.Published = *entry.PublishedParsed
		}
		items = append(items, item)
	}

	f.log.Debug("news feed fetched", map[string]interface{}{"url": url, "items": len(items)})
	return items, nil
}
