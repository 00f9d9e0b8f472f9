package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Aquaponics News</title>
<item>
  <title>Tilapia stocking densities revisited</title>
  <link>https://example.com/tilapia</link>
  <pubDate>Mon, 25 Aug 2025 10:00:00 GMT</pubDate>
</item>
<item>
  <title>Biofilter maintenance checklist</title>
  <link>https://example.com/biofilter</link>
  <pubDate>Sun, 24 Aug 2025 09:00:00 GMT</pubDate>
</item>
<item>
  <title>Solar yield in cloudy climates</title>
  <link>https://example.com/solar</link>
  <pubDate>Sat, 23 Aug 2025 08:00:00 GMT</pubDate>
</item>
</channel>
</rss>`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssFixture))
	}))
	defer srv.Close()

	f := NewFetcher(5 * time.Second)
	items, err := f.Fetch(context.Background(), srv.URL, 2)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("Expected 2 items (limit applied), got %d", len(items))
	}
	if items[0].Title != "Tilapia stocking densities revisited" {
		t.Errorf("Unexpected first item: %s", items[0].Title)
	}
	if items[0].Link != "https://example.com/tilapia" {
		t.Errorf("Unexpected first link: %s", items[0].Link)
	}
	if items[0].Published.IsZero() {
		t.Error("Published date should be parsed")
	}
}

func TestFetchErrors(t *testing.T) {
	f := NewFetcher(2 * time.Second)
	ctx := context.Background()

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusGone)
		}))
		defer srv.Close()

		if _, err := f.Fetch(ctx, srv.URL, 5); err == nil {
			t.Error("Expected error for non-200 response, got nil")
		}
	})

	t.Run("invalid feed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("this is not a feed"))
		}))
		defer srv.Close()

		if _, err := f.Fetch(ctx, srv.URL, 5); err == nil {
			t.Error("Expected error for unparsable feed, got nil")
		}
	})
}
