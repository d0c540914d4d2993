package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func rssDoc(items ...string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>search results</title>
<link>https://example.com</link>
%s
</channel>
</rss>`, strings.Join(items, "\n"))
}

func rssItem(title, link, pubDate string) string {
	var b strings.Builder
	b.WriteString("<item>")
	b.WriteString("<title>" + title + "</title>")
	b.WriteString("<link>" + link + "</link>")
	if pubDate != "" {
		b.WriteString("<pubDate>" + pubDate + "</pubDate>")
	}
	b.WriteString("</item>")
	return b.String()
}

func newTestSource(t *testing.T, doc string, now time.Time) (*Source, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, doc)
	}))
	t.Cleanup(ts.Close)

	s := NewSource(&SearchConfig{
		BaseURL:  ts.URL,
		Language: "en-IN",
		Country:  "IN",
		Edition:  "IN:en",
	})
	s.now = func() time.Time { return now }
	return s, ts
}

func TestSearchURL_EncodesLocation(t *testing.T) {
	s := NewSource(DefaultSearchConfig())
	got := s.SearchURL("New Delhi")

	if !strings.Contains(got, "q=New+Delhi") {
		t.Errorf("location not plus-encoded: %s", got)
	}
	for _, param := range []string{"hl=en-IN", "gl=IN", "ceid=IN%3Aen"} {
		if !strings.Contains(got, param) {
			t.Errorf("missing %s in %s", param, got)
		}
	}
}

func TestFetch_RecencyWindow(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	doc := rssDoc(
		rssItem("Fresh flood report", "https://example.com/1", now.Add(-12*time.Hour).Format(time.RFC1123Z)),
		rssItem("Stale story", "https://example.com/2", now.Add(-10*24*time.Hour).Format(time.RFC1123Z)),
		rssItem("Undated story", "https://example.com/3", ""),
	)

	s, _ := newTestSource(t, doc, now)
	entries, err := s.Fetch(context.Background(), "Chennai", 2)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(entries), entries)
	}
	e := entries[0]
	if e.Title != "Fresh flood report" {
		t.Errorf("got title %q", e.Title)
	}
	if e.Link != "https://example.com/1" {
		t.Errorf("got link %q", e.Link)
	}
	if e.Published.Before(now.Add(-2 * 24 * time.Hour)) {
		t.Errorf("entry older than window: %v", e.Published)
	}
}

func TestFetch_PreservesFeedOrder(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	doc := rssDoc(
		rssItem("first", "https://example.com/1", now.Add(-1*time.Hour).Format(time.RFC1123Z)),
		rssItem("second", "https://example.com/2", now.Add(-3*time.Hour).Format(time.RFC1123Z)),
		rssItem("third", "https://example.com/3", now.Add(-2*time.Hour).Format(time.RFC1123Z)),
	)

	s, _ := newTestSource(t, doc, now)
	entries, err := s.Fetch(context.Background(), "Chennai", 2)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries", len(entries))
	}
	for i, title := range want {
		if entries[i].Title != title {
			t.Errorf("index %d: got %q, want %q", i, entries[i].Title, title)
		}
	}
}

func TestFetch_TitleWhitespaceTrimmed(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	doc := rssDoc(
		rssItem("  padded title  ", "https://example.com/1", now.Add(-time.Hour).Format(time.RFC1123Z)),
	)

	s, _ := newTestSource(t, doc, now)
	entries, err := s.Fetch(context.Background(), "Chennai", 2)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "padded title" {
		t.Errorf("got %+v", entries)
	}
}

func TestFetch_FeedFailureYieldsEmptyPlusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer ts.Close()

	s := NewSource(&SearchConfig{BaseURL: ts.URL, Language: "en-IN", Country: "IN", Edition: "IN:en"})
	entries, err := s.Fetch(context.Background(), "Chennai", 2)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain title", "plain title"},
		{"  spaced  ", "spaced"},
		{"<b>Flood</b> hits city", "Flood hits city"},
		{"Roads closed &amp; trains delayed", "Roads closed & trains delayed"},
	}
	for _, tt := range tests {
		if got := cleanTitle(tt.in); got != tt.want {
			t.Errorf("cleanTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
