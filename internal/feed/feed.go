package feed

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"

	"newsradar/internal/logger"
	"newsradar/internal/metrics"
)

// Entry is one normalized feed item. Title doubles as the join key through
// the rest of the pipeline, so it is never mutated after this point.
type Entry struct {
	Title     string
	Link      string
	Published time.Time
}

// Source fetches location-scoped headlines from the configured search feed.
type Source struct {
	cfg    *SearchConfig
	parser *gofeed.Parser
	now    func() time.Time
}

func NewSource(cfg *SearchConfig) *Source {
	return &Source{
		cfg:    cfg,
		parser: gofeed.NewParser(),
		now:    time.Now,
	}
}

// SearchURL builds the provider query URL for a location. url.Values encodes
// spaces as '+', which is what the provider expects.
func (s *Source) SearchURL(location string) string {
	v := url.Values{}
	v.Set("q", location)
	v.Set("hl", s.cfg.Language)
	v.Set("gl", s.cfg.Country)
	v.Set("ceid", s.cfg.Edition)
	return s.cfg.BaseURL + "?" + v.Encode()
}

// Fetch returns entries published within the last days days, in feed order.
// Entries without a parsable timestamp are dropped rather than assumed
// fresh. A fetch or parse failure yields an empty slice plus the error;
// callers treat that as zero results.
func (s *Source) Fetch(ctx context.Context, location string, days int) ([]Entry, error) {
	feedURL := s.SearchURL(location)

	parsed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch feed for %q: %w", location, err)
	}

	metrics.Global.AddEntriesFetched(int64(len(parsed.Items)))

	cutoff := s.now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
	entries := make([]Entry, 0, len(parsed.Items))

	for _, item := range parsed.Items {
		published, ok := publishedTime(item)
		if !ok {
			logger.Debug("dropping entry without timestamp", "title", item.Title)
			metrics.Global.AddUndatedDropped(1)
			continue
		}
		if published.Before(cutoff) {
			metrics.Global.AddStaleDropped(1)
			continue
		}

		entries = append(entries, Entry{
			Title:     cleanTitle(item.Title),
			Link:      item.Link,
			Published: published,
		})
	}

	logger.Debug("feed fetched", "location", location, "items", len(parsed.Items), "fresh", len(entries))
	return entries, nil
}

func publishedTime(item *gofeed.Item) (time.Time, bool) {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC(), true
	}
	if item.Published != "" {
		if t, err := dateparse.ParseAny(item.Published); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// cleanTitle trims a feed title and renders any embedded markup or entities
// to plain text. Most titles pass through untouched.
func cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	if !strings.ContainsAny(title, "<&") {
		return title
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(title))
	if err != nil {
		return title
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
