// Package pipeline chains feed fetch, oracle deduplication, classification
// and relevance filtering into one analysis run. Runs keep no state between
// invocations; every Analyze call starts from a fresh feed fetch.
package pipeline

import (
	"context"
	"strings"
	"time"

	"newsradar/internal/classify"
	"newsradar/internal/dedup"
	"newsradar/internal/feed"
	"newsradar/internal/logger"
	"newsradar/internal/metrics"
)

// Entry is the terminal artifact of an analysis run. Entries returned to
// callers always carry an allow-listed category and an actionable threat.
type Entry struct {
	Title     string
	Link      string
	Published time.Time
	Category  string
	Threat    classify.ThreatLevel
}

// DangerEntry is one headline with its coarse danger rating.
type DangerEntry struct {
	Title     string
	Link      string
	Published time.Time
	Danger    classify.DangerRating
}

// Source abstracts the feed fetch so the pipeline can be exercised without
// the network.
type Source interface {
	Fetch(ctx context.Context, location string, days int) ([]feed.Entry, error)
}

type Analyzer struct {
	source     Source
	dedup      *dedup.Deduplicator
	classifier *classify.Classifier
	batchLimit int
}

// New builds an Analyzer. batchLimit caps how many titles one dedup oracle
// call may carry; titles beyond it never reach the classifier.
func New(source Source, d *dedup.Deduplicator, c *classify.Classifier, batchLimit int) *Analyzer {
	return &Analyzer{
		source:     source,
		dedup:      d,
		classifier: c,
		batchLimit: batchLimit,
	}
}

// Analyze runs fetch, dedupe, per-title classification, the relevance
// filter and the result cap, in that order. Feed and oracle failures
// degrade the result set; they never abort the run. The cap short-circuits
// classification, bounding total oracle calls.
func (a *Analyzer) Analyze(ctx context.Context, location string, days, resultCap int) []Entry {
	start := time.Now()
	defer func() {
		metrics.Global.RecordRun(time.Since(start))
	}()

	entries, err := a.source.Fetch(ctx, location, days)
	if err != nil {
		// Indistinguishable from "no news" for the caller; reported here.
		logger.Warn("feed fetch failed", "location", location, "error", err)
	}
	results := make([]Entry, 0, resultCap)
	if len(entries) == 0 {
		return results
	}

	// Deduplicator works on bare titles; keep a lookup to re-attach link
	// and timestamp afterwards. Exact repeats collapse here already.
	byTitle := make(map[string]feed.Entry, len(entries))
	titles := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, dup := byTitle[e.Title]; dup {
			continue
		}
		byTitle[e.Title] = e
		titles = append(titles, e.Title)
	}

	kept := a.dedup.Dedupe(ctx, titles, a.batchLimit)

	for _, title := range kept {
		if resultCap > 0 && len(results) >= resultCap {
			break
		}

		src, ok := byTitle[title]
		if !ok {
			continue
		}

		r := a.classifier.Classify(ctx, title, location)
		if strings.EqualFold(r.Category, "nan") {
			// Legacy marker some models emit for repeated headlines. Kept
			// as its own check, separate from the NONE threat filter.
			continue
		}
		if !classify.Allowed(r.Category) {
			logger.Debug("dropping entry with unrecognized category", "title", title, "category", r.Category)
			continue
		}
		if !r.Threat.Actionable() {
			continue
		}

		results = append(results, Entry{
			Title:     title,
			Link:      src.Link,
			Published: src.Published,
			Category:  r.Category,
			Threat:    r.Threat,
		})
	}

	metrics.Global.AddResultsReturned(int64(len(results)))
	logger.Info("analysis complete", "location", location, "days", days, "results", len(results))
	return results
}

// ScanDanger rates every fresh headline for the location with the coarse
// SAFE/WARNING/DANGER scale. Unlike Analyze there is no deduplication:
// the scan reports on each headline individually.
func (a *Analyzer) ScanDanger(ctx context.Context, location string, days, limit int) []DangerEntry {
	entries, err := a.source.Fetch(ctx, location, days)
	if err != nil {
		logger.Warn("feed fetch failed", "location", location, "error", err)
	}

	out := make([]DangerEntry, 0, len(entries))
	for _, e := range entries {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, DangerEntry{
			Title:     e.Title,
			Link:      e.Link,
			Published: e.Published,
			Danger:    a.classifier.RateDanger(ctx, e.Title, location),
		})
	}
	return out
}
