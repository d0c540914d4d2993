package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"newsradar/internal/classify"
	"newsradar/internal/dedup"
	"newsradar/internal/feed"
	"newsradar/internal/oracle"
)

type fakeSource struct {
	entries []feed.Entry
	err     error
}

func (f *fakeSource) Fetch(ctx context.Context, location string, days int) ([]feed.Entry, error) {
	return f.entries, f.err
}

var published = time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

func entriesFor(titles ...string) []feed.Entry {
	out := make([]feed.Entry, 0, len(titles))
	for i, title := range titles {
		out = append(out, feed.Entry{
			Title:     title,
			Link:      "https://example.com/" + string(rune('a'+i)),
			Published: published,
		})
	}
	return out
}

// scriptedOracle answers dedup prompts with dedupResp and classification
// prompts from the classify map, keyed by headline substring.
type scriptedOracle struct {
	dedupResp string
	classify  map[string]string
	calls     int
}

func (s *scriptedOracle) Generate(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if strings.Contains(prompt, "deduplication") {
		return s.dedupResp, nil
	}
	for key, resp := range s.classify {
		if strings.Contains(prompt, key) {
			return resp, nil
		}
	}
	return "", errors.New("no scripted response")
}

func newAnalyzer(src Source, client oracle.Client) *Analyzer {
	return New(src, dedup.New(client), classify.New(client, nil), 25)
}

func TestAnalyze_FloodExample(t *testing.T) {
	src := &fakeSource{entries: entriesFor(
		"Flood hits Chennai",
		"Chennai flooding continues",
		"Local team wins match",
	)}
	o := &scriptedOracle{
		dedupResp: "T1\nT3",
		classify: map[string]string{
			"Flood hits Chennai": "Category: natural disaster\nThreat: HIGH",
			"Local team wins":    "Category: sports\nThreat: NONE",
		},
	}

	got := newAnalyzer(src, o).Analyze(context.Background(), "Chennai", 2, 6)

	if len(got) != 1 {
		t.Fatalf("got %d results, want 1: %+v", len(got), got)
	}
	e := got[0]
	if e.Title != "Flood hits Chennai" {
		t.Errorf("got title %q", e.Title)
	}
	if e.Category != "natural disaster" || e.Threat != classify.ThreatHigh {
		t.Errorf("got category %q threat %q", e.Category, e.Threat)
	}
	if e.Link == "" || !e.Published.Equal(published) {
		t.Errorf("link/published not re-attached: %+v", e)
	}
}

func TestAnalyze_NeverReturnsNoneOrUnknown(t *testing.T) {
	src := &fakeSource{entries: entriesFor("a headline", "b headline", "c headline", "d headline")}
	o := &scriptedOracle{
		dedupResp: "T1\nT2\nT3\nT4",
		classify: map[string]string{
			"a headline": "Category: sports\nThreat: NONE",
			"b headline": "Category: alien invasion\nThreat: HIGH",
			"c headline": "total garbage",
			"d headline": "Category: crime\nThreat: MEDIUM",
		},
	}

	got := newAnalyzer(src, o).Analyze(context.Background(), "Chennai", 2, 6)

	if len(got) != 1 {
		t.Fatalf("got %d results, want 1: %+v", len(got), got)
	}
	for _, e := range got {
		if e.Threat == classify.ThreatNone {
			t.Errorf("result with NONE threat: %+v", e)
		}
		if !classify.Allowed(e.Category) {
			t.Errorf("result with unrecognized category: %+v", e)
		}
	}
}

func TestAnalyze_LegacyNanCategoryDropped(t *testing.T) {
	src := &fakeSource{entries: entriesFor("repeated headline")}
	o := &scriptedOracle{
		dedupResp: "T1",
		classify: map[string]string{
			"repeated headline": "Category: Nan\nThreat: HIGH",
		},
	}

	if got := newAnalyzer(src, o).Analyze(context.Background(), "Chennai", 2, 6); len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}

func TestAnalyze_ClassifierFailureSkipsEntryOnly(t *testing.T) {
	src := &fakeSource{entries: entriesFor("good headline", "doomed headline")}
	client := oracle.Func(func(ctx context.Context, prompt string) (string, error) {
		switch {
		case strings.Contains(prompt, "deduplication"):
			return "T1\nT2", nil
		case strings.Contains(prompt, "doomed headline"):
			return "", context.DeadlineExceeded
		default:
			return "Category: weather\nThreat: LOW", nil
		}
	})

	got := newAnalyzer(src, client).Analyze(context.Background(), "Chennai", 2, 6)

	if len(got) != 1 || got[0].Title != "good headline" {
		t.Errorf("got %+v, want only the good headline", got)
	}
}

func TestAnalyze_CapShortCircuitsOracleCalls(t *testing.T) {
	src := &fakeSource{entries: entriesFor("one", "two", "three")}
	classifyCalls := 0
	client := oracle.Func(func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "deduplication") {
			return "T1\nT2\nT3", nil
		}
		classifyCalls++
		return "Category: crime\nThreat: LOW", nil
	})

	got := newAnalyzer(src, client).Analyze(context.Background(), "Chennai", 2, 1)

	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	if classifyCalls != 1 {
		t.Errorf("classifier called %d times, want 1 (cap must short-circuit)", classifyCalls)
	}
}

func TestAnalyze_EmptyDedupMeansNoResults(t *testing.T) {
	src := &fakeSource{entries: entriesFor("one", "two")}
	o := &scriptedOracle{dedupResp: "nothing matches the contract"}

	if got := newAnalyzer(src, o).Analyze(context.Background(), "Chennai", 2, 6); len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}

func TestAnalyze_FeedFailureYieldsEmptyResult(t *testing.T) {
	src := &fakeSource{err: errors.New("feed down")}
	o := &scriptedOracle{}

	got := newAnalyzer(src, o).Analyze(context.Background(), "Chennai", 2, 6)
	if len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
	if o.calls != 0 {
		t.Errorf("oracle called %d times with no entries", o.calls)
	}
}

func TestScanDanger_RatesEveryEntry(t *testing.T) {
	src := &fakeSource{entries: entriesFor("calm story", "risky story")}
	client := oracle.Func(func(ctx context.Context, prompt string) (string, error) {
		if strings.Contains(prompt, "risky story") {
			return "DANGER", nil
		}
		return "SAFE", nil
	})

	got := newAnalyzer(src, client).ScanDanger(context.Background(), "Vellore", 2, 0)

	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Danger != classify.DangerSafe || got[1].Danger != classify.DangerDanger {
		t.Errorf("got %+v", got)
	}
}

func TestScanDanger_Limit(t *testing.T) {
	src := &fakeSource{entries: entriesFor("one", "two", "three")}
	client := oracle.Func(func(ctx context.Context, prompt string) (string, error) {
		return "SAFE", nil
	})

	if got := newAnalyzer(src, client).ScanDanger(context.Background(), "Vellore", 2, 2); len(got) != 2 {
		t.Errorf("got %d entries, want 2", len(got))
	}
}
