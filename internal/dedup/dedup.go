// Package dedup collapses headlines that report the same real-world event,
// delegating the similarity judgment to the oracle. It is strictly a filter:
// the output is always an ordered subsequence of the input titles.
package dedup

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"newsradar/internal/logger"
	"newsradar/internal/metrics"
	"newsradar/internal/oracle"
)

var idRe = regexp.MustCompile(`^T[0-9]+$`)

type Deduplicator struct {
	client oracle.Client
}

func New(client oracle.Client) *Deduplicator {
	return &Deduplicator{client: client}
}

// Dedupe sends up to limit titles to the oracle in one batched instruction
// and returns, in input order, the ones it marks as distinct events. Titles
// past the limit are not considered at all. An oracle failure or a response
// with no valid IDs yields an empty result; the run continues with nothing
// surviving rather than aborting.
func (d *Deduplicator) Dedupe(ctx context.Context, titles []string, limit int) []string {
	if len(titles) == 0 {
		return nil
	}
	if limit > 0 && len(titles) > limit {
		titles = titles[:limit]
	}

	resp, err := d.client.Generate(ctx, buildPrompt(titles))
	if err != nil {
		logger.Warn("dedup oracle call failed", "titles", len(titles), "error", err)
		return nil
	}

	keep := make([]bool, len(titles))
	for _, id := range parseIDs(resp) {
		idx, err := strconv.Atoi(id[1:])
		if err != nil || idx < 1 || idx > len(titles) {
			// Hallucinated ID outside the batch; drop silently.
			continue
		}
		keep[idx-1] = true
	}

	kept := make([]string, 0, len(titles))
	for i, title := range titles {
		if keep[i] {
			kept = append(kept, title)
		}
	}

	metrics.Global.AddDuplicatesCollapsed(int64(len(titles) - len(kept)))
	logger.Debug("dedup complete", "sent", len(titles), "kept", len(kept))
	return kept
}

// buildPrompt assigns each title a synthetic ID so the oracle has an
// unambiguous handle that survives whitespace and punctuation variation in
// the titles themselves.
func buildPrompt(titles []string) string {
	var b strings.Builder

	b.WriteString("You are a news deduplication assistant.\n\n")
	b.WriteString("Below is a list of news headlines, each with an ID. Several headlines may report the same real-world event.\n\n")
	for i, title := range titles {
		fmt.Fprintf(&b, "%s: %s\n", titleID(i), title)
	}
	b.WriteString("\nReturn the IDs of the headlines to keep so that every distinct event is represented by exactly one headline.\n")
	b.WriteString("If several headlines cover the same event, keep only one of them.\n\n")
	b.WriteString("Rules:\n")
	b.WriteString("- Respond with one ID per line and nothing else.\n")
	b.WriteString("- Use only IDs from the list above.\n")

	return b.String()
}

func titleID(i int) string {
	return "T" + strconv.Itoa(i+1)
}

// parseIDs scans the response line by line, keeping only tokens that match
// the ID syntax after leading list markers are stripped. Everything else in
// the response is ignored.
func parseIDs(resp string) []string {
	var ids []string
	for _, raw := range strings.Split(oracle.StripReasoning(resp), "\n") {
		line := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(raw), "-*•>"))
		if idRe.MatchString(line) {
			ids = append(ids, line)
		}
	}
	return ids
}
