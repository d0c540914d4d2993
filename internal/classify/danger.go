package classify

import (
	"context"
	"fmt"
	"strings"

	"newsradar/internal/logger"
	"newsradar/internal/oracle"
)

// DangerRating is the coarse one-word rating produced by the danger scan.
type DangerRating string

const (
	DangerSafe    DangerRating = "SAFE"
	DangerWarning DangerRating = "WARNING"
	DangerDanger  DangerRating = "DANGER"
	DangerUnknown DangerRating = "UNKNOWN"
)

// RateDanger asks the oracle for a one-word danger rating of a headline.
// Failures and unusable responses come back as DangerUnknown.
func (c *Classifier) RateDanger(ctx context.Context, title, location string) DangerRating {
	resp, err := c.client.Generate(ctx, dangerPrompt(title, location))
	if err != nil {
		logger.Warn("danger oracle call failed", "title", title, "error", err)
		return DangerUnknown
	}
	return parseDanger(resp)
}

func dangerPrompt(title, location string) string {
	return fmt.Sprintf(`You are a news danger classification assistant.
Given the following news headline from %s, classify the danger level as one of:
- SAFE
- WARNING
- DANGER

Title: %q

Just return only one word: SAFE, WARNING or DANGER.
`, location, title)
}

// parseDanger scans the response for a rating word. DANGER is checked first
// so that verbose answers mentioning several words resolve conservatively.
func parseDanger(resp string) DangerRating {
	text := strings.ToUpper(oracle.StripReasoning(resp))
	for _, r := range []DangerRating{DangerDanger, DangerWarning, DangerSafe} {
		if strings.Contains(text, string(r)) {
			return r
		}
	}
	return DangerUnknown
}
