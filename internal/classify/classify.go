package classify

import (
	"context"
	"fmt"
	"strings"

	"newsradar/internal/cache"
	"newsradar/internal/logger"
	"newsradar/internal/oracle"
)

// CategoryUnknown is the fallback when the oracle response carries no usable
// category line.
const CategoryUnknown = "unknown"

// Categories is the fixed allow-list the oracle is instructed to choose
// from. Responses outside the list are tolerated but never reach the caller
// as relevant results.
var Categories = []string{
	"sports",
	"weather",
	"crime",
	"natural disaster",
	"politics",
	"war",
	"construction",
}

var allowed = func() map[string]bool {
	m := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		m[c] = true
	}
	return m
}()

// Allowed reports whether category is on the classifier's allow-list.
func Allowed(category string) bool {
	return allowed[category]
}

// Result is the (category, threat) pair for one headline. Category is
// lower-cased; it may fall outside the allow-list when the oracle strays.
type Result struct {
	Category string
	Threat   ThreatLevel
}

type Classifier struct {
	client oracle.Client
	cache  *cache.Cache
}

// New builds a Classifier. The cache is optional; when present, repeat
// classifications of the same headline skip the oracle.
func New(client oracle.Client, c *cache.Cache) *Classifier {
	return &Classifier{client: client, cache: c}
}

// Classify labels one headline with a category and threat level. It always
// returns a well-formed pair: oracle failures and malformed responses come
// back as ("unknown", NONE), which the relevance filter drops downstream.
func (c *Classifier) Classify(ctx context.Context, title, location string) Result {
	key := cache.Key("classify", title, location)
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			if r, ok := v.(Result); ok {
				return r
			}
		}
	}

	resp, err := c.client.Generate(ctx, classifyPrompt(title, location))
	if err != nil {
		logger.Warn("classification oracle call failed", "title", title, "error", err)
		return Result{Category: CategoryUnknown, Threat: ThreatNone}
	}

	r := parseResult(resp)
	if c.cache != nil && r.Category != CategoryUnknown {
		// Degraded results are not cached, so a transient oracle outage
		// does not pin "unknown" for the TTL.
		c.cache.Set(key, r)
	}
	return r
}

func classifyPrompt(title, location string) string {
	return fmt.Sprintf(`You are a news classifier assistant.

Given a news headline from %s, do two things:

1. Classify it into one of the following categories:
   - sports
   - weather
   - crime
   - natural disaster
   - politics
   - war
   - construction

2. Assign a threat level based on the category:
   - For crime, war, natural disaster, weather: use LOW, MEDIUM, or HIGH
   - For sports and politics: return NONE (no threat)

Return the result in the following format exactly:

Category: <category>
Threat: <LOW / MEDIUM / HIGH / NONE>

Headline: %q
`, location, title)
}

func parseResult(resp string) Result {
	fields := oracle.ParseLabeledLines(resp, "Category", "Threat")

	r := Result{Category: CategoryUnknown, Threat: ThreatNone}
	if v := strings.ToLower(strings.TrimSpace(fields["Category"])); v != "" {
		r.Category = v
	}
	if v, ok := fields["Threat"]; ok {
		r.Threat = ParseThreatLevel(v)
	}
	return r
}
