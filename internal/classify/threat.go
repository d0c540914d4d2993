package classify

import "strings"

// ThreatLevel grades how dangerous a classified headline is. ThreatNone
// marks categories with no threat semantics (sports, politics) and is what
// the relevance filter keys on; it is a real value, distinct from "missing".
type ThreatLevel string

const (
	ThreatLow    ThreatLevel = "LOW"
	ThreatMedium ThreatLevel = "MEDIUM"
	ThreatHigh   ThreatLevel = "HIGH"
	ThreatNone   ThreatLevel = "NONE"
)

// ParseThreatLevel maps free-form oracle output to a ThreatLevel. Anything
// unrecognized, including the legacy "NaN" marker, parses to ThreatNone.
func ParseThreatLevel(s string) ThreatLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return ThreatLow
	case "MEDIUM":
		return ThreatMedium
	case "HIGH":
		return ThreatHigh
	default:
		return ThreatNone
	}
}

// Actionable reports whether the level carries real threat information.
func (t ThreatLevel) Actionable() bool {
	return t == ThreatLow || t == ThreatMedium || t == ThreatHigh
}
