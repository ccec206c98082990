package pipeline

import "strings"

// The source system leaks its own null representations into text columns.
// Everything downstream assumes these were collapsed at ingestion.
var nullSentinels = map[string]struct{}{
	"":     {},
	"nan":  {},
	"none": {},
}

// NormalizeText trims s and collapses the textual null sentinels to
// absence. Returns nil for an absent value.
func NormalizeText(s string) *string {
	s = strings.TrimSpace(s)
	if _, absent := nullSentinels[strings.ToLower(s)]; absent {
		return nil
	}
	return &s
}

// cleanText is NormalizeText for fields kept as plain strings: absent
// values become "".
func cleanText(s string) string {
	if p := NormalizeText(s); p != nil {
		return *p
	}
	return ""
}

// textAbsent reports whether a normalized field carries no usable value.
func textAbsent(p *string) bool {
	return p == nil || strings.TrimSpace(*p) == ""
}
