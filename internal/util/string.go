package util

import "strings"

// TruncateString truncates a string to maxRunes characters (rune-based, not byte-based)
// If truncated, appends "..." to the result
func TruncateString(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

// Normalize performs basic string normalization (lowercase + trim)
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// StripCodeFence removes a surrounding markdown code fence, with or without a
// language tag such as ```json.
func StripCodeFence(s string) string {
	cleaned := strings.TrimSpace(s)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.TrimPrefix(cleaned, "```")
	if idx := strings.IndexAny(cleaned, "\r\n"); idx >= 0 {
		if tag := strings.TrimSpace(cleaned[:idx]); !strings.ContainsAny(tag, " \t") {
			cleaned = cleaned[idx:]
		}
	}
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

var quotePairs = [][2]string{
	{`"`, `"`},
	{"'", "'"},
	{"“", "”"},
	{"「", "」"},
	{"『", "』"},
}

// StripQuotes removes one layer of matching quotes around s.
func StripQuotes(s string) string {
	trimmed := strings.TrimSpace(s)
	for _, pair := range quotePairs {
		if len(trimmed) >= len(pair[0])+len(pair[1]) &&
			strings.HasPrefix(trimmed, pair[0]) && strings.HasSuffix(trimmed, pair[1]) {
			return strings.TrimSpace(trimmed[len(pair[0]) : len(trimmed)-len(pair[1])])
		}
	}
	return trimmed
}
