package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// DefaultSpan is the fallback span used when none is provided.
	DefaultSpan = "1w"
)

var (
	spanPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	spanUnits   = map[string]int{
		"d":     1,
		"day":   1,
		"days":  1,
		"w":     7,
		"wk":    7,
		"wks":   7,
		"week":  7,
		"weeks": 7,
	}
)

// ParseSpan parses a human-friendly day span (for example "3d", "1w" or
// "1w2d") and returns the number of days along with a canonical, compact
// representation. When the input is empty, the default span of one week is
// used.
func ParseSpan(input string) (int, string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		trimmed = DefaultSpan
	}

	remaining := strings.ToLower(trimmed)
	total := 0
	for len(remaining) > 0 {
		matches := spanPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return 0, "", fmt.Errorf("invalid span segment %q", strings.TrimSpace(remaining))
		}

		value, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, "", fmt.Errorf("invalid span value %q: %w", matches[1], err)
		}
		base, ok := spanUnits[matches[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported span unit %q", matches[2])
		}
		total += value * base

		remaining = remaining[len(matches[0]):]
	}

	if total <= 0 {
		return 0, "", fmt.Errorf("span must be greater than zero")
	}

	return total, FormatSpan(total), nil
}

// FormatSpan renders a day count using week/day tokens.
func FormatSpan(days int) string {
	if days <= 0 {
		return "0d"
	}
	weeks, rest := days/7, days%7
	switch {
	case weeks == 0:
		return fmt.Sprintf("%dd", rest)
	case rest == 0:
		return fmt.Sprintf("%dw", weeks)
	default:
		return fmt.Sprintf("%dw%dd", weeks, rest)
	}
}
