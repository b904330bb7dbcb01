package transform

import (
	"fmt"
	"strings"
	"time"
)

// dayLetters maps source day letters to canonical day codes. Compact
// day strings are scanned per letter, so day-name aliases ("Mon",
// "Thursday") reduce to their leading letters and stray characters are
// skipped.
var dayLetters = map[byte]string{
	'M': "M",
	'T': "T",
	'W': "W",
	'R': "R",
	'F': "F",
	'S': "S",
	'U': "U",
}

// ParseDays converts a compact day string ("MWF", "TR") into canonical
// day codes. "ARR" and empty input yield an empty list.
func ParseDays(days string) []string {
	codes := []string{}
	if days == "" || days == "ARR" {
		return codes
	}
	for i := 0; i < len(days); i++ {
		if code, ok := dayLetters[days[i]]; ok {
			codes = append(codes, code)
		}
	}
	return codes
}

// ParseTime normalizes a 12-hour clock string ("06:00pm") to 24-hour
// "HH:MM". When the input does not parse as 12-hour time it is returned
// unchanged with ok=false; the caller decides downstream whether an
// unparsed value is acceptable. Parsing never fails hard.
func ParseTime(raw string) (value string, ok bool) {
	if raw == "" {
		return "", false
	}
	t, err := time.Parse("03:04pm", strings.ToLower(raw))
	if err != nil {
		return raw, false
	}
	return t.Format("15:04"), true
}

// ParseLocation splits a bare location string into building and room.
// Online sections collapse to Online/Online; a purely numeric string is
// treated as a room on the Main campus.
func ParseLocation(location string) map[string]any {
	if strings.Contains(location, "Online") {
		return map[string]any{"building": "Online", "room": "Online"}
	}
	return map[string]any{"building": "Main", "room": location}
}

// CompleteDate expands a partial "MM/DD" date into "YYYY-MM-DD" using
// the given term year. Input that is not an MM/DD fragment passes
// through unchanged.
func CompleteDate(raw string, year int) string {
	parts := strings.SplitN(raw, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return raw
	}
	return fmt.Sprintf("%d-%s-%s", year, pad2(parts[0]), pad2(parts[1]))
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}

// ModeCodes names the canonical instruction-mode codes a source's
// delivery vocabulary maps onto.
type ModeCodes struct {
	Online   string
	Sync     string
	Hybrid   string
	Arranged string
	InPerson string
}

// InferInstructionMode resolves a raw delivery-method string. An exact
// table lookup wins; otherwise ordered substring heuristics apply, with
// in-person as the final fallback.
func InferInstructionMode(raw string, exact map[string]string, codes ModeCodes) string {
	if code, ok := exact[raw]; ok {
		return code
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.Contains(lower, "online") && strings.Contains(lower, "sync"):
		return codes.Sync
	case strings.Contains(lower, "online"):
		return codes.Online
	case strings.Contains(lower, "hybrid"):
		return codes.Hybrid
	case strings.Contains(lower, "arranged"):
		return codes.Arranged
	default:
		return codes.InPerson
	}
}
