package mapping

import (
	"strings"
	"time"
)

// Canonical output layouts for timestamps in the tracking document.
const (
	layoutDate     = "02-Jan-2006"
	layoutDateTime = "02-Jan-2006 15:04"
)

// inputLayouts is the ordered list of timestamp shapes seen across carrier
// pages and APIs. Go's parser accepts a trailing fractional-seconds field
// without it appearing in the layout, which covers the ISO millisecond
// variants.
var inputLayouts = []string{
	layoutDateTime,
	layoutDate,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}

// ParseDate re-renders raw timestamp text into the canonical format:
// dd-Mon-yyyy when the input was date-only, dd-Mon-yyyy HH:MM when it
// carried a time component. Empty input yields "". Unparseable but
// non-empty input is returned unchanged — callers must tolerate a
// non-canonical string downstream.
func ParseDate(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	s = strings.TrimSuffix(s, "Z")
	for _, layout := range inputLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if strings.ContainsAny(s, "T: ") {
			return t.Format(layoutDateTime)
		}
		return t.Format(layoutDate)
	}
	return text
}

// ParseDateOnly is ParseDate forced to the date-only rendering. Stop
// arrival/departure fields carry dates without times even when the source
// timestamp had one.
func ParseDateOnly(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	s = strings.TrimSuffix(s, "Z")
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(layoutDate)
		}
	}
	return text
}

// ParseTimestamp parses raw or canonical timestamp text into a time.Time
// for chronological comparison. The second return is false when no known
// layout matches.
func ParseTimestamp(text string) (time.Time, bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, false
	}
	s = strings.TrimSuffix(s, "Z")
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DatePart returns the date portion of a canonical "dd-Mon-yyyy HH:MM"
// string (everything before the first space).
func DatePart(text string) string {
	if text == "" {
		return ""
	}
	if i := strings.IndexByte(text, ' '); i >= 0 {
		return text[:i]
	}
	return text
}
