package scoring

import (
	"strings"
	"time"
)

const displayLayout = "2006-01-02 15:04:05"

// ISO-8601 shapes accepted after a space separator has been turned into "T".
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02T15Z07:00",
	"2006-01-02T15",
	"2006-01-02",
}

const fallbackLayout = "2006-01-02 15:04"

type ParsedTime struct {
	Hour    *int
	Seconds int
	Raw     string
}

// ParseTimestamp extracts the hour of day and seconds since midnight from a submitted
// timestamp. Unparseable input yields a nil Hour and the original string as Raw.
func ParseTimestamp(raw string) ParsedTime {
	if raw == "" {
		return ParsedTime{Hour: nil, Seconds: 0, Raw: ""}
	}
	// Whitespace-only input is a parse failure and is echoed back as submitted.
	trimmed := strings.TrimSpace(raw)

	t, ok := parseISO(strings.Replace(trimmed, " ", "T", 1))
	if !ok {
		var err error
		t, err = time.Parse(fallbackLayout, trimmed)
		if err != nil {
			return ParsedTime{Hour: nil, Seconds: 0, Raw: raw}
		}
	}

	hour := t.Hour()
	return ParsedTime{
		Hour:    &hour,
		Seconds: hour*3600 + t.Minute()*60 + t.Second(),
		Raw:     t.Format(displayLayout),
	}
}

func parseISO(s string) (time.Time, bool) {
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
