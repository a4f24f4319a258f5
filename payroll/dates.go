package payroll

import (
	"strings"
	"time"
)

// DateLayout is the canonical stored date form (mm/dd/yyyy).
const DateLayout = "01/02/2006"

// acceptedLayouts are tried in order when normalizing user input.
var acceptedLayouts = []string{
	DateLayout,
	"1/2/2006",
	"2006-01-02",
	"01-02-2006",
	"1-2-2006",
}

// ParseDate parses s in any accepted layout.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeDate returns s in canonical mm/dd/yyyy form and true. When s does
// not parse it returns the trimmed input unchanged and false; callers store
// that raw value rather than refusing the write.
func NormalizeDate(s string) (string, bool) {
	t, ok := ParseDate(s)
	if !ok {
		return strings.TrimSpace(s), false
	}
	return t.Format(DateLayout), true
}
