package render

import (
	"strings"
	"time"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
	"2006/01",
	"01/2006",
	"January 2006",
	"Jan 2006",
	"2006",
}

// FormatDate renders a stored date as "January 2023". Blank input renders
// as ""; input no layout understands is echoed unchanged.
func FormatDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("January 2006")
		}
	}
	return s
}

const presentLabel = "Present"

// DateRange joins start and end; current replaces the end with "Present".
func DateRange(start, end string, current bool) string {
	from := FormatDate(start)
	to := FormatDate(end)
	if current {
		to = presentLabel
	}
	switch {
	case from != "" && to != "":
		return from + " – " + to
	case from != "":
		return from
	default:
		return to
	}
}
