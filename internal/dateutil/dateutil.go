// Package dateutil provides date normalization utilities.
package dateutil

import "time"

// ISO is the canonical date layout used across the pipeline.
const ISO = "2006-01-02"

// layouts are the recognized input date layouts, tried in order.
// The set is closed: frontmatter dates outside it pass through verbatim.
var layouts = []string{
	"2006-01-02",
	"02.01.2006",
	"02/01/2006",
	"2006/01/02",
	"02-01-2006",
}

// Normalize converts a date string in any recognized layout to YYYY-MM-DD.
// Returns the normalized date and true, or ("", false) if no layout matches.
func Normalize(value string) (string, bool) {
	if value == "" {
		return "", false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(ISO), true
		}
	}
	return "", false
}

// Today formats t as YYYY-MM-DD. The caller supplies t so tests can
// inject a fixed clock.
func Today(t time.Time) string {
	return t.Format(ISO)
}
