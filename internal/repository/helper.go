package repository

import (
	"fmt"
	"time"
)

// timeLayouts lists the formats stored rows and import files may carry:
// bare dates from CSV imports and RFC3339 timestamps written by the app.
var timeLayouts = []string{"2006-01-02", time.RFC3339}

// ParseTime parses a stored date string and normalizes it to UTC.
func ParseTime(str string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, str); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse date %q", str)
}
