package utils

import (
	"fmt"
	"time"
)

// Loc is the zone dates are shown in. SetLocation replaces it once the config is read.
var Loc = time.UTC

func SetLocation(loc *time.Location) {
	if loc != nil {
		Loc = loc
	}
}

// FormatLocal returns the provided time formatted in the configured zone.
func FormatLocal(t time.Time) string {
	return t.In(Loc).Format(time.RFC1123)
}

// ToLocal converts a given time to the configured zone.
func ToLocal(t time.Time) time.Time {
	return t.In(Loc)
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
