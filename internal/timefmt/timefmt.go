// Package timefmt converts between textual duration values and whole
// minutes. Staff-facing forms log durations as HH:MM; legacy imports and
// free-text fields carry tolerant variants like "1h 30m" or "1.5".
package timefmt

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	canonicalRe    = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)
	clockRe        = regexp.MustCompile(`^(\d+):([0-5]?\d)$`)
	hoursMinutesRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*h(?:ours?)?(?:\s*(\d+)\s*m(?:in(?:utes?)?)?)?$`)
	minutesOnlyRe  = regexp.MustCompile(`^(\d+)\s*m(?:in(?:utes?)?)?$`)
	decimalRe      = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
)

// IsCanonical reports whether text is a strict HH:MM value with hours 0-23
// and minutes 0-59. The API boundary requires canonical durations; the
// tolerant parser is for internal recomputation only.
func IsCanonical(text string) bool {
	return canonicalRe.MatchString(text)
}

// ParseDuration converts a duration text to whole minutes. Accepted forms:
// clock ("8:30", "26:10"), hours and minutes ("1h 30m", "2h"), bare minutes
// ("45m") and decimal hours ("1.5"). Unparseable, empty or negative input
// yields 0; it never fails. Callers that need strict validation check
// IsCanonical before parsing.
func ParseDuration(text string) int {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return 0
	}

	if m := clockRe.FindStringSubmatch(text); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		return hours*60 + minutes
	}

	if m := hoursMinutesRe.FindStringSubmatch(text); m != nil {
		hours, _ := strconv.ParseFloat(m[1], 64)
		total := int(hours*60 + 0.5)
		if m[2] != "" {
			minutes, _ := strconv.Atoi(m[2])
			total += minutes
		}
		return total
	}

	if m := minutesOnlyRe.FindStringSubmatch(text); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		return minutes
	}

	if decimalRe.MatchString(text) {
		hours, _ := strconv.ParseFloat(text, 64)
		return int(hours*60 + 0.5)
	}

	return 0
}

// Canonical renders minutes as the HH:MM storage form. Hours are not capped
// at 23: cumulative flat-entry logging can exceed a calendar day.
func Canonical(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatMinutes renders minutes as the "Hh Mm" display form.
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
