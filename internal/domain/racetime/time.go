package racetime

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeValue is an elapsed race time in whole milliseconds. It is never
// negative; construct one through ParseClock or FromMillis.
type TimeValue int64

const (
	millisPerSecond = 1000
	millisPerMinute = 60 * millisPerSecond
	millisPerHour   = 60 * millisPerMinute
)

// ParseClock parses a race-clock string into a TimeValue. Accepted forms are
// "H:MM:SS" (1-2 digit hours, exactly 2-digit minutes and seconds) and
// "M:SS" (1-2 digit minutes, exactly 2-digit seconds), optionally followed
// by a fractional second part of 1-3 digits. Any other input reports false:
// an unparseable clock is missing data, not a failure.
func ParseClock(s string) (TimeValue, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	fractionMillis := int64(0)
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		frac := s[dot+1:]
		s = s[:dot]
		if len(frac) < 1 || len(frac) > 3 || !allDigits(frac) {
			return 0, false
		}
		parsed, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, false
		}
		for i := len(frac); i < 3; i++ {
			parsed *= 10
		}
		fractionMillis = parsed
	}

	parts := strings.Split(s, ":")
	switch len(parts) {
	case 2:
		minutes, ok := parseSegment(parts[0], 1, 2)
		if !ok {
			return 0, false
		}
		seconds, ok := parseSegment(parts[1], 2, 2)
		if !ok || seconds > 59 {
			return 0, false
		}
		return TimeValue(minutes*millisPerMinute + seconds*millisPerSecond + fractionMillis), true
	case 3:
		hours, ok := parseSegment(parts[0], 1, 2)
		if !ok {
			return 0, false
		}
		minutes, ok := parseSegment(parts[1], 2, 2)
		if !ok || minutes > 59 {
			return 0, false
		}
		seconds, ok := parseSegment(parts[2], 2, 2)
		if !ok || seconds > 59 {
			return 0, false
		}
		return TimeValue(hours*millisPerHour + minutes*millisPerMinute + seconds*millisPerSecond + fractionMillis), true
	default:
		return 0, false
	}
}

// FromMillis constructs a TimeValue from raw milliseconds. Negative input
// reports false.
func FromMillis(ms int64) (TimeValue, bool) {
	if ms < 0 {
		return 0, false
	}
	return TimeValue(ms), true
}

// Clock serializes the value back to a race-clock string. Values of one hour
// or more render as "H:MM:SS", shorter values as "M:SS"; a non-zero
// sub-second remainder is appended as ".mmm" so the result round-trips
// through ParseClock.
func (t TimeValue) Clock() string {
	ms := int64(t)
	hours := ms / millisPerHour
	ms -= hours * millisPerHour
	minutes := ms / millisPerMinute
	ms -= minutes * millisPerMinute
	seconds := ms / millisPerSecond
	fraction := ms - seconds*millisPerSecond

	var b strings.Builder
	if hours > 0 {
		fmt.Fprintf(&b, "%d:%02d:%02d", hours, minutes, seconds)
	} else {
		fmt.Fprintf(&b, "%d:%02d", minutes, seconds)
	}
	if fraction > 0 {
		fmt.Fprintf(&b, ".%03d", fraction)
	}
	return b.String()
}

// Millis reports the value as raw milliseconds.
func (t TimeValue) Millis() int64 {
	return int64(t)
}

func (t TimeValue) String() string {
	return t.Clock()
}

func parseSegment(s string, minDigits, maxDigits int) (int64, bool) {
	if len(s) < minDigits || len(s) > maxDigits || !allDigits(s) {
		return 0, false
	}
	value, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}
