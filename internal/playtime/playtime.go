// Package playtime splits recorded playtime into the units shown on leaderboards.
package playtime

import (
	"fmt"
	"strings"
	"time"
)

const (
	millisPerSecond = int64(time.Second / time.Millisecond)
	millisPerMinute = int64(time.Minute / time.Millisecond)
	millisPerHour   = int64(time.Hour / time.Millisecond)

	secondsPerMinute = int64(60)
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// Components holds a duration broken down into clock units.
type Components struct {
	Hours   int64
	Minutes int64
	Seconds int64
}

// UnitNames looks up the localized unit formats used by Format.
type UnitNames interface {
	Message(locale, key string) string
}

// Message keys for the localized unit formats. Each value is a fmt format
// with a single %d verb, e.g. "%d hours".
const (
	KeyDay     = "time.day"
	KeyDays    = "time.days"
	KeyHour    = "time.hour"
	KeyHours   = "time.hours"
	KeyMinute  = "time.minute"
	KeyMinutes = "time.minutes"
	KeySecond  = "time.second"
	KeySeconds = "time.seconds"
)

// Decompose converts milliseconds into hours, minutes and seconds. Every
// lower unit is taken from the remainder of the larger one; nothing is rounded.
// ms must not be negative.
func Decompose(ms int64) Components {
	hours := ms / millisPerHour
	rest := ms - hours*millisPerHour
	minutes := rest / millisPerMinute
	rest -= minutes * millisPerMinute
	return Components{
		Hours:   hours,
		Minutes: minutes,
		Seconds: rest / millisPerSecond,
	}
}

// Format renders a whole-second count as a localized human readable string,
// e.g. "1 day, 2 hours, 5 seconds". Zero units are skipped.
func Format(names UnitNames, locale string, seconds int64) string {
	if seconds <= 0 {
		return unit(names, locale, 0, KeySecond, KeySeconds)
	}

	days := seconds / secondsPerDay
	seconds -= days * secondsPerDay
	hours := seconds / secondsPerHour
	seconds -= hours * secondsPerHour
	minutes := seconds / secondsPerMinute
	seconds -= minutes * secondsPerMinute

	parts := make([]string, 0, 4)
	if days > 0 {
		parts = append(parts, unit(names, locale, days, KeyDay, KeyDays))
	}
	if hours > 0 {
		parts = append(parts, unit(names, locale, hours, KeyHour, KeyHours))
	}
	if minutes > 0 {
		parts = append(parts, unit(names, locale, minutes, KeyMinute, KeyMinutes))
	}
	if seconds > 0 {
		parts = append(parts, unit(names, locale, seconds, KeySecond, KeySeconds))
	}
	return strings.Join(parts, ", ")
}

func unit(names UnitNames, locale string, n int64, singular, plural string) string {
	key := plural
	if n == 1 {
		key = singular
	}
	format := names.Message(locale, key)
	if !strings.Contains(format, "%d") {
		return fmt.Sprintf("%d %s", n, format)
	}
	return fmt.Sprintf(format, n)
}
