package utils

import (
	"regexp"
	"strings"
	"time"
)

const icsTimeLayout = "20060102T150405Z"

// escapeICSText escapes commas, semicolons and newlines per RFC 5545.
func escapeICSText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// MakeICS renders a single-event iCalendar document, CRLF line endings.
func MakeICS(title, description string, start time.Time, duration time.Duration, now time.Time) string {
	if duration <= 0 {
		duration = time.Hour
	}
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//PeerLearn//EN",
		"CALSCALE:GREGORIAN",
		"BEGIN:VEVENT",
		"DTSTAMP:" + now.UTC().Format(icsTimeLayout),
		"DTSTART:" + start.UTC().Format(icsTimeLayout),
		"DTEND:" + start.Add(duration).UTC().Format(icsTimeLayout),
		"SUMMARY:" + escapeICSText(title),
		"DESCRIPTION:" + escapeICSText(description),
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return strings.Join(lines, "\r\n")
}

var icsFilenameUnsafe = regexp.MustCompile(`\s+`)

// ICSFilename turns an event title into a download filename.
func ICSFilename(title string) string {
	name := icsFilenameUnsafe.ReplaceAllString(strings.TrimSpace(title), "_")
	if name == "" {
		name = "event"
	}
	return name + ".ics"
}
