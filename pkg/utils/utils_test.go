package utils

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateNumericCode(t *testing.T) {
	code, err := GenerateNumericCode(6)
	if err != nil {
		t.Fatal(err)
	}
	if len(code) != 6 {
		t.Fatalf("len = %d, want 6", len(code))
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Errorf("non-digit %q in code %q", r, code)
		}
	}
}

func TestMakeICS(t *testing.T) {
	start := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 30, 9, 30, 0, 0, time.UTC)
	ics := MakeICS("Demo Night; v2", "Bring work, in progress", start, 0, now)

	for _, want := range []string{
		"BEGIN:VCALENDAR",
		"PRODID:-//PeerLearn//EN",
		"DTSTAMP:20260330T093000Z",
		"DTSTART:20260401T180000Z",
		"DTEND:20260401T190000Z", // zero duration defaults to an hour
		"SUMMARY:Demo Night\\; v2",
		"DESCRIPTION:Bring work\\, in progress",
		"END:VCALENDAR",
	} {
		if !strings.Contains(ics, want) {
			t.Errorf("ICS missing %q:\n%s", want, ics)
		}
	}
	if strings.Contains(strings.ReplaceAll(ics, "\r\n", ""), "\n") {
		t.Error("ICS must use CRLF line endings only")
	}
}

func TestICSFilename(t *testing.T) {
	cases := map[string]string{
		"Welcome Session": "Welcome_Session.ics",
		"  spaced\tout  ": "spaced_out.ics",
		"":                "event.ics",
	}
	for title, want := range cases {
		if got := ICSFilename(title); got != want {
			t.Errorf("ICSFilename(%q) = %q, want %q", title, got, want)
		}
	}
}
