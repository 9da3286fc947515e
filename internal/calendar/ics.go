// Package calendar renders pitcher starts as an iCalendar (.ics) feed.
package calendar

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/sp-probables/internal/probable"
)

const prodID = "-//SP Probables//sp-probables//EN"

// GenerateICS generates a calendar with one all-day event per start.
// Starts without a resolved date are left out.
func GenerateICS(starts []*probable.Start, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString(fmt.Sprintf("PRODID:%s\r\n", prodID))
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("X-WR-CALNAME:Probable Starts\r\n")

	stamp := formatICSTime(now)
	for _, s := range starts {
		day, err := time.Parse(probable.DateLayout, s.Date)
		if err != nil {
			continue
		}
		writeEvent(&ics, s, day, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeEvent(ics *strings.Builder, s *probable.Start, day time.Time, stamp string) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@sp-probables\r\n", StartID(s)))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))

	// All-day event; DTEND is exclusive
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", formatICSDate(day)))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", formatICSDate(day.AddDate(0, 0, 1))))

	summary := fmt.Sprintf("%s (%s) %s", s.Pitcher, s.Handedness, s.Opponent)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := fmt.Sprintf("Probable start: %s, %s-handed, %s\nDate: %s",
		s.Pitcher, handName(s.Handedness), s.Opponent, s.Date)
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	ics.WriteString("STATUS:TENTATIVE\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// StartID derives a deterministic identifier for a start
func StartID(s *probable.Start) string {
	h := sha1.New()
	h.Write([]byte(s.Date + "|" + strings.ToLower(s.Pitcher) + "|" + s.Opponent))
	return fmt.Sprintf("%x", h.Sum(nil))
}

func handName(h probable.Handedness) string {
	if h == probable.Left {
		return "left"
	}
	return "right"
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// formatICSDate formats the calendar day of t as an iCalendar date
func formatICSDate(t time.Time) string {
	return t.Format("20060102")
}

// escapeICS escapes special characters per RFC 5545
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
