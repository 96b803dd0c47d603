package utils

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/usuda-masaru/hoiku-navi/models"
)

const (
	calendarTitlePrefix = "【保育園見学】"
	googleCalendarBase  = "https://calendar.google.com/calendar/render"
	icsProductID        = "-//HoikuNavi//見学スケジュール//JP"

	timedFormat  = "20060102T150405"
	allDayFormat = "20060102"
)

// eventRange resolves the start/end of a visit. A schedule with a visit time
// becomes a one-hour timed event; without one it becomes an all-day event
// covering exactly the visit date.
func eventRange(schedule *models.VisitSchedule) (start, end string) {
	d := schedule.VisitDate
	if schedule.VisitTime != nil && *schedule.VisitTime != "" {
		if t, err := time.Parse("15:04", *schedule.VisitTime); err == nil {
			startAt := time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, d.Location())
			endAt := startAt.Add(time.Hour)
			return startAt.Format(timedFormat), endAt.Format(timedFormat)
		}
	}
	return d.Format(allDayFormat), d.AddDate(0, 0, 1).Format(allDayFormat)
}

// descriptionLines composes the event description. Contact person and notes
// are omitted entirely when empty; notes get a blank line above them.
func descriptionLines(schedule *models.VisitSchedule) []string {
	lines := []string{
		"保育園名: " + schedule.Facility.Name,
		"施設タイプ: " + schedule.Facility.FacilityType,
		"電話番号: " + schedule.Facility.PhoneNumber,
	}
	if schedule.ContactPerson != "" {
		lines = append(lines, "担当者: "+schedule.ContactPerson)
	}
	if schedule.Notes != "" {
		lines = append(lines, "", "メモ: "+schedule.Notes)
	}
	return lines
}

func eventTitle(schedule *models.VisitSchedule) string {
	return calendarTitlePrefix + schedule.Facility.Name
}

// GoogleCalendarURL builds an "add to Google Calendar" deep link for a visit
// schedule. The schedule's Facility must be loaded. Output is deterministic
// for a given schedule.
func GoogleCalendarURL(schedule *models.VisitSchedule) string {
	start, end := eventRange(schedule)
	dates := start + "/" + end

	params := []struct {
		key   string
		value string
	}{
		{"action", "TEMPLATE"},
		{"text", eventTitle(schedule)},
		{"dates", dates},
		{"details", strings.Join(descriptionLines(schedule), "\n")},
		{"location", schedule.Facility.Address},
	}

	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.key+"="+url.QueryEscape(p.value))
	}

	return googleCalendarBase + "?" + strings.Join(parts, "&")
}

// ICSContent renders a single-event iCalendar document for a visit schedule,
// suitable for download as a text/calendar attachment. UID and DTSTAMP are
// freshly generated on every call; all other fields depend only on the input.
func ICSContent(schedule *models.VisitSchedule) string {
	start, end := eventRange(schedule)

	// RFC 5545 TEXT values carry embedded newlines as literal "\n".
	description := strings.Join(descriptionLines(schedule), "\\n")

	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\n")
	b.WriteString("VERSION:2.0\n")
	fmt.Fprintf(&b, "PRODID:%s\n", icsProductID)
	b.WriteString("BEGIN:VEVENT\n")
	fmt.Fprintf(&b, "UID:%s\n", uuid.New().String())
	fmt.Fprintf(&b, "DTSTAMP:%s\n", time.Now().UTC().Format("20060102T150405Z"))
	fmt.Fprintf(&b, "DTSTART:%s\n", start)
	fmt.Fprintf(&b, "DTEND:%s\n", end)
	fmt.Fprintf(&b, "SUMMARY:%s\n", eventTitle(schedule))
	fmt.Fprintf(&b, "DESCRIPTION:%s\n", description)
	fmt.Fprintf(&b, "LOCATION:%s\n", schedule.Facility.Address)
	b.WriteString("END:VEVENT\n")
	b.WriteString("END:VCALENDAR\n")

	return b.String()
}

// ICSFilename names the download attachment after the schedule.
func ICSFilename(schedule *models.VisitSchedule) string {
	return fmt.Sprintf("nursery_visit_%d.ics", schedule.ID)
}
