package utils

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/usuda-masaru/hoiku-navi/models"
)

func testSchedule() *models.VisitSchedule {
	visitTime := "10:00"
	return &models.VisitSchedule{
		ID:            7,
		FacilityID:    3,
		VisitDate:     time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC),
		VisitTime:     &visitTime,
		Status:        models.StatusScheduled,
		ContactPerson: "田中園長",
		Notes:         "上履き持参",
		Facility: models.Facility{
			ID:           3,
			Name:         "さくら保育園",
			FacilityType: models.FacilityTypeLicensed,
			PhoneNumber:  "03-1234-5678",
			Address:      "東京都台東区1-2-3",
		},
	}
}

func TestGoogleCalendarURL_TimedEventSpansOneHour(t *testing.T) {
	schedule := testSchedule()

	u, err := url.Parse(GoogleCalendarURL(schedule))
	require.NoError(t, err)

	assert.Equal(t, "calendar.google.com", u.Host)
	assert.Equal(t, "/calendar/render", u.Path)

	q := u.Query()
	assert.Equal(t, "TEMPLATE", q.Get("action"))
	assert.Equal(t, "【保育園見学】さくら保育園", q.Get("text"))
	assert.Equal(t, "20251105T100000/20251105T110000", q.Get("dates"))
	assert.Equal(t, "東京都台東区1-2-3", q.Get("location"))
}

func TestGoogleCalendarURL_NoTimeBecomesAllDayEvent(t *testing.T) {
	schedule := testSchedule()
	schedule.VisitTime = nil

	u, err := url.Parse(GoogleCalendarURL(schedule))
	require.NoError(t, err)

	// All-day events span exactly the visit date to the next calendar day.
	assert.Equal(t, "20251105/20251106", u.Query().Get("dates"))
}

func TestGoogleCalendarURL_EmptyTimeTreatedAsAllDay(t *testing.T) {
	schedule := testSchedule()
	empty := ""
	schedule.VisitTime = &empty

	u, err := url.Parse(GoogleCalendarURL(schedule))
	require.NoError(t, err)
	assert.Equal(t, "20251105/20251106", u.Query().Get("dates"))
}

func TestGoogleCalendarURL_DetailsComposition(t *testing.T) {
	schedule := testSchedule()

	u, err := url.Parse(GoogleCalendarURL(schedule))
	require.NoError(t, err)

	expected := strings.Join([]string{
		"保育園名: さくら保育園",
		"施設タイプ: 認可保育園",
		"電話番号: 03-1234-5678",
		"担当者: 田中園長",
		"",
		"メモ: 上履き持参",
	}, "\n")
	assert.Equal(t, expected, u.Query().Get("details"))
}

func TestGoogleCalendarURL_OptionalLinesOmitted(t *testing.T) {
	schedule := testSchedule()
	schedule.ContactPerson = ""
	schedule.Notes = ""

	u, err := url.Parse(GoogleCalendarURL(schedule))
	require.NoError(t, err)

	details := u.Query().Get("details")
	assert.Equal(t, strings.Join([]string{
		"保育園名: さくら保育園",
		"施設タイプ: 認可保育園",
		"電話番号: 03-1234-5678",
	}, "\n"), details)
	assert.NotContains(t, details, "担当者")
	assert.NotContains(t, details, "メモ")
}

func TestGoogleCalendarURL_Deterministic(t *testing.T) {
	schedule := testSchedule()
	assert.Equal(t, GoogleCalendarURL(schedule), GoogleCalendarURL(schedule))
}

func TestGoogleCalendarURL_DoesNotMutateInput(t *testing.T) {
	schedule := testSchedule()
	before := *schedule

	GoogleCalendarURL(schedule)

	assert.Equal(t, before.VisitDate, schedule.VisitDate)
	assert.Equal(t, before.VisitTime, schedule.VisitTime)
	assert.Equal(t, before.Notes, schedule.Notes)
	assert.Equal(t, before.Facility.Name, schedule.Facility.Name)
}

func icsFields(content string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		if k, v, ok := strings.Cut(line, ":"); ok {
			fields[k] = v
		}
	}
	return fields
}

func TestICSContent_TimedEvent(t *testing.T) {
	schedule := testSchedule()
	content := ICSContent(schedule)

	assert.True(t, strings.HasPrefix(content, "BEGIN:VCALENDAR\n"))
	assert.Contains(t, content, "BEGIN:VEVENT\n")
	assert.Contains(t, content, "END:VEVENT\nEND:VCALENDAR\n")

	fields := icsFields(content)
	assert.Equal(t, "2.0", fields["VERSION"])
	assert.Equal(t, "-//HoikuNavi//見学スケジュール//JP", fields["PRODID"])
	assert.Equal(t, "20251105T100000", fields["DTSTART"])
	assert.Equal(t, "20251105T110000", fields["DTEND"])
	assert.Equal(t, "【保育園見学】さくら保育園", fields["SUMMARY"])
	assert.Equal(t, "東京都台東区1-2-3", fields["LOCATION"])

	assert.NotEmpty(t, fields["UID"])
	assert.True(t, strings.HasSuffix(fields["DTSTAMP"], "Z"))

	dtstamp, err := time.Parse("20060102T150405Z", fields["DTSTAMP"])
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), dtstamp, time.Minute)
}

func TestICSContent_AllDayEvent(t *testing.T) {
	schedule := testSchedule()
	schedule.VisitTime = nil

	fields := icsFields(ICSContent(schedule))
	assert.Equal(t, "20251105", fields["DTSTART"])
	assert.Equal(t, "20251106", fields["DTEND"])
}

func TestICSContent_DescriptionEscapesNewlines(t *testing.T) {
	schedule := testSchedule()

	fields := icsFields(ICSContent(schedule))
	assert.Equal(t,
		`保育園名: さくら保育園\n施設タイプ: 認可保育園\n電話番号: 03-1234-5678\n担当者: 田中園長\n\nメモ: 上履き持参`,
		fields["DESCRIPTION"])
}

func TestICSContent_OnlyUIDAndDTSTAMPVary(t *testing.T) {
	schedule := testSchedule()

	strip := func(content string) []string {
		var kept []string
		for _, line := range strings.Split(content, "\n") {
			if strings.HasPrefix(line, "UID:") || strings.HasPrefix(line, "DTSTAMP:") {
				continue
			}
			kept = append(kept, line)
		}
		return kept
	}

	first := ICSContent(schedule)
	second := ICSContent(schedule)

	assert.Equal(t, strip(first), strip(second))
	assert.NotEqual(t, icsFields(first)["UID"], icsFields(second)["UID"])
}

func TestICSFilename(t *testing.T) {
	assert.Equal(t, "nursery_visit_7.ics", ICSFilename(testSchedule()))
}
