package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scheduleRouter(sc *ScheduleController) *gin.Engine {
	r := gin.New()
	r.GET("/schedules/:id/calendar", sc.ToCalendar)
	r.GET("/schedules/:id/ics", sc.DownloadICS)
	return r
}

func expectScheduleWithFacility(mock sqlmock.Sqlmock, visitTime interface{}) {
	mock.ExpectQuery(`SELECT \* FROM "visit_schedules" WHERE id = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "facility_id", "visit_date", "visit_time", "status", "contact_person", "notes"}).
			AddRow(7, 3, time.Date(2025, 11, 5, 0, 0, 0, 0, time.UTC), visitTime, "予定", "田中園長", ""))

	mock.ExpectQuery(`SELECT \* FROM "facilities" WHERE "facilities"\."id" = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "facility_number", "name", "facility_type", "address", "phone_number"}).
			AddRow(3, "13-0003", "さくら保育園", "認可保育園", "東京都台東区1-2-3", "03-1234-5678"))
}

func TestToCalendar_RedirectsToGoogleCalendar(t *testing.T) {
	db, mock := setupMockDB(t)
	sc := NewScheduleController(db)

	expectScheduleWithFacility(mock, "10:00")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/schedules/7/calendar", nil)
	scheduleRouter(sc).ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)

	location := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "https://calendar.google.com/calendar/render?action=TEMPLATE"), location)
	assert.Contains(t, location, "dates=20251105T100000%2F20251105T110000")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDownloadICS_ServesCalendarAttachment(t *testing.T) {
	db, mock := setupMockDB(t)
	sc := NewScheduleController(db)

	expectScheduleWithFacility(mock, "10:00")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/schedules/7/ics", nil)
	scheduleRouter(sc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/calendar", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="nursery_visit_7.ics"`, w.Header().Get("Content-Disposition"))

	body := w.Body.String()
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "DTSTART:20251105T100000")
	assert.Contains(t, body, "DTEND:20251105T110000")
	assert.Contains(t, body, "SUMMARY:【保育園見学】さくら保育園")
	assert.Contains(t, body, "LOCATION:東京都台東区1-2-3")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDownloadICS_AllDayWithoutVisitTime(t *testing.T) {
	db, mock := setupMockDB(t)
	sc := NewScheduleController(db)

	expectScheduleWithFacility(mock, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/schedules/7/ics", nil)
	scheduleRouter(sc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "DTSTART:20251105\n")
	assert.Contains(t, w.Body.String(), "DTEND:20251106\n")
}

func TestDownloadICS_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	sc := NewScheduleController(db)

	mock.ExpectQuery(`SELECT \* FROM "visit_schedules" WHERE id = `).
		WillReturnError(sqlmock.ErrCancelled)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/schedules/7/ics", nil)
	scheduleRouter(sc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
