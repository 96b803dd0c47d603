package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func impressionRouter(ic *ImpressionController) *gin.Engine {
	r := gin.New()
	r.GET("/impressions", ic.ListImpressions)
	r.POST("/impressions", ic.CreateImpression)
	return r
}

func TestListImpressions_RatingAndApplicationFilters(t *testing.T) {
	db, mock := setupMockDB(t)
	ic := NewImpressionController(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "visit_impressions" WHERE overall_rating = .* AND application_intention = `).
		WithArgs(5, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`SELECT \* FROM "visit_impressions" WHERE overall_rating = .* ORDER BY created_at DESC`).
		WithArgs(5, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "facility_id", "overall_rating", "good_points", "application_intention"}).
			AddRow(9, 3, 5, "とても良い", true))

	mock.ExpectQuery(`SELECT \* FROM "facilities" WHERE "facilities"\."id" = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(3, "さくら保育園"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/impressions?rating=5&application=true", nil)
	impressionRouter(ic).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data []struct {
			ID                   uint `json:"id"`
			OverallRating        int  `json:"overallRating"`
			ApplicationIntention bool `json:"applicationIntention"`
		} `json:"data"`
		Pagination *PaginationMeta `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Data, 1)
	assert.Equal(t, 5, resp.Data[0].OverallRating)
	assert.True(t, resp.Data[0].ApplicationIntention)
	assert.Equal(t, 10, resp.Pagination.PageSize)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateImpression_RatingOutOfRangeRejected(t *testing.T) {
	db, mock := setupMockDB(t)
	ic := NewImpressionController(db)

	body := `{"facilityId": 3, "overallRating": 6, "goodPoints": "良い"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/impressions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	impressionRouter(ic).ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "overall rating must be between 1 and 5")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateImpression_ScheduleAlreadyTaken(t *testing.T) {
	db, mock := setupMockDB(t)
	ic := NewImpressionController(db)

	mock.ExpectQuery(`SELECT \* FROM "facilities" WHERE "facilities"\."id" = `).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(`SELECT \* FROM "visit_schedules" WHERE "visit_schedules"\."id" = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "facility_id"}).AddRow(7, 3))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "visit_impressions" WHERE visit_schedule_id = `).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	body := `{"facilityId": 3, "visitScheduleId": 7, "overallRating": 4, "goodPoints": "良い"}`

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/impressions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	impressionRouter(ic).ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already has an impression")
	assert.NoError(t, mock.ExpectationsWereMet())
}
