package types

import (
	"github.com/usuda-masaru/hoiku-navi/models"
)

// FacilityListItem is a facility annotated with per-facility aggregates for
// the list screen. AvgRating is nil when the facility has no impressions yet.
type FacilityListItem struct {
	models.Facility
	VisitCount int64    `json:"visitCount"`
	AvgRating  *float64 `json:"avgRating"`
}

// FacilityDetail bundles a facility with its fully materialized schedule and
// impression history.
type FacilityDetail struct {
	Facility    models.Facility          `json:"facility"`
	Schedules   []models.VisitSchedule   `json:"schedules"`
	Impressions []models.VisitImpression `json:"impressions"`
	AvgRating   *float64                 `json:"avgRating"`
}

// MapMarker is the trimmed facility shape the map screen plots.
type MapMarker struct {
	ID           uint     `json:"id"`
	Name         string   `json:"name"`
	FacilityType string   `json:"facilityType"`
	Address      string   `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}
