package types

import (
	"github.com/usuda-masaru/hoiku-navi/models"
)

// DashboardSummary backs the home screen: headline counts plus the next
// upcoming visits and the best-rated impressions.
type DashboardSummary struct {
	TotalFacilities  int64 `json:"totalFacilities"`
	ScheduledVisits  int64 `json:"scheduledVisits"`
	CompletedVisits  int64 `json:"completedVisits"`
	TotalImpressions int64 `json:"totalImpressions"`

	RecentSchedules []models.VisitSchedule   `json:"recentSchedules"`
	TopRated        []models.VisitImpression `json:"topRated"`
}
