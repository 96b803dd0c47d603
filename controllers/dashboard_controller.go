package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/usuda-masaru/hoiku-navi/models"
	"github.com/usuda-masaru/hoiku-navi/types"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// GetDashboard assembles the home-screen summary: headline counts, the next
// five upcoming visits, and the five best-rated impressions.
func (dc *DashboardController) GetDashboard(c *gin.Context) {
	var summary types.DashboardSummary

	dc.DB.Model(&models.Facility{}).Count(&summary.TotalFacilities)
	dc.DB.Model(&models.VisitSchedule{}).Where("status = ?", models.StatusScheduled).Count(&summary.ScheduledVisits)
	dc.DB.Model(&models.VisitSchedule{}).Where("status = ?", models.StatusCompleted).Count(&summary.CompletedVisits)
	dc.DB.Model(&models.VisitImpression{}).Count(&summary.TotalImpressions)

	today := time.Now().Format("2006-01-02")
	if err := dc.DB.Preload("Facility").
		Where("status = ? AND visit_date >= ?", models.StatusScheduled, today).
		Order("visit_date ASC, visit_time ASC").
		Limit(5).
		Find(&summary.RecentSchedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching upcoming schedules"})
		return
	}

	// id DESC keeps the ordering deterministic when created_at collides.
	if err := dc.DB.Preload("Facility").
		Order("overall_rating DESC, created_at DESC, id DESC").
		Limit(5).
		Find(&summary.TopRated).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching top rated impressions"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: summary})
}
