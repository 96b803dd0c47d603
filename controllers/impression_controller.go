package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/usuda-masaru/hoiku-navi/models"
	"gorm.io/gorm"
)

const impressionPageSize = 10

type ImpressionController struct {
	DB *gorm.DB
}

func NewImpressionController(db *gorm.DB) *ImpressionController {
	return &ImpressionController{DB: db}
}

type ImpressionInput struct {
	FacilityID      uint  `json:"facilityId" binding:"required"`
	VisitScheduleID *uint `json:"visitScheduleId"`

	OverallRating   int  `json:"overallRating" binding:"required"`
	FacilityRating  *int `json:"facilityRating"`
	StaffRating     *int `json:"staffRating"`
	EducationRating *int `json:"educationRating"`
	AccessRating    *int `json:"accessRating"`

	GoodPoints         string `json:"goodPoints" binding:"required"`
	ConcernPoints      string `json:"concernPoints"`
	StaffImpression    string `json:"staffImpression"`
	ChildrenAtmosphere string `json:"childrenAtmosphere"`

	EstimatedMonthlyFee  *int     `json:"estimatedMonthlyFee"`
	ApplicationIntention bool     `json:"applicationIntention"`
	PriorityRank         *int     `json:"priorityRank"`
	Photos               []string `json:"photos"`
}

func (in *ImpressionInput) apply(i *models.VisitImpression) {
	i.FacilityID = in.FacilityID
	i.VisitScheduleID = in.VisitScheduleID
	i.OverallRating = in.OverallRating
	i.FacilityRating = in.FacilityRating
	i.StaffRating = in.StaffRating
	i.EducationRating = in.EducationRating
	i.AccessRating = in.AccessRating
	i.GoodPoints = in.GoodPoints
	i.ConcernPoints = in.ConcernPoints
	i.StaffImpression = in.StaffImpression
	i.ChildrenAtmosphere = in.ChildrenAtmosphere
	i.EstimatedMonthlyFee = in.EstimatedMonthlyFee
	i.ApplicationIntention = in.ApplicationIntention
	i.PriorityRank = in.PriorityRank
	i.Photos = pq.StringArray(in.Photos)
}

// checkReferences verifies the facility exists and, when a schedule is
// linked, that it belongs to the same facility and carries no other
// impression yet.
func (ic *ImpressionController) checkReferences(impression *models.VisitImpression) (int, string) {
	var facility models.Facility
	if err := ic.DB.First(&facility, impression.FacilityID).Error; err != nil {
		return http.StatusBadRequest, "Facility not found"
	}

	if impression.VisitScheduleID != nil {
		var schedule models.VisitSchedule
		if err := ic.DB.First(&schedule, *impression.VisitScheduleID).Error; err != nil {
			return http.StatusBadRequest, "Schedule not found"
		}
		if schedule.FacilityID != impression.FacilityID {
			return http.StatusBadRequest, "Schedule belongs to a different facility"
		}

		var count int64
		ic.DB.Model(&models.VisitImpression{}).
			Where("visit_schedule_id = ? AND id <> ?", *impression.VisitScheduleID, impression.ID).
			Count(&count)
		if count > 0 {
			return http.StatusBadRequest, "Schedule already has an impression"
		}
	}
	return 0, ""
}

// ListImpressions returns impressions newest first, optionally filtered to an
// exact overall rating and/or to ones with application intention.
func (ic *ImpressionController) ListImpressions(c *gin.Context) {
	page := parsePage(c)

	db := ic.DB.Model(&models.VisitImpression{})

	if rating := c.Query("rating"); rating != "" {
		if r, err := strconv.Atoi(rating); err == nil {
			db = db.Where("overall_rating = ?", r)
		}
	}
	if c.Query("application") == "true" {
		db = db.Where("application_intention = ?", true)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting impressions"})
		return
	}

	var impressions []models.VisitImpression
	if err := db.Preload("Facility").Preload("VisitSchedule").
		Order("created_at DESC").
		Offset((page - 1) * impressionPageSize).
		Limit(impressionPageSize).
		Find(&impressions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching impressions"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       impressions,
		Pagination: newPaginationMeta(page, impressionPageSize, total),
	})
}

func (ic *ImpressionController) GetImpression(c *gin.Context) {
	var impression models.VisitImpression
	if err := ic.DB.Preload("Facility").Preload("VisitSchedule").
		First(&impression, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Impression not found"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: impression})
}

func (ic *ImpressionController) CreateImpression(c *gin.Context) {
	var input ImpressionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var impression models.VisitImpression
	input.apply(&impression)

	if err := impression.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}
	if status, msg := ic.checkReferences(&impression); status != 0 {
		c.JSON(status, gin.H{"error": msg, "success": false})
		return
	}

	if err := ic.DB.Create(&impression).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create impression"})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: impression, Message: "見学感想を登録しました。"})
}

func (ic *ImpressionController) UpdateImpression(c *gin.Context) {
	var impression models.VisitImpression
	if err := ic.DB.First(&impression, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Impression not found"})
		return
	}

	var input ImpressionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	input.apply(&impression)

	if err := impression.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}
	if status, msg := ic.checkReferences(&impression); status != 0 {
		c.JSON(status, gin.H{"error": msg, "success": false})
		return
	}

	if err := ic.DB.Save(&impression).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update impression"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: impression, Message: "見学感想を更新しました。"})
}

func (ic *ImpressionController) DeleteImpression(c *gin.Context) {
	var impression models.VisitImpression
	if err := ic.DB.First(&impression, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Impression not found"})
		return
	}

	if err := ic.DB.Delete(&impression).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete impression"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "見学感想を削除しました。"})
}
