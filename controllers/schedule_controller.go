package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/usuda-masaru/hoiku-navi/models"
	"github.com/usuda-masaru/hoiku-navi/utils"
	"gorm.io/gorm"
)

const schedulePageSize = 20

type ScheduleController struct {
	DB *gorm.DB
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{DB: db}
}

type ScheduleInput struct {
	FacilityID    uint    `json:"facilityId" binding:"required"`
	VisitDate     string  `json:"visitDate" binding:"required"`
	VisitTime     *string `json:"visitTime"`
	Status        string  `json:"status"`
	ContactPerson string  `json:"contactPerson"`
	Notes         string  `json:"notes"`
}

func (in *ScheduleInput) apply(s *models.VisitSchedule) error {
	visitDate, err := time.Parse("2006-01-02", in.VisitDate)
	if err != nil {
		return fmt.Errorf("visit date must be in YYYY-MM-DD format")
	}
	if in.VisitTime != nil && *in.VisitTime != "" {
		if _, err := time.Parse("15:04", *in.VisitTime); err != nil {
			return fmt.Errorf("visit time must be in HH:MM format")
		}
	}

	s.FacilityID = in.FacilityID
	s.VisitDate = visitDate
	s.VisitTime = in.VisitTime
	s.Status = in.Status
	if s.Status == "" {
		s.Status = models.StatusScheduled
	}
	s.ContactPerson = in.ContactPerson
	s.Notes = in.Notes
	return nil
}

// ListSchedules returns visit schedules with their facilities, optionally
// narrowed to one status, soonest first.
func (sc *ScheduleController) ListSchedules(c *gin.Context) {
	status := c.Query("status")
	page := parsePage(c)

	db := sc.DB.Model(&models.VisitSchedule{})
	if status != "" {
		db = db.Where("status = ?", status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting schedules"})
		return
	}

	var schedules []models.VisitSchedule
	if err := db.Preload("Facility").
		Order("visit_date ASC, visit_time ASC").
		Offset((page - 1) * schedulePageSize).
		Limit(schedulePageSize).
		Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching schedules"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       schedules,
		Meta:       gin.H{"statusChoices": models.ScheduleStatuses},
		Pagination: newPaginationMeta(page, schedulePageSize, total),
	})
}

func (sc *ScheduleController) GetSchedule(c *gin.Context) {
	var schedule models.VisitSchedule
	if err := sc.DB.Preload("Facility").First(&schedule, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: schedule})
}

func (sc *ScheduleController) CreateSchedule(c *gin.Context) {
	var input ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var schedule models.VisitSchedule
	if err := input.apply(&schedule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}
	if err := schedule.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var facility models.Facility
	if err := sc.DB.First(&facility, schedule.FacilityID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Facility not found", "success": false})
		return
	}

	if err := sc.DB.Create(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create schedule"})
		return
	}
	schedule.Facility = facility

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: schedule, Message: "見学スケジュールを登録しました。"})
}

// UpdateSchedule writes the full schedule, status included. Any status may
// move to any other.
func (sc *ScheduleController) UpdateSchedule(c *gin.Context) {
	var schedule models.VisitSchedule
	if err := sc.DB.First(&schedule, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	var input ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if err := input.apply(&schedule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}
	if err := schedule.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if err := sc.DB.Save(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update schedule"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: schedule, Message: "見学スケジュールを更新しました。"})
}

func (sc *ScheduleController) DeleteSchedule(c *gin.Context) {
	var schedule models.VisitSchedule
	if err := sc.DB.First(&schedule, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	if err := sc.DB.Delete(&schedule).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete schedule"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "見学スケジュールを削除しました。"})
}

// ToCalendar redirects to the Google Calendar event-creation deep link for
// the schedule.
func (sc *ScheduleController) ToCalendar(c *gin.Context) {
	var schedule models.VisitSchedule
	if err := sc.DB.Preload("Facility").First(&schedule, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	c.Redirect(http.StatusFound, utils.GoogleCalendarURL(&schedule))
}

// DownloadICS serves the schedule as an iCalendar file attachment.
func (sc *ScheduleController) DownloadICS(c *gin.Context) {
	var schedule models.VisitSchedule
	if err := sc.DB.Preload("Facility").First(&schedule, "id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Schedule not found"})
		return
	}

	content := utils.ICSContent(&schedule)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", utils.ICSFilename(&schedule)))
	c.Data(http.StatusOK, "text/calendar", []byte(content))
}
