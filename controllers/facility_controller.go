package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/usuda-masaru/hoiku-navi/config"
	"github.com/usuda-masaru/hoiku-navi/models"
	"github.com/usuda-masaru/hoiku-navi/types"
	"gorm.io/gorm"
)

const facilityPageSize = 10

type FacilityController struct {
	DB       *gorm.DB
	Geocoder *config.GeocodingConfig
}

func NewFacilityController(db *gorm.DB, geocoder *config.GeocodingConfig) *FacilityController {
	return &FacilityController{DB: db, Geocoder: geocoder}
}

type FacilityInput struct {
	FacilityNumber string `json:"facilityNumber" binding:"required"`
	Name           string `json:"name" binding:"required"`
	FacilityType   string `json:"facilityType" binding:"required"`
	Address        string `json:"address" binding:"required"`
	PhoneNumber    string `json:"phoneNumber" binding:"required"`

	OpeningTime       *string `json:"openingTime"`
	ClosingTime       *string `json:"closingTime"`
	SaturdayAvailable bool    `json:"saturdayAvailable"`

	Capacity      *int `json:"capacity"`
	AgeFromMonths *int `json:"ageFromMonths"`
	AgeToYears    *int `json:"ageToYears"`

	HasContactApp     bool   `json:"hasContactApp"`
	ContactAppName    string `json:"contactAppName"`
	HasSchoolBus      bool   `json:"hasSchoolBus"`
	HasParking        bool   `json:"hasParking"`
	HasLunch          *bool  `json:"hasLunch"`
	HasAllergySupport bool   `json:"hasAllergySupport"`

	DistanceFromHome *float64 `json:"distanceFromHome"`
	TravelTime       *int     `json:"travelTime"`

	Notes string `json:"notes"`
}

func (in *FacilityInput) apply(f *models.Facility) {
	f.FacilityNumber = in.FacilityNumber
	f.Name = in.Name
	f.FacilityType = in.FacilityType
	f.Address = in.Address
	f.PhoneNumber = in.PhoneNumber
	f.OpeningTime = in.OpeningTime
	f.ClosingTime = in.ClosingTime
	f.SaturdayAvailable = in.SaturdayAvailable
	f.Capacity = in.Capacity
	f.AgeFromMonths = in.AgeFromMonths
	f.AgeToYears = in.AgeToYears
	f.HasContactApp = in.HasContactApp
	f.ContactAppName = in.ContactAppName
	f.HasSchoolBus = in.HasSchoolBus
	f.HasParking = in.HasParking
	f.HasLunch = in.HasLunch == nil || *in.HasLunch
	f.HasAllergySupport = in.HasAllergySupport
	f.DistanceFromHome = in.DistanceFromHome
	f.TravelTime = in.TravelTime
	f.Notes = in.Notes
}

// ListFacilities returns a page of facilities matching the optional free-text
// query (name, address or facility number) and facility-type filter, each
// annotated with its schedule count and average rating.
func (fc *FacilityController) ListFacilities(c *gin.Context) {
	query := c.Query("q")
	facilityType := c.Query("type")
	page := parsePage(c)

	db := fc.DB.Model(&models.Facility{})

	if query != "" {
		like := "%" + query + "%"
		db = db.Where("name ILIKE ? OR address ILIKE ? OR facility_number ILIKE ?", like, like, like)
	}
	if facilityType != "" {
		db = db.Where("facility_type = ?", facilityType)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting facilities"})
		return
	}

	var facilities []models.Facility
	if err := db.Order("name ASC").
		Offset((page - 1) * facilityPageSize).
		Limit(facilityPageSize).
		Find(&facilities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching facilities"})
		return
	}

	items, err := fc.annotate(facilities)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching facility aggregates"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       items,
		Meta:       gin.H{"facilityTypes": models.FacilityTypes},
		Pagination: newPaginationMeta(page, facilityPageSize, total),
	})
}

// annotate attaches schedule counts and average ratings to a page of
// facilities with two grouped queries instead of a query per row.
func (fc *FacilityController) annotate(facilities []models.Facility) ([]types.FacilityListItem, error) {
	items := make([]types.FacilityListItem, 0, len(facilities))
	if len(facilities) == 0 {
		return items, nil
	}

	ids := make([]uint, 0, len(facilities))
	for _, f := range facilities {
		ids = append(ids, f.ID)
	}

	var visitCounts []struct {
		FacilityID uint
		Count      int64
	}
	if err := fc.DB.Model(&models.VisitSchedule{}).
		Select("facility_id, COUNT(*) as count").
		Where("facility_id IN ?", ids).
		Group("facility_id").
		Scan(&visitCounts).Error; err != nil {
		return nil, err
	}

	var avgRatings []struct {
		FacilityID uint
		Avg        float64
	}
	if err := fc.DB.Model(&models.VisitImpression{}).
		Select("facility_id, AVG(overall_rating) as avg").
		Where("facility_id IN ?", ids).
		Group("facility_id").
		Scan(&avgRatings).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(visitCounts))
	for _, vc := range visitCounts {
		counts[vc.FacilityID] = vc.Count
	}
	avgs := make(map[uint]float64, len(avgRatings))
	for _, ar := range avgRatings {
		avgs[ar.FacilityID] = ar.Avg
	}

	for _, f := range facilities {
		item := types.FacilityListItem{Facility: f, VisitCount: counts[f.ID]}
		if avg, ok := avgs[f.ID]; ok {
			avgCopy := avg
			item.AvgRating = &avgCopy
		}
		items = append(items, item)
	}
	return items, nil
}

// GetFacility returns one facility with its visit history and impressions.
func (fc *FacilityController) GetFacility(c *gin.Context) {
	id := c.Param("id")

	var facility models.Facility
	if err := fc.DB.First(&facility, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
		return
	}

	detail := types.FacilityDetail{Facility: facility}

	fc.DB.Where("facility_id = ?", facility.ID).Order("visit_date DESC").Find(&detail.Schedules)
	fc.DB.Where("facility_id = ?", facility.ID).Order("created_at DESC").Find(&detail.Impressions)

	var avg struct {
		Avg   float64
		Count int64
	}
	fc.DB.Model(&models.VisitImpression{}).
		Select("COALESCE(AVG(overall_rating), 0) as avg, COUNT(*) as count").
		Where("facility_id = ?", facility.ID).
		Scan(&avg)
	if avg.Count > 0 {
		detail.AvgRating = &avg.Avg
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: detail})
}

// CreateFacility registers a facility. When a geocoding key is configured the
// address is resolved to coordinates; a lookup failure only produces a
// warning, never a failed create.
func (fc *FacilityController) CreateFacility(c *gin.Context) {
	var input FacilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	var facility models.Facility
	input.apply(&facility)

	if err := facility.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	warning := ""
	if fc.Geocoder.Enabled() && facility.Address != "" {
		lat, lng, err := fc.Geocoder.Geocode(facility.Address)
		if err != nil {
			warning = "住所から位置情報を取得できませんでした"
			log.Warn().Err(err).Str("address", facility.Address).Msg("geocoding failed")
		} else {
			facility.Latitude = &lat
			facility.Longitude = &lng
		}
	}

	if err := fc.DB.Create(&facility).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	response := StandardResponse{Success: true, Data: facility, Message: "保育園を登録しました。"}
	if warning != "" {
		response.Meta = gin.H{"warning": warning}
	}
	c.JSON(http.StatusCreated, response)
}

// UpdateFacility applies a full update. Coordinates are left untouched - the
// geocoding lookup runs on create only.
func (fc *FacilityController) UpdateFacility(c *gin.Context) {
	id := c.Param("id")

	var facility models.Facility
	if err := fc.DB.First(&facility, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
		return
	}

	var input FacilityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	sameNumber := facility.FacilityNumber == input.FacilityNumber
	input.apply(&facility)

	if err := facility.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if !sameNumber {
		var count int64
		fc.DB.Model(&models.Facility{}).
			Where("facility_number = ? AND id <> ?", facility.FacilityNumber, facility.ID).
			Count(&count)
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "facility number is already registered", "success": false})
			return
		}
	}

	if err := fc.DB.Save(&facility).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update facility"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: facility, Message: "保育園情報を更新しました。"})
}

// DeleteFacility removes a facility. Schedules and impressions referencing it
// go with it through the database-level cascade.
func (fc *FacilityController) DeleteFacility(c *gin.Context) {
	id := c.Param("id")

	var facility models.Facility
	if err := fc.DB.First(&facility, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
		return
	}

	if err := fc.DB.Delete(&facility).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete facility"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "保育園を削除しました。"})
}

// MapFacilities lists every facility for the map screen, name order.
func (fc *FacilityController) MapFacilities(c *gin.Context) {
	var markers []types.MapMarker
	if err := fc.DB.Model(&models.Facility{}).
		Select("id, name, facility_type, address, latitude, longitude").
		Order("name ASC").
		Scan(&markers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching facilities"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: markers})
}
