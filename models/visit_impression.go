package models

import (
	"fmt"
	"time"

	"github.com/lib/pq"
)

const MaxImpressionPhotos = 3

type VisitImpression struct {
	ID         uint     `json:"id" gorm:"primaryKey;autoIncrement"`
	FacilityID uint     `json:"facilityId" gorm:"not null;index"`
	Facility   Facility `json:"facility" gorm:"foreignKey:FacilityID;constraint:OnDelete:CASCADE"`

	// At most one impression per schedule. The link is severed, not cascaded,
	// when the schedule goes away.
	VisitScheduleID *uint          `json:"visitScheduleId" gorm:"uniqueIndex;null"`
	VisitSchedule   *VisitSchedule `json:"visitSchedule,omitempty" gorm:"foreignKey:VisitScheduleID;constraint:OnDelete:SET NULL"`

	OverallRating   int  `json:"overallRating" gorm:"not null;check:overall_rating between 1 and 5"`
	FacilityRating  *int `json:"facilityRating"`
	StaffRating     *int `json:"staffRating"`
	EducationRating *int `json:"educationRating"`
	AccessRating    *int `json:"accessRating"`

	GoodPoints         string `json:"goodPoints" gorm:"type:text;not null"`
	ConcernPoints      string `json:"concernPoints" gorm:"type:text"`
	StaffImpression    string `json:"staffImpression" gorm:"type:text"`
	ChildrenAtmosphere string `json:"childrenAtmosphere" gorm:"type:text"`

	EstimatedMonthlyFee  *int `json:"estimatedMonthlyFee"`
	ApplicationIntention bool `json:"applicationIntention" gorm:"default:false"`
	PriorityRank         *int `json:"priorityRank"`

	Photos pq.StringArray `json:"photos" gorm:"type:text[]"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func validRating(r int) bool {
	return r >= 1 && r <= 5
}

func (i *VisitImpression) Validate() error {
	if i.FacilityID == 0 {
		return fmt.Errorf("facility is required")
	}
	if !validRating(i.OverallRating) {
		return fmt.Errorf("overall rating must be between 1 and 5")
	}
	for name, r := range map[string]*int{
		"facility":  i.FacilityRating,
		"staff":     i.StaffRating,
		"education": i.EducationRating,
		"access":    i.AccessRating,
	} {
		if r != nil && !validRating(*r) {
			return fmt.Errorf("%s rating must be between 1 and 5", name)
		}
	}
	if i.GoodPoints == "" {
		return fmt.Errorf("good points is required")
	}
	if len(i.Photos) > MaxImpressionPhotos {
		return fmt.Errorf("at most %d photos are allowed", MaxImpressionPhotos)
	}
	return nil
}
