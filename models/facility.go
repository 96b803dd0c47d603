package models

import (
	"fmt"
	"regexp"
	"time"

	"gorm.io/gorm"
)

// Facility types as used on the application forms. Values are stored verbatim.
const (
	FacilityTypeLicensed          = "認可保育園"
	FacilityTypeCertified         = "認証保育園"
	FacilityTypeUnlicensed        = "無認可保育園"
	FacilityTypeKindergarten      = "幼稚園"
	FacilityTypeCertifiedKodomoen = "認定こども園"
	FacilityTypeSmallScale        = "小規模保育"
	FacilityTypeCompanyLed        = "企業主導型保育"
)

var FacilityTypes = []string{
	FacilityTypeLicensed,
	FacilityTypeCertified,
	FacilityTypeUnlicensed,
	FacilityTypeKindergarten,
	FacilityTypeCertifiedKodomoen,
	FacilityTypeSmallScale,
	FacilityTypeCompanyLed,
}

var phonePattern = regexp.MustCompile(`^[0-9-]+$`)

type Facility struct {
	ID             uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	FacilityNumber string `json:"facilityNumber" gorm:"size:20;uniqueIndex;not null"`
	Name           string `json:"name" gorm:"size:100;not null"`
	FacilityType   string `json:"facilityType" gorm:"size:20;not null"`
	Address        string `json:"address" gorm:"size:255;not null"`
	PhoneNumber    string `json:"phoneNumber" gorm:"size:15;not null"`

	OpeningTime       *string `json:"openingTime" gorm:"type:varchar(5);null"` // "HH:MM"
	ClosingTime       *string `json:"closingTime" gorm:"type:varchar(5);null"`
	SaturdayAvailable bool    `json:"saturdayAvailable" gorm:"default:false"`

	Capacity      *int `json:"capacity"`
	AgeFromMonths *int `json:"ageFromMonths"`
	AgeToYears    *int `json:"ageToYears"`

	HasContactApp     bool   `json:"hasContactApp" gorm:"default:false"`
	ContactAppName    string `json:"contactAppName" gorm:"size:50"`
	HasSchoolBus      bool   `json:"hasSchoolBus" gorm:"default:false"`
	HasParking        bool   `json:"hasParking" gorm:"default:false"`
	HasLunch          bool   `json:"hasLunch" gorm:"default:true"`
	HasAllergySupport bool   `json:"hasAllergySupport" gorm:"default:false"`

	Latitude         *float64 `json:"latitude" gorm:"type:decimal(9,6);null"`
	Longitude        *float64 `json:"longitude" gorm:"type:decimal(9,6);null"`
	DistanceFromHome *float64 `json:"distanceFromHome"` // km
	TravelTime       *int     `json:"travelTime"`       // minutes

	Notes string `json:"notes" gorm:"type:text"`

	VisitSchedules []VisitSchedule   `json:"-" gorm:"foreignKey:FacilityID;constraint:OnDelete:CASCADE"`
	Impressions    []VisitImpression `json:"-" gorm:"foreignKey:FacilityID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ValidFacilityType(t string) bool {
	for _, ft := range FacilityTypes {
		if ft == t {
			return true
		}
	}
	return false
}

// Validate checks field-level constraints before the record hits the database.
func (f *Facility) Validate() error {
	if f.FacilityNumber == "" {
		return fmt.Errorf("facility number is required")
	}
	if f.Name == "" {
		return fmt.Errorf("facility name is required")
	}
	if !ValidFacilityType(f.FacilityType) {
		return fmt.Errorf("invalid facility type: %s", f.FacilityType)
	}
	if f.Address == "" {
		return fmt.Errorf("address is required")
	}
	if f.PhoneNumber == "" || !phonePattern.MatchString(f.PhoneNumber) {
		return fmt.Errorf("phone number must contain only digits and hyphens")
	}
	return nil
}

// BeforeCreate enforces facility number uniqueness with a readable error
// rather than surfacing the raw unique-constraint violation.
func (f *Facility) BeforeCreate(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&Facility{}).Where("facility_number = ?", f.FacilityNumber).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("facility number %s is already registered", f.FacilityNumber)
	}
	return nil
}
