package models

import (
	"fmt"
	"time"
)

// Visit statuses. Transitions are intentionally unconstrained - any status may
// be changed to any other through the update endpoint.
const (
	StatusScheduled = "予定"
	StatusCompleted = "完了"
	StatusCancelled = "キャンセル"
)

var ScheduleStatuses = []string{StatusScheduled, StatusCompleted, StatusCancelled}

type VisitSchedule struct {
	ID         uint     `json:"id" gorm:"primaryKey;autoIncrement"`
	FacilityID uint     `json:"facilityId" gorm:"not null;index"`
	Facility   Facility `json:"facility" gorm:"foreignKey:FacilityID;constraint:OnDelete:CASCADE"`

	VisitDate time.Time `json:"visitDate" gorm:"type:date;not null"`
	VisitTime *string   `json:"visitTime" gorm:"type:varchar(5);null"` // "HH:MM"
	Status    string    `json:"status" gorm:"size:10;not null;default:予定"`

	ContactPerson string `json:"contactPerson" gorm:"size:50"`
	Notes         string `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ValidScheduleStatus(s string) bool {
	for _, st := range ScheduleStatuses {
		if st == s {
			return true
		}
	}
	return false
}

func (s *VisitSchedule) Validate() error {
	if s.FacilityID == 0 {
		return fmt.Errorf("facility is required")
	}
	if s.VisitDate.IsZero() {
		return fmt.Errorf("visit date is required")
	}
	if !ValidScheduleStatus(s.Status) {
		return fmt.Errorf("invalid status: %s", s.Status)
	}
	return nil
}
