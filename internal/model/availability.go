package model

import (
	"time"
)

// AvailabilityRule is one recurring weekly window in which a professor
// accepts bookings. Times are minutes-of-day strings ("HH:MM") applied
// to the requested date in whatever location that date carries; slot
// queries parse dates as UTC, so rule windows are effectively UTC.
type AvailabilityRule struct {
	UUIDBase
	CompanyID   string `gorm:"type:varchar(36);index;not null" json:"companyId"`
	ProfessorID string `gorm:"type:varchar(36);index;not null" json:"professorId"`

	Weekday   int    `gorm:"not null" json:"weekday"` // 0=Sunday..6=Saturday
	StartTime string `gorm:"size:5;not null" json:"startTime"`
	EndTime   string `gorm:"size:5;not null" json:"endTime"`

	SlotDurationMinutes int  `gorm:"default:30" json:"slotDurationMinutes"`
	Active              bool `gorm:"default:true" json:"active"`

	EffectiveFrom  *time.Time `json:"effectiveFrom,omitempty"`
	EffectiveUntil *time.Time `json:"effectiveUntil,omitempty"`
}

func (AvailabilityRule) TableName() string {
	return "availability_rules"
}

// AppliesOn reports whether the rule is in force on the given date.
func (r *AvailabilityRule) AppliesOn(date time.Time) bool {
	if !r.Active || int(date.Weekday()) != r.Weekday {
		return false
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	if r.EffectiveFrom != nil && day.Before(truncateDay(*r.EffectiveFrom)) {
		return false
	}
	if r.EffectiveUntil != nil && day.After(truncateDay(*r.EffectiveUntil)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Blockage removes a date range from a professor's bookable time.
// ProfessorID nil means the whole company is blocked (holidays).
type Blockage struct {
	UUIDBase
	CompanyID   string  `gorm:"type:varchar(36);index;not null" json:"companyId"`
	ProfessorID *string `gorm:"type:varchar(36);index" json:"professorId,omitempty"`

	StartsAt time.Time `gorm:"not null" json:"startsAt"`
	EndsAt   time.Time `gorm:"not null" json:"endsAt"`
	Reason   string    `gorm:"size:255" json:"reason,omitempty"`
}

func (Blockage) TableName() string {
	return "availability_blockages"
}

// Covers reports whether the blockage applies to the given professor.
func (b *Blockage) Covers(professorID string) bool {
	return b.ProfessorID == nil || *b.ProfessorID == professorID
}

// ProfessorSettings holds per-professor booking constraints.
type ProfessorSettings struct {
	UUIDBase
	ProfessorID        string `gorm:"type:varchar(36);uniqueIndex;not null" json:"professorId"`
	MinAdvanceMinutes  int    `gorm:"default:60" json:"minAdvanceMinutes"`
	MinCancelHours     int    `gorm:"default:2" json:"minCancelHours"`
	MinDurationMinutes int    `gorm:"default:15" json:"minDurationMinutes"`
	MaxDurationMinutes int    `gorm:"default:120" json:"maxDurationMinutes"`
}

func (ProfessorSettings) TableName() string {
	return "professor_settings"
}

// DefaultProfessorSettings are used when a professor never saved any.
func DefaultProfessorSettings(professorID string) *ProfessorSettings {
	return &ProfessorSettings{
		ProfessorID:        professorID,
		MinAdvanceMinutes:  60,
		MinCancelHours:     2,
		MinDurationMinutes: 15,
		MaxDurationMinutes: 120,
	}
}
