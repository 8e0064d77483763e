package model

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentRejected  AppointmentStatus = "rejected"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type ServiceType string

const (
	ServicePlantao  ServiceType = "plantao" // drop-in tutoring duty
	ServiceMentoria ServiceType = "mentoria"
)

func ValidServiceType(t ServiceType) bool {
	return t == ServicePlantao || t == ServiceMentoria
}

type Appointment struct {
	UUIDBase
	CompanyID   string `gorm:"type:varchar(36);index;not null" json:"companyId"`
	StudentID   string `gorm:"type:varchar(36);index;not null" json:"studentId"`
	ProfessorID string `gorm:"type:varchar(36);index;not null" json:"professorId"`

	StartsAt time.Time `gorm:"not null;index" json:"startsAt"`
	EndsAt   time.Time `gorm:"not null" json:"endsAt"`

	ServiceType ServiceType       `gorm:"type:enum('plantao','mentoria');not null" json:"serviceType"`
	Status      AppointmentStatus `gorm:"type:enum('pending','confirmed','rejected','cancelled');default:'pending'" json:"status"`

	Notes        string `gorm:"type:text" json:"notes,omitempty"`
	MeetingLink  string `gorm:"size:500" json:"meetingLink,omitempty"`
	CancelReason string `gorm:"size:500" json:"cancelReason,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// CountsAgainstQuota reports whether this appointment consumes the
// student's monthly allowance. Cancelled and rejected bookings give the
// slot back.
func (a *Appointment) CountsAgainstQuota() bool {
	return a.Status != AppointmentCancelled && a.Status != AppointmentRejected
}
