package service

import (
	"time"

	"github.com/SinesysTech/aluminify-sub018/internal/model"
	"github.com/SinesysTech/aluminify-sub018/internal/util"
)

// AppointmentStore persists bookings. Find methods return (nil, nil)
// when no row matches.
type AppointmentStore interface {
	Create(appointment *model.Appointment) error
	FindByID(id string) (*model.Appointment, error)
	Save(appointment *model.Appointment) error
	ListByStudent(studentID string, page, limit int) ([]model.Appointment, int64, error)
	ListByProfessor(professorID string, page, limit int) ([]model.Appointment, int64, error)
	ListByCompanyInRange(companyID string, from, to time.Time) ([]model.Appointment, error)
}

// UserDirectory resolves users; FindByID returns (nil, nil) when the
// user does not exist.
type UserDirectory interface {
	FindByID(id string) (*model.User, error)
}

type AppointmentService struct {
	store        AppointmentStore
	users        UserDirectory
	availability *AvailabilityService
	quota        *QuotaService
	now          func() time.Time
}

func NewAppointmentService(store AppointmentStore, users UserDirectory, availability *AvailabilityService, quota *QuotaService) *AppointmentService {
	return &AppointmentService{
		store:        store,
		users:        users,
		availability: availability,
		quota:        quota,
		now:          time.Now,
	}
}

type CreateAppointmentInput struct {
	ProfessorID string            `json:"professorId"`
	StartsAt    time.Time         `json:"startsAt"`
	EndsAt      time.Time         `json:"endsAt"`
	ServiceType model.ServiceType `json:"serviceType"`
	Notes       string            `json:"notes"`
}

// Create books a pending appointment after running the full validation
// chain: professor resolution, slot bookability, and the student's
// monthly quota.
func (s *AppointmentService) Create(studentID, companyID string, input CreateAppointmentInput) (*model.Appointment, error) {
	if input.ProfessorID == "" {
		return nil, util.ValidationError("professor id is required")
	}
	if !model.ValidServiceType(input.ServiceType) {
		return nil, util.ValidationError("invalid service type")
	}

	professor, err := s.users.FindByID(input.ProfessorID)
	if err != nil {
		return nil, err
	}
	if professor == nil || professor.CompanyID != companyID || professor.Disabled {
		return nil, util.NotFoundError("professor not found")
	}
	if !professor.Role.CanActAs(model.Professor) {
		return nil, util.ValidationError("selected user is not a professor")
	}

	slot := TimeSlot{Start: input.StartsAt, End: input.EndsAt}
	if err := s.availability.ValidateBooking(input.ProfessorID, companyID, slot); err != nil {
		return nil, err
	}

	info, err := s.quota.StudentQuotaInfo(studentID, companyID)
	if err != nil {
		return nil, err
	}
	if info.HasQuotaConfigured && *info.Remaining == 0 {
		return nil, util.ValidationError("monthly appointment quota exhausted")
	}

	appointment := &model.Appointment{
		CompanyID:   companyID,
		StudentID:   studentID,
		ProfessorID: input.ProfessorID,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		ServiceType: input.ServiceType,
		Status:      model.AppointmentPending,
		Notes:       input.Notes,
	}
	if err := s.store.Create(appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Confirm moves a pending appointment to confirmed, optionally
// attaching the meeting link.
func (s *AppointmentService) Confirm(professorID, appointmentID, meetingLink string) (*model.Appointment, error) {
	appointment, err := s.ownedByProfessor(professorID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.Status != model.AppointmentPending {
		return nil, util.ValidationError("only pending appointments can be confirmed")
	}

	appointment.Status = model.AppointmentConfirmed
	appointment.MeetingLink = meetingLink
	if err := s.store.Save(appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Reject declines a pending appointment with a reason the student sees.
func (s *AppointmentService) Reject(professorID, appointmentID, reason string) (*model.Appointment, error) {
	if reason == "" {
		return nil, util.ValidationError("a rejection reason is required")
	}

	appointment, err := s.ownedByProfessor(professorID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment.Status != model.AppointmentPending {
		return nil, util.ValidationError("only pending appointments can be rejected")
	}

	appointment.Status = model.AppointmentRejected
	appointment.CancelReason = reason
	if err := s.store.Save(appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Cancel cancels a pending or confirmed appointment. Students and
// professors may cancel their own; admins any in their company. The
// professor's cancellation window applies to everyone but admins.
func (s *AppointmentService) Cancel(callerID, companyID string, role model.UserRole, appointmentID, reason string) (*model.Appointment, error) {
	appointment, err := s.store.FindByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil || appointment.CompanyID != companyID {
		return nil, util.NotFoundError("appointment not found")
	}

	isParty := appointment.StudentID == callerID || appointment.ProfessorID == callerID
	if !isParty && role != model.Admin {
		return nil, util.NotFoundError("appointment not found")
	}

	if appointment.Status != model.AppointmentPending && appointment.Status != model.AppointmentConfirmed {
		return nil, util.ValidationError("appointment can no longer be cancelled")
	}

	if role != model.Admin {
		settings, err := s.availability.Settings(appointment.ProfessorID)
		if err != nil {
			return nil, err
		}
		deadline := appointment.StartsAt.Add(-time.Duration(settings.MinCancelHours) * time.Hour)
		if s.now().After(deadline) {
			return nil, util.ValidationError("too late to cancel this appointment")
		}
	}

	appointment.Status = model.AppointmentCancelled
	appointment.CancelReason = reason
	if err := s.store.Save(appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentService) ownedByProfessor(professorID, appointmentID string) (*model.Appointment, error) {
	if appointmentID == "" {
		return nil, util.ValidationError("appointment id is required")
	}
	appointment, err := s.store.FindByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil || appointment.ProfessorID != professorID {
		return nil, util.NotFoundError("appointment not found")
	}
	return appointment, nil
}

func (s *AppointmentService) ListForStudent(studentID string, page, limit int) ([]model.Appointment, int64, error) {
	page, limit = normalizePage(page, limit)
	return s.store.ListByStudent(studentID, page, limit)
}

func (s *AppointmentService) ListForProfessor(professorID string, page, limit int) ([]model.Appointment, int64, error) {
	page, limit = normalizePage(page, limit)
	return s.store.ListByProfessor(professorID, page, limit)
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
