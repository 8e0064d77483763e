package repository

import (
	"errors"
	"time"

	"github.com/SinesysTech/aluminify-sub018/internal/model"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	DB *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: db}
}

func (r *AppointmentRepository) Create(appointment *model.Appointment) error {
	return r.DB.Create(appointment).Error
}

func (r *AppointmentRepository) FindByID(id string) (*model.Appointment, error) {
	var appointment model.Appointment
	err := r.DB.Where("id = ?", id).First(&appointment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *AppointmentRepository) Save(appointment *model.Appointment) error {
	return r.DB.Save(appointment).Error
}

// CountForStudentInRange counts quota-consuming appointments starting
// inside [from, to).
func (r *AppointmentRepository) CountForStudentInRange(studentID, companyID string, from, to time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Appointment{}).
		Where("student_id = ? AND company_id = ?", studentID, companyID).
		Where("starts_at >= ? AND starts_at < ?", from, to).
		Where("status NOT IN ?", []model.AppointmentStatus{model.AppointmentCancelled, model.AppointmentRejected}).
		Count(&count).Error
	return count, err
}

// ForProfessorInRange returns appointments overlapping [from, to).
func (r *AppointmentRepository) ForProfessorInRange(professorID string, from, to time.Time) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := r.DB.Where("professor_id = ?", professorID).
		Where("starts_at < ? AND ends_at > ?", to, from).
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) ListByStudent(studentID string, page, limit int) ([]model.Appointment, int64, error) {
	return r.list("student_id = ?", studentID, page, limit)
}

func (r *AppointmentRepository) ListByProfessor(professorID string, page, limit int) ([]model.Appointment, int64, error) {
	return r.list("professor_id = ?", professorID, page, limit)
}

func (r *AppointmentRepository) list(cond, value string, page, limit int) ([]model.Appointment, int64, error) {
	var appointments []model.Appointment
	var total int64

	query := r.DB.Model(&model.Appointment{}).Where(cond, value)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("starts_at DESC").Offset(offset).Limit(limit).Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *AppointmentRepository) ListByCompanyInRange(companyID string, from, to time.Time) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := r.DB.Where("company_id = ?", companyID).
		Where("starts_at >= ? AND starts_at < ?", from, to).
		Order("starts_at ASC").
		Find(&appointments).Error
	return appointments, err
}
