package repository

import (
	"errors"

	"github.com/SinesysTech/aluminify-sub018/internal/model"

	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

func (r *ReportRepository) Create(report *model.AppointmentReport) error {
	return r.DB.Create(report).Error
}

func (r *ReportRepository) FindByID(id string) (*model.AppointmentReport, error) {
	var report model.AppointmentReport
	err := r.DB.Where("id = ?", id).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) ListByCompany(companyID string) ([]model.AppointmentReport, error) {
	var reports []model.AppointmentReport
	err := r.DB.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}
