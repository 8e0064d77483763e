package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/SinesysTech/aluminify-sub018/internal/model"
	"github.com/SinesysTech/aluminify-sub018/internal/util"
)

// ReportStore persists report metadata; FindByID returns (nil, nil)
// when missing.
type ReportStore interface {
	Create(report *model.AppointmentReport) error
	FindByID(id string) (*model.AppointmentReport, error)
	ListByCompany(companyID string) ([]model.AppointmentReport, error)
}

// ReportService renders a company's appointments for one month into a
// CSV artifact and keeps it in object storage.
type ReportService struct {
	reports      ReportStore
	appointments AppointmentStore
	storage      *StorageService
	now          func() time.Time
}

func NewReportService(reports ReportStore, appointments AppointmentStore, storage *StorageService) *ReportService {
	return &ReportService{
		reports:      reports,
		appointments: appointments,
		storage:      storage,
		now:          time.Now,
	}
}

func (s *ReportService) GenerateMonthly(ctx context.Context, companyID, generatedBy string, year, month int) (*model.AppointmentReport, error) {
	if month < 1 || month > 12 {
		return nil, util.ValidationError("month must be between 1 and 12")
	}
	if year < 2000 || year > s.now().Year()+1 {
		return nil, util.ValidationError("invalid year")
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	appointments, err := s.appointments.ListByCompanyInRange(companyID, from, to)
	if err != nil {
		return nil, err
	}

	data, err := renderAppointmentCSV(appointments)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("reports/%s/appointments-%04d-%02d.csv", companyID, year, month)
	if err := s.storage.Upload(ctx, key, data, "text/csv"); err != nil {
		return nil, err
	}

	report := &model.AppointmentReport{
		CompanyID:   companyID,
		Year:        year,
		Month:       month,
		ObjectKey:   key,
		RowCount:    len(appointments),
		GeneratedBy: generatedBy,
	}
	if err := s.reports.Create(report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) List(companyID string) ([]model.AppointmentReport, error) {
	return s.reports.ListByCompany(companyID)
}

// Open returns the artifact stream for a company's report.
func (s *ReportService) Open(ctx context.Context, companyID, reportID string) (*model.AppointmentReport, io.ReadCloser, error) {
	report, err := s.reports.FindByID(reportID)
	if err != nil {
		return nil, nil, err
	}
	if report == nil || report.CompanyID != companyID {
		return nil, nil, util.NotFoundError("report not found")
	}

	stream, err := s.storage.Download(ctx, report.ObjectKey)
	if err != nil {
		return nil, nil, err
	}
	return report, stream, nil
}

func renderAppointmentCSV(appointments []model.Appointment) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "student_id", "professor_id", "starts_at", "ends_at", "service_type", "status"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, a := range appointments {
		row := []string{
			a.ID,
			a.StudentID,
			a.ProfessorID,
			a.StartsAt.UTC().Format(time.RFC3339),
			a.EndsAt.UTC().Format(time.RFC3339),
			string(a.ServiceType),
			string(a.Status),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
