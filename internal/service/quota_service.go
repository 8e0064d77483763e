package service

import (
	"time"

	"github.com/SinesysTech/aluminify-sub018/internal/model"
	"github.com/SinesysTech/aluminify-sub018/internal/util"
)

// CompanyStore resolves tenant configuration. FindByID returns
// (nil, nil) when the company does not exist.
type CompanyStore interface {
	FindByID(id string) (*model.Company, error)
}

// AppointmentCounter counts a student's quota-consuming appointments in
// a time range.
type AppointmentCounter interface {
	CountForStudentInRange(studentID, companyID string, from, to time.Time) (int64, error)
}

// QuotaInfo is the derived monthly-allowance projection. Remaining is
// nil when the tenant never configured a quota: booking is then
// unrestricted and the field serializes as JSON null.
type QuotaInfo struct {
	TotalQuota         int  `json:"totalQuota"`
	UsedThisMonth      int  `json:"usedThisMonth"`
	Remaining          *int `json:"remaining"`
	HasQuotaConfigured bool `json:"hasQuotaConfigured"`
}

type QuotaService struct {
	companies    CompanyStore
	appointments AppointmentCounter
	now          func() time.Time
}

func NewQuotaService(companies CompanyStore, appointments AppointmentCounter) *QuotaService {
	return &QuotaService{
		companies:    companies,
		appointments: appointments,
		now:          time.Now,
	}
}

// StudentQuotaInfo computes the student's allowance for the current
// calendar month. Month boundaries are evaluated in the company's
// configured timezone, UTC when unset. Read-only.
func (s *QuotaService) StudentQuotaInfo(studentID, companyID string) (*QuotaInfo, error) {
	if studentID == "" {
		return nil, util.ValidationError("student id is required")
	}

	company, err := s.companies.FindByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, util.NotFoundError("company not found")
	}

	from, to := monthBounds(s.now(), companyLocation(company))
	used, err := s.appointments.CountForStudentInRange(studentID, companyID, from, to)
	if err != nil {
		return nil, err
	}

	info := &QuotaInfo{
		TotalQuota:    company.MonthlyMentoringQuota,
		UsedThisMonth: int(used),
	}
	if company.MonthlyMentoringQuota > 0 {
		info.HasQuotaConfigured = true
		remaining := company.MonthlyMentoringQuota - info.UsedThisMonth
		if remaining < 0 {
			remaining = 0
		}
		info.Remaining = &remaining
	}
	return info, nil
}

func companyLocation(company *model.Company) *time.Location {
	if company.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(company.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// monthBounds returns [start of month, start of next month) around now
// in the given location.
func monthBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	from := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 1, 0)
	return from, to
}
