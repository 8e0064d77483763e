package model

// AppointmentReport records a generated monthly CSV artifact.
type AppointmentReport struct {
	UUIDBase
	CompanyID   string `gorm:"type:varchar(36);index;not null" json:"companyId"`
	Year        int    `gorm:"not null" json:"year"`
	Month       int    `gorm:"not null" json:"month"` // 1-12
	ObjectKey   string `gorm:"size:500;not null" json:"objectKey"`
	RowCount    int    `gorm:"default:0" json:"rowCount"`
	GeneratedBy string `gorm:"type:varchar(36);not null" json:"generatedBy"`
}

func (AppointmentReport) TableName() string {
	return "appointment_reports"
}
