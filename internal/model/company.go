package model

// Company is a tenant. Every domain row is scoped by CompanyID.
type Company struct {
	UUIDBase
	Name     string `gorm:"size:150;not null" json:"name"`
	Slug     string `gorm:"size:100;unique;not null" json:"slug"`
	Timezone string `gorm:"size:64" json:"timezone"` // IANA name; empty means UTC

	// MonthlyMentoringQuota caps bookable mentoring appointments per
	// student per calendar month. 0 means the tenant never configured a
	// quota and booking is unrestricted.
	MonthlyMentoringQuota int `gorm:"default:0" json:"monthlyMentoringQuota"`

	Active bool `gorm:"default:true" json:"active"`
}

func (Company) TableName() string {
	return "companies"
}
