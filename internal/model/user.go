package model

import (
	"time"
)

type UserRole string

const (
	Student   UserRole = "student"
	Professor UserRole = "professor"
	Admin     UserRole = "admin"
)

// CanActAs is the single authorization policy consulted by the role
// middleware. Admins hold every permission; other roles only their own.
func (r UserRole) CanActAs(required ...UserRole) bool {
	if r == Admin {
		return true
	}
	for _, want := range required {
		if r == want {
			return true
		}
	}
	return false
}

func ValidRole(r UserRole) bool {
	switch r {
	case Student, Professor, Admin:
		return true
	}
	return false
}

type User struct {
	UUIDBase
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;unique;not null" json:"email"`
	Password  string    `gorm:"size:100;not null" json:"-"`
	Role      UserRole  `gorm:"type:enum('student','professor','admin');default:'student'" json:"role"`
	CompanyID string    `gorm:"type:varchar(36);index;not null" json:"companyId"`
	Avatar    string    `gorm:"size:255" json:"avatar"`
	Disabled  bool      `gorm:"default:false" json:"disabled"`
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
