package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
	SessionDiscarded  SessionStatus = "discarded"
)

type StudyMethod string

const (
	MethodPomodoro  StudyMethod = "pomodoro"
	MethodStopwatch StudyMethod = "stopwatch"
	MethodTimer     StudyMethod = "timer"
)

func ValidStudyMethod(m StudyMethod) bool {
	switch m {
	case MethodPomodoro, MethodStopwatch, MethodTimer:
		return true
	}
	return false
}

type PauseKind string

const (
	PauseManual      PauseKind = "manual"
	PauseDistraction PauseKind = "distraction"
)

// PauseInterval is one excluded sub-interval of a study session.
type PauseInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Kind  PauseKind `json:"kind"`
}

// PauseLog is stored as a JSON text column.
type PauseLog []PauseInterval

func (p PauseLog) Value() (driver.Value, error) {
	if p == nil {
		p = PauseLog{}
	}
	return json.Marshal(p)
}

func (p *PauseLog) Scan(value interface{}) error {
	if value == nil {
		*p = PauseLog{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PauseLog", value)
	}
	if len(raw) == 0 {
		*p = PauseLog{}
		return nil
	}
	return json.Unmarshal(raw, p)
}

type StudySession struct {
	UUIDBase
	StudentID         string  `gorm:"type:varchar(36);index;not null;uniqueIndex:idx_student_active,priority:1" json:"studentId"`
	CompanyID         string  `gorm:"type:varchar(36);index;not null" json:"companyId"`
	DisciplineID      *string `gorm:"type:varchar(36)" json:"disciplineId,omitempty"`
	FrontID           *string `gorm:"type:varchar(36)" json:"frontId,omitempty"`
	ModuleID          *string `gorm:"type:varchar(36)" json:"moduleId,omitempty"`
	RelatedActivityID *string `gorm:"type:varchar(36)" json:"relatedActivityId,omitempty"`

	StartedAt time.Time  `gorm:"not null" json:"start"`
	EndedAt   *time.Time `json:"end"`

	GrossDurationSeconds *int `json:"grossDurationSeconds"`
	NetDurationSeconds   *int `json:"netDurationSeconds"`

	Pauses      PauseLog      `gorm:"type:text" json:"pauseLog"`
	StudyMethod StudyMethod   `gorm:"size:20" json:"studyMethod,omitempty"`
	FocusLevel  *int          `json:"focusLevel,omitempty"`
	Status      SessionStatus `gorm:"type:enum('in_progress','completed','discarded');default:'in_progress'" json:"status"`

	// Active is 1 while the session is in progress and NULL once it
	// reaches a terminal status. MySQL allows many NULLs under a unique
	// index, so idx_student_active admits at most one live session per
	// student while any number of finished ones.
	Active *bool `gorm:"uniqueIndex:idx_student_active,priority:2" json:"-"`

	LastHeartbeatAt *time.Time `json:"lastHeartbeatAt,omitempty"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}

func (s *StudySession) InProgress() bool {
	return s.Status == SessionInProgress
}
