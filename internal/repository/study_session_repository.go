package repository

import (
	"errors"
	"time"

	"github.com/SinesysTech/aluminify-sub018/internal/model"
	"github.com/SinesysTech/aluminify-sub018/internal/util"

	"gorm.io/gorm"
)

type StudySessionRepository struct {
	DB *gorm.DB
}

func NewStudySessionRepository(db *gorm.DB) *StudySessionRepository {
	return &StudySessionRepository{DB: db}
}

// Create inserts a new in-progress session. The unique index on
// (student_id, active) rejects a second live session for the same
// student even under concurrent inserts; the driver error is translated
// into the conflict taxonomy here so callers never see a raw duplicate
// key error.
func (r *StudySessionRepository) Create(session *model.StudySession) error {
	err := r.DB.Create(session).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ConflictError("another study session is already in progress")
	}
	return err
}

// FindByID returns (nil, nil) when no session exists.
func (r *StudySessionRepository) FindByID(id string) (*model.StudySession, error) {
	var session model.StudySession
	err := r.DB.Where("id = ?", id).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *StudySessionRepository) FindActiveByStudent(studentID string) (*model.StudySession, error) {
	var session model.StudySession
	err := r.DB.Where("student_id = ? AND status = ?", studentID, model.SessionInProgress).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Finalize writes the terminal state with a compare-and-swap on
// status=in_progress, so a session can only be finalized once. Zero rows
// affected means someone got there first.
func (r *StudySessionRepository) Finalize(session *model.StudySession) error {
	res := r.DB.Model(&model.StudySession{}).
		Where("id = ? AND student_id = ? AND status = ?",
			session.ID, session.StudentID, model.SessionInProgress).
		Updates(map[string]interface{}{
			"ended_at":               session.EndedAt,
			"gross_duration_seconds": session.GrossDurationSeconds,
			"net_duration_seconds":   session.NetDurationSeconds,
			"pauses":                 session.Pauses,
			"focus_level":            session.FocusLevel,
			"status":                 session.Status,
			"active":                 nil,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ValidationError("session is no longer in progress")
	}
	return nil
}

func (r *StudySessionRepository) Heartbeat(sessionID string, at time.Time) error {
	return r.DB.Model(&model.StudySession{}).
		Where("id = ? AND status = ?", sessionID, model.SessionInProgress).
		Update("last_heartbeat_at", at).Error
}

func (r *StudySessionRepository) ListByStudent(studentID string, page, limit int) ([]model.StudySession, int64, error) {
	var sessions []model.StudySession
	var total int64

	query := r.DB.Model(&model.StudySession{}).Where("student_id = ?", studentID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("started_at DESC").Offset(offset).Limit(limit).Find(&sessions).Error
	if err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}
