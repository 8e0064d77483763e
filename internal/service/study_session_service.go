package service

import (
	"context"
	"time"

	"github.com/SinesysTech/aluminify-sub018/internal/model"
	"github.com/SinesysTech/aluminify-sub018/internal/util"
)

const (
	// startFutureTolerance absorbs client/server clock drift on
	// client-reported timestamps.
	startFutureTolerance = 2 * time.Minute
	// startMaxPastWindow bounds how far back a background timer may
	// claim a session started.
	startMaxPastWindow = 24 * time.Hour

	focusLevelMin = 1
	focusLevelMax = 5
)

// SessionStore is the persistence contract of the lifecycle manager.
// Find methods return (nil, nil) when no row matches.
type SessionStore interface {
	Create(session *model.StudySession) error
	FindByID(id string) (*model.StudySession, error)
	FindActiveByStudent(studentID string) (*model.StudySession, error)
	Finalize(session *model.StudySession) error
	Heartbeat(sessionID string, at time.Time) error
	ListByStudent(studentID string, page, limit int) ([]model.StudySession, int64, error)
}

// HeartbeatCache is the write-behind layer in front of the heartbeat
// column.
type HeartbeatCache interface {
	LastHeartbeat(ctx context.Context, sessionID string) (time.Time, bool, error)
	StoreHeartbeat(ctx context.Context, sessionID string, at time.Time, needsFlush bool) error
	Invalidate(ctx context.Context, sessionID string) error
}

type StudySessionService struct {
	store         SessionStore
	cache         HeartbeatCache
	flushInterval time.Duration
	now           func() time.Time
}

func NewStudySessionService(store SessionStore, cache HeartbeatCache, flushInterval time.Duration) *StudySessionService {
	return &StudySessionService{
		store:         store,
		cache:         cache,
		flushInterval: flushInterval,
		now:           time.Now,
	}
}

type StartSessionInput struct {
	DisciplineID      *string           `json:"disciplineId"`
	FrontID           *string           `json:"frontId"`
	ModuleID          *string           `json:"moduleId"`
	RelatedActivityID *string           `json:"relatedActivityId"`
	StudyMethod       model.StudyMethod `json:"studyMethod"`
	StartTime         *time.Time        `json:"startTime"`
}

// Start opens a new in-progress session for the student. A student with
// a live session gets a conflict, never a silent discard of the old one:
// auto-closing would throw away duration data the client still intends
// to finalize.
func (s *StudySessionService) Start(studentID, companyID string, input StartSessionInput) (*model.StudySession, error) {
	if studentID == "" {
		return nil, util.ValidationError("student id is required")
	}
	if input.StudyMethod != "" && !model.ValidStudyMethod(input.StudyMethod) {
		return nil, util.ValidationError("invalid study method")
	}

	now := s.now()
	startedAt := now
	if input.StartTime != nil {
		if input.StartTime.After(now.Add(startFutureTolerance)) {
			return nil, util.ValidationError("start time is in the future")
		}
		if input.StartTime.Before(now.Add(-startMaxPastWindow)) {
			return nil, util.ValidationError("start time is too far in the past")
		}
		startedAt = *input.StartTime
	}

	existing, err := s.store.FindActiveByStudent(studentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ConflictError("another study session is already in progress")
	}

	active := true
	session := &model.StudySession{
		StudentID:         studentID,
		CompanyID:         companyID,
		DisciplineID:      input.DisciplineID,
		FrontID:           input.FrontID,
		ModuleID:          input.ModuleID,
		RelatedActivityID: input.RelatedActivityID,
		StudyMethod:       input.StudyMethod,
		StartedAt:         startedAt,
		Status:            model.SessionInProgress,
		Pauses:            model.PauseLog{},
		Active:            &active,
		LastHeartbeatAt:   &now,
	}

	// The check above is only a fast path; the store's uniqueness
	// constraint is what actually closes the race window.
	if err := s.store.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Heartbeat records liveness for an in-progress session. Repeated calls
// are safe: nothing duration-related is touched, and beats arriving
// within the flush interval only refresh the cache entry instead of
// writing through to the store.
func (s *StudySessionService) Heartbeat(ctx context.Context, studentID, sessionID string) error {
	if studentID == "" {
		return util.ValidationError("student id is required")
	}
	if sessionID == "" {
		return util.ValidationError("session id is required")
	}

	now := s.now()

	// Cache errors degrade to a store write, they never fail the beat.
	// A fresh cache entry also short-circuits the ownership and status
	// checks; those re-run against the store on the next write-through,
	// trading a window of unchecked beats for one round trip per flush.
	if last, ok, err := s.cache.LastHeartbeat(ctx, sessionID); err == nil && ok {
		if now.Sub(last) < s.flushInterval {
			s.cache.StoreHeartbeat(ctx, sessionID, now, true)
			return nil
		}
	}

	session, err := s.store.FindByID(sessionID)
	if err != nil {
		return err
	}
	if session == nil || session.StudentID != studentID {
		return util.NotFoundError("session not found")
	}
	if !session.InProgress() {
		return util.ValidationError("session is no longer in progress")
	}

	if err := s.store.Heartbeat(sessionID, now); err != nil {
		return err
	}
	s.cache.StoreHeartbeat(ctx, sessionID, now, false)
	return nil
}

type FinalizeSessionInput struct {
	SessionID  string              `json:"sessionId"`
	PauseLog   model.PauseLog      `json:"pauseLog"`
	EndTime    *time.Time          `json:"endTime"`
	FocusLevel *int                `json:"focusLevel"`
	Status     model.SessionStatus `json:"status"`
}

// Finalize closes an in-progress session, computing its durations from
// the effective end time and the reported pause log. The terminal row is
// immutable: a second finalize fails.
func (s *StudySessionService) Finalize(ctx context.Context, studentID string, input FinalizeSessionInput) (*model.StudySession, error) {
	if studentID == "" {
		return nil, util.ValidationError("student id is required")
	}
	if input.SessionID == "" {
		return nil, util.ValidationError("session id is required")
	}

	status := input.Status
	if status == "" {
		status = model.SessionCompleted
	}
	if status != model.SessionCompleted && status != model.SessionDiscarded {
		return nil, util.ValidationError("status must be completed or discarded")
	}
	if input.FocusLevel != nil && (*input.FocusLevel < focusLevelMin || *input.FocusLevel > focusLevelMax) {
		return nil, util.ValidationError("focus level must be between 1 and 5")
	}

	session, err := s.store.FindByID(input.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.StudentID != studentID {
		return nil, util.NotFoundError("session not found")
	}
	if !session.InProgress() {
		return nil, util.ValidationError("session already finalized")
	}

	now := s.now()
	end := now
	if input.EndTime != nil {
		if input.EndTime.After(now.Add(startFutureTolerance)) {
			return nil, util.ValidationError("end time is in the future")
		}
		end = *input.EndTime
	}

	pauses := input.PauseLog
	if pauses == nil {
		pauses = model.PauseLog{}
	}

	durations, err := ComputeDurations(session.StartedAt, end, pauses)
	if err != nil {
		return nil, err
	}

	session.EndedAt = &end
	session.GrossDurationSeconds = &durations.GrossSeconds
	session.NetDurationSeconds = &durations.NetSeconds
	session.Pauses = pauses
	session.FocusLevel = input.FocusLevel
	session.Status = status
	session.Active = nil

	if err := s.store.Finalize(session); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, session.ID)
	return session, nil
}

// Active returns the student's in-progress session, or nil.
func (s *StudySessionService) Active(studentID string) (*model.StudySession, error) {
	if studentID == "" {
		return nil, util.ValidationError("student id is required")
	}
	return s.store.FindActiveByStudent(studentID)
}

func (s *StudySessionService) List(studentID string, page, limit int) ([]model.StudySession, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.store.ListByStudent(studentID, page, limit)
}
