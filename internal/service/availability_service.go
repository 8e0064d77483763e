package service

import (
	"time"

	"github.com/SinesysTech/aluminify-sub018/internal/model"
	"github.com/SinesysTech/aluminify-sub018/internal/util"
)

// AvailabilityStore persists recurring rules and professor settings.
// Find methods return (nil, nil) when no row matches.
type AvailabilityStore interface {
	RulesForProfessor(professorID string) ([]model.AvailabilityRule, error)
	FindRuleByID(id string) (*model.AvailabilityRule, error)
	CreateRule(rule *model.AvailabilityRule) error
	SaveRule(rule *model.AvailabilityRule) error
	DeleteRule(id string) error
	SettingsForProfessor(professorID string) (*model.ProfessorSettings, error)
	SaveSettings(settings *model.ProfessorSettings) error
}

// BlockageStore persists time-off blocks.
type BlockageStore interface {
	InRange(companyID string, from, to time.Time) ([]model.Blockage, error)
	ListByCompany(companyID string) ([]model.Blockage, error)
	FindByID(id string) (*model.Blockage, error)
	Create(blockage *model.Blockage) error
	Save(blockage *model.Blockage) error
	Delete(id string) error
}

// BookedSlotSource exposes the appointments that already occupy a
// professor's time.
type BookedSlotSource interface {
	ForProfessorInRange(professorID string, from, to time.Time) ([]model.Appointment, error)
}

// AvailabilityService reconciles recurring availability rules with
// blockages and existing bookings into concrete open slots.
type AvailabilityService struct {
	rules     AvailabilityStore
	blockages BlockageStore
	booked    BookedSlotSource
	now       func() time.Time
}

func NewAvailabilityService(rules AvailabilityStore, blockages BlockageStore, booked BookedSlotSource) *AvailabilityService {
	return &AvailabilityService{
		rules:     rules,
		blockages: blockages,
		booked:    booked,
		now:       time.Now,
	}
}

// ResolveAvailableSlots produces the professor's open slots for one
// date: recurrence-generated candidates minus existing bookings and
// blockage intervals, honoring the professor's minimum advance.
func (s *AvailabilityService) ResolveAvailableSlots(professorID, companyID string, date time.Time) ([]TimeSlot, error) {
	if professorID == "" {
		return nil, util.ValidationError("professor id is required")
	}

	rules, err := s.rules.RulesForProfessor(professorID)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return []TimeSlot{}, nil
	}

	settings, err := s.Settings(professorID)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	blocked, err := s.blockedIntervals(professorID, companyID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	minAllowed := s.now().Add(time.Duration(settings.MinAdvanceMinutes) * time.Minute)
	slots, err := GenerateSlots(date, rules, blocked, minAllowed)
	if err != nil {
		return nil, err
	}
	if slots == nil {
		slots = []TimeSlot{}
	}
	return slots, nil
}

// blockedIntervals merges existing bookings with blockage windows.
func (s *AvailabilityService) blockedIntervals(professorID, companyID string, from, to time.Time) ([]TimeSlot, error) {
	appointments, err := s.booked.ForProfessorInRange(professorID, from, to)
	if err != nil {
		return nil, err
	}

	blocked := make([]TimeSlot, 0, len(appointments))
	for _, a := range appointments {
		if a.Status == model.AppointmentCancelled || a.Status == model.AppointmentRejected {
			continue
		}
		blocked = append(blocked, TimeSlot{Start: a.StartsAt, End: a.EndsAt})
	}

	blockages, err := s.blockages.InRange(companyID, from, to)
	if err != nil {
		return nil, err
	}
	for _, b := range blockages {
		if !b.Covers(professorID) {
			continue
		}
		blocked = append(blocked, TimeSlot{Start: b.StartsAt, End: b.EndsAt})
	}
	return blocked, nil
}

// ValidateBooking runs the full bookability check for one candidate
// slot: duration bounds, minimum advance, containment in the
// professor's recurring rules, and absence of conflicts with existing
// bookings and blockages.
func (s *AvailabilityService) ValidateBooking(professorID, companyID string, slot TimeSlot) error {
	if !slot.End.After(slot.Start) {
		return util.ValidationError("appointment end must be after start")
	}

	settings, err := s.Settings(professorID)
	if err != nil {
		return err
	}

	duration := int(slot.End.Sub(slot.Start).Minutes())
	if duration < settings.MinDurationMinutes {
		return util.ValidationError("appointment is shorter than the minimum duration")
	}
	if duration > settings.MaxDurationMinutes {
		return util.ValidationError("appointment is longer than the maximum duration")
	}

	minAllowed := s.now().Add(time.Duration(settings.MinAdvanceMinutes) * time.Minute)
	if slot.Start.Before(minAllowed) {
		return util.ValidationError("appointment does not meet the minimum advance window")
	}

	rules, err := s.rules.RulesForProfessor(professorID)
	if err != nil {
		return err
	}
	if !WithinRules(slot, rules) {
		return util.ValidationError("requested time is outside the professor's availability")
	}

	blocked, err := s.blockedIntervals(professorID, companyID, slot.Start, slot.End)
	if err != nil {
		return err
	}
	if conflictsAny(slot, blocked) {
		return util.ConflictError("the requested time slot is no longer available")
	}
	return nil
}

// Settings returns the professor's booking constraints, falling back to
// defaults when none were saved.
func (s *AvailabilityService) Settings(professorID string) (*model.ProfessorSettings, error) {
	settings, err := s.rules.SettingsForProfessor(professorID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return model.DefaultProfessorSettings(professorID), nil
	}
	return settings, nil
}

type SaveSettingsInput struct {
	MinAdvanceMinutes  int `json:"minAdvanceMinutes"`
	MinCancelHours     int `json:"minCancelHours"`
	MinDurationMinutes int `json:"minDurationMinutes"`
	MaxDurationMinutes int `json:"maxDurationMinutes"`
}

func (s *AvailabilityService) SaveSettings(professorID string, input SaveSettingsInput) (*model.ProfessorSettings, error) {
	if input.MinAdvanceMinutes < 0 || input.MinCancelHours < 0 {
		return nil, util.ValidationError("advance and cancellation windows must not be negative")
	}
	if input.MinDurationMinutes <= 0 || input.MaxDurationMinutes < input.MinDurationMinutes {
		return nil, util.ValidationError("invalid duration bounds")
	}

	settings, err := s.rules.SettingsForProfessor(professorID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		settings = &model.ProfessorSettings{ProfessorID: professorID}
	}
	settings.MinAdvanceMinutes = input.MinAdvanceMinutes
	settings.MinCancelHours = input.MinCancelHours
	settings.MinDurationMinutes = input.MinDurationMinutes
	settings.MaxDurationMinutes = input.MaxDurationMinutes

	if err := s.rules.SaveSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (s *AvailabilityService) ListRules(professorID string) ([]model.AvailabilityRule, error) {
	return s.rules.RulesForProfessor(professorID)
}

type RuleInput struct {
	Weekday             int        `json:"weekday"`
	StartTime           string     `json:"startTime"`
	EndTime             string     `json:"endTime"`
	SlotDurationMinutes int        `json:"slotDurationMinutes"`
	Active              *bool      `json:"active"`
	EffectiveFrom       *time.Time `json:"effectiveFrom"`
	EffectiveUntil      *time.Time `json:"effectiveUntil"`
}

func validateRuleInput(input RuleInput) error {
	if input.Weekday < 0 || input.Weekday > 6 {
		return util.ValidationError("weekday must be between 0 and 6")
	}
	start, err := ParseClock(input.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseClock(input.EndTime)
	if err != nil {
		return err
	}
	if end <= start {
		return util.ValidationError("rule end time must be after start time")
	}
	if input.SlotDurationMinutes < 0 {
		return util.ValidationError("slot duration must not be negative")
	}
	return nil
}

func (s *AvailabilityService) CreateRule(professorID, companyID string, input RuleInput) (*model.AvailabilityRule, error) {
	if err := validateRuleInput(input); err != nil {
		return nil, err
	}

	rule := &model.AvailabilityRule{
		CompanyID:           companyID,
		ProfessorID:         professorID,
		Weekday:             input.Weekday,
		StartTime:           input.StartTime,
		EndTime:             input.EndTime,
		SlotDurationMinutes: input.SlotDurationMinutes,
		Active:              true,
		EffectiveFrom:       input.EffectiveFrom,
		EffectiveUntil:      input.EffectiveUntil,
	}
	if rule.SlotDurationMinutes == 0 {
		rule.SlotDurationMinutes = 30
	}
	if input.Active != nil {
		rule.Active = *input.Active
	}

	if err := s.rules.CreateRule(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *AvailabilityService) UpdateRule(professorID, ruleID string, input RuleInput) (*model.AvailabilityRule, error) {
	if err := validateRuleInput(input); err != nil {
		return nil, err
	}

	rule, err := s.rules.FindRuleByID(ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil || rule.ProfessorID != professorID {
		return nil, util.NotFoundError("availability rule not found")
	}

	rule.Weekday = input.Weekday
	rule.StartTime = input.StartTime
	rule.EndTime = input.EndTime
	if input.SlotDurationMinutes > 0 {
		rule.SlotDurationMinutes = input.SlotDurationMinutes
	}
	if input.Active != nil {
		rule.Active = *input.Active
	}
	rule.EffectiveFrom = input.EffectiveFrom
	rule.EffectiveUntil = input.EffectiveUntil

	if err := s.rules.SaveRule(rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *AvailabilityService) DeleteRule(professorID, ruleID string) error {
	rule, err := s.rules.FindRuleByID(ruleID)
	if err != nil {
		return err
	}
	if rule == nil || rule.ProfessorID != professorID {
		return util.NotFoundError("availability rule not found")
	}
	return s.rules.DeleteRule(ruleID)
}

func (s *AvailabilityService) ListBlockages(companyID string) ([]model.Blockage, error) {
	return s.blockages.ListByCompany(companyID)
}

type BlockageInput struct {
	ProfessorID *string   `json:"professorId"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	Reason      string    `json:"reason"`
}

func (s *AvailabilityService) CreateBlockage(companyID string, input BlockageInput) (*model.Blockage, error) {
	if !input.EndsAt.After(input.StartsAt) {
		return nil, util.ValidationError("blockage end must be after start")
	}

	blockage := &model.Blockage{
		CompanyID:   companyID,
		ProfessorID: input.ProfessorID,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
		Reason:      input.Reason,
	}
	if err := s.blockages.Create(blockage); err != nil {
		return nil, err
	}
	return blockage, nil
}

func (s *AvailabilityService) UpdateBlockage(companyID, blockageID string, input BlockageInput) (*model.Blockage, error) {
	if !input.EndsAt.After(input.StartsAt) {
		return nil, util.ValidationError("blockage end must be after start")
	}

	blockage, err := s.blockages.FindByID(blockageID)
	if err != nil {
		return nil, err
	}
	if blockage == nil || blockage.CompanyID != companyID {
		return nil, util.NotFoundError("blockage not found")
	}

	blockage.ProfessorID = input.ProfessorID
	blockage.StartsAt = input.StartsAt
	blockage.EndsAt = input.EndsAt
	blockage.Reason = input.Reason

	if err := s.blockages.Save(blockage); err != nil {
		return nil, err
	}
	return blockage, nil
}

func (s *AvailabilityService) DeleteBlockage(companyID, blockageID string) error {
	blockage, err := s.blockages.FindByID(blockageID)
	if err != nil {
		return err
	}
	if blockage == nil || blockage.CompanyID != companyID {
		return util.NotFoundError("blockage not found")
	}
	return s.blockages.Delete(blockageID)
}
