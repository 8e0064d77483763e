package service

import (
	"testing"
	"time"

	"github.com/SinesysTech/aluminify-sub018/internal/model"
	"github.com/SinesysTech/aluminify-sub018/internal/util"
)

func newAvailabilityFixture(t *testing.T) (*AvailabilityService, *fakeAvailabilityStore, *fakeBlockageStore, *fakeAppointmentStore) {
	t.Helper()

	rule := weeklyRule(1, "09:00", "12:00", 30)
	rule.ID = "rule-1"
	rule.CompanyID = testCompanyID
	rule.ProfessorID = testProfessorID

	rules := &fakeAvailabilityStore{rules: []model.AvailabilityRule{rule}}
	blockages := &fakeBlockageStore{}
	booked := newFakeAppointmentStore()

	svc := NewAvailabilityService(rules, blockages, booked)
	// Monday 2026-03-09, 07:00 UTC: the whole 09:00-12:00 window clears
	// the default 60-minute advance.
	svc.now = func() time.Time { return time.Date(2026, 3, 9, 7, 0, 0, 0, time.UTC) }
	return svc, rules, blockages, booked
}

func TestResolveAvailableSlots(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture(t)

	slots, err := svc.ResolveAvailableSlots(testProfessorID, testCompanyID, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("got %d slots, want 6", len(slots))
	}
	if !slots[0].Start.Equal(monday.Add(9 * time.Hour)) {
		t.Errorf("first slot starts %v, want 09:00", slots[0].Start)
	}
}

func TestResolveAvailableSlotsSubtractsBookings(t *testing.T) {
	svc, _, _, booked := newAvailabilityFixture(t)

	booked.Create(&model.Appointment{
		CompanyID:   testCompanyID,
		StudentID:   testStudentID,
		ProfessorID: testProfessorID,
		StartsAt:    monday.Add(10 * time.Hour),
		EndsAt:      monday.Add(10*time.Hour + 30*time.Minute),
		ServiceType: model.ServiceMentoria,
		Status:      model.AppointmentConfirmed,
	})

	slots, err := svc.ResolveAvailableSlots(testProfessorID, testCompanyID, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, s := range slots {
		if s.Start.Equal(monday.Add(10 * time.Hour)) {
			t.Fatal("booked slot still offered")
		}
	}
	if len(slots) != 5 {
		t.Fatalf("got %d slots, want 5", len(slots))
	}
}

func TestResolveAvailableSlotsIgnoresCancelledBookings(t *testing.T) {
	svc, _, _, booked := newAvailabilityFixture(t)

	booked.Create(&model.Appointment{
		CompanyID:   testCompanyID,
		StudentID:   testStudentID,
		ProfessorID: testProfessorID,
		StartsAt:    monday.Add(10 * time.Hour),
		EndsAt:      monday.Add(10*time.Hour + 30*time.Minute),
		ServiceType: model.ServiceMentoria,
		Status:      model.AppointmentCancelled,
	})

	slots, err := svc.ResolveAvailableSlots(testProfessorID, testCompanyID, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("got %d slots, want 6 (cancelled bookings free their slot)", len(slots))
	}
}

func TestResolveAvailableSlotsCompanyWideBlockage(t *testing.T) {
	svc, _, blockages, _ := newAvailabilityFixture(t)

	// No professor set: a holiday blocking the whole company.
	blockages.Create(&model.Blockage{
		CompanyID: testCompanyID,
		StartsAt:  monday.Add(9 * time.Hour),
		EndsAt:    monday.Add(12 * time.Hour),
		Reason:    "holiday",
	})

	slots, err := svc.ResolveAvailableSlots(testProfessorID, testCompanyID, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("got %d slots, want 0", len(slots))
	}
}

func TestResolveAvailableSlotsOtherProfessorsBlockage(t *testing.T) {
	svc, _, blockages, _ := newAvailabilityFixture(t)

	other := "professor-2"
	blockages.Create(&model.Blockage{
		CompanyID:   testCompanyID,
		ProfessorID: &other,
		StartsAt:    monday.Add(9 * time.Hour),
		EndsAt:      monday.Add(12 * time.Hour),
	})

	slots, err := svc.ResolveAvailableSlots(testProfessorID, testCompanyID, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 6 {
		t.Fatalf("got %d slots, want 6 (another professor's blockage must not apply)", len(slots))
	}
}

func TestResolveAvailableSlotsNoRules(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture(t)

	slots, err := svc.ResolveAvailableSlots("professor-without-rules", testCompanyID, monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slots == nil || len(slots) != 0 {
		t.Fatalf("want empty non-nil slice, got %v", slots)
	}
}

func TestSettingsFallback(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture(t)

	settings, err := svc.Settings(testProfessorID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.MinAdvanceMinutes != 60 || settings.MinCancelHours != 2 {
		t.Errorf("defaults = %+v", settings)
	}
	if settings.MinDurationMinutes != 15 || settings.MaxDurationMinutes != 120 {
		t.Errorf("duration defaults = %+v", settings)
	}
}

func TestSaveSettings(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture(t)

	saved, err := svc.SaveSettings(testProfessorID, SaveSettingsInput{
		MinAdvanceMinutes:  120,
		MinCancelHours:     4,
		MinDurationMinutes: 30,
		MaxDurationMinutes: 60,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.MinAdvanceMinutes != 120 {
		t.Errorf("advance = %d, want 120", saved.MinAdvanceMinutes)
	}

	got, err := svc.Settings(testProfessorID)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if got.MinCancelHours != 4 {
		t.Errorf("cancel hours = %d, want 4", got.MinCancelHours)
	}
}

func TestSaveSettingsValidation(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture(t)

	tests := []struct {
		name  string
		input SaveSettingsInput
	}{
		{"negative advance", SaveSettingsInput{MinAdvanceMinutes: -1, MinDurationMinutes: 15, MaxDurationMinutes: 60}},
		{"zero min duration", SaveSettingsInput{MinDurationMinutes: 0, MaxDurationMinutes: 60}},
		{"max below min", SaveSettingsInput{MinDurationMinutes: 60, MaxDurationMinutes: 30}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.SaveSettings(testProfessorID, tt.input); !util.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRuleCRUD(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture(t)

	created, err := svc.CreateRule(testProfessorID, testCompanyID, RuleInput{
		Weekday:   3,
		StartTime: "14:00",
		EndTime:   "16:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.SlotDurationMinutes != 30 {
		t.Errorf("slot duration = %d, want default 30", created.SlotDurationMinutes)
	}
	if !created.Active {
		t.Error("new rule should default to active")
	}

	inactive := false
	updated, err := svc.UpdateRule(testProfessorID, created.ID, RuleInput{
		Weekday:   3,
		StartTime: "15:00",
		EndTime:   "17:00",
		Active:    &inactive,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.StartTime != "15:00" || updated.Active {
		t.Errorf("updated = %+v", updated)
	}

	if err := svc.DeleteRule(testProfessorID, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.DeleteRule(testProfessorID, created.ID); !util.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestRuleOwnership(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture(t)

	input := RuleInput{Weekday: 1, StartTime: "09:00", EndTime: "10:00"}
	if _, err := svc.UpdateRule("professor-2", "rule-1", input); !util.IsNotFound(err) {
		t.Errorf("update: expected not found, got %v", err)
	}
	if err := svc.DeleteRule("professor-2", "rule-1"); !util.IsNotFound(err) {
		t.Errorf("delete: expected not found, got %v", err)
	}
}

func TestRuleValidation(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture(t)

	tests := []struct {
		name  string
		input RuleInput
	}{
		{"bad weekday", RuleInput{Weekday: 7, StartTime: "09:00", EndTime: "10:00"}},
		{"bad start", RuleInput{Weekday: 1, StartTime: "25:00", EndTime: "10:00"}},
		{"end before start", RuleInput{Weekday: 1, StartTime: "10:00", EndTime: "09:00"}},
		{"negative slot duration", RuleInput{Weekday: 1, StartTime: "09:00", EndTime: "10:00", SlotDurationMinutes: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateRule(testProfessorID, testCompanyID, tt.input); !util.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestBlockageCRUD(t *testing.T) {
	svc, _, _, _ := newAvailabilityFixture(t)

	created, err := svc.CreateBlockage(testCompanyID, BlockageInput{
		StartsAt: monday.Add(9 * time.Hour),
		EndsAt:   monday.Add(10 * time.Hour),
		Reason:   "maintenance",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.UpdateBlockage(testCompanyID, created.ID, BlockageInput{
		StartsAt: monday.Add(9 * time.Hour),
		EndsAt:   monday.Add(11 * time.Hour),
		Reason:   "extended maintenance",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.EndsAt.Equal(monday.Add(11 * time.Hour)) {
		t.Errorf("end = %v", updated.EndsAt)
	}

	// Another tenant cannot touch it.
	if _, err := svc.UpdateBlockage("company-2", created.ID, BlockageInput{
		StartsAt: monday, EndsAt: monday.Add(time.Hour),
	}); !util.IsNotFound(err) {
		t.Errorf("cross-tenant update: expected not found, got %v", err)
	}

	if err := svc.DeleteBlockage(testCompanyID, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := svc.CreateBlockage(testCompanyID, BlockageInput{
		StartsAt: monday.Add(time.Hour), EndsAt: monday.Add(time.Hour),
	}); !util.IsValidation(err) {
		t.Errorf("empty range: expected validation error, got %v", err)
	}
}
