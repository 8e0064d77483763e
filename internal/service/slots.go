package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/SinesysTech/aluminify-sub018/internal/model"
	"github.com/SinesysTech/aluminify-sub018/internal/util"
)

// TimeSlot is one bookable interval.
type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Start.Before(other.End) && s.End.After(other.Start)
}

// ParseClock parses an "HH:MM" rule boundary into minutes from
// midnight.
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) < 2 {
		return 0, util.ValidationError(fmt.Sprintf("invalid time %q, expected HH:MM", value))
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 23 {
		return 0, util.ValidationError(fmt.Sprintf("invalid hour in %q", value))
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, util.ValidationError(fmt.Sprintf("invalid minute in %q", value))
	}
	return hours*60 + minutes, nil
}

// GenerateSlots expands the day's recurring rules into concrete slots,
// dropping any that start before minAllowed or touch a blocked
// interval. Output is ordered by start and pairwise non-overlapping.
//
// Rules that do not apply on the date (wrong weekday, inactive, outside
// the effective range) are skipped. Each rule walks its window in steps
// of its own slot duration.
func GenerateSlots(date time.Time, rules []model.AvailabilityRule, blocked []TimeSlot, minAllowed time.Time) ([]TimeSlot, error) {
	var slots []TimeSlot
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	for _, rule := range rules {
		if !rule.AppliesOn(day) {
			continue
		}

		startMins, err := ParseClock(rule.StartTime)
		if err != nil {
			return nil, err
		}
		endMins, err := ParseClock(rule.EndTime)
		if err != nil {
			return nil, err
		}

		step := rule.SlotDurationMinutes
		if step <= 0 {
			step = 30
		}

		for at := startMins; at+step <= endMins; at += step {
			slot := TimeSlot{
				Start: day.Add(time.Duration(at) * time.Minute),
				End:   day.Add(time.Duration(at+step) * time.Minute),
			}

			if slot.Start.Before(minAllowed) {
				continue
			}
			if conflictsAny(slot, blocked) {
				continue
			}
			slots = append(slots, slot)
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	return dedupeSlots(slots), nil
}

func conflictsAny(slot TimeSlot, blocked []TimeSlot) bool {
	for _, b := range blocked {
		if slot.Overlaps(b) {
			return true
		}
	}
	return false
}

// dedupeSlots removes duplicates produced by rules with overlapping
// windows, keeping output non-overlapping.
func dedupeSlots(slots []TimeSlot) []TimeSlot {
	out := slots[:0]
	for _, s := range slots {
		if len(out) > 0 && s.Start.Before(out[len(out)-1].End) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// WithinRules reports whether the slot sits entirely inside one of the
// day's rule windows.
func WithinRules(slot TimeSlot, rules []model.AvailabilityRule) bool {
	for _, rule := range rules {
		if !rule.AppliesOn(slot.Start) {
			continue
		}
		ruleStart, err := ParseClock(rule.StartTime)
		if err != nil {
			continue
		}
		ruleEnd, err := ParseClock(rule.EndTime)
		if err != nil {
			continue
		}

		slotStart := slot.Start.Hour()*60 + slot.Start.Minute()
		slotEnd := slot.End.Hour()*60 + slot.End.Minute()
		if slotEnd == 0 && slot.End.After(slot.Start) {
			slotEnd = 24 * 60
		}
		if slotStart >= ruleStart && slotEnd <= ruleEnd {
			return true
		}
	}
	return false
}
