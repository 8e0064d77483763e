package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/SinesysTech/aluminify-sub018/internal/model"
	"github.com/SinesysTech/aluminify-sub018/internal/util"
)

// SessionDurations is the result of the clock arithmetic over one study
// session.
type SessionDurations struct {
	GrossSeconds int
	NetSeconds   int
}

// ComputeDurations derives gross and net study time from the session
// bounds and its pause log. Pure arithmetic, no I/O.
//
// Gross is the whole-second span between start and end. Net subtracts
// every pause interval and never goes below zero. Pauses must each have
// end >= start, must not overlap one another, and must lie inside the
// session bounds; any violation is a validation error, not a silent
// correction.
func ComputeDurations(start, end time.Time, pauses model.PauseLog) (SessionDurations, error) {
	if end.Before(start) {
		return SessionDurations{}, util.ValidationError("session end must not be before start")
	}

	if err := ValidatePauseLog(start, end, pauses); err != nil {
		return SessionDurations{}, err
	}

	gross := int(math.Round(end.Sub(start).Seconds()))

	var pauseTotal time.Duration
	for _, p := range pauses {
		pauseTotal += p.End.Sub(p.Start)
	}

	net := gross - int(math.Round(pauseTotal.Seconds()))
	if net < 0 {
		net = 0
	}

	return SessionDurations{GrossSeconds: gross, NetSeconds: net}, nil
}

// ValidatePauseLog checks the pause-log invariants against the session
// bounds [start, end].
func ValidatePauseLog(start, end time.Time, pauses model.PauseLog) error {
	sorted := make(model.PauseLog, len(pauses))
	copy(sorted, pauses)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	for i, p := range sorted {
		if p.Kind != model.PauseManual && p.Kind != model.PauseDistraction {
			return util.ValidationError(fmt.Sprintf("pause %d has invalid kind %q", i, p.Kind))
		}
		if p.End.Before(p.Start) {
			return util.ValidationError(fmt.Sprintf("pause %d ends before it starts", i))
		}
		if p.Start.Before(start) || p.End.After(end) {
			return util.ValidationError(fmt.Sprintf("pause %d falls outside the session bounds", i))
		}
		if i > 0 && sorted[i-1].End.After(p.Start) {
			return util.ValidationError(fmt.Sprintf("pause %d overlaps the previous pause", i))
		}
	}
	return nil
}
